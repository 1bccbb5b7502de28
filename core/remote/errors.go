package remote

import "errors"

var (
	// ErrDecode is returned by ParseLine for lines outside the helper's vocabulary.
	// The read loop skips such lines; they are never surfaced as engine failures.
	ErrDecode = errors.New("unrecognized helper output")

	// ErrProvisioning is returned by Start when the helper executable is missing or not executable.
	ErrProvisioning = errors.New("helper is not provisioned")

	// ErrLaunch is returned by Start when the helper process cannot be started.
	ErrLaunch = errors.New("failed to launch helper")

	// ErrStream is recorded as the last error when reading helper output fails.
	ErrStream = errors.New("failed to read helper output")

	// ErrStopped is returned when starting a remote that has already been stopped.
	ErrStopped = errors.New("remote already stopped")

	// ErrNotRunning is returned by Healthcheck when the read loop is not active.
	ErrNotRunning = errors.New("remote not running")

	// ErrHealthcheckFailed wraps all healthcheck failures.
	ErrHealthcheckFailed = errors.New("remote healthcheck failed")

	// ErrHelperPathEmpty is returned by New when no helper path is configured.
	ErrHelperPathEmpty = errors.New("helper path is required")
)
