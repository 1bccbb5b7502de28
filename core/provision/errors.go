package provision

import "errors"

var (
	// ErrHelperMissing is returned when no file exists at the helper path.
	ErrHelperMissing = errors.New("helper executable not found")

	// ErrNotRegularFile is returned when the helper path is a directory or special file.
	ErrNotRegularFile = errors.New("helper path is not a regular file")

	// ErrNotExecutable is returned when the helper file lacks execute permission.
	ErrNotExecutable = errors.New("helper is not executable")

	// ErrEmptyPath is returned when an empty helper path is given.
	ErrEmptyPath = errors.New("helper path is empty")

	// ErrNoSource is returned when the helper must be installed but no source was provided.
	ErrNoSource = errors.New("helper source is not available")
)
