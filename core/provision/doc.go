// Package provision makes sure the iremotepipe helper executable is present before
// a remote is started.
//
// The helper is an external program that talks to the infrared receiver and prints
// one line per button event. This package does not ship the binary; the host
// application supplies it (typically via embed.FS) and provision installs it into a
// per-user directory:
//
//	path, err := provision.DefaultPath()
//	if err != nil {
//		return err
//	}
//
//	// Install on first run, then verify on every start.
//	r, err := remote.New(path,
//		remote.WithProvisioner(provision.Ensurer(provision.FromFS(bundle, "bin/iremotepipe"))),
//	)
//
// When another process installs the helper, WaitFor watches the target directory
// until the executable appears:
//
//	r, err := remote.New(path, remote.WithProvisioner(provision.Waiter(ctx)))
//
// Without a custom provisioner the remote only calls Verify, which fails with
// ErrHelperMissing, ErrNotRegularFile or ErrNotExecutable.
package provision
