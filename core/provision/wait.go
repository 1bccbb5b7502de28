package provision

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WaitFor blocks until Verify(path) succeeds or ctx is done.
// It watches the helper's directory, so an installer running in another process
// can drop the executable in place after the application has started. The directory
// must already exist.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(ctx, time.Minute)
//	defer cancel()
//	if err := provision.WaitFor(ctx, path); err != nil {
//	    return err
//	}
func WaitFor(ctx context.Context, path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	// Checked after the watch is registered so an install in between is not missed.
	lastErr := Verify(path)
	if lastErr == nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", lastErr, ctx.Err())
		case ev, ok := <-w.Events:
			if !ok {
				return lastErr
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if lastErr = Verify(path); lastErr == nil {
				return nil
			}
		case err, ok := <-w.Errors:
			if !ok {
				return lastErr
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// Events were dropped; the helper may have appeared unnoticed.
				if lastErr = Verify(path); lastErr == nil {
					return nil
				}
				continue
			}
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
}

// Waiter adapts WaitFor to the func(path) error shape expected by remote.WithProvisioner.
// ctx bounds every wait.
func Waiter(ctx context.Context) func(string) error {
	return func(path string) error {
		return WaitFor(ctx, path)
	}
}

