// Package remote turns the output of the iremotepipe helper into Apple Remote button
// events and delivers them to registered handlers.
//
// The helper is an external executable that reads the infrared receiver and prints one
// record per button interaction:
//
//	{"type":"up","hold":true,"pressed":true}
//
// ParseLine maps each record to a Button and a Phase. Lines it does not recognize are
// skipped. The button semantics follow the hardware:
//
//   - VolumeUp, VolumeDown, Previous, Next: PhasePressed, PhaseHoldStarted, PhaseHoldStopped
//   - PlayPause, Menu: PhasePressed and PhaseHeld, with no hold start or stop
//   - Select: PhasePressed only
//
// # Basic Usage
//
//	r, err := remote.New(helperPath, remote.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	mux := remote.NewMux().
//	    On(remote.ButtonPlayPause, remote.PhasePressed, togglePlayback).
//	    OnButton(remote.ButtonVolumeUp, volumeUp)
//	r.AddListener(mux)
//
//	if err := r.Start(ctx); err != nil {
//	    // errors.Is(err, remote.ErrProvisioning) or remote.ErrLaunch
//	    return err
//	}
//	defer r.Stop()
//
// # Lifecycle
//
// A Remote moves through StateCreated, StateStarting, StateRunning, StateStopping and
// StateStopped, and never leaves StateStopped. Stop returns without waiting; Done is
// closed when the helper has been released. Removing the last listener stops the
// remote, as does the helper exiting or its output failing. Failures after Start are
// reported through LastError, Stats and Healthcheck.
//
// # Delivery
//
// Events are delivered synchronously on the read loop goroutine, in the order handlers
// were added. Each event goes to the handlers registered when its delivery began, so a
// handler may add or remove listeners (including itself) or call Stop while handling.
// Handler errors and panics are logged and counted; they never stop delivery.
// Slow handlers delay later events; wrap them with WithTimeout or hand work off.
//
// # Errgroup Integration
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(r.Run(ctx))
//	if err := g.Wait(); err != nil {
//	    log.Error("remote failed", logger.Error(err))
//	}
package remote
