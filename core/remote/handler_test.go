package remote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lakospeter91/appleremote/core/remote"
)

func event(b remote.Button, p remote.Phase) remote.Event {
	return remote.NewEvent("test", remote.Signal{Button: b, Phase: p}, "")
}

func TestNewHandlerFunc_Identity(t *testing.T) {
	t.Parallel()

	fn := func(context.Context, remote.Event) error { return nil }
	a := remote.NewHandlerFunc(fn)
	b := remote.NewHandlerFunc(fn)

	assert.False(t, a == b, "each wrapper is a distinct listener")
	assert.NoError(t, remote.NewHandlerFunc(nil).Handle(context.Background(), event(remote.ButtonMenu, remote.PhasePressed)))
}

func TestMux_Routing(t *testing.T) {
	t.Parallel()

	var got []string
	record := func(name string) remote.HandlerFunc {
		return func(_ context.Context, e remote.Event) error {
			got = append(got, name+":"+e.Button.String()+"/"+e.Phase.String())
			return nil
		}
	}

	mux := remote.NewMux().
		On(remote.ButtonPlayPause, remote.PhasePressed, record("toggle")).
		On(remote.ButtonPlayPause, remote.PhaseHeld, record("sleep")).
		OnButton(remote.ButtonVolumeUp, record("volume")).
		OnPhase(remote.PhaseHeld, record("held"))

	ctx := context.Background()
	for _, e := range []remote.Event{
		event(remote.ButtonPlayPause, remote.PhasePressed),
		event(remote.ButtonPlayPause, remote.PhaseHeld),
		event(remote.ButtonVolumeUp, remote.PhaseHoldStarted),
		event(remote.ButtonVolumeUp, remote.PhaseHoldStopped),
		event(remote.ButtonMenu, remote.PhaseHeld),
		event(remote.ButtonSelect, remote.PhasePressed), // unrouted
	} {
		assert.NoError(t, mux.Handle(ctx, e))
	}

	assert.Equal(t, []string{
		"toggle:PLAY_PAUSE/PRESSED",
		"sleep:PLAY_PAUSE/HELD",
		"held:PLAY_PAUSE/HELD",
		"volume:VOLUME_UP/HOLD_STARTED",
		"volume:VOLUME_UP/HOLD_STOPPED",
		"held:MENU/HELD",
	}, got)
}

func TestMux_StopsAtFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var secondCalled bool

	mux := remote.NewMux().
		On(remote.ButtonNext, remote.PhasePressed, func(context.Context, remote.Event) error { return boom }).
		On(remote.ButtonNext, remote.PhasePressed, func(context.Context, remote.Event) error {
			secondCalled = true
			return nil
		})

	err := mux.Handle(context.Background(), event(remote.ButtonNext, remote.PhasePressed))
	assert.ErrorIs(t, err, boom)
	assert.False(t, secondCalled)
}

func TestMux_OnButtonSkipsUnsupportedPhases(t *testing.T) {
	t.Parallel()

	var calls int
	mux := remote.NewMux().OnButton(remote.ButtonSelect, func(context.Context, remote.Event) error {
		calls++
		return nil
	})

	ctx := context.Background()
	assert.NoError(t, mux.Handle(ctx, event(remote.ButtonSelect, remote.PhaseHeld)))
	assert.NoError(t, mux.Handle(ctx, event(remote.ButtonSelect, remote.PhasePressed)))
	assert.Equal(t, 1, calls)
}
