package remote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakospeter91/appleremote/core/remote"
)

func TestParseLine_Vocabulary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		button remote.Button
		phase  remote.Phase
	}{
		{`{"type":"up","hold":false,"pressed":true}`, remote.ButtonVolumeUp, remote.PhasePressed},
		{`{"type":"up","hold":true,"pressed":true}`, remote.ButtonVolumeUp, remote.PhaseHoldStarted},
		{`{"type":"up","hold":true,"pressed":false}`, remote.ButtonVolumeUp, remote.PhaseHoldStopped},
		{`{"type":"down","hold":false,"pressed":true}`, remote.ButtonVolumeDown, remote.PhasePressed},
		{`{"type":"down","hold":true,"pressed":true}`, remote.ButtonVolumeDown, remote.PhaseHoldStarted},
		{`{"type":"down","hold":true,"pressed":false}`, remote.ButtonVolumeDown, remote.PhaseHoldStopped},
		{`{"type":"left","hold":false,"pressed":true}`, remote.ButtonPrevious, remote.PhasePressed},
		{`{"type":"left","hold":true,"pressed":true}`, remote.ButtonPrevious, remote.PhaseHoldStarted},
		{`{"type":"left","hold":true,"pressed":false}`, remote.ButtonPrevious, remote.PhaseHoldStopped},
		{`{"type":"right","hold":false,"pressed":true}`, remote.ButtonNext, remote.PhasePressed},
		{`{"type":"right","hold":true,"pressed":true}`, remote.ButtonNext, remote.PhaseHoldStarted},
		{`{"type":"right","hold":true,"pressed":false}`, remote.ButtonNext, remote.PhaseHoldStopped},
		{`{"type":"play","hold":false,"pressed":true}`, remote.ButtonPlayPause, remote.PhasePressed},
		{`{"type":"play","hold":true,"pressed":true}`, remote.ButtonPlayPause, remote.PhasePressed},
		{`{"type":"sleep","hold":false,"pressed":true}`, remote.ButtonPlayPause, remote.PhaseHeld},
		{`{"type":"sleep","hold":true,"pressed":false}`, remote.ButtonPlayPause, remote.PhaseHeld},
		{`{"type":"menu","hold":false,"pressed":true}`, remote.ButtonMenu, remote.PhasePressed},
		{`{"type":"menu","hold":true,"pressed":true}`, remote.ButtonMenu, remote.PhaseHeld},
		{`{"type":"menu","hold":true,"pressed":false}`, remote.ButtonMenu, remote.PhaseHeld},
		{`{"type":"ok","hold":false,"pressed":true}`, remote.ButtonSelect, remote.PhasePressed},
		{`{"type":"ok","hold":true,"pressed":true}`, remote.ButtonSelect, remote.PhasePressed},
		{`{"type":"ok","hold":true,"pressed":false}`, remote.ButtonSelect, remote.PhasePressed},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			sig, err := remote.ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.button, sig.Button)
			assert.Equal(t, tt.phase, sig.Phase)
			assert.True(t, sig.Button.Supports(sig.Phase), "decoded phase must be valid for the button")
		})
	}
}

func TestParseLine_TrimsLineEndings(t *testing.T) {
	t.Parallel()

	sig, err := remote.ParseLine("  {\"type\":\"right\",\"hold\":false,\"pressed\":true}\r\n")
	require.NoError(t, err)
	assert.Equal(t, remote.Signal{Button: remote.ButtonNext, Phase: remote.PhasePressed}, sig)
}

func TestParseLine_Rejects(t *testing.T) {
	t.Parallel()

	lines := map[string]string{
		"empty":               ``,
		"whitespace":          `   `,
		"plain text":          `iremotepipe starting`,
		"unknown type":        `{"type":"eject","hold":false,"pressed":true}`,
		"empty type":          `{"type":"","hold":false,"pressed":true}`,
		"missing brace":       `"type":"up","hold":false,"pressed":true}`,
		"missing close brace": `{"type":"up","hold":false,"pressed":true`,
		"two fields":          `{"type":"up","hold":false}`,
		"four fields":         `{"type":"up","hold":false,"pressed":true,"id":1}`,
		"reordered":           `{"hold":false,"type":"up","pressed":true}`,
		"spaces inside":       `{"type": "up", "hold": false, "pressed": true}`,
		"unquoted type":       `{"type":up,"hold":false,"pressed":true}`,
		"escaped type":        `{"type":"u\"p","hold":false,"pressed":true}`,
		"numeric bool":        `{"type":"up","hold":0,"pressed":1}`,
		"capitalized bool":    `{"type":"up","hold":False,"pressed":true}`,
		"uppercase token":     `{"type":"UP","hold":false,"pressed":true}`,
		"wrong key":           `{"kind":"up","hold":false,"pressed":true}`,
		"no value":            `{"type","hold":false,"pressed":true}`,
		"braces only":         `{}`,
	}

	for name, line := range lines {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.NotPanics(t, func() {
				_, err := remote.ParseLine(line)
				assert.ErrorIs(t, err, remote.ErrDecode)
			})
		})
	}
}

func TestButton_Supports(t *testing.T) {
	t.Parallel()

	assert.True(t, remote.ButtonVolumeDown.Supports(remote.PhaseHoldStarted))
	assert.False(t, remote.ButtonVolumeDown.Supports(remote.PhaseHeld))
	assert.True(t, remote.ButtonPlayPause.Supports(remote.PhaseHeld))
	assert.False(t, remote.ButtonPlayPause.Supports(remote.PhaseHoldStarted))
	assert.False(t, remote.ButtonMenu.Supports(remote.PhaseHoldStopped))
	assert.True(t, remote.ButtonSelect.Supports(remote.PhasePressed))
	for _, p := range []remote.Phase{remote.PhaseHoldStarted, remote.PhaseHoldStopped, remote.PhaseHeld} {
		assert.False(t, remote.ButtonSelect.Supports(p), p.String())
	}
	assert.False(t, remote.Button(0).Supports(remote.PhasePressed))
}
