package remote

import (
	"fmt"
	"time"
)

// Button identifies a physical button on the Apple Remote.
type Button uint8

const (
	ButtonVolumeUp Button = iota + 1
	ButtonVolumeDown
	ButtonPrevious
	ButtonNext
	ButtonPlayPause
	ButtonMenu
	ButtonSelect // aluminum remote only
)

var buttonNames = map[Button]string{
	ButtonVolumeUp:   "VOLUME_UP",
	ButtonVolumeDown: "VOLUME_DOWN",
	ButtonPrevious:   "PREVIOUS",
	ButtonNext:       "NEXT",
	ButtonPlayPause:  "PLAY_PAUSE",
	ButtonMenu:       "MENU",
	ButtonSelect:     "SELECT",
}

// Buttons lists every known button in declaration order.
func Buttons() []Button {
	return []Button{
		ButtonVolumeUp,
		ButtonVolumeDown,
		ButtonPrevious,
		ButtonNext,
		ButtonPlayPause,
		ButtonMenu,
		ButtonSelect,
	}
}

// String returns the upper snake case button name, e.g. "VOLUME_UP".
func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b Button) MarshalText() ([]byte, error) {
	if _, ok := buttonNames[b]; !ok {
		return nil, fmt.Errorf("unknown button %d", uint8(b))
	}
	return []byte(b.String()), nil
}

// Supports reports whether the remote can emit the given phase for this button.
//
// Volume and track buttons report a tap plus a hold start/stop pair. Play/pause and
// menu report a tap and a single terminal "held" notification with no start signal.
// Select only reports taps.
func (b Button) Supports(p Phase) bool {
	switch b {
	case ButtonVolumeUp, ButtonVolumeDown, ButtonPrevious, ButtonNext:
		return p == PhasePressed || p == PhaseHoldStarted || p == PhaseHoldStopped
	case ButtonPlayPause, ButtonMenu:
		return p == PhasePressed || p == PhaseHeld
	case ButtonSelect:
		return p == PhasePressed
	default:
		return false
	}
}

// Phase is the moment within a button interaction that an event reports.
type Phase uint8

const (
	PhasePressed Phase = iota + 1
	PhaseHoldStarted
	PhaseHoldStopped
	PhaseHeld
)

var phaseNames = map[Phase]string{
	PhasePressed:     "PRESSED",
	PhaseHoldStarted: "HOLD_STARTED",
	PhaseHoldStopped: "HOLD_STOPPED",
	PhaseHeld:        "HELD",
}

// Phases lists every known phase in declaration order.
func Phases() []Phase {
	return []Phase{PhasePressed, PhaseHoldStarted, PhaseHoldStopped, PhaseHeld}
}

// String returns the upper snake case phase name, e.g. "HOLD_STARTED".
func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if _, ok := phaseNames[p]; !ok {
		return nil, fmt.Errorf("unknown phase %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// Signal is the decoded meaning of a single helper line.
type Signal struct {
	Button Button
	Phase  Phase
}

// Event describes one decoded remote control event.
// Events are values; handlers receive a copy and cannot affect other subscribers.
type Event struct {
	Button     Button    `json:"button"`
	Phase      Phase     `json:"phase"`
	Origin     string    `json:"origin"`      // ID of the Remote that produced the event
	Line       string    `json:"line"`        // helper output line, verbatim
	ReceivedAt time.Time `json:"received_at"` // when the line was read
}

// NewEvent stamps a decoded signal with its origin and raw line.
func NewEvent(origin string, sig Signal, line string) Event {
	return Event{
		Button:     sig.Button,
		Phase:      sig.Phase,
		Origin:     origin,
		Line:       line,
		ReceivedAt: time.Now(),
	}
}

// Signal returns the (button, phase) pair carried by the event.
func (e Event) Signal() Signal {
	return Signal{Button: e.Button, Phase: e.Phase}
}

func (e Event) String() string {
	return fmt.Sprintf("Event{origin=%s, button=%s, phase=%s, line='%s'}",
		e.Origin, e.Button, e.Phase, e.Line)
}
