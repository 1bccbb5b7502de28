package remote

import (
	"fmt"
	"strings"
)

// Helper wire vocabulary. Each line is a flat record with exactly these three keys
// in this order, e.g. {"type":"up","hold":true,"pressed":false}.
const (
	keyType    = `"type"`
	keyHold    = `"hold"`
	keyPressed = `"pressed"`

	tokenUp    = "up"
	tokenDown  = "down"
	tokenLeft  = "left"
	tokenRight = "right"
	tokenPlay  = "play"
	tokenSleep = "sleep"
	tokenMenu  = "menu"
	tokenOK    = "ok"
)

// ParseLine decodes one helper output line into a Signal.
// Anything other than the exact three-field record, or an unknown type token,
// yields an error wrapping ErrDecode. ParseLine has no side effects.
func ParseLine(line string) (Signal, error) {
	typ, hold, pressed, err := splitRecord(strings.TrimSpace(line))
	if err != nil {
		return Signal{}, err
	}

	switch typ {
	case tokenUp:
		return Signal{ButtonVolumeUp, holdPhase(hold, pressed)}, nil
	case tokenDown:
		return Signal{ButtonVolumeDown, holdPhase(hold, pressed)}, nil
	case tokenLeft:
		return Signal{ButtonPrevious, holdPhase(hold, pressed)}, nil
	case tokenRight:
		return Signal{ButtonNext, holdPhase(hold, pressed)}, nil
	case tokenPlay:
		return Signal{ButtonPlayPause, PhasePressed}, nil
	case tokenSleep:
		// The helper reports a long play/pause hold as a separate "sleep" token.
		return Signal{ButtonPlayPause, PhaseHeld}, nil
	case tokenMenu:
		if hold {
			return Signal{ButtonMenu, PhaseHeld}, nil
		}
		return Signal{ButtonMenu, PhasePressed}, nil
	case tokenOK:
		return Signal{ButtonSelect, PhasePressed}, nil
	default:
		return Signal{}, fmt.Errorf("%w: unknown type %q", ErrDecode, typ)
	}
}

// holdPhase maps the hold/pressed flags of the tri-state buttons.
func holdPhase(hold, pressed bool) Phase {
	switch {
	case !hold:
		return PhasePressed
	case pressed:
		return PhaseHoldStarted
	default:
		return PhaseHoldStopped
	}
}

// splitRecord extracts the three values from a {"type":"x","hold":b,"pressed":b} record.
func splitRecord(line string) (typ string, hold, pressed bool, err error) {
	inner, ok := strings.CutPrefix(line, "{")
	if !ok {
		return "", false, false, fmt.Errorf("%w: missing opening brace", ErrDecode)
	}
	inner, ok = strings.CutSuffix(inner, "}")
	if !ok {
		return "", false, false, fmt.Errorf("%w: missing closing brace", ErrDecode)
	}

	typeField, rest, ok := strings.Cut(inner, ",")
	if !ok {
		return "", false, false, fmt.Errorf("%w: expected 3 fields", ErrDecode)
	}
	holdField, pressedField, ok := strings.Cut(rest, ",")
	if !ok || strings.Contains(pressedField, ",") {
		return "", false, false, fmt.Errorf("%w: expected 3 fields", ErrDecode)
	}

	rawType, err := fieldValue(typeField, keyType)
	if err != nil {
		return "", false, false, err
	}
	typ, err = unquote(rawType)
	if err != nil {
		return "", false, false, err
	}

	if hold, err = boolField(holdField, keyHold); err != nil {
		return "", false, false, err
	}
	if pressed, err = boolField(pressedField, keyPressed); err != nil {
		return "", false, false, err
	}
	return typ, hold, pressed, nil
}

func fieldValue(field, key string) (string, error) {
	k, v, ok := strings.Cut(field, ":")
	if !ok {
		return "", fmt.Errorf("%w: field %q has no value", ErrDecode, field)
	}
	if k != key {
		return "", fmt.Errorf("%w: expected key %s, got %s", ErrDecode, key, k)
	}
	return v, nil
}

func boolField(field, key string) (bool, error) {
	v, err := fieldValue(field, key)
	if err != nil {
		return false, err
	}
	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s is not a boolean: %q", ErrDecode, key, v)
	}
}

func unquote(v string) (string, error) {
	if len(v) < 2 || v[0] != '"' || v[len(v)-1] != '"' {
		return "", fmt.Errorf("%w: type is not a string: %q", ErrDecode, v)
	}
	s := v[1 : len(v)-1]
	if strings.ContainsAny(s, `"\`) {
		return "", fmt.Errorf("%w: malformed type string: %q", ErrDecode, v)
	}
	return s, nil
}
