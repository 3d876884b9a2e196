// Package key models the key events the editor session routes.
package key

import "fmt"

// Key identifies a pressed key.
type Key uint8

const (
	// KeyRune is a printable character; Event.Rune carries it.
	KeyRune Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyTab
	KeyEscape
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	case KeyEscape:
		return "escape"
	default:
		return fmt.Sprintf("key(%d)", uint8(k))
	}
}

// Modifier is a bit set of modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// Event is a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates an event for a printable character.
func NewRuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// NewSpecialEvent creates an event for a non-character key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune reports whether this is a character event.
func (e Event) IsRune() bool { return e.Key == KeyRune && e.Rune != 0 }

// HasCtrl reports whether Ctrl was held.
func (e Event) HasCtrl() bool { return e.Modifiers&ModCtrl != 0 }

// String returns a readable form like "ctrl+left" or "a".
func (e Event) String() string {
	prefix := ""
	if e.Modifiers&ModCtrl != 0 {
		prefix += "ctrl+"
	}
	if e.Modifiers&ModAlt != 0 {
		prefix += "alt+"
	}
	if e.Modifiers&ModShift != 0 {
		prefix += "shift+"
	}
	if e.IsRune() {
		return prefix + string(e.Rune)
	}
	return prefix + e.Key.String()
}
