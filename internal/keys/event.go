package keys

import "fmt"

// Kind identifies a decoded key.
type Kind int

const (
	// KindNone is returned when the read timed out without input.
	KindNone Kind = iota
	KindChar
	KindCtrl
	KindUp
	KindDown
	KindLeft
	KindRight
	KindHome
	KindEnd
	KindPageUp
	KindPageDown
	KindDelete
	KindEscape
)

const escape = 0x1b

// Event is one logical key press. Byte is set for KindChar and KindCtrl.
type Event struct {
	Kind Kind
	Byte byte
}

// Ctrl returns the byte a terminal sends for Ctrl+c.
func Ctrl(c byte) byte {
	return c & 0x1f
}

// IsControl reports whether b is an ASCII control character (0-31, 127).
func IsControl(b byte) bool {
	return b < 0x20 || b == 0x7f
}

// FromByte maps a single non-escape byte to an event.
func FromByte(b byte) Event {
	if b == escape {
		return Event{Kind: KindEscape}
	}
	if IsControl(b) {
		return Event{Kind: KindCtrl, Byte: b}
	}
	return Event{Kind: KindChar, Byte: b}
}

var kindNames = map[Kind]string{
	KindUp:       "up",
	KindDown:     "down",
	KindLeft:     "left",
	KindRight:    "right",
	KindHome:     "home",
	KindEnd:      "end",
	KindPageUp:   "pgup",
	KindPageDown: "pgdown",
	KindDelete:   "delete",
	KindEscape:   "esc",
}

// String returns the canonical key description used by key bindings,
// e.g. "a", "ctrl+q", "pgdown".
func (e Event) String() string {
	switch e.Kind {
	case KindNone:
		return ""
	case KindChar:
		if e.Byte == ' ' {
			return "space"
		}
		return string(rune(e.Byte))
	case KindCtrl:
		switch e.Byte {
		case '\t':
			return "tab"
		case '\r':
			return "enter"
		case 0x7f:
			return "backspace"
		case 0:
			return "ctrl+@"
		}
		if e.Byte <= 26 {
			return "ctrl+" + string(rune('a'+e.Byte-1))
		}
		return fmt.Sprintf("ctrl+%c", e.Byte|0x40)
	}
	if name, ok := kindNames[e.Kind]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(e.Kind))
}
