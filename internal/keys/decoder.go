package keys

import (
	"errors"
)

// ErrTimeout is returned by a ByteReader when the read timeout expired
// before a byte arrived.
var ErrTimeout = errors.New("keys: read timed out")

// ByteReader is the raw input source. ReadByte must return ErrTimeout when
// no byte arrived within the terminal read timeout.
type ByteReader interface {
	ReadByte() (byte, error)
}

type decodeState int

const (
	stateIdle decodeState = iota
	stateSawEscape
	stateSawIntro // after ESC [ or ESC O
	stateAwaitingTilde
)

// Decoder turns raw terminal bytes into key events.
type Decoder struct {
	in ByteReader
}

// NewDecoder creates a decoder reading from in.
func NewDecoder(in ByteReader) *Decoder {
	return &Decoder{in: in}
}

// ReadKey reads one key. A timeout before the first byte yields an event of
// KindNone. Incomplete or unknown escape sequences decode as KindEscape and
// never return an error; only a failed read of the first byte does.
func (d *Decoder) ReadKey() (Event, error) {
	var (
		state = stateIdle
		intro byte
		digit byte
	)
	for {
		switch state {
		case stateIdle:
			b, err := d.in.ReadByte()
			if errors.Is(err, ErrTimeout) {
				return Event{Kind: KindNone}, nil
			}
			if err != nil {
				return Event{}, err
			}
			if b != escape {
				return FromByte(b), nil
			}
			state = stateSawEscape

		case stateSawEscape:
			b, ok := d.next()
			if !ok || (b != '[' && b != 'O') {
				return Event{Kind: KindEscape}, nil
			}
			intro = b
			state = stateSawIntro

		case stateSawIntro:
			b, ok := d.next()
			if !ok {
				return Event{Kind: KindEscape}, nil
			}
			if intro == '[' && b >= '0' && b <= '9' {
				digit = b
				state = stateAwaitingTilde
				continue
			}
			return Event{Kind: finalKind(intro, b)}, nil

		case stateAwaitingTilde:
			b, ok := d.next()
			if !ok || b != '~' {
				return Event{Kind: KindEscape}, nil
			}
			return Event{Kind: tildeKind(digit)}, nil
		}
	}
}

// next reads a continuation byte. Any failure ends the sequence.
func (d *Decoder) next() (byte, bool) {
	b, err := d.in.ReadByte()
	if err != nil {
		return 0, false
	}
	return b, true
}

func finalKind(intro, b byte) Kind {
	if intro == '[' {
		switch b {
		case 'A':
			return KindUp
		case 'B':
			return KindDown
		case 'C':
			return KindRight
		case 'D':
			return KindLeft
		}
	}
	switch b {
	case 'H':
		return KindHome
	case 'F':
		return KindEnd
	}
	return KindEscape
}

func tildeKind(digit byte) Kind {
	switch digit {
	case '1', '7':
		return KindHome
	case '3':
		return KindDelete
	case '4', '8':
		return KindEnd
	case '5':
		return KindPageUp
	case '6':
		return KindPageDown
	}
	return KindEscape
}
