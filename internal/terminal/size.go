package terminal

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/term"

	"kilo-tui/internal/keys"
)

const (
	seqCursorFar    = "\x1b[999C\x1b[999B"
	seqCursorReport = "\x1b[6n"
)

// WindowSize returns the terminal size in rows and columns. The ioctl query
// on fd is tried first; if it fails or reports zero columns the cursor is
// pushed to the bottom-right corner and its position is requested.
func WindowSize(fd int, w io.Writer, r keys.ByteReader) (rows, cols int, err error) {
	cols, rows, err = term.GetSize(fd)
	if err == nil && cols > 0 && rows > 0 {
		return rows, cols, nil
	}
	return sizeFromCursor(w, r)
}

func sizeFromCursor(w io.Writer, r keys.ByteReader) (rows, cols int, err error) {
	if _, err := io.WriteString(w, seqCursorFar); err != nil {
		return 0, 0, fmt.Errorf("move cursor: %w", err)
	}
	rows, cols, err = CursorPosition(w, r)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrSizeUnavailable, err)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, ErrSizeUnavailable
	}
	return rows, cols, nil
}

// CursorPosition sends a device status report request and parses the reply
// ESC [ rows ; cols R.
func CursorPosition(w io.Writer, r keys.ByteReader) (rows, cols int, err error) {
	if _, err := io.WriteString(w, seqCursorReport); err != nil {
		return 0, 0, fmt.Errorf("request cursor position: %w", err)
	}

	var buf []byte
	for len(buf) < 32 {
		b, err := r.ReadByte()
		if errors.Is(err, keys.ErrTimeout) {
			break
		}
		if err != nil {
			return 0, 0, fmt.Errorf("read cursor position: %w", err)
		}
		if b == 'R' {
			break
		}
		buf = append(buf, b)
	}

	if len(buf) < 2 || buf[0] != 0x1b || buf[1] != '[' {
		return 0, 0, ErrBadCursorReply
	}
	if _, err := fmt.Sscanf(string(buf[2:]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCursorReply, buf[2:])
	}
	return rows, cols, nil
}
