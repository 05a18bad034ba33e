package terminal

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"kilo-tui/internal/keys"
)

// Input reads single bytes from a raw-mode file descriptor. With VMIN=0 a
// read returns zero bytes once the VTIME timeout expires; that is reported
// as keys.ErrTimeout.
type Input struct {
	fd  int
	buf [1]byte
}

// NewInput creates a byte reader for fd.
func NewInput(fd int) *Input {
	return &Input{fd: fd}
}

// ReadByte implements keys.ByteReader.
func (in *Input) ReadByte() (byte, error) {
	n, err := unix.Read(in.fd, in.buf[:])
	switch {
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EINTR):
		return 0, keys.ErrTimeout
	case err != nil:
		return 0, fmt.Errorf("read: %w", err)
	case n == 0:
		return 0, keys.ErrTimeout
	}
	return in.buf[0], nil
}
