package terminal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var (
	// ErrNotTerminal is returned when the input file descriptor is not a tty.
	ErrNotTerminal = errors.New("terminal: not a terminal")
	// ErrSizeUnavailable is returned when neither size strategy produced usable dimensions.
	ErrSizeUnavailable = errors.New("terminal: window size unavailable")
	// ErrBadCursorReply is returned for a malformed cursor position report.
	ErrBadCursorReply = errors.New("terminal: malformed cursor position reply")
)

// DefaultReadTimeout is how long a read waits for input before returning empty.
const DefaultReadTimeout = 100 * time.Millisecond

// Controller owns the terminal attributes that were active before raw mode
// was enabled. Only the controller reads or writes them.
type Controller struct {
	fd      int
	timeout time.Duration

	mu       sync.Mutex
	original *unix.Termios
}

// NewController creates a controller for fd. The timeout is rounded up to
// whole deciseconds, the resolution of VTIME.
func NewController(fd int, timeout time.Duration) *Controller {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	return &Controller{fd: fd, timeout: timeout}
}

// Enable captures the current attributes and switches the terminal to raw
// input with a read timeout. Calling Enable on an enabled controller is a no-op.
func (c *Controller) Enable() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.original != nil {
		return nil
	}
	if !term.IsTerminal(c.fd) {
		return ErrNotTerminal
	}

	original, err := unix.IoctlGetTermios(c.fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("get terminal attributes: %w", err)
	}

	raw := *original
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = vtime(c.timeout)

	if err := unix.IoctlSetTermios(c.fd, ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("set terminal attributes: %w", err)
	}
	c.original = original
	return nil
}

// Disable restores the captured attributes. It is safe to call any number of
// times and before Enable.
func (c *Controller) Disable() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.original == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(c.fd, ioctlWriteTermios, c.original); err != nil {
		return fmt.Errorf("restore terminal attributes: %w", err)
	}
	c.original = nil
	return nil
}

// Enabled reports whether raw mode is active.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.original != nil
}

// Timeout is the configured read timeout.
func (c *Controller) Timeout() time.Duration {
	return c.timeout
}

// vtime converts d to deciseconds, at least 1 and at most 255.
func vtime(d time.Duration) uint8 {
	ds := (d + 100*time.Millisecond - 1) / (100 * time.Millisecond)
	if ds < 1 {
		ds = 1
	}
	if ds > 255 {
		ds = 255
	}
	return uint8(ds)
}
