package terminal

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"kilo-tui/internal/keys"
)

type scriptReader struct {
	data []byte
	err  error
}

func (r *scriptReader) ReadByte() (byte, error) {
	if len(r.data) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, keys.ErrTimeout
	}
	b := r.data[0]
	r.data = r.data[1:]
	return b, nil
}

func TestCursorPosition(t *testing.T) {
	var out bytes.Buffer
	rows, cols, err := CursorPosition(&out, &scriptReader{data: []byte("\x1b[24;80R")})
	if err != nil {
		t.Fatalf("CursorPosition: %v", err)
	}
	if rows != 24 || cols != 80 {
		t.Fatalf("got %dx%d", rows, cols)
	}
	if out.String() != "\x1b[6n" {
		t.Fatalf("request = %q", out.String())
	}
}

func TestCursorPositionMalformed(t *testing.T) {
	replies := []string{"", "24;80R", "\x1b[;R", "\x1b[abcR"}
	for _, reply := range replies {
		_, _, err := CursorPosition(&bytes.Buffer{}, &scriptReader{data: []byte(reply)})
		if !errors.Is(err, ErrBadCursorReply) {
			t.Errorf("reply %q: err = %v", reply, err)
		}
	}
}

func TestCursorPositionReadError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := CursorPosition(&bytes.Buffer{}, &scriptReader{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestWindowSizeFallsBackToCursorReport(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notatty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var out bytes.Buffer
	rows, cols, err := WindowSize(int(f.Fd()), &out, &scriptReader{data: []byte("\x1b[50;132R")})
	if err != nil {
		t.Fatalf("WindowSize: %v", err)
	}
	if rows != 50 || cols != 132 {
		t.Fatalf("got %dx%d", rows, cols)
	}
	if out.String() != "\x1b[999C\x1b[999B\x1b[6n" {
		t.Fatalf("size request = %q", out.String())
	}
}

func TestWindowSizeUnavailable(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notatty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, _, err = WindowSize(int(f.Fd()), &bytes.Buffer{}, &scriptReader{})
	if !errors.Is(err, ErrSizeUnavailable) {
		t.Fatalf("err = %v", err)
	}
	_, _, err = WindowSize(int(f.Fd()), &bytes.Buffer{}, &scriptReader{data: []byte("\x1b[0;0R")})
	if !errors.Is(err, ErrSizeUnavailable) {
		t.Fatalf("zero size err = %v", err)
	}
}

func TestControllerRejectsNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notatty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	c := NewController(int(f.Fd()), 0)
	if err := c.Disable(); err != nil {
		t.Fatalf("Disable before Enable: %v", err)
	}
	if err := c.Enable(); !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("Enable err = %v", err)
	}
	if c.Enabled() {
		t.Fatal("controller reports enabled")
	}
	if err := c.Disable(); err != nil {
		t.Fatalf("second Disable: %v", err)
	}
	if c.Timeout() != DefaultReadTimeout {
		t.Fatalf("timeout = %v", c.Timeout())
	}
}

func TestVTime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want uint8
	}{
		{time.Millisecond, 1},
		{100 * time.Millisecond, 1},
		{150 * time.Millisecond, 2},
		{time.Second, 10},
		{time.Hour, 255},
	}
	for _, tt := range tests {
		if got := vtime(tt.in); got != tt.want {
			t.Errorf("vtime(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestInputReadsBytesAndReportsEmptyReads(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	in := NewInput(int(r.Fd()))
	if _, err := w.Write([]byte("q")); err != nil {
		t.Fatal(err)
	}
	b, err := in.ReadByte()
	if err != nil || b != 'q' {
		t.Fatalf("ReadByte = %q, %v", b, err)
	}
	w.Close()
	if _, err := in.ReadByte(); !errors.Is(err, keys.ErrTimeout) {
		t.Fatalf("empty read err = %v", err)
	}
}
