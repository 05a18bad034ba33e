package terminal

import (
	"testing"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

func TestControllerRawModeOnPty(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	fd := int(tty.Fd())
	original, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		t.Fatalf("get attributes: %v", err)
	}

	c := NewController(fd, 0)
	if err := c.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if !c.Enabled() {
		t.Fatal("controller not enabled")
	}

	raw, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		t.Fatalf("get raw attributes: %v", err)
	}
	cleared := []struct {
		name  string
		flags uint64
		mask  uint64
	}{
		{"BRKINT", uint64(raw.Iflag), unix.BRKINT},
		{"ICRNL", uint64(raw.Iflag), unix.ICRNL},
		{"INPCK", uint64(raw.Iflag), unix.INPCK},
		{"ISTRIP", uint64(raw.Iflag), unix.ISTRIP},
		{"IXON", uint64(raw.Iflag), unix.IXON},
		{"OPOST", uint64(raw.Oflag), unix.OPOST},
		{"ECHO", uint64(raw.Lflag), unix.ECHO},
		{"ICANON", uint64(raw.Lflag), unix.ICANON},
		{"IEXTEN", uint64(raw.Lflag), unix.IEXTEN},
		{"ISIG", uint64(raw.Lflag), unix.ISIG},
	}
	for _, f := range cleared {
		if f.flags&f.mask != 0 {
			t.Errorf("%s still set", f.name)
		}
	}
	if uint64(raw.Cflag)&unix.CS8 != unix.CS8 {
		t.Error("CS8 not set")
	}
	if raw.Cc[unix.VMIN] != 0 {
		t.Errorf("VMIN = %d, want 0", raw.Cc[unix.VMIN])
	}
	if raw.Cc[unix.VTIME] != 1 {
		t.Errorf("VTIME = %d, want 1", raw.Cc[unix.VTIME])
	}

	// Повторный Enable не перехватывает уже сырые атрибуты как исходные
	if err := c.Enable(); err != nil {
		t.Fatalf("second Enable: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := c.Disable(); err != nil {
			t.Fatalf("Disable #%d: %v", i+1, err)
		}
		restored, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
		if err != nil {
			t.Fatalf("get restored attributes: %v", err)
		}
		if *restored != *original {
			t.Fatalf("Disable #%d: attributes %+v, want %+v", i+1, *restored, *original)
		}
	}
	if c.Enabled() {
		t.Fatal("controller still enabled")
	}
}
