package screen

import (
	"bytes"
	"strings"
	"testing"

	"kilo-tui/internal/document"
	"kilo-tui/internal/view"
)

func docOf(lines ...string) *document.Document {
	doc := document.New(document.DefaultTabStop)
	for _, l := range lines {
		doc.AppendRow([]byte(l))
	}
	return doc
}

// bodyRows strips the frame prologue and cursor epilogue and returns the
// text rows without their erase and newline suffixes.
func bodyRows(t *testing.T, out []byte, rows int) []string {
	t.Helper()
	s := string(out)
	prefix := HideCursor + CursorHome
	if !strings.HasPrefix(s, prefix) {
		t.Fatalf("frame does not start with hide+home: %q", s)
	}
	s = strings.TrimPrefix(s, prefix)
	parts := strings.Split(s, EraseLine+"\r\n")
	if len(parts) != rows+1 {
		t.Fatalf("got %d rows, want %d: %q", len(parts)-1, rows, s)
	}
	return parts[:rows]
}

func TestComposeEmptyDocumentWelcome(t *testing.T) {
	const rows, cols = 9, 40
	msg := "Kilo-TUI editor -- version 0.1.0"
	out := Compose(Frame{
		Doc:      docOf(),
		Viewport: view.Viewport{Rows: rows, Cols: cols},
		Welcome:  msg,
	})
	lines := bodyRows(t, out, rows)
	for y, line := range lines {
		if y == rows/2 {
			if !strings.HasPrefix(line, Filler) || !strings.HasSuffix(line, msg) {
				t.Errorf("welcome row = %q", line)
			}
			pad := (cols - len(msg)) / 2
			if len(line) != pad+len(msg) {
				t.Errorf("welcome row not centered: %q", line)
			}
			continue
		}
		if line != Filler {
			t.Errorf("row %d = %q, want filler", y, line)
		}
	}
}

func TestComposeWelcomeClipped(t *testing.T) {
	line := WelcomeLine("a very long welcome message", 6)
	if string(line) != "a very" {
		t.Fatalf("clipped welcome = %q", line)
	}
	if WelcomeLine("x", 0) != nil {
		t.Fatal("zero width should produce nothing")
	}
	if got := string(WelcomeLine("ab", 8)); got != "~  ab" {
		t.Fatalf("centered = %q", got)
	}
}

func TestComposeNoWelcomeWhenDocumentHasRows(t *testing.T) {
	out := Compose(Frame{
		Doc:      docOf("only"),
		Viewport: view.Viewport{Rows: 5, Cols: 20},
		Welcome:  "hello",
	})
	if bytes.Contains(out, []byte("hello")) {
		t.Fatal("welcome drawn for non-empty document")
	}
	lines := bodyRows(t, out, 5)
	if lines[0] != "only" {
		t.Errorf("row 0 = %q", lines[0])
	}
	for _, l := range lines[1:] {
		if l != Filler {
			t.Errorf("row = %q, want filler", l)
		}
	}
}

func TestComposeSlicesRenderByViewport(t *testing.T) {
	doc := docOf("0123456789", "\tx", "ab")
	out := Compose(Frame{
		Doc:      doc,
		Cursor:   view.Cursor{X: 1, Y: 1},
		RX:       8,
		Viewport: view.Viewport{RowOff: 0, ColOff: 4, Rows: 3, Cols: 5},
	})
	lines := bodyRows(t, out, 3)
	want := []string{"45678", "    x", ""}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if !bytes.HasSuffix(out, []byte("\x1b[2;5H"+ShowCursor)) {
		t.Errorf("cursor epilogue wrong: %q", out[len(out)-12:])
	}
}

func TestComposeRowOffset(t *testing.T) {
	doc := docOf("a", "b", "c", "d")
	out := Compose(Frame{
		Doc:      doc,
		Cursor:   view.Cursor{Y: 3},
		Viewport: view.Viewport{RowOff: 2, Rows: 3, Cols: 10},
	})
	lines := bodyRows(t, out, 3)
	if lines[0] != "c" || lines[1] != "d" || lines[2] != Filler {
		t.Errorf("rows = %q", lines)
	}
	if !bytes.Contains(out, []byte("\x1b[2;1H")) {
		t.Errorf("cursor position missing: %q", out)
	}
}

func TestComposeBars(t *testing.T) {
	out := Compose(Frame{
		Doc:      docOf("x"),
		Viewport: view.Viewport{Rows: 1, Cols: 10},
		Bars:     []string{"STATUS", "message"},
	})
	s := string(out)
	want := "x" + EraseLine + "\r\n" + EraseLine + "STATUS\r\n" + EraseLine + "message\x1b[1;1H"
	if !strings.Contains(s, want) {
		t.Fatalf("frame = %q", s)
	}
	if strings.Contains(s, ClearScreen) {
		t.Fatal("redraw must not clear the full screen")
	}
}

func TestCursorPosition(t *testing.T) {
	if got := string(CursorPosition(12, 80)); got != "\x1b[12;80H" {
		t.Fatalf("got %q", got)
	}
}
