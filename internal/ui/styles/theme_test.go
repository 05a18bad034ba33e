package styles

import (
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

var sgr = regexp.MustCompile("\x1b\\[[0-9;]*m")

func strip(s string) string {
	return sgr.ReplaceAllString(s, "")
}

func TestStatusBarFitsWidth(t *testing.T) {
	theme := NewTheme("dark")
	for _, width := range []int{1, 10, 20, 80} {
		bar := theme.StatusBar("notes.txt - 12 lines", "3/12", width)
		if got := lipgloss.Width(bar); got != width {
			t.Errorf("width %d: rendered %d columns", width, got)
		}
	}
	bar := strip(theme.StatusBar("a.txt", "1/2", 20))
	if !strings.HasPrefix(bar, "a.txt") || !strings.HasSuffix(bar, "1/2") {
		t.Errorf("bar = %q", bar)
	}
	if theme.StatusBar("x", "y", 0) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestMessageTruncates(t *testing.T) {
	theme := NewTheme("light")
	msg := strip(theme.Message("HELP: Ctrl-Q = quit", 5, false))
	if msg != "HELP:" {
		t.Errorf("message = %q", msg)
	}
	if theme.Message("", 10, true) != "" {
		t.Error("empty message should render nothing")
	}
}
