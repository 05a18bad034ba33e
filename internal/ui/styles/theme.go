package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Theme содержит стили строк состояния и сообщений
type Theme struct {
	colors ColorScheme

	StatusBarStyle  lipgloss.Style
	StatusInfoStyle lipgloss.Style
	MessageStyle    lipgloss.Style
	WarningStyle    lipgloss.Style
}

// ColorScheme цветовая схема
type ColorScheme struct {
	Surface string
	Text    string
	TextDim string
	Accent  string
	Warning string
}

// Предустановленные цветовые схемы
var (
	DarkScheme = ColorScheme{
		Surface: "#1E293B", // Темно-серый
		Text:    "#F1F5F9", // Светло-серый
		TextDim: "#94A3B8", // Серый
		Accent:  "#7C3AED", // Фиолетовый
		Warning: "#F59E0B", // Оранжевый
	}

	LightScheme = ColorScheme{
		Surface: "#E2E8F0", // Светло-серый
		Text:    "#0F172A", // Темно-синий
		TextDim: "#64748B", // Серый
		Accent:  "#7C3AED", // Фиолетовый
		Warning: "#D97706", // Оранжевый
	}
)

// NewTheme создает новую тему
func NewTheme(themeName string) *Theme {
	var colors ColorScheme
	switch themeName {
	case "light":
		colors = LightScheme
	default:
		colors = DarkScheme
	}

	theme := &Theme{colors: colors}
	theme.initStyles()
	return theme
}

func (t *Theme) initStyles() {
	t.StatusBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.colors.Surface)).
		Foreground(lipgloss.Color(t.colors.Text))

	t.StatusInfoStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.colors.Accent)).
		Foreground(lipgloss.Color(t.colors.Text)).
		Bold(true)

	t.MessageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.colors.TextDim))

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.colors.Warning)).
		Bold(true)
}

// StatusBar рендерит строку состояния ровно в width колонок: left прижат
// влево, right вправо; при нехватке места right отбрасывается, left обрезается.
func (t *Theme) StatusBar(left, right string, width int) string {
	if width <= 0 {
		return ""
	}
	left = runewidth.Truncate(left, width, "")
	lw := runewidth.StringWidth(left)
	rw := runewidth.StringWidth(right)
	if rw == 0 || lw+rw+1 > width {
		return t.StatusBarStyle.Render(runewidth.FillRight(left, width))
	}
	gap := width - lw - rw
	return t.StatusBarStyle.Render(left+runewidth.FillRight("", gap)) + t.StatusInfoStyle.Render(right)
}

// Message рендерит строку сообщения, обрезанную до width колонок
func (t *Theme) Message(text string, width int, warn bool) string {
	if width <= 0 || text == "" {
		return ""
	}
	text = runewidth.Truncate(text, width, "")
	if warn {
		return t.WarningStyle.Render(text)
	}
	return t.MessageStyle.Render(text)
}
