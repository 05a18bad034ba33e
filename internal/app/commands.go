package app

import (
	"github.com/charmbracelet/bubbles/key"

	"kilo-tui/internal/config"
	"kilo-tui/internal/keys"
	"kilo-tui/internal/platform"
	"kilo-tui/internal/view"
)

// Command describes an action of the dispatch table bound to one or more keys.
type Command struct {
	ID      string
	Title   string
	Binding key.Binding
	Run     func(*Session) error
}

// CommandRegistry stores commands and resolves them by key event.
type CommandRegistry struct {
	byID  map[string]*Command
	order []*Command
}

// NewCommandRegistry создает пустой реестр команд
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{byID: make(map[string]*Command)}
}

// Register adds cmd, replacing a command with the same id.
func (r *CommandRegistry) Register(cmd *Command) {
	if cmd == nil || cmd.ID == "" {
		return
	}
	if old, ok := r.byID[cmd.ID]; ok {
		for i, c := range r.order {
			if c == old {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.byID[cmd.ID] = cmd
	r.order = append(r.order, cmd)
}

// Resolve returns the first enabled command bound to ev.
func (r *CommandRegistry) Resolve(ev keys.Event) *Command {
	if ev.Kind == keys.KindNone {
		return nil
	}
	for _, cmd := range r.order {
		if key.Matches(ev, cmd.Binding) {
			return cmd
		}
	}
	return nil
}

// Get returns command by id.
func (r *CommandRegistry) Get(id string) *Command {
	if r == nil {
		return nil
	}
	return r.byID[id]
}

// All returns commands in registration order.
func (r *CommandRegistry) All() []*Command {
	return append([]*Command(nil), r.order...)
}

// NewBinding builds a key binding from key descriptions such as "Ctrl+Q" or "pgdown".
func NewBinding(title string, descs ...string) key.Binding {
	canonical := make([]string, 0, len(descs))
	for _, d := range descs {
		if c := platform.CanonicalKeyForLookup(d); c != "" {
			canonical = append(canonical, c)
		}
	}
	if len(canonical) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(canonical...),
		key.WithHelp(platform.DisplayKey(canonical[0]), title),
	)
}

var vimAliases = map[string]string{
	"cursor_left":  "h",
	"cursor_down":  "j",
	"cursor_up":    "k",
	"cursor_right": "l",
}

// DefaultCommands builds the navigation and quit commands from cfg.
func DefaultCommands(cfg *config.Config) *CommandRegistry {
	r := NewCommandRegistry()

	bind := func(id, title string, run func(*Session) error) {
		descs := cfg.Bindings(id)
		if cfg.Editor.VimKeys {
			if alias, ok := vimAliases[id]; ok {
				descs = append(descs, alias)
			}
		}
		r.Register(&Command{ID: id, Title: title, Binding: NewBinding(title, descs...), Run: run})
	}
	move := func(dir view.Direction) func(*Session) error {
		return func(s *Session) error {
			s.cursor = view.Move(s.cursor, dir, s.doc)
			return nil
		}
	}

	bind("quit", "quit", func(s *Session) error { return s.Quit() })
	bind("cursor_up", "cursor up", move(view.Up))
	bind("cursor_down", "cursor down", move(view.Down))
	bind("cursor_left", "cursor left", move(view.Left))
	bind("cursor_right", "cursor right", move(view.Right))
	bind("line_start", "start of line", func(s *Session) error {
		s.cursor = view.LineStart(s.cursor)
		return nil
	})
	bind("line_end", "end of line", func(s *Session) error {
		s.cursor = view.LineEnd(s.cursor, s.doc)
		return nil
	})
	bind("page_up", "page up", func(s *Session) error {
		s.cursor = view.PageUp(s.cursor, s.viewport, s.doc)
		return nil
	})
	bind("page_down", "page down", func(s *Session) error {
		s.cursor = view.PageDown(s.cursor, s.viewport, s.doc)
		return nil
	})

	return r
}
