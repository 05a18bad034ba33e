package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"kilo-tui/internal/config"
	"kilo-tui/internal/document"
	"kilo-tui/internal/fs"
	"kilo-tui/internal/keys"
	"kilo-tui/internal/ui/styles"
	"kilo-tui/internal/view"
)

// Version печатается в приветственном сообщении
const Version = "0.0.1"

// messageTTL время жизни сообщения в строке сообщений
const messageTTL = 5 * time.Second

// State состояние сессии
type State int

const (
	Running State = iota
	Terminated
)

// Watcher источник изменений открытого файла
type Watcher interface {
	Poll() ([]fs.FileChangeEvent, error)
}

// SizeFunc запрашивает размер терминала заново
type SizeFunc func() (rows, cols int, err error)

// Options зависимости сессии
type Options struct {
	Config   *config.Config
	Document *document.Document
	Input    keys.ByteReader
	Output   io.Writer
	Rows     int
	Cols     int

	// Необязательные
	Watcher Watcher
	Resize  <-chan os.Signal
	Size    SizeFunc
	Logger  *log.Logger
	Now     func() time.Time
}

// Session представляет сеанс редактора: документ, курсор, окно просмотра
// и таблицу команд. Сессия однопоточная, все изменения происходят в Run.
type Session struct {
	config   *config.Config
	doc      *document.Document
	decoder  *keys.Decoder
	out      io.Writer
	commands *CommandRegistry
	theme    *styles.Theme

	state    State
	cursor   view.Cursor
	viewport view.Viewport
	rx       int
	termRows int
	termCols int

	message   string
	warning   bool
	messageAt time.Time

	watcher Watcher
	resize  <-chan os.Signal
	size    SizeFunc
	logger  *log.Logger
	now     func() time.Time

	dirty bool
}

// New создает сессию. Документ и конфигурация обязательны.
func New(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	doc := opts.Document
	if doc == nil {
		doc = document.New(cfg.Editor.TabStop)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		config:   cfg,
		doc:      doc,
		decoder:  keys.NewDecoder(opts.Input),
		out:      opts.Output,
		commands: DefaultCommands(cfg),
		theme:    styles.NewTheme(cfg.Theme),
		watcher:  opts.Watcher,
		resize:   opts.Resize,
		size:     opts.Size,
		logger:   logger,
		now:      now,
		dirty:    true,
	}
	s.setSize(opts.Rows, opts.Cols)

	if quit := s.commands.Get("quit"); quit != nil && quit.Binding.Enabled() {
		s.SetMessage(fmt.Sprintf("HELP: %s = quit", quit.Binding.Help().Key), false)
	}
	return s
}

// Commands возвращает таблицу команд для расширения
func (s *Session) Commands() *CommandRegistry { return s.commands }

// State текущее состояние
func (s *Session) State() State { return s.state }

// Cursor позиция курсора в документе
func (s *Session) Cursor() view.Cursor { return s.cursor }

// Viewport текущее окно просмотра
func (s *Session) Viewport() view.Viewport { return s.viewport }

// Document открытый документ
func (s *Session) Document() *document.Document { return s.doc }

// SetMessage показывает сообщение в строке сообщений
func (s *Session) SetMessage(text string, warn bool) {
	s.message = text
	s.warning = warn
	s.messageAt = s.now()
	s.dirty = true
}

// Run крутит цикл redraw → read key → dispatch до выхода.
func (s *Session) Run(ctx context.Context) error {
	for s.state == Running {
		if err := ctx.Err(); err != nil {
			s.debugf("context done: %v", err)
			return s.Quit()
		}
		if s.dirty {
			if err := s.Refresh(); err != nil {
				return err
			}
		}

		ev, err := s.decoder.ReadKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if ev.Kind == keys.KindNone {
			if err := s.idle(ctx); err != nil {
				return err
			}
			continue
		}

		s.debugf("key %s", ev)
		if err := s.Dispatch(ev); err != nil {
			return err
		}
	}
	return nil
}

// Quit очищает экран в обход компоновщика и завершает сессию.
func (s *Session) Quit() error {
	s.state = Terminated
	if _, err := io.WriteString(s.out, clearSequence); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	return nil
}

// setSize пересчитывает число текстовых строк: при включенной строке
// состояния две нижние строки заняты панелями.
func (s *Session) setSize(rows, cols int) {
	s.termRows, s.termCols = rows, cols
	textRows := rows
	if s.barsEnabled() {
		textRows -= 2
	}
	if textRows < 1 {
		textRows = 1
	}
	if cols < 1 {
		cols = 1
	}
	s.viewport.Rows = textRows
	s.viewport.Cols = cols
	s.dirty = true
}

func (s *Session) barsEnabled() bool {
	return s.config.Editor.StatusBar && s.termRows > 2
}

func (s *Session) debugf(format string, args ...any) {
	if s.config.Logging.Level == "debug" {
		s.logger.Printf("[DEBUG] "+format, args...)
	}
}
