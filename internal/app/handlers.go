package app

import (
	"context"
	"fmt"
	"path/filepath"

	"kilo-tui/internal/fs"
	"kilo-tui/internal/keys"
	"kilo-tui/internal/screen"
	"kilo-tui/internal/view"
)

const clearSequence = screen.ClearScreen + screen.CursorHome

// Dispatch выполняет команду, привязанную к событию. Несвязанные клавиши
// игнорируются.
func (s *Session) Dispatch(ev keys.Event) error {
	cmd := s.commands.Resolve(ev)
	if cmd == nil {
		return nil
	}
	if err := cmd.Run(s); err != nil {
		return fmt.Errorf("%s: %w", cmd.ID, err)
	}
	s.cursor = view.Clamp(s.cursor, s.doc)
	s.dirty = true
	return nil
}

// Refresh прокручивает окно к курсору и выводит кадр одной записью.
func (s *Session) Refresh() error {
	s.viewport, s.rx = view.Scroll(s.cursor, s.doc, s.viewport)

	frame := screen.Frame{
		Doc:      s.doc,
		Cursor:   s.cursor,
		RX:       s.rx,
		Viewport: s.viewport,
		Welcome:  fmt.Sprintf("Kilo editor -- version %s", Version),
		Bars:     s.bars(),
	}
	if _, err := s.out.Write(screen.Compose(frame)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	s.dirty = false
	return nil
}

// bars рендерит строку состояния и строку сообщений
func (s *Session) bars() []string {
	if !s.barsEnabled() {
		return nil
	}
	name := "[No Name]"
	if p := s.doc.Path(); p != "" {
		name = filepath.Base(p)
	}
	left := fmt.Sprintf("%s - %d lines", name, s.doc.NumRows())
	right := fmt.Sprintf("%d/%d", s.cursor.Y+1, s.doc.NumRows())

	var msg string
	if s.message != "" && s.now().Sub(s.messageAt) < messageTTL {
		msg = s.theme.Message(s.message, s.viewport.Cols, s.warning)
	}
	return []string{s.theme.StatusBar(left, right, s.viewport.Cols), msg}
}

// idle выполняет фоновую работу, когда чтение клавиши истекло по таймауту.
// Ничего не блокирует: сигналы и события файла забираются только если уже есть.
func (s *Session) idle(ctx context.Context) error {
	select {
	case <-ctx.Done():
		s.debugf("context done: %v", ctx.Err())
		return s.Quit()
	default:
	}

	if s.resize != nil {
		resized := false
		for drained := false; !drained; {
			select {
			case <-s.resize:
				resized = true
			default:
				drained = true
			}
		}
		if resized && s.size != nil {
			rows, cols, err := s.size()
			if err != nil {
				return fmt.Errorf("window size: %w", err)
			}
			s.debugf("resize %dx%d", rows, cols)
			s.setSize(rows, cols)
		}
	}

	if s.watcher != nil {
		events, err := s.watcher.Poll()
		if err != nil {
			s.logger.Printf("[WARN] file watcher: %v", err)
		}
		if len(events) > 0 {
			last := events[len(events)-1]
			s.debugf("file %s %s", last.Path, last.Operation)
			s.SetMessage(changeMessage(last), true)
		}
	}

	if s.message != "" && s.now().Sub(s.messageAt) >= messageTTL {
		s.message = ""
		s.dirty = s.dirty || s.barsEnabled()
	}
	return nil
}

func changeMessage(ev fs.FileChangeEvent) string {
	switch ev.Operation {
	case fs.FileDeleted, fs.FileRenamed:
		return fmt.Sprintf("file %s on disk", ev.Operation)
	default:
		return "file changed on disk"
	}
}
