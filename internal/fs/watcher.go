package fs

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher следит за изменениями одного файла. Наблюдается каталог файла,
// так как многие редакторы сохраняют через переименование временного файла.
// События не доставляются в отдельной горутине: цикл редактора забирает их
// сам через Poll.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

// FileChangeEvent событие изменения файла
type FileChangeEvent struct {
	Path      string        // Путь к файлу
	Operation FileOperation // Тип операции
}

// FileOperation тип операции с файлом
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
	FileRenamed
)

// NewFileWatcher создает наблюдатель за файлом path
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &FileWatcher{watcher: watcher, path: abs}, nil
}

// Path возвращает абсолютный путь наблюдаемого файла
func (fw *FileWatcher) Path() string {
	return fw.path
}

// Poll забирает накопившиеся события без блокировки. Ошибки наблюдателя
// возвращаются первой встреченной ошибкой.
func (fw *FileWatcher) Poll() ([]FileChangeEvent, error) {
	var (
		events   []FileChangeEvent
		firstErr error
	)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return events, firstErr
			}
			if fw.pathMatches(event.Name) {
				events = append(events, fw.convertEvent(event))
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return events, firstErr
			}
			if firstErr == nil {
				firstErr = err
			}
		default:
			return events, firstErr
		}
	}
}

// Close закрывает наблюдатель
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

// convertEvent конвертирует fsnotify.Event в FileChangeEvent
func (fw *FileWatcher) convertEvent(event fsnotify.Event) FileChangeEvent {
	var operation FileOperation

	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		operation = FileCreated
	case event.Op&fsnotify.Write == fsnotify.Write:
		operation = FileModified
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		operation = FileDeleted
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		operation = FileRenamed
	default:
		operation = FileModified
	}

	return FileChangeEvent{
		Path:      event.Name,
		Operation: operation,
	}
}

// pathMatches проверяет, относится ли событие к наблюдаемому файлу
func (fw *FileWatcher) pathMatches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == fw.path
}

// String возвращает строковое представление операции
func (op FileOperation) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileModified:
		return "modified"
	case FileDeleted:
		return "deleted"
	case FileRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}
