package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"kilo-tui/internal/app"
	"kilo-tui/internal/config"
	"kilo-tui/internal/document"
	"kilo-tui/internal/fs"
	"kilo-tui/internal/screen"
	"kilo-tui/internal/terminal"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	configPath := flag.String("config", "", "path to config file")
	inspect := flag.Bool("keys", false, "print decoded keys until 'q' is pressed")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, cfgErr := loadConfig(*configPath)
	if cfg == nil {
		fmt.Fprintf(os.Stderr, "kilo-tui: load config: %v\n", cfgErr)
		return 1
	}

	if f := setupLogging(cfg); f != nil {
		defer f.Close()
	}
	// Значения по умолчанию пригодны, даже если файл не удалось прочитать или создать
	if cfgErr != nil {
		log.Printf("[WARN] config: %v, using defaults", cfgErr)
	}

	stdin, stdout := int(os.Stdin.Fd()), int(os.Stdout.Fd())
	ctrl := terminal.NewController(stdin, cfg.ReadTimeout())

	// Терминал восстанавливается на любом пути выхода, включая панику
	defer func() {
		if r := recover(); r != nil {
			code = fail(ctrl, fmt.Errorf("panic: %v", r))
		}
	}()

	var (
		doc *document.Document
		err error
	)
	if path := flag.Arg(0); path != "" {
		doc, err = document.Open(path, cfg.Editor.TabStop)
		if err != nil {
			return fail(ctrl, err)
		}
	}

	if err := ctrl.Enable(); err != nil {
		return fail(ctrl, fmt.Errorf("enable raw mode: %w", err))
	}
	input := terminal.NewInput(stdin)

	if *inspect {
		if err := app.InspectKeys(input, os.Stdout); err != nil {
			return fail(ctrl, err)
		}
		return restore(ctrl)
	}

	rows, cols, err := terminal.WindowSize(stdout, os.Stdout, input)
	if err != nil {
		return fail(ctrl, fmt.Errorf("window size: %w", err))
	}

	// Создаем контекст, отменяемый сигналами завершения
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)

	opts := app.Options{
		Config:   cfg,
		Document: doc,
		Input:    input,
		Output:   os.Stdout,
		Rows:     rows,
		Cols:     cols,
		Resize:   winch,
		Size: func() (int, int, error) {
			return terminal.WindowSize(stdout, os.Stdout, input)
		},
		Logger: log.Default(),
	}

	if doc != nil && cfg.Editor.WatchFile {
		watcher, err := fs.NewFileWatcher(doc.Path())
		if err != nil {
			log.Printf("[WARN] watch %s: %v", doc.Path(), err)
		} else {
			defer watcher.Close()
			opts.Watcher = watcher
			log.Printf("[INFO] watching %s", watcher.Path())
		}
	}

	session := app.New(opts)
	log.Printf("[INFO] session started %dx%d, read timeout %v, file %q", rows, cols, ctrl.Timeout(), flag.Arg(0))
	if cfg.Logging.Level == "debug" {
		for _, cmd := range session.Commands().All() {
			log.Printf("[DEBUG] command %s: %s", cmd.ID, strings.Join(cmd.Binding.Keys(), ", "))
		}
	}
	if err := session.Run(ctx); err != nil {
		return fail(ctrl, err)
	}
	return restore(ctrl)
}

// loadConfig читает конфигурацию. Ошибка явно указанного файла фатальна;
// для файла по умолчанию возвращаются значения по умолчанию вместе с ошибкой.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFrom(path)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.Load()
}

// setupLogging направляет стандартный логгер в файл: stdout и stderr
// заняты редактором, пока терминал в сыром режиме.
func setupLogging(cfg *config.Config) *os.File {
	log.SetOutput(io.Discard)
	path := cfg.Logging.FilePath
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func restore(ctrl *terminal.Controller) int {
	if err := ctrl.Disable(); err != nil {
		fmt.Fprintf(os.Stderr, "kilo-tui: %v\n", err)
		return 1
	}
	return 0
}

// fail очищает экран, восстанавливает терминал и сообщает об ошибке.
func fail(ctrl *terminal.Controller, err error) int {
	log.Printf("[ERROR] %v", err)
	if ctrl.Enabled() {
		io.WriteString(os.Stdout, screen.ClearScreen+screen.CursorHome)
	}
	if rerr := ctrl.Disable(); rerr != nil {
		log.Printf("[ERROR] %v", rerr)
	}
	fmt.Fprintf(os.Stderr, "kilo-tui: %v\n", err)
	return 1
}
