package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config конфигурация приложения
type Config struct {
	// Внешний вид
	Theme string `yaml:"theme"` // "dark" или "light"

	// Редактор
	Editor EditorConfig `yaml:"editor"`

	// Горячие клавиши: id команды -> список клавиш через запятую
	Keybindings map[string]string `yaml:"keybindings"`

	// Логирование
	Logging LoggingConfig `yaml:"logging"`
}

// EditorConfig настройки редактора
type EditorConfig struct {
	TabStop       int  `yaml:"tab_stop"`
	ReadTimeoutMs int  `yaml:"read_timeout_ms"` // таймаут read() в raw-режиме
	VimKeys       bool `yaml:"vim_keys"`        // h/j/k/l как стрелки
	StatusBar     bool `yaml:"status_bar"`
	WatchFile     bool `yaml:"watch_file"`
}

// LoggingConfig настройки логирования
type LoggingConfig struct {
	Level    string `yaml:"level"`     // debug, info, warn, error
	FilePath string `yaml:"file_path"` // Путь к файлу логов
}

const (
	DefaultTabStop     = 8
	DefaultReadTimeout = 100 * time.Millisecond
)

// DefaultKeybindings возвращает привязки клавиш по умолчанию
func DefaultKeybindings() map[string]string {
	return map[string]string{
		"quit":         "ctrl+q",
		"cursor_up":    "up",
		"cursor_down":  "down",
		"cursor_left":  "left",
		"cursor_right": "right",
		"line_start":   "home",
		"line_end":     "end",
		"page_up":      "pgup",
		"page_down":    "pgdown",
	}
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		Theme: "dark",

		Editor: EditorConfig{
			TabStop:       DefaultTabStop,
			ReadTimeoutMs: int(DefaultReadTimeout / time.Millisecond),
			VimKeys:       false,
			StatusBar:     true,
			WatchFile:     true,
		},

		Keybindings: DefaultKeybindings(),

		Logging: LoggingConfig{
			Level:    "info",
			FilePath: "", // Будет определен автоматически
		},
	}
}

// Load загружает конфигурацию из стандартного места
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		cfg := DefaultConfig()
		cfg.normalize()
		return cfg, err // Возвращаем конфиг по умолчанию
	}

	// Если файл не существует, создаем его с настройками по умолчанию
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		saveErr := cfg.Save(configPath)
		cfg.normalize()
		return cfg, saveErr
	}

	return LoadFrom(configPath)
}

// LoadFrom читает конфигурацию из указанного файла
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		cfg.normalize()
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = DefaultConfig()
		cfg.normalize()
		return cfg, err
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = getDefaultLogPath()
	}
	c.applyKeybindingDefaults(DefaultKeybindings())
	_ = c.Validate()
}

func (c *Config) applyKeybindingDefaults(defaults map[string]string) {
	if defaults == nil {
		return
	}
	if c.Keybindings == nil {
		c.Keybindings = make(map[string]string, len(defaults))
	}
	for key, value := range defaults {
		current, ok := c.Keybindings[key]
		if !ok || strings.TrimSpace(current) == "" {
			c.Keybindings[key] = value
		}
	}
}

// Bindings возвращает список клавиш для команды
func (c *Config) Bindings(id string) []string {
	raw := c.Keybindings[id]
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ReadTimeout возвращает таймаут чтения клавиши
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Editor.ReadTimeoutMs) * time.Millisecond
}

// Save сохраняет конфигурацию в файл
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// getConfigPath возвращает путь к конфигурационному файлу
func getConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "kilo-tui", "config.yaml"), nil
}

// getDefaultLogPath возвращает путь к файлу логов по умолчанию
func getDefaultLogPath() string {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		homeDir, _ := os.UserHomeDir()
		cacheDir = filepath.Join(homeDir, ".cache")
	}

	return filepath.Join(cacheDir, "kilo-tui", "app.log")
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Theme != "dark" && c.Theme != "light" {
		c.Theme = "dark"
	}

	if c.Editor.TabStop < 1 || c.Editor.TabStop > 16 {
		c.Editor.TabStop = DefaultTabStop
	}

	// VTIME задается в десятых долях секунды и помещается в байт
	if c.Editor.ReadTimeoutMs < 100 || c.Editor.ReadTimeoutMs > 25500 {
		c.Editor.ReadTimeoutMs = int(DefaultReadTimeout / time.Millisecond)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Logging.Level] {
		c.Logging.Level = "info"
	}

	return nil
}
