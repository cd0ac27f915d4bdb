package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// LogEnv is the variable the host sets to choose the plugin's log level.
const LogEnv = "XI_LOG"

type Config struct {
	Author   string `json:"author"`
	LogLevel string `json:"log_level"`

	// LogFile defaults to DefaultLogPath when empty.
	LogFile string `json:"log_file"`

	QueueSize int `json:"queue_size"`

	// Debug logs every RPC message.
	Debug bool `json:"debug"`
}

var defaultConfig = Config{
	Author:    "wordcomplete",
	LogLevel:  "info",
	QueueSize: 1024,
}

// Default returns the built-in configuration.
func Default() Config {
	return defaultConfig
}

// Merge overlays the fields present in v, any JSON-encodable value, onto c.
func (c Config) Merge(v any) (Config, error) {
	cfg := c

	data, err := json.Marshal(v)
	if err != nil {
		return Config{}, fmt.Errorf("failed to marshal source: %w", err)
	}

	// only fields present in src will overwrite.
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal into Config: %w", err)
	}

	return cfg, nil
}

// LoadFromJSON reads JSON from r into a Config.
func LoadFromJSON(r io.Reader) (Config, error) {
	cfg := defaultConfig

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFile reads a JSON config file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadFromJSON(f)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides the log level from XI_LOG. "trace" and "debug" select
// debug logging, any other value selects info.
func (c *Config) ApplyEnv(getenv func(string) string) {
	value := getenv(LogEnv)
	if value == "" {
		return
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace", "debug":
		c.LogLevel = "debug"
	default:
		c.LogLevel = "info"
	}
}

// Verbosity maps LogLevel onto commonlog verbosity.
func (c Config) Verbosity() int {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "trace":
		return 2
	case "notice", "warning", "error":
		return 0
	default:
		return 1
	}
}

// DataLocalDir returns the per-user directory for local application data.
func DataLocalDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
		return "", fmt.Errorf("%%LOCALAPPDATA%% is not set")
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(homeDir, "Library", "Application Support"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(homeDir, ".local", "share"), nil
	}
}

// DefaultLogPath returns <data-local-dir>/xi-core/wordcomplete.log.
func DefaultLogPath() (string, error) {
	dir, err := DataLocalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "xi-core", "wordcomplete.log"), nil
}

// LogPath returns the configured log file, or the default one, and creates
// its directory.
func (c Config) LogPath() (string, error) {
	path := c.LogFile
	if path == "" {
		var err error
		if path, err = DefaultLogPath(); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	return path, nil
}
