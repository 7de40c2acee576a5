package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

// maxLogSize is the size at which the log file is moved aside on startup.
const maxLogSize = 2 * 1024 * 1024

// InitLogger opens (or creates) the log file at path and returns a JSON
// logger writing to it. An empty path selects the platform default for
// appName. Debug lowers the level to DEBUG and records source locations.
// The returned closer releases the file.
func InitLogger(appName, path string, debug bool) (*slog.Logger, io.Closer, error) {
	if path == "" {
		p, err := DefaultLogPath(appName)
		if err != nil {
			return nil, nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	if err := rotateIfNeeded(path); err != nil {
		return nil, nil, fmt.Errorf("rotate log file: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return New(f, debug), f, nil
}

// New returns a JSON logger writing to w.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}))
}

// NewNopLogger discards everything. Meant for tests.
func NewNopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// rotateIfNeeded keeps one previous log as <path>.1.
func rotateIfNeeded(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < maxLogSize {
		return nil
	}
	_ = os.Remove(path + ".1")
	return os.Rename(path, path+".1")
}

// DefaultLogPath returns where appName logs on this platform:
//   - macOS:   ~/Library/Logs/<app>/<app>.log
//   - Windows: %LOCALAPPDATA%\<app>\Logs\<app>.log
//   - other:   ~/.local/state/<app>/<app>.log
func DefaultLogPath(appName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Logs", appName, appName+".log"), nil
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			local = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(local, appName, "Logs", appName+".log"), nil
	default:
		return filepath.Join(home, ".local", "state", appName, appName+".log"), nil
	}
}
