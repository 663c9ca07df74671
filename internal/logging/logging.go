// Package logging provides the process logger: text on stderr while the
// command boots, then stderr text plus a rotated JSON log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for the JSON log file.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Option configures a Manager.
type Option func(*Manager)

// WithStderr sets the console writer. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(m *Manager) {
		m.stderr = w
	}
}

// WithRotation overrides the log file rotation limits.
func WithRotation(maxSizeMB, maxBackups, maxAgeDays int) Option {
	return func(m *Manager) {
		m.maxSizeMB = maxSizeMB
		m.maxBackups = maxBackups
		m.maxAgeDays = maxAgeDays
	}
}

// Manager handles logger lifecycle including bootstrap-to-full mode transitions.
// Components should obtain a logger via Logger() and use it for all logging.
type Manager struct {
	handler *SwappableHandler
	logger  *slog.Logger
	level   *slog.LevelVar
	stderr  io.Writer
	file    *lumberjack.Logger

	maxSizeMB  int
	maxBackups int
	maxAgeDays int

	mu sync.Mutex
}

// NewManager creates a logging manager in bootstrap mode.
// Call Upgrade once configuration is available to enable file logging.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		level:      new(slog.LevelVar),
		stderr:     os.Stderr,
		maxSizeMB:  DefaultMaxSizeMB,
		maxBackups: DefaultMaxBackups,
		maxAgeDays: DefaultMaxAgeDays,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.level.Set(DefaultLevel)

	m.handler = NewSwappableHandler(slog.NewTextHandler(m.stderr, &slog.HandlerOptions{Level: m.level}))
	m.logger = slog.New(m.handler)

	return m
}

// Logger returns the current logger instance.
// The returned logger is stable across Upgrade calls.
func (m *Manager) Logger() *slog.Logger {
	return m.logger
}

// Upgrade switches to full mode: text on stderr plus JSON lines in logFilePath,
// rotated by size. An empty path keeps stderr-only output at the new level.
func (m *Manager) Upgrade(logFilePath string, level slog.Level) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.level.Set(level)
	opts := &slog.HandlerOptions{Level: m.level}

	if logFilePath == "" {
		m.closeFile()
		m.handler.Swap(slog.NewTextHandler(m.stderr, opts))
		return nil
	}

	if err := probeLogFile(logFilePath); err != nil {
		return err
	}

	file := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    m.maxSizeMB,
		MaxBackups: m.maxBackups,
		MaxAge:     m.maxAgeDays,
	}

	m.closeFile()
	m.file = file

	m.handler.Swap(slogmulti.Fanout(
		slog.NewTextHandler(m.stderr, opts),
		slog.NewJSONHandler(file, opts),
	))

	return nil
}

// probeLogFile creates the parent directory and confirms the file is writable,
// so a bad path fails at Upgrade rather than on the first record.
func probeLogFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %q; %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q; %w", path, err)
	}
	return f.Close()
}

// SetLevel changes the log level at runtime.
func (m *Manager) SetLevel(level slog.Level) {
	m.level.Set(level)
}

// Level returns the active log level.
func (m *Manager) Level() slog.Level {
	return m.level.Level()
}

// Close closes the log file, if any. Safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeFile()
}

func (m *Manager) closeFile() error {
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil
	return err
}
