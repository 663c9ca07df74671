package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/leefowlercu/assetbridge/internal/fsutil"
	"github.com/leefowlercu/assetbridge/internal/ledger"
)

// ErrManifestNotFound is returned by Load when no manifest exists at the path.
var ErrManifestNotFound = errors.New("manifest not found")

// Writer serializes ledger snapshots to the manifest file.
type Writer struct {
	logger    *slog.Logger
	now       func() time.Time
	newRunID  func() string
	generator string
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithClock sets the time source for the session timestamp.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// WithRunID fixes the run id instead of generating one.
func WithRunID(id string) Option {
	return func(w *Writer) {
		w.newRunID = func() string { return id }
	}
}

// WithGenerator sets the generator label recorded in the session.
func WithGenerator(generator string) Option {
	return func(w *Writer) {
		w.generator = generator
	}
}

// NewWriter creates a Writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		logger:   slog.Default(),
		now:      time.Now,
		newRunID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write writes the manifest of snap to <outputRoot>/export_report.json and
// returns its path. An empty snapshot writes nothing and returns "".
// The write is atomic, so an interrupted run never leaves a partial manifest.
func (w *Writer) Write(snap ledger.Snapshot, outputRoot string) (string, error) {
	if snap.Total() == 0 {
		w.logger.Info("no artifacts exported; skipping manifest")
		return "", nil
	}

	m := FromSnapshot(snap, outputRoot, w.newRunID(), w.generator, w.now())

	data, err := Encode(m)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outputRoot, ManifestName)
	if err := fsutil.AtomicWriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest; %w", err)
	}

	w.logger.Info("manifest written", "path", path, "assets", len(m.Assets), "run_id", m.ExportSession.RunID)
	return path, nil
}

// Encode renders a manifest as indented JSON with a trailing newline.
func Encode(m *Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest; %w", err)
	}
	return append(data, '\n'), nil
}

// Load reads a manifest. path may be the manifest file or the output root
// containing it.
func Load(path string) (*Manifest, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, ManifestName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrManifestNotFound)
		}
		return nil, fmt.Errorf("failed to read manifest; %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s; %w", path, err)
	}
	return &m, nil
}
