package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// SwappableHandler forwards records to a handler that can be replaced at runtime.
// Loggers derived with With or WithGroup keep following later swaps.
type SwappableHandler struct {
	root *atomic.Pointer[slog.Handler]
	ops  []func(slog.Handler) slog.Handler
}

// NewSwappableHandler creates a handler with an initial handler.
func NewSwappableHandler(initial slog.Handler) *SwappableHandler {
	root := &atomic.Pointer[slog.Handler]{}
	root.Store(&initial)
	return &SwappableHandler{root: root}
}

// Swap atomically replaces the underlying handler for this handler and every
// handler derived from it.
func (sh *SwappableHandler) Swap(next slog.Handler) {
	sh.root.Store(&next)
}

func (sh *SwappableHandler) current() slog.Handler {
	h := *sh.root.Load()
	for _, op := range sh.ops {
		h = op(h)
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (sh *SwappableHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*sh.root.Load()).Enabled(ctx, level)
}

// Handle handles the Record.
func (sh *SwappableHandler) Handle(ctx context.Context, r slog.Record) error {
	return sh.current().Handle(ctx, r)
}

// WithAttrs returns a derived handler that adds attrs to every record.
func (sh *SwappableHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return sh
	}
	return sh.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

// WithGroup returns a derived handler that nests later attrs under name.
func (sh *SwappableHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return sh
	}
	return sh.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (sh *SwappableHandler) derive(op func(slog.Handler) slog.Handler) *SwappableHandler {
	ops := make([]func(slog.Handler) slog.Handler, len(sh.ops), len(sh.ops)+1)
	copy(ops, sh.ops)
	return &SwappableHandler{root: sh.root, ops: append(ops, op)}
}
