package logging

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler fans out log records to several handlers, typically
// stdout plus the journal plus the ring buffer.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler combines several handlers into one.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Enabled reports true if any child handler accepts the level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every child that accepts it. One
// failing sink does not stop the others.
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// WithAttrs binds the attrs to every child.
func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.transform(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

// WithGroup pushes the group onto every child.
func (m *MultiHandler) WithGroup(name string) slog.Handler {
	return m.transform(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m *MultiHandler) transform(fn func(slog.Handler) slog.Handler) *MultiHandler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = fn(h)
	}
	return &MultiHandler{handlers: handlers}
}
