package logging

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
)

// Scope holds the label of the work in progress, such as the scenario being
// evaluated. While a label is set, every record logged through a Setup
// logger carries it under the scope's key.
type Scope struct {
	key   string
	label atomic.Pointer[string]
}

// NewScope creates an empty scope whose label is logged under key.
func NewScope(key string) *Scope {
	return &Scope{key: key}
}

// Enter sets the label and returns a func restoring the previous one.
func (s *Scope) Enter(label string) (leave func()) {
	prev := s.label.Swap(&label)
	return func() { s.label.Store(prev) }
}

// Label returns the current label, or "" outside any Enter.
func (s *Scope) Label() string {
	if l := s.label.Load(); l != nil {
		return *l
	}
	return ""
}

func (s *Scope) attr() (slog.Attr, bool) {
	if s == nil {
		return slog.Attr{}, false
	}
	label := s.Label()
	return slog.String(s.key, label), label != ""
}

// scopeHandler stamps records with the scope label at Handle time, so
// loggers derived before Enter still pick it up.
type scopeHandler struct {
	inner slog.Handler
	scope *Scope
}

func (h *scopeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *scopeHandler) Handle(ctx context.Context, r slog.Record) error {
	if a, ok := h.scope.attr(); ok {
		r.AddAttrs(a)
	}
	return h.inner.Handle(ctx, r)
}

func (h *scopeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &scopeHandler{inner: h.inner.WithAttrs(attrs), scope: h.scope}
}

func (h *scopeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &scopeHandler{inner: h.inner.WithGroup(name), scope: h.scope}
}

// tee writes each record to the text output and the OTel bridge.
// A failing side does not stop the other; both errors are returned.
type tee struct {
	local, remote slog.Handler
}

func (t tee) Enabled(ctx context.Context, level slog.Level) bool {
	return t.local.Enabled(ctx, level) || t.remote.Enabled(ctx, level)
}

func (t tee) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	if t.local.Enabled(ctx, r.Level) {
		errs = append(errs, t.local.Handle(ctx, r.Clone()))
	}
	if t.remote.Enabled(ctx, r.Level) {
		errs = append(errs, t.remote.Handle(ctx, r.Clone()))
	}
	return errors.Join(errs...)
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	return tee{local: t.local.WithAttrs(attrs), remote: t.remote.WithAttrs(attrs)}
}

func (t tee) WithGroup(name string) slog.Handler {
	if name == "" {
		return t
	}
	return tee{local: t.local.WithGroup(name), remote: t.remote.WithGroup(name)}
}
