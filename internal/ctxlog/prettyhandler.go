// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/intest/internal/color"
)

var (
	// ErrMarshalAttribute is returned when an error occurs while marshaling an attribute.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when an error occurs while writing to the output.
	ErrIoWrite = errors.New("error when writing to output")
)

// TimeFormat is the format used for timestamps in log messages.
const TimeFormat = "[15:04:05.000]"

const jsonIndent = 2

var _ slog.Handler = (*PrettyHandler)(nil)

// PrettyHandler is a slog.Handler that writes one human readable line per record:
// timestamp, level, message and the attributes as indented JSON.
type PrettyHandler struct {
	opts             slog.HandlerOptions
	attrs            []groupedAttr
	groups           []string
	m                *sync.Mutex
	writer           io.Writer
	colour           bool
	outputEmptyAttrs bool
}

type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

// Option implements a functional options pattern for PrettyHandler.
type Option func(h *PrettyHandler)

// WithDestinationWriter sets the destination writer for the PrettyHandler.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *PrettyHandler) {
		h.writer = writer
	}
}

// WithColour enables color output for the PrettyHandler.
func WithColour() Option {
	return func(h *PrettyHandler) {
		h.colour = true
	}
}

// WithAutoColour enables color output when the color package detects a capable terminal.
func WithAutoColour() Option {
	return func(h *PrettyHandler) {
		h.colour = color.Enabled()
	}
}

// WithOutputEmptyAttrs writes `{}` for records without attributes.
func WithOutputEmptyAttrs() Option {
	return func(h *PrettyHandler) {
		h.outputEmptyAttrs = true
	}
}

// NewPrettyHandler creates a new PrettyHandler with the given options.
func NewPrettyHandler(handlerOptions *slog.HandlerOptions, options ...Option) *PrettyHandler {
	h := &PrettyHandler{
		m:      &sync.Mutex{},
		writer: os.Stderr,
	}

	if handlerOptions != nil {
		h.opts = *handlerOptions
	}

	for _, opt := range options {
		opt(h)
	}

	return h
}

// Enabled checks if the handler is enabled for the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

// WithAttrs creates a new handler with the given attributes.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := h.clone()
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, groupedAttr{groups: h.groups, attr: a})
	}

	return h2
}

// WithGroup creates a new handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	h2 := h.clone()
	h2.groups = append(slices.Clone(h.groups), name)

	return h2
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		opts:             h.opts,
		attrs:            slices.Clone(h.attrs),
		groups:           h.groups,
		m:                h.m,
		writer:           h.writer,
		colour:           h.colour,
		outputEmptyAttrs: h.outputEmptyAttrs,
	}
}

// Handle implements the slog.Handler interface for PrettyHandler.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	out := strings.Builder{}

	if ts := h.builtin(slog.TimeKey, slog.StringValue(r.Time.Format(TimeFormat))); ts != "" && !r.Time.IsZero() {
		out.WriteString(h.paint(ts, color.FgWhite))
		out.WriteString(" ")
	}

	if lvl := h.builtin(slog.LevelKey, slog.AnyValue(r.Level)); lvl != "" {
		out.WriteString(h.paint(lvl+":", levelColour(r.Level)))
		out.WriteString(" ")
	}

	if msg := h.builtin(slog.MessageKey, slog.StringValue(r.Message)); msg != "" {
		out.WriteString(h.paint(msg, color.FgHiWhite))
		out.WriteString(" ")
	}

	attrs, err := h.collectAttrs(r)
	if err != nil {
		return err
	}

	if h.outputEmptyAttrs || len(attrs) > 0 {
		f := colorjson.NewFormatter()
		f.Indent = jsonIndent
		f.DisabledColor = !h.colour

		b, err := f.Marshal(attrs)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}

		out.Write(b)
	}

	line := strings.TrimRight(out.String(), " ") + "\n"

	h.m.Lock()
	defer h.m.Unlock()

	if _, err := io.WriteString(h.writer, line); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

// builtin applies ReplaceAttr to one of the built-in keys and returns the
// rendered value, or "" if the attribute was dropped.
func (h *PrettyHandler) builtin(key string, v slog.Value) string {
	a := slog.Attr{Key: key, Value: v}
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return ""
	}

	return a.Value.String()
}

// collectAttrs builds a JSON compatible map of the handler and record attributes.
// The map is round-tripped through encoding/json so colorjson only sees plain values.
func (h *PrettyHandler) collectAttrs(r slog.Record) (map[string]any, error) {
	root := make(map[string]any)

	for _, ga := range h.attrs {
		h.addAttr(root, ga.groups, ga.attr)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.addAttr(root, h.groups, a)
		return true
	})

	if len(root) == 0 {
		return root, nil
	}

	raw, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshalAttribute, err)
	}

	var plain map[string]any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshalAttribute, err)
	}

	return plain, nil
}

func (h *PrettyHandler) addAttr(root map[string]any, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	dst := root
	for _, g := range groups {
		next, ok := dst[g].(map[string]any)
		if !ok {
			next = make(map[string]any)
			dst[g] = next
		}

		dst = next
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := slices.Clone(groups)
		if a.Key != "" {
			sub = append(sub, a.Key)
		}

		for _, ga := range a.Value.Group() {
			h.addAttr(root, sub, ga)
		}

		return
	}

	dst[a.Key] = plainValue(a.Value)
}

func plainValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}

		return v.Any()
	default:
		return v.Any()
	}
}

func (h *PrettyHandler) paint(s string, c color.Code) string {
	if !h.colour {
		return s
	}

	return color.Sequence(c) + s + color.Sequence(color.Reset)
}

func levelColour(l slog.Level) color.Code {
	switch {
	case l <= slog.LevelDebug:
		return color.FgWhite
	case l <= slog.LevelInfo:
		return color.FgCyan
	case l < slog.LevelWarn:
		return color.FgBlue
	case l < slog.LevelError:
		return color.FgYellow
	case l <= slog.LevelError+1:
		return color.FgRed
	default:
		return color.FgHiMagenta
	}
}
