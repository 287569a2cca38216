package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warn", "error"
}

// Console keeps the most recent log messages for the web UI
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
}

// NewConsole creates a console holding up to limit messages
func NewConsole(limit int) *Console {
	return &Console{limit: max(1, limit)}
}

// Add appends a message, dropping the oldest once full
func (c *Console) Add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == c.limit {
		copy(c.messages, c.messages[1:])
		c.messages = c.messages[:c.limit-1]
	}
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the stored messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage(nil), c.messages...)
}

// ConsoleHandler is a slog.Handler that records messages to a Console and
// forwards every record to next
type ConsoleHandler struct {
	console *Console
	next    slog.Handler
	attrs   []slog.Attr
	level   slog.Leveler
}

// NewConsoleHandler tees records at or above level into console
func NewConsoleHandler(console *Console, next slog.Handler, level slog.Leveler) *ConsoleHandler {
	return &ConsoleHandler{console: console, next: next, level: level}
}

func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() || h.next.Enabled(ctx, level)
}

func (h *ConsoleHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= h.level.Level() {
		var b strings.Builder
		b.WriteString(record.Message)
		for _, attr := range h.attrs {
			fmt.Fprintf(&b, " %s=%v", attr.Key, attr.Value)
		}
		record.Attrs(func(attr slog.Attr) bool {
			fmt.Fprintf(&b, " %s=%v", attr.Key, attr.Value)
			return true
		})
		h.console.Add(ConsoleMessage{
			Message:   b.String(),
			Timestamp: record.Time,
			Level:     strings.ToLower(record.Level.String()),
		})
	}

	if h.next.Enabled(ctx, record.Level) {
		return h.next.Handle(ctx, record)
	}
	return nil
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	clone.next = h.next.WithAttrs(attrs)
	return &clone
}

// WithGroup only forwards the group; console lines stay flat
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.next = h.next.WithGroup(name)
	return &clone
}
