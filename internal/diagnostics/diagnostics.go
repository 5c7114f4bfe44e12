// Package diagnostics decouples the rendering core from process-wide I/O.
// Renderers report problems through a Sink instead of writing to stderr, so
// the same code runs under tests, parallel workers, and the CLI unchanged.
package diagnostics

import (
	"log/slog"
	"sync"
)

// Severity of a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one reported problem. Source is optional and names the
// document or file the problem was found in.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Source   string   `json:"source,omitempty"`
}

// Sink receives diagnostics. Implementations must be safe for concurrent use;
// per-document rendering runs in parallel.
type Sink interface {
	Emit(d Diagnostic)
}

// SlogSink forwards diagnostics to the default structured logger.
type SlogSink struct{}

func (SlogSink) Emit(d Diagnostic) {
	switch d.Severity {
	case SeverityError:
		slog.Error(d.Message, "source", d.Source)
	case SeverityInfo:
		slog.Info(d.Message, "source", d.Source)
	default:
		slog.Warn(d.Message, "source", d.Source)
	}
}

// Collector accumulates diagnostics in memory for the build report and tests.
type Collector struct {
	mu   sync.Mutex
	list []Diagnostic
}

func (c *Collector) Emit(d Diagnostic) {
	c.mu.Lock()
	c.list = append(c.list, d)
	c.mu.Unlock()
}

// All returns a copy of everything emitted so far.
func (c *Collector) All() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.list))
	copy(out, c.list)
	return out
}

// Count returns how many diagnostics of the given severity were emitted.
func (c *Collector) Count(sev Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.list {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Multi fans one diagnostic out to several sinks.
type Multi []Sink

func (m Multi) Emit(d Diagnostic) {
	for _, s := range m {
		if s != nil {
			s.Emit(d)
		}
	}
}

// Discard drops everything. Default when no sink is injected.
type Discard struct{}

func (Discard) Emit(Diagnostic) {}
