package diagnostics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSSinkConfig configures the optional JetStream diagnostics publisher.
type NATSSinkConfig struct {
	URL     string
	Subject string
	RunID   string
}

// NATSSink publishes diagnostics as JetStream events so broken-link reports
// can feed downstream tooling without coupling the generator to it.
type NATSSink struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
	runID   string
}

// diagnosticEvent is the wire form of one published diagnostic.
type diagnosticEvent struct {
	RunID     string    `json:"run_id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewNATSSink connects and prepares the JetStream context.
func NewNATSSink(cfg NATSSinkConfig) (*NATSSink, error) {
	if cfg.URL == "" || cfg.Subject == "" {
		return nil, fmt.Errorf("nats diagnostics require url and subject")
	}
	conn, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}
	slog.Info("NATS diagnostics sink initialized", "url", cfg.URL, "subject", cfg.Subject)
	return &NATSSink{conn: conn, js: js, subject: cfg.Subject, runID: cfg.RunID}, nil
}

// Emit publishes one event. Publish failures are logged, never propagated;
// diagnostics delivery must not fail a build.
func (s *NATSSink) Emit(d Diagnostic) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(diagnosticEvent{
		RunID:     s.runID,
		Severity:  d.Severity,
		Message:   d.Message,
		Source:    d.Source,
		Timestamp: time.Now(),
	})
	if err != nil {
		slog.Warn("Failed to marshal diagnostic event", "error", err)
		return
	}
	if _, err := s.js.Publish(ctx, s.subject, data); err != nil {
		slog.Warn("Failed to publish diagnostic event", "error", err, "subject", s.subject)
	}
}

// Close drains the underlying connection.
func (s *NATSSink) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}
