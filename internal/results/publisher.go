// Package results announces completed games to an optional NATS subject.
package results

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// DefaultSubject is used when none is configured.
const DefaultSubject = "memmatch.results"

// Summary is the published form of a finished game.
type Summary struct {
	SessionID      string    `json:"session_id"`
	Difficulty     string    `json:"difficulty"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	Moves          int       `json:"moves"`
	StressIndex    int       `json:"stress_index"`
	Band           string    `json:"band"`
	FinishedAt     time.Time `json:"finished_at"`
}

// Publisher receives completed games.
type Publisher interface {
	Publish(ctx context.Context, s Summary) error
}

// Nop drops every summary.
type Nop struct{}

func (Nop) Publish(context.Context, Summary) error { return nil }

// NATSPublisher publishes JSON summaries on a subject.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

// Connect dials the NATS server at url.
func Connect(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	nc, err := nats.Connect(url,
		nats.Name("memmatch"),
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(5),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return &NATSPublisher{nc: nc, subject: subject}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, s Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}

// Encode renders a summary as the published JSON payload.
func Encode(s Summary) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	return data, nil
}
