// Package delivery describes webhook delivery attempts kept for inspection.
package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mtadmin/internal/domain/record"
)

// Attempt is a single HTTP POST made for one record.
// Attempts are informational and never replayed.
type Attempt struct {
	ID         uuid.UUID
	RecordID   string
	RecordType record.RecType
	Attempt    int
	StatusCode int
	Error      string
	Delivered  bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewAttempt starts attempt number n for the given record.
func NewAttempt(recordID string, typ record.RecType, n int, started time.Time) *Attempt {
	return &Attempt{
		ID:         uuid.New(),
		RecordID:   recordID,
		RecordType: typ,
		Attempt:    n,
		StartedAt:  started,
	}
}

// Duration returns how long the attempt took.
func (a *Attempt) Duration() time.Duration {
	if a.FinishedAt.IsZero() {
		return 0
	}
	return a.FinishedAt.Sub(a.StartedAt)
}

// Query narrows a journal listing. Zero values mean no restriction.
type Query struct {
	RecordID string
	Limit    int
}

// Journal stores delivery attempts.
type Journal interface {
	Record(ctx context.Context, a *Attempt) error
	List(ctx context.Context, q Query) ([]*Attempt, error)
}

// Request is one rendered message to post for a record.
type Request struct {
	Message    string
	URL        string
	RecordID   string
	RecordType record.RecType
}

// Deliverer posts a message and reports whether it was accepted.
type Deliverer interface {
	Deliver(ctx context.Context, req Request) bool
}
