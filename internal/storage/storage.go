package storage

import (
	"context"
	"time"
)

// CallRecord is one audited tool invocation. Error is sanitized before it
// reaches the store, so the audit trail never holds credentials.
type CallRecord struct {
	ID        string        `json:"id"`
	Tool      string        `json:"tool"`
	Category  string        `json:"category"`
	Args      string        `json:"args"`
	OK        bool          `json:"ok"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// CallListOptions controls filtering and pagination for ListCalls.
type CallListOptions struct {
	Tool     string
	Category string
	// FailedOnly limits results to calls that produced an error result.
	FailedOnly bool
	Limit      int
	Offset     int
}

// Store is the persistence interface for the tool-call audit trail.
type Store interface {
	// RecordCall inserts an audit record. The ID field must be set by the
	// caller.
	RecordCall(ctx context.Context, rec *CallRecord) error

	// ListCalls returns records ordered by created_at descending.
	ListCalls(ctx context.Context, opts CallListOptions) ([]CallRecord, error)

	// Close releases resources.
	Close() error
}
