// Package store persists analysis results as per-user, timestamped
// records. The pipeline itself never touches a store; callers decide
// whether a result is kept.
package store

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/propdoc/pkg/propdoc"
)

// AnalysisRecord is one stored result.
type AnalysisRecord struct {
	ID        string
	UserID    string
	Filename  string
	Source    string // "text", "upload", or "link"
	CreatedAt time.Time
	Result    propdoc.AnalysisResult
}

// Store is the persistence interface for analysis records.
type Store interface {
	Close() error

	SaveAnalysis(ctx context.Context, rec AnalysisRecord) error
	GetAnalysis(ctx context.Context, id string) (AnalysisRecord, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]AnalysisRecord, error)
}

// NewID returns a fresh ULID for a record.
func NewID() string {
	return ulid.Make().String()
}
