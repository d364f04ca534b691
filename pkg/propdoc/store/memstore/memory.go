// Package memstore is an in-memory Store used in tests and for
// ephemeral runs.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/propdoc/pkg/propdoc/internalerr"
	"github.com/cognicore/propdoc/pkg/propdoc/store"
)

type memStore struct {
	mu   sync.RWMutex
	recs map[string]store.AnalysisRecord
}

// New creates an empty in-memory store.
func New() store.Store {
	return &memStore{recs: make(map[string]store.AnalysisRecord)}
}

func (m *memStore) Close() error {
	return nil
}

func (m *memStore) SaveAnalysis(_ context.Context, rec store.AnalysisRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: record id is required", internalerr.ErrInvalidInput)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.ID] = rec
	return nil
}

func (m *memStore) GetAnalysis(_ context.Context, id string) (store.AnalysisRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.recs[id]
	if !ok {
		return store.AnalysisRecord{}, fmt.Errorf("analysis %s: %w", id, internalerr.ErrNotFound)
	}
	return rec, nil
}

func (m *memStore) ListByUser(_ context.Context, userID string, limit int) ([]store.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var recs []store.AnalysisRecord
	for _, rec := range m.recs {
		if rec.UserID == userID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].ID > recs[j].ID
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}
