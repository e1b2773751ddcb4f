package reputation

import (
	"context"
	"sync"

	"github.com/openrune/botcore/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage. Used in
// tests and in standalone runs without a Redis endpoint.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Record
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*Record),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Get retrieves a record by player ID
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.store[input.PlayerID]
	if !exists {
		return nil, errors.NotFoundf("no reputation record for player %s", input.PlayerID)
	}

	clone := *record
	clone.Notes = append([]Note(nil), record.Notes...)
	return &GetOutput{Record: &clone}, nil
}

// Save upserts a record
func (r *InMemoryRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Record == nil {
		return nil, errors.InvalidArgument(errRecordNil)
	}
	if input.Record.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	record := *input.Record
	record.Score = ClampScore(record.Score)
	record.Tier = TierForScore(record.Score)
	record.Notes = append([]Note(nil), input.Record.Notes...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[record.PlayerID] = &record

	clone := record
	return &SaveOutput{Record: &clone}, nil
}
