// Package reputation implements the reputation manager: the single mutation
// entry point for per-player trust state. Every social and economic policy
// decision reads tiers and flags through this service.
package reputation

//go:generate mockgen -destination=mock/mock_service.go -package=reputationmock github.com/openrune/botcore/internal/orchestrators/reputation Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/openrune/botcore/internal/errors"
	"github.com/openrune/botcore/internal/pkg/clock"
	repo "github.com/openrune/botcore/internal/repositories/reputation"
)

const (
	// Audit notes kept per record
	maxNotes = 50

	// One retry for a failed persistence write; the mutation itself is
	// never retried wholesale.
	writeRetries = 1
)

// Service defines the interface for reputation operations
type Service interface {
	// GetReputation returns the record for a player, or the neutral
	// default when the player has never been seen.
	GetReputation(ctx context.Context, input *GetReputationInput) (*GetReputationOutput, error)

	// AdjustReputation applies a delta to a player's score with an audit
	// reason. It is the sole mutator of reputation state.
	AdjustReputation(ctx context.Context, input *AdjustReputationInput) (*AdjustReputationOutput, error)

	// SetFlags updates relationship markers (friend, guild, blacklist)
	SetFlags(ctx context.Context, input *SetFlagsInput) (*SetFlagsOutput, error)
}

// GetReputationInput contains parameters for reading a record
type GetReputationInput struct {
	PlayerID string
}

// GetReputationOutput contains the record, never nil on success
type GetReputationOutput struct {
	Record *repo.Record
}

// AdjustReputationInput contains one score adjustment
type AdjustReputationInput struct {
	PlayerID string
	Delta    int
	Reason   string
}

// AdjustReputationOutput contains the record after adjustment
type AdjustReputationOutput struct {
	Record *repo.Record
	// Durable is false when the write could not be persisted and the
	// change lives only in the in-process cache.
	Durable bool
}

// SetFlagsInput contains the flags to store for a player
type SetFlagsInput struct {
	PlayerID string
	Flags    repo.Flags
}

// SetFlagsOutput contains the record after the flag update
type SetFlagsOutput struct {
	Record *repo.Record
}

// Config holds the dependencies for the reputation orchestrator
type Config struct {
	Repo  repo.Repository
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repo == nil {
		vb.RequiredField("Repo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	repo  repo.Repository
	clock clock.Clock

	// mu guards locks and cache. Per-player locks serialize adjustments so
	// concurrent coordinators touching the same player never lose updates.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	cache map[string]*repo.Record
}

// NewOrchestrator creates a new reputation orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:  cfg.Repo,
		clock: cfg.Clock,
		locks: make(map[string]*sync.Mutex),
		cache: make(map[string]*repo.Record),
	}, nil
}

func (o *orchestrator) recordLock(playerID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	l, ok := o.locks[playerID]
	if !ok {
		l = &sync.Mutex{}
		o.locks[playerID] = l
	}
	return l
}

func (o *orchestrator) cached(playerID string) *repo.Record {
	o.mu.Lock()
	defer o.mu.Unlock()
	r, ok := o.cache[playerID]
	if !ok {
		return nil
	}
	clone := *r
	return &clone
}

func (o *orchestrator) remember(record *repo.Record) {
	o.mu.Lock()
	defer o.mu.Unlock()
	clone := *record
	o.cache[record.PlayerID] = &clone
}

// load fetches the current record: repository first, in-process cache when
// the repository is unreachable, neutral default on first contact.
func (o *orchestrator) load(ctx context.Context, playerID string) (*repo.Record, error) {
	out, err := o.repo.Get(ctx, repo.GetInput{PlayerID: playerID})
	if err == nil {
		return out.Record, nil
	}
	if errors.IsNotFound(err) {
		if c := o.cached(playerID); c != nil {
			return c, nil
		}
		return repo.NewRecord(playerID), nil
	}
	if c := o.cached(playerID); c != nil {
		slog.Warn("reputation read degraded to cache",
			"player_id", playerID,
			"error", err,
		)
		return c, nil
	}
	return nil, errors.Wrap(err, "failed to load reputation record")
}

// GetReputation returns the record for a player, defaulting new players to
// score 0, tier neutral.
func (o *orchestrator) GetReputation(ctx context.Context, input *GetReputationInput) (*GetReputationOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	record, err := o.load(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &GetReputationOutput{Record: record}, nil
}

// AdjustReputation applies new_score = clamp(old + delta, -100, 100),
// recomputes the tier, appends an audit note, and persists the record. A
// failed write is retried once; after that the change is kept in-process
// and the durability loss is logged rather than failing the tick.
func (o *orchestrator) AdjustReputation(ctx context.Context, input *AdjustReputationInput) (*AdjustReputationOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	if input.Reason == "" {
		return nil, errors.InvalidArgument("adjustment reason is required")
	}

	lock := o.recordLock(input.PlayerID)
	lock.Lock()
	defer lock.Unlock()

	record, err := o.load(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	oldScore := record.Score
	record.Score = repo.ClampScore(record.Score + input.Delta)
	record.Tier = repo.TierForScore(record.Score)
	record.InteractionCount++
	record.LastInteraction = o.clock.Now()
	record.Notes = append(record.Notes, repo.Note{
		Timestamp: o.clock.Now(),
		Delta:     input.Delta,
		Reason:    input.Reason,
		NewScore:  record.Score,
	})
	if len(record.Notes) > maxNotes {
		record.Notes = record.Notes[len(record.Notes)-maxNotes:]
	}

	o.remember(record)

	durable := false
	for attempt := 0; attempt <= writeRetries; attempt++ {
		if _, err := o.repo.Save(ctx, repo.SaveInput{Record: record}); err == nil {
			durable = true
			break
		} else if attempt == writeRetries {
			slog.Error("reputation write failed, durability lost",
				"player_id", input.PlayerID,
				"reason", input.Reason,
				"error", err,
			)
		}
	}

	slog.Info("reputation adjusted",
		"player_id", input.PlayerID,
		"old_score", oldScore,
		"new_score", record.Score,
		"tier", record.Tier,
		"reason", input.Reason,
		"durable", durable,
	)

	return &AdjustReputationOutput{Record: record, Durable: durable}, nil
}

// SetFlags updates relationship markers for a player
func (o *orchestrator) SetFlags(ctx context.Context, input *SetFlagsInput) (*SetFlagsOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	lock := o.recordLock(input.PlayerID)
	lock.Lock()
	defer lock.Unlock()

	record, err := o.load(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	record.Flags = input.Flags
	o.remember(record)

	if _, err := o.repo.Save(ctx, repo.SaveInput{Record: record}); err != nil {
		return nil, errors.Wrap(err, "failed to persist flags")
	}

	return &SetFlagsOutput{Record: record}, nil
}
