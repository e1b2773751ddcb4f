package reputation

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/openrune/botcore/internal/errors"
	"github.com/openrune/botcore/internal/pkg/clock"
	redisclient "github.com/openrune/botcore/internal/redis"
)

const (
	// Key pattern: reputation:{player_id}
	recordKeyPrefix = "reputation:"

	errPlayerIDEmpty = "player ID cannot be empty"
	errRecordNil     = "record cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for reputation records
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Get retrieves a reputation record by player ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := r.buildKey(input.PlayerID)

	recordJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no reputation record for player %s", input.PlayerID)
		}
		return nil, errors.Wrapf(err, "failed to get reputation record from Redis")
	}

	var record Record
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal reputation record")
	}

	// Tier is derived state; recompute in case the stored copy predates a
	// band change.
	record.Tier = TierForScore(record.Score)

	return &GetOutput{
		Record: &record,
	}, nil
}

// Save upserts a reputation record. Records have no TTL: reputation is
// never deleted, only overwritten.
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Record == nil {
		return nil, errors.InvalidArgument(errRecordNil)
	}
	if input.Record.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	record := *input.Record
	record.Score = ClampScore(record.Score)
	record.Tier = TierForScore(record.Score)
	record.LastInteraction = r.clock.Now()

	recordJSON, err := json.Marshal(&record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal reputation record")
	}

	key := r.buildKey(record.PlayerID)
	if err := r.client.Set(ctx, key, recordJSON, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store reputation record in Redis")
	}

	return &SaveOutput{
		Record: &record,
	}, nil
}

// buildKey creates the Redis key for a reputation record
func (r *redisRepository) buildKey(playerID string) string {
	return fmt.Sprintf("%s%s", recordKeyPrefix, playerID)
}
