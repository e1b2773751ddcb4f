// Package reputation provides the repository interface and record types for
// per-player trust state. The record is the only core state that outlives a
// tick: created on first contact, mutated through the manager, never
// deleted.
package reputation

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=reputationmock github.com/openrune/botcore/internal/repositories/reputation Repository

// Tier is a discrete trust level derived deterministically from the score
type Tier string

// Trust tiers, from most to least trusted
const (
	TierWhitelisted  Tier = "whitelisted"
	TierTrusted      Tier = "trusted"
	TierFriendly     Tier = "friendly"
	TierAcquaintance Tier = "acquaintance"
	TierNeutral      Tier = "neutral"
	TierSuspicious   Tier = "suspicious"
	TierBlocked      Tier = "blocked"
)

// Score bounds and tier thresholds
const (
	MinScore = -100
	MaxScore = 100

	thresholdWhitelisted  = 100
	thresholdTrusted      = 75
	thresholdFriendly     = 50
	thresholdAcquaintance = 25
	thresholdNeutral      = -9
	thresholdSuspicious   = -50
)

// TierForScore maps a clamped score onto its tier. Bands are monotonic and
// non-overlapping; a record's Tier field may never disagree with this.
func TierForScore(score int) Tier {
	switch {
	case score >= thresholdWhitelisted:
		return TierWhitelisted
	case score >= thresholdTrusted:
		return TierTrusted
	case score >= thresholdFriendly:
		return TierFriendly
	case score >= thresholdAcquaintance:
		return TierAcquaintance
	case score >= thresholdNeutral:
		return TierNeutral
	case score >= thresholdSuspicious:
		return TierSuspicious
	default:
		return TierBlocked
	}
}

// ClampScore bounds a raw score to [MinScore, MaxScore]
func ClampScore(score int) int {
	if score > MaxScore {
		return MaxScore
	}
	if score < MinScore {
		return MinScore
	}
	return score
}

// AtLeast reports whether the tier is at or above the given floor
func (t Tier) AtLeast(floor Tier) bool {
	return t.rank() >= floor.rank()
}

func (t Tier) rank() int {
	switch t {
	case TierWhitelisted:
		return 6
	case TierTrusted:
		return 5
	case TierFriendly:
		return 4
	case TierAcquaintance:
		return 3
	case TierNeutral:
		return 2
	case TierSuspicious:
		return 1
	default:
		return 0
	}
}

// Note is one audit entry attached to a record by an adjustment
type Note struct {
	Timestamp time.Time `json:"timestamp"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	NewScore  int       `json:"new_score"`
}

// Flags carry relationship markers that gate policy independent of score
type Flags struct {
	IsFriend      bool `json:"is_friend"`
	IsGuildMember bool `json:"is_guild_member"`
	IsBlacklisted bool `json:"is_blacklisted"`
}

// Record is the persistent trust state for one player
type Record struct {
	PlayerID         string    `json:"player_id"`
	Score            int       `json:"score"`
	Tier             Tier      `json:"tier"`
	Flags            Flags     `json:"flags"`
	InteractionCount int       `json:"interaction_count"`
	LastInteraction  time.Time `json:"last_interaction"`
	Notes            []Note    `json:"notes,omitempty"`
}

// NewRecord is the initial state on first contact with a player
func NewRecord(playerID string) *Record {
	return &Record{
		PlayerID: playerID,
		Score:    0,
		Tier:     TierNeutral,
	}
}

// GetInput contains parameters for retrieving a record
type GetInput struct {
	PlayerID string
}

// GetOutput contains the retrieved record
type GetOutput struct {
	Record *Record
}

// SaveInput contains the record to persist
type SaveInput struct {
	Record *Record
}

// SaveOutput contains the result of persisting a record
type SaveOutput struct {
	Record *Record
}

// Repository defines the storage contract for reputation records
type Repository interface {
	// Get retrieves a record by player ID; NotFound when the player has
	// never been seen.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save upserts a record
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}
