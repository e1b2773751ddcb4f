// Package economy implements the economy coordinator: loot prioritization,
// trade valuation with scam detection, and weight/inventory upkeep.
package economy

import (
	"context"
	"fmt"

	"github.com/openrune/botcore/internal/config"
	"github.com/openrune/botcore/internal/coordinators"
	"github.com/openrune/botcore/internal/entities"
	"github.com/openrune/botcore/internal/errors"
)

const (
	// Confidence starts here for the top pickup and falls off per rank
	pickupBaseConfidence = 0.9
	pickupConfidenceStep = 0.1
	pickupMinConfidence  = 0.3

	upkeepConfidence = 0.85
)

// Config holds the dependencies for the economy coordinator
type Config struct {
	Economy config.EconomyConfig
}

// Validate ensures the tuning values are usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Economy.OverweightRatio <= 0 || c.Economy.OverweightRatio > 1 {
		vb.InvalidField("Economy.OverweightRatio", "must be in (0,1]")
	}
	if c.Economy.InventorySellThreshold <= 0 {
		vb.InvalidField("Economy.InventorySellThreshold", "must be positive")
	}

	return vb.Build()
}

// Coordinator proposes pickups and upkeep trips for the tick
type Coordinator struct {
	cfg config.EconomyConfig
}

// NewCoordinator creates an economy coordinator
func NewCoordinator(cfg *Config) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Coordinator{cfg: cfg.Economy}, nil
}

// Name identifies the coordinator in logs
func (c *Coordinator) Name() string { return "economy" }

// Priority is the coordinator's base recommendation weight
func (c *Coordinator) Priority() float64 { return coordinators.PriorityEconomy }

// CanHandle activates when there is loot on the ground or upkeep is due
func (c *Coordinator) CanHandle(state *entities.GameState) bool {
	if len(state.GroundItems) > 0 {
		return true
	}
	return c.overweight(state) || c.inventoryFull(state)
}

// Recommend emits one recommendation per worthwhile pickup, ranked by the
// loot total order, plus an upkeep trip when weight or inventory demand it.
// The aggregator still picks a single action.
func (c *Coordinator) Recommend(ctx context.Context, state *entities.GameState) ([]coordinators.Recommendation, error) {
	var recs []coordinators.Recommendation

	if c.overweight(state) {
		recs = append(recs, coordinators.Recommendation{
			Action:     entities.Action{Type: entities.ActionTalkToNPC, TargetID: "storage"},
			Priority:   c.Priority() + 10,
			Confidence: upkeepConfidence,
			Reasoning:  fmt.Sprintf("overweight at %.0f%%, visiting storage", state.Character.WeightRatio()*100),
		})
	} else if c.inventoryFull(state) {
		recs = append(recs, coordinators.Recommendation{
			Action:     entities.Action{Type: entities.ActionTalkToNPC, TargetID: "vendor"},
			Priority:   c.Priority() + 10,
			Confidence: upkeepConfidence,
			Reasoning:  fmt.Sprintf("%d items carried, selling off", state.Character.InventoryUsed),
		})
	}

	for rank, scored := range PrioritizeLoot(state.GroundItems) {
		confidence := pickupBaseConfidence - pickupConfidenceStep*float64(rank)
		if confidence < pickupMinConfidence {
			confidence = pickupMinConfidence
		}
		recs = append(recs, coordinators.Recommendation{
			Action: entities.Action{
				Type:        entities.ActionPickUp,
				ItemID:      scored.Item.ID,
				Destination: &scored.Item.Position,
			},
			Priority:   c.Priority(),
			Confidence: confidence,
			Reasoning:  fmt.Sprintf("pick up %s (score %.0f)", scored.Item.Name, scored.Score),
		})
	}

	return recs, nil
}

func (c *Coordinator) overweight(state *entities.GameState) bool {
	return state.Character.WeightRatio() > c.cfg.OverweightRatio
}

func (c *Coordinator) inventoryFull(state *entities.GameState) bool {
	return state.Character.InventoryUsed > c.cfg.InventorySellThreshold
}
