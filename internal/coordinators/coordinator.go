// Package coordinators defines the coordinator contract and the router that
// arbitrates between coordinator recommendations each tick.
//
// A coordinator is a domain-scoped module (combat, economy, navigation,
// social) that reads the tick's snapshot and proposes weighted candidate
// actions. Coordinators never execute anything and never mutate the
// snapshot; the router selects exactly one action per tick.
package coordinators

import (
	"context"

	"github.com/openrune/botcore/internal/entities"
)

// Recommendation is one candidate action with its selection weights.
// Priority must be in [0,100] and Confidence in [0,1]; values outside those
// ranges are a contract violation by the producing coordinator.
type Recommendation struct {
	Action     entities.Action
	Priority   float64
	Confidence float64
	Reasoning  string
}

// Weight is the selection key: priority scaled by confidence
func (r Recommendation) Weight() float64 {
	return r.Priority * r.Confidence
}

// Valid reports whether the recommendation honors the producer contract
func (r Recommendation) Valid() bool {
	return r.Priority >= 0 && r.Priority <= 100 && r.Confidence >= 0 && r.Confidence <= 1
}

// Coordinator is the capability interface every gameplay domain implements
type Coordinator interface {
	// Name identifies the coordinator in logs and reasoning strings
	Name() string

	// Priority is the coordinator's base weight for the recommendations
	// it emits
	Priority() float64

	// CanHandle reports whether the coordinator has anything to say about
	// this snapshot. Recommend is only invoked when this returns true.
	CanHandle(state *entities.GameState) bool

	// Recommend proposes candidate actions for the tick. It must be a
	// pure function of the snapshot and the coordinator's own persistent
	// sub-state; an empty slice means nothing to recommend and is not an
	// error.
	Recommend(ctx context.Context, state *entities.GameState) ([]Recommendation, error)
}

// Base coordinator priorities, mirroring how urgent each domain's
// recommendations usually are.
const (
	PriorityCombat     = 80.0
	PriorityEconomy    = 50.0
	PriorityNavigation = 40.0
	PrioritySocial     = 30.0
)
