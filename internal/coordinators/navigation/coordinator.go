// Package navigation implements the navigation coordinator, turning the
// snapshot's destination into a bounded movement plan via A*.
package navigation

import (
	"context"
	"fmt"

	"github.com/openrune/botcore/internal/config"
	"github.com/openrune/botcore/internal/coordinators"
	"github.com/openrune/botcore/internal/entities"
	"github.com/openrune/botcore/internal/errors"
	"github.com/openrune/botcore/internal/pathfind"
)

const moveConfidence = 0.8

// Config holds the dependencies for the navigation coordinator
type Config struct {
	Navigation config.NavigationConfig
}

// Validate ensures the tuning values are usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Navigation.MaxExpansions <= 0 {
		vb.InvalidField("Navigation.MaxExpansions", "must be positive")
	}
	if c.Navigation.SegmentLength <= 0 {
		vb.InvalidField("Navigation.SegmentLength", "must be positive")
	}

	return vb.Build()
}

// Coordinator proposes movement along a computed path
type Coordinator struct {
	cfg config.NavigationConfig
}

// NewCoordinator creates a navigation coordinator
func NewCoordinator(cfg *Config) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Coordinator{cfg: cfg.Navigation}, nil
}

// Name identifies the coordinator in logs
func (c *Coordinator) Name() string { return "navigation" }

// Priority is the coordinator's base recommendation weight
func (c *Coordinator) Priority() float64 { return coordinators.PriorityNavigation }

// CanHandle activates when the snapshot carries a destination on a known map
func (c *Coordinator) CanHandle(state *entities.GameState) bool {
	return state.Destination != nil && state.Map != nil
}

// Recommend computes a bounded path segment toward the destination. No
// route within the expansion budget is a data-absence condition: no
// recommendation, not an error.
func (c *Coordinator) Recommend(ctx context.Context, state *entities.GameState) ([]coordinators.Recommendation, error) {
	goal := *state.Destination
	start := state.Character.Position

	if start.DistanceTo(goal) <= c.cfg.GoalTolerance {
		return nil, nil
	}

	path := pathfind.FindPath(state.Map, start, goal, pathfind.Options{
		GoalTolerance: c.cfg.GoalTolerance,
		MaxExpansions: c.cfg.MaxExpansions,
	})
	if len(path) == 0 {
		return nil, nil
	}

	// Long routes are walked in segments; the next snapshot re-plans from
	// wherever the walk ended up.
	segment := path
	if len(segment) > c.cfg.SegmentLength {
		segment = segment[:c.cfg.SegmentLength]
	}
	next := segment[len(segment)-1]

	return []coordinators.Recommendation{{
		Action: entities.Action{
			Type:        entities.ActionMove,
			Destination: &next,
			Path:        segment,
		},
		Priority:   c.Priority(),
		Confidence: moveConfidence,
		Reasoning:  fmt.Sprintf("move toward (%d,%d), %d steps planned", goal.X, goal.Y, len(segment)),
	}}, nil
}
