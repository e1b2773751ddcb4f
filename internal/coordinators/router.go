package coordinators

import (
	"context"
	"log/slog"
	"time"

	"github.com/openrune/botcore/internal/entities"
	"github.com/openrune/botcore/internal/errors"
)

// DefaultTickBudget bounds a single coordinator's Recommend call
const DefaultTickBudget = 100 * time.Millisecond

// Decision is the router's output for one tick
type Decision struct {
	Action entities.Action
	// Source names the coordinator whose recommendation won, empty for
	// the no-op fallback.
	Source    string
	Reasoning string
	// Considered counts valid recommendations across all coordinators
	Considered int
}

// RouterConfig holds the dependencies for the router
type RouterConfig struct {
	// Coordinators in registration order. Order does not change which
	// action wins except on exact weight ties, where the first maximal
	// recommendation in registration order is kept.
	Coordinators []Coordinator

	// TickBudget bounds each coordinator invocation; zero means
	// DefaultTickBudget.
	TickBudget time.Duration
}

// Validate ensures the router has something to route
func (c *RouterConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(c.Coordinators) == 0 {
		vb.RequiredField("Coordinators")
	}
	for i, coord := range c.Coordinators {
		if coord == nil {
			vb.Fieldf("Coordinators", "entry %d is nil", i)
		}
	}

	return vb.Build()
}

// Router fans one snapshot out to every registered coordinator and selects
// the single action with the highest priority x confidence. The router
// itself never fails: a faulting, panicking, or overrunning coordinator
// contributes nothing for the tick.
type Router struct {
	coordinators []Coordinator
	tickBudget   time.Duration
}

// NewRouter creates a router over the given coordinators
func NewRouter(cfg *RouterConfig) (*Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	budget := cfg.TickBudget
	if budget == 0 {
		budget = DefaultTickBudget
	}

	return &Router{
		coordinators: cfg.Coordinators,
		tickBudget:   budget,
	}, nil
}

// Decide runs every coordinator against the snapshot and returns exactly
// one action, possibly the no-op.
func (r *Router) Decide(ctx context.Context, state *entities.GameState) (*Decision, error) {
	if state == nil {
		return nil, errors.InvalidArgument("state is required")
	}

	// Coordinators are read-only over the shared snapshot, so they run
	// concurrently; results are re-assembled in registration order before
	// selection so ties stay deterministic.
	type result struct {
		idx  int
		recs []Recommendation
	}
	resCh := make(chan result, len(r.coordinators))

	pending := 0
	for i, coord := range r.coordinators {
		if !coord.CanHandle(state) {
			continue
		}
		pending++
		go func(i int, coord Coordinator) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("coordinator panicked",
						"coordinator", coord.Name(),
						"panic", rec,
					)
					resCh <- result{idx: i}
				}
			}()

			cctx, cancel := context.WithTimeout(ctx, r.tickBudget)
			defer cancel()

			recs, err := coord.Recommend(cctx, state)
			if err != nil {
				slog.Warn("coordinator failed, skipping for tick",
					"coordinator", coord.Name(),
					"error", err,
				)
				resCh <- result{idx: i}
				return
			}
			resCh <- result{idx: i, recs: recs}
		}(i, coord)
	}

	// A coordinator that overruns the budget is treated as failed for the
	// tick; its late result lands in the buffered channel and is dropped.
	results := make([][]Recommendation, len(r.coordinators))
	deadline := time.NewTimer(r.tickBudget + 20*time.Millisecond)
	defer deadline.Stop()
	for received := 0; received < pending; {
		select {
		case res := <-resCh:
			results[res.idx] = res.recs
			received++
		case <-deadline.C:
			slog.Warn("coordinator overran tick budget",
				"pending", pending-received,
			)
			received = pending
		}
	}

	var (
		best       *Recommendation
		bestSource string
		considered int
	)
	for i, coord := range r.coordinators {
		for j := range results[i] {
			rec := results[i][j]
			if !rec.Valid() {
				slog.Error("recommendation violates contract, dropped",
					"coordinator", coord.Name(),
					"priority", rec.Priority,
					"confidence", rec.Confidence,
				)
				continue
			}
			considered++
			if best == nil || rec.Weight() > best.Weight() {
				best = &results[i][j]
				bestSource = coord.Name()
			}
		}
	}

	if best == nil {
		return &Decision{
			Action:    entities.NoAction(),
			Reasoning: "no coordinator recommendations",
		}, nil
	}

	slog.Debug("action selected",
		"coordinator", bestSource,
		"action", best.Action.Type,
		"weight", best.Weight(),
		"considered", considered,
	)

	return &Decision{
		Action:     best.Action,
		Source:     bestSource,
		Reasoning:  best.Reasoning,
		Considered: considered,
	}, nil
}
