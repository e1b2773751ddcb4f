// Package pathfind implements bounded A* search over a zone's walkability
// grid. Searches are synchronous and capped, so a degenerate or disconnected
// map cannot stall the decision tick; callers needing arbitrarily long
// routes request sub-path segments.
package pathfind

import (
	"container/heap"
	"math"

	"github.com/openrune/botcore/internal/entities"
)

const (
	// DefaultMaxExpansions bounds worst-case search latency
	DefaultMaxExpansions = 10000

	// DefaultGoalTolerance accepts cells adjacent to a blocked goal
	DefaultGoalTolerance = 1.5
)

// Options tunes a single search
type Options struct {
	// GoalTolerance is the distance at which a node counts as arrived.
	// Zero means DefaultGoalTolerance.
	GoalTolerance float64

	// MaxExpansions caps the number of nodes taken off the open set.
	// Zero means DefaultMaxExpansions.
	MaxExpansions int
}

// node rows live in a flat table addressed by position; Parent is a
// back-reference for path reconstruction, not an ownership edge.
type node struct {
	pos       entities.Position
	g, h      float64
	parent    entities.Position
	hasParent bool
	index     int
	seq       int
	closed    bool
}

func (n *node) f() float64 { return n.g + n.h }

type openQueue []*node

func (q openQueue) Len() int { return len(q) }

// Less orders by f, then by lower h so equal-cost frontiers expand toward
// the goal, then by insertion order so expansion is fully deterministic.
func (q openQueue) Less(i, j int) bool {
	fi, fj := q[i].f(), q[j].f()
	if fi != fj {
		return fi < fj
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].seq < q[j].seq
}

func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openQueue) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *openQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// 8-connected neighborhood, orthogonal steps first
var neighborSteps = []struct {
	dx, dy int
	cost   float64
}{
	{1, 0, 1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1},
	{1, 1, math.Sqrt2}, {1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2}, {-1, -1, math.Sqrt2},
}

// FindPath searches for a walkable route from start to within tolerance of
// goal. The returned path starts at start and contains no repeated
// positions; it is nil when no route exists within the expansion budget.
func FindPath(m *entities.MapInfo, start, goal entities.Position, opts Options) []entities.Position {
	if m == nil || !m.Walkable(start) {
		return nil
	}

	tolerance := opts.GoalTolerance
	if tolerance == 0 {
		tolerance = DefaultGoalTolerance
	}
	maxExpansions := opts.MaxExpansions
	if maxExpansions == 0 {
		maxExpansions = DefaultMaxExpansions
	}

	if start.DistanceTo(goal) <= tolerance {
		return []entities.Position{start}
	}

	nodes := make(map[entities.Position]*node)
	open := make(openQueue, 0, 64)
	heap.Init(&open)

	seq := 0
	startNode := &node{pos: start, g: 0, h: start.DistanceTo(goal), seq: seq}
	nodes[start] = startNode
	heap.Push(&open, startNode)

	expanded := 0
	for open.Len() > 0 {
		current := heap.Pop(&open).(*node)
		if current.closed {
			continue
		}
		current.closed = true

		if current.pos.DistanceTo(goal) <= tolerance {
			return reconstruct(nodes, current)
		}

		expanded++
		if expanded >= maxExpansions {
			return nil
		}

		for _, step := range neighborSteps {
			next := entities.Position{X: current.pos.X + step.dx, Y: current.pos.Y + step.dy}
			if !m.Walkable(next) {
				continue
			}

			tentativeG := current.g + step.cost
			existing, seen := nodes[next]
			if seen {
				if existing.closed || tentativeG >= existing.g {
					continue
				}
				existing.g = tentativeG
				existing.parent = current.pos
				existing.hasParent = true
				heap.Fix(&open, existing.index)
				continue
			}

			seq++
			n := &node{
				pos:       next,
				g:         tentativeG,
				h:         next.DistanceTo(goal),
				parent:    current.pos,
				hasParent: true,
				seq:       seq,
			}
			nodes[next] = n
			heap.Push(&open, n)
		}
	}

	return nil
}

func reconstruct(nodes map[entities.Position]*node, end *node) []entities.Position {
	var rev []entities.Position
	for n := end; ; {
		rev = append(rev, n.pos)
		if !n.hasParent {
			break
		}
		n = nodes[n.parent]
	}

	path := make([]entities.Position, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}
