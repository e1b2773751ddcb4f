package entities

import "math"

// Position is a grid-snapped map coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceTo returns the Euclidean distance to another position
func (p Position) DistanceTo(other Position) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// MapInfo holds the static spatial data for one zone. It is read-only
// during a tick.
type MapInfo struct {
	Name    string
	Width   int
	Height  int
	walk    func(Position) bool
	Portals []Position
}

// NewMapInfo builds a MapInfo with an explicit walkability predicate. A nil
// predicate means every in-bounds cell is walkable.
func NewMapInfo(name string, width, height int, walkable func(Position) bool) *MapInfo {
	return &MapInfo{
		Name:   name,
		Width:  width,
		Height: height,
		walk:   walkable,
	}
}

// InBounds reports whether the position lies on the map
func (m *MapInfo) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

// Walkable reports whether the position can be stood on
func (m *MapInfo) Walkable(p Position) bool {
	if !m.InBounds(p) {
		return false
	}
	if m.walk == nil {
		return true
	}
	return m.walk(p)
}
