package model

import "math"

// Position is a point in world space.
// Value type, passed by value (immutable).
type Position struct {
	X float64
	Y float64
	Z float64
}

// NewPosition creates a Position with the given coordinates.
func NewPosition(x, y, z float64) Position {
	return Position{X: x, Y: y, Z: z}
}

// DistanceSquared returns the squared straight-line distance (no sqrt).
func (p Position) DistanceSquared(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance returns the straight-line distance to other.
func (p Position) Distance(other Position) float64 {
	return math.Sqrt(p.DistanceSquared(other))
}
