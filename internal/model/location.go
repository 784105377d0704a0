package model

import "math"

// Position представляет клетку на карте.
// Value type, передаётся по значению (immutable).
type Position struct {
	X int16
	Y int16
}

// NewPosition создаёт Position с указанными координатами.
func NewPosition(x, y int16) Position {
	return Position{X: x, Y: y}
}

// Distance returns the octile distance between two cells: diagonal steps cost
// sqrt(2), straight steps cost 1. Truncated to whole cells.
func (p Position) Distance(other Position) int {
	dx := math.Abs(float64(p.X) - float64(other.X))
	dy := math.Abs(float64(p.Y) - float64(other.Y))
	return int((dx + dy) + (math.Sqrt2-2)*math.Min(dx, dy))
}

// InRange reports whether other lies within radius cells of p.
func (p Position) InRange(other Position, radius int) bool {
	return p.Distance(other) <= radius
}
