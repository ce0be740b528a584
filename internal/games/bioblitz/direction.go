// Package bioblitz implements a two-player territory game played on a grid of
// directional bacteria. Rotating one of your own cells infects the neighbours
// it points at and the neighbours pointing back at it, and every infected cell
// spreads the infection again after a short delay.
package bioblitz

// Direction is the facing of a cell. Values are ordered clockwise so that
// rotation and reversal are modular arithmetic.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in rotation order.
var Directions = [4]Direction{North, East, South, West}

// Next returns the direction after a clockwise quarter turn.
func (d Direction) Next() Direction {
	return (d + 1) % 4
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Angle returns the display rotation in degrees, clockwise from North.
func (d Direction) Angle() int {
	return int(d%4) * 90
}

// Delta returns the row and column offset of one step in this direction.
// Rows grow downward.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	}
	return 0, 0
}

// String returns the compass letter used in text layouts.
func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return "?"
	}
}

// parseDirection is the inverse of String.
func parseDirection(r byte) (Direction, bool) {
	switch r {
	case 'N', 'n':
		return North, true
	case 'E', 'e':
		return East, true
	case 'S', 's':
		return South, true
	case 'W', 'w':
		return West, true
	}
	return North, false
}
