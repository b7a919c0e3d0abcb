package engine

import "fmt"

// AxialCoord is an axial (q,r) hex-grid position, pointy-top orientation.
// Coordinates order lexicographically by (q, r), which is the sort key used
// by HexMap lookups.
type AxialCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Less reports whether a sorts before b in (q, r) order.
func (a AxialCoord) Less(b AxialCoord) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}

// IsAdjacent reports whether other is one of a's six neighbors.
func (a AxialCoord) IsAdjacent(other AxialCoord) bool {
	dq := abs(a.Q - other.Q)
	dr := abs(a.R - other.R)
	ds := abs(a.Q + a.R - other.Q - other.R)
	return dq <= 1 && dr <= 1 && ds <= 1 && dq+dr+ds == 2
}

func (a AxialCoord) String() string {
	return fmt.Sprintf("(%d,%d)", a.Q, a.R)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// HexDirection is one of the six hex edge directions.
type HexDirection int

const (
	NorthEast HexDirection = iota
	East
	SouthEast
	SouthWest
	West
	NorthWest
)

// AllDirections lists the directions in adjacency-slot order.
var AllDirections = [6]HexDirection{NorthEast, East, SouthEast, SouthWest, West, NorthWest}

var directionNames = [6]string{"NE", "E", "SE", "SW", "W", "NW"}

func (d HexDirection) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("HexDirection(%d)", int(d))
	}
	return directionNames[d]
}

// Valid reports whether d is one of the six defined directions.
func (d HexDirection) Valid() bool {
	return d >= NorthEast && d <= NorthWest
}

// Reverse returns the opposite direction.
func (d HexDirection) Reverse() HexDirection {
	return HexDirection((int(d) + 3) % 6)
}

// axial deltas indexed by HexDirection
var directionDeltas = [6][2]int{
	{1, -1}, // NE
	{1, 0},  // E
	{0, 1},  // SE
	{-1, 1}, // SW
	{-1, 0}, // W
	{0, -1}, // NW
}

// Neighbor returns the coordinate one step from c in direction d.
func (d HexDirection) Neighbor(c AxialCoord) AxialCoord {
	delta := directionDeltas[d]
	return AxialCoord{Q: c.Q + delta[0], R: c.R + delta[1]}
}

// MarshalJSON encodes the direction as its short name ("NE", "E", ...).
func (d HexDirection) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid hex direction %d", int(d))
	}
	return []byte(`"` + directionNames[d] + `"`), nil
}

// UnmarshalJSON decodes a short direction name.
func (d *HexDirection) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid hex direction %s", s)
	}
	name := s[1 : len(s)-1]
	for i, n := range directionNames {
		if n == name {
			*d = HexDirection(i)
			return nil
		}
	}
	return fmt.Errorf("unknown hex direction %q", name)
}
