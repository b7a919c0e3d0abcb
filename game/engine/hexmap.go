package engine

import (
	"fmt"
	"sort"
)

// BoardNode is one template hex of a board segment, in segment-local
// coordinates.
type BoardNode struct {
	Coord   AxialCoord `json:"coord"`
	Terrain Terrain    `json:"terrain"`
	Cost    int        `json:"cost"`
}

// PlacedBoard positions a board segment on the table: the segment's template
// nodes, a rotation in sixths of a turn, and the translation applied after
// rotating.
type PlacedBoard struct {
	Nodes    []BoardNode `json:"nodes"`
	Rotation int         `json:"rotation"` // 0-5, clockwise
	Center   AxialCoord  `json:"center"`
}

// HexMap is the assembled play area: a coordinate-sorted array of nodes and
// the index of the finish segment. It is immutable once built.
type HexMap struct {
	coords    []AxialCoord
	nodes     []Node
	finishIdx int
}

// rotate applies the cube-coordinate rotation (q,r) -> (-r, q+r) n times.
func rotate(c AxialCoord, n int) AxialCoord {
	for i := 0; i < n%6; i++ {
		c = AxialCoord{Q: -c.R, R: c.Q + c.R}
	}
	return c
}

// CreateCustom assembles a map from placed board segments. The last segment
// is the finish segment. It fails on an empty layout or when two segments
// would occupy the same coordinate.
func CreateCustom(layout []PlacedBoard) (*HexMap, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("cannot create map from an empty layout")
	}
	type placed struct {
		coord AxialCoord
		node  Node
	}
	var all []placed
	for boardIdx, pb := range layout {
		if pb.Rotation < 0 || pb.Rotation > 5 {
			return nil, fmt.Errorf("board %d: rotation %d out of range [0,5]", boardIdx, pb.Rotation)
		}
		for _, tn := range pb.Nodes {
			c := rotate(tn.Coord, pb.Rotation)
			c.Q += pb.Center.Q
			c.R += pb.Center.R
			all = append(all, placed{
				coord: c,
				node:  Node{Terrain: tn.Terrain, Cost: tn.Cost, BoardIdx: boardIdx},
			})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].coord.Less(all[j].coord) })
	for i := 1; i < len(all); i++ {
		if all[i-1].coord == all[i].coord {
			return nil, fmt.Errorf("overlapping nodes at %v", all[i].coord)
		}
	}
	m := &HexMap{
		coords:    make([]AxialCoord, len(all)),
		nodes:     make([]Node, len(all)),
		finishIdx: len(layout) - 1,
	}
	for i, p := range all {
		m.coords[i] = p.coord
		m.nodes[i] = p.node
	}
	return m, nil
}

// Len returns the number of nodes in the map.
func (m *HexMap) Len() int { return len(m.nodes) }

// FinishIdx returns the index of the finish segment.
func (m *HexMap) FinishIdx() int { return m.finishIdx }

// NodeIdx returns the index of the node at coord, or false when the
// coordinate is off the map.
func (m *HexMap) NodeIdx(coord AxialCoord) (int, bool) {
	i := sort.Search(len(m.coords), func(i int) bool {
		return !m.coords[i].Less(coord)
	})
	if i < len(m.coords) && m.coords[i] == coord {
		return i, true
	}
	return 0, false
}

// NodeAt returns the node at coord, or false when off the map.
func (m *HexMap) NodeAt(coord AxialCoord) (Node, bool) {
	if i, ok := m.NodeIdx(coord); ok {
		return m.nodes[i], true
	}
	return Node{}, false
}

// NodeAtIdx returns the node at a map index.
func (m *HexMap) NodeAtIdx(idx int) (Node, bool) {
	if idx < 0 || idx >= len(m.nodes) {
		return Node{}, false
	}
	return m.nodes[idx], true
}

// CoordAtIdx returns the coordinate at a map index.
func (m *HexMap) CoordAtIdx(idx int) (AxialCoord, bool) {
	if idx < 0 || idx >= len(m.coords) {
		return AxialCoord{}, false
	}
	return m.coords[idx], true
}

// IsFinish reports whether coord belongs to the finish segment.
func (m *HexMap) IsFinish(coord AxialCoord) bool {
	n, ok := m.NodeAt(coord)
	return ok && n.BoardIdx == m.finishIdx
}

// AllNodes calls fn for every (coord, node) pair in sorted coordinate order,
// stopping early if fn returns false.
func (m *HexMap) AllNodes(fn func(AxialCoord, Node) bool) {
	for i := range m.nodes {
		if !fn(m.coords[i], m.nodes[i]) {
			return
		}
	}
}
