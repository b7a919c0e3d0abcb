package engine

import "math/rand"

// BarrierEdge is one concrete hex edge a barrier spans: stepping from Coord
// in Dir crosses the barrier.
type BarrierEdge struct {
	Coord AxialCoord   `json:"coord"`
	Dir   HexDirection `json:"dir"`
}

// Barrier is a paid obstacle on the boundary between two adjacent board
// segments. It stays chargeable until any player pays its cost, then is
// removed from the active list for everyone.
type Barrier struct {
	FromBoard int           `json:"from_board"`
	ToBoard   int           `json:"to_board"`
	Terrain   Terrain       `json:"terrain"`
	Cost      int           `json:"cost"`
	Edges     []BarrierEdge `json:"edges"`
}

// BrokenBarrier records a barrier a player paid to remove, for scoring.
type BrokenBarrier struct {
	FromBoard int     `json:"from_board"`
	ToBoard   int     `json:"to_board"`
	Terrain   Terrain `json:"terrain"`
	Cost      int     `json:"cost"`
}

// Blocks reports whether stepping from coord in dir crosses this barrier.
// Both orientations of the edge count.
func (b *Barrier) Blocks(coord AxialCoord, dir HexDirection) bool {
	to := dir.Neighbor(coord)
	rev := dir.Reverse()
	for _, e := range b.Edges {
		if e.Coord == coord && e.Dir == dir {
			return true
		}
		if e.Coord == to && e.Dir == rev {
			return true
		}
	}
	return false
}

// barrierArchetypes is the fixed pool of (terrain, cost) barrier kinds dealt
// across segment boundaries at game creation.
func barrierArchetypes() []Barrier {
	return []Barrier{
		{Terrain: TerrainJungle, Cost: 1},
		{Terrain: TerrainJungle, Cost: 2},
		{Terrain: TerrainDesert, Cost: 1},
		{Terrain: TerrainWater, Cost: 1},
		{Terrain: TerrainSwamp, Cost: 1},
		{Terrain: TerrainSwamp, Cost: 2},
	}
}

// createBarriers shuffles the archetype pool, keeps numBoards-1 of them, and
// assigns one per consecutive segment boundary. Boundaries beyond the pool
// size get no barrier; barriers whose boundary has no touching edges are
// dropped.
func createBarriers(m *HexMap, g *HexGraph, numBoards int, rng *rand.Rand) []Barrier {
	pool := barrierArchetypes()
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n := numBoards - 1; len(pool) > n {
		pool = pool[:n]
	}
	var barriers []Barrier
	for i, arch := range pool {
		b := Barrier{
			FromBoard: i,
			ToBoard:   i + 1,
			Terrain:   arch.Terrain,
			Cost:      arch.Cost,
			Edges:     boundaryEdges(m, g, i, i+1),
		}
		if len(b.Edges) > 0 {
			barriers = append(barriers, b)
		}
	}
	return barriers
}

// boundaryEdges scans the from-segment's nodes for neighbors belonging to
// the to-segment and returns each crossing edge.
func boundaryEdges(m *HexMap, g *HexGraph, fromBoard, toBoard int) []BarrierEdge {
	var edges []BarrierEdge
	for idx := 0; idx < m.Len(); idx++ {
		node, _ := m.NodeAtIdx(idx)
		if node.BoardIdx != fromBoard {
			continue
		}
		coord, _ := m.CoordAtIdx(idx)
		g.Neighbors(idx, func(nbrIdx int, dir HexDirection) bool {
			nbr, _ := m.NodeAtIdx(nbrIdx)
			if nbr.BoardIdx == toBoard {
				edges = append(edges, BarrierEdge{Coord: coord, Dir: dir})
			}
			return true
		})
	}
	return edges
}

// barrierIndex finds the active barrier between two boards in either order,
// returning -1 when none remains.
func barrierIndex(barriers []Barrier, boardA, boardB int) int {
	for i, b := range barriers {
		if (b.FromBoard == boardA && b.ToBoard == boardB) ||
			(b.FromBoard == boardB && b.ToBoard == boardA) {
			return i
		}
	}
	return -1
}
