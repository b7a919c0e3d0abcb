package engine

import "container/heap"

// NoNeighbor is the adjacency sentinel for a missing neighbor, and
// Unreachable the distance sentinel for nodes no path reaches.
const (
	NoNeighbor  = -1
	Unreachable = int(^uint(0) >> 1)
)

// HexGraph precomputes the map's adjacency and the unweighted hex distance
// from every node to the finish segment. It is built once per map and never
// updated; barriers are an overlay the action engine consults separately.
type HexGraph struct {
	adj     [][6]int
	dists   []int
	maxDist int
}

// NewHexGraph builds the adjacency table and finish distances for a map.
func NewHexGraph(m *HexMap) *HexGraph {
	g := &HexGraph{adj: createAdjacencies(m)}
	g.dists = createHexDistances(m, g.adj)
	for _, d := range g.dists {
		if d != Unreachable && d > g.maxDist {
			g.maxDist = d
		}
	}
	return g
}

func createAdjacencies(m *HexMap) [][6]int {
	adj := make([][6]int, m.Len())
	for i := range adj {
		coord, _ := m.CoordAtIdx(i)
		for slot, dir := range AllDirections {
			if nbr, ok := m.NodeIdx(dir.Neighbor(coord)); ok {
				adj[i][slot] = nbr
			} else {
				adj[i][slot] = NoNeighbor
			}
		}
	}
	return adj
}

// createHexDistances runs a multi-source BFS backwards from every finish
// node, so a single pass yields each node's hex distance to the finish.
// Impassable nodes keep the Unreachable sentinel.
func createHexDistances(m *HexMap, adj [][6]int) []int {
	dists := make([]int, m.Len())
	var queue []int
	for i := range dists {
		node, _ := m.NodeAtIdx(i)
		if node.BoardIdx == m.FinishIdx() && node.Passable() {
			dists[i] = 0
			queue = append(queue, i)
		} else {
			dists[i] = Unreachable
		}
	}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		next := dists[idx] + 1
		for _, nbr := range adj[idx] {
			if nbr == NoNeighbor || dists[nbr] <= next {
				continue
			}
			node, _ := m.NodeAtIdx(nbr)
			if !node.Passable() {
				continue
			}
			dists[nbr] = next
			queue = append(queue, nbr)
		}
	}
	return dists
}

// Dist returns the precomputed hex distance from node idx to the finish.
func (g *HexGraph) Dist(idx int) int { return g.dists[idx] }

// MaxDist returns the largest finite finish distance on the map.
func (g *HexGraph) MaxDist() int { return g.maxDist }

// Neighbors calls fn for each existing neighbor of idx with the neighbor's
// index and the direction leading to it.
func (g *HexGraph) Neighbors(idx int, fn func(nbrIdx int, dir HexDirection) bool) {
	if idx < 0 || idx >= len(g.adj) {
		return
	}
	for slot, nbr := range g.adj[idx] {
		if nbr == NoNeighbor {
			continue
		}
		if !fn(nbr, AllDirections[slot]) {
			return
		}
	}
}

// NeighborInDir returns the neighbor of idx in the given direction, or
// NoNeighbor.
func (g *HexGraph) NeighborInDir(idx int, dir HexDirection) int {
	if idx < 0 || idx >= len(g.adj) {
		return NoNeighbor
	}
	return g.adj[idx][dir]
}

// distHeap is a min-heap of (node, distance) pairs for Dijkstra.
type distEntry struct {
	idx  int
	dist int
}

type distHeap []distEntry

func (h distHeap) Len() int           { return len(h) }
func (h distHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x any)        { *h = append(*h, x.(distEntry)) }
func (h *distHeap) Pop() any          { old := *h; n := len(old); e := old[n-1]; *h = old[:n-1]; return e }

// DistancesToFinish runs a weighted multi-source Dijkstra from the finish
// segment using a caller-supplied per-node entry cost, for agents that want a
// finer heuristic than the hex count. Impassable nodes stay Unreachable.
func (g *HexGraph) DistancesToFinish(m *HexMap, costOf func(idx int, node Node) int) []int {
	dists := make([]int, m.Len())
	h := &distHeap{}
	for i := range dists {
		node, _ := m.NodeAtIdx(i)
		if node.BoardIdx == m.FinishIdx() && node.Passable() {
			dists[i] = 0
			heap.Push(h, distEntry{idx: i, dist: 0})
		} else {
			dists[i] = Unreachable
		}
	}
	for h.Len() > 0 {
		e := heap.Pop(h).(distEntry)
		if e.dist > dists[e.idx] {
			continue // stale entry
		}
		for _, nbr := range g.adj[e.idx] {
			if nbr == NoNeighbor {
				continue
			}
			node, _ := m.NodeAtIdx(nbr)
			if !node.Passable() {
				continue
			}
			step := costOf(nbr, node)
			if step < 1 {
				step = 1
			}
			next := e.dist + step
			if next < dists[nbr] {
				dists[nbr] = next
				heap.Push(h, distEntry{idx: nbr, dist: next})
			}
		}
	}
	return dists
}
