package engine

import (
	"math/rand"
	"testing"
)

func testNode(q, r int, terrain Terrain, cost int) BoardNode {
	return BoardNode{Coord: AxialCoord{Q: q, R: r}, Terrain: terrain, Cost: cost}
}

func jungleNode(q, r int) BoardNode {
	return testNode(q, r, TerrainJungle, 1)
}

// stripLayout is a two-segment jungle map: a 3x2 starting block joined east
// to a finish segment. The two western nodes tie for the maximal finish
// distance, so two players can start.
func stripLayout() []PlacedBoard {
	start := []BoardNode{
		jungleNode(0, 0), jungleNode(0, 1),
		jungleNode(1, 0), jungleNode(1, 1),
		jungleNode(2, 0), jungleNode(2, 1),
	}
	finish := []BoardNode{
		jungleNode(0, 0), jungleNode(1, 0), jungleNode(2, 0), jungleNode(0, 1),
	}
	return []PlacedBoard{
		{Nodes: start},
		{Nodes: finish, Center: AxialCoord{Q: 3, R: 0}},
	}
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestCoordAdjacency(t *testing.T) {
	origin := AxialCoord{}
	for _, dir := range AllDirections {
		nbr := dir.Neighbor(origin)
		if !origin.IsAdjacent(nbr) {
			t.Errorf("Expected %v to be adjacent to origin via %v", nbr, dir)
		}
		back := dir.Reverse().Neighbor(nbr)
		if back != origin {
			t.Errorf("Expected %v reversed to return to origin, got %v", dir, back)
		}
	}
	if origin.IsAdjacent(AxialCoord{Q: 2, R: 0}) {
		t.Error("Expected (2,0) not to be adjacent to origin")
	}
	if origin.IsAdjacent(origin) {
		t.Error("Expected origin not to be adjacent to itself")
	}
}

func TestRotate(t *testing.T) {
	c := AxialCoord{Q: 1, R: 0}
	expected := []AxialCoord{
		{Q: 1, R: 0},
		{Q: 0, R: 1},
		{Q: -1, R: 1},
		{Q: -1, R: 0},
		{Q: 0, R: -1},
		{Q: 1, R: -1},
	}
	for n, want := range expected {
		if got := rotate(c, n); got != want {
			t.Errorf("Expected rotate(%v, %d) = %v, got %v", c, n, want, got)
		}
	}
	if got := rotate(c, 6); got != c {
		t.Errorf("Expected a full rotation to be the identity, got %v", got)
	}
}

func TestCreateCustom(t *testing.T) {
	m, err := CreateCustom(stripLayout())
	if err != nil {
		t.Fatalf("Failed to create map: %v", err)
	}
	if m.Len() != 10 {
		t.Errorf("Expected 10 nodes, got %d", m.Len())
	}
	if m.FinishIdx() != 1 {
		t.Errorf("Expected finish segment 1, got %d", m.FinishIdx())
	}

	// Every coordinate round-trips through the index lookups.
	seen := make(map[AxialCoord]bool)
	m.AllNodes(func(coord AxialCoord, node Node) bool {
		if seen[coord] {
			t.Errorf("Duplicate coordinate %v", coord)
		}
		seen[coord] = true
		idx, ok := m.NodeIdx(coord)
		if !ok {
			t.Fatalf("Expected NodeIdx to find %v", coord)
		}
		back, ok := m.CoordAtIdx(idx)
		if !ok || back != coord {
			t.Errorf("Expected coordinate %v to round-trip, got %v", coord, back)
		}
		n, ok := m.NodeAt(coord)
		if !ok || n != node {
			t.Errorf("Expected NodeAt(%v) to match AllNodes", coord)
		}
		return true
	})

	if !m.IsFinish(AxialCoord{Q: 3, R: 0}) {
		t.Error("Expected (3,0) to be on the finish segment")
	}
	if m.IsFinish(AxialCoord{Q: 0, R: 0}) {
		t.Error("Expected (0,0) not to be on the finish segment")
	}
	if _, ok := m.NodeAt(AxialCoord{Q: 9, R: 9}); ok {
		t.Error("Expected no node at (9,9)")
	}
}

func TestCreateCustom_Rotation(t *testing.T) {
	layout := []PlacedBoard{{
		Nodes:    []BoardNode{jungleNode(0, 0), jungleNode(1, 0)},
		Rotation: 3,
		Center:   AxialCoord{Q: 5, R: 5},
	}}
	m, err := CreateCustom(layout)
	if err != nil {
		t.Fatalf("Failed to create map: %v", err)
	}
	// (1,0) rotated a half turn lands on (-1,0), then translates.
	if _, ok := m.NodeAt(AxialCoord{Q: 4, R: 5}); !ok {
		t.Error("Expected rotated node at (4,5)")
	}
	if _, ok := m.NodeAt(AxialCoord{Q: 5, R: 5}); !ok {
		t.Error("Expected center node at (5,5)")
	}
}

func TestCreateCustom_Errors(t *testing.T) {
	if _, err := CreateCustom(nil); err == nil {
		t.Error("Expected error for an empty layout")
	}

	overlapping := []PlacedBoard{
		{Nodes: []BoardNode{jungleNode(0, 0)}},
		{Nodes: []BoardNode{jungleNode(0, 0)}},
	}
	if _, err := CreateCustom(overlapping); err == nil {
		t.Error("Expected error for overlapping segments")
	}

	badRotation := []PlacedBoard{{Nodes: []BoardNode{jungleNode(0, 0)}, Rotation: 6}}
	if _, err := CreateCustom(badRotation); err == nil {
		t.Error("Expected error for rotation out of range")
	}
}

func TestHexDistances(t *testing.T) {
	layout := stripLayout()
	layout[0].Nodes = append(layout[0].Nodes, testNode(0, 2, TerrainInvalid, ImpassableCost))
	m, err := CreateCustom(layout)
	if err != nil {
		t.Fatalf("Failed to create map: %v", err)
	}
	g := NewHexGraph(m)

	if g.MaxDist() != 3 {
		t.Errorf("Expected max distance 3, got %d", g.MaxDist())
	}
	for i := 0; i < m.Len(); i++ {
		node, _ := m.NodeAtIdx(i)
		d := g.Dist(i)
		if !node.Passable() {
			if d != Unreachable {
				t.Errorf("Expected impassable node %d to be unreachable, got %d", i, d)
			}
			continue
		}
		if node.BoardIdx == m.FinishIdx() {
			if d != 0 {
				t.Errorf("Expected finish node %d at distance 0, got %d", i, d)
			}
			continue
		}
		if d <= 0 || d == Unreachable {
			t.Errorf("Expected node %d to have a positive finite distance, got %d", i, d)
			continue
		}
		// Every reachable node has a neighbor one step closer.
		closer := false
		g.Neighbors(i, func(nbr int, _ HexDirection) bool {
			if g.Dist(nbr) == d-1 {
				closer = true
				return false
			}
			return true
		})
		if !closer {
			t.Errorf("Expected node %d at distance %d to have a neighbor at %d", i, d, d-1)
		}
	}
}

func TestDistancesToFinish(t *testing.T) {
	m, err := CreateCustom(stripLayout())
	if err != nil {
		t.Fatalf("Failed to create map: %v", err)
	}
	g := NewHexGraph(m)

	dists := g.DistancesToFinish(m, func(_ int, node Node) int { return node.Cost * 2 })
	for i := 0; i < m.Len(); i++ {
		node, _ := m.NodeAtIdx(i)
		if node.BoardIdx == m.FinishIdx() {
			if dists[i] != 0 {
				t.Errorf("Expected finish node %d at weighted distance 0, got %d", i, dists[i])
			}
		} else if want := g.Dist(i) * 2; dists[i] != want {
			t.Errorf("Expected node %d at weighted distance %d, got %d", i, want, dists[i])
		}
	}
}

func TestNeighborInDir(t *testing.T) {
	m, err := CreateCustom(stripLayout())
	if err != nil {
		t.Fatalf("Failed to create map: %v", err)
	}
	g := NewHexGraph(m)
	origin, _ := m.NodeIdx(AxialCoord{Q: 0, R: 0})
	east := g.NeighborInDir(origin, East)
	if east == NoNeighbor {
		t.Fatal("Expected a neighbor east of (0,0)")
	}
	if coord, _ := m.CoordAtIdx(east); coord != (AxialCoord{Q: 1, R: 0}) {
		t.Errorf("Expected east neighbor at (1,0), got %v", coord)
	}
	if g.NeighborInDir(origin, West) != NoNeighbor {
		t.Error("Expected no neighbor west of (0,0)")
	}
}
