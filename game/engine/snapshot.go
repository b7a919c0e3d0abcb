package engine

import (
	"fmt"
	"sort"
)

// MapSnapshot captures the assembled map verbatim: the sorted coordinate and
// node arrays plus the finish segment id.
type MapSnapshot struct {
	Coords    []AxialCoord `json:"coords"`
	Nodes     []Node       `json:"nodes"`
	FinishIdx int          `json:"finish_idx"`
}

// CaveSnapshot is one cave's remaining bonus-token stack.
type CaveSnapshot struct {
	Coord  AxialCoord   `json:"coord"`
	Tokens []BonusToken `json:"tokens"`
}

// Snapshot is everything needed to reconstruct a game without replaying its
// history. Pile and token order matter: deck order decides future draws and
// tokens are consumed by index. Barriers are persisted explicitly because
// broken state diverges from the construction-time assignment.
type Snapshot struct {
	Map        MapSnapshot    `json:"map"`
	Players    []*Player      `json:"players"`
	Barriers   []Barrier      `json:"barriers"`
	Shop       []BuyableCard  `json:"shop"`
	Storage    []BuyableCard  `json:"storage"`
	Caves      []CaveSnapshot `json:"caves"`
	CurrPlayer int            `json:"curr_player"`
	Round      int            `json:"round"`
}

// Snapshot captures the full game state. The result shares nothing with the
// live game.
func (s *GameState) Snapshot() *Snapshot {
	snap := &Snapshot{
		Map: MapSnapshot{
			Coords:    append([]AxialCoord(nil), s.hexMap.coords...),
			Nodes:     append([]Node(nil), s.hexMap.nodes...),
			FinishIdx: s.hexMap.finishIdx,
		},
		Shop:       append([]BuyableCard(nil), s.shop...),
		Storage:    append([]BuyableCard(nil), s.storage...),
		CurrPlayer: s.currPlayer,
		Round:      s.round,
	}
	for _, p := range s.players {
		snap.Players = append(snap.Players, p.clone())
	}
	for _, b := range s.barriers {
		cp := b
		cp.Edges = append([]BarrierEdge(nil), b.Edges...)
		snap.Barriers = append(snap.Barriers, cp)
	}
	for coord, stack := range s.caveTokens {
		snap.Caves = append(snap.Caves, CaveSnapshot{
			Coord:  coord,
			Tokens: append([]BonusToken(nil), stack...),
		})
	}
	sort.Slice(snap.Caves, func(i, j int) bool { return snap.Caves[i].Coord.Less(snap.Caves[j].Coord) })
	return snap
}

// RestoreGame reconstructs a game from a snapshot. It validates the map
// arrays and every player position; a snapshot failing these checks is
// rejected without producing a partial game.
func RestoreGame(snap *Snapshot) (*GameState, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}
	if len(snap.Map.Coords) == 0 || len(snap.Map.Coords) != len(snap.Map.Nodes) {
		return nil, fmt.Errorf("snapshot map arrays are empty or mismatched: %d coords, %d nodes",
			len(snap.Map.Coords), len(snap.Map.Nodes))
	}
	m := &HexMap{
		coords:    append([]AxialCoord(nil), snap.Map.Coords...),
		nodes:     append([]Node(nil), snap.Map.Nodes...),
		finishIdx: snap.Map.FinishIdx,
	}
	for i := 1; i < len(m.coords); i++ {
		if !m.coords[i-1].Less(m.coords[i]) {
			return nil, fmt.Errorf("snapshot map coordinates not sorted and unique at %d", i)
		}
	}
	hasFinish := false
	for _, n := range m.nodes {
		if n.BoardIdx == m.finishIdx {
			hasFinish = true
			break
		}
	}
	if !hasFinish {
		return nil, fmt.Errorf("snapshot has no node on finish segment %d", m.finishIdx)
	}
	if len(snap.Players) < MinPlayers || len(snap.Players) > MaxPlayers {
		return nil, fmt.Errorf("snapshot has %d players, want %d-%d", len(snap.Players), MinPlayers, MaxPlayers)
	}
	if snap.CurrPlayer < 0 || snap.CurrPlayer >= len(snap.Players) {
		return nil, fmt.Errorf("snapshot current player %d out of range", snap.CurrPlayer)
	}

	g := &GameState{
		hexMap:     m,
		graph:      NewHexGraph(m),
		shop:       append([]BuyableCard(nil), snap.Shop...),
		storage:    append([]BuyableCard(nil), snap.Storage...),
		caveTokens: make(map[AxialCoord][]BonusToken, len(snap.Caves)),
		currPlayer: snap.CurrPlayer,
		round:      snap.Round,
	}
	for i, p := range snap.Players {
		if _, ok := m.NodeIdx(p.Position); !ok {
			return nil, fmt.Errorf("player %d position %v is off the map", i, p.Position)
		}
		g.players = append(g.players, p.clone())
	}
	for _, b := range snap.Barriers {
		cp := b
		cp.Edges = append([]BarrierEdge(nil), b.Edges...)
		g.barriers = append(g.barriers, cp)
	}
	for _, c := range snap.Caves {
		node, ok := m.NodeAt(c.Coord)
		if !ok || node.Terrain != TerrainCave {
			return nil, fmt.Errorf("snapshot cave %v is not a cave node", c.Coord)
		}
		g.caveTokens[c.Coord] = append([]BonusToken(nil), c.Tokens...)
	}
	return g, nil
}
