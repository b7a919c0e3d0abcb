package engine

import (
	"fmt"
	"math/rand"
	"sort"
)

// Player count limits for a game.
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// GameState is the root of the engine: the immutable map and graph, every
// player's resources, the marketplaces, the barrier overlay and the turn
// counters. ProcessAction is the sole mutator; everything else is a query.
type GameState struct {
	hexMap *HexMap
	graph  *HexGraph

	players  []*Player
	barriers []Barrier
	shop     []BuyableCard
	storage  []BuyableCard

	// caveTokens holds each cave's remaining bonus-token stack, keyed by the
	// cave's coordinate.
	caveTokens map[AxialCoord][]BonusToken

	currPlayer int
	round      int
}

// NewGame creates a randomized game for numPlayers on the given layout.
// Players start on distinct nodes at the maximum hex distance from the
// finish; construction fails when the map offers fewer such nodes than
// players.
func NewGame(numPlayers int, layout []PlacedBoard, rng *rand.Rand) (*GameState, error) {
	if numPlayers < MinPlayers || numPlayers > MaxPlayers {
		return nil, fmt.Errorf("player count must be between %d and %d, got %d", MinPlayers, MaxPlayers, numPlayers)
	}
	m, err := CreateCustom(layout)
	if err != nil {
		return nil, err
	}
	g := NewHexGraph(m)

	starts, err := startingPositions(m, g, numPlayers, rng)
	if err != nil {
		return nil, err
	}

	s := &GameState{
		hexMap:     m,
		graph:      g,
		barriers:   createBarriers(m, g, m.FinishIdx()+1, rng),
		shop:       initialShop(),
		storage:    initialStorage(),
		caveTokens: dealCaveTokens(m, rng),
		currPlayer: 0,
		round:      0,
	}
	sortShop(s.shop)
	for i := 0; i < numPlayers; i++ {
		s.players = append(s.players, newPlayer(starts[i], rng))
	}
	return s, nil
}

// startingPositions shuffles the nodes at maximal finish distance and
// returns one per player.
func startingPositions(m *HexMap, g *HexGraph, numPlayers int, rng *rand.Rand) ([]AxialCoord, error) {
	var candidates []AxialCoord
	for i := 0; i < m.Len(); i++ {
		if g.Dist(i) == g.MaxDist() {
			coord, _ := m.CoordAtIdx(i)
			candidates = append(candidates, coord)
		}
	}
	if len(candidates) < numPlayers {
		return nil, fmt.Errorf("map has %d maximal-distance starting nodes, need %d", len(candidates), numPlayers)
	}
	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	return candidates[:numPlayers], nil
}

// dealCaveTokens shuffles the bonus pool and deals TokensPerCave tokens to
// each cave in map order. Later caves are silently shorted when the pool
// runs out.
func dealCaveTokens(m *HexMap, rng *rand.Rand) map[AxialCoord][]BonusToken {
	pool := bonusTokenPool()
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	stacks := make(map[AxialCoord][]BonusToken)
	m.AllNodes(func(coord AxialCoord, node Node) bool {
		if node.Terrain != TerrainCave {
			return true
		}
		n := TokensPerCave
		if n > len(pool) {
			n = len(pool)
		}
		stacks[coord] = append([]BonusToken(nil), pool[:n]...)
		pool = pool[n:]
		return true
	})
	return stacks
}

func sortShop(shop []BuyableCard) {
	sort.SliceStable(shop, func(i, j int) bool { return shop[i].Cost < shop[j].Cost })
}

// Map returns the immutable hex map.
func (s *GameState) Map() *HexMap { return s.hexMap }

// Graph returns the precomputed adjacency and finish distances.
func (s *GameState) Graph() *HexGraph { return s.graph }

// NumPlayers returns the number of players.
func (s *GameState) NumPlayers() int { return len(s.players) }

// CurrPlayer returns the index of the player whose turn it is.
func (s *GameState) CurrPlayer() int { return s.currPlayer }

// Round returns the zero-based round index.
func (s *GameState) Round() int { return s.round }

// Player returns the player at idx, or nil when out of range.
func (s *GameState) Player(idx int) *Player {
	if idx < 0 || idx >= len(s.players) {
		return nil
	}
	return s.players[idx]
}

// Barriers returns the still-active barriers.
func (s *GameState) Barriers() []Barrier { return s.barriers }

// Shop returns the current shop listings, sorted by cost.
func (s *GameState) Shop() []BuyableCard { return s.shop }

// Storage returns the current storage listings.
func (s *GameState) Storage() []BuyableCard { return s.storage }

// BonusTokensAt returns the remaining token stack of the cave at coord.
func (s *GameState) BonusTokensAt(coord AxialCoord) []BonusToken {
	return s.caveTokens[coord]
}

// IsOccupied reports whether any player other than exceptPlayer stands on
// coord. Pass a negative exceptPlayer to check all players.
func (s *GameState) IsOccupied(coord AxialCoord, exceptPlayer int) bool {
	for i, p := range s.players {
		if i != exceptPlayer && p.Position == coord {
			return true
		}
	}
	return false
}

// HasOpenShop reports whether the shop has a free slot.
func (s *GameState) HasOpenShop() bool { return len(s.shop) < ShopSlots }

// CanVisitCave reports whether the current player may collect the cave at
// coord: it must be an adjacent cave the player has not collected during the
// current stay, with tokens remaining.
func (s *GameState) CanVisitCave(coord AxialCoord) bool {
	node, ok := s.hexMap.NodeAt(coord)
	if !ok || node.Terrain != TerrainCave {
		return false
	}
	p := s.players[s.currPlayer]
	if !p.Position.IsAdjacent(coord) && p.Position != coord {
		return false
	}
	return !p.hasVisitedCave(coord) && len(s.caveTokens[coord]) > 0
}

// PlayerPositions returns every player's position, indexed by player.
func (s *GameState) PlayerPositions() []AxialCoord {
	positions := make([]AxialCoord, len(s.players))
	for i, p := range s.players {
		positions[i] = p.Position
	}
	return positions
}

// PlayersAtFinish returns the indices of players standing on the finish
// segment.
func (s *GameState) PlayersAtFinish() []int {
	var at []int
	for i, p := range s.players {
		if s.hexMap.IsFinish(p.Position) {
			at = append(at, i)
		}
	}
	return at
}

// PlayerScores ranks players at any point of the game: distance covered
// toward the finish plus barriers personally broken, with a 1000-point bonus
// for reaching the finish.
func (s *GameState) PlayerScores() ([]int, error) {
	scores := make([]int, len(s.players))
	for i, p := range s.players {
		idx, ok := s.hexMap.NodeIdx(p.Position)
		if !ok {
			return nil, fmt.Errorf("%w: player %d has no node at %v", ErrCorruptState, i, p.Position)
		}
		d := s.graph.Dist(idx)
		if d == Unreachable {
			return nil, fmt.Errorf("%w: player %d stands on an unreachable node %v", ErrCorruptState, i, p.Position)
		}
		scores[i] = s.graph.MaxDist() - d + len(p.BrokenBarriers)
		if d == 0 {
			scores[i] += 1000
		}
	}
	return scores, nil
}

// Clone returns a fully independent duplicate of the game for speculative
// lookahead. The immutable map and graph are shared; everything mutable is
// deep-copied.
func (s *GameState) Clone() *GameState {
	c := &GameState{
		hexMap:     s.hexMap,
		graph:      s.graph,
		currPlayer: s.currPlayer,
		round:      s.round,
	}
	c.players = make([]*Player, len(s.players))
	for i, p := range s.players {
		c.players[i] = p.clone()
	}
	c.barriers = make([]Barrier, len(s.barriers))
	for i, b := range s.barriers {
		c.barriers[i] = b
		c.barriers[i].Edges = append([]BarrierEdge(nil), b.Edges...)
	}
	c.shop = append([]BuyableCard(nil), s.shop...)
	c.storage = append([]BuyableCard(nil), s.storage...)
	c.caveTokens = make(map[AxialCoord][]BonusToken, len(s.caveTokens))
	for coord, stack := range s.caveTokens {
		c.caveTokens[coord] = append([]BonusToken(nil), stack...)
	}
	return c
}
