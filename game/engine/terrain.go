package engine

import "fmt"

// Terrain classifies a hex node and decides what a step onto it costs.
type Terrain string

const (
	TerrainInvalid Terrain = "invalid"
	TerrainJungle  Terrain = "jungle"
	TerrainDesert  Terrain = "desert"
	TerrainWater   Terrain = "water"
	TerrainVillage Terrain = "village" // pay by trashing cards
	TerrainSwamp   Terrain = "swamp"   // pay by discarding cards
	TerrainCave    Terrain = "cave"    // grants a bonus token per visit
)

// movementIndex returns the slot in a movement triple for jungle/desert/water
// terrain, and false for every other terrain.
func (t Terrain) movementIndex() (int, bool) {
	switch t {
	case TerrainJungle:
		return 0, true
	case TerrainDesert:
		return 1, true
	case TerrainWater:
		return 2, true
	}
	return 0, false
}

// ParseTerrain converts an asset string into a Terrain.
func ParseTerrain(s string) (Terrain, error) {
	switch Terrain(s) {
	case TerrainInvalid, TerrainJungle, TerrainDesert, TerrainWater,
		TerrainVillage, TerrainSwamp, TerrainCave:
		return Terrain(s), nil
	}
	return TerrainInvalid, fmt.Errorf("unknown terrain %q", s)
}

// ImpassableCost marks nodes that can never be entered. Such nodes exist only
// as bookkeeping placeholders inside segment templates.
const ImpassableCost = 10

// Node is a single hex of the assembled map.
type Node struct {
	Terrain  Terrain `json:"terrain"`
	Cost     int     `json:"cost"`
	BoardIdx int     `json:"board_idx"`
}

// Passable reports whether the node can ever be entered.
func (n Node) Passable() bool {
	return n.Cost < ImpassableCost
}
