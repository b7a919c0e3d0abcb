// Package board resolves the static board assets: lettered segment templates
// and named layout presets, both embedded as CSV. The engine consumes the
// resolved layouts and never reads assets itself.
package board

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/wricardo/durango/game/engine"
)

//go:embed assets/*.csv
var assets embed.FS

const layoutsFile = "assets/layouts.csv"

// SegmentNames lists the available board segment letters, sorted.
func SegmentNames() []string {
	entries, err := fs.ReadDir(assets, "assets")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "board_") && strings.HasSuffix(name, ".csv") {
			letter := strings.TrimSuffix(strings.TrimPrefix(name, "board_"), ".csv")
			names = append(names, strings.ToUpper(letter))
		}
	}
	sort.Strings(names)
	return names
}

// Segment loads a lettered segment's node template.
func Segment(name string) ([]engine.BoardNode, error) {
	path := fmt.Sprintf("assets/board_%s.csv", strings.ToLower(name))
	f, err := assets.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unknown board segment %q", name)
	}
	defer f.Close()
	nodes, err := parseSegment(f)
	if err != nil {
		return nil, fmt.Errorf("board segment %q: %w", name, err)
	}
	return nodes, nil
}

func parseSegment(r io.Reader) ([]engine.BoardNode, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no node rows")
	}
	var nodes []engine.BoardNode
	for i, rec := range records[1:] { // skip header
		q, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad q %q", i+2, rec[0])
		}
		r, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad r %q", i+2, rec[1])
		}
		terrain, err := engine.ParseTerrain(rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cost, err := strconv.Atoi(rec[3])
		if err != nil || cost < 1 {
			return nil, fmt.Errorf("row %d: bad cost %q", i+2, rec[3])
		}
		nodes = append(nodes, engine.BoardNode{
			Coord:   engine.AxialCoord{Q: q, R: r},
			Terrain: terrain,
			Cost:    cost,
		})
	}
	return nodes, nil
}

// PresetEntry is one placed segment of a layout preset.
type PresetEntry struct {
	Board    string
	Rotation int
	Center   engine.AxialCoord
}

func loadPresets() (map[string][]PresetEntry, error) {
	f, err := assets.Open(layoutsFile)
	if err != nil {
		return nil, fmt.Errorf("open layouts: %w", err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 5
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	presets := make(map[string][]PresetEntry)
	for i, rec := range records[1:] {
		rotation, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("layouts row %d: bad rotation %q", i+2, rec[2])
		}
		q, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("layouts row %d: bad center_q %q", i+2, rec[3])
		}
		r, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("layouts row %d: bad center_r %q", i+2, rec[4])
		}
		presets[rec[0]] = append(presets[rec[0]], PresetEntry{
			Board:    rec[1],
			Rotation: rotation,
			Center:   engine.AxialCoord{Q: q, R: r},
		})
	}
	return presets, nil
}

// Presets lists the available layout preset names, sorted.
func Presets() []string {
	presets, err := loadPresets()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns the raw entries of a named preset, in layout order.
func Preset(name string) ([]PresetEntry, error) {
	presets, err := loadPresets()
	if err != nil {
		return nil, err
	}
	entries, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout preset %q", name)
	}
	return entries, nil
}

// Layout resolves a named preset into placed board segments ready for
// engine.CreateCustom. The last entry is the finish segment.
func Layout(preset string) ([]engine.PlacedBoard, error) {
	entries, err := Preset(preset)
	if err != nil {
		return nil, err
	}
	layout := make([]engine.PlacedBoard, 0, len(entries))
	for _, e := range entries {
		nodes, err := Segment(e.Board)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", preset, err)
		}
		layout = append(layout, engine.PlacedBoard{
			Nodes:    nodes,
			Rotation: e.Rotation,
			Center:   e.Center,
		})
	}
	return layout, nil
}

// NewGame creates a game on a named preset.
func NewGame(numPlayers int, preset string, rng *rand.Rand) (*engine.GameState, error) {
	layout, err := Layout(preset)
	if err != nil {
		return nil, err
	}
	return engine.NewGame(numPlayers, layout, rng)
}
