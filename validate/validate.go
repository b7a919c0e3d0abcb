// Command validate provides a small CLI that validates board asset CSV files
// before they are embedded into the binary. It checks:
//   - CSV structure and required headers
//   - Coordinate parsing and duplicate hex detection
//   - Terrain names and movement costs
//   - Presence of at least one passable hex per segment
//   - Segment connectivity: all passable hexes reachable from the first one
//   - layouts.csv: segment references, rotations, and preset assembly
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wricardo/durango/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// segmentNode is one parsed row of a segment CSV.
type segmentNode struct {
	coord   engine.AxialCoord
	terrain engine.Terrain
	cost    int
}

// validateSegment loads and validates a single board segment CSV file.
// It performs structural checks, coordinate/terrain/cost validation, and
// connectivity analysis over the passable hexes.
func validateSegment(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	f, err := os.Open(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 4
	records, err := reader.ReadAll()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid CSV: %v", err))
		return result
	}

	if len(records) == 0 || strings.Join(records[0], ",") != "q,r,terrain,cost" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing or wrong header, expected: q,r,terrain,cost")
		return result
	}
	if len(records) < 2 {
		result.Valid = false
		result.Errors = append(result.Errors, "Segment has no hex rows")
		return result
	}

	seen := make(map[engine.AxialCoord]bool)
	var nodes []segmentNode
	passable := 0
	terrainCounts := make(map[engine.Terrain]int)

	for i, rec := range records[1:] {
		row := i + 2

		q, err := strconv.Atoi(rec[0])
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: invalid q %q", row, rec[0]))
			continue
		}
		r, err := strconv.Atoi(rec[1])
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: invalid r %q", row, rec[1]))
			continue
		}
		coord := engine.AxialCoord{Q: q, R: r}

		if seen[coord] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: duplicate hex %s", row, coord))
			continue
		}
		seen[coord] = true

		terrain, err := engine.ParseTerrain(rec[2])
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row, err))
			continue
		}

		cost, err := strconv.Atoi(rec[3])
		if err != nil || cost < 1 || cost > engine.ImpassableCost {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: cost must be 1..%d, got %q", row, engine.ImpassableCost, rec[3]))
			continue
		}

		nodes = append(nodes, segmentNode{coord: coord, terrain: terrain, cost: cost})
		terrainCounts[terrain]++
		if cost < engine.ImpassableCost {
			passable++
		}
	}

	if passable == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Segment has no passable hexes")
	}

	// Connectivity validation - check the passable hexes form one region
	if result.Valid {
		connectivityResult := validateConnectivity(nodes)
		if !connectivityResult.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, connectivityResult.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Hexes: %d (%d passable)", len(nodes), passable))
		for _, terrain := range []engine.Terrain{
			engine.TerrainJungle, engine.TerrainDesert, engine.TerrainWater,
			engine.TerrainVillage, engine.TerrainSwamp, engine.TerrainCave,
		} {
			if count := terrainCounts[terrain]; count > 0 {
				result.Errors = append(result.Errors, fmt.Sprintf("✓ %s: %d", terrain, count))
			}
		}
	}

	return result
}

// validateConnectivity ensures all passable hexes of a segment are reachable
// from the first one by stepping between adjacent passable hexes. Barriers
// and segment seams are a layout concern, so this only guards against a
// segment that ships as two disconnected islands.
func validateConnectivity(nodes []segmentNode) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	passable := make(map[engine.AxialCoord]bool)
	var start *engine.AxialCoord
	for _, n := range nodes {
		if n.cost < engine.ImpassableCost {
			passable[n.coord] = true
			if start == nil {
				c := n.coord
				start = &c
			}
		}
	}
	if start == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate connectivity: no passable hexes")
		return result
	}

	// Flood fill from the first passable hex
	visited := make(map[engine.AxialCoord]bool)
	queue := []engine.AxialCoord{*start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, dir := range engine.AllDirections {
			next := dir.Neighbor(current)
			if passable[next] && !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	var unreachable []string
	for coord := range passable {
		if !visited[coord] {
			unreachable = append(unreachable, coord.String())
		}
	}

	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d/%d passable hexes unreachable", len(unreachable), len(passable)))
		for _, coord := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: hex %s", coord))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: all %d passable hexes connected", len(passable)))
	}

	return result
}

// validateLayouts checks layouts.csv: every row must reference an existing
// segment file, carry a rotation in 0..5, and no preset may place two
// segments on the same center hex.
func validateLayouts(filePath string, segments map[string]bool) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	f, err := os.Open(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 5
	records, err := reader.ReadAll()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid CSV: %v", err))
		return result
	}

	if len(records) == 0 || strings.Join(records[0], ",") != "preset,board,rotation,center_q,center_r" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing or wrong header, expected: preset,board,rotation,center_q,center_r")
		return result
	}
	if len(records) < 2 {
		result.Valid = false
		result.Errors = append(result.Errors, "No layout rows")
		return result
	}

	type placement struct {
		preset string
		center engine.AxialCoord
	}
	placed := make(map[placement]bool)
	presetSegments := make(map[string]int)

	for i, rec := range records[1:] {
		row := i + 2
		preset := rec[0]

		if preset == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: empty preset name", row))
			continue
		}
		if !segments[strings.ToUpper(rec[1])] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: unknown segment %q", row, rec[1]))
		}

		rotation, err := strconv.Atoi(rec[2])
		if err != nil || rotation < 0 || rotation > 5 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: rotation must be 0..5, got %q", row, rec[2]))
		}

		q, qErr := strconv.Atoi(rec[3])
		r, rErr := strconv.Atoi(rec[4])
		if qErr != nil || rErr != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: invalid center %q,%q", row, rec[3], rec[4]))
			continue
		}

		key := placement{preset: preset, center: engine.AxialCoord{Q: q, R: r}}
		if placed[key] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: preset %q places two segments at %s", row, preset, key.center))
		}
		placed[key] = true
		presetSegments[preset]++
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Presets: %d", len(presetSegments)))
		for preset, count := range presetSegments {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ %s: %d segments", preset, count))
		}
	}

	return result
}

// main scans the assets directory for board_*.csv segment files plus
// layouts.csv and validates each one, printing a concise report and exiting
// with non-zero status if any are invalid.
func main() {
	assetsDir := flag.String("dir", "game/board/assets", "Directory containing board asset CSV files")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*assetsDir, "board_*.csv"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No segment files found in %s\n", *assetsDir)
		os.Exit(1)
	}

	segments := make(map[string]bool)
	allValid := true

	for _, file := range files {
		result := validateSegment(file)
		printResult(result)
		if result.Valid {
			letter := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "board_"), ".csv")
			segments[strings.ToUpper(letter)] = true
		} else {
			allValid = false
		}
	}

	layoutsPath := filepath.Join(*assetsDir, "layouts.csv")
	if _, err := os.Stat(layoutsPath); err != nil {
		fmt.Printf("\nMissing %s\n", layoutsPath)
		allValid = false
	} else {
		result := validateLayouts(layoutsPath, segments)
		printResult(result)
		if !result.Valid {
			allValid = false
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All board assets are valid!")
	} else {
		fmt.Println("❌ Some board assets have errors")
		os.Exit(1)
	}
}

func printResult(result ValidationResult) {
	fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

	if result.Valid {
		fmt.Println("✅ VALID")
		for _, info := range result.Errors {
			fmt.Println("  " + info)
		}
	} else {
		fmt.Println("❌ INVALID")
		for _, err := range result.Errors {
			if !strings.HasPrefix(err, "✓") {
				fmt.Println("  ❌ " + err)
			}
		}
	}
}
