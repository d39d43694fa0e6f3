// Command gen-grid writes synthetic depth frames for exercising depthscan.
//
// A scene comes either from a JSON file (-scene) or from -obstacles, a list
// of full-height "col0:col1:depth" boxes. Each frame is rendered with its own
// seed so dropout and jitter differ between frames.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/depth.steer/internal/depth/gridio"
	"github.com/banshee-data/depth.steer/internal/depth/l2grid"
)

// parseObstacles parses "c0:c1:depth[,c0:c1:depth...]" into boxes spanning
// every row.
func parseObstacles(s string, rows int) ([]l2grid.Box, error) {
	if s == "" {
		return nil, nil
	}
	var boxes []l2grid.Box
	for _, part := range strings.Split(s, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("invalid obstacle '%s': want col0:col1:depth", part)
		}
		c0, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("invalid obstacle '%s': %w", part, err)
		}
		c1, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("invalid obstacle '%s': %w", part, err)
		}
		d, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid obstacle '%s': %w", part, err)
		}
		boxes = append(boxes, l2grid.Box{Row0: 0, Row1: rows - 1, Col0: c0, Col1: c1, Depth: d})
	}
	return boxes, nil
}

func loadScene(path string) (l2grid.Scene, error) {
	var s l2grid.Scene
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return s, nil
}

// generate renders n frames of scene into dir and returns the written paths.
func generate(scene l2grid.Scene, n int, seed uint64, dir, format string) ([]string, error) {
	if format != "csv" && format != "json" {
		return nil, fmt.Errorf("unknown format %q (want csv or json)", format)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		rng := rand.New(rand.NewPCG(seed, uint64(i)))
		g, err := scene.Render(rng)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.%s", i, format))
		if err := gridio.WriteFile(path, g); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func main() {
	scenePath := flag.String("scene", "", "Scene JSON file (overrides -rows/-cols/-obstacles)")
	rows := flag.Int("rows", 48, "Frame height")
	cols := flag.Int("cols", 160, "Frame width")
	obstacles := flag.String("obstacles", "10:40:1.5,110:140:2.5", "Full-height obstacles as col0:col1:depth, comma separated")
	dropout := flag.Float64("dropout", 0, "Probability a return is dropped")
	jitter := flag.Float64("jitter", 0, "Uniform depth noise amplitude")
	frames := flag.Int("n", 10, "Number of frames")
	seed := flag.Uint64("seed", 1, "Random seed")
	outDir := flag.String("o", "frames", "Output directory")
	format := flag.String("format", "csv", "Output format: csv or json")
	flag.Parse()

	var scene l2grid.Scene
	if *scenePath != "" {
		s, err := loadScene(*scenePath)
		if err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
		scene = s
	} else {
		boxes, err := parseObstacles(*obstacles, *rows)
		if err != nil {
			log.Fatalf("Invalid -obstacles: %v", err)
		}
		scene = l2grid.Scene{Rows: *rows, Cols: *cols, Boxes: boxes, Dropout: *dropout, Jitter: *jitter}
	}

	paths, err := generate(scene, *frames, *seed, *outDir, *format)
	if err != nil {
		log.Fatalf("Failed to generate frames: %v", err)
	}
	log.Printf("Wrote %d frames (%dx%d) to %s", len(paths), scene.Rows, scene.Cols, *outDir)
}
