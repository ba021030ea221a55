// Command graphcache precomputes the drive/walk/bike graphs from an OSM
// XML extract and writes them to a gob file, so cmd/planner and
// cmd/server can skip rebuilding the graph on every startup.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"multimodal-router/routing"
	"multimodal-router/streetmap"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println("Usage: graphcache <input_osm_xml_file> [output_gob_file]")
		os.Exit(1)
	}

	inputPath := os.Args[1]
	outputPath := os.Args[1] + ".gob"
	if len(os.Args) > 2 {
		outputPath = os.Args[2]
	}

	if err := buildAndCache(inputPath, outputPath); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func buildAndCache(inputPath, outputPath string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inputPath, err)
	}
	defer f.Close()

	sm, err := streetmap.LoadOSMXML(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", inputPath, err)
	}

	deadline := time.Now().Add(time.Duration(routing.DefaultPrecomputeBudgetSec) * time.Second)
	cfg := routing.NewConfiguration(sm, nil)
	graph := routing.BuildGraphWithDeadline(cfg, deadline)

	if err := routing.SaveGraphCache(graph, outputPath); err != nil {
		return err
	}

	fmt.Printf("Successfully cached %s to %s\n", inputPath, outputPath)
	fmt.Printf("Vertices: %d\n", graph.NodeCount())
	return nil
}
