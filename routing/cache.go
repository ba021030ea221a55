package routing

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// SaveGraphCache gob-encodes a built Graph to path, creating any missing
// parent directories.
func SaveGraphCache(g *Graph, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("routing: create graph cache directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("routing: create graph cache %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(g); err != nil {
		return fmt.Errorf("routing: encode graph cache %s: %w", path, err)
	}
	return nil
}

// LoadGraphCache decodes a Graph written by SaveGraphCache and rebuilds
// its id->index lookup, which is unexported and so does not survive the
// gob round-trip.
func LoadGraphCache(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("routing: open graph cache %s: %w", path, err)
	}
	defer f.Close()

	var g Graph
	if err := gob.NewDecoder(f).Decode(&g); err != nil {
		return nil, fmt.Errorf("routing: decode graph cache %s: %w", path, err)
	}
	g.RebuildIndex()
	return &g, nil
}
