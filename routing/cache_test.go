package routing

import (
	"path/filepath"
	"testing"

	"multimodal-router/bussystem"
	"multimodal-router/streetmap"
)

func TestSaveAndLoadGraphCacheRoundTrips(t *testing.T) {
	sm := newTestStreetMap(map[streetmap.NodeID][2]float64{
		1: {0, 0},
		2: {0, 0.01},
		3: {0.01, 0.01},
	})
	addWay(sm, 1, []streetmap.NodeID{1, 2, 3}, map[string]string{"oneway": "yes"})
	cfg := NewConfiguration(sm, bussystem.NewBusSystem())
	want := BuildGraph(cfg)

	path := filepath.Join(t.TempDir(), "cache", "graph.gob")
	if err := SaveGraphCache(want, path); err != nil {
		t.Fatalf("SaveGraphCache: %v", err)
	}

	got, err := LoadGraphCache(path)
	if err != nil {
		t.Fatalf("LoadGraphCache: %v", err)
	}

	if got.NodeCount() != want.NodeCount() {
		t.Fatalf("NodeCount() = %d, want %d", got.NodeCount(), want.NodeCount())
	}
	for i := 0; i < want.NodeCount(); i++ {
		wantID, _ := want.SortedNodeByIndex(VertexIndex(i))
		gotID, _ := got.SortedNodeByIndex(VertexIndex(i))
		if gotID != wantID {
			t.Fatalf("SortedNodeByIndex(%d) = %v, want %v", i, gotID, wantID)
		}
	}

	// RebuildIndex must restore IndexOf after the gob round-trip.
	idx, ok := got.IndexOf(2)
	if !ok {
		t.Fatalf("expected IndexOf(2) to resolve after LoadGraphCache")
	}
	if id, _ := got.SortedNodeByIndex(idx); id != 2 {
		t.Fatalf("IndexOf(2) round-trip mismatch: got node id %v", id)
	}

	if len(got.Drive[idx]) != len(want.Drive[idx]) {
		t.Fatalf("Drive adjacency mismatch after cache round-trip")
	}
}
