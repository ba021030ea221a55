package routing

import (
	"testing"

	"multimodal-router/bussystem"
	"multimodal-router/geo"
	"multimodal-router/streetmap"
)

func newTestStreetMap(nodes map[streetmap.NodeID][2]float64) *streetmap.StreetMap {
	sm := streetmap.NewStreetMap()
	for id, latlon := range nodes {
		sm.AddNode(&streetmap.Node{
			ID:       id,
			Location: geo.NewLocation(latlon[0], latlon[1]),
			Tags:     streetmap.NewAttrs(),
		})
	}
	return sm
}

func addWay(sm *streetmap.StreetMap, id streetmap.WayID, nodeIDs []streetmap.NodeID, tags map[string]string) {
	attrs := streetmap.NewAttrs()
	for k, v := range tags {
		attrs.Set(k, v)
	}
	sm.AddWay(&streetmap.Way{ID: id, NodeIDs: nodeIDs, Tags: attrs})
}

func TestBuildGraphVertexOrderIsAscendingNodeID(t *testing.T) {
	sm := newTestStreetMap(map[streetmap.NodeID][2]float64{
		3: {0, 0.03},
		1: {0, 0.01},
		2: {0, 0.02},
	})
	cfg := NewConfiguration(sm, bussystem.NewBusSystem())
	g := BuildGraph(cfg)

	if got, want := g.NodeCount(), 3; got != want {
		t.Fatalf("NodeCount() = %d, want %d", got, want)
	}
	want := []streetmap.NodeID{1, 2, 3}
	for i, id := range want {
		got, ok := g.SortedNodeByIndex(VertexIndex(i))
		if !ok || got != id {
			t.Fatalf("SortedNodeByIndex(%d) = %v, want %v", i, got, id)
		}
	}
}

func TestBuildGraphOneWayExcludesReverseDriveEdge(t *testing.T) {
	sm := newTestStreetMap(map[streetmap.NodeID][2]float64{
		1: {0, 0},
		2: {0, 0.01},
	})
	addWay(sm, 100, []streetmap.NodeID{1, 2}, map[string]string{"oneway": "yes"})
	cfg := NewConfiguration(sm, bussystem.NewBusSystem())
	g := BuildGraph(cfg)

	i1, _ := g.IndexOf(1)
	i2, _ := g.IndexOf(2)

	if len(g.Drive[i2]) != 0 {
		t.Fatalf("expected no reverse drive edge out of node 2 for a oneway way, got %v", g.Drive[i2])
	}
	if len(g.Drive[i1]) != 1 {
		t.Fatalf("expected one forward drive edge out of node 1, got %v", g.Drive[i1])
	}

	// walking graph stays bidirectional regardless of oneway.
	if len(g.Walk[i1]) != 1 || len(g.Walk[i2]) != 1 {
		t.Fatalf("expected walk graph to remain bidirectional for a oneway way")
	}
}

func TestBuildGraphBicycleNoExcludesBikeEdges(t *testing.T) {
	sm := newTestStreetMap(map[streetmap.NodeID][2]float64{
		1: {0, 0},
		2: {0, 0.01},
	})
	addWay(sm, 100, []streetmap.NodeID{1, 2}, map[string]string{"bicycle": "no"})
	cfg := NewConfiguration(sm, bussystem.NewBusSystem())
	g := BuildGraph(cfg)

	i1, _ := g.IndexOf(1)
	i2, _ := g.IndexOf(2)
	if len(g.Bike[i1]) != 0 || len(g.Bike[i2]) != 0 {
		t.Fatalf("expected no bike edges for a bicycle=no way")
	}
	if len(g.Walk[i1]) != 1 || len(g.Drive[i1]) != 1 {
		t.Fatalf("expected walk/drive edges unaffected by bicycle=no")
	}
}

func TestBuildGraphMaxSpeedOverridesDefault(t *testing.T) {
	sm := newTestStreetMap(map[streetmap.NodeID][2]float64{
		1: {0, 0},
		2: {0, 0.01},
	})
	addWay(sm, 100, []streetmap.NodeID{1, 2}, map[string]string{"maxspeed": "50 mph"})
	cfg := NewConfiguration(sm, bussystem.NewBusSystem())
	g := BuildGraph(cfg)

	i1, _ := g.IndexOf(1)
	i2, _ := g.IndexOf(2)
	d := geo.HaversineMiles(sm.NodeByID(1).Location, sm.NodeByID(2).Location)
	want := d / 50.0
	got := g.Drive[i1][0].Weight
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("Drive weight = %v, want %v", got, want)
	}
	_ = i2
}
