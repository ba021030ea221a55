package routing

import (
	"testing"

	"multimodal-router/bussystem"
)

func newTestBusSystem() *bussystem.BusSystem {
	bs := bussystem.NewBusSystem()
	bs.AddStop(&bussystem.Stop{ID: 1, NodeID: 10})
	bs.AddStop(&bussystem.Stop{ID: 2, NodeID: 20})
	bs.AddStop(&bussystem.Stop{ID: 3, NodeID: 30})
	bs.AppendStopToRoute("Red", 1)
	bs.AppendStopToRoute("Red", 2)
	bs.AppendStopToRoute("Red", 3)
	return bs
}

func TestBusIndexerStopByNodeID(t *testing.T) {
	idx := BuildBusIndexer(newTestBusSystem())
	s := idx.StopByNodeID(20)
	if s == nil || s.ID != 2 {
		t.Fatalf("StopByNodeID(20) = %+v, want stop 2", s)
	}
	if idx.StopByNodeID(999) != nil {
		t.Fatalf("expected nil for unknown node id")
	}
}

func TestBusIndexerRouteBetweenNodeIDsAdjacentStops(t *testing.T) {
	idx := BuildBusIndexer(newTestBusSystem())
	if !idx.RouteBetweenNodeIDs(10, 20) {
		t.Fatalf("expected route between adjacent stops at nodes 10 and 20")
	}
	if !idx.RouteBetweenNodeIDs(20, 10) {
		t.Fatalf("expected route detection to be order-independent")
	}
	if idx.RouteBetweenNodeIDs(10, 30) {
		t.Fatalf("expected no direct route segment between non-adjacent stops 10 and 30")
	}
}

func TestBusIndexerSortedByIDAndName(t *testing.T) {
	bs := bussystem.NewBusSystem()
	bs.AddStop(&bussystem.Stop{ID: 5, NodeID: 50})
	bs.AddStop(&bussystem.Stop{ID: 1, NodeID: 10})
	bs.AppendStopToRoute("Zeta", 1)
	bs.AppendStopToRoute("Alpha", 5)

	idx := BuildBusIndexer(bs)
	if got := idx.SortedStopByIndex(0); got == nil || got.ID != 1 {
		t.Fatalf("expected stop 1 sorted first by ascending id, got %+v", got)
	}
	if got := idx.SortedRouteByNameIndex(0); got == nil || got.Name != "Alpha" {
		t.Fatalf("expected route Alpha sorted first lexicographically, got %+v", got)
	}
}

func TestBusIndexerDownstreamStopsExcludesBoardedStop(t *testing.T) {
	idx := BuildBusIndexer(newTestBusSystem())
	route := idx.SortedRouteByNameIndex(0)
	downstream := idx.DownstreamStops(route, 0)
	want := []bussystem.StopID{2, 3}
	if len(downstream) != len(want) {
		t.Fatalf("DownstreamStops = %v, want %v", downstream, want)
	}
	for i, id := range want {
		if downstream[i] != id {
			t.Fatalf("DownstreamStops = %v, want %v", downstream, want)
		}
	}
}
