package bussystem

import (
	"strings"
	"testing"
)

func TestLoadStopsDSVSkipsUnparseableHeaderRow(t *testing.T) {
	data := "stop_id,node_id\n1,100\n2,200\n"
	b, err := LoadStopsDSV(strings.NewReader(data), ',')
	if err != nil {
		t.Fatalf("LoadStopsDSV returned error: %v", err)
	}
	if got, want := b.StopCount(), 2; got != want {
		t.Fatalf("StopCount() = %d, want %d", got, want)
	}
	s := b.StopByID(1)
	if s == nil || s.NodeID != 100 {
		t.Fatalf("StopByID(1) = %+v, want NodeID 100", s)
	}
}

func TestLoadRoutesDSVPreservesOrderAndGroupsByName(t *testing.T) {
	stops := "stop_id,node_id\n1,100\n2,200\n3,300\n"
	b, err := LoadStopsDSV(strings.NewReader(stops), ',')
	if err != nil {
		t.Fatalf("LoadStopsDSV returned error: %v", err)
	}

	routes := "route_name,stop_id\nA,1\nA,2\nB,3\nA,3\n"
	if err := LoadRoutesDSV(strings.NewReader(routes), ',', b); err != nil {
		t.Fatalf("LoadRoutesDSV returned error: %v", err)
	}

	if got, want := b.RouteCount(), 2; got != want {
		t.Fatalf("RouteCount() = %d, want %d", got, want)
	}
	routeA := b.RouteByName("A")
	if routeA == nil {
		t.Fatalf("RouteByName(A) returned nil")
	}
	wantStops := []StopID{1, 2, 3}
	if len(routeA.StopIDs) != len(wantStops) {
		t.Fatalf("route A stops = %v, want %v", routeA.StopIDs, wantStops)
	}
	for i, id := range wantStops {
		if routeA.StopIDs[i] != id {
			t.Fatalf("route A stops = %v, want %v", routeA.StopIDs, wantStops)
		}
	}
}
