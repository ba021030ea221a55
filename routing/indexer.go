package routing

import (
	"sort"

	"multimodal-router/bussystem"
	"multimodal-router/streetmap"
)

// BusIndexer provides the O(1) lookups the planner needs to detect
// bus-accessible nodes and find route segments between them.
type BusIndexer struct {
	stopsSortedByID    []*bussystem.Stop
	routesSortedByName []*bussystem.Route
	nodeToStop         map[streetmap.NodeID]*bussystem.Stop

	// stopRoutes maps a stop id to every (route, index-within-route) pair
	// it appears in, supporting routes_between_node_ids without a linear
	// scan over all routes per query.
	stopRoutes map[bussystem.StopID][]StopOccurrence
}

// StopOccurrence names a single (route, index) appearance of a stop.
type StopOccurrence struct {
	Route *bussystem.Route
	Index int
}

// BuildBusIndexer builds the stop/route/node lookups from a bus system.
func BuildBusIndexer(bs *bussystem.BusSystem) *BusIndexer {
	idx := &BusIndexer{
		nodeToStop: make(map[streetmap.NodeID]*bussystem.Stop),
		stopRoutes: make(map[bussystem.StopID][]StopOccurrence),
	}

	n := bs.StopCount()
	idx.stopsSortedByID = make([]*bussystem.Stop, n)
	for i := 0; i < n; i++ {
		idx.stopsSortedByID[i] = bs.StopByIndex(i)
	}
	sort.Slice(idx.stopsSortedByID, func(i, j int) bool {
		return idx.stopsSortedByID[i].ID < idx.stopsSortedByID[j].ID
	})

	for _, s := range idx.stopsSortedByID {
		// Last-wins on duplicate node ids.
		idx.nodeToStop[s.NodeID] = s
	}

	rn := bs.RouteCount()
	idx.routesSortedByName = make([]*bussystem.Route, rn)
	for i := 0; i < rn; i++ {
		idx.routesSortedByName[i] = bs.RouteByIndex(i)
	}
	sort.Slice(idx.routesSortedByName, func(i, j int) bool {
		return idx.routesSortedByName[i].Name < idx.routesSortedByName[j].Name
	})

	for _, r := range idx.routesSortedByName {
		for i, stopID := range r.StopIDs {
			idx.stopRoutes[stopID] = append(idx.stopRoutes[stopID], StopOccurrence{Route: r, Index: i})
		}
	}

	return idx
}

func (idx *BusIndexer) StopCount() int  { return len(idx.stopsSortedByID) }
func (idx *BusIndexer) RouteCount() int { return len(idx.routesSortedByName) }

func (idx *BusIndexer) SortedStopByIndex(i int) *bussystem.Stop {
	if i < 0 || i >= len(idx.stopsSortedByID) {
		return nil
	}
	return idx.stopsSortedByID[i]
}

func (idx *BusIndexer) SortedRouteByNameIndex(i int) *bussystem.Route {
	if i < 0 || i >= len(idx.routesSortedByName) {
		return nil
	}
	return idx.routesSortedByName[i]
}

// StopByNodeID returns the stop located at the given street node, or nil.
func (idx *BusIndexer) StopByNodeID(nodeID streetmap.NodeID) *bussystem.Stop {
	return idx.nodeToStop[nodeID]
}

// RoutesBetweenNodeIDs returns every route with a segment where a stop at
// srcNode is immediately followed by a stop at destNode, in either order.
func (idx *BusIndexer) RoutesBetweenNodeIDs(srcNode, destNode streetmap.NodeID) []*bussystem.Route {
	srcStop := idx.StopByNodeID(srcNode)
	destStop := idx.StopByNodeID(destNode)
	if srcStop == nil || destStop == nil {
		return nil
	}

	var found []*bussystem.Route
	seen := make(map[*bussystem.Route]bool)
	for _, occ := range idx.stopRoutes[srcStop.ID] {
		r := occ.Route
		if seen[r] {
			continue
		}
		if adjacentOnRoute(r, srcStop.ID, destStop.ID) {
			found = append(found, r)
			seen[r] = true
		}
	}
	return found
}

func adjacentOnRoute(r *bussystem.Route, a, b bussystem.StopID) bool {
	for i := 0; i+1 < len(r.StopIDs); i++ {
		if (r.StopIDs[i] == a && r.StopIDs[i+1] == b) || (r.StopIDs[i] == b && r.StopIDs[i+1] == a) {
			return true
		}
	}
	return false
}

// RouteBetweenNodeIDs reports whether RoutesBetweenNodeIDs is non-empty.
func (idx *BusIndexer) RouteBetweenNodeIDs(srcNode, destNode streetmap.NodeID) bool {
	return len(idx.RoutesBetweenNodeIDs(srcNode, destNode)) > 0
}

// DownstreamStops returns every stop at index > the given stop's index on
// route r, in route order — the candidate alight points for a boarding at
// that stop. Each is relaxed as its own Dijkstra transition by the
// planner; the indexer performs no "closest" selection itself.
func (idx *BusIndexer) DownstreamStops(r *bussystem.Route, boardIndex int) []bussystem.StopID {
	if boardIndex < 0 || boardIndex >= len(r.StopIDs) {
		return nil
	}
	return r.StopIDs[boardIndex+1:]
}

// RoutesContainingStop returns every (route, index) pair the stop at
// nodeID appears in.
func (idx *BusIndexer) RoutesContainingStop(nodeID streetmap.NodeID) []StopOccurrence {
	s := idx.StopByNodeID(nodeID)
	if s == nil {
		return nil
	}
	return idx.stopRoutes[s.ID]
}
