package routing

import (
	"log"
	"sort"
	"time"

	"multimodal-router/geo"
	"multimodal-router/streetmap"
)

// VertexIndex is the dense 0..N-1 index assigned to street nodes in
// ascending node-id order. It is the internal vertex id; OSM node ids are
// never used as array indices directly.
type VertexIndex int

// Edge is a directed, weighted adjacency list entry. Weight semantics
// depend on which of the three graphs owns it: hours for drive/walk/bike.
type Edge struct {
	To     VertexIndex
	Weight float64
}

// Graph holds the three parallel weighted directed graphs the planner
// queries, all built over the same canonical vertex order.
type Graph struct {
	NodeIDs []streetmap.NodeID // ascending; NodeIDs[i] is the external id of vertex i
	indexOf map[streetmap.NodeID]VertexIndex
	Drive   [][]Edge
	Walk    [][]Edge
	Bike    [][]Edge
}

// NodeCount is the number of vertices, N.
func (g *Graph) NodeCount() int { return len(g.NodeIDs) }

// SortedNodeByIndex returns the external node id at the given vertex
// index, or false if out of range.
func (g *Graph) SortedNodeByIndex(i VertexIndex) (streetmap.NodeID, bool) {
	if int(i) < 0 || int(i) >= len(g.NodeIDs) {
		return 0, false
	}
	return g.NodeIDs[i], true
}

// IndexOf returns the vertex index of a node id, or false if the node id
// is not in the map.
func (g *Graph) IndexOf(id streetmap.NodeID) (VertexIndex, bool) {
	i, ok := g.indexOf[id]
	return i, ok
}

// RebuildIndex repopulates the id->index lookup from NodeIDs. The lookup
// is unexported and so does not survive a gob round-trip; callers that
// decode a cached Graph must call this once before querying it.
func (g *Graph) RebuildIndex() {
	g.indexOf = make(map[streetmap.NodeID]VertexIndex, len(g.NodeIDs))
	for i, id := range g.NodeIDs {
		g.indexOf[id] = VertexIndex(i)
	}
}

// BuildGraph runs the Graph Builder procedure with no deadline: sort nodes
// ascending by id to fix the canonical vertex order, then for each way's
// consecutive node pairs, add weighted edges to the drive/walk/bike
// adjacency lists per the way's oneway/bicycle/maxspeed attributes.
func BuildGraph(cfg Configuration) *Graph {
	return BuildGraphWithDeadline(cfg, time.Time{})
}

// BuildGraphWithDeadline runs the same procedure but honors a soft
// deadline: once passed, remaining ways are skipped and the graph built so
// far is returned rather than blocking until every way is processed. A
// zero deadline means no limit. This is what cmd/graphcache uses to honor
// precompute_time_budget.
func BuildGraphWithDeadline(cfg Configuration, deadline time.Time) *Graph {
	sm := cfg.StreetMap
	n := sm.NodeCount()

	nodes := make([]*streetmap.Node, n)
	for i := 0; i < n; i++ {
		nodes[i] = sm.NodeByIndex(i)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	g := &Graph{
		NodeIDs: make([]streetmap.NodeID, n),
		indexOf: make(map[streetmap.NodeID]VertexIndex, n),
		Drive:   make([][]Edge, n),
		Walk:    make([][]Edge, n),
		Bike:    make([][]Edge, n),
	}
	for i, nd := range nodes {
		g.NodeIDs[i] = nd.ID
		g.indexOf[nd.ID] = VertexIndex(i)
	}

	hasDeadline := !deadline.IsZero()
	wayCount := sm.WayCount()
	processed := wayCount
	for wi := 0; wi < wayCount; wi++ {
		if hasDeadline && wi%256 == 0 && time.Now().After(deadline) {
			processed = wi
			log.Printf("routing: precompute deadline reached after %d/%d ways", wi, wayCount)
			break
		}
		w := sm.WayByIndex(wi)
		for k := 0; k+1 < len(w.NodeIDs); k++ {
			g.addWaySegment(sm, cfg, w, w.NodeIDs[k], w.NodeIDs[k+1])
		}
	}

	log.Printf("routing: built graph with %d vertices, %d/%d ways", n, processed, wayCount)
	return g
}

func (g *Graph) addWaySegment(sm *streetmap.StreetMap, cfg Configuration, w *streetmap.Way, aID, bID streetmap.NodeID) {
	ai, aok := g.indexOf[aID]
	bi, bok := g.indexOf[bID]
	if !aok || !bok {
		return
	}
	a := sm.NodeByID(aID)
	b := sm.NodeByID(bID)
	d := geo.HaversineMiles(a.Location, b.Location)

	walkWeight := d / cfg.WalkSpeedMPH
	g.Walk[ai] = append(g.Walk[ai], Edge{To: bi, Weight: walkWeight})
	g.Walk[bi] = append(g.Walk[bi], Edge{To: ai, Weight: walkWeight})

	speed := cfg.DefaultSpeedLimitMPH
	if ms, ok := w.MaxSpeedMPH(); ok {
		speed = ms
	}
	driveWeight := d / speed
	g.Drive[ai] = append(g.Drive[ai], Edge{To: bi, Weight: driveWeight})
	if !w.IsOneWay() {
		g.Drive[bi] = append(g.Drive[bi], Edge{To: ai, Weight: driveWeight})
	}

	if w.BicycleAllowed() {
		bikeWeight := d / cfg.BikeSpeedMPH
		g.Bike[ai] = append(g.Bike[ai], Edge{To: bi, Weight: bikeWeight})
		if !w.IsOneWay() {
			g.Bike[bi] = append(g.Bike[bi], Edge{To: ai, Weight: bikeWeight})
		}
	}
}
