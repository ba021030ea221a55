package routing

import (
	"container/heap"
	"encoding/json"
	"math"
	"strconv"

	"multimodal-router/geo"
	"multimodal-router/streetmap"
)

// NoPathExists is the sentinel returned when a query has no answer.
var NoPathExists = math.Inf(1)

// Mode is the transportation mode of a trip step or composite-state
// component.
type Mode int

const (
	Walk Mode = iota
	Bike
	Bus
)

func (m Mode) String() string {
	switch m {
	case Walk:
		return "Walk"
	case Bike:
		return "Bike"
	case Bus:
		return "Bus"
	default:
		return "Unknown"
	}
}

// MarshalJSON renders a Mode as its name rather than its ordinal, for the
// HTTP driver's JSON responses.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// modeCount is K in state_id = vertex*K + mode_ordinal. Bus never appears
// as a state's mode component: it is the label on the incoming transition
// that lands back in Walk mode.
const modeCount = 2

// TripStep is a (mode, node id) pair in the emitted fastest-path sequence.
type TripStep struct {
	Mode   Mode             `json:"mode"`
	NodeID streetmap.NodeID `json:"nodeId"`
}

// MultimodalPlanner answers shortest (walking, miles) and fastest
// (multimodal, hours) path queries over a built Graph and BusIndexer.
type MultimodalPlanner struct {
	graph   *Graph
	indexer *BusIndexer
	cfg     Configuration
}

// NewMultimodalPlanner wires together the pieces built at construction.
func NewMultimodalPlanner(graph *Graph, indexer *BusIndexer, cfg Configuration) *MultimodalPlanner {
	return &MultimodalPlanner{graph: graph, indexer: indexer, cfg: cfg}
}

// walkQueueItem is one entry in the shortest-path priority queue.
type walkQueueItem struct {
	vertex VertexIndex
	cost   float64
	index  int
}

type walkQueue []*walkQueueItem

func (q walkQueue) Len() int { return len(q) }
func (q walkQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].vertex < q[j].vertex // deterministic tie-break: smaller vertex index first
}
func (q walkQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *walkQueue) Push(x interface{}) {
	item := x.(*walkQueueItem)
	item.index = len(*q)
	*q = append(*q, item)
}
func (q *walkQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// FindShortestPath runs Dijkstra over graph_walk and returns the total
// Haversine miles along the shortest walking path plus the node-id path,
// src to dest inclusive. Returns (NoPathExists, nil) if unreachable or if
// either endpoint is not a known node id.
func (p *MultimodalPlanner) FindShortestPath(srcNode, destNode streetmap.NodeID) (float64, []streetmap.NodeID) {
	src, ok := p.graph.IndexOf(srcNode)
	if !ok {
		return NoPathExists, nil
	}
	dest, ok := p.graph.IndexOf(destNode)
	if !ok {
		return NoPathExists, nil
	}

	n := p.graph.NodeCount()
	dist := make([]float64, n)
	prev := make([]int, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[src] = 0

	pq := &walkQueue{{vertex: src, cost: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*walkQueueItem)
		u := cur.vertex
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == dest {
			break
		}
		for _, e := range p.graph.Walk[u] {
			if visited[e.To] {
				continue
			}
			nc := dist[u] + e.Weight
			if nc < dist[e.To] {
				dist[e.To] = nc
				prev[e.To] = int(u)
				heap.Push(pq, &walkQueueItem{vertex: e.To, cost: nc})
			}
		}
	}

	if math.IsInf(dist[dest], 1) {
		return NoPathExists, nil
	}

	vertexPath := reconstructVertexPath(prev, int(src), int(dest))
	nodePath := make([]streetmap.NodeID, len(vertexPath))
	miles := 0.0
	for i, v := range vertexPath {
		id, _ := p.graph.SortedNodeByIndex(VertexIndex(v))
		nodePath[i] = id
		if i > 0 {
			miles += haversineBetweenVertices(p.graph, p.cfg, VertexIndex(vertexPath[i-1]), VertexIndex(v))
		}
	}
	return miles, nodePath
}

func haversineBetweenVertices(g *Graph, cfg Configuration, a, b VertexIndex) float64 {
	idA, _ := g.SortedNodeByIndex(a)
	idB, _ := g.SortedNodeByIndex(b)
	na := cfg.StreetMap.NodeByID(idA)
	nb := cfg.StreetMap.NodeByID(idB)
	return geo.HaversineMiles(na.Location, nb.Location)
}

func reconstructVertexPath(prev []int, src, dest int) []int {
	var path []int
	for v := dest; v != -1; v = prev[v] {
		path = append(path, v)
		if v == src {
			break
		}
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// edgeKind labels the transition that produced a composite-state's
// predecessor pointer, for trip-step emission.
type edgeKind int

const (
	kindNone edgeKind = iota
	kindWalkEdge
	kindBikeEdge
	kindModeSwap
	kindBusSegment
)

// fastQueueItem is one entry in the fastest-path priority queue, keyed by
// composite state id = vertex*modeCount + mode ordinal.
type fastQueueItem struct {
	state VertexIndex // state id, not a plain vertex index
	cost  float64
	index int
}

type fastQueue []*fastQueueItem

func (q fastQueue) Len() int { return len(q) }
func (q fastQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].state < q[j].state // deterministic tie-break: smaller state id first
}
func (q fastQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *fastQueue) Push(x interface{}) {
	item := x.(*fastQueueItem)
	item.index = len(*q)
	*q = append(*q, item)
}
func (q *fastQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

func stateID(v VertexIndex, m Mode) VertexIndex {
	return v*modeCount + VertexIndex(m)
}

func stateVertex(s VertexIndex) VertexIndex { return s / modeCount }
func stateMode(s VertexIndex) Mode          { return Mode(s % modeCount) }

// FindFastestPath runs Dijkstra over the composite (vertex, mode) state
// space: walk edges, bike edges, free mode swaps, and bus-segment
// transitions that board at a stop and arrive back in Walk mode at any
// downstream stop on a route containing the boarding stop. Returns
// (NoPathExists, nil) if dest's vertex is never reached in any mode.
func (p *MultimodalPlanner) FindFastestPath(srcNode, destNode streetmap.NodeID) (float64, []TripStep) {
	src, ok := p.graph.IndexOf(srcNode)
	if !ok {
		return NoPathExists, nil
	}
	dest, ok := p.graph.IndexOf(destNode)
	if !ok {
		return NoPathExists, nil
	}

	n := p.graph.NodeCount()
	numStates := n * modeCount
	dist := make([]float64, numStates)
	prev := make([]VertexIndex, numStates)
	prevKind := make([]edgeKind, numStates)
	visited := make([]bool, numStates)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}

	startState := stateID(src, Walk)
	dist[startState] = 0

	pq := &fastQueue{{state: startState, cost: 0}}
	heap.Init(pq)

	destStates := [modeCount]VertexIndex{stateID(dest, Walk), stateID(dest, Bike)}
	reached := VertexIndex(-1)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*fastQueueItem)
		s := cur.state
		if visited[s] {
			continue
		}
		visited[s] = true

		if s == destStates[0] || s == destStates[1] {
			reached = s
			break
		}

		u := stateVertex(s)
		m := stateMode(s)
		base := dist[s]

		p.relaxModeSwap(s, u, m, base, dist, prev, prevKind, visited, pq)

		switch m {
		case Walk:
			for _, e := range p.graph.Walk[u] {
				p.relax(s, stateID(e.To, Walk), base+e.Weight, dist, prev, prevKind, visited, pq, kindWalkEdge)
			}
			p.relaxBusSegments(s, u, base, dist, prev, prevKind, visited, pq)
		case Bike:
			for _, e := range p.graph.Bike[u] {
				p.relax(s, stateID(e.To, Bike), base+e.Weight, dist, prev, prevKind, visited, pq, kindBikeEdge)
			}
		}
	}

	if reached == -1 {
		return NoPathExists, nil
	}

	return dist[reached], p.reconstructTripSteps(prev, prevKind, startState, reached)
}

func (p *MultimodalPlanner) relax(from, target VertexIndex, cost float64, dist []float64, prev []VertexIndex, prevKind []edgeKind, visited []bool, pq *fastQueue, kind edgeKind) {
	if visited[target] {
		return
	}
	if cost < dist[target] {
		dist[target] = cost
		prev[target] = from
		prevKind[target] = kind
		heap.Push(pq, &fastQueueItem{state: target, cost: cost})
	}
}

func (p *MultimodalPlanner) relaxModeSwap(from VertexIndex, u VertexIndex, m Mode, base float64, dist []float64, prev []VertexIndex, prevKind []edgeKind, visited []bool, pq *fastQueue) {
	other := Bike
	if m == Bike {
		other = Walk
	}
	target := stateID(u, other)
	if visited[target] {
		return
	}
	if base < dist[target] {
		dist[target] = base
		prev[target] = from
		prevKind[target] = kindModeSwap
		heap.Push(pq, &fastQueueItem{state: target, cost: base})
	}
}

// relaxBusSegments implements the bus-segment transition: if u is
// a bus stop node, every downstream stop on every route through that stop
// is relaxed as its own Dijkstra state, each priced as bus_stop_time plus
// the Haversine-mile sum between the *street nodes* of consecutive stops
// on the traversed route prefix, divided by the default speed limit. No
// "closest remaining distance" heuristic picks a single alight point.
func (p *MultimodalPlanner) relaxBusSegments(fromState, u VertexIndex, base float64, dist []float64, prev []VertexIndex, prevKind []edgeKind, visited []bool, pq *fastQueue) {
	nodeID, ok := p.graph.SortedNodeByIndex(u)
	if !ok {
		return
	}
	occurrences := p.indexer.RoutesContainingStop(nodeID)
	if len(occurrences) == 0 {
		return
	}

	for _, occ := range occurrences {
		route := occ.Route
		boardIdx := occ.Index
		routeMiles := 0.0
		prevStopNode := nodeID

		for j := boardIdx + 1; j < len(route.StopIDs); j++ {
			stop := p.cfg.BusSystem.StopByID(route.StopIDs[j])
			if stop == nil {
				continue
			}
			prevNode := p.cfg.StreetMap.NodeByID(prevStopNode)
			curNode := p.cfg.StreetMap.NodeByID(stop.NodeID)
			if prevNode == nil || curNode == nil {
				continue
			}
			routeMiles += geo.HaversineMiles(prevNode.Location, curNode.Location)
			prevStopNode = stop.NodeID

			alightVertex, ok := p.graph.IndexOf(stop.NodeID)
			if !ok {
				continue
			}
			cost := base + p.cfg.BusStopTimeHours + routeMiles/p.cfg.DefaultSpeedLimitMPH
			target := stateID(alightVertex, Walk)
			if visited[target] {
				continue
			}
			if cost < dist[target] {
				dist[target] = cost
				prev[target] = fromState
				prevKind[target] = kindBusSegment
				heap.Push(pq, &fastQueueItem{state: target, cost: cost})
			}
		}
	}
}

func (p *MultimodalPlanner) reconstructTripSteps(prev []VertexIndex, prevKind []edgeKind, startState, destState VertexIndex) []TripStep {
	type stateKind struct {
		state VertexIndex
		kind  edgeKind
	}
	var chain []stateKind
	for s := destState; ; {
		chain = append(chain, stateKind{state: s, kind: prevKind[s]})
		if s == startState {
			break
		}
		s = prev[s]
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	steps := make([]TripStep, 0, len(chain))
	for i, sk := range chain {
		nodeID, _ := p.graph.SortedNodeByIndex(stateVertex(sk.state))
		mode := Walk
		switch sk.kind {
		case kindBikeEdge:
			mode = Bike
		case kindBusSegment:
			mode = Bus
		case kindWalkEdge, kindModeSwap, kindNone:
			mode = Walk
		}
		if i == 0 {
			mode = Walk // first step's mode is Walk by convention
		}
		steps = append(steps, TripStep{Mode: mode, NodeID: nodeID})
	}
	return steps
}

// GetPathDescription produces human-readable lines from a trip-step
// sequence: one line per run of consecutive equal-mode steps, naming the
// mode and the node id of the run's first step.
func (p *MultimodalPlanner) GetPathDescription(trip []TripStep) []string {
	if len(trip) == 0 {
		return nil
	}
	lines := make([]string, 0, len(trip))
	lastMode := Mode(-1)
	for _, step := range trip {
		if step.Mode != lastMode {
			lines = append(lines, describeStep(step))
			lastMode = step.Mode
		}
	}
	return lines
}

func describeStep(step TripStep) string {
	return step.Mode.String() + " to node " + formatNodeID(step.NodeID)
}

func formatNodeID(id streetmap.NodeID) string {
	return strconv.FormatUint(uint64(id), 10)
}
