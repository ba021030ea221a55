package routing

import "multimodal-router/streetmap"

// PlannerFacade is the stable outward contract that CLI and HTTP drivers
// depend on — the only surface they're allowed to call into the core
// through.
type PlannerFacade struct {
	graph   *Graph
	planner *MultimodalPlanner
}

// NewPlannerFacade builds the graph, the bus indexer, and the planner
// from a configuration, in one synchronous construction step. No
// mutation happens after this call returns.
func NewPlannerFacade(cfg Configuration) *PlannerFacade {
	return NewPlannerFacadeWithGraph(cfg, BuildGraph(cfg))
}

// NewPlannerFacadeWithGraph is the same construction step but accepts an
// already-built graph — typically one restored via LoadGraphCache — so a
// driver can skip the Graph Builder pass entirely on startup.
func NewPlannerFacadeWithGraph(cfg Configuration, graph *Graph) *PlannerFacade {
	indexer := BuildBusIndexer(cfg.BusSystem)
	planner := NewMultimodalPlanner(graph, indexer, cfg)
	return &PlannerFacade{graph: graph, planner: planner}
}

func (f *PlannerFacade) NodeCount() int { return f.graph.NodeCount() }

func (f *PlannerFacade) SortedNodeByIndex(i int) (streetmap.NodeID, bool) {
	return f.graph.SortedNodeByIndex(VertexIndex(i))
}

func (f *PlannerFacade) FindShortestPath(src, dest streetmap.NodeID) (float64, []streetmap.NodeID) {
	return f.planner.FindShortestPath(src, dest)
}

func (f *PlannerFacade) FindFastestPath(src, dest streetmap.NodeID) (float64, []TripStep) {
	return f.planner.FindFastestPath(src, dest)
}

func (f *PlannerFacade) GetPathDescription(trip []TripStep) []string {
	return f.planner.GetPathDescription(trip)
}
