// Command planner is the interactive command-line driver over the
// multimodal route planner: a thin REPL consuming the Planner Facade.
package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"multimodal-router/bussystem"
	"multimodal-router/geo"
	"multimodal-router/kml"
	"multimodal-router/routing"
	"multimodal-router/streetmap"
)

type app struct {
	facade *routing.PlannerFacade
	sm     *streetmap.StreetMap
	last   *lastPath
}

func main() {
	_ = godotenv.Load()

	a, err := buildApp()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	a.repl()
}

func buildApp() (*app, error) {
	mapPath := envOr("STREET_MAP_PATH", "streetmap.osm")
	stopsPath := envOr("BUS_STOPS_PATH", "stops.csv")
	routesPath := envOr("BUS_ROUTES_PATH", "routes.csv")
	cachePath := os.Getenv("GRAPH_CACHE_PATH")

	mf, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("open street map %s: %w", mapPath, err)
	}
	defer mf.Close()

	sm, err := streetmap.LoadOSMXML(mf)
	if err != nil {
		return nil, fmt.Errorf("parse street map %s: %w", mapPath, err)
	}

	var cachedGraph *routing.Graph
	if cachePath != "" {
		if g, err := routing.LoadGraphCache(cachePath); err == nil {
			cachedGraph = g
		} else {
			fmt.Printf("Graph cache %s unusable, rebuilding: %v\n", cachePath, err)
		}
	}

	sf, err := os.Open(stopsPath)
	if err != nil {
		return nil, fmt.Errorf("open bus stops %s: %w", stopsPath, err)
	}
	defer sf.Close()

	bs, err := bussystem.LoadStopsDSV(sf, ',')
	if err != nil {
		return nil, fmt.Errorf("parse bus stops %s: %w", stopsPath, err)
	}

	rf, err := os.Open(routesPath)
	if err != nil {
		return nil, fmt.Errorf("open bus routes %s: %w", routesPath, err)
	}
	defer rf.Close()

	if err := bussystem.LoadRoutesDSV(rf, ',', bs); err != nil {
		return nil, fmt.Errorf("parse bus routes %s: %w", routesPath, err)
	}

	cfg := routing.NewConfiguration(sm, bs)
	var facade *routing.PlannerFacade
	if cachedGraph != nil && cachedGraph.NodeCount() == sm.NodeCount() {
		facade = routing.NewPlannerFacadeWithGraph(cfg, cachedGraph)
	} else {
		facade = routing.NewPlannerFacade(cfg)
	}
	return &app{facade: facade, sm: sm}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// lastPath remembers the most recent computed path for "save"/"print".
type lastPath struct {
	isFastest bool
	src, dest streetmap.NodeID
	shortest  []streetmap.NodeID
	fastest   []routing.TripStep
}

func (a *app) repl() {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			printHelp()
		case "exit", "quit":
			return
		case "count":
			fmt.Printf("Node count: %d\n", a.facade.NodeCount())
		case "node":
			a.handleNode(fields)
		case "shortest":
			a.handleShortest(fields)
		case "fastest":
			a.handleFastest(fields)
		case "save":
			a.handleSave(fields)
		case "print":
			a.handlePrint()
		default:
			fmt.Printf("Unknown command: %s\n", fields[0])
		}
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  help                        Display this help")
	fmt.Println("  exit, quit                  Exit the program")
	fmt.Println("  count                       Print the node count")
	fmt.Println("  node <i>                    Print the node at index i")
	fmt.Println("  shortest <src> <dest>       Find the shortest walking path")
	fmt.Println("  fastest <src> <dest>        Find the fastest multimodal path")
	fmt.Println("  save [<filename>]           Save the last path to csv and kml")
	fmt.Println("  print                       Print the last path")
}

func (a *app) handleNode(fields []string) {
	if len(fields) < 2 {
		fmt.Println("Usage: node <i>")
		return
	}
	i, err := strconv.Atoi(fields[1])
	if err != nil || i < 0 || i >= a.facade.NodeCount() {
		fmt.Printf("Index out of range [0, %d)\n", a.facade.NodeCount())
		return
	}
	id, _ := a.facade.SortedNodeByIndex(i)
	nd := a.sm.NodeByID(id)
	fmt.Printf("Node %d: id %d, %s\n", i, id, geo.FormatDMS(nd.Location))
}

func parseSrcDest(fields []string) (streetmap.NodeID, streetmap.NodeID, bool) {
	if len(fields) < 3 {
		return 0, 0, false
	}
	src, err1 := strconv.ParseUint(fields[1], 10, 64)
	dest, err2 := strconv.ParseUint(fields[2], 10, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return streetmap.NodeID(src), streetmap.NodeID(dest), true
}

func (a *app) handleShortest(fields []string) {
	src, dest, ok := parseSrcDest(fields)
	if !ok {
		fmt.Println("Usage: shortest <src> <dest>")
		return
	}
	miles, path := a.facade.FindShortestPath(src, dest)
	if math.IsInf(miles, 1) {
		fmt.Printf("No path exists between %d and %d\n", src, dest)
		return
	}
	fmt.Printf("Shortest path distance: %g miles\n", miles)
	a.last = &lastPath{isFastest: false, src: src, dest: dest, shortest: path}
}

func (a *app) handleFastest(fields []string) {
	src, dest, ok := parseSrcDest(fields)
	if !ok {
		fmt.Println("Usage: fastest <src> <dest>")
		return
	}
	hours, trip := a.facade.FindFastestPath(src, dest)
	if math.IsInf(hours, 1) {
		fmt.Printf("No path exists between %d and %d\n", src, dest)
		return
	}
	fmt.Printf("Fastest path time: %g hours\n", hours)
	a.last = &lastPath{isFastest: true, src: src, dest: dest, fastest: trip}
}

func (a *app) handlePrint() {
	if a.last == nil {
		fmt.Println("No path to print")
		return
	}
	if a.last.isFastest {
		for _, line := range a.facade.GetPathDescription(a.last.fastest) {
			fmt.Println(line)
		}
		return
	}
	parts := make([]string, len(a.last.shortest))
	for i, id := range a.last.shortest {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	fmt.Printf("Path: %s\n", strings.Join(parts, " -> "))
}

func (a *app) handleSave(fields []string) {
	if a.last == nil {
		fmt.Println("No path to save")
		return
	}
	filename := fmt.Sprintf("%d_%d", a.last.src, a.last.dest)
	if len(fields) > 1 {
		filename = fields[1]
	}

	if err := a.saveCSV(filename + ".csv"); err != nil {
		fmt.Printf("Error saving csv: %v\n", err)
		return
	}
	if err := a.saveKML(filename + ".kml"); err != nil {
		fmt.Printf("Error saving kml: %v\n", err)
		return
	}
	fmt.Printf("Saved %s.csv and %s.kml\n", filename, filename)
}

func (a *app) saveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, "mode,node_id"); err != nil {
		return err
	}

	if a.last.isFastest {
		for _, step := range a.last.fastest {
			if _, err := fmt.Fprintf(f, "%s,%d\n", step.Mode, step.NodeID); err != nil {
				return err
			}
		}
		return nil
	}
	for _, id := range a.last.shortest {
		if _, err := fmt.Fprintf(f, "Walk,%d\n", id); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) saveKML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var segments []kml.Segment
	if a.last.isFastest {
		segments = a.tripStepsToSegments(a.last.fastest)
	} else {
		segments = a.shortestPathToSegments(a.last.shortest)
	}
	return kml.WriteDocument(f, segments)
}

func (a *app) locationOf(id streetmap.NodeID) geo.Location {
	return a.sm.NodeByID(id).Location
}

// shortestPathToSegments renders the whole path as a single Walk segment.
func (a *app) shortestPathToSegments(path []streetmap.NodeID) []kml.Segment {
	if len(path) == 0 {
		return nil
	}
	pts := make([]geo.Location, len(path))
	for i, id := range path {
		pts[i] = a.locationOf(id)
	}
	return []kml.Segment{{Mode: routing.Walk, Points: pts}}
}

// tripStepsToSegments groups consecutive same-mode trip steps into
// contiguous segments, each rendered as its own styled line.
func (a *app) tripStepsToSegments(trip []routing.TripStep) []kml.Segment {
	if len(trip) == 0 {
		return nil
	}
	var segments []kml.Segment
	var cur kml.Segment
	cur.Mode = trip[0].Mode

	for i, step := range trip {
		if i > 0 && step.Mode != cur.Mode {
			segments = append(segments, cur)
			cur = kml.Segment{Mode: step.Mode}
			// a new segment starts where the previous one ended.
			cur.Points = append(cur.Points, a.locationOf(trip[i-1].NodeID))
		}
		cur.Points = append(cur.Points, a.locationOf(step.NodeID))
	}
	segments = append(segments, cur)
	return segments
}
