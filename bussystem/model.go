// Package bussystem is the read-only bus-route collaborator: Stops (a
// street-map node serving as a boarding point) and Routes (an ordered
// sequence of stops), as ingested from a tabular extract.
package bussystem

import "multimodal-router/streetmap"

// StopID is the bus system's own stop identifier, distinct from the
// underlying street-map node id it resolves to.
type StopID uint64

// Stop is a single boarding point: its own id and the street node it sits
// at.
type Stop struct {
	ID     StopID
	NodeID streetmap.NodeID
}

// Route is a named, ordered sequence of stop ids. Stop order within a
// route is input order, not any sorted order.
type Route struct {
	Name    string
	StopIDs []StopID
}

// BusSystem is the read-only collection of Stops and Routes, queryable by
// index (insertion order) or by id/name.
type BusSystem struct {
	stopsByID map[StopID]*Stop
	routeIdx  map[string]int
	stops     []*Stop
	routes    []*Route
}

func NewBusSystem() *BusSystem {
	return &BusSystem{
		stopsByID: make(map[StopID]*Stop),
		routeIdx:  make(map[string]int),
	}
}

// AddStop registers a stop, overwriting any prior stop with the same id.
func (b *BusSystem) AddStop(s *Stop) {
	if old, exists := b.stopsByID[s.ID]; exists {
		for i, cur := range b.stops {
			if cur == old {
				b.stops[i] = s
				break
			}
		}
	} else {
		b.stops = append(b.stops, s)
	}
	b.stopsByID[s.ID] = s
}

// AppendStopToRoute appends stopID to the named route, creating the route
// on first use. Stop order within the route is preserved as appended.
func (b *BusSystem) AppendStopToRoute(routeName string, stopID StopID) {
	if i, exists := b.routeIdx[routeName]; exists {
		b.routes[i].StopIDs = append(b.routes[i].StopIDs, stopID)
		return
	}
	b.routeIdx[routeName] = len(b.routes)
	b.routes = append(b.routes, &Route{Name: routeName, StopIDs: []StopID{stopID}})
}

func (b *BusSystem) StopCount() int  { return len(b.stops) }
func (b *BusSystem) RouteCount() int { return len(b.routes) }

func (b *BusSystem) StopByIndex(i int) *Stop {
	if i < 0 || i >= len(b.stops) {
		return nil
	}
	return b.stops[i]
}

func (b *BusSystem) RouteByIndex(i int) *Route {
	if i < 0 || i >= len(b.routes) {
		return nil
	}
	return b.routes[i]
}

func (b *BusSystem) StopByID(id StopID) *Stop { return b.stopsByID[id] }

func (b *BusSystem) RouteByName(name string) *Route {
	i, ok := b.routeIdx[name]
	if !ok {
		return nil
	}
	return b.routes[i]
}
