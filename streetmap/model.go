// Package streetmap is the read-only street-map collaborator: Nodes (with
// location and tags) and Ways (ordered node references and tags) as
// ingested from an OpenStreetMap extract.
package streetmap

import "multimodal-router/geo"

// NodeID is the 64-bit OSM node identifier.
type NodeID uint64

// WayID is the 64-bit OSM way identifier.
type WayID uint64

// Attrs is an insertion-ordered string->string map, matching the way OSM
// tags are declared: enumeration order is declaration order, not sorted.
type Attrs struct {
	keys   []string
	values map[string]string
}

func NewAttrs() *Attrs {
	return &Attrs{values: make(map[string]string)}
}

// Set records k=v, appending k to the enumeration order the first time it
// is seen.
func (a *Attrs) Set(k, v string) {
	if _, exists := a.values[k]; !exists {
		a.keys = append(a.keys, k)
	}
	a.values[k] = v
}

func (a *Attrs) Get(k string) (string, bool) {
	v, ok := a.values[k]
	return v, ok
}

func (a *Attrs) Count() int { return len(a.keys) }

// KeyAt returns the key at the given enumeration index, or "" if out of
// range.
func (a *Attrs) KeyAt(i int) string {
	if i < 0 || i >= len(a.keys) {
		return ""
	}
	return a.keys[i]
}

// Node is a street-map vertex: an id, a location, and its tags.
type Node struct {
	ID       NodeID
	Location geo.Location
	Tags     *Attrs
}

// Way is an ordered polyline of node references plus tags.
type Way struct {
	ID      WayID
	NodeIDs []NodeID
	Tags    *Attrs
}

// IsOneWay reports the way's `oneway` tag.
func (w *Way) IsOneWay() bool {
	v, ok := w.Tags.Get("oneway")
	return ok && v == "yes"
}

// BicycleAllowed reports whether cycling is allowed on the way: false only
// when its `bicycle` tag is "no".
func (w *Way) BicycleAllowed() bool {
	v, ok := w.Tags.Get("bicycle")
	return !(ok && v == "no")
}

// MaxSpeedMPH returns the way's parsed `maxspeed` tag and whether it parsed
// successfully.
func (w *Way) MaxSpeedMPH() (float64, bool) {
	v, ok := w.Tags.Get("maxspeed")
	if !ok {
		return 0, false
	}
	return parseSpeed(v)
}

// StreetMap is the read-only collection of Nodes and Ways, queryable by
// index (insertion order) or by id.
type StreetMap struct {
	nodesByID map[NodeID]*Node
	waysByID  map[WayID]*Way
	nodes     []*Node
	ways      []*Way
}

func NewStreetMap() *StreetMap {
	return &StreetMap{
		nodesByID: make(map[NodeID]*Node),
		waysByID:  make(map[WayID]*Way),
	}
}

// AddNode registers a node, overwriting any prior node with the same id.
func (m *StreetMap) AddNode(n *Node) {
	if old, exists := m.nodesByID[n.ID]; exists {
		for i, cur := range m.nodes {
			if cur == old {
				m.nodes[i] = n
				break
			}
		}
	} else {
		m.nodes = append(m.nodes, n)
	}
	m.nodesByID[n.ID] = n
}

// AddWay registers a way, overwriting any prior way with the same id.
func (m *StreetMap) AddWay(w *Way) {
	if old, exists := m.waysByID[w.ID]; exists {
		for i, cur := range m.ways {
			if cur == old {
				m.ways[i] = w
				break
			}
		}
	} else {
		m.ways = append(m.ways, w)
	}
	m.waysByID[w.ID] = w
}

func (m *StreetMap) NodeCount() int { return len(m.nodes) }
func (m *StreetMap) WayCount() int  { return len(m.ways) }

func (m *StreetMap) NodeByIndex(i int) *Node {
	if i < 0 || i >= len(m.nodes) {
		return nil
	}
	return m.nodes[i]
}

func (m *StreetMap) WayByIndex(i int) *Way {
	if i < 0 || i >= len(m.ways) {
		return nil
	}
	return m.ways[i]
}

func (m *StreetMap) NodeByID(id NodeID) *Node { return m.nodesByID[id] }
func (m *StreetMap) WayByID(id WayID) *Way    { return m.waysByID[id] }
