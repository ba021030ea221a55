package streetmap

import (
	"context"
	"fmt"
	"io"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"

	"multimodal-router/geo"
)

// LoadOSMXML streams an OpenStreetMap XML extract, one node/way entity at a
// time, into a StreetMap. Relations are ignored: the planner's graphs are
// built entirely from node locations and way node-sequences.
func LoadOSMXML(r io.Reader) (*StreetMap, error) {
	ctx := context.Background()
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	m := NewStreetMap()
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			m.AddNode(convertNode(o))
		case *osm.Way:
			m.AddWay(convertWay(o))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("streetmap: scan osm xml: %w", err)
	}
	return m, nil
}

func convertNode(o *osm.Node) *Node {
	tags := NewAttrs()
	for _, t := range o.Tags {
		tags.Set(t.Key, t.Value)
	}
	return &Node{
		ID:       NodeID(o.ID),
		Location: geo.NewLocation(o.Lat, o.Lon),
		Tags:     tags,
	}
}

func convertWay(o *osm.Way) *Way {
	tags := NewAttrs()
	for _, t := range o.Tags {
		tags.Set(t.Key, t.Value)
	}
	ids := make([]NodeID, len(o.Nodes))
	for i, n := range o.Nodes {
		ids[i] = NodeID(n.ID)
	}
	return &Way{
		ID:      WayID(o.ID),
		NodeIDs: ids,
		Tags:    tags,
	}
}
