package streetmap

import (
	"strings"
	"testing"
)

const sampleOSMXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="40.4406" lon="-79.9959"/>
  <node id="2" lat="40.4410" lon="-79.9950"/>
  <way id="100">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="highway" v="residential"/>
    <tag k="oneway" v="yes"/>
  </way>
</osm>`

func TestLoadOSMXML(t *testing.T) {
	m, err := LoadOSMXML(strings.NewReader(sampleOSMXML))
	if err != nil {
		t.Fatalf("LoadOSMXML returned error: %v", err)
	}

	if got, want := m.NodeCount(), 2; got != want {
		t.Fatalf("NodeCount() = %d, want %d", got, want)
	}
	if got, want := m.WayCount(), 1; got != want {
		t.Fatalf("WayCount() = %d, want %d", got, want)
	}

	n := m.NodeByID(1)
	if n == nil {
		t.Fatalf("NodeByID(1) returned nil")
	}
	if diff := n.Location.Lat() - 40.4406; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("node 1 lat = %v, want 40.4406", n.Location.Lat())
	}

	w := m.WayByID(100)
	if w == nil {
		t.Fatalf("WayByID(100) returned nil")
	}
	if len(w.NodeIDs) != 2 || w.NodeIDs[0] != 1 || w.NodeIDs[1] != 2 {
		t.Fatalf("way 100 node ids = %v, want [1 2]", w.NodeIDs)
	}
	if !w.IsOneWay() {
		t.Fatalf("expected way 100 to be oneway")
	}
}
