package kml

import (
	"bytes"
	"strings"
	"testing"

	"multimodal-router/geo"
	"multimodal-router/routing"
)

func TestWriteDocumentIncludesStartEndAndModeSegments(t *testing.T) {
	segments := []Segment{
		{Mode: routing.Walk, Points: []geo.Location{geo.NewLocation(0, 0), geo.NewLocation(0, 0.001)}},
		{Mode: routing.Bus, Points: []geo.Location{geo.NewLocation(0, 0.001), geo.NewLocation(0, 0.002)}},
	}

	var buf bytes.Buffer
	if err := WriteDocument(&buf, segments); err != nil {
		t.Fatalf("WriteDocument returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Start", "End", "Walk segment", "Bus segment", "Mode change: Bus"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteDocumentEmptySegmentsStillValid(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDocument(&buf, nil); err != nil {
		t.Fatalf("WriteDocument returned error for empty input: %v", err)
	}
	if !strings.Contains(buf.String(), "<kml") {
		t.Fatalf("expected a kml root element, got:\n%s", buf.String())
	}
}
