// Package kml renders a computed path as a KML document for visualization
// in external map viewers — the planner's external collaborator for path
// output, never consulted by the core itself.
package kml

import (
	"encoding/xml"
	"fmt"
	"io"

	"multimodal-router/geo"
	"multimodal-router/routing"
)

// Segment is one contiguous same-mode run of a path.
type Segment struct {
	Mode   routing.Mode
	Points []geo.Location
}

const (
	pointStyleID = "pathPoint"
	walkStyleID  = "walkLine"
	bikeStyleID  = "bikeLine"
	busStyleID   = "busLine"
)

type kmlRoot struct {
	XMLName xml.Name `xml:"kml"`
	XMLNS   string   `xml:"xmlns,attr"`
	Doc     document `xml:"Document"`
}

type document struct {
	Styles     []style     `xml:"Style"`
	Placemarks []placemark `xml:"Placemark"`
}

type style struct {
	ID        string     `xml:"id,attr"`
	LineStyle *lineStyle `xml:"LineStyle,omitempty"`
	IconStyle *iconStyle `xml:"IconStyle,omitempty"`
}

type lineStyle struct {
	Color string  `xml:"color"`
	Width float64 `xml:"width"`
}

type iconStyle struct {
	Color string `xml:"color"`
}

type placemark struct {
	Name       string      `xml:"name"`
	StyleURL   string      `xml:"styleUrl"`
	Point      *kmlPoint   `xml:"Point,omitempty"`
	LineString *lineString `xml:"LineString,omitempty"`
}

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

type lineString struct {
	Coordinates string `xml:"coordinates"`
}

func styleURLFor(m routing.Mode) string {
	switch m {
	case routing.Bike:
		return "#" + bikeStyleID
	case routing.Bus:
		return "#" + busStyleID
	default:
		return "#" + walkStyleID
	}
}

// WriteDocument renders start/end placemarks, a waypoint placemark at the
// start of every segment after the first (a mode change), and one
// LineString placemark per segment, colored by its mode.
func WriteDocument(w io.Writer, segments []Segment) error {
	doc := document{
		Styles: []style{
			{ID: pointStyleID, IconStyle: &iconStyle{Color: "ffffffff"}},
			{ID: walkStyleID, LineStyle: &lineStyle{Color: "ffff0000", Width: 3}}, // blue (aabbggrr)
			{ID: bikeStyleID, LineStyle: &lineStyle{Color: "ff00a000", Width: 3}}, // green
			{ID: busStyleID, LineStyle: &lineStyle{Color: "ff0000dc", Width: 4}},  // red
		},
	}

	if len(segments) == 0 {
		return encode(w, doc)
	}

	start := segments[0].Points[0]
	end := segments[len(segments)-1].Points[len(segments[len(segments)-1].Points)-1]

	doc.Placemarks = append(doc.Placemarks, placemark{
		Name:     "Start",
		StyleURL: "#" + pointStyleID,
		Point:    &kmlPoint{Coordinates: coordString(start)},
	})
	doc.Placemarks = append(doc.Placemarks, placemark{
		Name:     "End",
		StyleURL: "#" + pointStyleID,
		Point:    &kmlPoint{Coordinates: coordString(end)},
	})

	for i, seg := range segments {
		if i > 0 {
			doc.Placemarks = append(doc.Placemarks, placemark{
				Name:     fmt.Sprintf("Mode change: %s", seg.Mode),
				StyleURL: "#" + pointStyleID,
				Point:    &kmlPoint{Coordinates: coordString(seg.Points[0])},
			})
		}
		doc.Placemarks = append(doc.Placemarks, placemark{
			Name:       fmt.Sprintf("%s segment", seg.Mode),
			StyleURL:   styleURLFor(seg.Mode),
			LineString: &lineString{Coordinates: coordListString(seg.Points)},
		})
	}

	return encode(w, doc)
}

func encode(w io.Writer, doc document) error {
	root := kmlRoot{XMLNS: "http://www.opengis.net/kml/2.2", Doc: doc}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("kml: write header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("kml: encode document: %w", err)
	}
	return nil
}

func coordString(l geo.Location) string {
	return fmt.Sprintf("%f,%f,0", l.Lon(), l.Lat())
}

func coordListString(pts []geo.Location) string {
	s := ""
	for i, p := range pts {
		if i > 0 {
			s += " "
		}
		s += coordString(p)
	}
	return s
}
