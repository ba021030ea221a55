// Package geo provides the geographic utilities the planner treats as an
// external collaborator: great-circle distance and coordinate formatting.
package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

const earthRadiusMiles = 3958.7613

// Location is a (latitude, longitude) pair in decimal degrees. It wraps
// orb.Point, which stores coordinates as [lon, lat].
type Location struct {
	pt orb.Point
}

// NewLocation builds a Location from latitude/longitude in decimal degrees.
func NewLocation(lat, lon float64) Location {
	return Location{pt: orb.Point{lon, lat}}
}

func (l Location) Lat() float64 { return l.pt[1] }
func (l Location) Lon() float64 { return l.pt[0] }
func (l Location) Point() orb.Point { return l.pt }

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

// HaversineMiles returns the great-circle distance between two locations in
// miles.
func HaversineMiles(a, b Location) float64 {
	lat1, lat2 := toRadians(a.Lat()), toRadians(b.Lat())
	dLat := toRadians(b.Lat() - a.Lat())
	dLon := toRadians(b.Lon() - a.Lon())

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

// FormatDMS renders a location in degrees-minutes-seconds, e.g.
// "40 26' 46.0\" N, 79 58' 56.0\" W".
func FormatDMS(l Location) string {
	return fmt.Sprintf("%s, %s", formatDMSComponent(l.Lat(), "N", "S"), formatDMSComponent(l.Lon(), "E", "W"))
}

func formatDMSComponent(value float64, positiveSuffix, negativeSuffix string) string {
	suffix := positiveSuffix
	if value < 0 {
		suffix = negativeSuffix
		value = -value
	}
	degrees := math.Floor(value)
	minutesFull := (value - degrees) * 60
	minutes := math.Floor(minutesFull)
	seconds := (minutesFull - minutes) * 60
	return fmt.Sprintf("%d %d' %.1f\" %s", int(degrees), int(minutes), seconds, suffix)
}
