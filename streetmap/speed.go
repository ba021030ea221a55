package streetmap

import (
	"strconv"
	"strings"
)

// parseSpeed parses an OSM maxspeed tag value ("35", "35 mph", "56 km/h")
// into miles per hour. km/h values are converted; unrecognized units fail.
func parseSpeed(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	fields := strings.Fields(raw)
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}

	unit := "mph"
	if len(fields) > 1 {
		unit = strings.ToLower(fields[1])
	}

	switch unit {
	case "mph":
		return value, true
	case "km/h", "kph":
		return value * 0.621371, true
	default:
		return 0, false
	}
}
