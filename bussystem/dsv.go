package bussystem

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"multimodal-router/streetmap"
)

// LoadStopsDSV reads a "stop_id,node_id" delimited file into a BusSystem. A
// row whose columns fail to parse as integers (typically the header row)
// is silently skipped, matching the original C++ loader's behavior of
// catching the std::invalid_argument thrown by std::stoull on such a row.
func LoadStopsDSV(r io.Reader, comma rune) (*BusSystem, error) {
	b := NewBusSystem()
	cr := newDSVReader(r, comma)

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bussystem: read stops row: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		stopID, err := parseStopID(row[0])
		if err != nil {
			continue
		}
		nodeID, err := parseNodeID(row[1])
		if err != nil {
			continue
		}
		b.AddStop(&Stop{ID: stopID, NodeID: nodeID})
	}
	return b, nil
}

// LoadRoutesDSV reads a "route_name,stop_id" delimited file, appending each
// row's stop to the named route in file order, into an existing BusSystem
// (typically one already populated by LoadStopsDSV).
func LoadRoutesDSV(r io.Reader, comma rune, b *BusSystem) error {
	cr := newDSVReader(r, comma)

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("bussystem: read routes row: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		routeName := strings.TrimSpace(row[0])
		stopID, err := parseStopID(row[1])
		if err != nil {
			continue
		}
		b.AppendStopToRoute(routeName, stopID)
	}
	return nil
}

func newDSVReader(r io.Reader, comma rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	return cr
}

func parseStopID(s string) (StopID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	return StopID(v), nil
}

func parseNodeID(s string) (streetmap.NodeID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	return streetmap.NodeID(v), nil
}
