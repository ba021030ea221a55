package routing

import (
	"multimodal-router/bussystem"
	"multimodal-router/streetmap"
)

// Default configuration values, per the planner's recognized options.
const (
	DefaultWalkSpeedMPH        = 3.0
	DefaultBikeSpeedMPH        = 8.0
	DefaultSpeedLimitMPH       = 25.0
	DefaultBusStopTimeHours    = 30.0 / 3600.0
	DefaultPrecomputeBudgetSec = 30
)

// Configuration is immutable after construction: the Graph Builder and
// Planner read it once and never observe a change.
type Configuration struct {
	WalkSpeedMPH         float64
	BikeSpeedMPH         float64
	DefaultSpeedLimitMPH float64
	BusStopTimeHours     float64
	PrecomputeBudgetSec  int

	StreetMap *streetmap.StreetMap
	BusSystem *bussystem.BusSystem
}

// NewConfiguration returns a Configuration with every numeric option set
// to its documented default and the given map data attached.
func NewConfiguration(sm *streetmap.StreetMap, bs *bussystem.BusSystem) Configuration {
	return Configuration{
		WalkSpeedMPH:         DefaultWalkSpeedMPH,
		BikeSpeedMPH:         DefaultBikeSpeedMPH,
		DefaultSpeedLimitMPH: DefaultSpeedLimitMPH,
		BusStopTimeHours:     DefaultBusStopTimeHours,
		PrecomputeBudgetSec:  DefaultPrecomputeBudgetSec,
		StreetMap:            sm,
		BusSystem:            bs,
	}
}
