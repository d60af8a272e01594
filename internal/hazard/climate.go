// Climate-impact mapping: converts an interpolated climate state into the
// frequency/intensity modulation a specific hazard sees in a specific region.
package hazard

import (
	"math"

	"github.com/talgya/deltarisk/internal/climate"
	"github.com/talgya/deltarisk/internal/region"
)

// Effects modulate hazard generation for one (climate state, region, hazard)
// combination. All values are fractional changes relative to baseline.
type Effects struct {
	IntensityChange    float64
	FrequencyChange    float64
	DurationChange     float64
	SurgeAmplification float64 // extra storm-surge height in meters
}

// sensitivity expresses how strongly a region kind feels each climate-driven
// hazard mechanism.
type sensitivity struct {
	seaLevel float64
	cyclone  float64
	flood    float64
	drought  float64
}

var regionSensitivity = map[region.Kind]sensitivity{
	region.KindCoastal:    {seaLevel: 1.0, cyclone: 1.0, flood: 0.7, drought: 0.5},
	region.KindFloodplain: {seaLevel: 0.3, cyclone: 0.6, flood: 1.0, drought: 0.7},
	region.KindHaorBasin:  {seaLevel: 0.1, cyclone: 0.4, flood: 0.9, drought: 0.5},
	region.KindBarind:     {seaLevel: 0.0, cyclone: 0.2, flood: 0.3, drought: 1.0},
	region.KindHillTracts: {seaLevel: 0.0, cyclone: 0.3, flood: 0.4, drought: 0.7},
	region.KindUrban:      {seaLevel: 0.5, cyclone: 0.7, flood: 0.8, drought: 0.6},
}

// ClimateEffects maps a climate state onto the modulation for one hazard type
// in one region. Unknown region kinds use floodplain sensitivities.
func ClimateEffects(state climate.ScenarioState, kind region.Kind, t Type) Effects {
	sens, ok := regionSensitivity[kind]
	if !ok {
		sens = regionSensitivity[region.KindFloodplain]
	}

	var eff Effects
	switch t {
	case TypeFlood:
		monsoon := state.PrecipitationChange[climate.SeasonMonsoon]
		eff.IntensityChange = monsoon * sens.flood
		if kind == region.KindCoastal {
			eff.IntensityChange += state.SeaLevelRise * 0.5
		}
		eff.FrequencyChange = state.ExtremeRainfall * sens.flood
		eff.DurationChange = monsoon * 0.3

	case TypeCyclone:
		eff.IntensityChange = state.CycloneIntensity * sens.cyclone
		// Warmer seas favor fewer but stronger storms; frequency rises at
		// half the intensity rate.
		eff.FrequencyChange = state.CycloneIntensity * 0.5 * sens.cyclone
		if kind == region.KindCoastal {
			eff.SurgeAmplification = state.SeaLevelRise * 1.5
		}

	case TypeDrought:
		eff.IntensityChange = state.TemperatureIncrease * 0.2 * sens.drought
		winter := state.PrecipitationChange[climate.SeasonWinter]
		if winter < 0 {
			eff.IntensityChange += math.Abs(winter) * sens.drought
		}
		eff.FrequencyChange = state.DroughtFrequency * sens.drought

	case TypeLandslide:
		// Rainfall-triggered slope failures only matter in hill terrain.
		if kind == region.KindHillTracts {
			eff.IntensityChange = state.ExtremeRainfall * 0.8
			eff.FrequencyChange = state.ExtremeRainfall * 1.2
		}

	case TypeEarthquake:
		// Geophysical; independent of the climate trajectory.
	}
	return eff
}
