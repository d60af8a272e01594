// Package climate projects climate parameters for a named emissions pathway.
// Anchor values follow IPCC AR6 style decade projections for a deltaic
// territory; years between anchors are interpolated linearly from a zero
// baseline at 2025.
package climate

import "log/slog"

// Pathway is a named long-term emissions trajectory.
type Pathway string

const (
	PathwayLow          Pathway = "low"          // RCP2.6-like
	PathwayIntermediate Pathway = "intermediate" // RCP4.5-like
	PathwayHigh         Pathway = "high"         // RCP8.5-like
)

// BaseYear is the zero baseline for all anchors.
const BaseYear = 2025

// Seasons index the PrecipitationChange vector.
const (
	SeasonPreMonsoon = iota
	SeasonMonsoon
	SeasonPostMonsoon
	SeasonWinter
)

// ScenarioState holds interpolated climate parameters for a (pathway, year)
// pair. Immutable once computed.
type ScenarioState struct {
	Pathway              Pathway
	Year                 int
	TemperatureIncrease  float64    // °C above baseline
	PrecipitationChange  [4]float64 // fractional change per season
	SeaLevelRise         float64    // meters
	CycloneIntensity     float64    // fractional increase
	DroughtFrequency     float64    // fractional increase
	ExtremeRainfall      float64    // fractional increase
	Fallback             bool       // true when an unknown pathway was defaulted
}

// anchors holds decade anchor values for one pathway.
type anchors struct {
	temperature   map[int]float64
	precipitation map[int][4]float64
	seaLevel      map[int]float64
	cyclone       map[int]float64
	drought       map[int]float64
	rainfall      map[int]float64
}

var pathwayAnchors = map[Pathway]anchors{
	PathwayLow: {
		temperature:   map[int]float64{2030: 0.6, 2040: 0.8, 2050: 0.9},
		precipitation: map[int][4]float64{2030: {0.03, 0.05, 0.02, -0.01}, 2040: {0.05, 0.07, 0.03, -0.02}, 2050: {0.06, 0.08, 0.04, -0.02}},
		seaLevel:      map[int]float64{2030: 0.10, 2040: 0.18, 2050: 0.24},
		cyclone:       map[int]float64{2030: 0.03, 2040: 0.05, 2050: 0.07},
		drought:       map[int]float64{2030: 0.05, 2040: 0.08, 2050: 0.10},
		rainfall:      map[int]float64{2030: 0.05, 2040: 0.07, 2050: 0.09},
	},
	PathwayIntermediate: {
		temperature:   map[int]float64{2030: 0.8, 2040: 1.1, 2050: 1.4},
		precipitation: map[int][4]float64{2030: {0.05, 0.08, 0.04, -0.02}, 2040: {0.08, 0.12, 0.06, -0.03}, 2050: {0.10, 0.15, 0.08, -0.05}},
		seaLevel:      map[int]float64{2030: 0.12, 2040: 0.22, 2050: 0.32},
		cyclone:       map[int]float64{2030: 0.05, 2040: 0.08, 2050: 0.12},
		drought:       map[int]float64{2030: 0.10, 2040: 0.15, 2050: 0.20},
		rainfall:      map[int]float64{2030: 0.07, 2040: 0.12, 2050: 0.18},
	},
	PathwayHigh: {
		temperature:   map[int]float64{2030: 1.0, 2040: 1.6, 2050: 2.2},
		precipitation: map[int][4]float64{2030: {0.07, 0.11, 0.06, -0.04}, 2040: {0.12, 0.18, 0.09, -0.08}, 2050: {0.18, 0.25, 0.12, -0.12}},
		seaLevel:      map[int]float64{2030: 0.15, 2040: 0.30, 2050: 0.45},
		cyclone:       map[int]float64{2030: 0.08, 2040: 0.15, 2050: 0.25},
		drought:       map[int]float64{2030: 0.15, 2040: 0.25, 2050: 0.35},
		rainfall:      map[int]float64{2030: 0.10, 2040: 0.20, 2050: 0.30},
	},
}

// Interpolate computes the climate state for a pathway and year.
// Deterministic: no randomness. Unknown pathways fall back to intermediate
// and mark the returned state so callers can surface the substitution.
func Interpolate(pathway Pathway, year int) ScenarioState {
	table, ok := pathwayAnchors[pathway]
	fallback := false
	if !ok {
		slog.Warn("unknown climate pathway, defaulting to intermediate", "pathway", string(pathway))
		table = pathwayAnchors[PathwayIntermediate]
		fallback = true
	}

	prev, next, frac := bracket(year)

	state := ScenarioState{
		Pathway:             pathway,
		Year:                year,
		TemperatureIncrease: lerpAnchor(table.temperature, prev, next, frac),
		SeaLevelRise:        lerpAnchor(table.seaLevel, prev, next, frac),
		CycloneIntensity:    lerpAnchor(table.cyclone, prev, next, frac),
		DroughtFrequency:    lerpAnchor(table.drought, prev, next, frac),
		ExtremeRainfall:     lerpAnchor(table.rainfall, prev, next, frac),
		Fallback:            fallback,
	}
	for i := 0; i < 4; i++ {
		var lo float64
		if prev != BaseYear {
			lo = table.precipitation[prev][i]
		}
		state.PrecipitationChange[i] = lo + (table.precipitation[next][i]-lo)*frac
	}
	return state
}

// bracket maps a year onto its surrounding anchors and the elapsed fraction.
// Years before the base year pin to the zero baseline; years past 2050 pin to
// the 2050 anchor.
func bracket(year int) (prev, next int, frac float64) {
	switch {
	case year <= BaseYear:
		return BaseYear, 2030, 0
	case year <= 2030:
		return BaseYear, 2030, float64(year-BaseYear) / float64(2030-BaseYear)
	case year <= 2040:
		return 2030, 2040, float64(year-2030) / 10
	case year <= 2050:
		return 2040, 2050, float64(year-2040) / 10
	default:
		return 2040, 2050, 1
	}
}

func lerpAnchor(anchor map[int]float64, prev, next int, frac float64) float64 {
	var lo float64
	if prev != BaseYear {
		lo = anchor[prev]
	}
	return lo + (anchor[next]-lo)*frac
}
