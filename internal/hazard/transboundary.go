package hazard

import "math"

// UpstreamBasin describes the cross-border reach of one river system. Most of
// the delta's flood water originates outside the territory, so upstream land
// use and dam operation shift the odds of a riverine flood before the monsoon
// even arrives.
type UpstreamBasin struct {
	UpstreamShare    float64 // fraction of annual flow entering from upstream
	ControlFactor    float64 // dam and barrage control over releases
	WetSeasonStorage float64 // share of the peak upstream reservoirs absorb
	LandPressure     float64 // deforestation and urbanization runoff trend
}

// Upstream characteristics of the major systems. Rivers rising inside the
// territory carry no entry.
var upstreamBasins = map[string]UpstreamBasin{
	"brahmaputra_jamuna": {UpstreamShare: 0.65, ControlFactor: 0.70, WetSeasonStorage: 0.30, LandPressure: 0.50},
	"ganges_padma":       {UpstreamShare: 0.90, ControlFactor: 0.80, WetSeasonStorage: 0.50, LandPressure: 0.40},
	"meghna":             {UpstreamShare: 0.55, ControlFactor: 0.60, WetSeasonStorage: 0.20, LandPressure: 0.40},
	"meghna_estuary":     {UpstreamShare: 0.55, ControlFactor: 0.60, WetSeasonStorage: 0.20, LandPressure: 0.40},
	"surma_kushiyara":    {UpstreamShare: 0.60, ControlFactor: 0.50, WetSeasonStorage: 0.10, LandPressure: 0.60},
	"mahananda":          {UpstreamShare: 0.50, ControlFactor: 0.70, WetSeasonStorage: 0.40, LandPressure: 0.30},
}

// Bounds on the per-basin wet season change and the combined factor.
const (
	wetSeasonModFloor = -0.3
	wetSeasonModCeil  = 0.5
	riskModifierFloor = 0.7
	riskModifierCeil  = 1.5
)

// FloodRiskModifier maps a region's river systems to a multiplicative factor
// on riverine flood occurrence probability. Runoff pressure upstream raises
// the peak; reservoir storage absorbs part of it. Fully domestic rivers
// contribute a neutral term.
func FloodRiskModifier(rivers []string) float64 {
	if len(rivers) == 0 {
		return 1
	}
	var sum float64
	for _, name := range rivers {
		basin, ok := upstreamBasins[name]
		if !ok {
			continue
		}
		mod := basin.UpstreamShare * (basin.LandPressure - basin.WetSeasonStorage*basin.ControlFactor)
		sum += math.Min(wetSeasonModCeil, math.Max(wetSeasonModFloor, mod))
	}
	factor := 1 + sum/float64(len(rivers))
	return math.Min(riskModifierCeil, math.Max(riskModifierFloor, factor))
}
