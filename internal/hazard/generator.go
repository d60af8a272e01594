package hazard

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/deltarisk/internal/climate"
	"github.com/talgya/deltarisk/internal/entropy"
	"github.com/talgya/deltarisk/internal/region"
)

// Config enumerates the hazards a run simulates and their return-period sets.
type Config struct {
	ReturnPeriods map[Type][]int
}

// Generator produces zero or more events per hazard type per year.
type Generator struct {
	cfg Config
}

// NewGenerator validates the hazard configuration. Return periods below 2
// years are rejected up front so the log-law intensity formula stays in
// domain.
func NewGenerator(cfg Config) (*Generator, error) {
	if len(cfg.ReturnPeriods) == 0 {
		return nil, fmt.Errorf("hazard config: no hazard types configured")
	}
	for t, periods := range cfg.ReturnPeriods {
		if len(periods) == 0 {
			return nil, fmt.Errorf("hazard config: %s has no return periods", t)
		}
		for _, rp := range periods {
			if rp < 2 {
				return nil, fmt.Errorf("hazard config: %s return period %d below minimum 2", t, rp)
			}
		}
	}
	return &Generator{cfg: cfg}, nil
}

// Intensity law coefficients: I = a·ln(RP) + b, unit per hazard type.
var intensityCoefficients = map[Type]struct{ a, b float64 }{
	TypeFlood:   {0.8, 1.0}, // flood depth, meters
	TypeCyclone: {15, 120},  // wind speed, km/h
}

// defaultIntensityCoefficients apply to hazards without a dedicated law.
var defaultIntensityCoefficients = struct{ a, b float64 }{0.5, 1.0}

// Seasonal month weights, January first.
var (
	monsoonMonthWeights = []float64{0.01, 0.01, 0.02, 0.05, 0.10, 0.20, 0.25, 0.20, 0.10, 0.04, 0.01, 0.01}
	cycloneMonthWeights = []float64{0.02, 0.03, 0.07, 0.09, 0.14, 0.05, 0.01, 0.01, 0.03, 0.10, 0.12, 0.04}
	uniformMonthWeights = []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
)

// Cyclone track probabilities by direction.
var (
	cycloneTrackNames   = []string{"west", "northwest", "north"}
	cycloneTrackWeights = []float64{0.40, 0.35, 0.25}
)

const surgeAmplificationFactor = 1.2 // coastal bathymetry amplification

// Generate runs the independent Bernoulli trials for every configured hazard
// and return period in one year, sampling event attributes for each hit.
// A hazard type can fire multiple times in a year from different return
// periods. Events are ordered by hazard type, then ascending return period.
func (g *Generator) Generate(profile region.Profile, year int, state climate.ScenarioState, src *entropy.Source) []Event {
	var events []Event
	for t := Type(0); t < NumTypes; t++ {
		periods, ok := g.cfg.ReturnPeriods[t]
		if !ok {
			continue
		}
		eff := ClimateEffects(state, profile.Kind, t)
		hazardSrc := src.Derive(t.String())

		for _, rp := range periods {
			prob := (1.0 / float64(rp)) * (1 + eff.FrequencyChange)
			if t == TypeFlood {
				prob *= FloodRiskModifier(profile.Rivers)
			}
			if prob > 1 {
				prob = 1
			}
			if hazardSrc.Float64() >= prob {
				continue
			}
			ev := g.sample(t, rp, year, eff, profile, hazardSrc)
			slog.Debug("hazard event generated",
				"hazard", t.String(),
				"year", year,
				"month", ev.Month,
				"return_period", rp,
				"intensity", ev.Intensity,
			)
			events = append(events, ev)
		}
	}
	return events
}

// sample fills in month, intensity and derived attributes for one occurrence.
func (g *Generator) sample(t Type, rp, year int, eff Effects, profile region.Profile, src *entropy.Source) Event {
	ev := Event{
		Type:         t,
		Year:         year,
		ReturnPeriod: rp,
		Month:        src.WeightedIndex(monthWeights(t)) + 1,
	}

	coeff, ok := intensityCoefficients[t]
	if !ok {
		coeff = defaultIntensityCoefficients
	}
	// Floor at zero: the log law goes negative for degenerate inputs.
	base := math.Max(0, coeff.a*math.Log(float64(rp))+coeff.b)
	ev.Intensity = base * (1 + eff.IntensityChange)

	switch t {
	case TypeFlood:
		ev.Footprint = Footprint{Kind: FootprintRiverine, AffectedUnits: profile.Rivers}
		ev.DepthM = ev.Intensity
		if ev.Month >= 6 && ev.Month <= 9 {
			ev.FloodKind = FloodRiverine
			ev.Duration = src.Gamma(5, 3) // days
		} else {
			ev.FloodKind = FloodFlash
			ev.Duration = src.Gamma(2, 1)
		}
		ev.Duration *= 1 + eff.DurationChange

	case TypeCyclone:
		ev.Footprint = Footprint{Kind: FootprintCoastal, AffectedUnits: profile.CoastZones}
		ev.WindSpeedKmh = ev.Intensity
		ev.StormSurgeM = 0.05*ev.WindSpeedKmh*surgeAmplificationFactor + eff.SurgeAmplification
		ev.TrackDirection = cycloneTrackNames[src.WeightedIndex(cycloneTrackWeights)]
		// Rainfall law is negative below ~55 km/h winds; floor at zero.
		ev.RainfallMmHr = math.Max(0, 10*math.Log(math.Max(1, ev.WindSpeedKmh))-40)
		ev.Duration = src.Gamma(2, 12) // hours

	case TypeEarthquake:
		ev.Footprint = Footprint{Kind: FootprintGeneric}
		ev.Magnitude = ev.Intensity
		ev.FocalDepthKm = src.Gamma(2, 10)
		if src.Float64() < 0.6 {
			ev.Fault = "dauki"
		} else {
			ev.Fault = "madhupur"
		}

	case TypeLandslide:
		ev.Footprint = Footprint{Kind: FootprintGeneric}
		ev.VolumeM3 = src.LogNormal(math.Log(1000), 1.5)
		ev.SlopeDeg = src.Uniform(25, 60)

	case TypeDrought:
		ev.Footprint = Footprint{Kind: FootprintGeneric}
	}
	return ev
}

func monthWeights(t Type) []float64 {
	switch t {
	case TypeFlood:
		return monsoonMonthWeights
	case TypeCyclone:
		return cycloneMonthWeights
	default:
		return uniformMonthWeights
	}
}

// OccurrenceProbability exposes the annual probability for one return period
// under given effects. Used by callers and tests to audit the Bernoulli trial.
func OccurrenceProbability(returnPeriod int, eff Effects) float64 {
	p := (1.0 / float64(returnPeriod)) * (1 + eff.FrequencyChange)
	return math.Min(1, p)
}
