// Package warning simulates the early-warning chain for a hazard occurrence:
// forecast skill, warning issuance, dissemination, population response and the
// lives the chain saves.
package warning

import (
	"math"

	"github.com/talgya/deltarisk/internal/entropy"
	"github.com/talgya/deltarisk/internal/hazard"
	"github.com/talgya/deltarisk/internal/region"
)

// Specificity grades how actionable issued warnings are.
type Specificity string

const (
	SpecificityGeneric  Specificity = "generic"
	SpecificityLocation Specificity = "location_specific"
	SpecificityImpact   Specificity = "impact_based"
)

// Experience is the population's prior warning history.
type Experience string

const (
	ExperienceNone       Experience = "none"
	ExperienceFalseAlarm Experience = "false_alarm"
	ExperienceMinor      Experience = "minor_impact"
	ExperienceMajor      Experience = "major_impact"
)

// Capability configures the warning system under simulation.
type Capability struct {
	TechnologyLevel        float64 // 0..1
	StaffTraining          float64
	ObservationNetwork     float64
	LiteracyRate           float64
	ElectricityReliability float64
	Channels               []Channel
	Specificity            Specificity
	Experience             Experience
}

// DefaultCapability mirrors a mid-capability national system.
func DefaultCapability() Capability {
	return Capability{
		TechnologyLevel:        0.5,
		StaffTraining:          0.5,
		ObservationNetwork:     0.5,
		LiteracyRate:           0.6,
		ElectricityReliability: 0.7,
		Channels:               []Channel{ChannelRadio, ChannelSMS, ChannelVolunteers, ChannelLoudspeakers},
		Specificity:            SpecificityLocation,
		Experience:             ExperienceMinor,
	}
}

// Outcome is the result of the warning chain for one event.
type Outcome struct {
	Possible         bool    // a forecast system exists for this hazard
	LeadTime         float64 // hazard-specific unit (days/hours/months)
	ForecastAccuracy float64
	ForecastCorrect  bool
	Issued           bool
	FalseAlarm       bool
	Dissemination    float64
	ResponseRate     float64 // evacuation/compliance fraction
	LivesSaved       int
}

// Forecast skill tables per hazard: lead time (hazard-specific unit) → skill.
// Geophysical hazards have no forecast chain.
type skillEntry struct {
	lead  float64
	skill float64
}

var forecastSkill = map[hazard.Type][]skillEntry{
	hazard.TypeFlood: { // days
		{1, 0.85}, {3, 0.75}, {5, 0.65}, {7, 0.55}, {10, 0.45},
	},
	hazard.TypeCyclone: { // hours
		{24, 0.75}, {48, 0.65}, {72, 0.55}, {96, 0.45}, {120, 0.35},
	},
	hazard.TypeDrought: { // months
		{0.5, 0.65}, {1, 0.55}, {2, 0.45}, {3, 0.35}, {6, 0.25},
	},
}

// Flash floods use a shorter, lower-skill table (hours).
var flashFloodSkill = []skillEntry{
	{1, 0.60}, {3, 0.55}, {6, 0.50}, {12, 0.40}, {24, 0.30},
}

// Issuance threshold on the forecast-probability draw.
const issuanceThreshold = 0.5

// Fraction of responders who avoid becoming a casualty.
const preventionCoefficient = 0.9

// Evacuation behavior constants. Demographic adjustments are the national
// population-weighted averages of the underlying factor tables.
const (
	baseComplianceRate   = 0.65
	genderAdjustment     = 0.925  // 0.5·1.0 + 0.5·0.85
	ageAdjustment        = 1.005  // 0.3·1.1 + 0.6·1.0 + 0.1·0.75
	incomeAdjustment     = 0.95   // 0.4·0.85 + 0.5·1.0 + 0.1·1.1
	livelihoodAdjustment = 0.8805 // 0.4·0.8 + 0.1·0.85 + 0.3·0.9 + 0.15·1.0 + 0.05·1.1
)

var specificityFactor = map[Specificity]float64{
	SpecificityGeneric:  0.8,
	SpecificityLocation: 1.0,
	SpecificityImpact:   1.2,
}

var experienceFactor = map[Experience]float64{
	ExperienceNone:       0.9,
	ExperienceFalseAlarm: 0.7,
	ExperienceMinor:      1.1,
	ExperienceMajor:      1.3,
}

// Simulate runs the warning chain for one event. potentialFatalities is the
// death toll the damage stage projects without any warning; LivesSaved never
// exceeds it.
func Simulate(ev hazard.Event, capability Capability, kind region.Kind, potentialFatalities int, src *entropy.Source) Outcome {
	table, hasFlash := skillTable(ev)
	if table == nil {
		return Outcome{}
	}

	lead := sampleLeadTime(ev, hasFlash, src)
	accuracy := adjustedAccuracy(nearestSkill(table, lead), capability)

	out := Outcome{
		Possible:         true,
		LeadTime:         lead,
		ForecastAccuracy: accuracy,
	}

	severity := ev.Severity()

	// Forecast-probability draw concentrated around the skill level; the
	// warning desk issues when the draw clears the threshold.
	forecastProb := src.Beta(accuracy*10, (1-accuracy)*10)
	out.ForecastCorrect = forecastProb >= issuanceThreshold

	switch {
	case out.ForecastCorrect:
		out.Issued = true
		out.Dissemination = disseminationEffectiveness(capability, kind, ev.Type)
		out.ResponseRate = responseRate(ev, severity, lead, out.Dissemination, capability, kind)
	case severity <= 0.5:
		// Low-severity miss plays out as a false alarm: a warning goes out
		// but the event underdelivers, so compliance is weak.
		out.Issued = true
		out.FalseAlarm = true
		out.Dissemination = disseminationEffectiveness(capability, kind, ev.Type)
		out.ResponseRate = responseRate(ev, 0.1, lead, out.Dissemination, capability, kind)
	default:
		// Significant hazard missed entirely.
		return out
	}

	if out.Issued && severity > 0.3 {
		saved := float64(potentialFatalities) * out.ResponseRate * preventionCoefficient
		out.LivesSaved = int(math.Min(saved, float64(potentialFatalities)))
	}
	return out
}

// skillTable picks the forecast table for an event, or nil when the hazard is
// unforecastable. The bool reports whether the flash-flood table applies.
func skillTable(ev hazard.Event) ([]skillEntry, bool) {
	if ev.Type == hazard.TypeFlood && ev.FloodKind == hazard.FloodFlash {
		return flashFloodSkill, true
	}
	table, ok := forecastSkill[ev.Type]
	if !ok {
		return nil, false
	}
	return table, false
}

// sampleLeadTime draws an operationally plausible lead time for the hazard.
func sampleLeadTime(ev hazard.Event, flash bool, src *entropy.Source) float64 {
	pick := func(options []float64, weights []float64) float64 {
		return options[src.WeightedIndex(weights)]
	}
	switch {
	case flash:
		return pick([]float64{1, 3, 6}, []float64{0.5, 0.3, 0.2}) // hours
	case ev.Type == hazard.TypeFlood:
		if ev.Duration > 2 {
			return pick([]float64{5, 7, 10}, []float64{0.3, 0.4, 0.3}) // days
		}
		return pick([]float64{1, 3, 5}, []float64{0.3, 0.4, 0.3})
	case ev.Type == hazard.TypeCyclone:
		return pick([]float64{48, 72, 96}, []float64{0.3, 0.4, 0.3}) // hours
	case ev.Type == hazard.TypeDrought:
		return pick([]float64{0.5, 1, 2}, []float64{0.3, 0.4, 0.3}) // months
	default:
		return 1
	}
}

// nearestSkill looks up the entry with lead time closest to the sampled one.
func nearestSkill(table []skillEntry, lead float64) float64 {
	best := table[0]
	for _, e := range table[1:] {
		if math.Abs(e.lead-lead) < math.Abs(best.lead-lead) {
			best = e
		}
	}
	return best.skill
}

// adjustedAccuracy scales the base skill by system capability factors and
// clamps to [0.1, 0.95].
func adjustedAccuracy(skill float64, c Capability) float64 {
	acc := skill * (0.7 + 0.1*c.TechnologyLevel + 0.1*c.StaffTraining + 0.1*c.ObservationNetwork)
	return math.Min(0.95, math.Max(0.1, acc))
}

// responseRate multiplies the base compliance rate through the behavioral and
// demographic factors, clamped to [0.05, 0.95].
func responseRate(ev hazard.Event, severity, lead, dissemination float64, c Capability, kind region.Kind) float64 {
	intensityFactor := 0.7 + 0.6*severity

	leadFactor := leadTimeFactor(ev, lead)

	spec, ok := specificityFactor[c.Specificity]
	if !ok {
		spec = 1.0
	}
	exp, ok := experienceFactor[c.Experience]
	if !ok {
		exp = 1.0
	}

	regionFactor := 1.0
	if kind == region.KindCoastal && ev.Type == hazard.TypeCyclone {
		regionFactor = 1.2
	} else if kind == region.KindFloodplain && ev.Type == hazard.TypeFlood {
		regionFactor = 1.1
	}

	rate := baseComplianceRate * intensityFactor * leadFactor * spec * exp * regionFactor * dissemination
	rate *= genderAdjustment * ageAdjustment * incomeAdjustment * livelihoodAdjustment

	return math.Min(0.95, math.Max(0.05, rate))
}

// leadTimeFactor categorizes the lead time in the hazard's native unit.
// Very long lead times lose effectiveness again because uncertainty grows.
func leadTimeFactor(ev hazard.Event, lead float64) float64 {
	type bounds struct{ veryShort, short, adequate float64 }
	var b bounds
	switch {
	case ev.Type == hazard.TypeCyclone:
		b = bounds{6, 24, 72} // hours
	case ev.Type == hazard.TypeFlood && ev.FloodKind == hazard.FloodFlash:
		b = bounds{3, 6, 12} // hours
	case ev.Type == hazard.TypeFlood:
		b = bounds{1, 3, 7} // days
	case ev.Type == hazard.TypeDrought:
		b = bounds{0.5, 1, 3} // months
	default:
		return 1.1
	}
	switch {
	case lead < b.veryShort:
		return 0.8
	case lead < b.short:
		return 0.9
	case lead < b.adequate:
		return 1.1
	default:
		return 1.0
	}
}
