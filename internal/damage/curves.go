// Vulnerability curves and replacement values. All coefficients live here as
// immutable typed tables so the damage formulas stay auditable and swappable
// per study.
package damage

import (
	"math"

	"github.com/talgya/deltarisk/internal/hazard"
	"github.com/talgya/deltarisk/internal/region"
)

// curveForm selects the functional shape of a damage curve.
type curveForm int

const (
	// formPower: ratio = min(cap, coeff·intensity^exponent), zero below threshold.
	formPower curveForm = iota
	// formExcessQuad: ratio = min(cap, coeff·(intensity−threshold)²), zero below threshold.
	formExcessQuad
)

// curve maps a hazard intensity to a damage ratio in [0, cap].
type curve struct {
	form      curveForm
	cap       float64
	coeff     float64
	exponent  float64
	threshold float64
	collapse  float64 // intensity marking near-total loss
}

func (c curve) ratio(intensity float64) float64 {
	if intensity < c.threshold {
		return 0
	}
	var r float64
	switch c.form {
	case formExcessQuad:
		r = c.coeff * math.Pow(intensity-c.threshold, 2)
	default:
		r = c.coeff * math.Pow(intensity, c.exponent)
	}
	return math.Min(c.cap, math.Max(0, r))
}

// Building damage curves. Flood curves take depth in meters, cyclone curves
// wind speed in km/h, earthquake curves PGA in g.
var buildingCurves = map[hazard.Type][region.NumBuildingTypes]curve{
	hazard.TypeFlood: {
		region.BuildingRCC:       {form: formPower, cap: 0.90, coeff: 0.1, exponent: 1.25, threshold: 0.30, collapse: 3.0},
		region.BuildingSemiPucca: {form: formPower, cap: 0.95, coeff: 0.2, exponent: 1.5, threshold: 0.20, collapse: 2.5},
		region.BuildingKutcha:    {form: formPower, cap: 1.00, coeff: 0.3, exponent: 1.7, threshold: 0.10, collapse: 2.0},
		region.BuildingJhupri:    {form: formPower, cap: 1.00, coeff: 0.5, exponent: 2.0, threshold: 0.05, collapse: 1.5},
	},
	hazard.TypeCyclone: {
		region.BuildingRCC:       {form: formExcessQuad, cap: 0.90, coeff: 0.0001, threshold: 80, collapse: 250},
		region.BuildingSemiPucca: {form: formExcessQuad, cap: 0.95, coeff: 0.0002, threshold: 60, collapse: 200},
		region.BuildingKutcha:    {form: formExcessQuad, cap: 1.00, coeff: 0.0004, threshold: 40, collapse: 150},
		region.BuildingJhupri:    {form: formExcessQuad, cap: 1.00, coeff: 0.0008, threshold: 30, collapse: 120},
	},
	hazard.TypeEarthquake: {
		region.BuildingRCC:       {form: formPower, cap: 0.90, coeff: 1.5, exponent: 1.8, threshold: 0.10, collapse: 0.6},
		region.BuildingSemiPucca: {form: formPower, cap: 0.95, coeff: 2.0, exponent: 1.5, threshold: 0.08, collapse: 0.4},
		region.BuildingKutcha:    {form: formPower, cap: 1.00, coeff: 2.5, exponent: 1.3, threshold: 0.05, collapse: 0.3},
		region.BuildingJhupri:    {form: formPower, cap: 1.00, coeff: 3.0, exponent: 1.2, threshold: 0.03, collapse: 0.2},
	},
}

// Infrastructure damage curves per facility and hazard. Facilities without an
// entry for a hazard are unaffected by it. Cyclone shelters are engineered for
// the design storm and carry no curve.
var facilityCurves = map[region.Facility]map[hazard.Type]curve{
	region.FacilityHospital: {
		hazard.TypeFlood:      {form: formPower, cap: 0.80, coeff: 0.15, exponent: 1.3},
		hazard.TypeCyclone:    {form: formExcessQuad, cap: 0.70, coeff: 0.00007, threshold: 100},
		hazard.TypeEarthquake: {form: formPower, cap: 0.90, coeff: 1.3, exponent: 1.7},
	},
	region.FacilitySchool: {
		hazard.TypeFlood:      {form: formPower, cap: 0.90, coeff: 0.2, exponent: 1.5},
		hazard.TypeCyclone:    {form: formExcessQuad, cap: 0.80, coeff: 0.00009, threshold: 80},
		hazard.TypeEarthquake: {form: formPower, cap: 0.95, coeff: 1.8, exponent: 1.5},
	},
	region.FacilityBridge: {
		hazard.TypeFlood:      {form: formPower, cap: 0.70, coeff: 0.05, exponent: 2.5}, // scour
		hazard.TypeCyclone:    {form: formExcessQuad, cap: 0.40, coeff: 0.00003, threshold: 120},
		hazard.TypeEarthquake: {form: formPower, cap: 0.85, coeff: 1.2, exponent: 1.8},
	},
	region.FacilityEmbankmentKm: {
		hazard.TypeFlood:      {form: formPower, cap: 1.00, coeff: 0.1, exponent: 2.2},
		hazard.TypeCyclone:    {form: formPower, cap: 0.60, coeff: 0.00004, exponent: 1.5}, // wave action
		hazard.TypeEarthquake: {form: formPower, cap: 0.70, coeff: 1.0, exponent: 1.6},     // liquefaction
	},
	region.FacilityPowerPlant: {
		hazard.TypeFlood:      {form: formPower, cap: 0.95, coeff: 0.25, exponent: 1.2},
		hazard.TypeCyclone:    {form: formExcessQuad, cap: 0.90, coeff: 0.0001, threshold: 60},
		hazard.TypeEarthquake: {form: formPower, cap: 0.80, coeff: 1.3, exponent: 1.4},
	},
	region.FacilityTelecomTower: {
		hazard.TypeFlood:      {form: formPower, cap: 0.90, coeff: 0.2, exponent: 1.3},
		hazard.TypeCyclone:    {form: formExcessQuad, cap: 0.95, coeff: 0.00015, threshold: 70},
		hazard.TypeEarthquake: {form: formPower, cap: 0.75, coeff: 1.1, exponent: 1.5},
	},
}

// gammaParams parameterize a Gamma draw for disruption days.
type gammaParams struct{ shape, scale float64 }

// disruptionTiers bucket a damage ratio into low/medium/high outage classes.
type disruptionTiers struct{ low, medium, high gammaParams }

var facilityDisruption = map[region.Facility]disruptionTiers{
	region.FacilityHospital:     {low: gammaParams{2, 2}, medium: gammaParams{5, 6}, high: gammaParams{10, 15}},
	region.FacilitySchool:       {low: gammaParams{3, 5}, medium: gammaParams{7, 7}, high: gammaParams{12, 15}},
	region.FacilityBridge:       {low: gammaParams{1, 2}, medium: gammaParams{4, 5}, high: gammaParams{8, 10}},
	region.FacilityEmbankmentKm: {low: gammaParams{2, 1.5}, medium: gammaParams{5, 3}, high: gammaParams{10, 6}},
	region.FacilityPowerPlant:   {low: gammaParams{1, 1}, medium: gammaParams{3, 2}, high: gammaParams{7, 5}},
	region.FacilityTelecomTower: {low: gammaParams{1, 1}, medium: gammaParams{2, 2}, high: gammaParams{5, 3}},
}

// cropCurve holds the crop damage coefficients. Flood damage is a linear
// combination of depth and duration; cyclone is linear in wind above a
// threshold; drought is linear in severity.
type cropCurve struct {
	floodDepth, floodDuration    float64
	cycloneCoeff, cycloneOffset  float64
	cycloneThreshold             float64
	droughtCoeff                 float64
}

var cropCurves = [region.NumCrops]cropCurve{
	region.CropRice:        {floodDepth: 0.20, floodDuration: 0.05, cycloneCoeff: 0.0030, cycloneOffset: 0.15, cycloneThreshold: 50, droughtCoeff: 0.80},
	region.CropWheat:       {floodDepth: 0.30, floodDuration: 0.07, cycloneCoeff: 0.0025, cycloneOffset: 0.10, cycloneThreshold: 40, droughtCoeff: 0.70},
	region.CropJute:        {floodDepth: 0.15, floodDuration: 0.04, cycloneCoeff: 0.0035, cycloneOffset: 0.12, cycloneThreshold: 45, droughtCoeff: 0.90},
	region.CropVegetables:  {floodDepth: 0.35, floodDuration: 0.08, cycloneCoeff: 0.0040, cycloneOffset: 0.10, cycloneThreshold: 35, droughtCoeff: 0.85},
	region.CropAquaculture: {floodDepth: 0.10, floodDuration: 0.02, cycloneCoeff: 0.0015, cycloneOffset: 0.05, cycloneThreshold: 60, droughtCoeff: 0.95},
}

func (c cropCurve) ratio(ev hazard.Event) float64 {
	var r float64
	switch ev.Type {
	case hazard.TypeFlood:
		r = c.floodDepth*ev.DepthM + c.floodDuration*ev.Duration
	case hazard.TypeCyclone:
		if ev.WindSpeedKmh > c.cycloneThreshold {
			r = c.cycloneCoeff*ev.WindSpeedKmh - c.cycloneOffset
		}
	case hazard.TypeDrought:
		r = c.droughtCoeff * math.Min(1, ev.Intensity)
	default:
		r = math.Min(0.9, 0.2*ev.Intensity)
	}
	return math.Min(1, math.Max(0, r))
}

// Replacement values in BDT.
var buildingValues = [region.NumBuildingTypes]float64{
	region.BuildingRCC:       5_000_000,
	region.BuildingSemiPucca: 1_500_000,
	region.BuildingKutcha:    500_000,
	region.BuildingJhupri:    100_000,
}

var facilityValues = [region.NumFacilities]float64{
	region.FacilityHospital:       100_000_000,
	region.FacilitySchool:         15_000_000,
	region.FacilityBridge:         50_000_000,
	region.FacilityEmbankmentKm:   10_000_000,
	region.FacilityPowerPlant:     5_000_000_000,
	region.FacilityCycloneShelter: 20_000_000,
	region.FacilityTelecomTower:   5_000_000,
}

// Seasonal crop value per hectare in BDT.
var cropValues = [region.NumCrops]float64{
	region.CropRice:        150_000,
	region.CropWheat:       120_000,
	region.CropJute:        200_000,
	region.CropVegetables:  300_000,
	region.CropAquaculture: 500_000,
}
