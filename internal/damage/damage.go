// Package damage applies vulnerability curves to exposed stock, producing
// damaged counts, casualties, functional disruption and economic loss for one
// hazard event.
package damage

import (
	"log/slog"
	"math"

	"github.com/talgya/deltarisk/internal/entropy"
	"github.com/talgya/deltarisk/internal/exposure"
	"github.com/talgya/deltarisk/internal/hazard"
	"github.com/talgya/deltarisk/internal/region"
)

// BuildingDamage holds per-type building outcomes.
type BuildingDamage struct {
	Exposed float64
	Ratio   float64
	Damaged float64
}

// Casualties are whole persons, never negative, bounded by exposed population.
type Casualties struct {
	Deaths    int
	Injuries  int
	Displaced int
}

// Total returns deaths+injuries+displaced.
func (c Casualties) Total() int {
	return c.Deaths + c.Injuries + c.Displaced
}

// FacilityDamage holds per-category infrastructure outcomes.
type FacilityDamage struct {
	Exposed         float64
	Ratio           float64
	Damaged         float64
	DisruptionDays  float64
	ServiceDaysLost float64
}

// CropDamage holds per-crop outcomes.
type CropDamage struct {
	ExposedHa float64
	Ratio     float64
	DamagedHa float64
}

// Assessment is the full damage picture for one event.
type Assessment struct {
	Hazard            hazard.Type
	ExposedPopulation float64

	Buildings          [region.NumBuildingTypes]BuildingDamage
	TotalDamaged       float64
	OverallDamageRatio float64

	Casualties Casualties

	Facilities [region.NumFacilities]FacilityDamage
	Crops      [region.NumCrops]CropDamage

	DirectLosses   float64
	IndirectLosses float64
}

// Disruption tier boundaries on the damage ratio.
const (
	tierLowBelow    = 0.2
	tierMediumBelow = 0.5
)

// Indirect-loss multiplier bounds.
const (
	indirectMultMin = 0.2
	indirectMultMax = 3.0
)

// Assess computes the damage assessment for one exposed snapshot and event.
// All ratios are in [0,1]; damaged counts never exceed exposed counts; total
// casualties never exceed the exposed population.
func Assess(snap exposure.Snapshot, ev hazard.Event, src *entropy.Source) Assessment {
	a := Assessment{Hazard: ev.Type, ExposedPopulation: snap.Population}

	intensity := buildingIntensity(ev)

	// Buildings.
	if curves, ok := buildingCurves[ev.Type]; ok {
		for b := region.BuildingType(0); b < region.NumBuildingTypes; b++ {
			ratio := curves[b].ratio(intensity)
			a.Buildings[b] = BuildingDamage{
				Exposed: snap.Buildings[b],
				Ratio:   ratio,
				Damaged: snap.Buildings[b] * ratio,
			}
			a.TotalDamaged += a.Buildings[b].Damaged
		}
	}
	if snap.TotalBuildings > 0 {
		a.OverallDamageRatio = a.TotalDamaged / snap.TotalBuildings
	}
	if a.OverallDamageRatio > 1 {
		slog.Warn("overall damage ratio exceeds 1, clamping", "ratio", a.OverallDamageRatio)
		a.OverallDamageRatio = 1
	}

	a.Casualties = casualties(ev, intensity, a.OverallDamageRatio, snap.Population)

	// Infrastructure and functional disruption.
	for f := region.Facility(0); f < region.NumFacilities; f++ {
		hazardCurves, ok := facilityCurves[f]
		if !ok {
			continue
		}
		c, ok := hazardCurves[ev.Type]
		if !ok {
			continue
		}
		ratio := c.ratio(intensity)
		fd := FacilityDamage{
			Exposed: snap.Facilities[f],
			Ratio:   ratio,
			Damaged: snap.Facilities[f] * ratio,
		}
		if tiers, ok := facilityDisruption[f]; ok && ratio > 0 {
			p := tiers.high
			switch {
			case ratio < tierLowBelow:
				p = tiers.low
			case ratio < tierMediumBelow:
				p = tiers.medium
			}
			fd.DisruptionDays = math.Max(0, src.Gamma(p.shape, p.scale))
			fd.ServiceDaysLost = fd.Damaged * fd.DisruptionDays
		}
		a.Facilities[f] = fd
	}

	// Agriculture.
	for c := region.Crop(0); c < region.NumCrops; c++ {
		ratio := cropCurves[c].ratio(ev)
		a.Crops[c] = CropDamage{
			ExposedHa: snap.CropAreaHa[c],
			Ratio:     ratio,
			DamagedHa: snap.CropAreaHa[c] * ratio,
		}
	}

	a.DirectLosses = a.buildingLosses() + a.facilityLosses() + a.cropLosses()
	a.IndirectLosses = a.DirectLosses * indirectMultiplier(a.serviceDaysLost())
	return a
}

// buildingIntensity extracts the intensity measure building curves expect.
func buildingIntensity(ev hazard.Event) float64 {
	switch ev.Type {
	case hazard.TypeFlood:
		return ev.DepthM
	case hazard.TypeCyclone:
		return ev.WindSpeedKmh
	case hazard.TypeEarthquake:
		// First-order PGA approximation from magnitude.
		return ev.Magnitude / 10
	default:
		return ev.Intensity
	}
}

// casualties derives deaths, injuries and displacement from hazard-specific
// rate curves, then caps the sum at the exposed population, scaling each class
// proportionally when the cap binds.
func casualties(ev hazard.Event, intensity, overallDamageRatio, exposedPop float64) Casualties {
	var fatality, injury, displacement float64
	switch ev.Type {
	case hazard.TypeFlood:
		fatality = 0.0001 + 0.001*math.Pow(intensity, 2)
		injury = 0.001 + 0.005*math.Pow(intensity, 1.5)
		displacement = 0.01 + 0.1*intensity
	case hazard.TypeCyclone:
		fatality = 0.0001*math.Pow(intensity/100, 2) + 0.001*math.Pow(ev.StormSurgeM, 2)
		injury = 0.001 * math.Pow(intensity/80, 1.8)
		displacement = 0.005 * math.Pow(intensity/60, 1.5)
	case hazard.TypeEarthquake:
		fatality = 0.001 * math.Pow(intensity, 2.5) * overallDamageRatio
		injury = 0.01 * math.Pow(intensity, 2) * overallDamageRatio
		displacement = 0.05 * math.Pow(intensity, 1.5) * overallDamageRatio
	default:
		fatality = 0.0001 * intensity * overallDamageRatio
		injury = 0.001 * intensity * overallDamageRatio
		displacement = 0.01 * intensity * overallDamageRatio
	}

	deaths := exposedPop * math.Max(0, fatality)
	injuries := exposedPop * math.Max(0, injury)
	displaced := exposedPop * math.Max(0, displacement)

	if total := deaths + injuries + displaced; total > exposedPop && total > 0 {
		scale := exposedPop / total
		deaths *= scale
		injuries *= scale
		displaced *= scale
	}
	return Casualties{
		Deaths:    int(deaths),
		Injuries:  int(injuries),
		Displaced: int(displaced),
	}
}

func (a *Assessment) buildingLosses() float64 {
	total := 0.0
	for b := region.BuildingType(0); b < region.NumBuildingTypes; b++ {
		total += a.Buildings[b].Damaged * buildingValues[b] * a.Buildings[b].Ratio
	}
	return total
}

func (a *Assessment) facilityLosses() float64 {
	total := 0.0
	for f := region.Facility(0); f < region.NumFacilities; f++ {
		total += a.Facilities[f].Damaged * facilityValues[f] * a.Facilities[f].Ratio
	}
	return total
}

func (a *Assessment) cropLosses() float64 {
	total := 0.0
	for c := region.Crop(0); c < region.NumCrops; c++ {
		total += a.Crops[c].DamagedHa * cropValues[c] * a.Crops[c].Ratio
	}
	return total
}

func (a *Assessment) serviceDaysLost() float64 {
	total := 0.0
	for f := region.Facility(0); f < region.NumFacilities; f++ {
		total += a.Facilities[f].ServiceDaysLost
	}
	return total
}

// indirectMultiplier scales direct losses into indirect losses from the
// aggregate service disruption, bounded to [0.2, 3.0].
func indirectMultiplier(serviceDaysLost float64) float64 {
	m := 0.5 + 0.1*(serviceDaysLost/100)
	return math.Min(indirectMultMax, math.Max(indirectMultMin, m))
}
