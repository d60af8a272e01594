// Package region models the territory under simulation: demographic, building,
// infrastructure and agricultural stock, plus its spatial classification.
// Stock is the only entity with cross-year persistence; the orchestrator owns
// one exclusive copy per (scenario, region) run.
package region

import (
	"fmt"
	"math"
)

// Kind classifies a region's dominant physiography, which drives hazard
// sensitivity, exposure and response capacity lookups.
type Kind string

const (
	KindCoastal    Kind = "coastal"
	KindFloodplain Kind = "floodplain"
	KindHaorBasin  Kind = "haor_basin"
	KindBarind     Kind = "barind_tract"
	KindHillTracts Kind = "hill_tracts"
	KindUrban      Kind = "urban"
)

// BuildingType is a closed set of construction typologies.
type BuildingType int

const (
	BuildingRCC BuildingType = iota // reinforced concrete
	BuildingSemiPucca
	BuildingKutcha // traditional mud/timber
	BuildingJhupri // temporary shelters
	NumBuildingTypes
)

func (b BuildingType) String() string {
	switch b {
	case BuildingRCC:
		return "rcc"
	case BuildingSemiPucca:
		return "semi_pucca"
	case BuildingKutcha:
		return "kutcha"
	case BuildingJhupri:
		return "jhupri"
	default:
		return "unknown"
	}
}

// Facility is a closed set of critical infrastructure categories.
type Facility int

const (
	FacilityHospital Facility = iota
	FacilitySchool
	FacilityBridge
	FacilityEmbankmentKm
	FacilityPowerPlant
	FacilityCycloneShelter
	FacilityTelecomTower
	NumFacilities
)

func (f Facility) String() string {
	switch f {
	case FacilityHospital:
		return "hospitals"
	case FacilitySchool:
		return "schools"
	case FacilityBridge:
		return "bridges"
	case FacilityEmbankmentKm:
		return "embankments_km"
	case FacilityPowerPlant:
		return "power_plants"
	case FacilityCycloneShelter:
		return "cyclone_shelters"
	case FacilityTelecomTower:
		return "telecom_towers"
	default:
		return "unknown"
	}
}

// Crop is a closed set of agricultural categories.
type Crop int

const (
	CropRice Crop = iota
	CropWheat
	CropJute
	CropVegetables
	CropAquaculture
	NumCrops
)

func (c Crop) String() string {
	switch c {
	case CropRice:
		return "rice"
	case CropWheat:
		return "wheat"
	case CropJute:
		return "jute"
	case CropVegetables:
		return "vegetables"
	case CropAquaculture:
		return "aquaculture"
	default:
		return "unknown"
	}
}

// Stock is the evolving per-year snapshot of everything a hazard can touch.
// Read-only to all pipeline stages within a year.
type Stock struct {
	Year          int
	Population    float64
	UrbanFraction float64
	BuildingCount float64
	BuildingMix   [NumBuildingTypes]float64 // fractions summing to 1
	Facilities    [NumFacilities]float64
	CropAreaHa    [NumCrops]float64
	SubRegions    int // named sub-units used to normalize spatial footprints
}

// Annual evolution rates. Deterministic; applied once per simulated year.
const (
	populationGrowthRate = 0.01
	urbanShiftPerYear    = 0.005
	urbanFractionCap     = 0.65
	rccShiftPerYear      = 0.003
	rccFractionCap       = 0.35
	riceShrinkRate       = 0.002
	otherCropShrinkRate  = 0.001
)

// Evolve advances the stock by one year: population growth, urbanization,
// building-mix shift toward engineered construction, agricultural shrinkage
// and infrastructure growth.
func (s *Stock) Evolve() {
	s.Year++
	s.Population *= 1 + populationGrowthRate
	s.BuildingCount *= 1 + populationGrowthRate

	s.UrbanFraction = math.Min(s.UrbanFraction+urbanShiftPerYear, urbanFractionCap)

	// Kutcha and semi-pucca households upgrade to RCC over time.
	if s.BuildingMix[BuildingRCC] < rccFractionCap {
		shift := math.Min(rccShiftPerYear, rccFractionCap-s.BuildingMix[BuildingRCC])
		s.BuildingMix[BuildingRCC] += shift
		s.BuildingMix[BuildingKutcha] -= shift / 2
		s.BuildingMix[BuildingSemiPucca] -= shift / 2
	}

	for c := Crop(0); c < NumCrops; c++ {
		rate := otherCropShrinkRate
		if c == CropRice {
			rate = riceShrinkRate
		}
		s.CropAreaHa[c] *= 1 - rate
	}

	s.Facilities[FacilityCycloneShelter] += 50
	s.Facilities[FacilityHospital] += 10
	s.Facilities[FacilityTelecomTower] += 1000
}

// Check validates the stock against plausibility bounds. A failure here means
// the compounding evolution formulas have corrupted state and the run must
// abort rather than carry the corruption forward.
func (s *Stock) Check() error {
	if s.Population <= 0 || math.IsNaN(s.Population) {
		return fmt.Errorf("region stock: population %f out of bounds", s.Population)
	}
	if s.UrbanFraction < 0 || s.UrbanFraction > 1 {
		return fmt.Errorf("region stock: urban fraction %f out of bounds", s.UrbanFraction)
	}
	sum := 0.0
	for _, f := range s.BuildingMix {
		if f < 0 {
			return fmt.Errorf("region stock: negative building fraction %f", f)
		}
		sum += f
	}
	if math.Abs(sum-1) > 0.01 {
		return fmt.Errorf("region stock: building mix sums to %f, want 1±0.01", sum)
	}
	for f, count := range s.Facilities {
		if count < 0 {
			return fmt.Errorf("region stock: negative count for %s", Facility(f))
		}
	}
	return nil
}

// Profile describes a region to the pipeline: its stock baseline, spatial
// classification, and the named sub-units hazard footprints intersect. A real
// deployment would back this with GIS data; the synthetic provider fabricates
// a statistically plausible equivalent.
type Profile struct {
	Name       string
	Kind       Kind
	Rivers     []string // major river systems crossing the region
	CoastZones []string // named coastal districts
	Baseline   Stock
}

// Provider resolves region profiles by name.
type Provider interface {
	Profile(name string) (Profile, error)
	Names() []string
}
