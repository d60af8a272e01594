// Synthetic region profiles generated from layered simplex noise.
// Stands in for the GIS-backed provider: same Profile shape, fabricated
// population surface.
package region

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// syntheticSpec pins the non-noisy attributes of each canonical region.
type syntheticSpec struct {
	kind        Kind
	population  float64 // baseline residents
	urban       float64
	subRegions  int
	rivers      []string
	coastZones  []string
	cropWeights [NumCrops]float64 // share of national crop area
}

// syntheticOrder fixes iteration order so noise offsets, and therefore the
// generated profiles, are deterministic for a seed.
var syntheticOrder = []string{
	"coastal_south",
	"central_floodplain",
	"northeast_haor",
	"northwest_barind",
	"southeast_hills",
}

var syntheticRegions = map[string]syntheticSpec{
	"coastal_south": {
		kind:       KindCoastal,
		population: 31_000_000,
		urban:      0.28,
		subRegions: 12,
		rivers:     []string{"meghna_estuary"},
		coastZones: []string{"chittagong", "khulna", "barisal"},
		cropWeights: [NumCrops]float64{
			CropRice: 0.18, CropWheat: 0.02, CropJute: 0.05, CropVegetables: 0.12, CropAquaculture: 0.70,
		},
	},
	"central_floodplain": {
		kind:       KindFloodplain,
		population: 58_000_000,
		urban:      0.42,
		subRegions: 18,
		rivers:     []string{"brahmaputra_jamuna", "ganges_padma", "meghna"},
		cropWeights: [NumCrops]float64{
			CropRice: 0.48, CropWheat: 0.55, CropJute: 0.70, CropVegetables: 0.50, CropAquaculture: 0.20,
		},
	},
	"northeast_haor": {
		kind:       KindHaorBasin,
		population: 12_000_000,
		urban:      0.18,
		subRegions: 8,
		rivers:     []string{"surma_kushiyara"},
		cropWeights: [NumCrops]float64{
			CropRice: 0.16, CropWheat: 0.03, CropJute: 0.10, CropVegetables: 0.10, CropAquaculture: 0.08,
		},
	},
	"northwest_barind": {
		kind:       KindBarind,
		population: 17_000_000,
		urban:      0.22,
		subRegions: 9,
		rivers:     []string{"mahananda"},
		cropWeights: [NumCrops]float64{
			CropRice: 0.14, CropWheat: 0.38, CropJute: 0.12, CropVegetables: 0.20, CropAquaculture: 0.02,
		},
	},
	"southeast_hills": {
		kind:       KindHillTracts,
		population: 4_500_000,
		urban:      0.15,
		subRegions: 5,
		rivers:     []string{"karnaphuli"},
		cropWeights: [NumCrops]float64{
			CropRice: 0.04, CropWheat: 0.02, CropJute: 0.03, CropVegetables: 0.08, CropAquaculture: 0.00,
		},
	},
}

// National baselines apportioned across regions by weight.
var nationalCropAreaHa = [NumCrops]float64{
	CropRice:        11_000_000,
	CropWheat:       350_000,
	CropJute:        700_000,
	CropVegetables:  900_000,
	CropAquaculture: 830_000,
}

var nationalFacilities = [NumFacilities]float64{
	FacilityHospital:       620,
	FacilitySchool:         85_300,
	FacilityBridge:         4_700,
	FacilityEmbankmentKm:   12_000,
	FacilityPowerPlant:     143,
	FacilityCycloneShelter: 2_500,
	FacilityTelecomTower:   35_000,
}

var baselineBuildingMix = [NumBuildingTypes]float64{
	BuildingRCC:       0.15,
	BuildingSemiPucca: 0.25,
	BuildingKutcha:    0.50,
	BuildingJhupri:    0.10,
}

const baselineYear = 2025

// householdSize converts population to dwelling counts.
const householdSize = 4.2

// SyntheticProvider fabricates region profiles. Profiles are deterministic for
// a given seed: a noise surface perturbs population and facility allocations so
// regions are not simple proportional slices of the national totals.
type SyntheticProvider struct {
	profiles map[string]Profile
	names    []string
}

// NewSyntheticProvider builds profiles for all canonical regions.
func NewSyntheticProvider(seed int64) *SyntheticProvider {
	noise := opensimplex.NewNormalized(seed)

	// Population share of each region, perturbed by sampling the noise field
	// at a per-region offset and renormalized afterwards.
	totalPop := 0.0
	for _, spec := range syntheticRegions {
		totalPop += spec.population
	}

	p := &SyntheticProvider{profiles: make(map[string]Profile, len(syntheticRegions))}
	for i, name := range syntheticOrder {
		spec := syntheticRegions[name]
		// Sample a smooth perturbation in [0.9, 1.1].
		jitter := 0.9 + 0.2*noise.Eval2(float64(i)*1.7, 0.5)
		pop := spec.population * jitter
		popShare := pop / totalPop

		stock := Stock{
			Year:          baselineYear,
			Population:    pop,
			UrbanFraction: spec.urban,
			BuildingCount: pop / householdSize,
			BuildingMix:   baselineBuildingMix,
			SubRegions:    spec.subRegions,
		}
		for f := Facility(0); f < NumFacilities; f++ {
			facJitter := 0.85 + 0.3*noise.Eval2(float64(i)*1.7, 1.5+float64(f))
			stock.Facilities[f] = math.Round(nationalFacilities[f] * popShare * facJitter)
		}
		for c := Crop(0); c < NumCrops; c++ {
			stock.CropAreaHa[c] = nationalCropAreaHa[c] * spec.cropWeights[c]
		}

		p.profiles[name] = Profile{
			Name:       name,
			Kind:       spec.kind,
			Rivers:     spec.rivers,
			CoastZones: spec.coastZones,
			Baseline:   stock,
		}
		p.names = append(p.names, name)
	}
	return p
}

// Profile returns the profile for a region name.
func (p *SyntheticProvider) Profile(name string) (Profile, error) {
	prof, ok := p.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown region %q", name)
	}
	return prof, nil
}

// Names lists all region names in arbitrary but stable-per-provider order.
func (p *SyntheticProvider) Names() []string {
	return p.names
}
