package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseStock() Stock {
	return Stock{
		Year:          2025,
		Population:    10_000_000,
		UrbanFraction: 0.3,
		BuildingCount: 2_400_000,
		BuildingMix:   [NumBuildingTypes]float64{0.15, 0.25, 0.50, 0.10},
		Facilities:    [NumFacilities]float64{100, 5000, 300, 800, 10, 200, 2000},
		CropAreaHa:    [NumCrops]float64{2_000_000, 100_000, 150_000, 200_000, 50_000},
		SubRegions:    3,
	}
}

func TestEvolveGrowsPopulation(t *testing.T) {
	s := baseStock()
	s.Evolve()
	assert.InDelta(t, 10_100_000, s.Population, 1)
	assert.Equal(t, 2026, s.Year)
}

func TestEvolveKeepsMixNormalized(t *testing.T) {
	s := baseStock()
	for i := 0; i < 25; i++ {
		s.Evolve()
		require.NoError(t, s.Check(), "year %d", s.Year)
	}
	sum := 0.0
	for _, f := range s.BuildingMix {
		sum += f
	}
	assert.InDelta(t, 1.0, sum, 0.01)
	assert.LessOrEqual(t, s.BuildingMix[BuildingRCC], 0.35+1e-9)
	assert.LessOrEqual(t, s.UrbanFraction, 0.65)
}

func TestEvolveShrinksCropland(t *testing.T) {
	s := baseStock()
	before := s.CropAreaHa[CropRice]
	s.Evolve()
	assert.Less(t, s.CropAreaHa[CropRice], before)
}

func TestCheckRejectsCorruptState(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Stock)
	}{
		{"zero population", func(s *Stock) { s.Population = 0 }},
		{"urban fraction above one", func(s *Stock) { s.UrbanFraction = 1.2 }},
		{"mix not normalized", func(s *Stock) { s.BuildingMix[BuildingRCC] = 0.5 }},
		{"negative facility", func(s *Stock) { s.Facilities[FacilityBridge] = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := baseStock()
			tc.mutate(&s)
			assert.Error(t, s.Check())
		})
	}
}

func TestSyntheticProviderDeterministic(t *testing.T) {
	a := NewSyntheticProvider(42)
	b := NewSyntheticProvider(42)

	require.Equal(t, a.Names(), b.Names())
	for _, name := range a.Names() {
		pa, err := a.Profile(name)
		require.NoError(t, err)
		pb, err := b.Profile(name)
		require.NoError(t, err)
		assert.Equal(t, pa, pb, "region %s", name)
	}
}

func TestSyntheticProviderProfiles(t *testing.T) {
	p := NewSyntheticProvider(42)

	require.Len(t, p.Names(), 5)

	coastal, err := p.Profile("coastal_south")
	require.NoError(t, err)
	assert.Equal(t, KindCoastal, coastal.Kind)
	assert.NotEmpty(t, coastal.CoastZones)
	require.NoError(t, coastal.Baseline.Check())

	haor, err := p.Profile("northeast_haor")
	require.NoError(t, err)
	assert.Equal(t, KindHaorBasin, haor.Kind)
	assert.NotEmpty(t, haor.Rivers)

	_, err = p.Profile("atlantis")
	assert.Error(t, err)
}
