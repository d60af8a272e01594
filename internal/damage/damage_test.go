package damage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/deltarisk/internal/entropy"
	"github.com/talgya/deltarisk/internal/exposure"
	"github.com/talgya/deltarisk/internal/hazard"
	"github.com/talgya/deltarisk/internal/region"
)

func testSnapshot() exposure.Snapshot {
	return exposure.Snapshot{
		Ratio:          0.3,
		Population:     3_000_000,
		TotalBuildings: 720_000,
		Buildings:      [region.NumBuildingTypes]float64{108_000, 180_000, 360_000, 72_000},
		Facilities:     [region.NumFacilities]float64{24, 1200, 72, 192, 2, 48, 480},
		CropAreaHa:     [region.NumCrops]float64{600_000, 27_000, 40_500, 54_000, 22_500},
	}
}

func TestFloodCurveRCCAtOneMeter(t *testing.T) {
	ev := hazard.Event{Type: hazard.TypeFlood, DepthM: 1.0}
	a := Assess(testSnapshot(), ev, entropy.NewSource(1))
	// 0.1 · 1.0^1.25 = 0.1
	assert.InDelta(t, 0.1, a.Buildings[region.BuildingRCC].Ratio, 1e-12)
}

func TestFloodCurveBelowThresholdIsZero(t *testing.T) {
	ev := hazard.Event{Type: hazard.TypeFlood, DepthM: 0.25}
	a := Assess(testSnapshot(), ev, entropy.NewSource(1))
	assert.Zero(t, a.Buildings[region.BuildingRCC].Ratio, "0.25 m is below the RCC threshold")
	assert.Greater(t, a.Buildings[region.BuildingKutcha].Ratio, 0.0, "kutcha threshold is 0.10 m")
}

func TestFragileConstructionDamagedMore(t *testing.T) {
	ev := hazard.Event{Type: hazard.TypeCyclone, WindSpeedKmh: 150}
	a := Assess(testSnapshot(), ev, entropy.NewSource(1))
	assert.Greater(t,
		a.Buildings[region.BuildingKutcha].Ratio,
		a.Buildings[region.BuildingRCC].Ratio)
	assert.Greater(t,
		a.Buildings[region.BuildingJhupri].Ratio,
		a.Buildings[region.BuildingKutcha].Ratio)
}

func TestRatiosBoundedAndDamagedCapped(t *testing.T) {
	events := []hazard.Event{
		{Type: hazard.TypeFlood, DepthM: 8, Duration: 20},
		{Type: hazard.TypeCyclone, WindSpeedKmh: 280, StormSurgeM: 6},
		{Type: hazard.TypeEarthquake, Magnitude: 8.5},
	}
	snap := testSnapshot()
	for _, ev := range events {
		a := Assess(snap, ev, entropy.NewSource(7))
		for b := region.BuildingType(0); b < region.NumBuildingTypes; b++ {
			require.GreaterOrEqual(t, a.Buildings[b].Ratio, 0.0)
			require.LessOrEqual(t, a.Buildings[b].Ratio, 1.0)
			require.LessOrEqual(t, a.Buildings[b].Damaged, a.Buildings[b].Exposed)
		}
		require.LessOrEqual(t, a.OverallDamageRatio, 1.0)
		for f := region.Facility(0); f < region.NumFacilities; f++ {
			require.LessOrEqual(t, a.Facilities[f].Damaged, a.Facilities[f].Exposed)
		}
	}
}

func TestCasualtiesNeverExceedExposedPopulation(t *testing.T) {
	snap := testSnapshot()
	snap.Population = 1000 // small population forces the cap to bind

	ev := hazard.Event{Type: hazard.TypeFlood, DepthM: 10, Duration: 30}
	a := Assess(snap, ev, entropy.NewSource(1))
	assert.LessOrEqual(t, float64(a.Casualties.Total()), snap.Population)
}

func TestCycloneSheltersSurviveTheStorm(t *testing.T) {
	ev := hazard.Event{Type: hazard.TypeCyclone, WindSpeedKmh: 220, StormSurgeM: 4}
	a := Assess(testSnapshot(), ev, entropy.NewSource(1))
	assert.Zero(t, a.Facilities[region.FacilityCycloneShelter].Damaged,
		"shelters are engineered for the design storm")
}

func TestIndirectLossesBounded(t *testing.T) {
	assert.InDelta(t, 0.5, indirectMultiplier(0), 1e-12)
	assert.InDelta(t, 3.0, indirectMultiplier(1e9), 1e-12)
	assert.InDelta(t, 1.5, indirectMultiplier(1000), 1e-12)
}

func TestLossesPositiveForSevereEvent(t *testing.T) {
	ev := hazard.Event{Type: hazard.TypeCyclone, WindSpeedKmh: 200, StormSurgeM: 3}
	a := Assess(testSnapshot(), ev, entropy.NewSource(1))
	assert.Greater(t, a.DirectLosses, 0.0)
	assert.Greater(t, a.IndirectLosses, 0.0)
}

func TestAssessDeterministic(t *testing.T) {
	ev := hazard.Event{Type: hazard.TypeFlood, DepthM: 2.5, Duration: 12}
	a := Assess(testSnapshot(), ev, entropy.NewSource(9))
	b := Assess(testSnapshot(), ev, entropy.NewSource(9))
	assert.Equal(t, a, b)
}
