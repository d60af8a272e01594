package warning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/deltarisk/internal/entropy"
	"github.com/talgya/deltarisk/internal/hazard"
	"github.com/talgya/deltarisk/internal/region"
)

func cycloneEvent() hazard.Event {
	return hazard.Event{
		Type:         hazard.TypeCyclone,
		WindSpeedKmh: 180,
		StormSurgeM:  3,
		Duration:     24,
	}
}

func TestGeophysicalHazardsUnforecastable(t *testing.T) {
	for _, typ := range []hazard.Type{hazard.TypeEarthquake, hazard.TypeLandslide} {
		out := Simulate(hazard.Event{Type: typ, Magnitude: 7.5},
			DefaultCapability(), region.KindHillTracts, 500, entropy.NewSource(1))
		assert.False(t, out.Possible, "%s must have no warning chain", typ)
		assert.Zero(t, out.LivesSaved)
		assert.False(t, out.Issued)
	}
}

func TestLivesSavedNeverExceedPotential(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		out := Simulate(cycloneEvent(), DefaultCapability(), region.KindCoastal,
			100, entropy.NewSource(seed))
		require.LessOrEqual(t, out.LivesSaved, 100)
		require.GreaterOrEqual(t, out.LivesSaved, 0)
	}
}

func TestOutcomeBoundsAcrossSeeds(t *testing.T) {
	events := []hazard.Event{
		cycloneEvent(),
		{Type: hazard.TypeFlood, DepthM: 3, Duration: 10, FloodKind: hazard.FloodRiverine},
		{Type: hazard.TypeFlood, DepthM: 1.5, Duration: 0.5, FloodKind: hazard.FloodFlash},
		{Type: hazard.TypeDrought, Intensity: 1.2},
	}
	for _, ev := range events {
		for seed := uint64(0); seed < 100; seed++ {
			out := Simulate(ev, DefaultCapability(), region.KindFloodplain,
				1000, entropy.NewSource(seed))
			require.True(t, out.Possible)
			require.GreaterOrEqual(t, out.ForecastAccuracy, 0.1)
			require.LessOrEqual(t, out.ForecastAccuracy, 0.95)
			if out.Issued {
				require.GreaterOrEqual(t, out.Dissemination, 0.05)
				require.LessOrEqual(t, out.Dissemination, 0.95)
				require.GreaterOrEqual(t, out.ResponseRate, 0.05)
				require.LessOrEqual(t, out.ResponseRate, 0.95)
			}
		}
	}
}

func TestMissedMajorEventSavesNothing(t *testing.T) {
	// Force severity above the false-alarm branch; a miss must produce no
	// warning and no lives saved.
	ev := cycloneEvent() // severity 180/250 = 0.72
	var sawMiss bool
	for seed := uint64(0); seed < 500; seed++ {
		out := Simulate(ev, DefaultCapability(), region.KindCoastal, 1000, entropy.NewSource(seed))
		if !out.ForecastCorrect && !out.Issued {
			sawMiss = true
			assert.Zero(t, out.LivesSaved)
			assert.Zero(t, out.ResponseRate)
		}
	}
	assert.True(t, sawMiss, "no missed forecast observed across 500 seeds")
}

func TestFalseAlarmWeakensResponse(t *testing.T) {
	// A low-severity miss becomes a false alarm with depressed compliance.
	ev := hazard.Event{Type: hazard.TypeFlood, DepthM: 0.8, Duration: 1, FloodKind: hazard.FloodRiverine}
	var falseAlarm, issued *Outcome
	for seed := uint64(0); seed < 500 && (falseAlarm == nil || issued == nil); seed++ {
		out := Simulate(ev, DefaultCapability(), region.KindFloodplain, 50, entropy.NewSource(seed))
		switch {
		case out.FalseAlarm && falseAlarm == nil:
			falseAlarm = &out
		case out.Issued && !out.FalseAlarm && issued == nil:
			issued = &out
		}
	}
	require.NotNil(t, falseAlarm, "no false alarm observed across 500 seeds")
	require.NotNil(t, issued, "no correct issuance observed across 500 seeds")
	assert.Less(t, falseAlarm.ResponseRate, issued.ResponseRate)
	assert.Zero(t, falseAlarm.LivesSaved, "severity below the action threshold saves no lives")
}

func TestBetterCapabilityImprovesAccuracy(t *testing.T) {
	weak := DefaultCapability()
	weak.TechnologyLevel, weak.StaffTraining, weak.ObservationNetwork = 0.1, 0.1, 0.1

	strong := DefaultCapability()
	strong.TechnologyLevel, strong.StaffTraining, strong.ObservationNetwork = 1, 1, 1

	ev := cycloneEvent()
	// Same seed draws the same lead time for both capability levels.
	outWeak := Simulate(ev, weak, region.KindCoastal, 100, entropy.NewSource(3))
	outStrong := Simulate(ev, strong, region.KindCoastal, 100, entropy.NewSource(3))
	assert.Greater(t, outStrong.ForecastAccuracy, outWeak.ForecastAccuracy)
}

func TestDisseminationChannelDependencies(t *testing.T) {
	lit := DefaultCapability()
	lit.Channels = []Channel{ChannelSMS}
	lit.LiteracyRate = 1.0

	illit := lit
	illit.LiteracyRate = 0.0

	high := disseminationEffectiveness(lit, region.KindFloodplain, hazard.TypeFlood)
	low := disseminationEffectiveness(illit, region.KindFloodplain, hazard.TypeFlood)
	assert.Greater(t, high, low, "SMS reach depends on literacy")
}

func TestDisseminationRegionalCapacity(t *testing.T) {
	c := DefaultCapability()
	coastal := disseminationEffectiveness(c, region.KindCoastal, hazard.TypeCyclone)
	hills := disseminationEffectiveness(c, region.KindHillTracts, hazard.TypeCyclone)
	assert.Greater(t, coastal, hills, "coastal EWS capacity exceeds hill tracts")
}

func TestSimulateDeterministic(t *testing.T) {
	ev := cycloneEvent()
	a := Simulate(ev, DefaultCapability(), region.KindCoastal, 250, entropy.NewSource(11))
	b := Simulate(ev, DefaultCapability(), region.KindCoastal, 250, entropy.NewSource(11))
	assert.Equal(t, a, b)
}
