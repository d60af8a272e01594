package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/deltarisk/internal/damage"
	"github.com/talgya/deltarisk/internal/governance"
	"github.com/talgya/deltarisk/internal/region"
)

func testAssessment() damage.Assessment {
	a := damage.Assessment{
		ExposedPopulation: 2_000_000,
		Casualties:        damage.Casualties{Deaths: 800, Injuries: 12_000, Displaced: 400_000},
		DirectLosses:      8e10,
		IndirectLosses:    4e10,
	}
	a.Buildings[region.BuildingRCC] = damage.BuildingDamage{Exposed: 90_000, Ratio: 0.2, Damaged: 18_000}
	a.Buildings[region.BuildingSemiPucca] = damage.BuildingDamage{Exposed: 150_000, Ratio: 0.4, Damaged: 60_000}
	a.Buildings[region.BuildingKutcha] = damage.BuildingDamage{Exposed: 300_000, Ratio: 0.7, Damaged: 210_000}
	a.Buildings[region.BuildingJhupri] = damage.BuildingDamage{Exposed: 60_000, Ratio: 0.9, Damaged: 54_000}
	a.Facilities[region.FacilityHospital] = damage.FacilityDamage{Exposed: 20, Ratio: 0.3, Damaged: 6}
	a.Facilities[region.FacilityBridge] = damage.FacilityDamage{Exposed: 60, Ratio: 0.2, Damaged: 12}
	a.Facilities[region.FacilityEmbankmentKm] = damage.FacilityDamage{Exposed: 160, Ratio: 0.5, Damaged: 80}
	return a
}

func defaultBBB() BBBPolicy {
	return BBBPolicy{Commitment: 0.5, Allocation: 0.3, Capacity: 0.5}
}

func project(fundingRatio float64) Projection {
	a := testAssessment()
	funding := fundingRatio * FundingNeed(a)
	return Project(a, region.KindCoastal, 7, funding, governance.DefaultQuality(), defaultBBB())
}

func TestFundingNeed(t *testing.T) {
	a := testAssessment()
	assert.InDelta(t, 1.5*8e10+0.5*4e10, FundingNeed(a), 1)
}

func TestFundingMultiplierMonotone(t *testing.T) {
	levels := []float64{0.1, 0.3, 0.6, 0.9, 1.2}
	prev := 0.0
	for _, l := range levels {
		m := fundingMultiplier(l)
		require.Greater(t, m, prev, "level %g", l)
		prev = m
	}
	assert.Equal(t, 0.6, fundingMultiplier(0.0))
	assert.Equal(t, 1.3, fundingMultiplier(2.0))
}

func TestTrajectoriesMonotoneNonDecreasing(t *testing.T) {
	p := project(0.6)
	for sector, traj := range p.Sectors {
		require.NotEmpty(t, traj.Levels, "sector %s", sector)
		prev := 0.0
		for m, level := range traj.Levels {
			require.GreaterOrEqual(t, level, prev, "%s month %d regressed", sector, m+1)
			prev = level
		}
	}
}

func TestTrajectoryStartsAtZero(t *testing.T) {
	p := project(0.6)
	for sector, traj := range p.Sectors {
		require.Len(t, traj.Levels, traj.HorizonMonths+1, "sector %s", sector)
		assert.Zero(t, traj.Levels[0], "sector %s", sector)
	}
}

func TestMonthlyLevelsCappedAtOne(t *testing.T) {
	a := testAssessment()
	bbb := BBBPolicy{Commitment: 1, Allocation: 1, Capacity: 1}
	// Over-funded so the accumulation would overshoot without the cap.
	p := Project(a, region.KindUrban, 1, 3*FundingNeed(a), governance.DefaultQuality(), bbb)
	for sector, traj := range p.Sectors {
		for m, level := range traj.Levels {
			require.LessOrEqual(t, level, 1.0, "sector %s month %d", sector, m)
		}
	}
}

func TestBBBAppliedToFinalStateOnly(t *testing.T) {
	p := project(2.0)
	require.Positive(t, p.BBBBonus)
	for sector, traj := range p.Sectors {
		last := traj.Levels[len(traj.Levels)-1]
		require.LessOrEqual(t, last, 1.0, "sector %s", sector)
		assert.InDelta(t, last*(1+p.BBBBonus), traj.FinalLevel, 1e-12, "sector %s", sector)
	}
}

func TestSectorHorizonCaps(t *testing.T) {
	p := project(0.6)
	assert.LessOrEqual(t, p.Sectors[SectorHousing].HorizonMonths, housingHorizonCap)
	assert.LessOrEqual(t, p.Sectors[SectorInfrastructure].HorizonMonths, infraHorizonCap)
	assert.LessOrEqual(t, p.Sectors[SectorLivelihoods].HorizonMonths, livelihoodsHorizonCap)
	assert.LessOrEqual(t, p.Sectors[SectorSocial].HorizonMonths, socialHorizonCap)
	for _, traj := range p.Sectors {
		assert.GreaterOrEqual(t, traj.HorizonMonths, 1)
	}
}

func TestMilestonesOrdered(t *testing.T) {
	p := project(1.2)
	for sector, traj := range p.Sectors {
		prev := 0
		for _, pct := range []int{30, 50, 70, 90} {
			m, ok := traj.Milestones[pct]
			if !ok {
				continue // under-funded sectors may never reach late milestones
			}
			require.GreaterOrEqual(t, m, prev, "%s milestone %d%%", sector, pct)
			prev = m
		}
	}
}

func TestFundingAcceleratesRecovery(t *testing.T) {
	starved := project(0.1)
	funded := project(1.2)
	for _, sector := range Sectors {
		assert.GreaterOrEqual(t,
			funded.Sectors[sector].FinalLevel,
			starved.Sectors[sector].FinalLevel,
			"sector %s", sector)
	}
	assert.Greater(t,
		funded.Sectors[SectorHousing].FinalLevel,
		starved.Sectors[SectorHousing].FinalLevel)
}

func TestMonsoonSlowsEarlyRecovery(t *testing.T) {
	a := testAssessment()
	funding := 0.6 * FundingNeed(a)
	dry := Project(a, region.KindCoastal, 11, funding, governance.DefaultQuality(), defaultBBB())
	monsoon := Project(a, region.KindCoastal, 5, funding, governance.DefaultQuality(), defaultBBB())

	h := SectorHousing
	// Compare progress three months in, while the seasonal windows differ.
	require.GreaterOrEqual(t, len(dry.Sectors[h].Levels), 4)
	require.GreaterOrEqual(t, len(monsoon.Sectors[h].Levels), 4)
	assert.Greater(t, dry.Sectors[h].Levels[3], monsoon.Sectors[h].Levels[3])
}

func TestQualityScoreBounds(t *testing.T) {
	for _, ratio := range []float64{0.0, 0.3, 0.6, 1.0, 2.0} {
		p := project(ratio)
		assert.GreaterOrEqual(t, p.QualityScore, 0.0, "ratio %g", ratio)
		assert.LessOrEqual(t, p.QualityScore, 1.0, "ratio %g", ratio)
	}
}

func TestBBBBonus(t *testing.T) {
	assert.InDelta(t, 0.075, defaultBBB().Bonus(), 1e-12)
	assert.Zero(t, BBBPolicy{}.Bonus())
}

func TestZeroDamageProjectsTrivially(t *testing.T) {
	var a damage.Assessment
	p := Project(a, region.KindUrban, 1, 0, governance.DefaultQuality(), defaultBBB())
	for sector, traj := range p.Sectors {
		assert.Equal(t, 1, traj.HorizonMonths, "sector %s", sector)
	}
	assert.Zero(t, p.FundingNeed)
}
