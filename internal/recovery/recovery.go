// Package recovery projects post-disaster reconstruction across four sectors
// on monthly trajectories shaped by funding, institutions, geography and the
// monsoon calendar.
package recovery

import (
	"math"

	"github.com/talgya/deltarisk/internal/damage"
	"github.com/talgya/deltarisk/internal/governance"
	"github.com/talgya/deltarisk/internal/region"
)

// Sector is one recovery dimension.
type Sector string

const (
	SectorHousing        Sector = "housing"
	SectorInfrastructure Sector = "infrastructure"
	SectorLivelihoods    Sector = "livelihoods"
	SectorSocial         Sector = "social"
)

// Sectors lists every recovery dimension in presentation order.
var Sectors = []Sector{SectorHousing, SectorInfrastructure, SectorLivelihoods, SectorSocial}

// Monthly baseline reconstruction rates per building type. Lighter structures
// rebuild faster.
var housingMonthlyRate = [region.NumBuildingTypes]float64{
	region.BuildingRCC:       0.10,
	region.BuildingSemiPucca: 0.08,
	region.BuildingKutcha:    0.15,
	region.BuildingJhupri:    0.20,
}

// Monthly restoration rates per facility class.
var facilityMonthlyRate = [region.NumFacilities]float64{
	region.FacilityHospital:       0.07,
	region.FacilitySchool:         0.08,
	region.FacilityBridge:         0.05,
	region.FacilityEmbankmentKm:   0.06,
	region.FacilityPowerPlant:     0.15,
	region.FacilityCycloneShelter: 0.10,
	region.FacilityTelecomTower:   0.12,
}

const (
	livelihoodDirectRate   = 0.12
	livelihoodIndirectRate = 0.08
)

// Sector horizon caps in months.
const (
	housingHorizonCap     = 60
	infraHorizonCap       = 72
	livelihoodsHorizonCap = 60
	socialHorizonCap      = 84
)

// Regional recovery-rate factors. Remote and waterlogged terrain rebuilds
// slower; urban economies rebound faster.
var regionalFactor = map[region.Kind]float64{
	region.KindCoastal:    0.9,
	region.KindFloodplain: 0.9,
	region.KindHaorBasin:  0.8,
	region.KindBarind:     0.9,
	region.KindHillTracts: 0.8,
	region.KindUrban:      1.1,
}

// Monthly seasonal factors, January first. Monsoon months stall construction.
var seasonalFactor = [12]float64{
	1.0, 1.0, 1.1, 1.0, 0.9, 0.7, 0.6, 0.6, 0.7, 0.9, 1.0, 1.0,
}

// Funding need coefficients over direct and indirect losses.
const (
	directNeedFactor   = 1.5
	indirectNeedFactor = 0.5
)

// fundingMultiplier maps the funded fraction of need onto a rate factor.
// Over-funding accelerates work past the nominal schedule.
func fundingMultiplier(level float64) float64 {
	switch {
	case level < 0.2:
		return 0.6
	case level < 0.5:
		return 0.8
	case level < 0.8:
		return 1.0
	case level < 1.0:
		return 1.2
	default:
		return 1.3
	}
}

// BBBPolicy configures the build-back-better program.
type BBBPolicy struct {
	Commitment float64 // 0..1 policy strength
	Allocation float64 // 0..1 share of funding earmarked
	Capacity   float64 // 0..1 technical capacity to deliver
}

// Bonus is the fraction by which rebuilt stock exceeds pre-disaster quality.
func (p BBBPolicy) Bonus() float64 {
	return p.Commitment * p.Allocation * p.Capacity
}

// Trajectory is one sector's monthly recovery path.
type Trajectory struct {
	Sector        Sector
	HorizonMonths int
	// Levels[0] is the moment of the event (always 0); Levels[m] is the
	// recovered fraction at the end of month m, capped at 1.
	Levels     []float64
	Milestones map[int]int // percent threshold → month reached, 1-based
	// FinalLevel is the end state with the build-back-better quality gain
	// applied, so it can exceed 1.
	FinalLevel float64
}

// Projection is the full recovery picture for one event.
type Projection struct {
	Sectors           map[Sector]Trajectory
	FundingNeed       float64
	FundingLevel      float64 // funded fraction of need
	FundingMultiplier float64
	BBBBonus          float64
	QualityScore      float64
}

var milestoneThresholds = []int{30, 50, 70, 90}

// FundingNeed estimates the recovery budget an assessment calls for.
// Reconstruction overshoots direct losses; indirect losses only partly
// translate into budget lines.
func FundingNeed(a damage.Assessment) float64 {
	return directNeedFactor*a.DirectLosses + indirectNeedFactor*a.IndirectLosses
}

// Project builds monthly trajectories for every sector from the damage
// assessment. eventMonth (1..12) anchors the seasonal calendar; funding is
// the committed recovery budget in the same currency as the losses.
func Project(a damage.Assessment, kind region.Kind, eventMonth int, funding float64, gov governance.Quality, bbb BBBPolicy) Projection {
	need := FundingNeed(a)
	level := 1.0
	if need > 0 {
		level = funding / need
	}

	p := Projection{
		Sectors:           make(map[Sector]Trajectory, len(Sectors)),
		FundingNeed:       need,
		FundingLevel:      level,
		FundingMultiplier: fundingMultiplier(level),
		BBBBonus:          bbb.Bonus(),
	}

	regional, ok := regionalFactor[kind]
	if !ok {
		regional = 0.9
	}
	rateScale := p.FundingMultiplier * gov.Multiplier() * regional

	for _, s := range Sectors {
		horizon := sectorHorizon(s, a)
		p.Sectors[s] = buildTrajectory(s, horizon, rateScale, eventMonth, p.BBBBonus)
	}

	p.QualityScore = qualityScore(p)
	return p
}

// sectorHorizon derives the nominal recovery horizon in months from the
// damage-weighted monthly rates.
func sectorHorizon(s Sector, a damage.Assessment) int {
	switch s {
	case SectorHousing:
		var rate, weight float64
		for b := region.BuildingType(0); b < region.NumBuildingTypes; b++ {
			d := a.Buildings[b].Damaged
			rate += housingMonthlyRate[b] * d
			weight += d
		}
		return horizonFromRate(rate, weight, housingHorizonCap)
	case SectorInfrastructure:
		var rate, weight float64
		for f := region.Facility(0); f < region.NumFacilities; f++ {
			d := a.Facilities[f].Damaged
			rate += facilityMonthlyRate[f] * d
			weight += d
		}
		return horizonFromRate(rate, weight, infraHorizonCap)
	case SectorLivelihoods:
		total := a.DirectLosses + a.IndirectLosses
		if total <= 0 {
			return 1
		}
		rate := (livelihoodDirectRate*a.DirectLosses + livelihoodIndirectRate*a.IndirectLosses) / total
		return horizonFromRate(rate, 1, livelihoodsHorizonCap)
	case SectorSocial:
		c := a.Casualties
		burden := (float64(c.Deaths)*5 + float64(c.Injuries) + float64(c.Displaced)*0.5) / 1000
		months := int(math.Ceil(burden))
		if months < 1 {
			months = 1
		}
		if months > socialHorizonCap {
			months = socialHorizonCap
		}
		return months
	}
	return 1
}

func horizonFromRate(weightedRate, weight float64, limit int) int {
	if weight <= 0 || weightedRate <= 0 {
		return 1
	}
	months := int(math.Ceil(weight / weightedRate))
	if months < 1 {
		months = 1
	}
	if months > limit {
		months = limit
	}
	return months
}

// shape returns the nominal recovered fraction at normalized time x in [0,1].
func shape(s Sector, x float64) float64 {
	switch s {
	case SectorHousing:
		// Early-rapid: tarpaulins and kutcha repairs come quickly.
		return math.Sqrt(x)
	case SectorSocial:
		// Late-rapid: grief and displacement resolve slowly at first.
		return x * x
	default:
		// S-shaped: mobilization, bulk works, long tail.
		return 1 / (1 + math.Exp(-10*(x-0.5)))
	}
}

func buildTrajectory(s Sector, horizon int, rateScale float64, eventMonth int, bbbBonus float64) Trajectory {
	t := Trajectory{
		Sector:        s,
		HorizonMonths: horizon,
		Levels:        make([]float64, horizon+1),
		Milestones:    make(map[int]int, len(milestoneThresholds)),
	}

	level, prev := 0.0, shape(s, 0)
	for m := 1; m <= horizon; m++ {
		x := float64(m) / float64(horizon)
		nominal := shape(s, x)
		step := nominal - prev
		prev = nominal

		month := ((eventMonth - 1 + m) % 12)
		level += step * rateScale * seasonalFactor[month]
		if level > 1 {
			level = 1
		}
		t.Levels[m] = level

		for _, pct := range milestoneThresholds {
			if _, done := t.Milestones[pct]; !done && level*100 >= float64(pct) {
				t.Milestones[pct] = m
			}
		}
	}
	// The quality gain lands on the rebuilt end state, not on the monthly
	// fractions.
	t.FinalLevel = level * (1 + bbbBonus)
	return t
}

// qualityScore grades the recovery 0..1 on speed, completeness and rebuilt
// quality.
func qualityScore(p Projection) float64 {
	var halfway, completeness float64
	n := 0.0
	for _, t := range p.Sectors {
		if m, ok := t.Milestones[50]; ok {
			halfway += float64(m)
		} else {
			halfway += float64(t.HorizonMonths)
		}
		completeness += math.Min(1, t.FinalLevel)
		n++
	}
	if n == 0 {
		return 0
	}
	halfway /= n
	completeness /= n

	speed := 1.0
	if halfway > 0 {
		speed = math.Min(1, 12/halfway)
	}
	quality := math.Min(1, completeness*(1+p.BBBBonus))

	return 0.3*speed + 0.3*completeness + 0.4*quality
}
