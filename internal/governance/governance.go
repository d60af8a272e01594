// Package governance tracks the institutional quality that conditions
// recovery speed, and the resilience that accumulates from rebuilding
// decisions.
package governance

import "math"

// Level grades one institutional dimension.
type Level string

const (
	LevelWeak     Level = "weak"
	LevelModerate Level = "moderate"
	LevelStrong   Level = "strong"
)

var levelMultiplier = map[Level]float64{
	LevelWeak:     0.7,
	LevelModerate: 1.0,
	LevelStrong:   1.2,
}

// Quality is the institutional profile of the recovery apparatus.
type Quality struct {
	Coordination        Level
	Planning            Level
	CorruptionControl   Level
	CommunityEngagement Level

	// Score is a scalar 0..1 summary that drifts over the simulation.
	Score float64
}

// DefaultQuality is the national mid-range profile.
func DefaultQuality() Quality {
	return Quality{
		Coordination:        LevelModerate,
		Planning:            LevelModerate,
		CorruptionControl:   LevelWeak,
		CommunityEngagement: LevelStrong,
		Score:               0.55,
	}
}

// Multiplier folds the categorical dimensions into a recovery-rate factor.
// Coordination and planning dominate; corruption and engagement weigh less.
func (q Quality) Multiplier() float64 {
	m := 0.3*lookup(q.Coordination) +
		0.3*lookup(q.Planning) +
		0.2*lookup(q.CorruptionControl) +
		0.2*lookup(q.CommunityEngagement)
	return m * (0.8 + 0.4*q.Score)
}

func lookup(l Level) float64 {
	if m, ok := levelMultiplier[l]; ok {
		return m
	}
	return 1.0
}

// Annual score drift and post-disaster setback.
const (
	annualImprovement = 0.005
	shockSetback      = 0.02
	scoreFloor        = 0.2
	scoreCeiling      = 0.9
)

// Advance moves the score one year forward. majorDisaster marks a year whose
// losses overwhelmed the apparatus and set institutions back.
func (q *Quality) Advance(majorDisaster bool) {
	q.Score += annualImprovement
	if majorDisaster {
		q.Score -= shockSetback
	}
	q.Score = math.Min(scoreCeiling, math.Max(scoreFloor, q.Score))
}

// Resilience accumulates from build-back-better investment across events.
type Resilience struct {
	Index float64 // 0..1
}

// Absorb credits one event's build-back-better bonus toward the index.
// Gains taper as the index approaches saturation.
func (r *Resilience) Absorb(bbbBonus float64) {
	gain := bbbBonus * 0.1 * (1 - r.Index)
	r.Index = math.Min(1, math.Max(0, r.Index+gain))
}
