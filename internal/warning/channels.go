// Dissemination channel parameters and the aggregation that turns them into a
// single warning-reach score.
package warning

import (
	"math"

	"github.com/talgya/deltarisk/internal/hazard"
	"github.com/talgya/deltarisk/internal/region"
)

// Channel is a warning dissemination medium.
type Channel string

const (
	ChannelSirens       Channel = "sirens"
	ChannelSMS          Channel = "sms"
	ChannelRadio        Channel = "radio"
	ChannelTelevision   Channel = "television"
	ChannelVolunteers   Channel = "volunteers"
	ChannelLoudspeakers Channel = "loudspeakers"
)

// channelProfile describes a channel's reach and its dependencies.
type channelProfile struct {
	coverage      float64
	reliability   float64
	comprehension float64
	urbanBias     float64 // positive favors urban reach, negative rural
	needsLiteracy bool
	needsPower    bool
	timeOfDayDep  bool
}

var channelProfiles = map[Channel]channelProfile{
	ChannelSirens:       {coverage: 0.15, reliability: 0.80, comprehension: 0.95, urbanBias: 0.7},
	ChannelSMS:          {coverage: 0.70, reliability: 0.85, comprehension: 0.80, urbanBias: 0.6, needsLiteracy: true},
	ChannelRadio:        {coverage: 0.85, reliability: 0.90, comprehension: 0.85, urbanBias: 0.2},
	ChannelTelevision:   {coverage: 0.60, reliability: 0.85, comprehension: 0.90, urbanBias: 0.5, needsPower: true},
	ChannelVolunteers:   {coverage: 0.55, reliability: 0.75, comprehension: 0.95, urbanBias: -0.3},
	ChannelLoudspeakers: {coverage: 0.90, reliability: 0.70, comprehension: 0.95, urbanBias: -0.1, timeOfDayDep: true},
}

// Regional early-warning-system capacity, 0..1.
var regionalCapacity = map[region.Kind]float64{
	region.KindCoastal:    0.8, // decades of cyclone preparedness
	region.KindUrban:      0.7,
	region.KindFloodplain: 0.6,
	region.KindHaorBasin:  0.5,
	region.KindBarind:     0.5,
	region.KindHillTracts: 0.4,
}

// channelWeight boosts media that matter most for a hazard.
func channelWeight(t hazard.Type, ch Channel) float64 {
	switch t {
	case hazard.TypeCyclone:
		if ch == ChannelSirens || ch == ChannelRadio || ch == ChannelVolunteers {
			return 1.5
		}
	case hazard.TypeFlood:
		if ch == ChannelRadio || ch == ChannelTelevision || ch == ChannelLoudspeakers {
			return 1.3
		}
	}
	return 1.0
}

// disseminationEffectiveness aggregates per-channel reach, weighted by hazard
// importance and scaled by the region's EWS capacity. Result in [0.05, 0.95].
func disseminationEffectiveness(cap Capability, kind region.Kind, t hazard.Type) float64 {
	channels := cap.Channels
	if len(channels) == 0 {
		channels = []Channel{ChannelRadio, ChannelVolunteers}
	}

	totalEff, totalWeight := 0.0, 0.0
	for _, ch := range channels {
		prof, ok := channelProfiles[ch]
		if !ok {
			continue
		}
		eff := prof.coverage * prof.reliability * prof.comprehension

		if kind == region.KindUrban {
			eff *= 1 + prof.urbanBias
		} else if prof.urbanBias < 0 {
			eff *= 1 - prof.urbanBias
		}

		if prof.needsLiteracy {
			eff *= 0.5 + 0.5*cap.LiteracyRate
		}
		if prof.needsPower {
			eff *= cap.ElectricityReliability
		}
		if prof.timeOfDayDep {
			// Night-time warnings reach fewer people; average over the day.
			eff *= 0.8
		}

		w := channelWeight(t, ch)
		totalEff += eff * w
		totalWeight += w
	}

	overall := 0.0
	if totalWeight > 0 {
		overall = totalEff / totalWeight
	}

	capacity, ok := regionalCapacity[kind]
	if !ok {
		capacity = 0.5
	}
	overall *= 0.5 + 0.5*capacity

	return math.Min(0.95, math.Max(0.05, overall))
}
