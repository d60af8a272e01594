// Package response models the emergency operations that follow a hazard
// impact: search and rescue, evacuation, relief distribution, medical care and
// service restoration, plus the resources they consume.
package response

import (
	"math"

	"github.com/talgya/deltarisk/internal/damage"
	"github.com/talgya/deltarisk/internal/hazard"
	"github.com/talgya/deltarisk/internal/region"
)

// Operation is one emergency response function.
type Operation string

const (
	OpRescue      Operation = "search_rescue"
	OpEvacuation  Operation = "evacuation"
	OpRelief      Operation = "relief_distribution"
	OpMedical     Operation = "medical_response"
	OpRestoration Operation = "service_restoration"
)

// Operations lists every response function in presentation order.
var Operations = []Operation{OpRescue, OpEvacuation, OpRelief, OpMedical, OpRestoration}

// Base per-operation effectiveness by hazard. Water hazards are the ones the
// national apparatus drills for, so they score highest.
var baseEffectiveness = map[hazard.Type]map[Operation]float64{
	hazard.TypeFlood: {
		OpRescue: 0.7, OpEvacuation: 0.6, OpRelief: 0.6, OpMedical: 0.5, OpRestoration: 0.5,
	},
	hazard.TypeCyclone: {
		OpRescue: 0.6, OpEvacuation: 0.7, OpRelief: 0.6, OpMedical: 0.5, OpRestoration: 0.4,
	},
	hazard.TypeLandslide: {
		OpRescue: 0.4, OpEvacuation: 0.3, OpRelief: 0.4, OpMedical: 0.4, OpRestoration: 0.5,
	},
	hazard.TypeEarthquake: {
		OpRescue: 0.3, OpEvacuation: 0.4, OpRelief: 0.5, OpMedical: 0.4, OpRestoration: 0.3,
	},
	hazard.TypeDrought: {
		OpRescue: 0.8, OpEvacuation: 0.7, OpRelief: 0.6, OpMedical: 0.6, OpRestoration: 0.4,
	},
}

// Regional response capacity, 0..1.
var regionalCapacity = map[region.Kind]float64{
	region.KindCoastal:    0.8,
	region.KindUrban:      0.7,
	region.KindFloodplain: 0.6,
	region.KindHaorBasin:  0.5,
	region.KindBarind:     0.5,
	region.KindHillTracts: 0.4,
}

// Fraction of the transport network a hazard takes out of service.
var transportDisruption = map[hazard.Type]float64{
	hazard.TypeFlood:      0.7,
	hazard.TypeCyclone:    0.6,
	hazard.TypeEarthquake: 0.8,
	hazard.TypeLandslide:  0.7,
	hazard.TypeDrought:    0.2,
}

// Fraction of initially expected deaths that effective rescue averts.
const rescueSavesFraction = 0.3

// Relief planning horizon in days per affected person.
const reliefDaysPerPerson = 7

// Capacity configures national resources available to the response.
type Capacity struct {
	ShelterSpaces    int     // people the shelter network can hold
	ReliefPersonDays float64 // stocked relief, person-days
	MedicalSurge     int     // injured the health system can absorb
	ResourceAdequacy float64 // 0..1, supplies and equipment on hand
	Coordination     float64 // 0..1, inter-agency coordination quality

	// OperationAdequacy pins the adequacy of specific operations, 0..1.
	// Operations without an entry fall back to ResourceAdequacy strained
	// by the affected population.
	OperationAdequacy map[Operation]float64
}

// DefaultCapacity reflects the standing national posture.
func DefaultCapacity() Capacity {
	return Capacity{
		ShelterSpaces:    2_500_000,
		ReliefPersonDays: 1_000_000,
		MedicalSurge:     100_000,
		ResourceAdequacy: 0.6,
		Coordination:     0.58,
	}
}

// Affected population the standing stockpiles are planned around. Larger
// events thin supplies proportionally.
const adequacyPlanningBasis = 5_000_000

// adequacy resolves the supply adequacy for one operation.
func (c Capacity) adequacy(op Operation, affected int) float64 {
	if v, ok := c.OperationAdequacy[op]; ok {
		return math.Min(1, math.Max(0, v))
	}
	strain := 1.0
	if affected > adequacyPlanningBasis {
		strain = adequacyPlanningBasis / float64(affected)
	}
	return c.ResourceAdequacy * strain
}

// Consumption tallies resources the response draws down.
type Consumption struct {
	FoodPersonDays    float64
	WaterLiters       float64
	MedicalKits       float64
	ShelterSpacesUsed float64
}

// Outcome summarizes one event's emergency response.
type Outcome struct {
	Effectiveness        map[Operation]float64
	AdditionalLivesSaved int
	ShelterCoverage      float64 // fraction of displaced sheltered
	ReliefCoverage       float64 // fraction of relief need met
	MedicalCoverage      float64 // fraction of injured treated
	Resources            Consumption
}

// Simulate runs the response stage for one event. affected is the exposed
// population; cas holds the post-warning casualty tallies.
func Simulate(ev hazard.Event, cas damage.Casualties, affected int, kind region.Kind, capacity Capacity) Outcome {
	out := Outcome{Effectiveness: make(map[Operation]float64, len(Operations))}

	base, ok := baseEffectiveness[ev.Type]
	if !ok {
		base = baseEffectiveness[hazard.TypeFlood]
	}
	regional, ok := regionalCapacity[kind]
	if !ok {
		regional = 0.5
	}
	disruption := transportDisruption[ev.Type]

	for _, op := range Operations {
		eff := base[op] * (0.4 +
			0.2*regional +
			0.2*capacity.adequacy(op, affected) +
			0.1*capacity.Coordination +
			0.1*(1-disruption))
		out.Effectiveness[op] = math.Min(0.95, math.Max(0.05, eff))
	}

	// Rescue pulls survivors out of the initially projected death toll.
	saved := float64(cas.Deaths) * out.Effectiveness[OpRescue] * rescueSavesFraction
	out.AdditionalLivesSaved = int(math.Min(saved, float64(cas.Deaths)))

	if cas.Displaced > 0 {
		out.ShelterCoverage = math.Min(1, float64(capacity.ShelterSpaces)/float64(cas.Displaced))
	} else {
		out.ShelterCoverage = 1
	}
	if affected > 0 {
		need := float64(affected) * reliefDaysPerPerson
		out.ReliefCoverage = math.Min(1, capacity.ReliefPersonDays/need)
	} else {
		out.ReliefCoverage = 1
	}
	if cas.Injuries > 0 {
		out.MedicalCoverage = math.Min(1, float64(capacity.MedicalSurge)/float64(cas.Injuries))
	} else {
		out.MedicalCoverage = 1
	}

	fed := float64(affected) * out.ReliefCoverage
	out.Resources = Consumption{
		FoodPersonDays:    fed,
		WaterLiters:       fed * 3,
		MedicalKits:       fed * 0.05,
		ShelterSpacesUsed: float64(cas.Displaced) * out.Effectiveness[OpEvacuation] * 0.7,
	}
	return out
}
