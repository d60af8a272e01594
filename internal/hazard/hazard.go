// Package hazard generates stochastic multi-hazard events. Each configured
// return period is an independent annual Bernoulli trial; occurrence
// probability and intensity are modulated by climate-scenario effects.
package hazard

// Type is the closed set of supported hazards.
type Type int

const (
	TypeFlood Type = iota
	TypeCyclone
	TypeEarthquake
	TypeLandslide
	TypeDrought
	NumTypes
)

func (t Type) String() string {
	switch t {
	case TypeFlood:
		return "flood"
	case TypeCyclone:
		return "cyclone"
	case TypeEarthquake:
		return "earthquake"
	case TypeLandslide:
		return "landslide"
	case TypeDrought:
		return "drought"
	default:
		return "unknown"
	}
}

// ParseType maps a config string to a Type.
func ParseType(s string) (Type, bool) {
	for t := Type(0); t < NumTypes; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// FootprintKind classifies the spatial extent of an event.
type FootprintKind int

const (
	FootprintRiverine FootprintKind = iota
	FootprintCoastal
	FootprintGeneric
)

func (k FootprintKind) String() string {
	switch k {
	case FootprintRiverine:
		return "riverine"
	case FootprintCoastal:
		return "coastal"
	default:
		return "generic"
	}
}

// Footprint is the spatial extent of an event: its kind plus the named
// sub-units (river systems or coastal districts) it intersects.
type Footprint struct {
	Kind          FootprintKind
	AffectedUnits []string
}

// FloodKind distinguishes slow riverine inundation from flash floods.
type FloodKind int

const (
	FloodRiverine FloodKind = iota
	FloodFlash
)

func (k FloodKind) String() string {
	if k == FloodFlash {
		return "flash"
	}
	return "riverine"
}

// Event is one hazard occurrence. Immutable once generated.
type Event struct {
	Type         Type
	Year         int
	Month        int // 1..12
	ReturnPeriod int
	Intensity    float64 // unit depends on Type: m depth, km/h wind, magnitude
	Duration     float64 // days for floods, hours for cyclones, 0 otherwise
	Footprint    Footprint

	// Flood.
	FloodKind FloodKind
	DepthM    float64

	// Cyclone.
	WindSpeedKmh   float64
	StormSurgeM    float64
	TrackDirection string
	RainfallMmHr   float64

	// Earthquake.
	Magnitude    float64
	FocalDepthKm float64
	Fault        string

	// Landslide.
	VolumeM3 float64
	SlopeDeg float64
}

// Severity scales for normalizing physical intensities onto [0,1].
var severityScale = [NumTypes]float64{
	TypeFlood:      5,   // meters of depth
	TypeCyclone:    250, // km/h
	TypeEarthquake: 1,   // PGA in g
	TypeLandslide:  1,
	TypeDrought:    2,
}

// Severity maps the event's physical intensity onto [0,1] for stages that
// compare hazards across types (warning thresholds, compliance factors).
func (e Event) Severity() float64 {
	var v float64
	switch e.Type {
	case TypeFlood:
		v = e.DepthM / severityScale[TypeFlood]
	case TypeCyclone:
		v = e.WindSpeedKmh / severityScale[TypeCyclone]
	case TypeEarthquake:
		v = e.Magnitude / 10 / severityScale[TypeEarthquake]
	default:
		v = e.Intensity / severityScale[e.Type]
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
