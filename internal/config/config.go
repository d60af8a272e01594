// Package config loads and validates the simulation run configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/talgya/deltarisk/internal/climate"
	"github.com/talgya/deltarisk/internal/hazard"
)

// Config holds everything a simulation run needs.
type Config struct {
	Run      RunConfig      `toml:"run"`
	Hazards  HazardConfig   `toml:"hazards"`
	Warning  WarningConfig  `toml:"warning"`
	Response ResponseConfig `toml:"response"`
	Recovery RecoveryConfig `toml:"recovery"`
	Database DatabaseConfig `toml:"database"`
	API      APIConfig      `toml:"api"`
	Logging  LoggingConfig  `toml:"logging"`
}

// RunConfig frames the projection.
type RunConfig struct {
	Scenarios []string `toml:"scenarios"`
	Regions   []string `toml:"regions"` // empty selects every region
	StartYear int      `toml:"start_year"`
	EndYear   int      `toml:"end_year"`
	Seed      uint64   `toml:"seed"`
}

// HazardConfig selects hazards and their return-period ladders.
type HazardConfig struct {
	Enabled       []string         `toml:"enabled"`
	ReturnPeriods map[string][]int `toml:"return_periods"`
}

// WarningConfig parameterizes the early-warning system.
type WarningConfig struct {
	TechnologyLevel        float64  `toml:"technology_level"`
	StaffTraining          float64  `toml:"staff_training"`
	ObservationNetwork     float64  `toml:"observation_network"`
	LiteracyRate           float64  `toml:"literacy_rate"`
	ElectricityReliability float64  `toml:"electricity_reliability"`
	Channels               []string `toml:"channels"`
	Specificity            string   `toml:"specificity"`
	Experience             string   `toml:"experience"`
}

// ResponseConfig sizes the emergency response apparatus.
type ResponseConfig struct {
	ShelterSpaces    int     `toml:"shelter_spaces"`
	ReliefPersonDays float64 `toml:"relief_person_days"`
	MedicalSurge     int     `toml:"medical_surge"`
	ResourceAdequacy float64 `toml:"resource_adequacy"`
	Coordination     float64 `toml:"coordination"`
}

// RecoveryConfig controls funding and build-back-better policy.
type RecoveryConfig struct {
	FundingRatio  float64 `toml:"funding_ratio"` // funded fraction of need
	BBBCommitment float64 `toml:"bbb_commitment"`
	BBBAllocation float64 `toml:"bbb_allocation"`
	BBBCapacity   float64 `toml:"bbb_capacity"`
}

// DatabaseConfig locates the result archive.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// APIConfig controls the optional results-inspection HTTP server.
type APIConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the standard national-run configuration.
func Default() Config {
	return Config{
		Run: RunConfig{
			Scenarios: []string{
				string(climate.PathwayLow),
				string(climate.PathwayIntermediate),
				string(climate.PathwayHigh),
			},
			StartYear: 2025,
			EndYear:   2050,
			Seed:      42,
		},
		Hazards: HazardConfig{
			Enabled: []string{"flood", "cyclone", "earthquake", "landslide", "drought"},
			ReturnPeriods: map[string][]int{
				"flood":      {2, 5, 10, 25, 50, 100},
				"cyclone":    {5, 10, 25, 50, 100},
				"earthquake": {50, 100, 250, 500},
				"landslide":  {5, 10, 25},
				"drought":    {5, 10, 20},
			},
		},
		Warning: WarningConfig{
			TechnologyLevel:        0.5,
			StaffTraining:          0.5,
			ObservationNetwork:     0.5,
			LiteracyRate:           0.6,
			ElectricityReliability: 0.7,
			Channels:               []string{"radio", "sms", "volunteers", "loudspeakers"},
			Specificity:            "location_specific",
			Experience:             "minor_impact",
		},
		Response: ResponseConfig{
			ShelterSpaces:    2_500_000,
			ReliefPersonDays: 1_000_000,
			MedicalSurge:     100_000,
			ResourceAdequacy: 0.6,
			Coordination:     0.58,
		},
		Recovery: RecoveryConfig{
			FundingRatio:  0.6,
			BBBCommitment: 0.5,
			BBBAllocation: 0.3,
			BBBCapacity:   0.5,
		},
		Database: DatabaseConfig{
			Path: "deltarisk.db",
		},
		API: APIConfig{
			Enabled: false,
			Port:    8080,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML config file over the defaults. A missing path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run.
func (c Config) Validate() error {
	if len(c.Run.Scenarios) == 0 {
		return fmt.Errorf("config: no scenarios selected")
	}
	if c.Run.StartYear < climate.BaseYear {
		return fmt.Errorf("config: start year %d precedes base year %d", c.Run.StartYear, climate.BaseYear)
	}
	if c.Run.EndYear < c.Run.StartYear {
		return fmt.Errorf("config: end year %d precedes start year %d", c.Run.EndYear, c.Run.StartYear)
	}
	if len(c.Hazards.Enabled) == 0 {
		return fmt.Errorf("config: no hazards enabled")
	}
	for _, name := range c.Hazards.Enabled {
		t, ok := hazard.ParseType(name)
		if !ok {
			return fmt.Errorf("config: unknown hazard %q", name)
		}
		periods := c.Hazards.ReturnPeriods[name]
		if len(periods) == 0 {
			return fmt.Errorf("config: hazard %s has no return periods", t)
		}
		for _, rp := range periods {
			if rp < 2 {
				return fmt.Errorf("config: hazard %s return period %d below minimum 2", t, rp)
			}
		}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"warning.technology_level", c.Warning.TechnologyLevel},
		{"warning.staff_training", c.Warning.StaffTraining},
		{"warning.observation_network", c.Warning.ObservationNetwork},
		{"warning.literacy_rate", c.Warning.LiteracyRate},
		{"warning.electricity_reliability", c.Warning.ElectricityReliability},
		{"response.resource_adequacy", c.Response.ResourceAdequacy},
		{"response.coordination", c.Response.Coordination},
		{"recovery.bbb_commitment", c.Recovery.BBBCommitment},
		{"recovery.bbb_allocation", c.Recovery.BBBAllocation},
		{"recovery.bbb_capacity", c.Recovery.BBBCapacity},
	} {
		if f.value < 0 || f.value > 1 {
			return fmt.Errorf("config: %s must be in [0,1], got %g", f.name, f.value)
		}
	}
	if c.Recovery.FundingRatio < 0 {
		return fmt.Errorf("config: recovery.funding_ratio must be non-negative")
	}
	return nil
}

// HazardTypes returns the enabled hazards as typed values. Call Validate
// first.
func (c Config) HazardTypes() []hazard.Type {
	types := make([]hazard.Type, 0, len(c.Hazards.Enabled))
	for _, name := range c.Hazards.Enabled {
		t, ok := hazard.ParseType(name)
		if !ok {
			continue
		}
		types = append(types, t)
	}
	return types
}

// GeneratorConfig translates the hazard section for the event generator.
func (c Config) GeneratorConfig() hazard.Config {
	periods := make(map[hazard.Type][]int, len(c.Hazards.Enabled))
	for _, t := range c.HazardTypes() {
		periods[t] = c.Hazards.ReturnPeriods[t.String()]
	}
	return hazard.Config{ReturnPeriods: periods}
}
