// Package sim orchestrates the multi-hazard projection: it walks every
// scenario and region year by year, cascades each hazard occurrence through
// exposure, damage, warning, response and recovery, and folds the results
// into annual and cumulative metrics.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/talgya/deltarisk/internal/climate"
	"github.com/talgya/deltarisk/internal/config"
	"github.com/talgya/deltarisk/internal/damage"
	"github.com/talgya/deltarisk/internal/entropy"
	"github.com/talgya/deltarisk/internal/exposure"
	"github.com/talgya/deltarisk/internal/governance"
	"github.com/talgya/deltarisk/internal/hazard"
	"github.com/talgya/deltarisk/internal/recovery"
	"github.com/talgya/deltarisk/internal/region"
	"github.com/talgya/deltarisk/internal/response"
	"github.com/talgya/deltarisk/internal/warning"
)

// Losses above this mark a year that sets institutions back (BDT).
const majorDisasterLossThreshold = 5e10

// EventRecord captures one hazard occurrence and its full cascade.
type EventRecord struct {
	Event    hazard.Event
	Exposure exposure.Snapshot
	Damage   damage.Assessment
	Warning  warning.Outcome
	Response response.Outcome
	Recovery recovery.Projection

	// Casualties after warning and rescue reductions.
	NetDeaths int
}

// YearState is one simulated year for one scenario and region.
type YearState struct {
	Scenario string
	Region   string
	Year     int

	Climate climate.ScenarioState
	Events  []EventRecord

	Deaths    int
	Injuries  int
	Displaced int

	LivesSavedWarning  int
	LivesSavedResponse int

	DirectLosses   float64
	IndirectLosses float64

	GovernanceScore float64
	ResilienceIndex float64
	Population      float64
}

// CellResult aggregates one (scenario, region) combination across all years.
type CellResult struct {
	Scenario string
	Region   string
	Years    []YearState

	TotalDeaths       int
	TotalDisplaced    int
	TotalLosses       float64
	AverageAnnualLoss float64
	FinalResilience   float64
}

// Result is a complete run.
type Result struct {
	Seed  uint64
	Cells []CellResult
}

// Runner executes configured projection runs.
type Runner struct {
	cfg      config.Config
	provider region.Provider
	gen      *hazard.Generator
	log      *slog.Logger

	capability warning.Capability
	capacity   response.Capacity
	bbb        recovery.BBBPolicy
}

// NewRunner validates the configuration and prepares a Runner.
func NewRunner(cfg config.Config, provider region.Provider, log *slog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := hazard.NewGenerator(cfg.GeneratorConfig())
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		cfg:        cfg,
		provider:   provider,
		gen:        gen,
		log:        log,
		capability: capabilityFromConfig(cfg.Warning),
		capacity:   capacityFromConfig(cfg.Response),
		bbb: recovery.BBBPolicy{
			Commitment: cfg.Recovery.BBBCommitment,
			Allocation: cfg.Recovery.BBBAllocation,
			Capacity:   cfg.Recovery.BBBCapacity,
		},
	}, nil
}

func capabilityFromConfig(w config.WarningConfig) warning.Capability {
	channels := make([]warning.Channel, 0, len(w.Channels))
	for _, name := range w.Channels {
		channels = append(channels, warning.Channel(name))
	}
	return warning.Capability{
		TechnologyLevel:        w.TechnologyLevel,
		StaffTraining:          w.StaffTraining,
		ObservationNetwork:     w.ObservationNetwork,
		LiteracyRate:           w.LiteracyRate,
		ElectricityReliability: w.ElectricityReliability,
		Channels:               channels,
		Specificity:            warning.Specificity(w.Specificity),
		Experience:             warning.Experience(w.Experience),
	}
}

func capacityFromConfig(r config.ResponseConfig) response.Capacity {
	return response.Capacity{
		ShelterSpaces:    r.ShelterSpaces,
		ReliefPersonDays: r.ReliefPersonDays,
		MedicalSurge:     r.MedicalSurge,
		ResourceAdequacy: r.ResourceAdequacy,
		Coordination:     r.Coordination,
	}
}

// Run walks every scenario and region in parallel. Each combination owns its
// region stock; years within it are strictly sequential. Results come back
// in a fixed scenario-then-region order regardless of scheduling.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	regions := r.cfg.Run.Regions
	if len(regions) == 0 {
		regions = r.provider.Names()
	}

	result := &Result{Seed: r.cfg.Run.Seed}
	root := entropy.NewSource(r.cfg.Run.Seed)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	for _, scenario := range r.cfg.Run.Scenarios {
		for _, regionName := range regions {
			scenario, regionName := scenario, regionName
			g.Go(func() error {
				cell, err := r.runCell(ctx, scenario, regionName, root)
				if err != nil {
					return err
				}
				mu.Lock()
				result.Cells = append(result.Cells, cell)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(result.Cells, func(i, j int) bool {
		a, b := result.Cells[i], result.Cells[j]
		if a.Scenario != b.Scenario {
			return a.Scenario < b.Scenario
		}
		return a.Region < b.Region
	})
	return result, nil
}

// runCell simulates one (scenario, region) combination across all years.
func (r *Runner) runCell(ctx context.Context, scenario, regionName string, root *entropy.Source) (CellResult, error) {
	profile, err := r.provider.Profile(regionName)
	if err != nil {
		return CellResult{}, fmt.Errorf("sim: %w", err)
	}

	cell := CellResult{Scenario: scenario, Region: regionName}
	stock := profile.Baseline
	gov := governance.DefaultQuality()
	var resilience governance.Resilience

	cellSrc := root.Derive(scenario, regionName)
	years := r.cfg.Run.EndYear - r.cfg.Run.StartYear + 1
	cell.Years = make([]YearState, 0, years)

	for year := r.cfg.Run.StartYear; year <= r.cfg.Run.EndYear; year++ {
		select {
		case <-ctx.Done():
			return CellResult{}, ctx.Err()
		default:
		}

		stock.Evolve()
		if err := stock.Check(); err != nil {
			return CellResult{}, fmt.Errorf("sim: %s/%s year %d: %w", scenario, regionName, year, err)
		}

		state := climate.Interpolate(climate.Pathway(scenario), year)
		yearSrc := cellSrc.Derive(strconv.Itoa(year))
		events := r.gen.Generate(profile, year, state, yearSrc)

		ys := YearState{
			Scenario:   scenario,
			Region:     regionName,
			Year:       year,
			Climate:    state,
			Population: stock.Population,
		}

		for i, ev := range events {
			rec := r.cascade(ev, stock, profile.Kind, gov, yearSrc.Derive("cascade", strconv.Itoa(i)))
			ys.Events = append(ys.Events, rec)

			ys.Deaths += rec.NetDeaths
			ys.Injuries += rec.Damage.Casualties.Injuries
			ys.Displaced += rec.Damage.Casualties.Displaced
			ys.LivesSavedWarning += rec.Warning.LivesSaved
			ys.LivesSavedResponse += rec.Response.AdditionalLivesSaved
			ys.DirectLosses += rec.Damage.DirectLosses
			ys.IndirectLosses += rec.Damage.IndirectLosses

			resilience.Absorb(rec.Recovery.BBBBonus)
		}

		gov.Advance(ys.DirectLosses+ys.IndirectLosses > majorDisasterLossThreshold)
		ys.GovernanceScore = gov.Score
		ys.ResilienceIndex = resilience.Index

		cell.Years = append(cell.Years, ys)
		cell.TotalDeaths += ys.Deaths
		cell.TotalDisplaced += ys.Displaced
		cell.TotalLosses += ys.DirectLosses + ys.IndirectLosses

		if len(ys.Events) > 0 {
			r.log.Debug("year simulated",
				"scenario", scenario, "region", regionName, "year", year,
				"events", len(ys.Events), "deaths", ys.Deaths,
				"losses", ys.DirectLosses+ys.IndirectLosses)
		}
	}

	if years > 0 {
		cell.AverageAnnualLoss = cell.TotalLosses / float64(years)
	}
	cell.FinalResilience = resilience.Index

	r.log.Info("cell complete",
		"scenario", scenario, "region", regionName,
		"deaths", cell.TotalDeaths, "displaced", cell.TotalDisplaced,
		"avg_annual_loss", cell.AverageAnnualLoss,
		"resilience", cell.FinalResilience)
	return cell, nil
}

// cascade runs one hazard occurrence through the full impact chain.
func (r *Runner) cascade(ev hazard.Event, stock region.Stock, kind region.Kind, gov governance.Quality, src *entropy.Source) EventRecord {
	rec := EventRecord{Event: ev}

	rec.Exposure = exposure.Compute(stock, ev)
	rec.Damage = damage.Assess(rec.Exposure, ev, src.Derive("damage"))

	rec.Warning = warning.Simulate(ev, r.capability, kind, rec.Damage.Casualties.Deaths, src.Derive("warning"))

	// Warning reduces the toll before responders arrive.
	cas := rec.Damage.Casualties
	cas.Deaths -= rec.Warning.LivesSaved
	if cas.Deaths < 0 {
		cas.Deaths = 0
	}

	rec.Response = response.Simulate(ev, cas, int(rec.Exposure.Population), kind, r.capacity)

	rec.NetDeaths = cas.Deaths - rec.Response.AdditionalLivesSaved
	if rec.NetDeaths < 0 {
		rec.NetDeaths = 0
	}

	funding := r.cfg.Recovery.FundingRatio * recovery.FundingNeed(rec.Damage)
	rec.Recovery = recovery.Project(rec.Damage, kind, ev.Month, funding, gov, r.bbb)

	return rec
}
