package sim

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/deltarisk/internal/config"
	"github.com/talgya/deltarisk/internal/region"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Run.Scenarios = []string{"high"}
	cfg.Run.Regions = []string{"coastal_south", "central_floodplain"}
	cfg.Run.StartYear = 2025
	cfg.Run.EndYear = 2032
	cfg.Run.Seed = 42
	return cfg
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runOnce(t *testing.T, cfg config.Config) *Result {
	t.Helper()
	provider := region.NewSyntheticProvider(int64(cfg.Run.Seed))
	runner, err := NewRunner(cfg, provider, discard())
	require.NoError(t, err)
	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	return result
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Hazards.Enabled = nil
	provider := region.NewSyntheticProvider(42)
	_, err := NewRunner(cfg, provider, discard())
	assert.Error(t, err)
}

func TestRunDeterministicUnderFixedSeed(t *testing.T) {
	cfg := testConfig()
	a := runOnce(t, cfg)
	b := runOnce(t, cfg)
	require.Equal(t, a, b, "identical seeds must reproduce the run bit for bit")
}

func TestRunSeedChangesOutcome(t *testing.T) {
	a := runOnce(t, testConfig())

	cfg := testConfig()
	cfg.Run.Seed = 43
	b := runOnce(t, cfg)

	assert.NotEqual(t, a, b)
}

func TestRunCellOrderingAndShape(t *testing.T) {
	cfg := testConfig()
	cfg.Run.Scenarios = []string{"low", "high"}
	result := runOnce(t, cfg)

	require.Len(t, result.Cells, 4)
	for i := 1; i < len(result.Cells); i++ {
		prev, cur := result.Cells[i-1], result.Cells[i]
		less := prev.Scenario < cur.Scenario ||
			(prev.Scenario == cur.Scenario && prev.Region < cur.Region)
		require.True(t, less, "cells out of order at %d", i)
	}

	years := cfg.Run.EndYear - cfg.Run.StartYear + 1
	for _, cell := range result.Cells {
		require.Len(t, cell.Years, years)
		for i, ys := range cell.Years {
			require.Equal(t, cfg.Run.StartYear+i, ys.Year)
			require.Equal(t, cell.Scenario, ys.Scenario)
			require.Equal(t, cell.Region, ys.Region)
		}
	}
}

func TestRunAggregatesAreConsistent(t *testing.T) {
	result := runOnce(t, testConfig())
	for _, cell := range result.Cells {
		deaths, displaced, losses := 0, 0, 0.0
		for _, ys := range cell.Years {
			require.GreaterOrEqual(t, ys.Deaths, 0)
			deaths += ys.Deaths
			displaced += ys.Displaced
			losses += ys.DirectLosses + ys.IndirectLosses
		}
		assert.Equal(t, deaths, cell.TotalDeaths)
		assert.Equal(t, displaced, cell.TotalDisplaced)
		assert.InDelta(t, losses, cell.TotalLosses, 1e-6)
		assert.InDelta(t, losses/float64(len(cell.Years)), cell.AverageAnnualLoss, 1e-6)
	}
}

func TestRunWarningNeverNetNegative(t *testing.T) {
	result := runOnce(t, testConfig())
	for _, cell := range result.Cells {
		for _, ys := range cell.Years {
			for _, rec := range ys.Events {
				require.GreaterOrEqual(t, rec.NetDeaths, 0)
				require.LessOrEqual(t, rec.NetDeaths, rec.Damage.Casualties.Deaths)
				require.LessOrEqual(t, rec.Warning.LivesSaved, rec.Damage.Casualties.Deaths)
			}
		}
	}
}

func TestRunResilienceAndGovernanceBounded(t *testing.T) {
	result := runOnce(t, testConfig())
	for _, cell := range result.Cells {
		prev := 0.0
		for _, ys := range cell.Years {
			require.GreaterOrEqual(t, ys.ResilienceIndex, prev, "resilience must not regress")
			require.LessOrEqual(t, ys.ResilienceIndex, 1.0)
			require.GreaterOrEqual(t, ys.GovernanceScore, 0.2)
			require.LessOrEqual(t, ys.GovernanceScore, 0.9)
			prev = ys.ResilienceIndex
		}
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	cfg := testConfig()
	cfg.Run.EndYear = 2050
	provider := region.NewSyntheticProvider(int64(cfg.Run.Seed))
	runner, err := NewRunner(cfg, provider, discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Run(ctx)
	assert.Error(t, err)
}
