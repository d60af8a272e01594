package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/deltarisk/internal/persistence"
	"github.com/talgya/deltarisk/internal/sim"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	result := &sim.Result{
		Seed: 7,
		Cells: []sim.CellResult{{
			Scenario: "intermediate",
			Region:   "northeast_haor",
			Years: []sim.YearState{{
				Scenario: "intermediate", Region: "northeast_haor", Year: 2030,
				Deaths: 40, DirectLosses: 9e8,
			}},
			TotalDeaths: 40,
			TotalLosses: 9e8,
		}},
	}
	runID, err := db.SaveRun(result, nil)
	require.NoError(t, err)

	return &Server{DB: db}, runID
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	limiter := NewRateLimiter(1000, time.Hour)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	switch path {
	case "/api/v1/runs":
		s.handleRuns(rec, req)
	default:
		s.handleRunRoutes(limiter)(rec, req)
	}
	return rec
}

func TestRunsEndpoint(t *testing.T) {
	s, runID := testServer(t)
	rec := get(t, s, "/api/v1/runs")
	require.Equal(t, http.StatusOK, rec.Code)

	var runs []persistence.RunSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
}

func TestCellsEndpoint(t *testing.T) {
	s, runID := testServer(t)
	rec := get(t, s, "/api/v1/run/"+runID+"/cells")
	require.Equal(t, http.StatusOK, rec.Code)

	var cells []persistence.CellSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cells))
	require.Len(t, cells, 1)
	assert.Equal(t, 40, cells[0].TotalDeaths)
}

func TestYearsEndpoint(t *testing.T) {
	s, runID := testServer(t)
	rec := get(t, s, "/api/v1/run/"+runID+"/years/intermediate/northeast_haor")
	require.Equal(t, http.StatusOK, rec.Code)

	var years []persistence.YearRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &years))
	require.Len(t, years, 1)
	assert.Equal(t, 2030, years[0].Year)
}

func TestYearsEndpointNotFound(t *testing.T) {
	s, runID := testServer(t)
	rec := get(t, s, "/api/v1/run/"+runID+"/years/high/atlantis")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRouteNotFound(t *testing.T) {
	s, runID := testServer(t)
	rec := get(t, s, "/api/v1/run/"+runID+"/bogus")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "limits are per IP")
	assert.Greater(t, rl.RetryAfter("10.0.0.1"), 0)
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	handler := RateLimitMiddleware(rl, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:9999"

	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
