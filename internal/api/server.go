// Package api provides the HTTP API for inspecting archived projection runs.
// All endpoints are GET and read-only.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/talgya/deltarisk/internal/persistence"
)

// Server serves archived run data over HTTP.
type Server struct {
	DB   *persistence.DB
	Port int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// The year-series endpoint returns large payloads; cap its request rate.
	yearsLimiter := NewRateLimiter(600, time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/runs", s.handleRuns)
	mux.HandleFunc("/api/v1/run/", s.handleRunRoutes(yearsLimiter))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// handleRuns lists archived runs, newest first.
// GET /api/v1/runs
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	runs, err := s.DB.Runs()
	if err != nil {
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

// handleRunRoutes dispatches run detail endpoints:
// GET /api/v1/run/{id}/cells
// GET /api/v1/run/{id}/years/{scenario}/{region}
func (s *Server) handleRunRoutes(yearsLimiter *RateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		rest := strings.TrimPrefix(r.URL.Path, "/api/v1/run/")
		parts := strings.Split(rest, "/")

		switch {
		case len(parts) == 2 && parts[1] == "cells":
			cells, err := s.DB.Cells(parts[0])
			if err != nil {
				http.Error(w, "query failed", http.StatusInternalServerError)
				return
			}
			writeJSON(w, cells)

		case len(parts) == 4 && parts[1] == "years":
			RateLimitMiddleware(yearsLimiter, func(w http.ResponseWriter, r *http.Request) {
				years, err := s.DB.Years(parts[0], parts[2], parts[3])
				if err != nil {
					http.Error(w, "query failed", http.StatusInternalServerError)
					return
				}
				if len(years) == 0 {
					http.Error(w, "not found", http.StatusNotFound)
					return
				}
				writeJSON(w, years)
			})(w, r)

		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "error", err)
	}
}
