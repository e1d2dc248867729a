// Package api exposes the monitoring session over HTTP: current status,
// stored readings and episodes, and the runtime tuning surface.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/stridesense/gaitwatch/internal/config"
	"github.com/stridesense/gaitwatch/internal/monitoring"
	"github.com/stridesense/gaitwatch/internal/motion"
	"github.com/stridesense/gaitwatch/internal/store"
)

// Queries is the read side of the store the server needs.
type Queries interface {
	RecentTremorReadings(limit int) ([]store.TremorRow, error)
	RecentEpisodes(limit int) ([]store.EpisodeRow, error)
}

// Server serves the monitoring API for one detector session.
type Server struct {
	detector      *motion.Detector
	db            Queries
	burstInterval time.Duration
}

// NewServer builds a Server around a running session.
func NewServer(detector *motion.Detector, db Queries, burstInterval time.Duration) *Server {
	return &Server{
		detector:      detector,
		db:            db,
		burstInterval: burstInterval,
	}
}

// ServeMux returns the route table.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.showStatus)
	mux.HandleFunc("/api/params", s.handleParams)
	mux.HandleFunc("/api/tremors", s.listTremors)
	mux.HandleFunc("/api/episodes", s.listEpisodes)
	return mux
}

// LoggingMiddleware logs method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf("[%d] %s %s %vms",
			lrw.statusCode, r.Method, r.RequestURI,
			float64(time.Since(start).Nanoseconds())/1e6)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		monitoring.Logf("api: failed to encode response: %v", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) showStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSON(w, map[string]interface{}{
		"freeze_state": s.detector.State(),
		"sample_count": s.detector.SampleCount(),
	})
}

// handleParams reports (GET) or updates (POST) the runtime tuning. POST
// bodies are partial: only named fields change, and invalid combinations
// are rejected without touching the running detector.
func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, config.FromMotion(s.detector.Config(), s.burstInterval))

	case http.MethodPost:
		var update config.TuningConfig
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
			return
		}
		next := update.ApplyTo(s.detector.Config())
		if err := s.detector.ApplyTuning(next); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		monitoring.Logf("api: tuning updated")
		s.writeJSON(w, config.FromMotion(s.detector.Config(), s.burstInterval))

	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) listTremors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	limit, ok := parseLimit(r, 100)
	if !ok {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
		return
	}
	rows, err := s.db.RecentTremorReadings(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rows == nil {
		rows = []store.TremorRow{}
	}
	s.writeJSON(w, rows)
}

func (s *Server) listEpisodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	limit, ok := parseLimit(r, 100)
	if !ok {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
		return
	}
	rows, err := s.db.RecentEpisodes(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rows == nil {
		rows = []store.EpisodeRow{}
	}
	s.writeJSON(w, rows)
}

func parseLimit(r *http.Request, fallback int) (int, bool) {
	q := r.URL.Query().Get("limit")
	if q == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(q)
	if err != nil || n < 1 || n > 10000 {
		return 0, false
	}
	return n, true
}
