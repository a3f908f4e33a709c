package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/itmlabs/itmview/internal/config"
	"github.com/itmlabs/itmview/internal/store"
	"github.com/itmlabs/itmview/internal/view"
)

type Server struct {
	store   *store.Store
	views   *view.Builder
	config  *config.ServerConfig
	logger  *zap.Logger
	uploads *rate.Limiter
}

func NewServer(st *store.Store, views *view.Builder, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		store:   st,
		views:   views,
		config:  cfg,
		logger:  logger,
		uploads: rate.NewLimiter(rate.Every(cfg.UploadInterval), 1),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// currentSnapshot resolves the active snapshot or writes the no-report
// status. Absence of any input source is the only condition escalated to
// the caller.
func (s *Server) currentSnapshot(w http.ResponseWriter) (*store.Snapshot, bool) {
	snap, err := s.store.Current()
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "no report uploaded and no default report file found")
		return nil, false
	}
	return snap, true
}

// selectedExpirations reads the repeatable exp query parameter. No values
// means "no filter applied".
func selectedExpirations(r *http.Request) []string {
	return r.URL.Query()["exp"]
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{"status": "ok"}
	if snap, err := s.store.Current(); err == nil {
		resp["snapshot_id"] = snap.ID.String()
		resp["origin"] = snap.Origin
		resp["loaded_at"] = snap.LoadedAt
		resp["report_bytes"] = snap.Size
	} else {
		resp["status"] = "no_report"
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExpirations(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.currentSnapshot(w)
	if !ok {
		return
	}
	labels := snap.Analysis.Expirations()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"expirations": labels,
		"count":       len(labels),
	})
}

func (s *Server) handleTickers(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.currentSnapshot(w)
	if !ok {
		return
	}
	opts := s.views.Options(snap.Analysis, selectedExpirations(r))
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"tickers": opts,
		"count":   len(opts),
	})
}

func (s *Server) handlePuts(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.currentSnapshot(w)
	if !ok {
		return
	}

	key := chi.URLParam(r, "key")
	detail, err := s.views.Detail(snap.Analysis, key, selectedExpirations(r))
	if err != nil {
		if errors.Is(err, view.ErrUnknownTicker) {
			s.writeError(w, http.StatusNotFound, "no data for ticker key "+key)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCalls(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.currentSnapshot(w)
	if !ok {
		return
	}

	key := chi.URLParam(r, "key")
	narrative, err := s.views.Narrative(snap.Analysis, key)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "no call activity for ticker key "+key)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"key":       key,
		"narrative": narrative,
	})
}

// handleUpload replaces the current report with the request body. The body
// is plain UTF-8 text; each upload fully replaces the prior snapshot.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.uploads.Allow() {
		s.writeError(w, http.StatusTooManyRequests, "upload rate limit exceeded")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxReportBytes))
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, "report exceeds size limit")
		return
	}
	if len(body) == 0 {
		s.writeError(w, http.StatusBadRequest, "empty report body")
		return
	}

	origin := r.URL.Query().Get("filename")
	if origin == "" {
		origin = "upload"
	}

	snap := s.store.Replace(string(body), origin)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "uploaded",
		"snapshot_id": snap.ID.String(),
		"origin":      snap.Origin,
		"tickers":     len(snap.Analysis.Normal.Tickers) + len(snap.Analysis.Earnings.Tickers),
		"expirations": len(snap.Analysis.Expirations()),
	})
}
