// Package httpapi exposes the layout pipeline over HTTP: POST a graph,
// get back its laid-out counterpart, optionally persisted under a
// name for later retrieval. Grounded on matzehuels-stacktower's
// go.mod, which carries go-chi/chi/v5 as a dependency without ever
// routing through it (its CLI is the only surface); this package is
// where that router finally gets exercised, using chi's usual
// middleware-stack-then-routes shape.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	layered "github.com/graphlayout/layered"
	"github.com/graphlayout/layered/config"
	"github.com/graphlayout/layered/core"
	"github.com/graphlayout/layered/internal/cache"
	"github.com/graphlayout/layered/internal/store"
)

// Server holds the dependencies every route handler needs. store may
// be nil, in which case the named-graph routes respond 503.
type Server struct {
	cfg    config.Config
	logger *log.Logger
	cache  cache.Cache
	store  *store.Store
}

// New builds an http.Handler serving the layout API. st may be nil to
// disable the named-graph persistence routes.
func New(cfg config.Config, logger *log.Logger, c cache.Cache, st *store.Store) http.Handler {
	s := &Server{cfg: cfg, logger: logger, cache: c, store: st}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealthz)
	r.Post("/v1/layouts", s.handleLayout)
	r.Post("/graphs/{name}", s.handleSaveGraph)
	r.Get("/graphs/{name}", s.handleGetGraph)

	return r
}

type layoutRequest struct {
	Graph  core.InputGraph `json:"graph"`
	Config *config.Config  `json:"config,omitempty"`
}

type layoutResponse struct {
	ID     string            `json:"id"`
	Cached bool              `json:"cached"`
	Graph  *core.OutputGraph `json:"graph"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}

	cfg := s.cfg
	if req.Config != nil {
		cfg = *req.Config
	}
	normalized, err := cfg.Normalize()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cache.Key(&req.Graph, normalized)
	if cached, ok := s.cache.Get(r.Context(), key); ok {
		writeJSON(w, http.StatusOK, layoutResponse{ID: uuid.NewString(), Cached: true, Graph: cached})
		return
	}

	out, err := layered.Run(&req.Graph, normalized, s.logger)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.cache.Set(r.Context(), key, out)
	writeJSON(w, http.StatusOK, layoutResponse{ID: uuid.NewString(), Cached: false, Graph: out})
}

type saveGraphRequest struct {
	Graph  core.InputGraph `json:"graph"`
	Config *config.Config  `json:"config,omitempty"`
}

type saveGraphResponse struct {
	Name   string            `json:"name"`
	Cached bool              `json:"cached"`
	Graph  *core.OutputGraph `json:"graph"`
}

// handleSaveGraph computes (or reuses a cached) layout for the posted
// graph and stores it under the name from the URL, overwriting any
// record already saved under that name.
func (s *Server) handleSaveGraph(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	name := chi.URLParam(r, "name")

	var req saveGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}

	cfg := s.cfg
	if req.Config != nil {
		cfg = *req.Config
	}
	normalized, err := cfg.Normalize()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cache.Key(&req.Graph, normalized)
	out, cached := s.cache.Get(r.Context(), key)
	if !cached {
		out, err = layered.Run(&req.Graph, normalized, s.logger)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.cache.Set(r.Context(), key, out)
	}

	if err := s.store.SaveNamed(r.Context(), name, req.Graph, out); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, saveGraphResponse{Name: name, Cached: cached, Graph: out})
}

// handleGetGraph fetches the record stored under the URL's name.
func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	name := chi.URLParam(r, "name")

	rec, err := s.store.Get(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "no graph named "+name)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
