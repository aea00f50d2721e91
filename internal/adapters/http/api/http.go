// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/dataatlas/internal/domain/account"
	"github.com/okian/dataatlas/internal/domain/search"
	"github.com/okian/dataatlas/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	account.Authenticator
	search.Searcher
}

// Server wires HTTP routes for the business API.
type Server struct {
	logger          logger.Logger
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	userHandler     *ActionHandler
	passwordHandler *ActionHandler
	searchHandler   *SearchHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := newOptions(opts)
	return &Server{
		logger:          o.logger,
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		userHandler:     NewActionHandler(NewUserDispatcher(deps, o.logger), o.maxBodyBytes),
		passwordHandler: NewActionHandler(NewPasswordDispatcher(deps, o.logger), o.maxBodyBytes),
		searchHandler:   NewSearchHandler(deps, o.maxBodyBytes, o.logger),
	}
}

// Register attaches all HTTP routes to mux. Business routes are exact paths
// and accept POST only; anything unmatched gets a JSON 404.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	post := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return MetricsMiddleware(RequestID(RequirePOST(s.logger, h)), endpoint)
	}

	mux.HandleFunc("/user", post(s.userHandler.HandleAction, "user"))
	mux.HandleFunc("/password", post(s.passwordHandler.HandleAction, "password"))
	mux.HandleFunc("/users/search", post(s.searchHandler.HandleSearch, "search"))

	mux.HandleFunc("/healthz", MetricsMiddleware(RequestID(s.healthHandler.HandleHealth), "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(RequestID(s.statsHandler.HandleStats), "stats"))

	mux.HandleFunc("/", MetricsMiddleware(RequestID(handleNotFound), "not_found"))
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeBodyError maps a ParseBody failure to its response.
func writeBodyError(w http.ResponseWriter, r *http.Request, l logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		l.Warn(r.Context(), "request body too large", logger.String("path", r.URL.Path), logger.Error(err))
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, ErrMalformedBody):
		l.Warn(r.Context(), "malformed request body", logger.String("path", r.URL.Path), logger.Error(err))
		writeError(w, http.StatusBadRequest, "Malformed JSON body")
	default:
		l.Error(r.Context(), "reading request body", logger.String("path", r.URL.Path), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "")
	}
}
