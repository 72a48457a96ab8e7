// Package server exposes the portfolio directory over a REST/JSON surface.
//
// Routing, payload validation, and error-to-status translation all live
// here; the domain rules live in the portfolio package. Handlers validate
// first and dispatch second, and every failure is reported as a JSON body
// {"error": "..."} with the matching status code — no error is fatal to the
// process.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bhaveshvasandani/PortfolioMgmt/internal/portfolio"
	"github.com/bhaveshvasandani/PortfolioMgmt/internal/store"
)

// Server wires the directory, the snapshot store, and the HTTP surface.
type Server struct {
	dir   *portfolio.Directory
	store store.Driver
	log   zerolog.Logger
}

// New creates a Server around an existing directory. The store driver
// receives best-effort snapshots after each mutation; pass store.Nop{} when
// no cache backend is configured.
func New(dir *portfolio.Directory, drv store.Driver, log zerolog.Logger) *Server {
	return &Server{dir: dir, store: drv, log: log}
}

// Router builds the full route table. The nav route is registered ahead of
// the numeric assetID wildcard so /portfolios/{user}/nav is never captured
// as an asset lookup.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/portfolios", s.handleListPortfolios).Methods(http.MethodGet)
	api.HandleFunc("/portfolios", s.handleCreateUser).Methods(http.MethodPost)
	api.HandleFunc("/portfolios/{user}", s.handleListAssets).Methods(http.MethodGet)
	api.HandleFunc("/portfolios/{user}", s.handleAddAsset).Methods(http.MethodPost)
	api.HandleFunc("/portfolios/{user}", s.handleDeleteUser).Methods(http.MethodDelete)
	api.HandleFunc("/portfolios/{user}/nav", s.handleNAV).Methods(http.MethodGet)
	api.HandleFunc("/portfolios/{user}/{assetID:[0-9]+}", s.handleGetAsset).Methods(http.MethodGet)
	api.HandleFunc("/portfolios/{user}/{assetID:[0-9]+}", s.handleUpdateAsset).Methods(http.MethodPut)
	api.HandleFunc("/portfolios/{user}/{assetID:[0-9]+}", s.handleDeleteAsset).Methods(http.MethodDelete)

	return s.withRequestLog(r)
}

// persist ships the user's current snapshot to the store driver. Failures
// are logged and swallowed: snapshots are best-effort and never gate a
// request.
func (s *Server) persist(user string) {
	snap, err := s.dir.Snapshot(user)
	if err != nil {
		return // user deleted between mutation and snapshot
	}
	if err := s.store.SaveSnapshot(snap); err != nil {
		s.log.Warn().Err(err).Str("user", user).Msg("snapshot write failed")
	}
}
