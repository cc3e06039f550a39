// Package server exposes the connection state over HTTP: a status endpoint,
// the cluster selection surface driven by query parameters, and metrics.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solfront/solana-cluster-provider/internal/cluster"
	"github.com/solfront/solana-cluster-provider/internal/constants"
	"github.com/solfront/solana-cluster-provider/internal/provider"
	"github.com/solfront/solana-cluster-provider/internal/settings"
)

func logger() *log.Logger { return log.Default().WithPrefix("server") }

type Server struct {
	provider *provider.Provider
	settings *settings.Store
	router   *mux.Router

	// connectCtx outlives individual requests so an in-flight attempt is not
	// torn down when the request that started it returns.
	connectCtx context.Context
}

func New(ctx context.Context, p *provider.Provider, store *settings.Store) *Server {
	s := &Server{
		provider:   p,
		settings:   store,
		router:     mux.NewRouter(),
		connectCtx: ctx,
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	s.router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/cluster", s.handleSetCluster).Methods(http.MethodPost)
	s.router.HandleFunc("/cluster/reconnect", s.handleReconnect).Methods(http.MethodPost)
	s.router.HandleFunc("/dialog/show", s.handleDialog(true)).Methods(http.MethodPost)
	s.router.HandleFunc("/dialog/hide", s.handleDialog(false)).Methods(http.MethodPost)
	s.router.HandleFunc("/settings/custom-url-allowed", s.handleCustomURLAllowed).Methods(http.MethodPut)
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

type statusResponse struct {
	Status      string                `json:"status"`
	Cluster     string                `json:"cluster"`
	DisplayName string                `json:"displayName"`
	Endpoint    string                `json:"endpoint"`
	CustomURL   string                `json:"customUrl,omitempty"`
	Query       string                `json:"query"`
	DialogOpen  bool                  `json:"dialogOpen"`
	ClusterInfo *provider.ClusterInfo `json:"clusterInfo,omitempty"`
}

func (s *Server) status() statusResponse {
	state := s.provider.State()
	return statusResponse{
		Status:      state.Status.String(),
		Cluster:     state.Cluster.String(),
		DisplayName: state.Cluster.DisplayName(),
		Endpoint:    s.provider.Endpoint(),
		CustomURL:   state.CustomURL,
		Query:       cluster.EncodeQuery(state.Cluster, state.CustomURL).Encode(),
		DialogOpen:  s.provider.DialogOpen(),
		ClusterInfo: state.Info,
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.status())
}

// handleSetCluster reads the selection from the cluster/customUrl query
// parameters. Custom endpoints are honored only when the persisted gate
// allows them; gated requests fall back to the default cluster.
func (s *Server) handleSetCluster(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	if !s.settings.CustomURLAllowed() {
		if values.Has(constants.QueryParamCustomURL) || values.Get(constants.QueryParamCluster) == constants.ClusterCustom {
			logger().Warn("custom endpoint requested but custom URLs are disabled")
			values.Del(constants.QueryParamCustomURL)
			values.Del(constants.QueryParamCluster)
		}
	}

	c, customURL := cluster.ParseQuery(values)

	if c.IsCustom() {
		s.provider.SetCustomEndpoint(s.connectCtx, customURL)
	} else {
		s.provider.SetCluster(s.connectCtx, c)
	}

	if err := s.settings.SaveSelection(c.String(), customURL); err != nil {
		logger().Error("failed to persist selection", "error", err)
	}

	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleReconnect(w http.ResponseWriter, r *http.Request) {
	s.provider.Reconnect(s.connectCtx)
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleDialog(show bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if show {
			s.provider.ShowDialog()
		} else {
			s.provider.HideDialog()
		}
		writeJSON(w, http.StatusOK, s.status())
	}
}

func (s *Server) handleCustomURLAllowed(w http.ResponseWriter, r *http.Request) {
	allowed := r.URL.Query().Get("allowed") == "true"
	if err := s.settings.SetCustomURLAllowed(allowed); err != nil {
		http.Error(w, "failed to persist setting", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"customUrlAllowed": allowed})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger().Error("failed to encode response", "error", err)
	}
}
