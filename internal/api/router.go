package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every endpoint, the health check and the metrics handler.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/members", h.CreateMember).Methods(http.MethodPost)
	apiV1.HandleFunc("/members", h.ListMembers).Methods(http.MethodGet)
	apiV1.HandleFunc("/members/{id}", h.GetMember).Methods(http.MethodGet)
	apiV1.HandleFunc("/accounts", h.CreateAccount).Methods(http.MethodPost)
	apiV1.HandleFunc("/accounts", h.ListAccounts).Methods(http.MethodGet)
	apiV1.HandleFunc("/accounts/{number}", h.GetAccount).Methods(http.MethodGet)
	apiV1.HandleFunc("/accounts/{number}/deposits", h.CreateDeposit).Methods(http.MethodPost)
	apiV1.HandleFunc("/accounts/{number}/withdrawals", h.CreateWithdrawal).Methods(http.MethodPost)
	apiV1.HandleFunc("/interest-runs", h.RunInterest).Methods(http.MethodPost)
	apiV1.HandleFunc("/reports/summary", h.GetSummary).Methods(http.MethodGet)
	return r
}
