package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"coopops/internal/coop"
	"coopops/internal/report"
)

// Metrics
var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coopops_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coopops_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "endpoint"})
)

type Handler struct {
	coop *coop.Cooperative
}

func NewHandler(c *coop.Cooperative) *Handler {
	return &Handler{coop: c}
}

// Request payloads

type createMemberRequest struct {
	FullName string `json:"full_name"`
	IDNumber string `json:"id_number"`
}

type createAccountRequest struct {
	MemberID       string          `json:"member_id"`
	AccountNumber  string          `json:"account_number"`
	Kind           string          `json:"kind"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Response views

type memberView struct {
	FullName     string          `json:"full_name"`
	IDNumber     string          `json:"id_number"`
	AccountCount int             `json:"account_count"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

type accountView struct {
	Number       string          `json:"number"`
	Kind         string          `json:"kind"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interest_rate"`
}

func viewMember(m *coop.Member) memberView {
	return memberView{
		FullName:     m.FullName(),
		IDNumber:     m.IDNumber(),
		AccountCount: m.AccountCount(),
		TotalBalance: m.TotalBalance(),
	}
}

func viewAccount(a coop.Account) accountView {
	v := accountView{Number: a.Number(), Kind: "base", Balance: a.Balance()}
	if savings, ok := a.(*coop.SavingsAccount); ok {
		v.Kind = "savings"
		v.InterestRate = savings.InterestRate()
	}
	return v
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"}, "GET", "/health")
}

func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", "/members"))
	defer timer.ObserveDuration()

	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON", "POST", "/members")
		return
	}

	member, err := coop.NewMember(req.FullName, req.IDNumber)
	if err != nil {
		h.respondDomainError(w, err, "POST", "/members")
		return
	}
	if err := h.coop.RegisterMember(member); err != nil {
		h.respondDomainError(w, err, "POST", "/members")
		return
	}
	h.respondJSON(w, http.StatusCreated, viewMember(member), "POST", "/members")
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members := h.coop.Members()
	views := make([]memberView, 0, len(members))
	for _, member := range members {
		views = append(views, viewMember(member))
	}
	h.respondJSON(w, http.StatusOK, views, "GET", "/members")
}

func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	member, ok := h.coop.FindMemberByID(id)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Member not found", "GET", "/members/{id}")
		return
	}
	h.respondJSON(w, http.StatusOK, viewMember(member), "GET", "/members/{id}")
}

// CreateAccount builds the requested account variant, attaches it to the
// owning member and registers it with the cooperative. The two registrations
// are distinct uniqueness domains and are not transactional: a member-scope
// success may still be followed by a cooperative-scope rejection.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", "/accounts"))
	defer timer.ObserveDuration()

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON", "POST", "/accounts")
		return
	}

	member, ok := h.coop.FindMemberByID(req.MemberID)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Member not found", "POST", "/accounts")
		return
	}

	var account coop.Account
	var err error
	switch req.Kind {
	case "savings":
		account, err = coop.NewSavingsAccount(req.AccountNumber, req.InitialBalance, req.InterestRate)
	case "base", "":
		account, err = coop.NewBaseAccount(req.AccountNumber, req.InitialBalance)
	default:
		h.respondError(w, http.StatusUnprocessableEntity, "Unknown account kind", "POST", "/accounts")
		return
	}
	if err != nil {
		h.respondDomainError(w, err, "POST", "/accounts")
		return
	}

	if err := member.AddAccount(account); err != nil {
		h.respondDomainError(w, err, "POST", "/accounts")
		return
	}
	if err := h.coop.RegisterAccount(account); err != nil {
		h.respondDomainError(w, err, "POST", "/accounts")
		return
	}
	h.respondJSON(w, http.StatusCreated, viewAccount(account), "POST", "/accounts")
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	var accounts []coop.Account
	if raw := r.URL.Query().Get("min_balance"); raw != "" {
		threshold, err := decimal.NewFromString(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid min_balance", "GET", "/accounts")
			return
		}
		accounts = h.coop.AccountsAboveBalance(threshold)
	} else {
		accounts = h.coop.Accounts()
	}
	views := make([]accountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, viewAccount(account))
	}
	h.respondJSON(w, http.StatusOK, views, "GET", "/accounts")
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	account, ok := h.coop.FindAccountByNumber(number)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Account not found", "GET", "/accounts/{number}")
		return
	}
	h.respondJSON(w, http.StatusOK, viewAccount(account), "GET", "/accounts/{number}")
}

func (h *Handler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", "/accounts/{number}/deposits"))
	defer timer.ObserveDuration()
	h.executeTransaction(w, r, "POST", "/accounts/{number}/deposits",
		func(account coop.Account, amount decimal.Decimal) (coop.Transaction, error) {
			return coop.NewDeposit(account, amount)
		})
}

func (h *Handler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", "/accounts/{number}/withdrawals"))
	defer timer.ObserveDuration()
	h.executeTransaction(w, r, "POST", "/accounts/{number}/withdrawals",
		func(account coop.Account, amount decimal.Decimal) (coop.Transaction, error) {
			return coop.NewWithdrawal(account, amount)
		})
}

func (h *Handler) executeTransaction(w http.ResponseWriter, r *http.Request, method, endpoint string,
	build func(coop.Account, decimal.Decimal) (coop.Transaction, error)) {
	number := mux.Vars(r)["number"]
	account, ok := h.coop.FindAccountByNumber(number)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Account not found", method, endpoint)
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON", method, endpoint)
		return
	}

	tx, err := build(account, req.Amount)
	if err != nil {
		h.respondDomainError(w, err, method, endpoint)
		return
	}
	if err := tx.Execute(); err != nil {
		h.respondDomainError(w, err, method, endpoint)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"transaction_id": tx.ID(),
		"type":           tx.Type(),
		"amount":         tx.Amount(),
		"account":        viewAccount(account),
	}, method, endpoint)
}

func (h *Handler) RunInterest(w http.ResponseWriter, r *http.Request) {
	affected := h.coop.ApplyInterestToSavings()
	h.respondJSON(w, http.StatusOK, map[string]int{"accounts_affected": affected}, "POST", "/interest-runs")
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, report.Summarize(h.coop), "GET", "/reports/summary")
}

// Helpers

func (h *Handler) respondDomainError(w http.ResponseWriter, err error, method, endpoint string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, coop.ErrDuplicateMember), errors.Is(err, coop.ErrDuplicateAccount):
		status = http.StatusConflict
	case errors.Is(err, coop.ErrInvalidArgument), errors.Is(err, coop.ErrInvalidAmount):
		status = http.StatusUnprocessableEntity
	case coop.IsRejection(err):
		status = http.StatusUnprocessableEntity
	}
	h.respondError(w, status, err.Error(), method, endpoint)
}

func (h *Handler) respondJSON(w http.ResponseWriter, code int, payload interface{}, method, endpoint string) {
	httpReqTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) respondError(w http.ResponseWriter, code int, msg, method, endpoint string) {
	h.respondJSON(w, code, map[string]string{"error": msg}, method, endpoint)
}
