package rest

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/application/usecase"
	"github.com/Abhaykauahal21/LoanFlow/pkg/auth"
)

// LoanHandler serves loan views, repayment schedules and the standalone
// EMI calculator.
type LoanHandler struct {
	query    *usecase.GetLoanUseCase
	schedule *usecase.GetLoanScheduleUseCase
	compute  *usecase.ComputeScheduleUseCase
}

// NewLoanHandler creates the handler.
func NewLoanHandler(
	query *usecase.GetLoanUseCase,
	schedule *usecase.GetLoanScheduleUseCase,
	compute *usecase.ComputeScheduleUseCase,
) *LoanHandler {
	return &LoanHandler{query: query, schedule: schedule, compute: compute}
}

// RegisterRoutes attaches loan routes to the given mux.
func (h *LoanHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/loans", h.handleList)
	mux.HandleFunc("GET /api/v1/loans/{id}", h.handleGet)
	mux.HandleFunc("GET /api/v1/loans/{id}/schedule", h.handleSchedule)
	mux.HandleFunc("GET /api/v1/loans/{id}/payments", h.handlePayments)
	mux.HandleFunc("POST /api/v1/schedule", h.handleCompute)
}

func (h *LoanHandler) handleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	resp, err := h.query.ByBorrower(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	loan, ok := h.loadOwnedLoan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	loan, ok := h.loadOwnedLoan(w, r)
	if !ok {
		return
	}

	resp, err := h.schedule.Execute(r.Context(), loan.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) handlePayments(w http.ResponseWriter, r *http.Request) {
	loan, ok := h.loadOwnedLoan(w, r)
	if !ok {
		return
	}

	resp, err := h.query.Payments(r.Context(), loan.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// loadOwnedLoan fetches the loan in the path and enforces that non-admin
// callers only see their own loans. Foreign loans answer 404 rather than
// 403 so loan IDs are not probeable.
func (h *LoanHandler) loadOwnedLoan(w http.ResponseWriter, r *http.Request) (dto.LoanResponse, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return dto.LoanResponse{}, false
	}

	loan, err := h.query.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return dto.LoanResponse{}, false
	}
	if loan.BorrowerID != claims.UserID && !claims.HasRole(auth.RoleAdmin) {
		writeError(w, http.StatusNotFound, "resource not found")
		return dto.LoanResponse{}, false
	}
	return loan, true
}

// computeScheduleRequest is the calculator payload. Rate and tenure are
// optional and fall back to the configured defaults; the start date is an
// optional YYYY-MM-DD string defaulting to today.
type computeScheduleRequest struct {
	Principal         decimal.Decimal  `json:"principal"`
	AnnualRatePercent *decimal.Decimal `json:"annual_rate_percent,omitempty"`
	TenureMonths      *int             `json:"tenure_months,omitempty"`
	StartDate         string           `json:"start_date,omitempty"`
}

func (h *LoanHandler) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req computeScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		var err error
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
	}

	resp, err := h.compute.Execute(r.Context(), usecase.ComputeScheduleRequest{
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualRatePercent,
		TenureMonths:      req.TenureMonths,
		StartDate:         startDate,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
