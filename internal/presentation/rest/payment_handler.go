package rest

import (
	"net/http"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/application/usecase"
	"github.com/Abhaykauahal21/LoanFlow/pkg/auth"
)

// PaymentHandler serves repayment registration and settlement.
type PaymentHandler struct {
	record *usecase.RecordPaymentUseCase
	settle *usecase.SettlePaymentUseCase
}

// NewPaymentHandler creates the handler.
func NewPaymentHandler(record *usecase.RecordPaymentUseCase, settle *usecase.SettlePaymentUseCase) *PaymentHandler {
	return &PaymentHandler{record: record, settle: settle}
}

// RegisterRoutes attaches payment routes to the given mux.
func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/payments", h.handleRecord)
	mux.Handle("POST /api/v1/payments/{id}/settle", auth.RequireRole(auth.RoleAdmin, http.HandlerFunc(h.handleSettle)))
}

func (h *PaymentHandler) handleRecord(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.RecordPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	// The payer is always the authenticated caller.
	req.PayerID = claims.UserID

	resp, err := h.record.Execute(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *PaymentHandler) handleSettle(w http.ResponseWriter, r *http.Request) {
	var req dto.SettlePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.PaymentID = r.PathValue("id")

	resp, err := h.settle.Execute(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
