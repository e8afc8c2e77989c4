package rest

import (
	"net/http"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/application/usecase"
	"github.com/Abhaykauahal21/LoanFlow/pkg/auth"
)

// ApplicationHandler serves the loan application lifecycle: submission by
// applicants and the review queue for admins.
type ApplicationHandler struct {
	submit   *usecase.SubmitLoanApplicationUseCase
	review   *usecase.ReviewLoanApplicationUseCase
	disburse *usecase.DisburseLoanUseCase
	query    *usecase.GetApplicationUseCase
}

// NewApplicationHandler creates the handler.
func NewApplicationHandler(
	submit *usecase.SubmitLoanApplicationUseCase,
	review *usecase.ReviewLoanApplicationUseCase,
	disburse *usecase.DisburseLoanUseCase,
	query *usecase.GetApplicationUseCase,
) *ApplicationHandler {
	return &ApplicationHandler{
		submit:   submit,
		review:   review,
		disburse: disburse,
		query:    query,
	}
}

// RegisterRoutes attaches application routes to the given mux.
func (h *ApplicationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/applications", h.handleSubmit)
	mux.HandleFunc("GET /api/v1/applications", h.handleList)
	mux.HandleFunc("GET /api/v1/applications/{id}", h.handleGet)
	mux.Handle("POST /api/v1/applications/{id}/approve", auth.RequireRole(auth.RoleAdmin, http.HandlerFunc(h.handleApprove)))
	mux.Handle("POST /api/v1/applications/{id}/reject", auth.RequireRole(auth.RoleAdmin, http.HandlerFunc(h.handleReject)))
	mux.Handle("POST /api/v1/applications/{id}/disburse", auth.RequireRole(auth.RoleAdmin, http.HandlerFunc(h.handleDisburse)))
}

func (h *ApplicationHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.SubmitApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	// The applicant is always the authenticated caller.
	req.ApplicantID = claims.UserID

	resp, err := h.submit.Execute(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleList returns the caller's own applications. Admins may instead
// request the review queue with ?status=PENDING (or any other state).
func (h *ApplicationHandler) handleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		if !claims.HasRole(auth.RoleAdmin) {
			writeError(w, http.StatusForbidden, "admin role required")
			return
		}
		resp, err := h.query.ByStatus(r.Context(), status)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp, err := h.query.ByApplicant(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ApplicationHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	resp, err := h.query.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	// Non-admins only see their own applications; respond as if absent.
	if resp.ApplicantID != claims.UserID && !claims.HasRole(auth.RoleAdmin) {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ApplicationHandler) handleApprove(w http.ResponseWriter, r *http.Request) {
	var req dto.ApproveApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ApplicationID = r.PathValue("id")

	resp, err := h.review.Approve(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ApplicationHandler) handleReject(w http.ResponseWriter, r *http.Request) {
	var req dto.RejectApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ApplicationID = r.PathValue("id")

	resp, err := h.review.Reject(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ApplicationHandler) handleDisburse(w http.ResponseWriter, r *http.Request) {
	var req dto.DisburseLoanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ApplicationID = r.PathValue("id")

	resp, err := h.disburse.Execute(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
