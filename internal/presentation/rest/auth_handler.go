package rest

import (
	"net/http"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/application/usecase"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	register *usecase.RegisterUserUseCase
	login    *usecase.LoginUserUseCase
}

// NewAuthHandler creates the handler.
func NewAuthHandler(register *usecase.RegisterUserUseCase, login *usecase.LoginUserUseCase) *AuthHandler {
	return &AuthHandler{register: register, login: login}
}

// RegisterRoutes attaches auth routes to the given mux.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/auth/register", h.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.register.Execute(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.login.Execute(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
