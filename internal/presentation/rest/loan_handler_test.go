package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/usecase"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/valueobject"
	"github.com/Abhaykauahal21/LoanFlow/pkg/auth"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockLoanRepo struct {
	findByIDFunc       func(ctx context.Context, id string) (model.Loan, error)
	findByBorrowerFunc func(ctx context.Context, borrowerID string) ([]model.Loan, error)
}

func (m *mockLoanRepo) Save(ctx context.Context, loan model.Loan) error { return nil }

func (m *mockLoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, port.ErrNotFound
}

func (m *mockLoanRepo) FindByApplicationID(ctx context.Context, applicationID string) (model.Loan, error) {
	return model.Loan{}, port.ErrNotFound
}

func (m *mockLoanRepo) FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.Loan, error) {
	if m.findByBorrowerFunc != nil {
		return m.findByBorrowerFunc(ctx, borrowerID)
	}
	return nil, nil
}

type mockPaymentRepo struct {
	findByLoanIDFunc func(ctx context.Context, loanID string) ([]model.Payment, error)
}

func (m *mockPaymentRepo) Save(ctx context.Context, p model.Payment) error { return nil }

func (m *mockPaymentRepo) FindByID(ctx context.Context, id string) (model.Payment, error) {
	return model.Payment{}, port.ErrNotFound
}

func (m *mockPaymentRepo) FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error) {
	if m.findByLoanIDFunc != nil {
		return m.findByLoanIDFunc(ctx, loanID)
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var handlerTestNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func testLoan(t *testing.T) model.Loan {
	t.Helper()
	return model.ReconstructLoan(
		"loan-1", "app-1", "user-1",
		dec(t, "100000"), "INR", dec(t, "12"), 12,
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		dec(t, "8884.88"), dec(t, "100000"), decimal.Zero,
		valueobject.LoanStatusActive,
		1, handlerTestNow, handlerTestNow,
	)
}

func newLoanMux(t *testing.T, loanRepo *mockLoanRepo, paymentRepo *mockPaymentRepo) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	query := usecase.NewGetLoanUseCase(loanRepo, paymentRepo)
	schedule := usecase.NewGetLoanScheduleUseCase(loanRepo, nil, logger, time.Hour)
	compute := usecase.NewComputeScheduleUseCase(logger, usecase.ScheduleDefaults{
		AnnualRatePercent: dec(t, "12"),
		TenureMonths:      12,
	})

	mux := http.NewServeMux()
	NewLoanHandler(query, schedule, compute).RegisterRoutes(mux)
	return mux
}

func authedRequest(method, target, body string, claims *auth.Claims) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if claims != nil {
		req = req.WithContext(auth.ContextWithClaims(req.Context(), claims))
	}
	return req
}

func customerClaims(userID string) *auth.Claims {
	return &auth.Claims{UserID: userID, Email: userID + "@example.com", Roles: []string{auth.RoleCustomer}}
}

func adminClaims() *auth.Claims {
	return &auth.Claims{UserID: "admin-1", Email: "admin@loanflow.local", Roles: []string{auth.RoleAdmin}}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestLoanHandler_Schedule(t *testing.T) {
	t.Run("returns the full schedule for the borrower", func(t *testing.T) {
		loan := testLoan(t)
		repo := &mockLoanRepo{
			findByIDFunc: func(_ context.Context, id string) (model.Loan, error) {
				require.Equal(t, "loan-1", id)
				return loan, nil
			},
		}
		mux := newLoanMux(t, repo, &mockPaymentRepo{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/loans/loan-1/schedule", "", customerClaims("user-1")))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			LoanID        string          `json:"loanId"`
			EMI           decimal.Decimal `json:"emi"`
			TotalInterest decimal.Decimal `json:"totalInterest"`
			TotalPayable  decimal.Decimal `json:"totalPayable"`
			Schedule      []struct {
				Month     int             `json:"month"`
				Date      string          `json:"date"`
				Principal decimal.Decimal `json:"principal"`
				Interest  decimal.Decimal `json:"interest"`
				Total     decimal.Decimal `json:"total"`
				Balance   decimal.Decimal `json:"balance"`
			} `json:"schedule"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Equal(t, "loan-1", resp.LoanID)
		assert.True(t, resp.EMI.Equal(dec(t, "8884.88")), "emi: %s", resp.EMI)
		require.Len(t, resp.Schedule, 12)

		first := resp.Schedule[0]
		assert.Equal(t, 1, first.Month)
		assert.Equal(t, "2024-02-15", first.Date)
		assert.True(t, first.Interest.Equal(dec(t, "1000")), "interest: %s", first.Interest)
		assert.True(t, first.Principal.Equal(dec(t, "7884.88")), "principal: %s", first.Principal)

		last := resp.Schedule[11]
		assert.Equal(t, "2025-01-15", last.Date)
		assert.True(t, last.Balance.IsZero(), "final balance: %s", last.Balance)
		assert.True(t, resp.TotalPayable.Equal(resp.TotalInterest.Add(dec(t, "100000"))))
	})

	t.Run("unknown loan answers 404", func(t *testing.T) {
		mux := newLoanMux(t, &mockLoanRepo{}, &mockPaymentRepo{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/loans/nope/schedule", "", customerClaims("user-1")))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("foreign loan answers 404 for non-admins", func(t *testing.T) {
		loan := testLoan(t)
		repo := &mockLoanRepo{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) { return loan, nil },
		}
		mux := newLoanMux(t, repo, &mockPaymentRepo{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/loans/loan-1/schedule", "", customerClaims("somebody-else")))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("admins may read any loan", func(t *testing.T) {
		loan := testLoan(t)
		repo := &mockLoanRepo{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) { return loan, nil },
		}
		mux := newLoanMux(t, repo, &mockPaymentRepo{})

		admin := &auth.Claims{UserID: "admin-1", Roles: []string{auth.RoleAdmin}}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/loans/loan-1/schedule", "", admin))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing claims answer 401", func(t *testing.T) {
		mux := newLoanMux(t, &mockLoanRepo{}, &mockPaymentRepo{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/loans/loan-1/schedule", "", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLoanHandler_Compute(t *testing.T) {
	t.Run("computes a schedule for explicit terms", func(t *testing.T) {
		mux := newLoanMux(t, &mockLoanRepo{}, &mockPaymentRepo{})

		body := `{"principal":"100000","annual_rate_percent":"12","tenure_months":12,"start_date":"2024-01-15"}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/schedule", body, customerClaims("user-1")))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			EMI      decimal.Decimal   `json:"emi"`
			Schedule []json.RawMessage `json:"schedule"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.EMI.Equal(dec(t, "8884.88")), "emi: %s", resp.EMI)
		assert.Len(t, resp.Schedule, 12)
	})

	t.Run("falls back to default rate and tenure", func(t *testing.T) {
		mux := newLoanMux(t, &mockLoanRepo{}, &mockPaymentRepo{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/schedule", `{"principal":"100000"}`, customerClaims("user-1")))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			EMI      decimal.Decimal   `json:"emi"`
			Schedule []json.RawMessage `json:"schedule"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.EMI.Equal(dec(t, "8884.88")), "emi: %s", resp.EMI)
		assert.Len(t, resp.Schedule, 12)
	})

	t.Run("rejects non-positive principal", func(t *testing.T) {
		mux := newLoanMux(t, &mockLoanRepo{}, &mockPaymentRepo{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/schedule", `{"principal":"0"}`, customerClaims("user-1")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a malformed start date", func(t *testing.T) {
		mux := newLoanMux(t, &mockLoanRepo{}, &mockPaymentRepo{})

		body := `{"principal":"100000","start_date":"15-01-2024"}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/schedule", body, customerClaims("user-1")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		mux := newLoanMux(t, &mockLoanRepo{}, &mockPaymentRepo{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/schedule", `{"principal":`, customerClaims("user-1")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoanHandler_List(t *testing.T) {
	t.Run("lists the caller's loans", func(t *testing.T) {
		loan := testLoan(t)
		repo := &mockLoanRepo{
			findByBorrowerFunc: func(_ context.Context, borrowerID string) ([]model.Loan, error) {
				require.Equal(t, "user-1", borrowerID)
				return []model.Loan{loan}, nil
			},
		}
		mux := newLoanMux(t, repo, &mockPaymentRepo{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/loans", "", customerClaims("user-1")))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp []struct {
			ID        string `json:"id"`
			StartDate string `json:"start_date"`
			Status    string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "loan-1", resp[0].ID)
		assert.Equal(t, "2024-01-15", resp[0].StartDate)
		assert.Equal(t, "ACTIVE", resp[0].Status)
	})
}
