package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/usecase"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
)

func newPaymentMux(t *testing.T, loanRepo *mockLoanRepo, paymentRepo *mockPaymentRepo) *http.ServeMux {
	t.Helper()
	publisher := &mockPublisher{}
	record := usecase.NewRecordPaymentUseCase(loanRepo, paymentRepo, publisher)
	settle := usecase.NewSettlePaymentUseCase(loanRepo, paymentRepo, publisher)

	mux := http.NewServeMux()
	NewPaymentHandler(record, settle).RegisterRoutes(mux)
	return mux
}

func TestPaymentHandler_Record(t *testing.T) {
	t.Run("records a pending payment for the caller", func(t *testing.T) {
		loan := testLoan(t)
		loanRepo := &mockLoanRepo{
			findByIDFunc: func(_ context.Context, id string) (model.Loan, error) {
				require.Equal(t, "loan-1", id)
				return loan, nil
			},
		}
		mux := newPaymentMux(t, loanRepo, &mockPaymentRepo{})

		body := `{"loan_id":"loan-1","payer_id":"spoofed","amount":"8884.88","payment_method":"UPI"}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/payments", body, customerClaims("user-1")))

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			PayerID  string `json:"payer_id"`
			Currency string `json:"currency"`
			Status   string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "user-1", resp.PayerID)
		assert.Equal(t, "INR", resp.Currency)
		assert.Equal(t, "PENDING", resp.Status)
	})

	t.Run("currency mismatch answers 400", func(t *testing.T) {
		loan := testLoan(t)
		loanRepo := &mockLoanRepo{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) { return loan, nil },
		}
		mux := newPaymentMux(t, loanRepo, &mockPaymentRepo{})

		body := `{"loan_id":"loan-1","amount":"100","currency":"USD","payment_method":"UPI"}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/payments", body, customerClaims("user-1")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown loan answers 404", func(t *testing.T) {
		mux := newPaymentMux(t, &mockLoanRepo{}, &mockPaymentRepo{})

		body := `{"loan_id":"nope","amount":"100","payment_method":"UPI"}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/payments", body, customerClaims("user-1")))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing claims answer 401", func(t *testing.T) {
		mux := newPaymentMux(t, &mockLoanRepo{}, &mockPaymentRepo{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/payments", `{}`, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPaymentHandler_Settle(t *testing.T) {
	t.Run("settlement requires the admin role", func(t *testing.T) {
		mux := newPaymentMux(t, &mockLoanRepo{}, &mockPaymentRepo{})

		body := `{"succeeded":true}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/payments/pay-1/settle", body, customerClaims("user-1")))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
