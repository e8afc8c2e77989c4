package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/usecase"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/event"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/service"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/valueobject"
)

type mockAppRepo struct {
	saved        []model.LoanApplication
	findByIDFunc func(ctx context.Context, id string) (model.LoanApplication, error)
}

func (m *mockAppRepo) Save(ctx context.Context, app model.LoanApplication) error {
	m.saved = append(m.saved, app)
	return nil
}

func (m *mockAppRepo) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.LoanApplication{}, port.ErrNotFound
}

func (m *mockAppRepo) FindByApplicantID(ctx context.Context, applicantID string) ([]model.LoanApplication, error) {
	return nil, nil
}

func (m *mockAppRepo) FindByStatus(ctx context.Context, status string) ([]model.LoanApplication, error) {
	return nil, nil
}

type mockPublisher struct {
	published []event.DomainEvent
}

func (m *mockPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	m.published = append(m.published, events...)
	return nil
}

func newApplicationMux(t *testing.T, appRepo *mockAppRepo, publisher *mockPublisher) *http.ServeMux {
	t.Helper()
	submit := usecase.NewSubmitLoanApplicationUseCase(
		appRepo, publisher, service.NewUnderwritingEngine(), decimal.NewFromInt(12),
	)
	review := usecase.NewReviewLoanApplicationUseCase(appRepo, publisher)
	query := usecase.NewGetApplicationUseCase(appRepo)

	mux := http.NewServeMux()
	NewApplicationHandler(submit, review, nil, query).RegisterRoutes(mux)
	return mux
}

func pendingApp(t *testing.T, applicantID string) model.LoanApplication {
	t.Helper()
	return model.ReconstructLoanApplication(
		"app-1", applicantID,
		dec(t, "100000"), "INR", 12, dec(t, "45000"), nil,
		valueobject.ApplicationStatusPending,
		decimal.Zero, "",
		1, handlerTestNow, handlerTestNow,
	)
}

func TestApplicationHandler_Submit(t *testing.T) {
	t.Run("applicant is taken from the authenticated caller", func(t *testing.T) {
		appRepo := &mockAppRepo{}
		mux := newApplicationMux(t, appRepo, &mockPublisher{})

		body := `{"applicant_id":"spoofed","requested_amount":"100000","currency":"INR","tenure_months":12,"monthly_income":"45000"}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/applications", body, customerClaims("user-1")))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, appRepo.saved, 1)
		assert.Equal(t, "user-1", appRepo.saved[0].ApplicantID())

		var resp struct {
			Status    string `json:"status"`
			Prescreen string `json:"prescreen"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, service.RecommendApprove, resp.Prescreen)
	})

	t.Run("invalid terms answer 400", func(t *testing.T) {
		mux := newApplicationMux(t, &mockAppRepo{}, &mockPublisher{})

		body := `{"requested_amount":"100000","currency":"INR","tenure_months":0,"monthly_income":"45000"}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/applications", body, customerClaims("user-1")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing claims answer 401", func(t *testing.T) {
		mux := newApplicationMux(t, &mockAppRepo{}, &mockPublisher{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/applications", `{}`, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestApplicationHandler_Get(t *testing.T) {
	t.Run("foreign application answers 404 for non-admins", func(t *testing.T) {
		appRepo := &mockAppRepo{
			findByIDFunc: func(_ context.Context, _ string) (model.LoanApplication, error) {
				return pendingApp(t, "user-1"), nil
			},
		}
		mux := newApplicationMux(t, appRepo, &mockPublisher{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/applications/app-1", "", customerClaims("somebody-else")))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("status queue requires the admin role", func(t *testing.T) {
		mux := newApplicationMux(t, &mockAppRepo{}, &mockPublisher{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/applications?status=PENDING", "", customerClaims("user-1")))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestApplicationHandler_Approve(t *testing.T) {
	t.Run("approves a pending application", func(t *testing.T) {
		appRepo := &mockAppRepo{
			findByIDFunc: func(_ context.Context, id string) (model.LoanApplication, error) {
				require.Equal(t, "app-1", id)
				return pendingApp(t, "user-1"), nil
			},
		}
		publisher := &mockPublisher{}
		mux := newApplicationMux(t, appRepo, publisher)

		body := `{"annual_rate_percent":"10.5","admin_note":"income verified"}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/applications/app-1/approve", body, adminClaims()))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Status            string          `json:"status"`
			AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "APPROVED", resp.Status)
		assert.True(t, resp.AnnualRatePercent.Equal(dec(t, "10.5")))
		assert.NotEmpty(t, publisher.published)
	})

	t.Run("approving a disbursed application answers 409", func(t *testing.T) {
		disbursed := model.ReconstructLoanApplication(
			"app-1", "user-1",
			dec(t, "100000"), "INR", 12, dec(t, "45000"), nil,
			valueobject.ApplicationStatusDisbursed,
			dec(t, "10.5"), "",
			3, handlerTestNow, handlerTestNow,
		)
		appRepo := &mockAppRepo{
			findByIDFunc: func(_ context.Context, _ string) (model.LoanApplication, error) {
				return disbursed, nil
			},
		}
		mux := newApplicationMux(t, appRepo, &mockPublisher{})

		body := `{"annual_rate_percent":"10.5"}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/applications/app-1/approve", body, adminClaims()))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
