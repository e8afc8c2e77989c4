package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/application/usecase"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/event"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
	"github.com/Abhaykauahal21/LoanFlow/pkg/money"
)

func pendingPayment(loanID string) model.Payment {
	p, err := model.NewPayment(
		loanID, "borrower-1",
		money.New(dec("8884.88"), money.INR),
		model.PaymentMethodUPI, "",
		time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		panic(err)
	}
	return p.ClearEvents()
}

func TestSettlePayment_Execute(t *testing.T) {
	t.Run("settles a payment and reduces the loan balance", func(t *testing.T) {
		loan := activeLoan()
		payment := pendingPayment(loan.ID())

		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) { return loan, nil },
		}
		paymentRepo := &mockPaymentRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Payment, error) { return payment, nil },
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewSettlePaymentUseCase(loanRepo, paymentRepo, publisher)

		resp, err := uc.Execute(context.Background(), dto.SettlePaymentRequest{
			PaymentID: payment.ID(),
			Succeeded: true,
		})
		require.NoError(t, err)

		assert.Equal(t, "COMPLETED", resp.Status)
		require.Len(t, loanRepo.savedLoans, 1)
		assert.True(t, loanRepo.savedLoans[0].OutstandingBalance().Equal(dec("91115.12")))
		require.Len(t, paymentRepo.savedPayments, 1)

		var sawCompleted bool
		for _, e := range publisher.publishedEvents {
			if _, ok := e.(event.PaymentCompleted); ok {
				sawCompleted = true
			}
		}
		assert.True(t, sawCompleted)
	})

	t.Run("marks a payment failed without touching the loan", func(t *testing.T) {
		payment := pendingPayment("loan-1")
		loanRepo := &mockLoanRepository{}
		paymentRepo := &mockPaymentRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Payment, error) { return payment, nil },
		}
		uc := usecase.NewSettlePaymentUseCase(loanRepo, paymentRepo, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.SettlePaymentRequest{
			PaymentID: payment.ID(),
			Succeeded: false,
			Remarks:   "gateway timeout",
		})
		require.NoError(t, err)

		assert.Equal(t, "FAILED", resp.Status)
		assert.Equal(t, "gateway timeout", resp.Remarks)
		assert.Empty(t, loanRepo.savedLoans)
	})

	t.Run("missing payment", func(t *testing.T) {
		uc := usecase.NewSettlePaymentUseCase(&mockLoanRepository{}, &mockPaymentRepository{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.SettlePaymentRequest{PaymentID: "nope", Succeeded: true})
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}

func TestRecordPayment_Execute(t *testing.T) {
	t.Run("records a pending payment against the loan", func(t *testing.T) {
		loan := activeLoan()
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) { return loan, nil },
		}
		paymentRepo := &mockPaymentRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewRecordPaymentUseCase(loanRepo, paymentRepo, publisher)

		resp, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID:        loan.ID(),
			PayerID:       "borrower-1",
			Amount:        dec("8884.88"),
			PaymentMethod: model.PaymentMethodUPI,
		})
		require.NoError(t, err)

		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "INR", resp.Currency)
		assert.NotEmpty(t, resp.TransactionID)
		require.Len(t, paymentRepo.savedPayments, 1)
		require.Len(t, publisher.publishedEvents, 1)
	})

	t.Run("rejects a currency mismatch", func(t *testing.T) {
		loan := activeLoan()
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) { return loan, nil },
		}
		uc := usecase.NewRecordPaymentUseCase(loanRepo, &mockPaymentRepository{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID:        loan.ID(),
			PayerID:       "borrower-1",
			Amount:        dec("100"),
			Currency:      "USD",
			PaymentMethod: model.PaymentMethodUPI,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.ErrorContains(t, err, "currency")
	})

	t.Run("missing loan", func(t *testing.T) {
		uc := usecase.NewRecordPaymentUseCase(&mockLoanRepository{}, &mockPaymentRepository{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{LoanID: "nope"})
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}
