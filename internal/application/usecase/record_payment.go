package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
	"github.com/Abhaykauahal21/LoanFlow/pkg/money"
)

// RecordPaymentUseCase registers a pending repayment against a loan.
type RecordPaymentUseCase struct {
	loanRepo    port.LoanRepository
	paymentRepo port.PaymentRepository
	publisher   port.EventPublisher
}

// NewRecordPaymentUseCase wires dependencies.
func NewRecordPaymentUseCase(
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
	publisher port.EventPublisher,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		publisher:   publisher,
	}
}

// Execute records a PENDING payment. The loan is loaded first so a payment
// can never reference a missing contract or the wrong currency.
func (uc *RecordPaymentUseCase) Execute(
	ctx context.Context,
	req dto.RecordPaymentRequest,
) (dto.PaymentResponse, error) {
	now := time.Now().UTC()

	// 1. The loan must exist.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Build the payment amount in the loan's currency.
	currency := req.Currency
	if currency == "" {
		currency = loan.Currency()
	}
	if currency != loan.Currency() {
		return dto.PaymentResponse{}, fmt.Errorf("%w: payment currency %s does not match loan currency %s",
			model.ErrInvalidInput, currency, loan.Currency())
	}
	amount, err := money.NewFromString(req.Amount.String(), currency)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("build amount: %w", err)
	}

	// 3. Create the payment aggregate.
	payment, err := model.NewPayment(loan.ID(), req.PayerID, amount, req.PaymentMethod, req.Remarks, now)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("create payment: %w", err)
	}

	// 4. Persist.
	if err := uc.paymentRepo.Save(ctx, payment); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save payment: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, payment.DomainEvents()...); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toPaymentResponse(payment), nil
}
