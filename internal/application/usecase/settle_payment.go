package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
)

// SettlePaymentUseCase settles or fails a pending payment and, on success,
// applies it to the loan's outstanding balance.
type SettlePaymentUseCase struct {
	loanRepo    port.LoanRepository
	paymentRepo port.PaymentRepository
	publisher   port.EventPublisher
}

// NewSettlePaymentUseCase wires dependencies.
func NewSettlePaymentUseCase(
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
	publisher port.EventPublisher,
) *SettlePaymentUseCase {
	return &SettlePaymentUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		publisher:   publisher,
	}
}

// Execute resolves a pending payment.
func (uc *SettlePaymentUseCase) Execute(
	ctx context.Context,
	req dto.SettlePaymentRequest,
) (dto.PaymentResponse, error) {
	now := time.Now().UTC()

	// 1. Load the pending payment.
	payment, err := uc.paymentRepo.FindByID(ctx, req.PaymentID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find payment: %w", err)
	}

	// 2. Failure path: mark failed and stop.
	if !req.Succeeded {
		payment, err = payment.Fail(req.Remarks, now)
		if err != nil {
			return dto.PaymentResponse{}, fmt.Errorf("fail payment: %w", err)
		}
		if err := uc.paymentRepo.Save(ctx, payment); err != nil {
			return dto.PaymentResponse{}, fmt.Errorf("save payment: %w", err)
		}
		return toPaymentResponse(payment), nil
	}

	// 3. Success path: apply to the loan balance.
	loan, err := uc.loanRepo.FindByID(ctx, payment.LoanID())
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}
	loan, err = loan.ApplyPayment(payment.Amount().Amount(), now)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("apply payment: %w", err)
	}

	payment, err = payment.Complete(loan.OutstandingBalance(), now)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("complete payment: %w", err)
	}

	// 4. Persist both aggregates.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.paymentRepo.Save(ctx, payment); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save payment: %w", err)
	}

	// 5. Publish domain events from both aggregates.
	events := append(payment.DomainEvents(), loan.DomainEvents()...)
	if err := uc.publisher.Publish(ctx, events...); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toPaymentResponse(payment), nil
}
