package usecase

import (
	"context"
	"fmt"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
)

// GetLoanUseCase retrieves loans and their payment history.
type GetLoanUseCase struct {
	loanRepo    port.LoanRepository
	paymentRepo port.PaymentRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository, paymentRepo port.PaymentRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo, paymentRepo: paymentRepo}
}

// ByID returns a single loan.
func (uc *GetLoanUseCase) ByID(ctx context.Context, loanID string) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}
	return toLoanResponse(loan), nil
}

// ByBorrower returns all loans held by a borrower.
func (uc *GetLoanUseCase) ByBorrower(ctx context.Context, borrowerID string) ([]dto.LoanResponse, error) {
	loans, err := uc.loanRepo.FindByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("find loans: %w", err)
	}
	out := make([]dto.LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, toLoanResponse(l))
	}
	return out, nil
}

// Payments returns the payment history of a loan.
func (uc *GetLoanUseCase) Payments(ctx context.Context, loanID string) ([]dto.PaymentResponse, error) {
	payments, err := uc.paymentRepo.FindByLoanID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}
