package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/service"
)

// SubmitLoanApplicationUseCase orchestrates new loan application submission
// and the advisory affordability pre-screen.
type SubmitLoanApplicationUseCase struct {
	appRepo     port.LoanApplicationRepository
	publisher   port.EventPublisher
	underwriter *service.UnderwritingEngine
	baseRate    decimal.Decimal
}

// NewSubmitLoanApplicationUseCase wires dependencies. The base rate is the
// annual percentage used to estimate the installment during pre-screening.
func NewSubmitLoanApplicationUseCase(
	appRepo port.LoanApplicationRepository,
	publisher port.EventPublisher,
	underwriter *service.UnderwritingEngine,
	baseRate decimal.Decimal,
) *SubmitLoanApplicationUseCase {
	return &SubmitLoanApplicationUseCase{
		appRepo:     appRepo,
		publisher:   publisher,
		underwriter: underwriter,
		baseRate:    baseRate,
	}
}

// Execute creates, pre-screens, and persists a loan application.
// The pre-screen result is advisory and returned to the caller; the
// application itself always lands in PENDING for an admin decision.
func (uc *SubmitLoanApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (dto.LoanApplicationResponse, error) {
	now := time.Now().UTC()

	// 1. Create the application aggregate.
	app, err := model.NewLoanApplication(
		req.ApplicantID, req.RequestedAmount, req.Currency,
		req.TenureMonths, req.MonthlyIncome, req.Documents, now,
	)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("create application: %w", err)
	}

	// 2. Estimate the installment at the base rate for the pre-screen.
	emi, err := model.MonthlyPayment(model.ScheduleInput{
		Principal:         req.RequestedAmount,
		AnnualRatePercent: uc.baseRate,
		TenureMonths:      req.TenureMonths,
		StartDate:         now,
	})
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("estimate installment: %w", err)
	}
	prescreen := uc.underwriter.Evaluate(req.RequestedAmount, req.TenureMonths, req.MonthlyIncome, emi)

	// 3. Persist.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 4. Publish domain events.
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	resp := toApplicationResponse(app)
	resp.Prescreen = prescreen.Recommendation
	return resp, nil
}
