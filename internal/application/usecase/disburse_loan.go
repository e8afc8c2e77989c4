package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
)

// DisburseLoanUseCase releases funds against an approved application and
// creates the active loan contract.
type DisburseLoanUseCase struct {
	appRepo   port.LoanApplicationRepository
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewDisburseLoanUseCase wires dependencies.
func NewDisburseLoanUseCase(
	appRepo port.LoanApplicationRepository,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *DisburseLoanUseCase {
	return &DisburseLoanUseCase{
		appRepo:   appRepo,
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// Execute disburses an approved application.
// The loan contract inherits the application's amount, tenure, and the rate
// fixed at approval; an omitted start date defaults to the disbursement day.
func (uc *DisburseLoanUseCase) Execute(
	ctx context.Context,
	req dto.DisburseLoanRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	// 1. Load the approved application.
	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find application: %w", err)
	}

	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = now
	}

	// 2. Create the loan contract from the contract terms.
	loan, err := model.NewLoan(
		app.ID(), app.ApplicantID(),
		app.RequestedAmount(), app.Currency(),
		app.AnnualRatePercent(), app.TenureMonths(),
		startDate, now,
	)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	// 3. Mark the application disbursed.
	app, err = app.MarkDisbursed(now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("mark disbursed: %w", err)
	}

	// 4. Persist both aggregates.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 5. Publish domain events.
	events := append(loan.DomainEvents(), app.DomainEvents()...)
	if err := uc.publisher.Publish(ctx, events...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}
