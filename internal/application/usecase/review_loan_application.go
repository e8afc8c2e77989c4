package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/valueobject"
)

// ReviewLoanApplicationUseCase applies admin decisions to pending applications.
type ReviewLoanApplicationUseCase struct {
	appRepo   port.LoanApplicationRepository
	publisher port.EventPublisher
}

// NewReviewLoanApplicationUseCase wires dependencies.
func NewReviewLoanApplicationUseCase(
	appRepo port.LoanApplicationRepository,
	publisher port.EventPublisher,
) *ReviewLoanApplicationUseCase {
	return &ReviewLoanApplicationUseCase{appRepo: appRepo, publisher: publisher}
}

// Approve moves an application to APPROVED with the contract rate and note.
// A PENDING application is first moved through UNDER_REVIEW.
func (uc *ReviewLoanApplicationUseCase) Approve(
	ctx context.Context,
	req dto.ApproveApplicationRequest,
) (dto.LoanApplicationResponse, error) {
	now := time.Now().UTC()

	app, err := uc.loadForReview(ctx, req.ApplicationID, now)
	if err != nil {
		return dto.LoanApplicationResponse{}, err
	}

	app, err = app.Approve(req.AnnualRatePercent, req.AdminNote, now)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("approve application: %w", err)
	}

	return uc.persist(ctx, app)
}

// Reject moves an application to REJECTED with the admin's note.
// A PENDING application is first moved through UNDER_REVIEW.
func (uc *ReviewLoanApplicationUseCase) Reject(
	ctx context.Context,
	req dto.RejectApplicationRequest,
) (dto.LoanApplicationResponse, error) {
	now := time.Now().UTC()

	app, err := uc.loadForReview(ctx, req.ApplicationID, now)
	if err != nil {
		return dto.LoanApplicationResponse{}, err
	}

	app, err = app.Reject(req.AdminNote, now)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("reject application: %w", err)
	}

	return uc.persist(ctx, app)
}

func (uc *ReviewLoanApplicationUseCase) loadForReview(
	ctx context.Context,
	applicationID string,
	now time.Time,
) (model.LoanApplication, error) {
	app, err := uc.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("find application: %w", err)
	}

	if app.Status().Equal(valueobject.ApplicationStatusPending) {
		app, err = app.StartReview(now)
		if err != nil {
			return model.LoanApplication{}, fmt.Errorf("start review: %w", err)
		}
	}
	return app, nil
}

func (uc *ReviewLoanApplicationUseCase) persist(
	ctx context.Context,
	app model.LoanApplication,
) (dto.LoanApplicationResponse, error) {
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}
	return toApplicationResponse(app), nil
}
