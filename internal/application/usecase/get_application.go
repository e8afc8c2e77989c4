package usecase

import (
	"context"
	"fmt"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
)

// GetApplicationUseCase retrieves loan applications.
type GetApplicationUseCase struct {
	appRepo port.LoanApplicationRepository
}

// NewGetApplicationUseCase wires dependencies.
func NewGetApplicationUseCase(appRepo port.LoanApplicationRepository) *GetApplicationUseCase {
	return &GetApplicationUseCase{appRepo: appRepo}
}

// ByID returns a single application.
func (uc *GetApplicationUseCase) ByID(ctx context.Context, applicationID string) (dto.LoanApplicationResponse, error) {
	app, err := uc.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	return toApplicationResponse(app), nil
}

// ByApplicant returns all applications submitted by one applicant.
func (uc *GetApplicationUseCase) ByApplicant(ctx context.Context, applicantID string) ([]dto.LoanApplicationResponse, error) {
	apps, err := uc.appRepo.FindByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	out := make([]dto.LoanApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationResponse(a))
	}
	return out, nil
}

// ByStatus returns all applications in a given state, for the admin queue.
func (uc *GetApplicationUseCase) ByStatus(ctx context.Context, status string) ([]dto.LoanApplicationResponse, error) {
	apps, err := uc.appRepo.FindByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	out := make([]dto.LoanApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationResponse(a))
	}
	return out, nil
}
