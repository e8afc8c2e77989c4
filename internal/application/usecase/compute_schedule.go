package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
)

// ScheduleDefaults are the terms substituted when a calculator request omits
// the rate or tenure.
type ScheduleDefaults struct {
	AnnualRatePercent decimal.Decimal
	TenureMonths      int
}

// ComputeScheduleRequest carries calculator parameters. Rate and tenure are
// optional; omitted values fall back to the configured defaults.
type ComputeScheduleRequest struct {
	Principal         decimal.Decimal
	AnnualRatePercent *decimal.Decimal
	TenureMonths      *int
	StartDate         time.Time
}

// ComputeScheduleUseCase renders a standalone amortization schedule without a
// stored loan, for the EMI calculator.
type ComputeScheduleUseCase struct {
	logger   *slog.Logger
	defaults ScheduleDefaults
}

// NewComputeScheduleUseCase wires dependencies.
func NewComputeScheduleUseCase(logger *slog.Logger, defaults ScheduleDefaults) *ComputeScheduleUseCase {
	return &ComputeScheduleUseCase{logger: logger, defaults: defaults}
}

// Execute computes a schedule for the given terms. Missing rate or tenure is
// filled from the defaults, and the substitution is logged so silently
// defaulted quotes are visible in operations.
func (uc *ComputeScheduleUseCase) Execute(ctx context.Context, req ComputeScheduleRequest) (dto.ScheduleResponse, error) {
	rate := uc.defaults.AnnualRatePercent
	if req.AnnualRatePercent != nil {
		rate = *req.AnnualRatePercent
	} else {
		uc.logger.WarnContext(ctx, "schedule request missing rate, using default",
			"default_rate_percent", rate.String())
	}

	tenure := uc.defaults.TenureMonths
	if req.TenureMonths != nil {
		tenure = *req.TenureMonths
	} else {
		uc.logger.WarnContext(ctx, "schedule request missing tenure, using default",
			"default_tenure_months", tenure)
	}

	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}

	sched, err := model.GenerateSchedule(model.ScheduleInput{
		Principal:         req.Principal,
		AnnualRatePercent: rate,
		TenureMonths:      tenure,
		StartDate:         startDate,
	})
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("generate schedule: %w", err)
	}

	return toScheduleResponse("", sched), nil
}
