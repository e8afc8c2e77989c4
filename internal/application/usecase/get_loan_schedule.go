package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
)

// GetLoanScheduleUseCase renders the repayment schedule for a loan, caching
// the result since a contract's schedule never changes after disbursement.
type GetLoanScheduleUseCase struct {
	loanRepo port.LoanRepository
	cache    port.ScheduleCache
	logger   *slog.Logger
	cacheTTL time.Duration
}

// NewGetLoanScheduleUseCase wires dependencies. The cache may be nil, in
// which case every request recomputes the schedule.
func NewGetLoanScheduleUseCase(
	loanRepo port.LoanRepository,
	cache port.ScheduleCache,
	logger *slog.Logger,
	cacheTTL time.Duration,
) *GetLoanScheduleUseCase {
	return &GetLoanScheduleUseCase{
		loanRepo: loanRepo,
		cache:    cache,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Execute returns the full schedule for a loan.
func (uc *GetLoanScheduleUseCase) Execute(ctx context.Context, loanID string) (dto.ScheduleResponse, error) {
	// 1. Serve from cache when possible.
	if uc.cache != nil {
		sched, ok, err := uc.cache.Get(ctx, loanID)
		if err != nil {
			// A cache failure must never break the read path.
			uc.logger.WarnContext(ctx, "schedule cache read failed", "loan_id", loanID, "error", err)
		} else if ok {
			return toScheduleResponse(loanID, sched), nil
		}
	}

	// 2. Recompute from the loan's contract terms.
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("find loan: %w", err)
	}
	sched, err := loan.RepaymentSchedule()
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("generate schedule: %w", err)
	}

	// 3. Populate the cache.
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, loanID, sched, uc.cacheTTL); err != nil {
			uc.logger.WarnContext(ctx, "schedule cache write failed", "loan_id", loanID, "error", err)
		}
	}

	return toScheduleResponse(loanID, sched), nil
}
