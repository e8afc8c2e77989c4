package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/usecase"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetLoanSchedule_Execute(t *testing.T) {
	t.Run("computes and caches the schedule on a miss", func(t *testing.T) {
		loan := activeLoan()
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) { return loan, nil },
		}
		cache := &mockScheduleCache{}
		uc := usecase.NewGetLoanScheduleUseCase(loanRepo, cache, discardLogger(), time.Hour)

		resp, err := uc.Execute(context.Background(), loan.ID())
		require.NoError(t, err)

		assert.Equal(t, loan.ID(), resp.LoanID)
		assert.True(t, resp.EMI.Equal(dec("8884.88")))
		require.Len(t, resp.Schedule, 12)
		assert.Equal(t, "2024-02-15", resp.Schedule[0].Date)
		assert.True(t, resp.Schedule[11].Balance.IsZero())
		assert.Equal(t, 1, cache.setCalls)
	})

	t.Run("serves from cache without touching the repository", func(t *testing.T) {
		loan := activeLoan()
		sched, err := loan.RepaymentSchedule()
		require.NoError(t, err)

		cache := &mockScheduleCache{
			getFunc: func(_ context.Context, _ string) (*model.Schedule, bool, error) {
				return sched, true, nil
			},
		}
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				t.Fatal("repository should not be called on a cache hit")
				return model.Loan{}, nil
			},
		}
		uc := usecase.NewGetLoanScheduleUseCase(loanRepo, cache, discardLogger(), time.Hour)

		resp, err := uc.Execute(context.Background(), loan.ID())
		require.NoError(t, err)
		assert.Len(t, resp.Schedule, 12)
	})

	t.Run("a cache failure falls through to the repository", func(t *testing.T) {
		loan := activeLoan()
		cache := &mockScheduleCache{
			getFunc: func(_ context.Context, _ string) (*model.Schedule, bool, error) {
				return nil, false, errors.New("redis down")
			},
		}
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) { return loan, nil },
		}
		uc := usecase.NewGetLoanScheduleUseCase(loanRepo, cache, discardLogger(), time.Hour)

		resp, err := uc.Execute(context.Background(), loan.ID())
		require.NoError(t, err)
		assert.Len(t, resp.Schedule, 12)
	})

	t.Run("missing loan", func(t *testing.T) {
		uc := usecase.NewGetLoanScheduleUseCase(&mockLoanRepository{}, nil, discardLogger(), time.Hour)

		_, err := uc.Execute(context.Background(), "nope")
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}

func TestComputeSchedule_Execute(t *testing.T) {
	defaults := usecase.ScheduleDefaults{
		AnnualRatePercent: dec("12"),
		TenureMonths:      12,
	}

	t.Run("uses explicit terms when provided", func(t *testing.T) {
		uc := usecase.NewComputeScheduleUseCase(discardLogger(), defaults)

		rate := dec("10")
		tenure := 6
		resp, err := uc.Execute(context.Background(), usecase.ComputeScheduleRequest{
			Principal:         dec("60000"),
			AnnualRatePercent: &rate,
			TenureMonths:      &tenure,
			StartDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Schedule, 6)
	})

	t.Run("falls back to defaults for omitted terms", func(t *testing.T) {
		uc := usecase.NewComputeScheduleUseCase(discardLogger(), defaults)

		resp, err := uc.Execute(context.Background(), usecase.ComputeScheduleRequest{
			Principal: dec("100000"),
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.Len(t, resp.Schedule, 12)
		assert.True(t, resp.EMI.Equal(dec("8884.88")), "emi = %s", resp.EMI)
	})

	t.Run("invalid principal", func(t *testing.T) {
		uc := usecase.NewComputeScheduleUseCase(discardLogger(), defaults)

		_, err := uc.Execute(context.Background(), usecase.ComputeScheduleRequest{
			Principal: dec("0"),
		})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}
