package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/valueobject"
	pgxdb "github.com/Abhaykauahal21/LoanFlow/pkg/postgres"
)

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new repository backed by PostgreSQL.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

const loanColumns = `
	id, application_id, borrower_id, principal, currency,
	annual_rate_percent, tenure_months, start_date, emi,
	outstanding_balance, total_paid, status,
	version, created_at, updated_at`

// Save persists a loan and its amortization entries in one transaction.
// Entries are rewritten while the row still carries the initial version,
// which covers the first save and the first balance update after it. The
// rewrite is idempotent: the contract terms are immutable, so the
// regenerated rows never differ. Later saves only touch the balance
// columns.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	return pgxdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO loans (
				id, application_id, borrower_id, principal, currency,
				annual_rate_percent, tenure_months, start_date, emi,
				outstanding_balance, total_paid, status,
				version, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
			ON CONFLICT (id) DO UPDATE SET
				outstanding_balance = EXCLUDED.outstanding_balance,
				total_paid          = EXCLUDED.total_paid,
				status              = EXCLUDED.status,
				version             = loans.version + 1,
				updated_at          = EXCLUDED.updated_at
			WHERE loans.version = $13
		`
		tag, err := tx.Exec(ctx, query,
			loan.ID(), loan.ApplicationID(), loan.BorrowerID(),
			loan.Principal(), loan.Currency(),
			loan.AnnualRatePercent(), loan.TenureMonths(), loan.StartDate(), loan.EMI(),
			loan.OutstandingBalance(), loan.TotalPaid(), loan.Status().String(),
			loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return port.ErrVersionMismatch
		}

		if loan.Version() == 1 {
			return insertScheduleEntries(ctx, tx, loan)
		}
		return nil
	})
}

func insertScheduleEntries(ctx context.Context, tx pgx.Tx, loan model.Loan) error {
	sched, err := loan.RepaymentSchedule()
	if err != nil {
		return fmt.Errorf("generate schedule: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM amortization_entries WHERE loan_id = $1`, loan.ID()); err != nil {
		return fmt.Errorf("clear schedule entries: %w", err)
	}

	query := `
		INSERT INTO amortization_entries (
			loan_id, month, due_date, principal, interest, total, balance
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	for _, e := range sched.Entries {
		if _, err := tx.Exec(ctx, query,
			loan.ID(), e.Month, e.DueDate, e.Principal, e.Interest, e.Total, e.Balance,
		); err != nil {
			return fmt.Errorf("insert schedule entry %d: %w", e.Month, err)
		}
	}
	return nil
}

// FindByID retrieves a single loan.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	query := `SELECT` + loanColumns + `
		FROM loans
		WHERE id = $1
	`
	return scanLoan(r.pool.QueryRow(ctx, query, id))
}

// FindByApplicationID retrieves the loan created from an application.
func (r *LoanRepo) FindByApplicationID(ctx context.Context, applicationID string) (model.Loan, error) {
	query := `SELECT` + loanColumns + `
		FROM loans
		WHERE application_id = $1
	`
	return scanLoan(r.pool.QueryRow(ctx, query, applicationID))
}

// FindByBorrowerID retrieves all loans held by a borrower.
func (r *LoanRepo) FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.Loan, error) {
	query := `SELECT` + loanColumns + `
		FROM loans
		WHERE borrower_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var result []model.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, loan)
	}
	return result, rows.Err()
}

func scanLoan(s scannable) (model.Loan, error) {
	var (
		id, applicationID, borrowerID string
		principal                     decimal.Decimal
		currency                      string
		annualRatePercent             decimal.Decimal
		tenureMonths                  int
		startDate                     time.Time
		emi, outstanding, totalPaid   decimal.Decimal
		statusStr                     string
		version                       int
		createdAt, updatedAt          time.Time
	)

	err := s.Scan(
		&id, &applicationID, &borrowerID,
		&principal, &currency,
		&annualRatePercent, &tenureMonths, &startDate, &emi,
		&outstanding, &totalPaid, &statusStr,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Loan{}, mapError(err)
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructLoan(
		id, applicationID, borrowerID,
		principal, currency,
		annualRatePercent, tenureMonths, startDate,
		emi, outstanding, totalPaid,
		status, version, createdAt, updatedAt,
	), nil
}
