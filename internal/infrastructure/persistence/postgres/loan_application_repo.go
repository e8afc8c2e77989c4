package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/valueobject"
)

// LoanApplicationRepo implements port.LoanApplicationRepository.
type LoanApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewLoanApplicationRepo creates a new repository backed by PostgreSQL.
func NewLoanApplicationRepo(pool *pgxpool.Pool) *LoanApplicationRepo {
	return &LoanApplicationRepo{pool: pool}
}

const applicationColumns = `
	id, applicant_id, requested_amount, currency, tenure_months,
	monthly_income, documents, status, annual_rate_percent, admin_note,
	version, created_at, updated_at`

// Save persists a loan application (upsert by ID with optimistic locking).
func (r *LoanApplicationRepo) Save(ctx context.Context, app model.LoanApplication) error {
	query := `
		INSERT INTO loan_applications (
			id, applicant_id, requested_amount, currency, tenure_months,
			monthly_income, documents, status, annual_rate_percent, admin_note,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			documents           = EXCLUDED.documents,
			status              = EXCLUDED.status,
			annual_rate_percent = EXCLUDED.annual_rate_percent,
			admin_note          = EXCLUDED.admin_note,
			version             = loan_applications.version + 1,
			updated_at          = EXCLUDED.updated_at
		WHERE loan_applications.version = $11
	`
	tag, err := r.pool.Exec(ctx, query,
		app.ID(), app.ApplicantID(),
		app.RequestedAmount(), app.Currency(), app.TenureMonths(),
		app.MonthlyIncome(), app.Documents(),
		app.Status().String(), app.AnnualRatePercent(), app.AdminNote(),
		app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrVersionMismatch
	}
	return nil
}

// FindByID retrieves a single loan application.
func (r *LoanApplicationRepo) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM loan_applications
		WHERE id = $1
	`
	return scanApplication(r.pool.QueryRow(ctx, query, id))
}

// FindByApplicantID retrieves all applications for a given applicant.
func (r *LoanApplicationRepo) FindByApplicantID(ctx context.Context, applicantID string) ([]model.LoanApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM loan_applications
		WHERE applicant_id = $1
		ORDER BY created_at DESC
	`
	return r.scanMany(ctx, query, applicantID)
}

// FindByStatus retrieves all applications in a given state.
func (r *LoanApplicationRepo) FindByStatus(ctx context.Context, status string) ([]model.LoanApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM loan_applications
		WHERE status = $1
		ORDER BY created_at ASC
	`
	return r.scanMany(ctx, query, status)
}

func (r *LoanApplicationRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.LoanApplication, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loan applications: %w", err)
	}
	defer rows.Close()

	var result []model.LoanApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func scanApplication(s scannable) (model.LoanApplication, error) {
	var (
		id, applicantID      string
		requestedAmount      decimal.Decimal
		currency             string
		tenureMonths         int
		monthlyIncome        decimal.Decimal
		documents            []string
		statusStr            string
		annualRatePercent    decimal.Decimal
		adminNote            string
		version              int
		createdAt, updatedAt time.Time
	)

	err := s.Scan(
		&id, &applicantID,
		&requestedAmount, &currency, &tenureMonths,
		&monthlyIncome, &documents,
		&statusStr, &annualRatePercent, &adminNote,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.LoanApplication{}, mapError(err)
	}

	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructLoanApplication(
		id, applicantID,
		requestedAmount, currency, tenureMonths,
		monthlyIncome, documents,
		status, annualRatePercent, adminNote,
		version, createdAt, updatedAt,
	), nil
}
