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
	"github.com/Abhaykauahal21/LoanFlow/pkg/money"
)

// PaymentRepo implements port.PaymentRepository.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentRepo creates a new repository backed by PostgreSQL.
func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

const paymentColumns = `
	id, loan_id, payer_id, amount, currency, payment_method,
	status, transaction_id, remarks, version, created_at, updated_at`

// Save persists a payment (upsert by ID with optimistic locking).
func (r *PaymentRepo) Save(ctx context.Context, p model.Payment) error {
	query := `
		INSERT INTO payments (
			id, loan_id, payer_id, amount, currency, payment_method,
			status, transaction_id, remarks, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			status     = EXCLUDED.status,
			remarks    = EXCLUDED.remarks,
			version    = payments.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE payments.version = $10
	`
	tag, err := r.pool.Exec(ctx, query,
		p.ID(), p.LoanID(), p.PayerID(),
		p.Amount().Amount(), p.Amount().Currency().Code(), p.PaymentMethod(),
		p.Status().String(), p.TransactionID(), p.Remarks(),
		p.Version(), p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrVersionMismatch
	}
	return nil
}

// FindByID retrieves a single payment.
func (r *PaymentRepo) FindByID(ctx context.Context, id string) (model.Payment, error) {
	query := `SELECT` + paymentColumns + `
		FROM payments
		WHERE id = $1
	`
	return scanPayment(r.pool.QueryRow(ctx, query, id))
}

// FindByLoanID retrieves the payment history of a loan, newest first.
func (r *PaymentRepo) FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error) {
	query := `SELECT` + paymentColumns + `
		FROM payments
		WHERE loan_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func scanPayment(s scannable) (model.Payment, error) {
	var (
		id, loanID, payerID    string
		amount                 decimal.Decimal
		currency               string
		paymentMethod          string
		statusStr              string
		transactionID, remarks string
		version                int
		createdAt, updatedAt   time.Time
	)

	err := s.Scan(
		&id, &loanID, &payerID,
		&amount, &currency, &paymentMethod,
		&statusStr, &transactionID, &remarks,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Payment{}, mapError(err)
	}

	status, err := valueobject.NewPaymentStatus(statusStr)
	if err != nil {
		return model.Payment{}, fmt.Errorf("parse status: %w", err)
	}

	cur, err := money.NewCurrency(currency)
	if err != nil {
		return model.Payment{}, fmt.Errorf("parse currency: %w", err)
	}

	return model.ReconstructPayment(
		id, loanID, payerID,
		money.New(amount, cur), paymentMethod,
		status, transactionID, remarks,
		version, createdAt, updatedAt,
	), nil
}
