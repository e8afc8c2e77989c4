package port

import (
	"context"
	"errors"
	"time"

	"github.com/Abhaykauahal21/LoanFlow/internal/domain/event"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
)

// Sentinel errors returned by repositories.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrVersionMismatch = errors.New("version mismatch")
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanApplicationRepository persists and retrieves loan applications.
type LoanApplicationRepository interface {
	Save(ctx context.Context, app model.LoanApplication) error
	FindByID(ctx context.Context, id string) (model.LoanApplication, error)
	FindByApplicantID(ctx context.Context, applicantID string) ([]model.LoanApplication, error)
	FindByStatus(ctx context.Context, status string) ([]model.LoanApplication, error)
}

// LoanRepository persists and retrieves loans.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id string) (model.Loan, error)
	FindByApplicationID(ctx context.Context, applicationID string) (model.Loan, error)
	FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.Loan, error)
}

// PaymentRepository persists and retrieves payments.
type PaymentRepository interface {
	Save(ctx context.Context, p model.Payment) error
	FindByID(ctx context.Context, id string) (model.Payment, error)
	FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error)
}

// UserRepository persists and retrieves accounts.
type UserRepository interface {
	Save(ctx context.Context, u model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Cache port
// ---------------------------------------------------------------------------

// ScheduleCache caches rendered repayment schedules keyed by loan ID.
type ScheduleCache interface {
	Get(ctx context.Context, loanID string) (*model.Schedule, bool, error)
	Set(ctx context.Context, loanID string, sched *model.Schedule, ttl time.Duration) error
	Invalidate(ctx context.Context, loanID string) error
}
