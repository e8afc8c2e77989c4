package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Abhaykauahal21/LoanFlow/internal/domain/event"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate representing a disbursed loan contract.
// Every mutation returns a new copy.
type Loan struct {
	id                 string
	applicationID      string
	borrowerID         string
	principal          decimal.Decimal
	currency           string
	annualRatePercent  decimal.Decimal
	tenureMonths       int
	startDate          time.Time
	emi                decimal.Decimal
	outstandingBalance decimal.Decimal
	totalPaid          decimal.Decimal
	status             valueobject.LoanStatus
	version            int
	createdAt          time.Time
	updatedAt          time.Time
	domainEvents       []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoan creates an ACTIVE loan from an approved application's contract
// terms. The fixed installment is derived from the terms at creation so the
// contract carries its own EMI, and LoanDisbursed is emitted.
func NewLoan(
	applicationID, borrowerID string,
	principal decimal.Decimal,
	currency string,
	annualRatePercent decimal.Decimal,
	tenureMonths int,
	startDate time.Time,
	now time.Time,
) (Loan, error) {
	if applicationID == "" {
		return Loan{}, fmt.Errorf("%w: application ID is required", ErrInvalidInput)
	}
	if borrowerID == "" {
		return Loan{}, fmt.Errorf("%w: borrower ID is required", ErrInvalidInput)
	}
	if currency == "" {
		return Loan{}, fmt.Errorf("%w: currency is required", ErrInvalidInput)
	}

	emi, err := MonthlyPayment(ScheduleInput{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TenureMonths:      tenureMonths,
		StartDate:         startDate,
	})
	if err != nil {
		return Loan{}, err
	}

	id := uuid.New().String()
	loan := Loan{
		id:                 id,
		applicationID:      applicationID,
		borrowerID:         borrowerID,
		principal:          principal,
		currency:           currency,
		annualRatePercent:  annualRatePercent,
		tenureMonths:       tenureMonths,
		startDate:          startDate,
		emi:                emi,
		outstandingBalance: principal,
		totalPaid:          decimal.Zero,
		status:             valueobject.LoanStatusActive,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}

	disbursed := event.NewLoanDisbursed(
		id, applicationID, borrowerID,
		principal, currency, annualRatePercent, tenureMonths,
		AddMonths(startDate, 1),
	)
	loan.domainEvents = append(loan.domainEvents, disbursed)
	return loan, nil
}

// ReconstructLoan rebuilds an aggregate from persistence without side-effects.
func ReconstructLoan(
	id, applicationID, borrowerID string,
	principal decimal.Decimal,
	currency string,
	annualRatePercent decimal.Decimal,
	tenureMonths int,
	startDate time.Time,
	emi, outstandingBalance, totalPaid decimal.Decimal,
	status valueobject.LoanStatus,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:                 id,
		applicationID:      applicationID,
		borrowerID:         borrowerID,
		principal:          principal,
		currency:           currency,
		annualRatePercent:  annualRatePercent,
		tenureMonths:       tenureMonths,
		startDate:          startDate,
		emi:                emi,
		outstandingBalance: outstandingBalance,
		totalPaid:          totalPaid,
		status:             status,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// ApplyPayment reduces the outstanding balance by the settled amount.
// A loan whose balance reaches zero transitions to PAID_OFF; a payment on a
// DELINQUENT loan cures it back to ACTIVE.
func (l Loan) ApplyPayment(amount decimal.Decimal, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) && !l.status.Equal(valueobject.LoanStatusDelinquent) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return l, fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}
	if amount.GreaterThan(l.outstandingBalance) {
		return l, fmt.Errorf("%w: payment exceeds outstanding balance", ErrInvalidInput)
	}

	next := l
	next.outstandingBalance = l.outstandingBalance.Sub(amount)
	next.totalPaid = l.totalPaid.Add(amount)
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)

	if next.outstandingBalance.IsZero() {
		next.status = valueobject.LoanStatusPaidOff
		next.domainEvents = append(next.domainEvents, event.NewLoanPaidOff(l.id))
	} else if l.status.Equal(valueobject.LoanStatusDelinquent) {
		next.status = valueobject.LoanStatusActive
	}
	return next, nil
}

// MarkDelinquent transitions ACTIVE -> DELINQUENT and emits LoanDelinquent.
func (l Loan) MarkDelinquent(now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	next := l
	next.status = valueobject.LoanStatusDelinquent
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDelinquent(l.id, l.outstandingBalance))
	return next, nil
}

// MarkDefault transitions DELINQUENT -> DEFAULT and emits LoanDefault.
func (l Loan) MarkDefault(now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusDelinquent) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	next := l
	next.status = valueobject.LoanStatusDefault
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDefault(l.id, l.outstandingBalance))
	return next, nil
}

// ---------------------------------------------------------------------------
// Derived views
// ---------------------------------------------------------------------------

// RepaymentSchedule generates the full amortization schedule for the loan's
// contract terms.
func (l Loan) RepaymentSchedule() (*Schedule, error) {
	return GenerateSchedule(ScheduleInput{
		Principal:         l.principal,
		AnnualRatePercent: l.annualRatePercent,
		TenureMonths:      l.tenureMonths,
		StartDate:         l.startDate,
	})
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                            { return l.id }
func (l Loan) ApplicationID() string                 { return l.applicationID }
func (l Loan) BorrowerID() string                    { return l.borrowerID }
func (l Loan) Principal() decimal.Decimal            { return l.principal }
func (l Loan) Currency() string                      { return l.currency }
func (l Loan) AnnualRatePercent() decimal.Decimal    { return l.annualRatePercent }
func (l Loan) TenureMonths() int                     { return l.tenureMonths }
func (l Loan) StartDate() time.Time                  { return l.startDate }
func (l Loan) EMI() decimal.Decimal                  { return l.emi }
func (l Loan) OutstandingBalance() decimal.Decimal   { return l.outstandingBalance }
func (l Loan) TotalPaid() decimal.Decimal            { return l.totalPaid }
func (l Loan) Status() valueobject.LoanStatus        { return l.status }
func (l Loan) Version() int                          { return l.version }
func (l Loan) CreatedAt() time.Time                  { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                  { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent     { return l.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}
