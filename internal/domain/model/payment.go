package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Abhaykauahal21/LoanFlow/internal/domain/event"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/valueobject"
	"github.com/Abhaykauahal21/LoanFlow/pkg/money"
)

// Accepted payment methods.
const (
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodUPI          = "UPI"
	PaymentMethodCard         = "CARD"
	PaymentMethodCash         = "CASH"
)

var validPaymentMethods = map[string]struct{}{
	PaymentMethodBankTransfer: {},
	PaymentMethodUPI:          {},
	PaymentMethodCard:         {},
	PaymentMethodCash:         {},
}

// ---------------------------------------------------------------------------
// Payment aggregate root
// ---------------------------------------------------------------------------

// Payment is an immutable aggregate representing a single repayment.
// Every mutation returns a new copy.
type Payment struct {
	id            string
	loanID        string
	payerID       string
	amount        money.Money
	paymentMethod string
	status        valueobject.PaymentStatus
	transactionID string
	remarks       string
	version       int
	createdAt     time.Time
	updatedAt     time.Time
	domainEvents  []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewPayment registers a PENDING payment against a loan and emits
// PaymentRecorded. A transaction reference is assigned at creation.
func NewPayment(
	loanID, payerID string,
	amount money.Money,
	paymentMethod, remarks string,
	now time.Time,
) (Payment, error) {
	if loanID == "" {
		return Payment{}, fmt.Errorf("%w: loan ID is required", ErrInvalidInput)
	}
	if payerID == "" {
		return Payment{}, fmt.Errorf("%w: payer ID is required", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return Payment{}, fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}
	if _, ok := validPaymentMethods[paymentMethod]; !ok {
		return Payment{}, fmt.Errorf("%w: unsupported payment method", ErrInvalidInput)
	}

	id := uuid.New().String()
	p := Payment{
		id:            id,
		loanID:        loanID,
		payerID:       payerID,
		amount:        amount,
		paymentMethod: paymentMethod,
		status:        valueobject.PaymentStatusPending,
		transactionID: "TXN-" + uuid.New().String(),
		remarks:       remarks,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}

	recorded := event.NewPaymentRecorded(
		id, loanID, payerID,
		amount.Amount(), amount.Currency().Code(), paymentMethod,
		p.status.String(),
	)
	p.domainEvents = append(p.domainEvents, recorded)
	return p, nil
}

// ReconstructPayment rebuilds an aggregate from persistence without side-effects.
func ReconstructPayment(
	id, loanID, payerID string,
	amount money.Money,
	paymentMethod string,
	status valueobject.PaymentStatus,
	transactionID, remarks string,
	version int,
	createdAt, updatedAt time.Time,
) Payment {
	return Payment{
		id:            id,
		loanID:        loanID,
		payerID:       payerID,
		amount:        amount,
		paymentMethod: paymentMethod,
		status:        status,
		transactionID: transactionID,
		remarks:       remarks,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Complete transitions PENDING -> COMPLETED and emits PaymentCompleted with
// the loan's outstanding balance after the payment was applied.
func (p Payment) Complete(outstandingAfter decimal.Decimal, now time.Time) (Payment, error) {
	if !p.status.Equal(valueobject.PaymentStatusPending) {
		return p, valueobject.ErrInvalidStatusTransition
	}
	next := p
	next.status = valueobject.PaymentStatusCompleted
	next.updatedAt = now
	next.domainEvents = copyEvents(p.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPaymentCompleted(
		p.id, p.loanID, p.amount.Amount(), p.amount.Currency().Code(), outstandingAfter,
	))
	return next, nil
}

// Fail transitions PENDING -> FAILED recording the failure reason.
func (p Payment) Fail(remarks string, now time.Time) (Payment, error) {
	if !p.status.Equal(valueobject.PaymentStatusPending) {
		return p, valueobject.ErrInvalidStatusTransition
	}
	next := p
	next.status = valueobject.PaymentStatusFailed
	next.remarks = remarks
	next.updatedAt = now
	next.domainEvents = copyEvents(p.domainEvents)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (p Payment) ID() string                            { return p.id }
func (p Payment) LoanID() string                        { return p.loanID }
func (p Payment) PayerID() string                       { return p.payerID }
func (p Payment) Amount() money.Money                   { return p.amount }
func (p Payment) PaymentMethod() string                 { return p.paymentMethod }
func (p Payment) Status() valueobject.PaymentStatus     { return p.status }
func (p Payment) TransactionID() string                 { return p.transactionID }
func (p Payment) Remarks() string                       { return p.remarks }
func (p Payment) Version() int                          { return p.version }
func (p Payment) CreatedAt() time.Time                  { return p.createdAt }
func (p Payment) UpdatedAt() time.Time                  { return p.updatedAt }
func (p Payment) DomainEvents() []event.DomainEvent     { return p.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (p Payment) ClearEvents() Payment {
	next := p
	next.domainEvents = nil
	return next
}
