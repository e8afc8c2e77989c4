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
// LoanApplication aggregate root
// ---------------------------------------------------------------------------

// LoanApplication is an immutable aggregate. Every mutation returns a new copy.
type LoanApplication struct {
	id                string
	applicantID       string
	requestedAmount   decimal.Decimal
	currency          string
	tenureMonths      int
	monthlyIncome     decimal.Decimal
	documents         []string
	status            valueobject.ApplicationStatus
	annualRatePercent decimal.Decimal
	adminNote         string
	version           int
	createdAt         time.Time
	updatedAt         time.Time
	domainEvents      []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoanApplication creates a brand-new application in PENDING status.
func NewLoanApplication(
	applicantID string,
	requestedAmount decimal.Decimal,
	currency string,
	tenureMonths int,
	monthlyIncome decimal.Decimal,
	documents []string,
	now time.Time,
) (LoanApplication, error) {
	if applicantID == "" {
		return LoanApplication{}, fmt.Errorf("%w: applicant ID is required", ErrInvalidInput)
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return LoanApplication{}, fmt.Errorf("%w: requested amount must be positive", ErrInvalidInput)
	}
	if currency == "" {
		return LoanApplication{}, fmt.Errorf("%w: currency is required", ErrInvalidInput)
	}
	if tenureMonths <= 0 {
		return LoanApplication{}, fmt.Errorf("%w: tenure months must be positive", ErrInvalidInput)
	}
	if monthlyIncome.IsNegative() {
		return LoanApplication{}, fmt.Errorf("%w: monthly income must not be negative", ErrInvalidInput)
	}

	id := uuid.New().String()
	app := LoanApplication{
		id:              id,
		applicantID:     applicantID,
		requestedAmount: requestedAmount,
		currency:        currency,
		tenureMonths:    tenureMonths,
		monthlyIncome:   monthlyIncome,
		documents:       copyStrings(documents),
		status:          valueobject.ApplicationStatusPending,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}

	submitted := event.NewApplicationSubmitted(id, applicantID, requestedAmount, currency, tenureMonths)
	app.domainEvents = append(app.domainEvents, submitted)
	return app, nil
}

// ReconstructLoanApplication rebuilds an aggregate from persistence without side-effects.
func ReconstructLoanApplication(
	id, applicantID string,
	requestedAmount decimal.Decimal,
	currency string,
	tenureMonths int,
	monthlyIncome decimal.Decimal,
	documents []string,
	status valueobject.ApplicationStatus,
	annualRatePercent decimal.Decimal,
	adminNote string,
	version int,
	createdAt, updatedAt time.Time,
) LoanApplication {
	return LoanApplication{
		id:                id,
		applicantID:       applicantID,
		requestedAmount:   requestedAmount,
		currency:          currency,
		tenureMonths:      tenureMonths,
		monthlyIncome:     monthlyIncome,
		documents:         copyStrings(documents),
		status:            status,
		annualRatePercent: annualRatePercent,
		adminNote:         adminNote,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// StartReview transitions PENDING -> UNDER_REVIEW.
func (a LoanApplication) StartReview(now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusPending) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusUnderReview
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// Approve transitions UNDER_REVIEW -> APPROVED, fixing the contract rate,
// and emits ApplicationApproved.
func (a LoanApplication) Approve(annualRatePercent decimal.Decimal, adminNote string, now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusUnderReview) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	if annualRatePercent.IsNegative() {
		return a, fmt.Errorf("%w: annual rate must not be negative", ErrInvalidInput)
	}
	next := a
	next.status = valueobject.ApplicationStatusApproved
	next.annualRatePercent = annualRatePercent
	next.adminNote = adminNote
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewApplicationApproved(
		a.id, a.applicantID, annualRatePercent, adminNote,
	))
	return next, nil
}

// Reject transitions UNDER_REVIEW -> REJECTED and emits ApplicationRejected.
func (a LoanApplication) Reject(adminNote string, now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusUnderReview) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusRejected
	next.adminNote = adminNote
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewApplicationRejected(a.id, a.applicantID, adminNote))
	return next, nil
}

// MarkDisbursed transitions APPROVED -> DISBURSED.
func (a LoanApplication) MarkDisbursed(now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusApproved) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusDisbursed
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// AttachDocument appends a document reference to the application.
func (a LoanApplication) AttachDocument(ref string, now time.Time) (LoanApplication, error) {
	if ref == "" {
		return a, fmt.Errorf("%w: document reference is required", ErrInvalidInput)
	}
	next := a
	next.documents = append(copyStrings(a.documents), ref)
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a LoanApplication) ID() string                                { return a.id }
func (a LoanApplication) ApplicantID() string                       { return a.applicantID }
func (a LoanApplication) RequestedAmount() decimal.Decimal          { return a.requestedAmount }
func (a LoanApplication) Currency() string                          { return a.currency }
func (a LoanApplication) TenureMonths() int                         { return a.tenureMonths }
func (a LoanApplication) MonthlyIncome() decimal.Decimal            { return a.monthlyIncome }
func (a LoanApplication) Documents() []string                       { return copyStrings(a.documents) }
func (a LoanApplication) Status() valueobject.ApplicationStatus     { return a.status }
func (a LoanApplication) AnnualRatePercent() decimal.Decimal        { return a.annualRatePercent }
func (a LoanApplication) AdminNote() string                         { return a.adminNote }
func (a LoanApplication) Version() int                              { return a.version }
func (a LoanApplication) CreatedAt() time.Time                      { return a.createdAt }
func (a LoanApplication) UpdatedAt() time.Time                      { return a.updatedAt }
func (a LoanApplication) DomainEvents() []event.DomainEvent         { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a LoanApplication) ClearEvents() LoanApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}

func copyStrings(src []string) []string {
	if len(src) == 0 {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
