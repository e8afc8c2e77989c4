package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Abhaykauahal21/LoanFlow/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Loan Application Events
// ---------------------------------------------------------------------------

// ApplicationSubmitted is raised when a new application enters the system.
type ApplicationSubmitted struct {
	events.BaseEvent
	ApplicantID     string          `json:"applicant_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Currency        string          `json:"currency"`
	TenureMonths    int             `json:"tenure_months"`
}

func NewApplicationSubmitted(
	applicationID, applicantID string,
	amount decimal.Decimal, currency string,
	tenureMonths int,
) ApplicationSubmitted {
	return ApplicationSubmitted{
		BaseEvent:       events.NewBaseEvent("loanflow.application.submitted", applicationID, "LoanApplication"),
		ApplicantID:     applicantID,
		RequestedAmount: amount,
		Currency:        currency,
		TenureMonths:    tenureMonths,
	}
}

// ApplicationApproved is raised when an admin approves an application.
type ApplicationApproved struct {
	events.BaseEvent
	ApplicantID       string          `json:"applicant_id"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	AdminNote         string          `json:"admin_note"`
}

func NewApplicationApproved(
	applicationID, applicantID string,
	annualRatePercent decimal.Decimal, adminNote string,
) ApplicationApproved {
	return ApplicationApproved{
		BaseEvent:         events.NewBaseEvent("loanflow.application.approved", applicationID, "LoanApplication"),
		ApplicantID:       applicantID,
		AnnualRatePercent: annualRatePercent,
		AdminNote:         adminNote,
	}
}

// ApplicationRejected is raised when an admin rejects an application.
type ApplicationRejected struct {
	events.BaseEvent
	ApplicantID string `json:"applicant_id"`
	AdminNote   string `json:"admin_note"`
}

func NewApplicationRejected(applicationID, applicantID, adminNote string) ApplicationRejected {
	return ApplicationRejected{
		BaseEvent:   events.NewBaseEvent("loanflow.application.rejected", applicationID, "LoanApplication"),
		ApplicantID: applicantID,
		AdminNote:   adminNote,
	}
}

// ---------------------------------------------------------------------------
// Loan Events
// ---------------------------------------------------------------------------

// LoanDisbursed is raised when funds are released against an approved application.
type LoanDisbursed struct {
	events.BaseEvent
	ApplicationID     string          `json:"application_id"`
	BorrowerID        string          `json:"borrower_id"`
	Principal         decimal.Decimal `json:"principal"`
	Currency          string          `json:"currency"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TenureMonths      int             `json:"tenure_months"`
	FirstPaymentDue   time.Time       `json:"first_payment_due"`
}

func NewLoanDisbursed(
	loanID, applicationID, borrowerID string,
	principal decimal.Decimal, currency string,
	annualRatePercent decimal.Decimal, tenureMonths int,
	firstPaymentDue time.Time,
) LoanDisbursed {
	return LoanDisbursed{
		BaseEvent:         events.NewBaseEvent("loanflow.loan.disbursed", loanID, "Loan"),
		ApplicationID:     applicationID,
		BorrowerID:        borrowerID,
		Principal:         principal,
		Currency:          currency,
		AnnualRatePercent: annualRatePercent,
		TenureMonths:      tenureMonths,
		FirstPaymentDue:   firstPaymentDue,
	}
}

// PaymentRecorded is raised when a repayment is registered against a loan.
type PaymentRecorded struct {
	events.BaseEvent
	LoanID        string          `json:"loan_id"`
	PayerID       string          `json:"payer_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
}

func NewPaymentRecorded(
	paymentID, loanID, payerID string,
	amount decimal.Decimal, currency, paymentMethod, status string,
) PaymentRecorded {
	return PaymentRecorded{
		BaseEvent:     events.NewBaseEvent("loanflow.payment.recorded", paymentID, "Payment"),
		LoanID:        loanID,
		PayerID:       payerID,
		Amount:        amount,
		Currency:      currency,
		PaymentMethod: paymentMethod,
		Status:        status,
	}
}

// PaymentCompleted is raised when a pending payment settles.
type PaymentCompleted struct {
	events.BaseEvent
	LoanID             string          `json:"loan_id"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

func NewPaymentCompleted(
	paymentID, loanID string,
	amount decimal.Decimal, currency string,
	outstandingBalance decimal.Decimal,
) PaymentCompleted {
	return PaymentCompleted{
		BaseEvent:          events.NewBaseEvent("loanflow.payment.completed", paymentID, "Payment"),
		LoanID:             loanID,
		Amount:             amount,
		Currency:           currency,
		OutstandingBalance: outstandingBalance,
	}
}

// LoanDelinquent is raised when a loan falls behind on its schedule.
type LoanDelinquent struct {
	events.BaseEvent
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

func NewLoanDelinquent(loanID string, outstanding decimal.Decimal) LoanDelinquent {
	return LoanDelinquent{
		BaseEvent:          events.NewBaseEvent("loanflow.loan.delinquent", loanID, "Loan"),
		OutstandingBalance: outstanding,
	}
}

// LoanDefault is raised when a delinquent loan enters default.
type LoanDefault struct {
	events.BaseEvent
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

func NewLoanDefault(loanID string, outstanding decimal.Decimal) LoanDefault {
	return LoanDefault{
		BaseEvent:          events.NewBaseEvent("loanflow.loan.default", loanID, "Loan"),
		OutstandingBalance: outstanding,
	}
}

// LoanPaidOff is raised when the outstanding balance reaches zero.
type LoanPaidOff struct {
	events.BaseEvent
}

func NewLoanPaidOff(loanID string) LoanPaidOff {
	return LoanPaidOff{
		BaseEvent: events.NewBaseEvent("loanflow.loan.paid_off", loanID, "Loan"),
	}
}

// ---------------------------------------------------------------------------
// User Events
// ---------------------------------------------------------------------------

// UserRegistered is raised when a new account is created.
type UserRegistered struct {
	events.BaseEvent
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewUserRegistered(userID, email, role string) UserRegistered {
	return UserRegistered{
		BaseEvent: events.NewBaseEvent("loanflow.user.registered", userID, "User"),
		Email:     email,
		Role:      role,
	}
}
