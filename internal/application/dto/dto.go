package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// RegisterRequest carries the data needed to create an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest carries credentials for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SubmitApplicationRequest carries the data needed to submit a new loan application.
type SubmitApplicationRequest struct {
	ApplicantID     string          `json:"applicant_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Currency        string          `json:"currency"`
	TenureMonths    int             `json:"tenure_months"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	Documents       []string        `json:"documents,omitempty"`
}

// ApproveApplicationRequest carries an admin approval decision.
type ApproveApplicationRequest struct {
	ApplicationID     string          `json:"application_id"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	AdminNote         string          `json:"admin_note"`
}

// RejectApplicationRequest carries an admin rejection decision.
type RejectApplicationRequest struct {
	ApplicationID string `json:"application_id"`
	AdminNote     string `json:"admin_note"`
}

// DisburseLoanRequest carries the data needed to disburse an approved application.
type DisburseLoanRequest struct {
	ApplicationID string    `json:"application_id"`
	StartDate     time.Time `json:"start_date"`
}

// RecordPaymentRequest carries the data for registering a repayment.
type RecordPaymentRequest struct {
	LoanID        string          `json:"loan_id"`
	PayerID       string          `json:"payer_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	Remarks       string          `json:"remarks,omitempty"`
}

// SettlePaymentRequest identifies a pending payment to settle or fail.
type SettlePaymentRequest struct {
	PaymentID string `json:"payment_id"`
	Succeeded bool   `json:"succeeded"`
	Remarks   string `json:"remarks,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// UserResponse is the external representation of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse carries a signed token together with the account it belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// LoanApplicationResponse is the external representation of a loan application.
type LoanApplicationResponse struct {
	ID                string          `json:"id"`
	ApplicantID       string          `json:"applicant_id"`
	RequestedAmount   decimal.Decimal `json:"requested_amount"`
	Currency          string          `json:"currency"`
	TenureMonths      int             `json:"tenure_months"`
	MonthlyIncome     decimal.Decimal `json:"monthly_income"`
	Documents         []string        `json:"documents,omitempty"`
	Status            string          `json:"status"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	AdminNote         string          `json:"admin_note,omitempty"`
	Prescreen         string          `json:"prescreen,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID                 string          `json:"id"`
	ApplicationID      string          `json:"application_id"`
	BorrowerID         string          `json:"borrower_id"`
	Principal          decimal.Decimal `json:"principal"`
	Currency           string          `json:"currency"`
	AnnualRatePercent  decimal.Decimal `json:"annual_rate_percent"`
	TenureMonths       int             `json:"tenure_months"`
	StartDate          string          `json:"start_date"`
	EMI                decimal.Decimal `json:"emi"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// PaymentResponse is the external representation of a payment.
type PaymentResponse struct {
	ID            string          `json:"id"`
	LoanID        string          `json:"loan_id"`
	PayerID       string          `json:"payer_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id"`
	Remarks       string          `json:"remarks,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ScheduleEntryResponse is a single installment of a repayment schedule.
// The date is rendered as YYYY-MM-DD.
type ScheduleEntryResponse struct {
	Month     int             `json:"month"`
	Date      string          `json:"date"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Total     decimal.Decimal `json:"total"`
	Balance   decimal.Decimal `json:"balance"`
}

// ScheduleResponse is the full repayment schedule for a loan.
type ScheduleResponse struct {
	LoanID        string                  `json:"loanId,omitempty"`
	EMI           decimal.Decimal         `json:"emi"`
	TotalInterest decimal.Decimal         `json:"totalInterest"`
	TotalPayable  decimal.Decimal         `json:"totalPayable"`
	Schedule      []ScheduleEntryResponse `json:"schedule"`
}
