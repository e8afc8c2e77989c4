package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when caller-supplied parameters fail validation.
var ErrInvalidInput = errors.New("invalid input")

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ScheduleInput holds the parameters for generating a repayment schedule.
type ScheduleInput struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TenureMonths      int
	StartDate         time.Time
}

// Validate checks the input parameters for an amortization schedule.
func (in ScheduleInput) Validate() error {
	if !in.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidInput, in.Principal)
	}
	if in.AnnualRatePercent.IsNegative() {
		return fmt.Errorf("%w: annual rate must not be negative, got %s", ErrInvalidInput, in.AnnualRatePercent)
	}
	if in.TenureMonths <= 0 {
		return fmt.Errorf("%w: tenure must be at least one month, got %d", ErrInvalidInput, in.TenureMonths)
	}
	return nil
}

// monthlyRate returns the periodic rate: annual percent / 12 / 100.
func (in ScheduleInput) monthlyRate() decimal.Decimal {
	return in.AnnualRatePercent.Div(twelve).Div(hundred)
}

// ScheduleEntry is one installment of a repayment schedule.
type ScheduleEntry struct {
	Month     int
	DueDate   time.Time
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Total     decimal.Decimal
	Balance   decimal.Decimal
}

// Schedule is a complete amortization schedule for a loan.
type Schedule struct {
	EMI           decimal.Decimal
	TotalInterest decimal.Decimal
	TotalPayable  decimal.Decimal
	Entries       []ScheduleEntry
}

// MonthlyPayment computes the fixed installment amount for the given input
// using the annuity formula, rounded to 2 decimal places. A zero interest
// rate degenerates to an even principal split.
func MonthlyPayment(in ScheduleInput) (decimal.Decimal, error) {
	if err := in.Validate(); err != nil {
		return decimal.Zero, err
	}

	n := decimal.NewFromInt(int64(in.TenureMonths))
	rate := in.monthlyRate()
	if rate.IsZero() {
		return in.Principal.DivRound(n, 2), nil
	}

	// EMI = P * r * (1+r)^n / ((1+r)^n - 1)
	factor := one.Add(rate).Pow(n)
	emi := in.Principal.Mul(rate).Mul(factor).Div(factor.Sub(one))
	return emi.Round(2), nil
}

// AddMonths advances t by the given number of calendar months, keeping the
// original day of month where possible and clamping to the last day of the
// target month otherwise. Unlike time.Time.AddDate, Jan 31 plus one month
// yields Feb 28 (or Feb 29 in a leap year), never Mar 2. The clock time and
// location of t are preserved unchanged.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	totalMonths := int(month) - 1 + months
	targetYear := year + totalMonths/12
	targetMonth := time.Month(totalMonths%12 + 1)
	if totalMonths < 0 && totalMonths%12 != 0 {
		targetYear--
		targetMonth += 12
	}

	if last := daysInMonth(targetYear, targetMonth); day > last {
		day = last
	}

	return time.Date(targetYear, targetMonth, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month.
// Day 0 of the following month normalizes to the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// GenerateSchedule produces the full declining-balance repayment schedule.
//
// Every installment except the last charges the fixed EMI; interest per
// period is the rounded product of the outstanding balance and the monthly
// rate, and the principal portion is the remainder of the EMI. The last
// installment repays the outstanding balance exactly, so the final balance
// is always zero and the last payment absorbs all rounding drift.
//
// Due dates advance one calendar month at a time from the start date. Once a
// date is clamped to a shorter month the new day of month carries forward:
// a loan started Jan 31 falls due Feb 28 (or 29), then Mar 28 (29), and so
// on. The original day never reappears.
func GenerateSchedule(in ScheduleInput) (*Schedule, error) {
	emi, err := MonthlyPayment(in)
	if err != nil {
		return nil, err
	}

	rate := in.monthlyRate()
	balance := in.Principal
	totalInterest := decimal.Zero
	totalPayable := decimal.Zero

	entries := make([]ScheduleEntry, 0, in.TenureMonths)
	dueDate := AddMonths(in.StartDate, 1)
	for month := 1; month <= in.TenureMonths; month++ {
		interest := balance.Mul(rate).Round(2)

		var principal, total decimal.Decimal
		if month < in.TenureMonths {
			principal = emi.Sub(interest)
			total = emi
			balance = balance.Sub(principal)
		} else {
			principal = balance
			total = principal.Add(interest)
			balance = decimal.Zero
		}

		totalInterest = totalInterest.Add(interest)
		totalPayable = totalPayable.Add(total)

		entries = append(entries, ScheduleEntry{
			Month:     month,
			DueDate:   dueDate,
			Principal: principal,
			Interest:  interest,
			Total:     total,
			Balance:   balance,
		})
		dueDate = AddMonths(dueDate, 1)
	}

	return &Schedule{
		EMI:           emi,
		TotalInterest: totalInterest,
		TotalPayable:  totalPayable,
		Entries:       entries,
	}, nil
}
