package service

import (
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// UnderwritingEngine – domain service for rule-based pre-screening
// ---------------------------------------------------------------------------

// UnderwritingResult holds the outcome of the affordability pre-screen.
// The result is advisory: the final decision stays with the reviewing admin.
type UnderwritingResult struct {
	Recommendation string
	Reason         string
	SuggestedRate  decimal.Decimal
	EMIToIncome    decimal.Decimal
}

// Recommendation values.
const (
	RecommendApprove = "APPROVE"
	RecommendReview  = "REVIEW"
	RecommendReject  = "REJECT"
)

// UnderwritingEngine encapsulates rule-based affordability checks.
type UnderwritingEngine struct{}

// NewUnderwritingEngine returns a new engine instance.
func NewUnderwritingEngine() *UnderwritingEngine {
	return &UnderwritingEngine{}
}

// Evaluate pre-screens an application by comparing the installment it would
// carry at the suggested rate against the applicant's monthly income.
//
// Tiers on the EMI-to-income ratio:
//
//	<= 0.30  -> APPROVE at 10.5%
//	<= 0.50  -> REVIEW at 13% (manual decision advised)
//	>  0.50  -> REJECT
//
// A zero income always yields REJECT, and tenures over 360 months are
// rejected outright.
func (e *UnderwritingEngine) Evaluate(
	requestedAmount decimal.Decimal,
	tenureMonths int,
	monthlyIncome decimal.Decimal,
	emiAtBaseRate decimal.Decimal,
) UnderwritingResult {
	if tenureMonths > 360 {
		return UnderwritingResult{
			Recommendation: RecommendReject,
			Reason:         "tenure exceeds maximum 360 months",
		}
	}
	if !monthlyIncome.IsPositive() {
		return UnderwritingResult{
			Recommendation: RecommendReject,
			Reason:         "no verifiable income",
		}
	}

	ratio := emiAtBaseRate.DivRound(monthlyIncome, 4)

	switch {
	case ratio.LessThanOrEqual(decimal.NewFromFloat(0.30)):
		return UnderwritingResult{
			Recommendation: RecommendApprove,
			Reason:         "installment comfortably within income",
			SuggestedRate:  decimal.NewFromFloat(10.5),
			EMIToIncome:    ratio,
		}
	case ratio.LessThanOrEqual(decimal.NewFromFloat(0.50)):
		return UnderwritingResult{
			Recommendation: RecommendReview,
			Reason:         "installment is a significant share of income",
			SuggestedRate:  decimal.NewFromFloat(13),
			EMIToIncome:    ratio,
		}
	default:
		return UnderwritingResult{
			Recommendation: RecommendReject,
			Reason:         "installment exceeds half of monthly income",
			EMIToIncome:    ratio,
		}
	}
}
