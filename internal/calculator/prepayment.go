package calculator

import (
	"math"

	"github.com/Dan9191/emi-service/internal/models"
)

// SimulatePrepayment applies a one-time lump sum at the start of the loan and
// keeps the EMI unchanged, so the saving shows up as a shorter tenure:
// n' = ln(1 + P'·r/EMI) / ln(1+r). A balance whose monthly interest alone
// reaches the EMI is refused as infeasible.
// A lump sum that covers the whole principal discharges the loan and saves all
// of its interest.
func SimulatePrepayment(loanAmount, monthlyRate float64, installments int, result models.EMIResult, prepayment float64) (models.PrepaymentImpact, error) {
	originalYears := float64(installments) / 12
	remaining := loanAmount - prepayment

	if remaining <= 0 {
		return models.PrepaymentImpact{
			PrepaymentAmount:   prepayment,
			RevisedTenureYears: 0,
			TenureSavedYears:   originalYears,
			InterestSaved:      result.TotalInterest,
			EffectiveEMI:       0,
		}, nil
	}

	emi := result.MonthlyEMI
	if emi <= remaining*monthlyRate {
		return models.PrepaymentImpact{}, ErrPrepaymentInfeasible
	}

	revisedMonths := math.Log(1+remaining*monthlyRate/emi) / math.Log(1+monthlyRate)
	if !finite(revisedMonths) {
		return models.PrepaymentImpact{}, ErrPrepaymentInfeasible
	}

	originalInterest := emi*float64(installments) - loanAmount
	revisedInterest := emi*revisedMonths - remaining

	return models.PrepaymentImpact{
		PrepaymentAmount:   prepayment,
		RevisedTenureYears: revisedMonths / 12,
		TenureSavedYears:   originalYears - revisedMonths/12,
		InterestSaved:      originalInterest - revisedInterest,
		EffectiveEMI:       emi,
	}, nil
}
