package calculator

import (
	"strconv"

	"github.com/Dan9191/emi-service/internal/models"
)

// DebtToIncomeLimit is the share of monthly income that may go to installments
const DebtToIncomeLimit = 0.4

// EvaluateEligibility checks an EMI against the 40% debt-to-income policy and
// reports the largest principal the remaining headroom could service.
func EvaluateEligibility(monthlyIncome, existingObligations, emi, monthlyRate float64, installments int) models.EligibilityVerdict {
	maxEMI := monthlyIncome*DebtToIncomeLimit - existingObligations

	if maxEMI <= 0 {
		return models.EligibilityVerdict{
			MaxAffordableEMI: maxEMI,
			MaxLoanAmount:    0,
			IsEligible:       false,
			Message:          ineligibleMessage(0),
		}
	}

	verdict := models.EligibilityVerdict{
		MaxAffordableEMI: maxEMI,
		MaxLoanAmount:    annuityPrincipal(maxEMI, monthlyRate, installments),
		IsEligible:       emi <= maxEMI,
	}
	if verdict.IsEligible {
		verdict.Message = "You are eligible for this loan amount!"
	} else {
		verdict.Message = ineligibleMessage(maxEMI)
	}
	return verdict
}

// ineligibleMessage carries the plain amount; currency formatting is left to the report
func ineligibleMessage(maxEMI float64) string {
	return "Your maximum eligible EMI is " + strconv.FormatFloat(maxEMI, 'f', -1, 64)
}
