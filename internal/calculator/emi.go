package calculator

import (
	"math"

	"github.com/Dan9191/emi-service/internal/models"
)

// MonthlyRate converts an annual percentage into the per-installment rate
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 1200
}

// Installments is the number of monthly payments over the tenure
func Installments(tenureYears int) int {
	return tenureYears * 12
}

// ComputeEMI prices a loan with the given interest method.
//
// Reducing balance uses the annuity formula L·r·(1+r)^n / ((1+r)^n − 1).
// Flat rate charges simple interest on the full principal for the whole
// tenure and spreads principal plus interest evenly, which always yields a
// higher EMI than reducing balance for the same nominal rate.
func ComputeEMI(loanAmount, annualRatePercent float64, tenureYears int, method models.InterestMethod) (models.EMIResult, error) {
	if !finite(loanAmount) || loanAmount <= 0 {
		return models.EMIResult{}, ErrInvalidLoan
	}
	r := MonthlyRate(annualRatePercent)
	n := Installments(tenureYears)
	if !finite(r) || r <= 0 || n <= 0 {
		return models.EMIResult{}, ErrDegenerateRate
	}

	var emi, totalInterest float64
	switch method {
	case models.MethodFlat:
		totalInterest = loanAmount * annualRatePercent * float64(tenureYears) / 100
		emi = (loanAmount + totalInterest) / float64(n)
	default:
		emi = annuityPayment(loanAmount, r, n)
		totalInterest = emi*float64(n) - loanAmount
	}

	if !finite(emi) || emi <= 0 {
		return models.EMIResult{}, ErrDegenerateRate
	}

	return models.EMIResult{
		LoanAmount:    loanAmount,
		MonthlyEMI:    emi,
		TotalInterest: totalInterest,
		TotalPayment:  loanAmount + totalInterest,
	}, nil
}

func annuityPayment(principal, r float64, n int) float64 {
	growth := math.Pow(1+r, float64(n))
	return principal * r * growth / (growth - 1)
}

// annuityPrincipal inverts annuityPayment: the principal a fixed payment retires in n installments
func annuityPrincipal(payment, r float64, n int) float64 {
	if r <= 0 {
		return payment * float64(n)
	}
	growth := math.Pow(1+r, float64(n))
	return payment * (growth - 1) / (r * growth)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
