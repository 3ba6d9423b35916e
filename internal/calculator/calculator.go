// Package calculator implements the EMI engine: principal resolution,
// installment pricing, amortization, eligibility, prepayment and lender
// comparison. Every function is pure; a compute cycle either returns a
// complete Calculation or an error.
package calculator

import (
	"slices"

	"github.com/Dan9191/emi-service/internal/models"
)

// Compute runs one full cycle over an immutable request snapshot
func Compute(req models.LoanRequest, rates []models.LenderRate) (*models.Calculation, error) {
	loanAmount, err := ResolveLoanAmount(req.PropertyPrice, req.DownPayment)
	if err != nil {
		return nil, err
	}
	if req.TenureYears <= 0 {
		return nil, ErrDegenerateRate
	}
	if req.TenureYears < MinTenureYears || req.TenureYears > MaxTenureYears {
		return nil, ErrTenureOutOfRange
	}

	emi, err := ComputeEMI(loanAmount, req.AnnualRatePercent, req.TenureYears, req.Method)
	if err != nil {
		return nil, err
	}

	r := MonthlyRate(req.AnnualRatePercent)
	n := Installments(req.TenureYears)

	calc := &models.Calculation{
		Request:  req,
		EMI:      emi,
		Schedule: slices.Collect(Schedule(loanAmount, r, n, emi.MonthlyEMI, req.TenureYears)),
	}

	if req.MonthlyIncome != nil {
		obligations := 0.0
		if req.ExistingObligations != nil {
			obligations = *req.ExistingObligations
		}
		verdict := EvaluateEligibility(*req.MonthlyIncome, obligations, emi.MonthlyEMI, r, n)
		calc.Eligibility = &verdict
	}

	if req.PrepaymentAmount != nil {
		impact, err := SimulatePrepayment(loanAmount, r, n, emi, *req.PrepaymentAmount)
		if err != nil {
			return nil, err
		}
		calc.Prepayment = &impact
	}

	calc.Offers, err = CompareLenders(loanAmount, req.TenureYears, rates)
	if err != nil {
		return nil, err
	}

	return calc, nil
}
