package calculator

import (
	"fmt"

	"github.com/Dan9191/emi-service/internal/models"
)

// DefaultLenderRates is the comparison table used when no other is configured
var DefaultLenderRates = []models.LenderRate{
	{Name: "SBI", AnnualRatePercent: 8.50},
	{Name: "HDFC", AnnualRatePercent: 8.65},
	{Name: "ICICI", AnnualRatePercent: 8.70},
	{Name: "Axis Bank", AnnualRatePercent: 8.75},
	{Name: "Kotak", AnnualRatePercent: 8.80},
}

// CompareLenders prices the same principal and tenure at every rate in the
// table using the reducing-balance method. Output order follows the table.
func CompareLenders(loanAmount float64, tenureYears int, rates []models.LenderRate) ([]models.BankOffer, error) {
	offers := make([]models.BankOffer, 0, len(rates))
	for _, lender := range rates {
		res, err := ComputeEMI(loanAmount, lender.AnnualRatePercent, tenureYears, models.MethodReducing)
		if err != nil {
			return nil, fmt.Errorf("lender %q: %w", lender.Name, err)
		}
		offers = append(offers, models.BankOffer{
			LenderName:        lender.Name,
			AnnualRatePercent: lender.AnnualRatePercent,
			MonthlyEMI:        res.MonthlyEMI,
			TotalInterest:     res.TotalInterest,
			TotalPayment:      res.TotalPayment,
		})
	}
	return offers, nil
}
