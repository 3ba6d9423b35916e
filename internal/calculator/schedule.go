package calculator

import (
	"iter"
	"math"

	"github.com/Dan9191/emi-service/internal/models"
)

// Schedule expands an EMI into a year-by-year breakdown with exactly
// tenureYears rows. Each month charges interest on the running balance and
// applies the rest of the installment to principal. Principal is clamped to
// the outstanding balance and the last installment retires any residue, so
// the final row always closes at zero.
func Schedule(loanAmount, monthlyRate float64, installments int, emi float64, tenureYears int) iter.Seq[models.AmortizationRow] {
	return func(yield func(models.AmortizationRow) bool) {
		balance := loanAmount
		cumulative := 0.0
		month := 0

		for year := 1; year <= tenureYears; year++ {
			var principalPaid, interestPaid float64

			for m := 0; m < 12 && balance > 0; m++ {
				month++
				interest := balance * monthlyRate
				principal := emi - interest
				if principal > balance || month >= installments {
					principal = balance
				}
				// emi below interest would grow the balance forever
				if principal < 0 {
					principal = 0
				}

				balance -= principal
				principalPaid += principal
				interestPaid += interest
				cumulative += principal + interest
			}

			row := models.AmortizationRow{
				Year:             year,
				PrincipalPaid:    principalPaid,
				InterestPaid:     interestPaid,
				RemainingBalance: math.Max(0, balance),
				CumulativePaid:   cumulative,
			}
			if !yield(row) {
				return
			}
		}
	}
}
