// Package report renders calculation snapshots as plain-text summaries for
// download and e-mail. It is the only place currency amounts are formatted.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Dan9191/emi-service/internal/models"
)

const disclaimer = "Note: This calculation is for informational purposes only. " +
	"Actual loan terms may vary based on lender policies and your credit profile."

var printer = message.NewPrinter(language.English)

// Money rounds to whole currency units and groups thousands, e.g. ₹26,035
func Money(amount float64) string {
	units := decimal.NewFromFloat(amount).Round(0).IntPart()
	return printer.Sprintf("₹%d", units)
}

// Summary renders the full text report for a calculation
func Summary(calc *models.Calculation, generatedAt time.Time) string {
	req := calc.Request
	var b strings.Builder

	b.WriteString("MORTGAGE EMI SUMMARY REPORT\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.Format("2006-01-02 15:04:05 MST"))
	if calc.ID != "" {
		fmt.Fprintf(&b, "Reference: %s\n", calc.ID)
	}

	b.WriteString("\nLOAN DETAILS:\n")
	fmt.Fprintf(&b, "- Property Price: %s\n", Money(req.PropertyPrice))
	fmt.Fprintf(&b, "- Down Payment: %s\n", Money(req.DownPayment))
	fmt.Fprintf(&b, "- Loan Amount: %s\n", Money(calc.EMI.LoanAmount))
	fmt.Fprintf(&b, "- Interest Rate: %s%% per annum\n", decimal.NewFromFloat(req.AnnualRatePercent).String())
	fmt.Fprintf(&b, "- Loan Tenure: %d years\n", req.TenureYears)
	fmt.Fprintf(&b, "- Interest Type: %s\n", req.Method.Label())

	b.WriteString("\nMONTHLY EMI BREAKDOWN:\n")
	fmt.Fprintf(&b, "- Monthly EMI: %s\n", Money(calc.EMI.MonthlyEMI))
	fmt.Fprintf(&b, "- Total Interest: %s\n", Money(calc.EMI.TotalInterest))
	fmt.Fprintf(&b, "- Total Payment: %s\n", Money(calc.EMI.TotalPayment))

	if e := calc.Eligibility; e != nil {
		b.WriteString("\nELIGIBILITY CHECK:\n")
		if req.MonthlyIncome != nil {
			fmt.Fprintf(&b, "- Monthly Income: %s\n", Money(*req.MonthlyIncome))
		}
		obligations := 0.0
		if req.ExistingObligations != nil {
			obligations = *req.ExistingObligations
		}
		fmt.Fprintf(&b, "- Existing EMIs: %s\n", Money(obligations))
		// obligations above the limit leave a negative headroom, shown as nothing left
		fmt.Fprintf(&b, "- Maximum Affordable EMI: %s\n", Money(max(e.MaxAffordableEMI, 0)))
		fmt.Fprintf(&b, "- Maximum Loan Amount: %s\n", Money(e.MaxLoanAmount))
		if e.IsEligible {
			b.WriteString("- Loan Status: ELIGIBLE\n")
		} else {
			b.WriteString("- Loan Status: NOT ELIGIBLE\n")
		}
	}

	if p := calc.Prepayment; p != nil {
		b.WriteString("\nPREPAYMENT IMPACT:\n")
		fmt.Fprintf(&b, "- Prepayment Amount: %s\n", Money(p.PrepaymentAmount))
		fmt.Fprintf(&b, "- New Loan Tenure: %.1f years\n", p.RevisedTenureYears)
		fmt.Fprintf(&b, "- Interest Saved: %s\n", Money(p.InterestSaved))
		fmt.Fprintf(&b, "- Time Saved: %.1f years\n", p.TenureSavedYears)
	}

	if len(calc.Offers) > 0 {
		b.WriteString("\nLENDER COMPARISON:\n")
		for _, o := range calc.Offers {
			fmt.Fprintf(&b, "- %s (%.2f%%): EMI %s, Total Interest %s\n",
				o.LenderName, o.AnnualRatePercent, Money(o.MonthlyEMI), Money(o.TotalInterest))
		}
	}

	b.WriteString("\n---\n")
	b.WriteString(disclaimer)
	return b.String()
}
