package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/Dan9191/emi-service/internal/models"
)

const (
	DefaultAnnualRate  = 8.5
	DefaultTenureYears = 20
	MinTenureYears     = 1
	MaxTenureYears     = 30
)

// Normalize strips every non-digit character and parses the rest as a whole
// currency amount. Empty or unparseable input yields 0.
func Normalize(raw string) float64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	return parseFinite(digits)
}

// NormalizeDecimal is Normalize for fields that carry a fractional part,
// such as the annual rate. Only the first decimal point is kept.
func NormalizeDecimal(raw string) float64 {
	var b strings.Builder
	seenPoint := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			seenPoint = true
			b.WriteRune(r)
		}
	}
	return parseFinite(b.String())
}

func parseFinite(s string) float64 {
	if s == "" || s == "." {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseMethod maps free text to an interest method, defaulting to reducing balance
func ParseMethod(raw string) models.InterestMethod {
	if strings.EqualFold(strings.TrimSpace(raw), string(models.MethodFlat)) {
		return models.MethodFlat
	}
	return models.MethodReducing
}

// ParseRequest turns raw form input into an immutable LoanRequest.
// Empty rate and tenure fall back to the calculator defaults; empty optional
// amounts stay nil.
func ParseRequest(in models.CalculationInput) models.LoanRequest {
	req := models.LoanRequest{
		PropertyPrice:     Normalize(in.PropertyPrice),
		DownPayment:       Normalize(in.DownPayment),
		AnnualRatePercent: DefaultAnnualRate,
		TenureYears:       DefaultTenureYears,
		Method:            ParseMethod(in.InterestMethod),
	}
	if strings.TrimSpace(in.AnnualRate) != "" {
		req.AnnualRatePercent = NormalizeDecimal(in.AnnualRate)
	}
	if strings.TrimSpace(in.TenureYears) != "" {
		years := Normalize(in.TenureYears)
		if years > MaxTenureYears {
			// out of range either way, keep it from overflowing int
			years = MaxTenureYears + 1
		}
		req.TenureYears = int(years)
	}
	req.MonthlyIncome = optional(in.MonthlyIncome)
	req.ExistingObligations = optional(in.ExistingObligations)
	req.PrepaymentAmount = optional(in.PrepaymentAmount)
	return req
}

func optional(raw string) *float64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	v := Normalize(raw)
	return &v
}
