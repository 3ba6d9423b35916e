package models

// InterestMethod selects how interest is charged over the tenure
type InterestMethod string

const (
	MethodReducing InterestMethod = "reducing"
	MethodFlat     InterestMethod = "flat"
)

// Label returns the display name used in reports
func (m InterestMethod) Label() string {
	if m == MethodFlat {
		return "Flat Rate"
	}
	return "Reducing Balance"
}

// CalculationInput is the raw form submitted by a client. Every field is free text.
type CalculationInput struct {
	PropertyPrice       string `json:"property_price"`
	DownPayment         string `json:"down_payment"`
	AnnualRate          string `json:"annual_rate"`
	TenureYears         string `json:"tenure_years"`
	InterestMethod      string `json:"interest_method"`
	MonthlyIncome       string `json:"monthly_income,omitempty"`
	ExistingObligations string `json:"existing_obligations,omitempty"`
	PrepaymentAmount    string `json:"prepayment_amount,omitempty"`
}

// LoanRequest is the normalized, immutable input of one compute cycle.
// Optional amounts are nil when the client did not supply them.
type LoanRequest struct {
	PropertyPrice       float64        `json:"property_price"`
	DownPayment         float64        `json:"down_payment"`
	AnnualRatePercent   float64        `json:"annual_rate_percent"`
	TenureYears         int            `json:"tenure_years"`
	Method              InterestMethod `json:"interest_method"`
	MonthlyIncome       *float64       `json:"monthly_income,omitempty"`
	ExistingObligations *float64       `json:"existing_obligations,omitempty"`
	PrepaymentAmount    *float64       `json:"prepayment_amount,omitempty"`
}

// LenderRate is one row of the lender comparison table
type LenderRate struct {
	Name              string  `json:"name" yaml:"name"`
	AnnualRatePercent float64 `json:"annual_rate_percent" yaml:"rate"`
}
