package models

import "time"

// EMIResult holds the installment and totals for a loan
type EMIResult struct {
	LoanAmount    float64 `json:"loan_amount"`
	MonthlyEMI    float64 `json:"monthly_emi"`
	TotalInterest float64 `json:"total_interest"`
	TotalPayment  float64 `json:"total_payment"` // LoanAmount + TotalInterest
}

// EligibilityVerdict compares the EMI against income-based affordability
type EligibilityVerdict struct {
	MaxAffordableEMI float64 `json:"max_affordable_emi"`
	MaxLoanAmount    float64 `json:"max_loan_amount"`
	IsEligible       bool    `json:"is_eligible"`
	Message          string  `json:"message"`
}

// AmortizationRow is the yearly breakdown of a schedule
type AmortizationRow struct {
	Year             int     `json:"year"`
	PrincipalPaid    float64 `json:"principal_paid"`
	InterestPaid     float64 `json:"interest_paid"`
	RemainingBalance float64 `json:"remaining_balance"`
	CumulativePaid   float64 `json:"cumulative_paid"`
}

// PrepaymentImpact describes a one-time lump sum that shortens the tenure
type PrepaymentImpact struct {
	PrepaymentAmount   float64 `json:"prepayment_amount"`
	RevisedTenureYears float64 `json:"revised_tenure_years"`
	TenureSavedYears   float64 `json:"tenure_saved_years"`
	InterestSaved      float64 `json:"interest_saved"`
	EffectiveEMI       float64 `json:"effective_emi"`
}

// BankOffer is the result of pricing the same loan at a lender's rate
type BankOffer struct {
	LenderName        string  `json:"lender_name"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	MonthlyEMI        float64 `json:"monthly_emi"`
	TotalInterest     float64 `json:"total_interest"`
	TotalPayment      float64 `json:"total_payment"`
}

// Calculation is the complete result set of one compute cycle.
// ID, CreatedAt and Signature are assigned when the snapshot is stored.
type Calculation struct {
	ID          string              `json:"id,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	Signature   string              `json:"signature,omitempty"`
	Request     LoanRequest         `json:"request"`
	EMI         EMIResult           `json:"emi"`
	Eligibility *EligibilityVerdict `json:"eligibility,omitempty"`
	Schedule    []AmortizationRow   `json:"schedule"`
	Prepayment  *PrepaymentImpact   `json:"prepayment,omitempty"`
	Offers      []BankOffer         `json:"offers"`
}
