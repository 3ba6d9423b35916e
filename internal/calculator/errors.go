package calculator

import "errors"

var (
	// ErrInvalidLoan is returned when no positive principal can be derived
	ErrInvalidLoan = errors.New("cannot compute: down payment must be less than property price")
	// ErrDegenerateRate is returned when the rate or tenure would make the formulas undefined
	ErrDegenerateRate = errors.New("cannot compute: interest rate and tenure must be positive")
	// ErrTenureOutOfRange is returned for tenures outside the supported range
	ErrTenureOutOfRange = errors.New("cannot compute: tenure must be between 1 and 30 years")
	// ErrPrepaymentInfeasible is returned when the EMI no longer covers the monthly interest
	ErrPrepaymentInfeasible = errors.New("cannot compute: EMI does not cover interest on the prepaid balance")
)
