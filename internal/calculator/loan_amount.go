package calculator

// ResolveLoanAmount derives the principal from property price and down payment
func ResolveLoanAmount(propertyPrice, downPayment float64) (float64, error) {
	if propertyPrice <= 0 || downPayment < 0 || downPayment >= propertyPrice {
		return 0, ErrInvalidLoan
	}
	return propertyPrice - downPayment, nil
}
