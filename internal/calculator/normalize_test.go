package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/emi-service/internal/models"
)

func TestNormalize(t *testing.T) {
	cases := map[string]float64{
		"":            0,
		"   ":         0,
		"abc":         0,
		"5,000,000":   5000000,
		"₹ 25,00,000": 2500000,
		"-1200":       1200,
		"12.5":        125,
		"007":         7,
		"1e9":         19,
		"NaN":         0,
		"Infinity":    0,
	}
	for raw, want := range cases {
		assert.Equal(t, want, Normalize(raw), "Normalize(%q)", raw)
	}
}

func TestNormalizeOverflowIsZero(t *testing.T) {
	huge := make([]byte, 400)
	for i := range huge {
		huge[i] = '9'
	}
	assert.Equal(t, 0.0, Normalize(string(huge)))
}

func TestNormalizeDecimal(t *testing.T) {
	assert.Equal(t, 8.5, NormalizeDecimal("8.5"))
	assert.Equal(t, 8.65, NormalizeDecimal("8.65 %"))
	assert.Equal(t, 8.65, NormalizeDecimal("8.6.5"))
	assert.Equal(t, 0.0, NormalizeDecimal("."))
	assert.Equal(t, 0.0, NormalizeDecimal("rate"))
}

func TestParseRequestDefaults(t *testing.T) {
	req := ParseRequest(models.CalculationInput{
		PropertyPrice: "50,00,000",
		DownPayment:   "20,00,000",
	})

	assert.Equal(t, 5000000.0, req.PropertyPrice)
	assert.Equal(t, 2000000.0, req.DownPayment)
	assert.Equal(t, DefaultAnnualRate, req.AnnualRatePercent)
	assert.Equal(t, DefaultTenureYears, req.TenureYears)
	assert.Equal(t, models.MethodReducing, req.Method)
	assert.Nil(t, req.MonthlyIncome)
	assert.Nil(t, req.ExistingObligations)
	assert.Nil(t, req.PrepaymentAmount)
}

func TestParseRequestOptionalFields(t *testing.T) {
	req := ParseRequest(models.CalculationInput{
		PropertyPrice:       "4000000",
		DownPayment:         "1000000",
		AnnualRate:          "9.1",
		TenureYears:         "15",
		InterestMethod:      "FLAT",
		MonthlyIncome:       "1,00,000",
		ExistingObligations: "oops",
		PrepaymentAmount:    "200000",
	})

	assert.Equal(t, 9.1, req.AnnualRatePercent)
	assert.Equal(t, 15, req.TenureYears)
	assert.Equal(t, models.MethodFlat, req.Method)
	require.NotNil(t, req.MonthlyIncome)
	assert.Equal(t, 100000.0, *req.MonthlyIncome)
	require.NotNil(t, req.ExistingObligations)
	assert.Equal(t, 0.0, *req.ExistingObligations)
	require.NotNil(t, req.PrepaymentAmount)
	assert.Equal(t, 200000.0, *req.PrepaymentAmount)
}

func TestParseRequestUnknownMethodFallsBackToReducing(t *testing.T) {
	req := ParseRequest(models.CalculationInput{InterestMethod: "balloon"})
	assert.Equal(t, models.MethodReducing, req.Method)
}

func TestParseRequestHugeTenureStaysOutOfRange(t *testing.T) {
	req := ParseRequest(models.CalculationInput{TenureYears: "99999999999999999999999"})
	assert.Equal(t, MaxTenureYears+1, req.TenureYears)
}

func TestResolveLoanAmount(t *testing.T) {
	amount, err := ResolveLoanAmount(5000000, 2000000)
	require.NoError(t, err)
	assert.Equal(t, 3000000.0, amount)

	for _, tc := range []struct{ price, down float64 }{
		{0, 0},
		{-10, 0},
		{100, -1},
		{100, 100},
		{100, 150},
	} {
		_, err := ResolveLoanAmount(tc.price, tc.down)
		assert.ErrorIs(t, err, ErrInvalidLoan, "price=%v down=%v", tc.price, tc.down)
	}
}
