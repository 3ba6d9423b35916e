package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/emi-service/internal/models"
)

func TestCompareLendersKeepsTableOrder(t *testing.T) {
	rates := []models.LenderRate{
		{Name: "Kotak", AnnualRatePercent: 8.80},
		{Name: "SBI", AnnualRatePercent: 8.50},
		{Name: "HDFC", AnnualRatePercent: 8.65},
	}

	offers, err := CompareLenders(3000000, 20, rates)
	require.NoError(t, err)
	require.Len(t, offers, 3)

	for i, offer := range offers {
		assert.Equal(t, rates[i].Name, offer.LenderName)
		assert.Equal(t, rates[i].AnnualRatePercent, offer.AnnualRatePercent)
		assert.InDelta(t, 3000000+offer.TotalInterest, offer.TotalPayment, 0.01)
	}

	assert.InDelta(t, 26034.70, offers[1].MonthlyEMI, 0.01)
	assert.InDelta(t, 26320.21, offers[2].MonthlyEMI, 0.01)
}

func TestCompareLendersMatchesEngine(t *testing.T) {
	offers, err := CompareLenders(1800000, 12, DefaultLenderRates)
	require.NoError(t, err)
	require.Len(t, offers, len(DefaultLenderRates))

	for i, lender := range DefaultLenderRates {
		res, err := ComputeEMI(1800000, lender.AnnualRatePercent, 12, models.MethodReducing)
		require.NoError(t, err)
		assert.Equal(t, res.MonthlyEMI, offers[i].MonthlyEMI)
		assert.Equal(t, res.TotalInterest, offers[i].TotalInterest)
	}
}

func TestCompareLendersEmptyTable(t *testing.T) {
	offers, err := CompareLenders(1000000, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestCompareLendersRejectsBadRate(t *testing.T) {
	_, err := CompareLenders(1000000, 10, []models.LenderRate{
		{Name: "SBI", AnnualRatePercent: 8.5},
		{Name: "Broken", AnnualRatePercent: 0},
	})
	assert.ErrorIs(t, err, ErrDegenerateRate)
	assert.Contains(t, err.Error(), "Broken")
}
