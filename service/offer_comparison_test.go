package service

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/domain"
)

func strategies(offers []domain.OfferComparison) []domain.Strategy {
	out := make([]domain.Strategy, len(offers))
	for i, o := range offers {
		out[i] = o.Strategy
	}
	return out
}

func TestSortOffersByROI_Descending(t *testing.T) {
	offers := []domain.OfferComparison{
		{Strategy: domain.StrategyCash, ROI: 10},
		{Strategy: domain.StrategySellerFinance, ROI: 25},
		{Strategy: domain.StrategySubjectTo, ROI: 18},
	}

	sortOffersByROI(offers)

	assert.Equal(t, []domain.Strategy{
		domain.StrategySellerFinance,
		domain.StrategySubjectTo,
		domain.StrategyCash,
	}, strategies(offers))
}

func TestSortOffersByROI_TiesKeepInsertionOrder(t *testing.T) {
	offers := []domain.OfferComparison{
		{Strategy: domain.StrategyCash, ROI: 12},
		{Strategy: domain.StrategySellerFinance, ROI: 12},
		{Strategy: domain.StrategySubjectTo, ROI: 12},
	}

	sortOffersByROI(offers)

	assert.Equal(t, []domain.Strategy{
		domain.StrategyCash,
		domain.StrategySellerFinance,
		domain.StrategySubjectTo,
	}, strategies(offers))
}

func TestCompareOffers_AllStrategies(t *testing.T) {
	input := domain.OfferComparisonInput{
		AfterRepairValue: 300000,
		RepairCosts:      30000,
		ClosingCosts:     5000,
		Cash:             &domain.CashOffer{PurchasePrice: 180000},
		SellerFinance: &domain.SellerFinanceTerms{
			PurchasePrice:     200000,
			DownPayment:       10000,
			AnnualRatePercent: 5,
			TermMonths:        360,
			BalloonDueMonths:  36,
		},
		SubjectTo: &domain.SubjectToOffer{
			PurchasePrice: 190000,
			Terms: domain.SubjectToTerms{
				ExistingLoanBalance:    170000,
				ExistingMonthlyPayment: 1100,
				ExistingRatePercent:    3.5,
				YearsRemaining:         25,
			},
		},
	}

	offers := CompareOffers(input)
	require.Len(t, offers, 3)

	for i := 1; i < len(offers); i++ {
		assert.GreaterOrEqual(t, offers[i-1].ROI, offers[i].ROI)
	}

	byStrategy := map[domain.Strategy]domain.OfferComparison{}
	for _, o := range offers {
		byStrategy[o.Strategy] = o
		assert.NotEmpty(t, o.Pros)
		assert.NotEmpty(t, o.Cons)
	}

	cash := byStrategy[domain.StrategyCash]
	assert.Equal(t, 215000.0, cash.TotalCost)
	assert.Equal(t, 185000.0, cash.CashRequired)
	assert.Zero(t, cash.MonthlyPayment)
	assert.InDelta(t, (300000.0-215000)/215000*100, cash.ROI, tolerance)

	sf := byStrategy[domain.StrategySellerFinance]
	assert.Equal(t, 15000.0, sf.CashRequired)
	assert.InDelta(t, CalculateMonthlyPayment(190000, 5, 360), sf.MonthlyPayment, tolerance)

	sub := byStrategy[domain.StrategySubjectTo]
	assert.Equal(t, 25000.0, sub.CashRequired)
	assert.Equal(t, 1100.0, sub.MonthlyPayment)
}

func TestCompareOffers_SkipsMissingStrategies(t *testing.T) {
	offers := CompareOffers(domain.OfferComparisonInput{
		AfterRepairValue: 100000,
		Cash:             &domain.CashOffer{PurchasePrice: 60000},
	})
	require.Len(t, offers, 1)
	assert.Equal(t, domain.StrategyCash, offers[0].Strategy)

	assert.Empty(t, CompareOffers(domain.OfferComparisonInput{AfterRepairValue: 100000}))
}

func TestCompareOffers_ZeroCostHasZeroROI(t *testing.T) {
	offers := CompareOffers(domain.OfferComparisonInput{
		AfterRepairValue: 100000,
		Cash:             &domain.CashOffer{},
	})
	require.Len(t, offers, 1)
	assert.Zero(t, offers[0].ROI)
}

func TestCompareOffers_OrdersByComputedROI(t *testing.T) {
	offers := CompareOffers(domain.OfferComparisonInput{
		AfterRepairValue: 300000,
		Cash:             &domain.CashOffer{PurchasePrice: 250000},
		SellerFinance: &domain.SellerFinanceTerms{
			PurchasePrice: 150000,
			TermMonths:    120,
		},
		SubjectTo: &domain.SubjectToOffer{
			PurchasePrice: 200000,
			Terms: domain.SubjectToTerms{
				ExistingLoanBalance:    100000,
				ExistingMonthlyPayment: 1000,
				YearsRemaining:         10,
			},
		},
	})

	require.Len(t, offers, 3)
	assert.Equal(t, []domain.Strategy{
		domain.StrategySellerFinance,
		domain.StrategySubjectTo,
		domain.StrategyCash,
	}, strategies(offers))

	assert.InDelta(t, 100, offers[0].ROI, tolerance)
	assert.InDelta(t, 50, offers[1].ROI, tolerance)
	assert.InDelta(t, 20, offers[2].ROI, tolerance)
}

func TestCompareOffers_SubjectToWithoutTermCountsInterest(t *testing.T) {
	offers := CompareOffers(domain.OfferComparisonInput{
		AfterRepairValue: 220000,
		SubjectTo: &domain.SubjectToOffer{
			PurchasePrice: 160000,
			Terms: domain.SubjectToTerms{
				ExistingLoanBalance:    150000,
				ExistingMonthlyPayment: 1000,
				ExistingRatePercent:    4,
			},
		},
	})

	require.Len(t, offers, 1)
	assert.Greater(t, offers[0].TotalCost, 160000.0+50000)
	assert.Less(t, offers[0].ROI, (220000.0-160000)/160000*100)
}

func TestCompareOffers_OverflowStaysFinite(t *testing.T) {
	offers := CompareOffers(domain.OfferComparisonInput{
		AfterRepairValue: math.MaxFloat64,
		RepairCosts:      math.MaxFloat64,
		ClosingCosts:     math.MaxFloat64,
		Cash:             &domain.CashOffer{PurchasePrice: math.MaxFloat64},
	})

	require.Len(t, offers, 1)
	for _, v := range []float64{offers[0].TotalCost, offers[0].CashRequired, offers[0].ROI} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestCompareOffers_ProsAndConsAreCopies(t *testing.T) {
	input := domain.OfferComparisonInput{
		AfterRepairValue: 100000,
		Cash:             &domain.CashOffer{PurchasePrice: 60000},
	}

	first := CompareOffers(input)
	want := slices.Clone(first[0].Pros)
	first[0].Pros[0] = "changed"
	first[0].Cons = append(first[0].Cons[:0], "changed")

	second := CompareOffers(input)
	assert.Equal(t, want, second[0].Pros)
	assert.NotContains(t, second[0].Cons, "changed")
}
