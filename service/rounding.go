package service

import (
	"math"

	"github.com/shopspring/decimal"

	"dealdesk/domain"
)

// roundCurrency rounds to cents, half away from zero. NaN and ±Inf become 0.
func roundCurrency(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

func roundSummary(s domain.LoanSummary) domain.LoanSummary {
	s.MonthlyPayment = roundCurrency(s.MonthlyPayment)
	s.TotalPayment = roundCurrency(s.TotalPayment)
	s.TotalInterest = roundCurrency(s.TotalInterest)
	s.EffectiveRate = roundCurrency(s.EffectiveRate)
	return s
}

func roundEntries(entries []domain.AmortizationEntry) []domain.AmortizationEntry {
	out := make([]domain.AmortizationEntry, len(entries))
	for i, e := range entries {
		out[i] = domain.AmortizationEntry{
			Month:          e.Month,
			Payment:        roundCurrency(e.Payment),
			Principal:      roundCurrency(e.Principal),
			Interest:       roundCurrency(e.Interest),
			Balance:        roundCurrency(e.Balance),
			TotalPrincipal: roundCurrency(e.TotalPrincipal),
			TotalInterest:  roundCurrency(e.TotalInterest),
		}
	}
	return out
}

func roundOffers(offers []domain.OfferComparison) []domain.OfferComparison {
	for i := range offers {
		offers[i].TotalCost = roundCurrency(offers[i].TotalCost)
		offers[i].MonthlyPayment = roundCurrency(offers[i].MonthlyPayment)
		offers[i].CashRequired = roundCurrency(offers[i].CashRequired)
		offers[i].ROI = roundCurrency(offers[i].ROI)
	}
	return offers
}
