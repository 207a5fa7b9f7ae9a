package service

import (
	"slices"
	"sort"

	"dealdesk/domain"
)

var (
	cashPros = []string{
		"Fastest close",
		"Strongest negotiating position",
		"No monthly debt service",
	}
	cashCons = []string{
		"Most cash tied up in the deal",
		"No leverage on returns",
	}
	sellerFinancePros = []string{
		"Low cash at close",
		"Flexible, negotiable terms",
		"No bank qualification",
	}
	sellerFinanceCons = []string{
		"Interest adds to total cost",
		"Balloon may force a refinance",
	}
	subjectToPros = []string{
		"Keeps the existing loan rate",
		"Minimal cash to seller",
		"Immediate equity capture",
	}
	subjectToCons = []string{
		"Due-on-sale clause risk",
		"Loan stays in the seller's name",
	}
)

// CompareOffers builds one row per supplied strategy and orders them by ROI,
// highest first. Equal ROIs keep cash, seller finance, subject-to order.
func CompareOffers(input domain.OfferComparisonInput) []domain.OfferComparison {
	arv := finite(input.AfterRepairValue)
	extra := finite(finite(input.RepairCosts) + finite(input.ClosingCosts))
	closing := finite(input.ClosingCosts)

	offers := make([]domain.OfferComparison, 0, 3)

	if input.Cash != nil {
		price := finite(input.Cash.PurchasePrice)
		offers = append(offers, domain.OfferComparison{
			Strategy:     domain.StrategyCash,
			TotalCost:    price + extra,
			CashRequired: price + closing,
			Pros:         slices.Clone(cashPros),
			Cons:         slices.Clone(cashCons),
		})
	}

	if input.SellerFinance != nil {
		terms := *input.SellerFinance
		analysis := AnalyzeSellerFinance(terms)
		offers = append(offers, domain.OfferComparison{
			Strategy:       domain.StrategySellerFinance,
			TotalCost:      finite(terms.PurchasePrice) + analysis.TotalInterest + extra,
			MonthlyPayment: analysis.MonthlyPayment,
			CashRequired:   finite(terms.DownPayment) + closing,
			Pros:           slices.Clone(sellerFinancePros),
			Cons:           slices.Clone(sellerFinanceCons),
		})
	}

	if input.SubjectTo != nil {
		price := finite(input.SubjectTo.PurchasePrice)
		analysis := AnalyzeSubjectTo(input.SubjectTo.Terms, price, arv)
		offers = append(offers, domain.OfferComparison{
			Strategy:       domain.StrategySubjectTo,
			TotalCost:      price + analysis.RemainingInterest + extra,
			MonthlyPayment: analysis.MonthlyPayment,
			CashRequired:   analysis.CashToSeller + closing,
			Pros:           slices.Clone(subjectToPros),
			Cons:           slices.Clone(subjectToCons),
		})
	}

	for i := range offers {
		offers[i].TotalCost = finite(offers[i].TotalCost)
		offers[i].CashRequired = finite(offers[i].CashRequired)
		offers[i].ROI = offerROI(arv, offers[i].TotalCost)
	}
	sortOffersByROI(offers)
	return offers
}

func offerROI(arv, totalCost float64) float64 {
	if totalCost <= 0 {
		return 0
	}
	return finite((arv - totalCost) / totalCost * 100)
}

func sortOffersByROI(offers []domain.OfferComparison) {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].ROI > offers[j].ROI
	})
}
