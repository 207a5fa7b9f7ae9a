package service

import (
	"math"

	"dealdesk/domain"
)

const (
	// MAORulePercent is the share of ARV an investor pays before repairs.
	MAORulePercent       = 70.0
	conservativeMAORule  = 65.0
	monthsPerYear        = 12
	subjectToPaydownSpan = 12
)

// AnalyzeDeal computes flip profitability and the 70%-rule offer ceiling.
func AnalyzeDeal(input domain.DealInput) domain.DealAnalysis {
	purchase := finite(input.PurchasePrice)
	arv := finite(input.AfterRepairValue)
	repairs := finite(input.RepairCosts)

	total := finite(purchase + repairs + finite(input.HoldingCosts) + finite(input.ClosingCosts) + finite(input.SellingCosts))
	profit := finite(arv - total)

	analysis := domain.DealAnalysis{
		TotalInvestment:   total,
		ProjectedProfit:   profit,
		MaxAllowableOffer: maxAllowableOffer(arv, repairs, MAORulePercent),
	}
	if total > 0 {
		analysis.ReturnOnInvestment = finite(profit / total * 100)
	}
	return analysis
}

func maxAllowableOffer(arv, repairs, percent float64) float64 {
	return finite(math.Max(0, finite(arv)*finite(percent)/100-finite(repairs)))
}

func CalculateRentalCashFlow(input domain.RentalCashFlowInput) domain.RentalCashFlow {
	rent := finite(input.MonthlyRent)
	expenses := finite(input.MonthlyExpenses)

	effective := rent * (1 - finite(input.VacancyRate))
	monthly := effective - expenses - finite(input.MonthlyMortgage)

	return domain.RentalCashFlow{
		GrossMonthlyIncome:   rent,
		EffectiveGrossIncome: finite(effective),
		MonthlyCashFlow:      finite(monthly),
		AnnualCashFlow:       finite(monthly * monthsPerYear),
		AnnualNOI:            finite((effective - expenses) * monthsPerYear),
	}
}

// CalculateCapRate returns annual NOI as a percentage of property value.
func CalculateCapRate(annualNOI, propertyValue float64) float64 {
	propertyValue = finite(propertyValue)
	if propertyValue <= 0 {
		return 0
	}
	return finite(finite(annualNOI) * 100 / propertyValue)
}

// CalculateDSCR returns the debt service coverage ratio.
func CalculateDSCR(annualNOI, annualDebtService float64) float64 {
	annualDebtService = finite(annualDebtService)
	if annualDebtService <= 0 {
		return 0
	}
	return finite(finite(annualNOI) / annualDebtService)
}

// AnalyzeSellerFinance amortizes the seller-carried note. With a balloon the
// schedule stops at the balloon month and the remaining balance is reported.
func AnalyzeSellerFinance(terms domain.SellerFinanceTerms) domain.SellerFinanceAnalysis {
	loanAmount := math.Max(0, finite(terms.PurchasePrice)-finite(terms.DownPayment))

	analysis := domain.SellerFinanceAnalysis{
		LoanAmount:     loanAmount,
		MonthlyPayment: CalculateMonthlyPayment(loanAmount, terms.AnnualRatePercent, terms.TermMonths),
	}

	schedule := GenerateAmortizationSchedule(loanAmount, terms.AnnualRatePercent, terms.TermMonths, terms.BalloonDueMonths)
	if len(schedule) == 0 {
		return analysis
	}

	last := schedule[len(schedule)-1]
	analysis.TotalInterest = last.TotalInterest
	for _, entry := range schedule {
		analysis.TotalPayments += entry.Payment
	}

	if terms.BalloonDueMonths > 0 && terms.BalloonDueMonths < terms.TermMonths && last.Balance > 0 {
		analysis.BalloonMonth = last.Month
		analysis.BalloonAmount = last.Balance
		analysis.TotalPayments += last.Balance
	}
	analysis.TotalPayments = finite(analysis.TotalPayments)
	return analysis
}

// AnalyzeSubjectTo walks the existing loan at its current payment: the first
// 12 months give the year-1 split, the whole horizon gives the interest still
// owed. With YearsRemaining unset the loan runs until the payment clears it,
// up to maxTermMonths, and MonthsRemaining reports the months that took.
func AnalyzeSubjectTo(terms domain.SubjectToTerms, purchasePrice, arv float64) domain.SubjectToAnalysis {
	balance := math.Max(0, finite(terms.ExistingLoanBalance))
	payment := math.Max(0, finite(terms.ExistingMonthlyPayment))
	monthlyRate := math.Max(0, finite(terms.ExistingRatePercent)) / 100 / 12
	monthsRemaining := int(math.Round(math.Min(math.Max(0, finite(terms.YearsRemaining))*monthsPerYear, maxTermMonths)))

	analysis := domain.SubjectToAnalysis{
		EquityAtClose:   finite(finite(arv) - balance),
		CashToSeller:    math.Max(0, finite(finite(purchasePrice)-balance)),
		MonthlyPayment:  payment,
		MonthsRemaining: monthsRemaining,
	}

	horizon := monthsRemaining
	if horizon <= 0 {
		horizon = maxTermMonths
	}
	horizon = max(horizon, subjectToPaydownSpan)

	remaining := balance
	month := 0
	for month < horizon && remaining > 0 {
		month++
		interest := remaining * monthlyRate
		principal := math.Min(math.Max(0, payment-interest), remaining)
		remaining -= principal

		if month <= subjectToPaydownSpan {
			analysis.Year1PrincipalPaydown += principal
			analysis.Year1Interest += interest
		}
		analysis.RemainingInterest += interest
	}
	if monthsRemaining == 0 {
		analysis.MonthsRemaining = month
	}

	analysis.Year1PrincipalPaydown = finite(analysis.Year1PrincipalPaydown)
	analysis.Year1Interest = finite(analysis.Year1Interest)
	analysis.RemainingInterest = finite(analysis.RemainingInterest)
	return analysis
}
