package service

import (
	"math"

	"dealdesk/domain"
)

// maxTermMonths bounds the schedules the calculators walk: 100 years.
const maxTermMonths = 1200

// finite maps NaN and ±Inf to 0 so every calculator falls into its
// degenerate-input guard instead of propagating them.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CalculateMonthlyPayment returns the fixed payment of an amortizing loan.
// Non-positive principal or term yields 0, a non-positive rate yields the
// straight-line payment principal/termMonths.
func CalculateMonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	principal = finite(principal)
	annualRatePercent = finite(annualRatePercent)
	if principal <= 0 || termMonths <= 0 {
		return 0
	}
	if annualRatePercent <= 0 {
		return principal / float64(termMonths)
	}

	i := annualRatePercent / 100 / 12
	n := float64(termMonths)

	// 1 - (1+i)^-n; log1p keeps rates too small to move 1+i from collapsing to 0
	discount := -math.Expm1(-n * math.Log1p(i))
	if discount <= 0 {
		return principal / n
	}
	return finite(principal * i / discount)
}

// GenerateAmortizationSchedule walks the loan month by month, recomputing
// interest off the remaining balance. When balloonDueMonths is positive and
// shorter than the term the schedule stops there and the last balance is the
// balloon amount. Invalid input, terms beyond maxTermMonths and amounts that
// overflow return an empty schedule.
func GenerateAmortizationSchedule(principal, annualRatePercent float64, termMonths, balloonDueMonths int) []domain.AmortizationEntry {
	principal = finite(principal)
	annualRatePercent = finite(annualRatePercent)
	if principal <= 0 || termMonths <= 0 || termMonths > maxTermMonths {
		return []domain.AmortizationEntry{}
	}

	payment := CalculateMonthlyPayment(principal, annualRatePercent, termMonths)
	if payment <= 0 {
		return []domain.AmortizationEntry{}
	}
	monthlyRate := 0.0
	if annualRatePercent > 0 {
		monthlyRate = annualRatePercent / 100 / 12
	}

	lastMonth := termMonths
	if balloonDueMonths > 0 && balloonDueMonths < termMonths {
		lastMonth = balloonDueMonths
	}

	schedule := make([]domain.AmortizationEntry, 0, lastMonth)
	balance := principal
	var totalPrincipal, totalInterest float64

	for month := 1; month <= lastMonth && balance > 0; month++ {
		interest := balance * monthlyRate
		principalPortion := payment - interest
		entryPayment := payment

		// last scheduled month or overshoot: clear whatever is left
		if month == termMonths || principalPortion >= balance {
			principalPortion = balance
			entryPayment = principalPortion + interest
		}

		balance = math.Max(0, balance-principalPortion)
		totalPrincipal += principalPortion
		totalInterest += interest
		if math.IsInf(totalInterest+totalPrincipal+entryPayment, 0) {
			return []domain.AmortizationEntry{}
		}

		schedule = append(schedule, domain.AmortizationEntry{
			Month:          month,
			Payment:        entryPayment,
			Principal:      principalPortion,
			Interest:       interest,
			Balance:        balance,
			TotalPrincipal: totalPrincipal,
			TotalInterest:  totalInterest,
		})
	}

	return schedule
}

// CalculateTotalInterest sums the interest paid over the full term.
func CalculateTotalInterest(principal, annualRatePercent float64, termMonths int) float64 {
	schedule := GenerateAmortizationSchedule(principal, annualRatePercent, termMonths, 0)
	if len(schedule) == 0 {
		return 0
	}
	return schedule[len(schedule)-1].TotalInterest
}

func GetLoanSummary(principal, annualRatePercent float64, termMonths int) domain.LoanSummary {
	schedule := GenerateAmortizationSchedule(principal, annualRatePercent, termMonths, 0)
	if len(schedule) == 0 {
		return domain.LoanSummary{}
	}

	last := schedule[len(schedule)-1]
	summary := domain.LoanSummary{
		MonthlyPayment: CalculateMonthlyPayment(principal, annualRatePercent, termMonths),
		TotalPayment:   last.TotalPrincipal + last.TotalInterest,
		TotalInterest:  last.TotalInterest,
		PayoffMonths:   last.Month,
		EffectiveRate:  finite(last.TotalInterest / finite(principal) * 100),
	}
	return summary
}

// CalculateRemainingBalance reads the balance after monthsElapsed payments.
func CalculateRemainingBalance(principal, annualRatePercent float64, termMonths, monthsElapsed int) float64 {
	principal = finite(principal)
	if principal <= 0 || termMonths <= 0 || termMonths > maxTermMonths {
		return 0
	}
	if monthsElapsed <= 0 {
		return principal
	}
	if monthsElapsed >= termMonths {
		return 0
	}

	schedule := GenerateAmortizationSchedule(principal, annualRatePercent, termMonths, monthsElapsed)
	if len(schedule) < monthsElapsed {
		return 0
	}
	return schedule[monthsElapsed-1].Balance
}
