package domain

// LoanInput describes a fixed-rate amortizing loan.
type LoanInput struct {
	Principal         float64 `json:"principal" validate:"finite,gt=0,lte=1000000000"`
	AnnualRatePercent float64 `json:"annual_rate_percent" validate:"finite,gte=0,lte=100"`
	TermMonths        int     `json:"term_months" validate:"gt=0,lte=600"`
}

type AmortizationEntry struct {
	Month          int     `json:"month"`
	Payment        float64 `json:"payment"`
	Principal      float64 `json:"principal"`
	Interest       float64 `json:"interest"`
	Balance        float64 `json:"balance"`
	TotalPrincipal float64 `json:"total_principal"`
	TotalInterest  float64 `json:"total_interest"`
}

type LoanSummary struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
	// EffectiveRate is total interest as a percentage of principal, not an APR.
	EffectiveRate float64 `json:"effective_rate"`
	PayoffMonths  int     `json:"payoff_months"`
}

type ScheduleInput struct {
	LoanInput
	// BalloonDueMonths truncates the schedule at that month when > 0.
	BalloonDueMonths int `json:"balloon_due_months,omitempty" validate:"gte=0,lte=600"`
}

type ScheduleResult struct {
	Entries       []AmortizationEntry `json:"entries"`
	BalloonAmount float64             `json:"balloon_amount,omitempty"`
}

type RemainingBalanceInput struct {
	LoanInput
	MonthsElapsed int `json:"months_elapsed" validate:"gte=0"`
}

type RemainingBalanceResult struct {
	MonthsElapsed    int     `json:"months_elapsed"`
	RemainingBalance float64 `json:"remaining_balance"`
}
