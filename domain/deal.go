package domain

// DealInput holds the numbers of a fix-and-flip deal. Optional costs default to 0.
type DealInput struct {
	PurchasePrice    float64 `json:"purchase_price" validate:"finite,gte=0,lte=1000000000"`
	AfterRepairValue float64 `json:"after_repair_value" validate:"finite,gte=0,lte=1000000000"`
	RepairCosts      float64 `json:"repair_costs" validate:"finite,gte=0,lte=1000000000"`
	HoldingCosts     float64 `json:"holding_costs,omitempty" validate:"finite,gte=0,lte=1000000000"`
	ClosingCosts     float64 `json:"closing_costs,omitempty" validate:"finite,gte=0,lte=1000000000"`
	SellingCosts     float64 `json:"selling_costs,omitempty" validate:"finite,gte=0,lte=1000000000"`
}

type DealAnalysis struct {
	TotalInvestment    float64 `json:"total_investment"`
	ProjectedProfit    float64 `json:"projected_profit"`
	ReturnOnInvestment float64 `json:"return_on_investment"`
	MaxAllowableOffer  float64 `json:"max_allowable_offer"`
}

type RentalCashFlowInput struct {
	MonthlyRent     float64 `json:"monthly_rent" validate:"finite,gte=0,lte=1000000000"`
	MonthlyExpenses float64 `json:"monthly_expenses" validate:"finite,gte=0,lte=1000000000"`
	MonthlyMortgage float64 `json:"monthly_mortgage" validate:"finite,gte=0,lte=1000000000"`
	// VacancyRate is a fraction, 0.05 meaning 5%.
	VacancyRate float64 `json:"vacancy_rate" validate:"finite,gte=0,lte=1"`
}

type RentalCashFlow struct {
	GrossMonthlyIncome   float64 `json:"gross_monthly_income"`
	EffectiveGrossIncome float64 `json:"effective_gross_income"`
	MonthlyCashFlow      float64 `json:"monthly_cash_flow"`
	AnnualCashFlow       float64 `json:"annual_cash_flow"`
	AnnualNOI            float64 `json:"annual_noi"`
}

type PropertyMetricsInput struct {
	AnnualNOI         float64 `json:"annual_noi" validate:"finite,gte=-1000000000,lte=1000000000"`
	PropertyValue     float64 `json:"property_value" validate:"finite,gte=0,lte=1000000000"`
	AnnualDebtService float64 `json:"annual_debt_service" validate:"finite,gte=0,lte=1000000000"`
}

type PropertyMetrics struct {
	CapRate float64 `json:"cap_rate"`
	DSCR    float64 `json:"dscr"`
}

type SellerFinanceTerms struct {
	PurchasePrice     float64 `json:"purchase_price" validate:"finite,gt=0,lte=1000000000"`
	DownPayment       float64 `json:"down_payment" validate:"finite,gte=0,lte=1000000000,ltefield=PurchasePrice"`
	AnnualRatePercent float64 `json:"annual_rate_percent" validate:"finite,gte=0,lte=100"`
	TermMonths        int     `json:"term_months" validate:"gt=0,lte=600"`
	// BalloonDueMonths is optional; 0 means the note fully amortizes.
	BalloonDueMonths int `json:"balloon_due_months,omitempty" validate:"gte=0,lte=600"`
}

type SellerFinanceAnalysis struct {
	LoanAmount     float64 `json:"loan_amount"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalPayments  float64 `json:"total_payments"`
	BalloonMonth   int     `json:"balloon_month,omitempty"`
	BalloonAmount  float64 `json:"balloon_amount,omitempty"`
}

type SubjectToTerms struct {
	ExistingLoanBalance    float64 `json:"existing_loan_balance" validate:"finite,gte=0,lte=1000000000"`
	ExistingMonthlyPayment float64 `json:"existing_monthly_payment" validate:"finite,gte=0,lte=1000000000"`
	ExistingRatePercent    float64 `json:"existing_rate_percent" validate:"finite,gte=0,lte=100"`
	// YearsRemaining of 0 means unknown: the loan is run until the payment clears it.
	YearsRemaining         float64 `json:"years_remaining" validate:"finite,gte=0,lte=50"`
}

type SubjectToAnalysis struct {
	EquityAtClose         float64 `json:"equity_at_close"`
	CashToSeller          float64 `json:"cash_to_seller"`
	MonthlyPayment        float64 `json:"monthly_payment"`
	Year1PrincipalPaydown float64 `json:"year1_principal_paydown"`
	Year1Interest         float64 `json:"year1_interest"`
	RemainingInterest     float64 `json:"remaining_interest"`
	MonthsRemaining       int     `json:"months_remaining"`
}

type SubjectToInput struct {
	Terms            SubjectToTerms `json:"terms"`
	PurchasePrice    float64        `json:"purchase_price" validate:"finite,gte=0,lte=1000000000"`
	AfterRepairValue float64        `json:"after_repair_value" validate:"finite,gte=0,lte=1000000000"`
}

type MAOInput struct {
	AfterRepairValue float64   `json:"after_repair_value" validate:"finite,gte=0,lte=1000000000"`
	RepairCosts      float64   `json:"repair_costs" validate:"finite,gte=0,lte=1000000000"`
	Percents         []float64 `json:"percents,omitempty" validate:"max=20,dive,finite,gte=0,lte=100"`
}

type MAOResult struct {
	SeventyPercent   float64            `json:"seventy_percent"`
	SixtyFivePercent float64            `json:"sixty_five_percent"`
	AtPercent        map[string]float64 `json:"at_percent,omitempty"`
}
