package domain

type Strategy string

const (
	StrategyCash          Strategy = "cash"
	StrategySellerFinance Strategy = "seller_finance"
	StrategySubjectTo     Strategy = "subject_to"
)

type CashOffer struct {
	PurchasePrice float64 `json:"purchase_price" validate:"finite,gt=0,lte=1000000000"`
}

type SubjectToOffer struct {
	PurchasePrice float64        `json:"purchase_price" validate:"finite,gte=0,lte=1000000000"`
	Terms         SubjectToTerms `json:"terms"`
}

// OfferComparisonInput carries up to three strategies; nil ones are skipped.
type OfferComparisonInput struct {
	AfterRepairValue float64             `json:"after_repair_value" validate:"finite,gte=0,lte=1000000000"`
	RepairCosts      float64             `json:"repair_costs" validate:"finite,gte=0,lte=1000000000"`
	ClosingCosts     float64             `json:"closing_costs,omitempty" validate:"finite,gte=0,lte=1000000000"`
	Cash             *CashOffer          `json:"cash,omitempty"`
	SellerFinance    *SellerFinanceTerms `json:"seller_finance,omitempty"`
	SubjectTo        *SubjectToOffer     `json:"subject_to,omitempty"`
}

type OfferComparison struct {
	Strategy       Strategy `json:"strategy"`
	TotalCost      float64  `json:"total_cost"`
	MonthlyPayment float64  `json:"monthly_payment"`
	CashRequired   float64  `json:"cash_required"`
	ROI            float64  `json:"roi"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
}
