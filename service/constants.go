package service

const (
	kindLoanSummary      = "loan_summary"
	kindLoanSchedule     = "loan_schedule"
	kindRemainingBalance = "remaining_balance"
	kindDealAnalysis     = "deal_analysis"
	kindRentalCashFlow   = "rental_cash_flow"
	kindPropertyMetrics  = "property_metrics"
	kindSellerFinance    = "seller_finance"
	kindSubjectTo        = "subject_to"
	kindOfferComparison  = "offer_comparison"
	kindMAO              = "mao"
)
