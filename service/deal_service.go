package service

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"dealdesk/domain"
	"dealdesk/repository"
)

type DealService struct {
	repo     repository.CalculationRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	validate *validator.Validate
	log      zerolog.Logger
}

func NewDealService(
	repo repository.CalculationRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *DealService {
	return &DealService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		validate: newValidator(),
		log:      log.With().Str("component", "deal_service").Logger(),
	}
}

func (s *DealService) AnalyzeDeal(ctx context.Context, input domain.DealInput) (domain.DealAnalysis, error) {
	if err := validateInput(s.validate, input); err != nil {
		return domain.DealAnalysis{}, err
	}

	a := AnalyzeDeal(input)
	result := domain.DealAnalysis{
		TotalInvestment:    roundCurrency(a.TotalInvestment),
		ProjectedProfit:    roundCurrency(a.ProjectedProfit),
		ReturnOnInvestment: roundCurrency(a.ReturnOnInvestment),
		MaxAllowableOffer:  roundCurrency(a.MaxAllowableOffer),
	}

	s.record(ctx, kindDealAnalysis, input, result)
	return result, nil
}

func (s *DealService) RentalCashFlow(ctx context.Context, input domain.RentalCashFlowInput) (domain.RentalCashFlow, error) {
	if err := validateInput(s.validate, input); err != nil {
		return domain.RentalCashFlow{}, err
	}

	cf := CalculateRentalCashFlow(input)
	result := domain.RentalCashFlow{
		GrossMonthlyIncome:   roundCurrency(cf.GrossMonthlyIncome),
		EffectiveGrossIncome: roundCurrency(cf.EffectiveGrossIncome),
		MonthlyCashFlow:      roundCurrency(cf.MonthlyCashFlow),
		AnnualCashFlow:       roundCurrency(cf.AnnualCashFlow),
		AnnualNOI:            roundCurrency(cf.AnnualNOI),
	}

	s.record(ctx, kindRentalCashFlow, input, result)
	return result, nil
}

// Metrics returns cap rate and DSCR for one property.
func (s *DealService) Metrics(ctx context.Context, input domain.PropertyMetricsInput) (domain.PropertyMetrics, error) {
	if err := validateInput(s.validate, input); err != nil {
		return domain.PropertyMetrics{}, err
	}

	result := domain.PropertyMetrics{
		CapRate: roundCurrency(CalculateCapRate(input.AnnualNOI, input.PropertyValue)),
		DSCR:    roundCurrency(CalculateDSCR(input.AnnualNOI, input.AnnualDebtService)),
	}

	s.record(ctx, kindPropertyMetrics, input, result)
	return result, nil
}

func (s *DealService) SellerFinance(ctx context.Context, terms domain.SellerFinanceTerms) (domain.SellerFinanceAnalysis, error) {
	if err := validateInput(s.validate, terms); err != nil {
		return domain.SellerFinanceAnalysis{}, err
	}

	result := cached(ctx, s.cache, s.cacheTTL, s.log, kindSellerFinance, terms, func() domain.SellerFinanceAnalysis {
		a := AnalyzeSellerFinance(terms)
		a.LoanAmount = roundCurrency(a.LoanAmount)
		a.MonthlyPayment = roundCurrency(a.MonthlyPayment)
		a.TotalInterest = roundCurrency(a.TotalInterest)
		a.TotalPayments = roundCurrency(a.TotalPayments)
		a.BalloonAmount = roundCurrency(a.BalloonAmount)
		return a
	})

	s.record(ctx, kindSellerFinance, terms, result)
	return result, nil
}

func (s *DealService) SubjectTo(ctx context.Context, input domain.SubjectToInput) (domain.SubjectToAnalysis, error) {
	if err := validateInput(s.validate, input); err != nil {
		return domain.SubjectToAnalysis{}, err
	}

	a := AnalyzeSubjectTo(input.Terms, input.PurchasePrice, input.AfterRepairValue)
	a.EquityAtClose = roundCurrency(a.EquityAtClose)
	a.CashToSeller = roundCurrency(a.CashToSeller)
	a.MonthlyPayment = roundCurrency(a.MonthlyPayment)
	a.Year1PrincipalPaydown = roundCurrency(a.Year1PrincipalPaydown)
	a.Year1Interest = roundCurrency(a.Year1Interest)
	a.RemainingInterest = roundCurrency(a.RemainingInterest)

	s.record(ctx, kindSubjectTo, input, a)
	return a, nil
}

// CompareOffers ranks the supplied financing strategies by ROI.
func (s *DealService) CompareOffers(ctx context.Context, input domain.OfferComparisonInput) ([]domain.OfferComparison, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}
	if input.Cash == nil && input.SellerFinance == nil && input.SubjectTo == nil {
		return []domain.OfferComparison{}, nil
	}

	result := cached(ctx, s.cache, s.cacheTTL, s.log, kindOfferComparison, input, func() []domain.OfferComparison {
		return roundOffers(CompareOffers(input))
	})

	if len(result) > 0 {
		s.log.Debug().
			Str("best", string(result[0].Strategy)).
			Float64("roi", result[0].ROI).
			Msg("offers compared")
	}
	s.record(ctx, kindOfferComparison, input, result)
	return result, nil
}

func (s *DealService) MAO(ctx context.Context, input domain.MAOInput) (domain.MAOResult, error) {
	if err := validateInput(s.validate, input); err != nil {
		return domain.MAOResult{}, err
	}

	calc := NewMAOCalculator(input.AfterRepairValue, input.RepairCosts)
	result := domain.MAOResult{
		SeventyPercent:   roundCurrency(calc.SeventyPercent),
		SixtyFivePercent: roundCurrency(calc.SixtyFivePercent),
	}
	if len(input.Percents) > 0 {
		result.AtPercent = make(map[string]float64, len(input.Percents))
		for _, p := range input.Percents {
			result.AtPercent[strconv.FormatFloat(p, 'f', -1, 64)] = roundCurrency(calc.AtPercent(p))
		}
	}

	s.record(ctx, kindMAO, input, result)
	return result, nil
}

func (s *DealService) record(ctx context.Context, kind string, input, result any) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, repository.Calculation{Kind: kind, Input: input, Result: result}); err != nil {
		s.log.Warn().Err(err).Str("kind", kind).Msg("failed to save calculation")
	}
}
