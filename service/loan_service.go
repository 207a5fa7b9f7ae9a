package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"dealdesk/domain"
	"dealdesk/repository"
)

type LoanService struct {
	repo     repository.CalculationRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	validate *validator.Validate
	log      zerolog.Logger
}

// NewLoanService creates a new LoanService. cache may be nil.
func NewLoanService(
	repo repository.CalculationRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *LoanService {
	return &LoanService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		validate: newValidator(),
		log:      log.With().Str("component", "loan_service").Logger(),
	}
}

// CalculateLoan returns payment, totals and effective rate rounded to cents.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	input domain.LoanInput,
) (domain.LoanSummary, error) {
	if err := validateInput(s.validate, input); err != nil {
		return domain.LoanSummary{}, err
	}

	result := cached(ctx, s.cache, s.cacheTTL, s.log, kindLoanSummary, input, func() domain.LoanSummary {
		return roundSummary(GetLoanSummary(input.Principal, input.AnnualRatePercent, input.TermMonths))
	})

	s.record(ctx, kindLoanSummary, input, result)
	return result, nil
}

// Schedule returns the month-by-month amortization table.
func (s *LoanService) Schedule(
	ctx context.Context,
	input domain.ScheduleInput,
) (domain.ScheduleResult, error) {
	if err := validateInput(s.validate, input); err != nil {
		return domain.ScheduleResult{}, err
	}

	result := cached(ctx, s.cache, s.cacheTTL, s.log, kindLoanSchedule, input, func() domain.ScheduleResult {
		entries := GenerateAmortizationSchedule(
			input.Principal,
			input.AnnualRatePercent,
			input.TermMonths,
			input.BalloonDueMonths,
		)
		res := domain.ScheduleResult{Entries: roundEntries(entries)}
		if input.BalloonDueMonths > 0 && input.BalloonDueMonths < input.TermMonths && len(entries) > 0 {
			res.BalloonAmount = roundCurrency(entries[len(entries)-1].Balance)
		}
		return res
	})

	s.log.Debug().
		Int("entries", len(result.Entries)).
		Int("balloon_month", input.BalloonDueMonths).
		Msg("schedule generated")
	s.record(ctx, kindLoanSchedule, input, result)
	return result, nil
}

func (s *LoanService) RemainingBalance(
	ctx context.Context,
	input domain.RemainingBalanceInput,
) (domain.RemainingBalanceResult, error) {
	if err := validateInput(s.validate, input); err != nil {
		return domain.RemainingBalanceResult{}, err
	}

	balance := CalculateRemainingBalance(input.Principal, input.AnnualRatePercent, input.TermMonths, input.MonthsElapsed)
	result := domain.RemainingBalanceResult{
		MonthsElapsed:    input.MonthsElapsed,
		RemainingBalance: roundCurrency(balance),
	}

	s.record(ctx, kindRemainingBalance, input, result)
	return result, nil
}

// record stores the calculation; a failed save is not critical.
func (s *LoanService) record(ctx context.Context, kind string, input, result any) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, repository.Calculation{Kind: kind, Input: input, Result: result}); err != nil {
		s.log.Warn().Err(err).Str("kind", kind).Msg("failed to save calculation")
	}
}
