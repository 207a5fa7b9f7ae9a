package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"dealdesk/ratelimit"
)

type Handlers struct {
	Loan      *LoanHandler
	Deal      *DealHandler
	RateLimit *RateLimitHandler
	History   *HistoryHandler
}

// RouterConfig carries what the middlewares need besides the handlers.
type RouterConfig struct {
	Limiter    *ratelimit.Limiter
	ClientIPs  *ClientIPResolver
	AdminToken string
}

// NewRouter wires every route. Calculator routes go through the rate
// limiter; reset and history need the admin token.
func NewRouter(h Handlers, cfg RouterConfig, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	limited := func(fn http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(cfg.Limiter, cfg.ClientIPs, log, fn)
	}
	admin := func(fn http.HandlerFunc) http.Handler {
		return AdminAuthMiddleware(cfg.AdminToken, log, fn)
	}

	mux.Handle("/loan/calculate", limited(h.Loan.CalculateLoan))
	mux.Handle("/loan/schedule", limited(h.Loan.Schedule))
	mux.Handle("/loan/remaining-balance", limited(h.Loan.RemainingBalance))

	mux.Handle("/deal/analyze", limited(h.Deal.AnalyzeDeal))
	mux.Handle("/deal/rental-cash-flow", limited(h.Deal.RentalCashFlow))
	mux.Handle("/deal/metrics", limited(h.Deal.Metrics))
	mux.Handle("/deal/seller-finance", limited(h.Deal.SellerFinance))
	mux.Handle("/deal/subject-to", limited(h.Deal.SubjectTo))
	mux.Handle("/deal/compare-offers", limited(h.Deal.CompareOffers))
	mux.Handle("/deal/mao", limited(h.Deal.MAO))

	mux.HandleFunc("/ratelimit/stats", h.RateLimit.Stats)
	mux.Handle("/ratelimit/reset", admin(h.RateLimit.Reset))
	if h.History != nil {
		mux.Handle("/calculations", admin(h.History.List))
	}

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
	})

	return TracingMiddleware(log, mux)
}
