package http

import (
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"dealdesk/ratelimit"
)

var (
	rejectedOnce    sync.Once
	rejectedCounter metric.Int64Counter
)

func getRejectedCounter() metric.Int64Counter {
	rejectedOnce.Do(func() {
		counter, _ := otel.Meter(instrumentationName).Int64Counter(
			"ratelimit.rejected",
			metric.WithDescription("requests rejected by the rate limiter"),
		)
		rejectedCounter = counter
	})
	return rejectedCounter
}

// RateLimitMiddleware admits requests per client IP as resolved by ips.
// When the limiter's store fails the request goes through and the failure
// is logged.
func RateLimitMiddleware(
	limiter *ratelimit.Limiter,
	ips *ClientIPResolver,
	log zerolog.Logger,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ips.ClientIP(r)

		decision, err := limiter.Allow(r.Context(), ip)
		if err != nil {
			log.Error().Err(err).Str("client", ip).Msg("rate limiter unavailable, admitting request")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retry := int(math.Ceil(decision.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(retry))

			if counter := getRejectedCounter(); counter != nil {
				counter.Add(r.Context(), 1, metric.WithAttributes(attribute.String("http.route", r.URL.Path)))
			}
			log.Info().
				Str("client", ip).
				Str("path", r.URL.Path).
				Dur("retry_after", decision.RetryAfter).
				Msg("rate limit exceeded")

			writeError(w, log, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
