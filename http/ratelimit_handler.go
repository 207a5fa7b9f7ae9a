package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"dealdesk/ratelimit"
)

// RateLimitHandler exposes limiter stats and reset for operators.
type RateLimitHandler struct {
	limiter *ratelimit.Limiter
	log     zerolog.Logger
}

func NewRateLimitHandler(limiter *ratelimit.Limiter, log zerolog.Logger) *RateLimitHandler {
	return &RateLimitHandler{limiter: limiter, log: log}
}

func (h *RateLimitHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.log, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats, err := h.limiter.GetStats(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("reading rate limit stats")
		writeError(w, h.log, http.StatusServiceUnavailable, "rate limiter unavailable")
		return
	}
	writeJSON(w, h.log, http.StatusOK, stats)
}

func (h *RateLimitHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.log, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := h.limiter.Reset(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("resetting rate limiter")
		writeError(w, h.log, http.StatusServiceUnavailable, "rate limiter unavailable")
		return
	}
	h.log.Warn().Msg("rate limiter reset")
	w.WriteHeader(http.StatusNoContent)
}
