package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"dealdesk/ratelimit"
	"dealdesk/repository"
	"dealdesk/service"
)

const testAdminToken = "s3cret-admin"

func newTestHandlers(t *testing.T) (Handlers, *ratelimit.Limiter) {
	t.Helper()

	log := zerolog.Nop()
	repo := repository.NewCalculationRepositoryMemory(100)
	cache := repository.NewMemoryCache()

	limiter, err := ratelimit.New(time.Minute, 100)
	require.NoError(t, err)

	return Handlers{
		Loan:      NewLoanHandler(service.NewLoanService(repo, cache, time.Minute, log), log),
		Deal:      NewDealHandler(service.NewDealService(repo, cache, time.Minute, log), log),
		RateLimit: NewRateLimitHandler(limiter, log),
		History:   NewHistoryHandler(repo, log),
	}, limiter
}

func newTestRouter(t *testing.T) (http.Handler, *ratelimit.Limiter) {
	t.Helper()

	h, limiter := newTestHandlers(t)
	return NewRouter(h, RouterConfig{Limiter: limiter, AdminToken: testAdminToken}, zerolog.Nop()), limiter
}

func adminRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	return req
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
