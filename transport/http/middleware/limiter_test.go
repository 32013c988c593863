package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"venus/config"
	otelMocks "venus/infras/otel/mocks"
	cacheMocks "venus/shared/cache/mocks"
	"venus/shared/constant"
	"venus/transport/http/middleware"
)

func newLimited(t *testing.T, maxReqs, window int) (http.Handler, *cacheMocks.MockRedisCache) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxReqs
	cfg.App.RateLimiter.WindowSeconds = window

	redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, redisCache)

	handler := mw.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	return handler, redisCache
}

func TestRateLimit_FixedWindow(t *testing.T) {
	handler, redisCache := newLimited(t, 2, 60)

	var (
		keys  []string
		count int
	)

	redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).DoAndReturn(func(_ context.Context, key string, _ int) (int, error) {
		keys = append(keys, key)
		count++

		return count, nil
	}).Times(3)

	tests := []struct {
		name      string
		code      int
		remaining string
	}{
		{name: "first request opens the window", code: http.StatusOK, remaining: "1"},
		{name: "second request", code: http.StatusOK, remaining: "0"},
		{name: "over the limit", code: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/hotels", nil)
			req.Header.Set(constant.RequestHeaderUserAgent, "agent")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.remaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}

	assert.Len(t, keys, 3)
	assert.Equal(t, keys[0], keys[1])
	assert.Equal(t, keys[0], keys[2])
}

func TestRateLimit_CacheUnavailable(t *testing.T) {
	handler, redisCache := newLimited(t, 1, 60)

	redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(0, errors.New("connection refused"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/hotels", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(constant.RequestHeaderRateLimit))
}
