package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"venus/shared"
	"venus/shared/constant"
	"venus/transport/http/response"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit counts requests per client address and user agent in a fixed
// window held in the cache. The window starts at the first request and is
// not pushed back by later ones. Cache failures let the request through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(writer, request)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds
			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(request), a.getUA(request))

			count, err := a.cache.Increment(request.Context(), cacheKey, windowSecs)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter cache unavailable")
				next.ServeHTTP(writer, request)

				return
			}

			if count > maxReqs {
				response.WithRequestLimitExceeded(writer)

				return
			}

			writer.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			writer.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			writer.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(writer, request)
		})
	}
}

func (a *appMiddleware) getUA(request *http.Request) string {
	ua := request.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func (a *appMiddleware) getClientIP(request *http.Request) string {
	// first entry of X-Forwarded-For is the original client
	if xff := request.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := request.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return request.RemoteAddr
}
