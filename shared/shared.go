package shared

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"venus/shared/cache"
	"venus/shared/constant"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins a cache namespace with its identifying parts.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + cacheKeySeparator + strings.Join(parts, cacheKeySeparator)
}

// InvalidateCaches drops every key under each prefix. Failures are logged,
// the next read repopulates from storage.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := redisCache.Delete(ctx, prefix); err != nil {
			log.Warn().Err(err).Str("key", prefix).Msg("failed to invalidate cache key")
		}

		if err := redisCache.Clear(ctx, prefix+cacheKeySeparator+constant.Asterix); err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache prefix")
		}
	}
}

func ActorFromContext(ctx context.Context) (userID, role string) {
	userID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	role, _ = ctx.Value(constant.ContextKeyUserRole).(string)

	return userID, role
}

// WithActor returns ctx carrying the authenticated user, as the auth
// middleware does for HTTP requests.
func WithActor(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, constant.ContextKeySessionID, sessionID)
}

func SessionFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(constant.ContextKeySessionID).(string)

	return sessionID
}
