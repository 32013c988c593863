package shared_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"venus/shared"
	"venus/shared/cache/mocks"
)

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "hotel:list", shared.BuildCacheKey("hotel:list"))
	assert.Equal(t, "room:hotel:h1", shared.BuildCacheKey("room:hotel", "h1"))
	assert.Equal(t, "a:b:c", shared.BuildCacheKey("a", "b", "c"))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)
	ctx := context.Background()

	redisCache.EXPECT().Delete(ctx, "room:hotel").Return(nil)
	redisCache.EXPECT().Clear(ctx, "room:hotel:*").Return(errors.New("scan failed"))
	redisCache.EXPECT().Delete(ctx, "hotel:list").Return(nil)
	redisCache.EXPECT().Clear(ctx, "hotel:list:*").Return(nil)

	shared.InvalidateCaches(ctx, redisCache, "room:hotel", "hotel:list")
}

func TestActorContext(t *testing.T) {
	ctx := shared.WithActor(context.Background(), "h1", "HOTEL")
	ctx = shared.WithSession(ctx, "s1")

	userID, role := shared.ActorFromContext(ctx)
	assert.Equal(t, "h1", userID)
	assert.Equal(t, "HOTEL", role)
	assert.Equal(t, "s1", shared.SessionFromContext(ctx))

	userID, role = shared.ActorFromContext(context.Background())
	assert.Empty(t, userID)
	assert.Empty(t, role)
}

