package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"venus/config"
	otelMocks "venus/infras/otel/mocks"
	"venus/internal/domains/room/model"
	"venus/internal/domains/room/model/dto"
	"venus/internal/domains/room/repository"
	"venus/internal/domains/room/service"
	"venus/internal/storage"
	storageMocks "venus/internal/storage/mocks"
	"venus/shared"
	"venus/shared/cache"
	cacheMocks "venus/shared/cache/mocks"
	"venus/shared/constant"
	"venus/shared/failure"
)

func newService(store storage.Store, redisCache cache.RedisCache) service.Room {
	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	ot := otelMocks.NewOtel()

	return service.New(repository.New(store, ot), cfg, redisCache, ot)
}

func newMemoryService() service.Room {
	return newService(storage.NewMemory(), cache.NewRedisCache(nil, otelMocks.NewOtel()))
}

func hotelCtx(id string) context.Context {
	return shared.WithActor(context.Background(), id, constant.RoleHotel)
}

func TestSave_CreateThenUpdate(t *testing.T) {
	svc := newMemoryService()
	ctx := hotelCtx("h1")

	created, err := svc.Save(ctx, dto.SaveRoomRequest{Name: "Quarto Standard", Capacity: 3, Price: 350})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "h1", created.HotelID)
	assert.True(t, created.IsAvailable)
	assert.Equal(t, []string{}, created.Images)

	unavailable := false
	updated, err := svc.Save(ctx, dto.SaveRoomRequest{ID: created.ID, Name: "Quarto Luxo", Capacity: 2, Price: 500, IsAvailable: &unavailable})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	rooms, err := svc.ListByHotel(ctx, "h1")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Quarto Luxo", rooms[0].Name)
	assert.False(t, rooms[0].IsAvailable)
}

func TestSave_Ownership(t *testing.T) {
	svc := newMemoryService()

	room, err := svc.Save(hotelCtx("h1"), dto.SaveRoomRequest{ID: "r1", Name: "Suíte Master Ocean", Capacity: 2, Price: 550})
	require.NoError(t, err)

	tests := []struct {
		name string
		ctx  context.Context
		req  dto.SaveRoomRequest
		code int
	}{
		{
			name: "other hotel overwrites",
			ctx:  hotelCtx("h2"),
			req:  dto.SaveRoomRequest{ID: room.ID, Name: "Tomada", Capacity: 1},
			code: http.StatusForbidden,
		},
		{
			name: "hotel writes for another hotel",
			ctx:  hotelCtx("h2"),
			req:  dto.SaveRoomRequest{HotelID: "h1", Name: "Novo", Capacity: 1},
			code: http.StatusForbidden,
		},
		{
			name: "client writes",
			ctx:  shared.WithActor(context.Background(), "c1", constant.RoleClient),
			req:  dto.SaveRoomRequest{HotelID: "h1", Name: "Novo", Capacity: 1},
			code: http.StatusForbidden,
		},
		{
			name: "no hotel given",
			ctx:  context.Background(),
			req:  dto.SaveRoomRequest{Name: "Novo", Capacity: 1},
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(tt.ctx, tt.req)
			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}

	rooms, err := svc.ListByHotel(context.Background(), "h1")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Suíte Master Ocean", rooms[0].Name)
}

func TestSave_InvalidRoom(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.SaveRoomRequest
		message string
	}{
		{name: "zero capacity", req: dto.SaveRoomRequest{Name: "Novo", Capacity: 0, Price: 100}, message: "capacity must be greater than zero"},
		{name: "negative capacity", req: dto.SaveRoomRequest{Name: "Novo", Capacity: -2, Price: 100}, message: "capacity must be greater than zero"},
		{name: "negative price", req: dto.SaveRoomRequest{Name: "Novo", Capacity: 2, Price: -0.01}, message: "price must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMemoryService()

			_, err := svc.Save(hotelCtx("h1"), tt.req)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.EqualError(t, err, tt.message)

			rooms, err := svc.ListByHotel(context.Background(), "h1")
			require.NoError(t, err)
			assert.Empty(t, rooms)
		})
	}
}

func TestDelete(t *testing.T) {
	svc := newMemoryService()

	_, err := svc.Save(hotelCtx("h1"), dto.SaveRoomRequest{ID: "r1", Name: "Suíte", Capacity: 2, Price: 550})
	require.NoError(t, err)
	_, err = svc.Save(hotelCtx("h1"), dto.SaveRoomRequest{ID: "r2", Name: "Standard", Capacity: 3, Price: 350})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(hotelCtx("h1"), "missing"))

	err = svc.Delete(hotelCtx("h2"), "r1")
	require.ErrorIs(t, err, model.ErrNotOwner)

	require.NoError(t, svc.Delete(hotelCtx("h1"), "r1"))

	rooms, err := svc.ListByHotel(context.Background(), "h1")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "r2", rooms[0].ID)

	_, err = svc.Get(context.Background(), "r1")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestListByHotel_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storageMocks.NewMockStore(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cached := []dto.RoomResponse{{ID: "r1", HotelID: "h1", Name: "Suíte Master Ocean"}}
	redisCache.EXPECT().Get(gomock.Any(), "room:hotel:h1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
		*value.(*[]dto.RoomResponse) = cached

		return nil
	})

	rooms, err := newService(store, redisCache).ListByHotel(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, cached, rooms)
}

func TestSave_InvalidatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Delete(gomock.Any(), "room:hotel:h1").Return(nil)
	redisCache.EXPECT().Clear(gomock.Any(), "room:hotel:h1:*").Return(nil)
	redisCache.EXPECT().Delete(gomock.Any(), "room:get:r1").Return(nil)
	redisCache.EXPECT().Clear(gomock.Any(), "room:get:r1:*").Return(nil)

	_, err := newService(storage.NewMemory(), redisCache).Save(hotelCtx("h1"), dto.SaveRoomRequest{ID: "r1", Name: "Suíte", Capacity: 2})
	require.NoError(t, err)
}
