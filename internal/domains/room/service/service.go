package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"venus/config"
	"venus/infras/otel"
	"venus/internal/domains/room/model"
	"venus/internal/domains/room/model/dto"
	"venus/internal/domains/room/repository"
	"venus/shared"
	"venus/shared/cache"
	"venus/shared/constant"
	"venus/shared/failure"
)

const (
	cacheGetRoom        = "room:get"
	cacheListHotelRooms = "room:hotel"
)

type Room interface {
	ListByHotel(ctx context.Context, hotelID string) ([]dto.RoomResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Save(ctx context.Context, req dto.SaveRoomRequest) (dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) ListByHotel(ctx context.Context, hotelID string) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.ListByHotel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheListHotelRooms, hotelID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	rooms, err := s.repo.ListByHotel(ctx, hotelID)
	if err != nil {
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("failed to list rooms")

		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	res = dto.FromModels(rooms)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to save rooms to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	room, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if !found {
		return res, failure.NotFound("room not found") //nolint:wrapcheck
	}

	res.FromModel(room)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to save room to cache")
	}

	return res, nil
}

// Save creates the room when req has no id and replaces it otherwise. A
// hotel caller only writes rooms of its own hotel.
func (s *serviceImpl) Save(ctx context.Context, req dto.SaveRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actorID, role := shared.ActorFromContext(ctx)
	if actorID != constant.Empty {
		if role != constant.RoleHotel {
			return res, failure.Forbidden("only hotels manage rooms") //nolint:wrapcheck
		}

		if req.HotelID == constant.Empty {
			req.HotelID = actorID
		}

		if req.HotelID != actorID {
			return res, model.ErrNotOwner
		}
	}

	if req.HotelID == constant.Empty {
		return res, failure.BadRequestFromString("hotelId is required") //nolint:wrapcheck
	}

	if req.Capacity <= 0 {
		return res, failure.BadRequestFromString("capacity must be greater than zero") //nolint:wrapcheck
	}

	if req.Price < 0 {
		return res, failure.BadRequestFromString("price must not be negative") //nolint:wrapcheck
	}

	room := req.ToModel(actorID)
	if room.ID == constant.Empty {
		room.ID = uuid.NewString()
	}

	saved, created, err := s.repo.Upsert(ctx, room)
	if err != nil {
		if errors.Is(err, model.ErrNotOwner) {
			log.Warn().Str("room_id", room.ID).Str("hotel_id", room.HotelID).Msg("attempt to overwrite a room of another hotel")

			return res, err //nolint:wrapcheck
		}

		log.Error().Err(err).Str("room_id", room.ID).Msg("failed to save room")

		return res, fmt.Errorf("failed to save room: %w", err)
	}

	log.Debug().Str("room_id", saved.ID).Bool("created", created).Msg("room saved")

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheListHotelRooms, saved.HotelID), shared.BuildCacheKey(cacheGetRoom, saved.ID))

	res.FromModel(saved)

	return res, nil
}

// Delete is a no-op for an unknown id.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actorID, role := shared.ActorFromContext(ctx)
	if actorID != constant.Empty && role != constant.RoleHotel {
		return failure.Forbidden("only hotels manage rooms") //nolint:wrapcheck
	}

	room, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to get room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	if !found {
		log.Debug().Str("room_id", id).Msg("room to delete does not exist")

		return nil
	}

	if _, err = s.repo.Delete(ctx, id, actorID); err != nil {
		if errors.Is(err, model.ErrNotOwner) {
			log.Warn().Str("room_id", id).Str("hotel_id", actorID).Msg("attempt to delete a room of another hotel")

			return err //nolint:wrapcheck
		}

		log.Error().Err(err).Str("room_id", id).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheListHotelRooms, room.HotelID), shared.BuildCacheKey(cacheGetRoom, id))

	return nil
}
