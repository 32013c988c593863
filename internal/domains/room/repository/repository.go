package repository

import (
	"context"
	"slices"

	"venus/infras/otel"
	"venus/internal/domains/room/model"
	"venus/internal/storage"
	gRepo "venus/shared/repository"
)

type Room interface {
	ListByHotel(ctx context.Context, hotelID string) ([]model.Room, error)
	FindByID(ctx context.Context, id string) (model.Room, bool, error)
	Upsert(ctx context.Context, room model.Room) (model.Room, bool, error)
	Delete(ctx context.Context, id, hotelID string) (bool, error)
	SeedIfEmpty(ctx context.Context, rooms []model.Room) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
}

func New(store storage.Store, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, storage.KeyRooms, store, otel),
	}
}

func (r *repositoryImpl) ListByHotel(ctx context.Context, hotelID string) ([]model.Room, error) {
	rooms, err := r.Load(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return slices.DeleteFunc(rooms, func(room model.Room) bool { return room.HotelID != hotelID }), nil
}

func (r *repositoryImpl) FindByID(ctx context.Context, id string) (model.Room, bool, error) {
	rooms, err := r.Load(ctx)
	if err != nil {
		return model.Room{}, false, err //nolint:wrapcheck
	}

	index := slices.IndexFunc(rooms, func(room model.Room) bool { return room.ID == id })
	if index < 0 {
		return model.Room{}, false, nil
	}

	return rooms[index], true, nil
}

// Upsert replaces the room with the same id in place or appends it. A room
// held by another hotel is left alone and ErrNotOwner returned. Creation
// metadata of a replaced room is kept.
func (r *repositoryImpl) Upsert(ctx context.Context, room model.Room) (model.Room, bool, error) {
	created := false

	err := r.Mutate(ctx, func(rooms []model.Room) ([]model.Room, bool, error) {
		index := slices.IndexFunc(rooms, func(existing model.Room) bool { return existing.ID == room.ID })
		if index < 0 {
			created = true

			return append(rooms, room), true, nil
		}

		existing := rooms[index]
		if existing.HotelID != room.HotelID {
			return rooms, false, model.ErrNotOwner
		}

		room.CreatedAt = existing.CreatedAt
		room.CreatedBy = existing.CreatedBy
		rooms[index] = room

		return rooms, true, nil
	})
	if err != nil {
		return model.Room{}, false, err //nolint:wrapcheck
	}

	return room, created, nil
}

// Delete removes room id. An empty hotelID skips the ownership check.
func (r *repositoryImpl) Delete(ctx context.Context, id, hotelID string) (bool, error) {
	deleted := false

	err := r.Mutate(ctx, func(rooms []model.Room) ([]model.Room, bool, error) {
		index := slices.IndexFunc(rooms, func(existing model.Room) bool { return existing.ID == id })
		if index < 0 {
			return rooms, false, nil
		}

		if hotelID != "" && rooms[index].HotelID != hotelID {
			return rooms, false, model.ErrNotOwner
		}

		deleted = true

		return slices.Delete(rooms, index, index+1), true, nil
	})

	return deleted, err //nolint:wrapcheck
}
