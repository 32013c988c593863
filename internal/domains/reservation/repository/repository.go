package repository

import (
	"context"
	"slices"

	"venus/infras/otel"
	"venus/internal/domains/reservation/model"
	"venus/internal/storage"
	gRepo "venus/shared/repository"
)

// ApplyFunc decides, under the bucket lock, whether and how a reservation
// changes.
type ApplyFunc func(reservation *model.Reservation) (changed bool, err error)

type Reservation interface {
	List(ctx context.Context) ([]model.Reservation, error)
	ListByHotel(ctx context.Context, hotelID string) ([]model.Reservation, error)
	ListByClient(ctx context.Context, clientID string) ([]model.Reservation, error)
	Insert(ctx context.Context, reservation model.Reservation) error
	Apply(ctx context.Context, id string, fn ApplyFunc) (model.Reservation, bool, error)
	SeedIfEmpty(ctx context.Context, reservations []model.Reservation) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
}

func New(store storage.Store, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, storage.KeyReservations, store, otel),
	}
}

func (r *repositoryImpl) List(ctx context.Context) ([]model.Reservation, error) {
	return r.Load(ctx) //nolint:wrapcheck
}

func (r *repositoryImpl) ListByHotel(ctx context.Context, hotelID string) ([]model.Reservation, error) {
	return r.filter(ctx, func(reservation model.Reservation) bool { return reservation.HotelID == hotelID })
}

func (r *repositoryImpl) ListByClient(ctx context.Context, clientID string) ([]model.Reservation, error) {
	return r.filter(ctx, func(reservation model.Reservation) bool { return reservation.ClientID == clientID })
}

func (r *repositoryImpl) Insert(ctx context.Context, reservation model.Reservation) error {
	return r.Mutate(ctx, func(reservations []model.Reservation) ([]model.Reservation, bool, error) { //nolint:wrapcheck
		return append(reservations, reservation), true, nil
	})
}

// Apply runs fn on reservation id and writes the bucket back when fn
// reports a change. An unknown id is not an error: fn is not called and
// found is false.
func (r *repositoryImpl) Apply(ctx context.Context, id string, fn ApplyFunc) (res model.Reservation, found bool, err error) {
	err = r.Mutate(ctx, func(reservations []model.Reservation) ([]model.Reservation, bool, error) {
		index := slices.IndexFunc(reservations, func(existing model.Reservation) bool { return existing.ID == id })
		if index < 0 {
			return reservations, false, nil
		}

		found = true
		current := reservations[index]
		current.StatusHistory = slices.Clone(current.StatusHistory)

		changed, err := fn(&current)
		if err != nil {
			return reservations, false, err
		}

		res = current
		if changed {
			reservations[index] = current
		}

		return reservations, changed, nil
	})

	return res, found, err //nolint:wrapcheck
}

func (r *repositoryImpl) filter(ctx context.Context, keep func(model.Reservation) bool) ([]model.Reservation, error) {
	reservations, err := r.Load(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return slices.DeleteFunc(reservations, func(reservation model.Reservation) bool { return !keep(reservation) }), nil
}
