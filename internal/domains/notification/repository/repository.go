package repository

import (
	"cmp"
	"context"
	"slices"

	"venus/infras/otel"
	"venus/internal/domains/notification/model"
	"venus/internal/storage"
	gRepo "venus/shared/repository"
)

type Notification interface {
	ListByUser(ctx context.Context, userID string) ([]model.Notification, error)
	Append(ctx context.Context, notifications ...model.Notification) error
	MarkRead(ctx context.Context, userID, id string) (bool, error)
	SeedIfEmpty(ctx context.Context, notifications []model.Notification) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Notification]
}

func New(store storage.Store, otel otel.Otel) Notification {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Notification](model.EntityName, storage.KeyNotifications, store, otel),
	}
}

// ListByUser returns the user's notifications newest first. Entries with the
// same date keep their insertion order reversed.
func (r *repositoryImpl) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	notifications, err := r.Load(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	notifications = slices.DeleteFunc(notifications, func(notification model.Notification) bool { return notification.UserID != userID })
	slices.Reverse(notifications)
	slices.SortStableFunc(notifications, func(a, b model.Notification) int { return cmp.Compare(b.Date.UnixNano(), a.Date.UnixNano()) })

	return notifications, nil
}

func (r *repositoryImpl) Append(ctx context.Context, notifications ...model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	return r.Mutate(ctx, func(current []model.Notification) ([]model.Notification, bool, error) { //nolint:wrapcheck
		return append(current, notifications...), true, nil
	})
}

func (r *repositoryImpl) MarkRead(ctx context.Context, userID, id string) (bool, error) {
	marked := false

	err := r.Mutate(ctx, func(notifications []model.Notification) ([]model.Notification, bool, error) {
		index := slices.IndexFunc(notifications, func(notification model.Notification) bool {
			return notification.ID == id && notification.UserID == userID
		})
		if index < 0 || notifications[index].Read {
			return notifications, false, nil
		}

		notifications[index].Read = true
		marked = true

		return notifications, true, nil
	})

	return marked, err //nolint:wrapcheck
}
