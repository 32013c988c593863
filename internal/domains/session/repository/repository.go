package repository

import (
	"context"
	"slices"
	"time"

	"venus/infras/otel"
	"venus/internal/domains/account/model/dto"
	"venus/internal/domains/session/model"
	"venus/internal/storage"
	gRepo "venus/shared/repository"
)

type Session interface {
	Find(ctx context.Context, id string, now time.Time) (model.Session, bool, error)
	Insert(ctx context.Context, session model.Session, now time.Time) (active int, err error)
	Remove(ctx context.Context, id string, now time.Time) (remaining int, err error)
	ReplaceUser(ctx context.Context, user dto.UserResponse) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Session]
}

func New(store storage.Store, otel otel.Otel) Session {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Session](model.EntityName, storage.KeySessions, store, otel),
	}
}

// Find ignores sessions that expired at now.
func (r *repositoryImpl) Find(ctx context.Context, id string, now time.Time) (model.Session, bool, error) {
	sessions, err := r.Load(ctx)
	if err != nil {
		return model.Session{}, false, err //nolint:wrapcheck
	}

	for _, session := range sessions {
		if session.ID == id && !session.Expired(now) {
			return session, true, nil
		}
	}

	return model.Session{}, false, nil
}

// Insert prunes expired sessions in the same write.
func (r *repositoryImpl) Insert(ctx context.Context, session model.Session, now time.Time) (int, error) {
	active := 0

	err := r.Mutate(ctx, func(sessions []model.Session) ([]model.Session, bool, error) {
		sessions = slices.DeleteFunc(sessions, func(existing model.Session) bool { return existing.Expired(now) })
		sessions = append(sessions, session)
		active = len(sessions)

		return sessions, true, nil
	})

	return active, err //nolint:wrapcheck
}

// Remove answers the sessions still alive at now, whether or not id existed.
func (r *repositoryImpl) Remove(ctx context.Context, id string, now time.Time) (int, error) {
	remaining := 0

	err := r.Mutate(ctx, func(sessions []model.Session) ([]model.Session, bool, error) {
		before := len(sessions)
		sessions = slices.DeleteFunc(sessions, func(existing model.Session) bool { return existing.ID == id })

		for _, session := range sessions {
			if !session.Expired(now) {
				remaining++
			}
		}

		return sessions, len(sessions) != before, nil
	})

	return remaining, err //nolint:wrapcheck
}

func (r *repositoryImpl) ReplaceUser(ctx context.Context, user dto.UserResponse) (int, error) {
	replaced := 0

	err := r.Mutate(ctx, func(sessions []model.Session) ([]model.Session, bool, error) {
		for i := range sessions {
			if sessions[i].User.ID == user.ID {
				sessions[i].User = user
				replaced++
			}
		}

		return sessions, replaced > 0, nil
	})

	return replaced, err //nolint:wrapcheck
}
