package repository

import (
	"context"
	"slices"

	"venus/infras/otel"
	"venus/internal/domains/account/model"
	"venus/internal/storage"
	gRepo "venus/shared/repository"
)

type Account interface {
	List(ctx context.Context) ([]model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, bool, error)
	FindByID(ctx context.Context, id string) (model.User, bool, error)
	Insert(ctx context.Context, user model.User) error
	Update(ctx context.Context, user model.User) (bool, error)
	SeedIfEmpty(ctx context.Context, users []model.User) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(store storage.Store, otel otel.Otel) Account {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, storage.KeyUsers, store, otel),
	}
}

func (r *repositoryImpl) List(ctx context.Context) ([]model.User, error) {
	return r.Load(ctx) //nolint:wrapcheck
}

// FindByEmail matches the address exactly, case included.
func (r *repositoryImpl) FindByEmail(ctx context.Context, email string) (model.User, bool, error) {
	return r.find(ctx, func(user model.User) bool { return user.Email == email })
}

func (r *repositoryImpl) FindByID(ctx context.Context, id string) (model.User, bool, error) {
	return r.find(ctx, func(user model.User) bool { return user.ID == id })
}

// Insert appends user unless its email is taken, checked under the same
// lock as the write.
func (r *repositoryImpl) Insert(ctx context.Context, user model.User) error {
	return r.Mutate(ctx, func(users []model.User) ([]model.User, bool, error) { //nolint:wrapcheck
		if slices.ContainsFunc(users, func(existing model.User) bool { return existing.Email == user.Email }) {
			return users, false, model.ErrDuplicateEmail
		}

		return append(users, user), true, nil
	})
}

// Update replaces the user with the same id, keeping its position.
func (r *repositoryImpl) Update(ctx context.Context, user model.User) (bool, error) {
	found := false

	err := r.Mutate(ctx, func(users []model.User) ([]model.User, bool, error) {
		index := slices.IndexFunc(users, func(existing model.User) bool { return existing.ID == user.ID })
		if index < 0 {
			return users, false, nil
		}

		found = true
		users[index] = user

		return users, true, nil
	})

	return found, err //nolint:wrapcheck
}

func (r *repositoryImpl) find(ctx context.Context, match func(model.User) bool) (model.User, bool, error) {
	users, err := r.Load(ctx)
	if err != nil {
		return model.User{}, false, err //nolint:wrapcheck
	}

	index := slices.IndexFunc(users, match)
	if index < 0 {
		return model.User{}, false, nil
	}

	return users[index], true, nil
}
