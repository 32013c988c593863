package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"venus/config"
	"venus/infras/jwt"
	otelMocks "venus/infras/otel/mocks"
	"venus/internal/domains/account/model"
	"venus/internal/domains/account/model/dto"
	"venus/internal/domains/account/repository"
	"venus/internal/domains/account/service"
	sessionRepository "venus/internal/domains/session/repository"
	sessionService "venus/internal/domains/session/service"
	"venus/internal/events"
	eventMocks "venus/internal/events/mocks"
	"venus/internal/storage"
	"venus/shared"
	"venus/shared/cache"
	"venus/shared/failure"
)

type fixture struct {
	svc       service.Account
	repo      repository.Account
	session   sessionService.Session
	publisher *eventMocks.MockPublisher
	store     storage.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60
	cfg.Cache.TTL = 60

	ot := otelMocks.NewOtel()
	store := storage.NewMemory()
	repo := repository.New(store, ot)
	session := sessionService.New(sessionRepository.New(store, ot), cfg, ot)
	publisher := eventMocks.NewMockPublisher(ctrl)

	return fixture{
		svc:       service.New(repo, session, jwt.New(cfg), publisher, cfg, cache.NewRedisCache(nil, ot), ot),
		repo:      repo,
		session:   session,
		publisher: publisher,
		store:     store,
	}
}

func clientRequest(email, pw string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    email,
		Password: pw,
		Name:     "Ana",
		Role:     model.RoleClient,
		Client:   &dto.ClientProfileRequest{Surname: "Souza", Phone: "11999990000", NationalID: "12345678900"},
	}
}

func hotelRequest(email, name string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    email,
		Password: "123",
		Name:     name,
		Role:     model.RoleHotel,
		Hotel:    &dto.HotelProfileRequest{BusinessName: name + " LTDA", City: "Florianópolis", RoomCount: 10},
	}
}

func TestRegister_PublishesEvent(t *testing.T) {
	f := newFixture(t)

	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event events.Event) error {
		assert.Equal(t, events.AccountRegistered, event.Kind)
		assert.Equal(t, "Ana", event.UserName)
		assert.Equal(t, model.RoleClient, event.UserRole)
		assert.NotEmpty(t, event.UserID)

		return nil
	})

	require.NoError(t, f.svc.Register(context.Background(), clientRequest("a@x.com", "abc")))

	user, found, err := f.repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.NotEqual(t, "abc", user.Credential)
	assert.True(t, user.IsClient())
	assert.Nil(t, user.Hotel)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	ctx := context.Background()
	require.NoError(t, f.svc.Register(ctx, clientRequest("a@x.com", "abc")))

	err := f.svc.Register(ctx, clientRequest("a@x.com", "other"))
	require.ErrorIs(t, err, model.ErrDuplicateEmail)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	users, err := f.repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegister_InvalidProfile(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		client  *dto.ClientProfileRequest
		hotel   *dto.HotelProfileRequest
		wantErr error
	}{
		{name: "client without profile", role: model.RoleClient, wantErr: model.ErrProfileMismatch},
		{name: "hotel without profile", role: model.RoleHotel, wantErr: model.ErrProfileMismatch},
		{name: "client with hotel profile", role: model.RoleClient, hotel: &dto.HotelProfileRequest{BusinessName: "X"}, wantErr: model.ErrProfileMismatch},
		{name: "empty role", role: "", wantErr: model.ErrUnknownRole},
		{name: "unknown role", role: "ADMIN", client: &dto.ClientProfileRequest{Surname: "S"}, wantErr: model.ErrUnknownRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			req := dto.RegisterRequest{
				Email:    "p@x.com",
				Password: "abc",
				Name:     "P",
				Role:     tt.role,
				Client:   tt.client,
				Hotel:    tt.hotel,
			}

			var err error
			assert.NotPanics(t, func() { err = f.svc.Register(ctx, req) })
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

			users, err := f.repo.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, users)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := context.Background()
	require.NoError(t, f.svc.Register(ctx, clientRequest("a@x.com", "abc")))

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "success", email: "a@x.com", password: "abc"},
		{name: "wrong password", email: "a@x.com", password: "abd", wantErr: model.ErrInvalidCredentials},
		{name: "unknown email", email: "b@x.com", password: "abc", wantErr: model.ErrInvalidCredentials},
		{name: "email is case sensitive", email: "A@x.com", password: "abc", wantErr: model.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.svc.Login(ctx, dto.LoginRequest{Email: tt.email, Password: tt.password})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, res.SessionID)
				assert.Empty(t, res.AccessToken)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "a@x.com", res.User.Email)
			assert.Equal(t, model.RoleClient, res.User.Role)
			assert.NotEmpty(t, res.AccessToken)
			assert.NotEmpty(t, res.RefreshToken)
			assert.Equal(t, "Bearer", res.TokenType)

			current, ok, err := f.session.Current(shared.WithSession(ctx, res.SessionID))
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, res.User, current)
		})
	}
}

func TestLogin_FailureLeavesSessionsUntouched(t *testing.T) {
	f := newFixture(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := context.Background()
	require.NoError(t, f.svc.Register(ctx, clientRequest("a@x.com", "abc")))

	first, err := f.svc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "abc"})
	require.NoError(t, err)

	before, err := f.store.Get(ctx, storage.KeySessions)
	require.NoError(t, err)
	require.NotEmpty(t, before)

	attempts := []dto.LoginRequest{
		{Email: "a@x.com", Password: "abd"},
		{Email: "b@x.com", Password: "abc"},
		{Email: "A@x.com", Password: "abc"},
	}
	for _, attempt := range attempts {
		_, err = f.svc.Login(ctx, attempt)
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
	}

	after, err := f.store.Get(ctx, storage.KeySessions)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	current, ok, err := f.session.Current(shared.WithSession(ctx, first.SessionID))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a@x.com", current.Email)
}

func TestLogout_ThenMe(t *testing.T) {
	f := newFixture(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := context.Background()
	require.NoError(t, f.svc.Register(ctx, clientRequest("a@x.com", "abc")))

	res, err := f.svc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "abc"})
	require.NoError(t, err)

	sessionCtx := shared.WithSession(ctx, res.SessionID)

	me, err := f.svc.Me(sessionCtx)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, me.ID)

	require.NoError(t, f.svc.Logout(sessionCtx))
	require.NoError(t, f.svc.Logout(sessionCtx))

	_, err = f.svc.Me(sessionCtx)
	require.ErrorIs(t, err, model.ErrNoSession)
}

func TestRefreshToken(t *testing.T) {
	f := newFixture(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := context.Background()
	require.NoError(t, f.svc.Register(ctx, clientRequest("a@x.com", "abc")))

	login, err := f.svc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "abc"})
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, login.SessionID, refreshed.SessionID)
	assert.Equal(t, login.User.ID, refreshed.User.ID)

	_, err = f.svc.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	require.NoError(t, f.svc.Logout(shared.WithSession(ctx, login.SessionID)))

	_, err = f.svc.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.ErrorIs(t, err, model.ErrNoSession)
}

func TestUpdateHotel(t *testing.T) {
	f := newFixture(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := context.Background()
	require.NoError(t, f.svc.Register(ctx, hotelRequest("contato@paraiso.com", "Hotel Paraíso")))
	require.NoError(t, f.svc.Register(ctx, clientRequest("a@x.com", "abc")))

	login, err := f.svc.Login(ctx, dto.LoginRequest{Email: "contato@paraiso.com", Password: "123"})
	require.NoError(t, err)

	hotelID := login.User.ID
	req := dto.UpdateHotelRequest{
		Name:  "Hotel Paraíso Renovado",
		Hotel: dto.HotelProfileRequest{BusinessName: "Paraíso LTDA", City: "Bombinhas", RoomCount: 12},
	}

	t.Run("other actor is forbidden", func(t *testing.T) {
		_, err := f.svc.UpdateHotel(shared.WithActor(ctx, "someone-else", model.RoleHotel), hotelID, req)
		require.ErrorIs(t, err, model.ErrNotHotel)
	})

	t.Run("unknown hotel", func(t *testing.T) {
		_, err := f.svc.UpdateHotel(ctx, "missing", req)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("owner updates and sessions follow", func(t *testing.T) {
		updated, err := f.svc.UpdateHotel(shared.WithActor(ctx, hotelID, model.RoleHotel), hotelID, req)
		require.NoError(t, err)
		assert.Equal(t, "Hotel Paraíso Renovado", updated.Name)
		assert.Equal(t, "Bombinhas", updated.Hotel.City)
		assert.Equal(t, []string{}, updated.Hotel.Amenities)

		me, err := f.svc.Me(shared.WithSession(ctx, login.SessionID))
		require.NoError(t, err)
		assert.Equal(t, "Hotel Paraíso Renovado", me.Name)
		assert.Equal(t, 12, me.Hotel.RoomCount)

		hotels, err := f.svc.ListHotels(ctx)
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "Hotel Paraíso Renovado", hotels[0].Name)
	})
}

func TestListHotels_RegistrationOrder(t *testing.T) {
	f := newFixture(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := context.Background()

	hotels, err := f.svc.ListHotels(ctx)
	require.NoError(t, err)
	assert.Empty(t, hotels)

	require.NoError(t, f.svc.Register(ctx, hotelRequest("b@hotel.com", "Pousada Sol")))
	require.NoError(t, f.svc.Register(ctx, clientRequest("a@x.com", "abc")))
	require.NoError(t, f.svc.Register(ctx, hotelRequest("a@hotel.com", "Hotel Paraíso")))

	hotels, err = f.svc.ListHotels(ctx)
	require.NoError(t, err)
	require.Len(t, hotels, 2)
	assert.Equal(t, "Pousada Sol", hotels[0].Name)
	assert.Equal(t, "Hotel Paraíso", hotels[1].Name)

	got, err := f.svc.Get(ctx, hotels[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "a@hotel.com", got.Email)

	_, err = f.svc.Get(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
