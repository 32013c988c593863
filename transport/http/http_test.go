package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venus/config"
	"venus/infras/jwt"
	otelMocks "venus/infras/otel/mocks"
	accountRepository "venus/internal/domains/account/repository"
	accountService "venus/internal/domains/account/service"
	notificationRepository "venus/internal/domains/notification/repository"
	notificationService "venus/internal/domains/notification/service"
	reservationRepository "venus/internal/domains/reservation/repository"
	reservationService "venus/internal/domains/reservation/service"
	roomRepository "venus/internal/domains/room/repository"
	roomService "venus/internal/domains/room/service"
	sessionRepository "venus/internal/domains/session/repository"
	sessionService "venus/internal/domains/session/service"
	"venus/internal/events"
	authHandler "venus/internal/handlers/auth"
	hotelHandler "venus/internal/handlers/hotel"
	notificationHandler "venus/internal/handlers/notification"
	reservationHandler "venus/internal/handlers/reservation"
	roomHandler "venus/internal/handlers/room"
	"venus/internal/storage"
	"venus/permissions"
	"venus/shared/cache"
	"venus/shared/constant"
	transport "venus/transport/http"
	"venus/transport/http/middleware"
	"venus/transport/http/router"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "venus"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 5
	cfg.JWT.RefreshExpireMin = 60
	cfg.App.StrictStatusTransitions = true

	ot := otelMocks.NewOtel()
	store := storage.NewMemory()
	redisCache := cache.NewRedisCache(nil, ot)
	jwtService := jwt.New(cfg)

	sessions := sessionService.New(sessionRepository.New(store, ot), cfg, ot)
	notifications := notificationService.New(notificationRepository.New(store, ot), cfg, ot)

	bus := events.NewBus(nil, ot)
	bus.Subscribe(notifications.Record)

	accounts := accountService.New(accountRepository.New(store, ot), sessions, jwtService, bus, cfg, redisCache, ot)
	rooms := roomService.New(roomRepository.New(store, ot), cfg, redisCache, ot)
	reservations := reservationService.New(reservationRepository.New(store, ot), accounts, rooms, bus, cfg, redisCache, ot)

	perms := permissions.Get()
	require.NotNil(t, perms)

	mw := middleware.NewAuthRoleMiddleware(jwtService, sessions, ot, perms, cfg)

	r := router.New(router.DomainHandlers{
		Auth:         authHandler.New(accounts, mw, ot),
		Hotel:        hotelHandler.New(accounts, mw, ot),
		Room:         roomHandler.New(rooms, mw, ot),
		Reservation:  reservationHandler.New(reservations, mw, ot),
		Notification: notificationHandler.New(notifications, mw, ot),
	})

	return transport.New(cfg, r, middleware.NewAppMiddleware(ot, cfg, redisCache)).Handler()
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	if token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"status":"ready"}}`, rec.Body.String())
}

func TestAccountFlow(t *testing.T) {
	h := newServer(t)

	register := map[string]any{
		"email":    "a@x.com",
		"password": "abc",
		"name":     "Ana",
		"role":     constant.RoleClient,
		"client":   map[string]any{"surname": "Souza"},
	}

	rec := do(t, h, http.MethodPost, "/v1/auth/register", "", register)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/v1/auth/register", "", register)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "a@x.com", "password": "abc"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Data struct {
			AccessToken string         `json:"accessToken"`
			User        map[string]any `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.AccessToken)
	assert.NotContains(t, login.Data.User, "credential")
	assert.NotContains(t, login.Data.User, "password")

	token := login.Data.AccessToken

	rec = do(t, h, http.MethodGet, "/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"a@x.com"`)

	rec = do(t, h, http.MethodPut, "/v1/rooms", token, map[string]any{"name": "Suite", "capacity": 2, "price": 100})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/notifications", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPublicRoutes(t *testing.T) {
	h := newServer(t)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/hotels", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/hotels/h1/rooms", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/v1/hotels/h1/reservations", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/v1/unknown", "", nil).Code)
}
