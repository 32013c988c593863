package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venus/config"
	"venus/infras/jwt"
	otelMocks "venus/infras/otel/mocks"
	"venus/internal/domains/account/model/dto"
	sessionRepository "venus/internal/domains/session/repository"
	sessionService "venus/internal/domains/session/service"
	"venus/internal/storage"
	"venus/permissions"
	"venus/shared"
	"venus/shared/constant"
	"venus/transport/http/middleware"
)

const apiKey = "internal-key"

type fixture struct {
	router   http.Handler
	jwt      jwt.JWT
	sessions sessionService.Session
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 5
	cfg.JWT.RefreshExpireMin = 60
	cfg.App.APIKey = apiKey

	ot := otelMocks.NewOtel()
	jwtService := jwt.New(cfg)
	sessions := sessionService.New(sessionRepository.New(storage.NewMemory(), ot), cfg, ot)

	perms := &permissions.PermissionData{Endpoints: []permissions.Permission{
		{Path: "/v1/rooms", Method: http.MethodPut, Permissions: []string{constant.RoleHotel}},
	}}

	mw := middleware.NewAuthRoleMiddleware(jwtService, sessions, ot, perms, cfg)

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(mw.APIKey, mw.Auth, mw.RBAC)
			r.Put("/rooms", func(w http.ResponseWriter, r *http.Request) {
				userID, role := shared.ActorFromContext(r.Context())
				w.Header().Set("X-Actor", userID+"/"+role+"/"+shared.SessionFromContext(r.Context()))
				w.WriteHeader(http.StatusOK)
			})
		})
	})

	return fixture{router: r, jwt: jwtService, sessions: sessions}
}

func (f fixture) login(t *testing.T, user dto.UserResponse) (*jwt.TokenPair, string) {
	t.Helper()

	session, err := f.sessions.Start(context.Background(), user)
	require.NoError(t, err)

	pair, err := f.jwt.GenerateTokenPair(jwt.Subject{SessionID: session.ID, UserID: user.ID, Email: user.Email, Role: user.Role})
	require.NoError(t, err)

	return pair, session.ID
}

func (f fixture) put(header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/v1/rooms", nil)
	for k, v := range header {
		req.Header.Set(k, v[0])
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func bearer(token string) http.Header {
	return http.Header{constant.RequestHeaderAuthorization: []string{"Bearer " + token}}
}

func TestAuth_Rejections(t *testing.T) {
	f := newFixture(t)
	pair, _ := f.login(t, dto.UserResponse{ID: "h1", Email: "hotel@venus.com", Role: constant.RoleHotel})

	tests := []struct {
		name   string
		header http.Header
	}{
		{"missing header", http.Header{}},
		{"bad scheme", http.Header{constant.RequestHeaderAuthorization: []string{"Token " + pair.AccessToken}}},
		{"garbage token", bearer("not-a-jwt")},
		{"refresh token as access token", bearer(pair.RefreshToken)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.put(tt.header)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuth_EndedSession(t *testing.T) {
	f := newFixture(t)
	pair, sessionID := f.login(t, dto.UserResponse{ID: "h1", Email: "hotel@venus.com", Role: constant.RoleHotel})

	require.NoError(t, f.sessions.End(shared.WithSession(context.Background(), sessionID)))

	rec := f.put(bearer(pair.AccessToken))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ActorFromSession(t *testing.T) {
	f := newFixture(t)
	pair, sessionID := f.login(t, dto.UserResponse{ID: "h1", Email: "hotel@venus.com", Role: constant.RoleHotel})

	rec := f.put(bearer(pair.AccessToken))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "h1/"+constant.RoleHotel+"/"+sessionID, rec.Header().Get("X-Actor"))
}

func TestRBAC_RoleNotAllowed(t *testing.T) {
	f := newFixture(t)
	pair, _ := f.login(t, dto.UserResponse{ID: "c1", Email: "cliente@venus.com", Role: constant.RoleClient})

	rec := f.put(bearer(pair.AccessToken))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAPIKey(t *testing.T) {
	f := newFixture(t)

	t.Run("valid key skips auth", func(t *testing.T) {
		rec := f.put(http.Header{constant.RequestHeaderAPIKey: []string{apiKey}})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "//", rec.Header().Get("X-Actor"))
	})

	t.Run("wrong key", func(t *testing.T) {
		rec := f.put(http.Header{constant.RequestHeaderAPIKey: []string{"guess"}})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
