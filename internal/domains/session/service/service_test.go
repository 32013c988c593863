package service_test

import (
	"context"
	"testing"

	promModel "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venus/config"
	otelMocks "venus/infras/otel/mocks"
	"venus/internal/domains/account/model/dto"
	"venus/internal/domains/session/repository"
	"venus/internal/domains/session/service"
	"venus/internal/storage"
	"venus/shared"
	"venus/shared/metrics"
)

func newService(expireMin int) service.Session {
	cfg := &config.Config{}
	cfg.JWT.RefreshExpireMin = expireMin

	ot := otelMocks.NewOtel()

	return service.New(repository.New(storage.NewMemory(), ot), cfg, ot)
}

func TestCurrent_WithoutSession(t *testing.T) {
	svc := newService(60)

	_, ok, err := svc.Current(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStart_ThenCurrent(t *testing.T) {
	svc := newService(60)
	user := dto.UserResponse{ID: "c1", Email: "joao@email.com", Name: "João", Role: "CLIENT"}

	session, err := svc.Start(context.Background(), user)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.True(t, session.ExpiresAt.After(session.CreatedAt))

	current, ok, err := svc.Current(shared.WithSession(context.Background(), session.ID))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, user, current)
}

func TestEnd_Idempotent(t *testing.T) {
	svc := newService(60)

	session, err := svc.Start(context.Background(), dto.UserResponse{ID: "c1"})
	require.NoError(t, err)

	ctx := shared.WithSession(context.Background(), session.ID)
	require.NoError(t, svc.End(ctx))
	require.NoError(t, svc.End(ctx))
	require.NoError(t, svc.End(context.Background()))

	_, ok, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func activeSessions(t *testing.T) float64 {
	t.Helper()

	var m promModel.Metric
	require.NoError(t, metrics.ActiveSessions.Write(&m))

	return m.GetGauge().GetValue()
}

func TestEnd_UpdatesActiveSessions(t *testing.T) {
	svc := newService(60)
	ctx := context.Background()

	first, err := svc.Start(ctx, dto.UserResponse{ID: "c1"})
	require.NoError(t, err)
	second, err := svc.Start(ctx, dto.UserResponse{ID: "c2"})
	require.NoError(t, err)
	assert.InDelta(t, 2, activeSessions(t), 0)

	require.NoError(t, svc.End(shared.WithSession(ctx, first.ID)))
	assert.InDelta(t, 1, activeSessions(t), 0)

	require.NoError(t, svc.End(shared.WithSession(ctx, first.ID)))
	assert.InDelta(t, 1, activeSessions(t), 0)

	require.NoError(t, svc.End(shared.WithSession(ctx, second.ID)))
	assert.InDelta(t, 0, activeSessions(t), 0)
}

func TestCurrent_Expired(t *testing.T) {
	svc := newService(0)

	session, err := svc.Start(context.Background(), dto.UserResponse{ID: "c1"})
	require.NoError(t, err)

	_, ok, err := svc.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRefresh_ReplacesEverySessionOfUser(t *testing.T) {
	svc := newService(60)
	ctx := context.Background()

	first, err := svc.Start(ctx, dto.UserResponse{ID: "h1", Name: "Hotel Paraíso"})
	require.NoError(t, err)
	second, err := svc.Start(ctx, dto.UserResponse{ID: "h1", Name: "Hotel Paraíso"})
	require.NoError(t, err)
	other, err := svc.Start(ctx, dto.UserResponse{ID: "h2", Name: "Pousada Sol"})
	require.NoError(t, err)

	require.NoError(t, svc.Refresh(ctx, dto.UserResponse{ID: "h1", Name: "Hotel Paraíso Renovado"}))

	for _, id := range []string{first.ID, second.ID} {
		got, ok, err := svc.Get(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Hotel Paraíso Renovado", got.User.Name)
	}

	got, ok, err := svc.Get(ctx, other.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Pousada Sol", got.User.Name)
}
