package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"venus/config"
	"venus/infras/otel"
	"venus/internal/domains/account/model/dto"
	"venus/internal/domains/session/model"
	"venus/internal/domains/session/repository"
	"venus/shared"
	"venus/shared/constant"
	"venus/shared/metrics"
	"venus/shared/timezone"
)

type Session interface {
	Start(ctx context.Context, user dto.UserResponse) (model.Session, error)
	Current(ctx context.Context) (dto.UserResponse, bool, error)
	Get(ctx context.Context, id string) (model.Session, bool, error)
	End(ctx context.Context) error
	Refresh(ctx context.Context, user dto.UserResponse) error
}

type serviceImpl struct {
	repo repository.Session
	cfg  *config.Config
	otel otel.Otel
	now  func() time.Time
}

func New(repo repository.Session, cfg *config.Config, otel otel.Otel) Session {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
		now:  timezone.Now,
	}
}

// Start opens a session for user. Sessions live as long as a refresh token.
func (s *serviceImpl) Start(ctx context.Context, user dto.UserResponse) (res model.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Start")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.now()
	res = model.Session{
		ID:        uuid.NewString(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(s.cfg.JWT.RefreshExpireMin) * time.Minute),
	}

	active, err := s.repo.Insert(ctx, res, now)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to start session")

		return model.Session{}, fmt.Errorf("failed to start session: %w", err)
	}

	metrics.ActiveSessions.Set(float64(active))

	return res, nil
}

// Current resolves the session carried by ctx.
func (s *serviceImpl) Current(ctx context.Context) (res dto.UserResponse, ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Current")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sessionID := shared.SessionFromContext(ctx)
	if sessionID == "" {
		return res, false, nil
	}

	session, ok, err := s.Get(ctx, sessionID)
	if err != nil || !ok {
		return res, false, err
	}

	return session.User, true, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (model.Session, bool, error) {
	session, ok, err := s.repo.Find(ctx, id, s.now())
	if err != nil {
		log.Error().Err(err).Msg("failed to read session")

		return model.Session{}, false, fmt.Errorf("failed to read session: %w", err)
	}

	return session, ok, nil
}

// End closes the session carried by ctx. Ending twice is not an error.
func (s *serviceImpl) End(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.End")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sessionID := shared.SessionFromContext(ctx)
	if sessionID == "" {
		return nil
	}

	remaining, err := s.repo.Remove(ctx, sessionID, s.now())
	if err != nil {
		log.Error().Err(err).Msg("failed to end session")

		return fmt.Errorf("failed to end session: %w", err)
	}

	metrics.ActiveSessions.Set(float64(remaining))

	return nil
}

// Refresh rewrites the user copy held by every session of that user.
func (s *serviceImpl) Refresh(ctx context.Context, user dto.UserResponse) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Refresh")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	replaced, err := s.repo.ReplaceUser(ctx, user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to refresh sessions")

		return fmt.Errorf("failed to refresh sessions: %w", err)
	}

	log.Debug().Str("user_id", user.ID).Int("sessions", replaced).Msg("sessions refreshed")

	return nil
}
