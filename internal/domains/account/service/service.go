package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"venus/config"
	"venus/infras/jwt"
	"venus/infras/otel"
	"venus/internal/domains/account/model"
	"venus/internal/domains/account/model/dto"
	"venus/internal/domains/account/repository"
	sessionService "venus/internal/domains/session/service"
	"venus/internal/events"
	"venus/shared"
	"venus/shared/cache"
	"venus/shared/constant"
	"venus/shared/failure"
	"venus/shared/metrics"
	"venus/shared/password"
	"venus/shared/timezone"
)

const (
	cacheListHotels = "account:hotels"
	cacheGetUser    = "account:user"

	loginSuccess            = "success"
	loginInvalidCredentials = "invalid_credentials"
	loginError              = "error"
)

type Account interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (dto.UserResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.LoginResponse, error)
	UpdateHotel(ctx context.Context, id string, req dto.UpdateHotelRequest) (dto.UserResponse, error)
	ListHotels(ctx context.Context) ([]dto.UserResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
}

type serviceImpl struct {
	repo       repository.Account
	session    sessionService.Session
	jwtService jwt.JWT
	publisher  events.Publisher
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Account,
	session sessionService.Session,
	jwtService jwt.JWT,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Account {
	return &serviceImpl{
		repo:       repo,
		session:    session,
		jwtService: jwtService,
		publisher:  publisher,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".account.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.CheckProfile(); err != nil {
		log.Warn().Str("email", req.Email).Str("role", req.Role).Msg("registration with an invalid profile")

		return err //nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		if errors.Is(err, password.ErrEmptyPassword) || errors.Is(err, password.ErrHashingPassword) {
			return failure.BadRequest(err) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(hashedPassword)

	if err = s.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			log.Warn().Str("email", req.Email).Msg("registration with an email already in use")

			return err //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	if user.IsHotel() {
		shared.InvalidateCaches(ctx, s.cache, cacheListHotels)
	}

	_ = s.publisher.Publish(ctx, events.Event{
		Kind:     events.AccountRegistered,
		ActorID:  user.ID,
		UserID:   user.ID,
		UserName: user.Name,
		UserRole: user.Role,
	})

	return nil
}

// Login answers ErrInvalidCredentials for an unknown email and for a wrong
// password alike, and spends a hash comparison in both cases.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".account.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, found, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginError).Inc()
		log.Error().Err(err).Msg("failed to look up user")

		return res, fmt.Errorf("failed to look up user: %w", err)
	}

	if !found {
		password.Discard(req.Password)
		metrics.LoginAttemptsTotal.WithLabelValues(loginInvalidCredentials).Inc()
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, model.ErrInvalidCredentials
	}

	if err = password.Verify(req.Password, user.Credential); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginInvalidCredentials).Inc()
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, model.ErrInvalidCredentials
	}

	res.User.FromModel(user)

	session, err := s.session.Start(ctx, res.User)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginError).Inc()

		return dto.LoginResponse{}, err //nolint:wrapcheck
	}

	if err = s.issueTokens(&res, session.ID); err != nil {
		return dto.LoginResponse{}, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues(loginSuccess).Inc()

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".account.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.session.End(ctx) //nolint:wrapcheck
}

func (s *serviceImpl) Me(ctx context.Context) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".account.Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, ok, err := s.session.Current(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !ok {
		return res, model.ErrNoSession
	}

	return res, nil
}

// RefreshToken rotates the token pair of a session that is still open.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".account.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") //nolint:wrapcheck
	}

	session, ok, err := s.session.Get(ctx, claims.SessionID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !ok {
		return res, model.ErrNoSession
	}

	res.User = session.User

	if err = s.issueTokens(&res, session.ID); err != nil {
		return dto.LoginResponse{}, err
	}

	return res, nil
}

// UpdateHotel replaces the profile of hotel id. Only that hotel may do it;
// its open sessions see the new profile immediately.
func (s *serviceImpl) UpdateHotel(ctx context.Context, id string, req dto.UpdateHotelRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".account.UpdateHotel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actorID, role := shared.ActorFromContext(ctx)
	if actorID != "" && (actorID != id || role != model.RoleHotel) {
		return res, model.ErrNotHotel
	}

	user, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if !found || !user.IsHotel() {
		return res, failure.NotFound("hotel not found") //nolint:wrapcheck
	}

	profile := req.Hotel.ToModel()
	if profile.Amenities == nil {
		profile.Amenities = []string{}
	}

	if profile.Images == nil {
		profile.Images = []string{}
	}

	user.Name = req.Name
	user.Hotel = &profile
	user.Touch(timezone.Now(), id)

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to update hotel")

		return res, fmt.Errorf("failed to update hotel: %w", err)
	}

	if !updated {
		return res, failure.NotFound("hotel not found") //nolint:wrapcheck
	}

	res.FromModel(user)

	shared.InvalidateCaches(ctx, s.cache, cacheListHotels, shared.BuildCacheKey(cacheGetUser, id))

	if err = s.session.Refresh(ctx, res); err != nil {
		return res, err //nolint:wrapcheck
	}

	return res, nil
}

// ListHotels returns every hotel in registration order.
func (s *serviceImpl) ListHotels(ctx context.Context) (res []dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".account.ListHotels")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cacheListHotels, &res); err == nil {
		log.Debug().Str("cacheKey", cacheListHotels).Msg("cache hit for hotels")

		return res, nil
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")

		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}

	res = []dto.UserResponse{}

	for _, user := range users {
		if !user.IsHotel() {
			continue
		}

		var hotel dto.UserResponse
		hotel.FromModel(user)
		res = append(res, hotel)
	}

	if err := s.cache.Save(ctx, cacheListHotels, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to save hotels to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".account.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	user, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if !found {
		return res, failure.NotFound("user not found") //nolint:wrapcheck
	}

	res.FromModel(user)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to save user to cache")
	}

	return res, nil
}

func (s *serviceImpl) issueTokens(res *dto.LoginResponse, sessionID string) error {
	tokenPair, err := s.jwtService.GenerateTokenPair(jwt.Subject{
		SessionID: sessionID,
		UserID:    res.User.ID,
		Email:     res.User.Email,
		Role:      res.User.Role,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.SessionID = sessionID
	res.FromTokenPair(tokenPair)

	return nil
}
