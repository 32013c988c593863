//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"venus/config"
	"venus/infras/jwt"
	"venus/internal/events"
	"venus/internal/storage"
	"venus/permissions"
	"venus/shared/cache"
	"venus/transport/http"
	"venus/transport/http/middleware"
	"venus/transport/http/router"

	accountRepository "venus/internal/domains/account/repository"
	accountService "venus/internal/domains/account/service"
	notificationRepository "venus/internal/domains/notification/repository"
	notificationService "venus/internal/domains/notification/service"
	reservationRepository "venus/internal/domains/reservation/repository"
	reservationService "venus/internal/domains/reservation/service"
	roomRepository "venus/internal/domains/room/repository"
	roomService "venus/internal/domains/room/service"
	seedService "venus/internal/domains/seed/service"
	sessionRepository "venus/internal/domains/session/repository"
	sessionService "venus/internal/domains/session/service"

	authHandler "venus/internal/handlers/auth"
	hotelHandler "venus/internal/handlers/hotel"
	notificationHandler "venus/internal/handlers/notification"
	reservationHandler "venus/internal/handlers/reservation"
	roomHandler "venus/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	provideOtel,
	provideRedis,
	provideKafka,
	jwt.New,
	storage.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	provideBus,
	wire.Bind(new(events.Publisher), new(*events.Bus)),
)

var accountDomain = wire.NewSet(
	accountRepository.New,
	accountService.New,
)

var sessionDomain = wire.NewSet(
	sessionRepository.New,
	sessionService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var domains = wire.NewSet(
	accountDomain,
	sessionDomain,
	roomDomain,
	reservationDomain,
	notificationDomain,
	seedService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	hotelHandler.New,
	roomHandler.New,
	reservationHandler.New,
	notificationHandler.New,
	router.New,
)

func InitializeService(ctx context.Context) (*App, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return nil, nil, nil
}
