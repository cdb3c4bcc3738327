//go:build wireinject
// +build wireinject

package di

import (
	"agenda/config"
	"agenda/infras/jwt"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/infras/redis"
	"agenda/infras/s3"
	"agenda/permissions"
	"agenda/shared/cache"
	"agenda/transport/http"
	"agenda/transport/http/middleware"
	"agenda/transport/http/router"

	authService "agenda/internal/domains/auth/service"
	bookingRepository "agenda/internal/domains/booking/repository"
	bookingService "agenda/internal/domains/booking/service"
	notificationRepository "agenda/internal/domains/notification/repository"
	notificationService "agenda/internal/domains/notification/service"
	professionalRepository "agenda/internal/domains/professional/repository"
	professionalService "agenda/internal/domains/professional/service"
	profileRepository "agenda/internal/domains/profile/repository"
	profileService "agenda/internal/domains/profile/service"
	scheduleRepository "agenda/internal/domains/schedule/repository"
	scheduleService "agenda/internal/domains/schedule/service"
	userRepository "agenda/internal/domains/user/repository"
	userService "agenda/internal/domains/user/service"

	authHandler "agenda/internal/handlers/auth"
	bookingHandler "agenda/internal/handlers/booking"
	notificationHandler "agenda/internal/handlers/notification"
	professionalHandler "agenda/internal/handlers/professional"
	profileHandler "agenda/internal/handlers/profile"
	scheduleHandler "agenda/internal/handlers/schedule"
	userHandler "agenda/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.TxRunner), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var professionalDomain = wire.NewSet(
	professionalRepository.New,
	professionalService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var profileDomain = wire.NewSet(
	profileRepository.NewProfile,
	profileRepository.NewFavorite,
	profileService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	professionalDomain,
	scheduleDomain,
	bookingDomain,
	notificationDomain,
	profileDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	professionalHandler.New,
	scheduleHandler.New,
	bookingHandler.New,
	notificationHandler.New,
	profileHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
