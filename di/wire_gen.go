// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"agenda/config"
	"agenda/infras/jwt"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/infras/redis"
	"agenda/infras/s3"
	"agenda/internal/domains/auth/service"
	repository4 "agenda/internal/domains/booking/repository"
	service5 "agenda/internal/domains/booking/service"
	repository5 "agenda/internal/domains/notification/repository"
	service6 "agenda/internal/domains/notification/service"
	repository2 "agenda/internal/domains/professional/repository"
	service3 "agenda/internal/domains/professional/service"
	repository6 "agenda/internal/domains/profile/repository"
	service7 "agenda/internal/domains/profile/service"
	repository3 "agenda/internal/domains/schedule/repository"
	service4 "agenda/internal/domains/schedule/service"
	"agenda/internal/domains/user/repository"
	service2 "agenda/internal/domains/user/service"
	"agenda/internal/handlers/auth"
	"agenda/internal/handlers/booking"
	"agenda/internal/handlers/notification"
	"agenda/internal/handlers/professional"
	"agenda/internal/handlers/profile"
	"agenda/internal/handlers/schedule"
	"agenda/internal/handlers/user"
	"agenda/permissions"
	"agenda/shared/cache"
	"agenda/transport/http"
	"agenda/transport/http/middleware"
	"agenda/transport/http/router"
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryUser := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(repositoryUser, configConfig, otelOtel, jwtJWT)
	handler := auth.New(serviceAuth, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceUser := service2.New(repositoryUser, configConfig, redisCache, otelOtel)
	userHandler := user.New(serviceUser, otelOtel)
	repositoryProfessional := repository2.New(connection, otelOtel)
	serviceProfessional := service3.New(repositoryProfessional, configConfig, redisCache, otelOtel)
	professionalHandler := professional.New(serviceProfessional, otelOtel)
	slot := repository3.New(connection, otelOtel)
	repositoryBooking := repository4.New(connection, otelOtel)
	repositoryNotification := repository5.New(connection, otelOtel)
	permissionData := permissions.Get()
	kafkaClient := kafka.New(configConfig)
	serviceSchedule := service4.New(slot, repositoryBooking, repositoryNotification, repositoryProfessional, connection, permissionData, kafkaClient, configConfig, redisCache, otelOtel)
	scheduleHandler := schedule.New(serviceSchedule, otelOtel)
	serviceBooking := service5.New(repositoryBooking, slot, kafkaClient, configConfig, redisCache, otelOtel)
	bookingHandler := booking.New(serviceBooking, otelOtel)
	serviceNotification := service6.New(repositoryNotification, permissionData, configConfig, redisCache, otelOtel)
	notificationHandler := notification.New(serviceNotification, otelOtel)
	repositoryProfile := repository6.NewProfile(connection, otelOtel)
	favorite := repository6.NewFavorite(connection, otelOtel)
	s3S3 := s3.New(configConfig, otelOtel)
	serviceProfile := service7.New(repositoryProfile, favorite, repositoryUser, repositoryBooking, repositoryNotification, repositoryProfessional, connection, configConfig, redisCache, otelOtel, s3S3)
	profileHandler := profile.New(serviceProfile, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:         handler,
		User:         userHandler,
		Professional: professionalHandler,
		Schedule:     scheduleHandler,
		Booking:      bookingHandler,
		Notification: notificationHandler,
		Profile:      profileHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware, authRole)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get, permissions.Get)

var infrastructures = wire.NewSet(postgres.New, wire.Bind(new(postgres.TxRunner), new(*postgres.Connection)), otel.New, redis.New, jwt.New, kafka.New, s3.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var userDomain = wire.NewSet(repository.New, service2.New)

var authDomain = wire.NewSet(service.New)

var professionalDomain = wire.NewSet(repository2.New, service3.New)

var scheduleDomain = wire.NewSet(repository3.New, service4.New)

var bookingDomain = wire.NewSet(repository4.New, service5.New)

var notificationDomain = wire.NewSet(repository5.New, service6.New)

var profileDomain = wire.NewSet(repository6.NewProfile, repository6.NewFavorite, service7.New)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	professionalDomain,
	scheduleDomain,
	bookingDomain,
	notificationDomain,
	profileDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, user.New, professional.New, schedule.New, booking.New, notification.New, profile.New, router.New)
