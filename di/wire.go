//go:build wireinject
// +build wireinject

package di

import (
	"wanderwise/config"
	"wanderwise/infras/jwt"
	"wanderwise/infras/kafka"
	"wanderwise/infras/otel"
	"wanderwise/infras/postgres"
	"wanderwise/infras/redis"
	"wanderwise/infras/s3"
	"wanderwise/permissions"
	"wanderwise/shared/cache"
	"wanderwise/transport/http"
	"wanderwise/transport/http/middleware"
	"wanderwise/transport/http/router"

	"github.com/google/wire"

	authService "wanderwise/internal/domains/auth/service"
	bookingRepository "wanderwise/internal/domains/booking/repository"
	bookingService "wanderwise/internal/domains/booking/service"
	notificationRepository "wanderwise/internal/domains/notification/repository"
	notificationService "wanderwise/internal/domains/notification/service"
	paymentRepository "wanderwise/internal/domains/payment/repository"
	paymentService "wanderwise/internal/domains/payment/service"
	tourRepository "wanderwise/internal/domains/tour/repository"
	tourService "wanderwise/internal/domains/tour/service"
	tripService "wanderwise/internal/domains/trip/service"
	userRepository "wanderwise/internal/domains/user/repository"
	userService "wanderwise/internal/domains/user/service"

	authHandler "wanderwise/internal/handlers/auth"
	bookingHandler "wanderwise/internal/handlers/booking"
	notificationHandler "wanderwise/internal/handlers/notification"
	paymentHandler "wanderwise/internal/handlers/payment"
	tourHandler "wanderwise/internal/handlers/tour"
	tripHandler "wanderwise/internal/handlers/trip"
	userHandler "wanderwise/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
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

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var tourDomain = wire.NewSet(
	tourRepository.New,
	tourService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var tripDomain = wire.NewSet(
	tripService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	tourDomain,
	bookingDomain,
	paymentDomain,
	notificationDomain,
	tripDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	tourHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	notificationHandler.New,
	tripHandler.New,
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
