//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	auditRepository "hotel/internal/domains/audit/repository"
	auditService "hotel/internal/domains/audit/service"
	authService "hotel/internal/domains/auth/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	cashflowRepository "hotel/internal/domains/cashflow/repository"
	cashflowService "hotel/internal/domains/cashflow/service"
	checkoutService "hotel/internal/domains/checkout/service"
	customerRepository "hotel/internal/domains/customer/repository"
	customerService "hotel/internal/domains/customer/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	settingsRepository "hotel/internal/domains/settings/repository"
	settingsService "hotel/internal/domains/settings/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"

	auditHandler "hotel/internal/handlers/audit"
	authHandler "hotel/internal/handlers/auth"
	bookingHandler "hotel/internal/handlers/booking"
	cashflowHandler "hotel/internal/handlers/cashflow"
	customerHandler "hotel/internal/handlers/customer"
	roomHandler "hotel/internal/handlers/room"
	settingsHandler "hotel/internal/handlers/settings"
	userHandler "hotel/internal/handlers/user"

	"github.com/google/wire"
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
	ProvideTxBeginner,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewCategory,
	roomService.New,
	roomService.NewCategory,
)

var settingsDomain = wire.NewSet(
	settingsRepository.New,
	settingsService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerRepository.NewTransaction,
	customerService.New,
)

var cashflowDomain = wire.NewSet(
	cashflowRepository.NewEntry,
	cashflowRepository.NewWallet,
	cashflowService.New,
)

var auditDomain = wire.NewSet(
	auditRepository.New,
	auditService.New,
)

var checkoutDomain = wire.NewSet(
	checkoutService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	roomDomain,
	settingsDomain,
	bookingDomain,
	customerDomain,
	cashflowDomain,
	auditDomain,
	checkoutDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	customerHandler.New,
	cashflowHandler.New,
	settingsHandler.New,
	auditHandler.New,
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
