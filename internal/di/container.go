// Package di provides dependency injection configuration for the ClubReview server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/clubreviewapp/clubreview-server/internal/auth"
	"github.com/clubreviewapp/clubreview-server/internal/config"
	"github.com/clubreviewapp/clubreview-server/internal/di/providers"
	"github.com/clubreviewapp/clubreview-server/internal/logger"
	"github.com/clubreviewapp/clubreview-server/internal/service"
	"github.com/clubreviewapp/clubreview-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCache)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideAuthLimiter)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideClubService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideAuthService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is
// listening. This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*providers.AuthLimiterHandle](injector)

	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.ClubService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
