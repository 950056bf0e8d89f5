package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/clubreviewapp/clubreview-server/internal/api"
	"github.com/clubreviewapp/clubreview-server/internal/config"
	"github.com/clubreviewapp/clubreview-server/internal/logger"
	"github.com/clubreviewapp/clubreview-server/internal/service"
	"github.com/clubreviewapp/clubreview-server/internal/validation"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	clubService := do.MustInvoke[*service.ClubService](i)
	tagService := do.MustInvoke[*service.TagService](i)
	userService := do.MustInvoke[*service.UserService](i)
	authService := do.MustInvoke[*service.AuthService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	limiterHandle := do.MustInvoke[*AuthLimiterHandle](i)

	handler := api.NewServer(
		clubService,
		tagService,
		userService,
		authService,
		validator,
		limiterHandle.KeyedRateLimiter,
		log,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr, "name", cfg.Server.Name)

	return &HTTPServerHandle{Server: srv}, nil
}
