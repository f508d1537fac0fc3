package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const openAPIPath = "/swagger/openapi.json"

// Run serves handler (with CORS and API docs mounted) and blocks until ctx
// is cancelled or the server fails. Shutdown drains in-flight requests for
// up to the configured timeout.
func Run(ctx context.Context, cfg config.HTTPConfig, router *gin.Engine, logger *slog.Logger) error {
	srv := NewServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve http on %s: %w", cfg.Address, err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewServer mounts the swagger UI and document on router and wraps it in
// CORS.
func NewServer(cfg config.HTTPConfig, router *gin.Engine) *http.Server {
	if cfg.SwaggerDir != "" {
		router.Static("/swagger", cfg.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(openAPIPath))))
	}

	var handler http.Handler = router
	if len(cfg.CORSOrigins) > 0 {
		handler = cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		})(handler)
	}

	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
	}
}
