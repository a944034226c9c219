package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"forwardicons/internal/bootstrap"
	"forwardicons/internal/config"
	"forwardicons/internal/cutout"
	"forwardicons/internal/handler"
	"forwardicons/internal/imagehost"
	_ "forwardicons/internal/imagehost/imgurl"
	_ "forwardicons/internal/imagehost/picgo"
	_ "forwardicons/internal/imagehost/picui"
	"forwardicons/internal/imagehost/s3host"
	"forwardicons/internal/logging"
	"forwardicons/internal/metrics"
	"forwardicons/internal/middleware"
	"forwardicons/internal/router"
	"forwardicons/internal/service"
)

// @title Forward Icons API
// @version 1.0
// @description Forwards icon uploads to an image host, keeps a shared icon catalog and proxies background removal.
// @BasePath /api
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.InitLogger(cfg.Log.Level, cfg.Log.Format)
	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.NewDefault()

	pipeline, err := bootstrap.NewPipeline(cfg, m)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}
	defer pipeline.Close()
	if pipeline.Storage != nil {
		s3host.Register(pipeline.Storage)
	}

	host, err := imagehost.New(&cfg.Upload)
	if err != nil {
		return fmt.Errorf("failed to initialize image host: %w", err)
	}
	if err := host.Validate(); err != nil {
		slog.Warn("image host is not usable; uploads will be rejected", "service", host.Name(), "error", err)
	}

	sessions, err := service.NewSessionService(cfg.Cutout.Custom.Password, cfg.Session, clockwork.NewRealClock())
	if err != nil {
		return fmt.Errorf("failed to initialize sessions: %w", err)
	}

	cutoutClient := &http.Client{Timeout: cfg.Cutout.Timeout()}
	candidates := cutout.DefaultCandidates(cfg.Cutout.ProviderKeys(), cutoutClient, nil)
	pool := cutout.NewFailoverRemover(candidates, cutout.WithMetrics(m))
	if pool.Len() == 0 {
		slog.Warn("no cutout provider keys configured; /api/ai_cutout will fail")
	}
	custom := service.CustomCutout{Enabled: cfg.Cutout.Custom.Enabled}
	if cfg.Cutout.Custom.URL != "" {
		custom.Remover = cutout.NewCustomRemover(&cfg.Cutout.Custom, cutoutClient)
	}

	// Initialize services
	uploadSvc := service.NewUploadService(host, pipeline.Merger, pipeline.Batch, m, service.UploadOptions{StrictMerge: cfg.Catalog.StrictMerge})
	cutoutSvc := service.NewCutoutService(pool, custom, sessions)
	catalogSvc := service.NewCatalogService(pipeline.Store, service.CatalogInfo{
		GithubUser:    cfg.Catalog.Gist.User,
		GistID:        cfg.Catalog.Gist.ID,
		UploadService: host.Name(),
		Backend:       strings.ToLower(cfg.Catalog.Backend),
	})

	// Initialize handlers
	handlers := router.Handlers{
		Upload: handler.NewUploadHandler(uploadSvc),
		Cutout: handler.NewCutoutHandler(cutoutSvc, handler.CookieSettings{
			Name:   cfg.Session.CookieName,
			MaxAge: int(sessions.TTL().Seconds()),
			Secure: cfg.Session.CookieSecure,
		}),
		Catalog: handler.NewCatalogHandler(catalogSvc),
		Health:  handler.NewHealthHandler(pipeline.DB),
	}

	var limiter *middleware.IPRateLimiter
	if cfg.RateLimit.AuthRPS > 0 {
		limiter = middleware.NewIPRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)
	}

	r := router.Setup(handlers, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
		AuthLimiter:    limiter,
		Metrics:        m,
	})

	return serve(r, cfg.Server)
}

func serve(r *gin.Engine, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
