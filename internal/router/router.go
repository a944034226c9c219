package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "forwardicons/docs"
	"forwardicons/internal/handler"
	"forwardicons/internal/metrics"
	"forwardicons/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Upload  *handler.UploadHandler
	Cutout  *handler.CutoutHandler
	Catalog *handler.CatalogHandler
	Health  *handler.HealthHandler
}

// Options holds the cross-cutting router settings.
type Options struct {
	AllowedOrigins []string
	// TrustedProxies lists the proxy IPs/CIDRs whose X-Forwarded-For is
	// honoured. Empty means the socket peer is the client.
	TrustedProxies []string
	MaxUploadBytes int64
	AuthLimiter    *middleware.IPRateLimiter
	Metrics        *metrics.Metrics
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		slog.Warn("router.Setup: invalid trusted proxies, trusting none", "proxies", opts.TrustedProxies, "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// Uploads and the pending batch
	uploads := api.Group("")
	uploads.Use(middleware.BodyLimit(opts.MaxUploadBytes))
	uploads.POST("/upload", h.Upload.Upload)
	uploads.POST("/ai_cutout", h.Cutout.Cutout)
	uploads.POST("/ai_cutout_custom", h.Cutout.CustomCutout)

	api.POST("/finalize_batch", h.Upload.FinalizeBatch)
	api.GET("/batch", h.Upload.Pending)

	// Gated custom cutout
	api.POST("/ai/custom/auth", middleware.RateLimit(opts.AuthLimiter), h.Cutout.Authenticate)

	// Catalog views
	api.GET("/catalog", h.Catalog.Get)
	api.GET("/catalog/export", h.Catalog.Export)
	api.GET("/info", h.Catalog.Info)

	return r
}
