// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, rate limiting, and the admin session guard.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - The agent API stays unauthenticated; everything admin sits behind JWT
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/config"
	"github.com/lia-imoveis/backoffice/internal/domain"
	"github.com/lia-imoveis/backoffice/internal/http/handlers"
	"github.com/lia-imoveis/backoffice/internal/http/middleware"
	"github.com/lia-imoveis/backoffice/internal/repo"
	"github.com/lia-imoveis/backoffice/internal/services"
)

// leadRepoShim adapts the repository free functions to the services.LeadRepo
// interface expected by the LeadService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type leadRepoShim struct{}

// GetLeadByPhone proxies repo.GetLeadByPhone.
func (leadRepoShim) GetLeadByPhone(ctx context.Context, db *gorm.DB, phone string) (*domain.Lead, error) {
	return repo.GetLeadByPhone(ctx, db, phone)
}

// CreateLead proxies repo.CreateLead.
func (leadRepoShim) CreateLead(ctx context.Context, db *gorm.DB, l *domain.Lead) (*domain.Lead, error) {
	return repo.CreateLead(ctx, db, l)
}

// UpdateLeadFields proxies repo.UpdateLeadFields.
func (leadRepoShim) UpdateLeadFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	return repo.UpdateLeadFields(ctx, db, id, fields)
}

// ListLeadsPage proxies repo.ListLeadsPage (pagination support).
func (leadRepoShim) ListLeadsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Lead, error) {
	return repo.ListLeadsPage(ctx, db, offset, limit)
}

// CountLeads proxies repo.CountLeads (pagination support).
func (leadRepoShim) CountLeads(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountLeads(ctx, db)
}

// CountSlotsForLead proxies repo.CountSlotsForLead (delete guard).
func (leadRepoShim) CountSlotsForLead(ctx context.Context, db *gorm.DB, leadID string) (int64, error) {
	return repo.CountSlotsForLead(ctx, db, leadID)
}

// DeleteLead proxies repo.DeleteLead.
func (leadRepoShim) DeleteLead(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteLead(ctx, db, id)
}

// catalogRepoShim adapts the property search to services.CatalogRepo.
type catalogRepoShim struct{}

// SearchAvailableProperties proxies repo.SearchAvailableProperties.
func (catalogRepoShim) SearchAvailableProperties(ctx context.Context, db *gorm.DB, query string, limit int) ([]domain.Property, error) {
	return repo.SearchAvailableProperties(ctx, db, query, limit)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the agent API under /api/lia and the admin API under /api/admin.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured logs with PII masking
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per admin/IP)
//  8. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with PII masking
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per admin/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	leadSvc := services.NewLeadService(db, leadRepoShim{})
	bookingSvc := &services.BookingService{DB: db, Leads: leadSvc}
	catalogSvc := &services.CatalogService{DB: db, Repo: catalogRepoShim{}, Limit: cfg.CatalogLimit}
	brainSvc := &services.BrainService{DB: db}
	scheduleSvc := services.NewScheduleService(db)
	scheduleSvc.Limit = cfg.SlotsLimit
	propSvc := &services.PropertyService{DB: db}
	authSvc := services.NewAuthService(db, []byte(cfg.JWTSecret), cfg.SessionTTL)
	statsSvc := services.NewStatsService(db)

	h := handlers.New(leadSvc, bookingSvc, catalogSvc, brainSvc, scheduleSvc, propSvc, authSvc, statsSvc)

	// Agent API (server-to-server; unauthenticated by design). Catalog
	// payloads compress well, so the whole group is gzipped.
	lia := r.Group("/api/lia", gzip.Gzip(gzip.DefaultCompression))
	{
		lia.GET("/context", h.GetContext)
		lia.POST("/lead", h.UpsertLead)
		lia.POST("/schedule", h.ScheduleVisit)
		lia.GET("/slots", h.ListSlots)
	}

	// Admin API (JWT, ADMIN role)
	admin := r.Group("/api/admin")
	admin.POST("/login", h.Login)

	guarded := admin.Group("", middleware.AdminAuth([]byte(cfg.JWTSecret)))
	{
		guarded.GET("/dashboard", h.GetDashboard)

		guarded.GET("/properties", h.ListProperties)
		guarded.POST("/properties", h.CreateProperty)
		guarded.GET("/properties/:id", h.GetProperty)
		guarded.PUT("/properties/:id", h.UpdateProperty)
		guarded.DELETE("/properties/:id", h.DeleteProperty)

		guarded.GET("/leads", h.ListLeads)
		guarded.DELETE("/leads/:id", h.DeleteLead)

		guarded.GET("/slots", h.ListAdminSlots)
		guarded.POST("/slots", h.CreateSlot)
		guarded.DELETE("/slots/:id", h.DeleteSlot)

		guarded.GET("/brain", h.GetBrain)
		guarded.PUT("/brain", h.UpdateBrain)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
