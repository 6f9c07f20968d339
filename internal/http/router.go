// Package httpapi wires the HTTP transport (Gin) to the application
// service, middleware, and route handlers. It centralizes cross-cutting
// concerns: tracing, correlation IDs, structured logging, panic recovery,
// metrics, compression, CORS, security headers, authentication, and rate
// limiting.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per client IP)
//  9. CORS and security headers
//  10. Bearer auth, on the cliente group only
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/marvera/go-clientes-backend/internal/config"
	"github.com/marvera/go-clientes-backend/internal/domain"
	"github.com/marvera/go-clientes-backend/internal/http/handlers"
	"github.com/marvera/go-clientes-backend/internal/http/middleware"
	"github.com/marvera/go-clientes-backend/internal/repo"
	"github.com/marvera/go-clientes-backend/internal/services"
)

// clienteRepoShim adapts the repository free functions to the
// services.ClienteRepo interface expected by the ClienteService. This
// keeps the service decoupled from the concrete repo package while
// reusing the existing functions.
type clienteRepoShim struct{}

func (clienteRepoShim) Save(ctx context.Context, db *gorm.DB, c *domain.Cliente) (*domain.Cliente, error) {
	return repo.SaveCliente(ctx, db, c)
}

func (clienteRepoShim) Update(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.Cliente, error) {
	return repo.UpdateCliente(ctx, db, id, fields)
}

func (clienteRepoShim) Exists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	return repo.ClienteExists(ctx, db, id)
}

func (clienteRepoShim) Get(ctx context.Context, db *gorm.DB, id string) (*domain.Cliente, error) {
	return repo.GetCliente(ctx, db, id)
}

func (clienteRepoShim) List(ctx context.Context, db *gorm.DB) ([]domain.Cliente, error) {
	return repo.ListClientes(ctx, db)
}

func (clienteRepoShim) CountByNumeroDocumento(ctx context.Context, db *gorm.DB, numero, excludeID string) (int64, error) {
	return repo.CountClientesByNumeroDocumento(ctx, db, numero, excludeID)
}

func (clienteRepoShim) CountByEmail(ctx context.Context, db *gorm.DB, email, excludeID string) (int64, error) {
	return repo.CountClientesByEmail(ctx, db, email, excludeID)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given
// Gin engine, then mounts the cliente resource under the configured base
// path inside the authenticated group.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "ETag", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

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

	// Dependency injection: service ← repo/db
	svc := services.NewClienteService(db, clienteRepoShim{})
	h := handlers.New(svc)

	// Authenticated resource group
	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api/v1"
	api.Use(middleware.BearerAuth(cfg.APIToken))
	{
		api.POST("/clientes", h.CreateCliente)
		api.GET("/clientes", h.ListClientes)
		api.GET("/clientes/:id", h.GetCliente)
		api.PUT("/clientes/:id", h.UpdateCliente)
		api.PATCH("/clientes/:id", h.UpdateCliente)
		// No DELETE route: the delete contract is not live.
	}
}

// limitBody returns a Gin middleware that caps the request body size for
// all endpoints using http.MaxBytesReader.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
