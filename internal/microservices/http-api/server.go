package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/dondi-c/church-finder/internal/config"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/handler"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/middleware"
)

// Pinger is satisfied by *sql.DB and the Redis cache provider.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// Handlers groups the REST handlers mounted under /api.
type Handlers struct {
	Church      *handler.ChurchHandler
	Review      *handler.ReviewHandler
	ServiceTime *handler.ServiceTimeHandler
	Maps        *handler.MapsHandler
}

// NewRouter builds the gin engine with middleware and every route.
// Checks lists the dependencies /healthz pings, by name.
func NewRouter(cfg *config.Config, log zerolog.Logger, h Handlers, checks map[string]Pinger) (*gin.Engine, error) {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return nil, err
		}
	}

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		zerolog.Ctx(c.Request.Context()).Error().
			Str("panic", fmt.Sprint(recovered)).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	r.Use(middleware.RequestID(log))
	r.Use(logger.SetLogger(
		logger.WithLogger(func(c *gin.Context, _ zerolog.Logger) zerolog.Logger {
			return log.With().Str(middleware.RequestIDKey, c.GetString(middleware.RequestIDKey)).Logger()
		}),
		logger.WithSkipPath([]string{"/healthz"}),
	))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", healthHandler(checks))

	api := r.Group("/api")
	h.Maps.RegisterRoutes(api)
	h.Church.RegisterRoutes(api)
	h.Review.RegisterRoutes(api)
	h.ServiceTime.RegisterRoutes(api)

	return r, nil
}

func healthHandler(checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := gin.H{}
		for name, p := range checks {
			if err := p.PingContext(ctx); err != nil {
				zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("dependency", name).Msg("health check failed")
				results[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{"status": state, "checks": results})
	}
}
