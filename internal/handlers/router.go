package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-application-tracker/internal/dtos"
	"github.com/justsurfingit/job-application-tracker/internal/logging"
	"github.com/justsurfingit/job-application-tracker/internal/middleware"
	"github.com/justsurfingit/job-application-tracker/internal/ratelimit"
	"github.com/justsurfingit/job-application-tracker/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Auth         *services.AuthService
	Applications *services.ApplicationService
	// LLM may be nil; extraction then answers 503.
	LLM         *services.LLMService
	Tokens      middleware.TokenVerifier
	AuthLimiter ratelimit.Limiter
	// AllowedOrigins empty means any origin.
	AllowedOrigins []string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	// Rate limiting keys on the peer address, so forwarded headers are ignored.
	_ = r.SetTrustedProxies(nil)

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("Panic recovered", "error", recovered, "method", c.Request.Method, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dtos.MessageResponse{Message: "Internal server error"})
	}))
	r.Use(logging.RequestLogger())
	r.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	if len(deps.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.AllowedOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authHandler := NewAuthHandler(deps.Auth)
	appHandler := NewApplicationHandler(deps.Applications, deps.LLM)
	requireAuth := middleware.RequireAuth(deps.Tokens)

	r.GET("/health", HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRoutes := r.Group("/auth")
	{
		limited := middleware.RateLimit(deps.AuthLimiter)
		authRoutes.POST("/register", limited, authHandler.Register)
		authRoutes.POST("/login", limited, authHandler.Login)

		for _, path := range []string{"/me", "/user"} {
			authRoutes.GET(path, requireAuth, authHandler.Me)
			authRoutes.POST(path, requireAuth, authHandler.Me)
		}
	}

	apps := r.Group("/applications", requireAuth)
	{
		apps.GET("", appHandler.List)
		apps.POST("", appHandler.Create)
		apps.POST("/extract", appHandler.Extract)
		apps.PUT("/:id", appHandler.Update)
		apps.DELETE("/:id", appHandler.Delete)
		apps.DELETE("", appHandler.DeleteWithoutID)
	}

	return r
}
