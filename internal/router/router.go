package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hanseilab/hansei-backend/internal/config"
	"github.com/hanseilab/hansei-backend/internal/handler"
	"github.com/hanseilab/hansei-backend/internal/middleware"
	"github.com/hanseilab/hansei-backend/internal/response"
)

// SetupRouter configures the Gin engine: one POST action endpoint plus
// health. All routing beyond that happens inside the dispatcher, keeping
// the HTTP surface identical to the original single-endpoint deployment.
func SetupRouter(dispatcher *handler.Dispatcher, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "SRL Reflection API is running.")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateInterval)
	router.POST("/exec", rateLimiter.Middleware(), dispatcher.Handle)

	return router
}
