package api

import (
	"teamprompt/config"
	"teamprompt/internal/api/v1/org"
	"teamprompt/internal/api/v1/packs"
	"teamprompt/internal/api/v1/prompt"
	"teamprompt/internal/api/v1/resource"
	"teamprompt/internal/middleware"
	"teamprompt/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter mounts every v1 route over lib. Storage is already selected by
// the caller.
func NewRouter(cfg *config.Config, lib *services.Library, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum age for preflight requests
	}))

	v1 := router.Group("/api/v1")
	{
		prompt.RegisterRoutes(v1, lib)
		resource.RegisterRoutes(v1, lib)
		org.RegisterRoutes(v1, lib)
		packs.RegisterRoutes(v1, lib)
	}

	return router
}
