package prompt

import (
	"teamprompt/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, lib *services.Library) {
	h := NewHandler(lib)
	prompts := router.Group("/prompts")
	{
		prompts.GET("", h.ListPrompts)
		prompts.POST("", h.CreatePrompt)
		prompts.POST("/validate", h.ValidatePrompt)
		prompts.GET("/:id", h.GetPrompt)
		prompts.PUT("/:id", h.UpdatePrompt)
		prompts.DELETE("/:id", h.DeletePrompt)
		prompts.POST("/:id/use", h.RecordUsage)
		prompts.POST("/:id/rate", h.RatePrompt)
		prompts.POST("/:id/favorite", h.ToggleFavorite)
		prompts.POST("/:id/restore", h.RestoreVersion)
	}
}
