package packs

import (
	"teamprompt/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, lib *services.Library) {
	h := NewHandler(lib)
	packs := router.Group("/packs")
	{
		packs.POST("/export", h.Export)
		packs.POST("/import", h.Import)
	}
}
