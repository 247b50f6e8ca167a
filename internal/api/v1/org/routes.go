package org

import (
	"teamprompt/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, lib *services.Library) {
	h := NewHandler(lib)
	router.GET("/org", h.GetOrg)
	router.PUT("/org", h.UpdateOrg)
	router.GET("/analytics/summary", h.Summary)
	router.GET("/status", h.Status)
}
