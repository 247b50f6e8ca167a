package org

import (
	"errors"
	"net/http"
	"strconv"

	"teamprompt/internal/analytics"
	"teamprompt/internal/api/v1/common"
	"teamprompt/internal/models"
	"teamprompt/internal/repository"
	"teamprompt/internal/services"
	"teamprompt/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	lib *services.Library
}

func NewHandler(lib *services.Library) *Handler {
	return &Handler{lib: lib}
}

func (h *Handler) GetOrg(c *gin.Context) {
	o, err := h.lib.Repo.Org.Get(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", o))
}

// UpdateOrg decodes the body over the current org, creating it on first use.
func (h *Handler) UpdateOrg(c *gin.Context) {
	ctx := c.Request.Context()
	o, err := h.lib.Repo.Org.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		o = models.Org{}
	} else if err != nil {
		common.RespondError(c, err)
		return
	}

	if err := c.ShouldBindJSON(&o); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid request body: "+err.Error()))
		return
	}

	saved, err := h.lib.Repo.Org.Save(ctx, o)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Organization updated successfully", saved))
}

// Summary recomputes analytics; topN defaults to analytics.DefaultTopN.
func (h *Handler) Summary(c *gin.Context) {
	topN := analytics.DefaultTopN
	if v := c.Query("topN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "topN must be a non-negative integer"))
			return
		}
		topN = n
	}

	s, err := h.lib.Summary(c.Request.Context(), topN)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", s))
}

func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", StatusResponse{Backend: h.lib.Repo.Backend()}))
}
