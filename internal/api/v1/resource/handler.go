package resource

import (
	"context"
	"net/http"

	"teamprompt/internal/api/v1/common"
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

// references builds a handler reporting how many records point at :id.
// Deletes never cascade; clients call this to warn first.
func references(count func(ctx context.Context, id string) (int, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		n, err := count(c.Request.Context(), id)
		if err != nil {
			common.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", ReferencesResponse{ID: id, References: n}))
	}
}

func (h *Handler) CurrentMember(c *gin.Context) {
	m, err := h.lib.Repo.Members.Current(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", m))
}

func (h *Handler) AddCollectionPrompt(c *gin.Context) {
	var req CollectionPromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	col, err := h.lib.Repo.Collections.AddPrompt(c.Request.Context(), c.Param("id"), req.PromptID)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt added to collection", col))
}

func (h *Handler) RemoveCollectionPrompt(c *gin.Context) {
	col, err := h.lib.Repo.Collections.RemovePrompt(c.Request.Context(), c.Param("id"), c.Param("promptId"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt removed from collection", col))
}
