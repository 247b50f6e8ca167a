package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"teamprompt/internal/api/v1/common"
	"teamprompt/internal/models"
	"teamprompt/internal/repository"
	"teamprompt/internal/utils"

	"github.com/gin-gonic/gin"
)

// entityStore is the part of a repository collection the CRUD routes use.
type entityStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Save(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, mutate func(*T) error) (T, error)
	Delete(ctx context.Context, id string) error
}

// crud serves list/get/create/update/delete for one entity collection.
// Field validation happens in the repository so the rules live in one place.
type crud[T any, PT interface {
	*T
	models.Record
}] struct {
	store entityStore[T]
	noun  string
}

func (h *crud[T, PT]) register(g *gin.RouterGroup) {
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *crud[T, PT]) list(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", items))
}

func (h *crud[T, PT]) get(c *gin.Context) {
	item, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", item))
}

func (h *crud[T, PT]) create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid request body: "+err.Error()))
		return
	}
	// Create always inserts.
	PT(&item).Header().ID = ""

	saved, err := h.store.Save(c.Request.Context(), item)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(h.noun+" created successfully", saved))
}

// update decodes the body over the stored record, so absent fields keep
// their current values and explicit empty values clear them.
func (h *crud[T, PT]) update(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Failed to read request body"))
		return
	}

	id := c.Param("id")
	saved, err := h.store.Update(c.Request.Context(), id, func(item *T) error {
		if err := json.Unmarshal(body, item); err != nil {
			return fmt.Errorf("%w: %v", repository.ErrInvalid, err)
		}
		PT(item).Header().ID = id
		return nil
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(h.noun+" updated successfully", saved))
}

func (h *crud[T, PT]) delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(h.noun+" deleted successfully", nil))
}
