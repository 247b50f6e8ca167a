package prompt

import (
	"net/http"
	"strings"

	"teamprompt/internal/api/v1/common"
	"teamprompt/internal/models"
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

// ListPrompts returns prompts, optionally filtered by folderId, departmentId,
// tag, favorite=true or a case-insensitive q over title and content.
func (h *Handler) ListPrompts(c *gin.Context) {
	prompts, err := h.lib.Repo.Prompts.List(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	folderID := c.Query("folderId")
	departmentID := c.Query("departmentId")
	tag := c.Query("tag")
	favorites := c.Query("favorite") == "true"
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))

	items := make([]models.Prompt, 0, len(prompts))
	for _, p := range prompts {
		if folderID != "" && p.FolderID != folderID {
			continue
		}
		if departmentID != "" && p.DepartmentID != departmentID {
			continue
		}
		if tag != "" && !p.HasTag(tag) {
			continue
		}
		if favorites && !p.IsFavorite {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Content), q) {
			continue
		}
		items = append(items, p)
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", PromptListResponse{
		Total: len(items),
		Items: items,
	}))
}

func (h *Handler) GetPrompt(c *gin.Context) {
	p, err := h.lib.Repo.Prompts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", p))
}

func (h *Handler) CreatePrompt(c *gin.Context) {
	var req CreatePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	p, report, err := h.lib.SavePrompt(c.Request.Context(), req.toModel())
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt created successfully", SavePromptResponse{Prompt: p, Report: report}))
}

func (h *Handler) UpdatePrompt(c *gin.Context) {
	var req UpdatePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	p, report, err := h.lib.UpdatePrompt(c.Request.Context(), c.Param("id"), req.apply)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt updated successfully", SavePromptResponse{Prompt: p, Report: report}))
}

func (h *Handler) DeletePrompt(c *gin.Context) {
	if err := h.lib.Repo.Prompts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt deleted successfully", nil))
}

func (h *Handler) RecordUsage(c *gin.Context) {
	p, err := h.lib.Repo.Prompts.RecordUsage(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Usage recorded", p))
}

func (h *Handler) RatePrompt(c *gin.Context) {
	var req RatePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	p, err := h.lib.Repo.Prompts.Rate(c.Request.Context(), c.Param("id"), *req.Stars)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Rating recorded", p))
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	p, err := h.lib.Repo.Prompts.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Favorite toggled", p))
}

func (h *Handler) RestoreVersion(c *gin.Context) {
	var req RestoreVersionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	p, err := h.lib.Repo.Prompts.RestoreVersion(c.Request.Context(), c.Param("id"), req.Version)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Version restored", p))
}

// ValidatePrompt checks a candidate against enforced standards without saving.
func (h *Handler) ValidatePrompt(c *gin.Context) {
	var candidate models.Prompt
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}
	report, err := h.lib.ValidatePrompt(c.Request.Context(), candidate)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", report))
}
