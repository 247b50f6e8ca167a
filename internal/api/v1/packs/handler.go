package packs

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"teamprompt/internal/api/v1/common"
	"teamprompt/internal/pack"
	"teamprompt/internal/services"
	"teamprompt/internal/utils"

	"github.com/gin-gonic/gin"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type Handler struct {
	lib *services.Library
}

func NewHandler(lib *services.Library) *Handler {
	return &Handler{lib: lib}
}

// Export streams the pack as a downloadable file.
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	env, err := h.lib.ExportPack(c.Request.Context(), req.IDs, req.Name)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	enc := pack.EncodingJSON
	contentType := "application/json"
	if req.Format == string(pack.EncodingYAML) {
		enc = pack.EncodingYAML
		contentType = "application/yaml"
	}
	data, err := pack.Encode(env, enc)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, filename(env.Name), enc))
	c.Data(http.StatusOK, contentType, data)
}

// Import accepts a pack file body in JSON or YAML.
func (h *Handler) Import(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Failed to read request body"))
		return
	}

	result, err := h.lib.ImportPack(c.Request.Context(), data)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(fmt.Sprintf("Imported %d prompts", result.Imported), result))
}

func filename(name string) string {
	s := strings.Trim(unsafeFilename.ReplaceAllString(name, "-"), "-.")
	if s == "" {
		return "prompt-pack"
	}
	return s
}
