package packs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"teamprompt/internal/api/v1/packs"
	"teamprompt/internal/database"
	"teamprompt/internal/models"
	"teamprompt/internal/pack"
	"teamprompt/internal/repository"
	"teamprompt/internal/services"
	"teamprompt/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func setupRouter(t *testing.T) (*gin.Engine, *services.Library) {
	gin.SetMode(gin.TestMode)

	db, err := database.ConnectSQLite(":memory:")
	require.NoError(t, err)
	medium, err := storage.NewSQLMedium(db)
	require.NoError(t, err)
	backend, err := storage.NewLocalCacheBackend(context.Background(), medium, "tp:", nil)
	require.NoError(t, err)
	lib := services.NewLibrary(repository.New(backend, repository.Options{}), nil)

	r := gin.New()
	packs.RegisterRoutes(r.Group("/api/v1"), lib)
	return r, lib
}

func post(r *gin.Engine, path string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExportJSON(t *testing.T) {
	r, lib := setupRouter(t)
	p, _, err := lib.SavePrompt(context.Background(), models.Prompt{Title: "Greeting", Content: "Say hi", Tags: []string{"a"}})
	require.NoError(t, err)

	body, _ := json.Marshal(packs.ExportRequest{IDs: []string{p.ID, "missing"}, Name: "Team pack!"})
	w := post(r, "/api/v1/packs/export", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Team-pack.json"`, w.Header().Get("Content-Disposition"))

	var env pack.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, pack.FormatTag, env.Format)
	assert.Equal(t, 1, env.Count)
	assert.Equal(t, "Greeting", env.Prompts[0].Title)
}

func TestExportYAML(t *testing.T) {
	r, lib := setupRouter(t)
	p, _, err := lib.SavePrompt(context.Background(), models.Prompt{Title: "Greeting"})
	require.NoError(t, err)

	body, _ := json.Marshal(packs.ExportRequest{IDs: []string{p.ID}, Format: "yaml"})
	w := post(r, "/api/v1/packs/export", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "prompt-pack.yaml")

	var env pack.Envelope
	require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Greeting", env.Prompts[0].Title)
}

func TestExportValidatesRequest(t *testing.T) {
	r, _ := setupRouter(t)

	w := post(r, "/api/v1/packs/export", []byte(`{"ids":[]}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/api/v1/packs/export", []byte(`{"ids":["x"],"format":"xml"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportCreatesTaggedPrompts(t *testing.T) {
	r, lib := setupRouter(t)

	data := `{"format":"teamprompt-pack","version":"1.0","name":"shared","prompts":[
		{"title":"One","content":"c","tags":["x"]},
		{"title":42,"content":"bad title"}
	]}`
	w := post(r, "/api/v1/packs/import", []byte(data))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data pack.ImportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Imported)

	all, err := lib.Repo.Prompts.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"x", pack.ImportedTag}, all[0].Tags)
	assert.Equal(t, "", all[1].Title)
	assert.Equal(t, 1, all[1].Version)
}

func TestImportRejectsForeignFormat(t *testing.T) {
	r, lib := setupRouter(t)

	w := post(r, "/api/v1/packs/import", []byte(`{"format":"something-else","prompts":[{"title":"x"}]}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "unsupported pack format"))

	all, err := lib.Repo.Prompts.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
