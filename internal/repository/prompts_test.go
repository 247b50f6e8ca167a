package repository

import (
	"context"
	"math"
	"testing"

	"teamprompt/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromptStore(t *testing.T) (*PromptStore, *testClock) {
	_, backend := setupTestBackend(t)
	clock := newTestClock()
	return NewPromptStore(backend, Options{Now: clock.Now}), clock
}

func TestCreatePromptStartsAtVersionOne(t *testing.T) {
	s, _ := newPromptStore(t)

	p, err := s.Save(context.Background(), models.Prompt{
		Title:          "Summarize",
		Content:        "Summarize the text",
		Tags:           []string{"sales", "sales", " "},
		Version:        7,
		VersionHistory: []models.VersionEntry{{Version: 6}},
		UsageCount:     12,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 1, p.Version)
	assert.Empty(t, p.VersionHistory)
	assert.Equal(t, 0, p.UsageCount)
	assert.Equal(t, []string{"sales"}, p.Tags)
	assert.Equal(t, models.PromptStatusActive, p.Status)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestUpdateContentVersions(t *testing.T) {
	s, _ := newPromptStore(t)
	ctx := context.Background()

	p, err := s.Save(ctx, models.Prompt{Title: "Summarize", Content: "v1"})
	require.NoError(t, err)
	before := p

	p.Content = "v2"
	p, err = s.Save(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Version)
	require.Len(t, p.VersionHistory, 1)
	assert.Equal(t, models.VersionEntry{Version: 1, Title: "Summarize", Content: "v1", UpdatedAt: before.UpdatedAt}, p.VersionHistory[0])
	assert.Equal(t, before.CreatedAt, p.CreatedAt)
	assert.True(t, p.UpdatedAt.After(before.UpdatedAt))

	stored, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, stored)
}

func TestMetadataUpdateDoesNotVersion(t *testing.T) {
	s, _ := newPromptStore(t)
	ctx := context.Background()

	p, err := s.Save(ctx, models.Prompt{Title: "Summarize", Content: "v1"})
	require.NoError(t, err)

	p.FolderID = "folder-1"
	p.Tags = []string{"support"}
	p, err = s.Save(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Version)
	assert.Empty(t, p.VersionHistory)
	assert.Equal(t, "folder-1", p.FolderID)

	p, err = s.Update(ctx, p.ID, func(p *models.Prompt) error {
		p.Description = "new description"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Version)
}

func TestPartialSaveKeepsTitleAndContent(t *testing.T) {
	s, _ := newPromptStore(t)
	ctx := context.Background()

	p, err := s.Save(ctx, models.Prompt{Title: "T", Content: "C", Tags: []string{"a"}})
	require.NoError(t, err)

	p, err = s.Save(ctx, models.Prompt{Base: models.Base{ID: p.ID}, FolderID: "f1"})
	require.NoError(t, err)
	assert.Equal(t, "T", p.Title)
	assert.Equal(t, "C", p.Content)
	assert.Equal(t, "f1", p.FolderID)
	assert.Equal(t, []string{"a"}, p.Tags)
	assert.Equal(t, 1, p.Version)
	assert.Empty(t, p.VersionHistory)

	p, err = s.Save(ctx, models.Prompt{Base: models.Base{ID: p.ID}, Content: "C2"})
	require.NoError(t, err)
	assert.Equal(t, "T", p.Title)
	assert.Equal(t, 2, p.Version)
	require.Len(t, p.VersionHistory, 1)
	assert.Equal(t, "C", p.VersionHistory[0].Content)
}

func TestHistoryLengthTracksContentEdits(t *testing.T) {
	s, _ := newPromptStore(t)
	ctx := context.Background()

	p, err := s.Save(ctx, models.Prompt{Title: "t", Content: "0"})
	require.NoError(t, err)
	for i := 1; i <= 22; i++ {
		p.Content = string(rune('a' + i))
		p, err = s.Save(ctx, p)
		require.NoError(t, err)
	}
	assert.Equal(t, 23, p.Version)
	assert.Len(t, p.VersionHistory, models.MaxVersionHistory)
}

func TestSaveIgnoresCallerCounters(t *testing.T) {
	s, _ := newPromptStore(t)
	ctx := context.Background()

	p, err := s.Save(ctx, models.Prompt{Title: "t", Content: "c"})
	require.NoError(t, err)
	_, err = s.RecordUsage(ctx, p.ID)
	require.NoError(t, err)

	p.UsageCount = 100
	p.Rating = models.Rating{Total: 50, Count: 10}
	p, err = s.Save(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 1, p.UsageCount)
	assert.Equal(t, models.Rating{}, p.Rating)
}

func TestRecordUsage(t *testing.T) {
	s, _ := newPromptStore(t)
	ctx := context.Background()

	p, err := s.Save(ctx, models.Prompt{Title: "t", Content: "c"})
	require.NoError(t, err)

	used, err := s.RecordUsage(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, used.UsageCount)
	assert.Equal(t, p.Version, used.Version)
	require.NotNil(t, used.LastUsedAt)

	used, err = s.RecordUsage(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, used.UsageCount)

	_, err = s.RecordUsage(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRateAccumulates(t *testing.T) {
	s, _ := newPromptStore(t)
	ctx := context.Background()

	p, err := s.Save(ctx, models.Prompt{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = s.Rate(ctx, p.ID, 3)
	require.NoError(t, err)
	p, err = s.Rate(ctx, p.ID, 5)
	require.NoError(t, err)

	assert.Equal(t, models.Rating{Total: 8, Count: 2}, p.Rating)
	assert.Equal(t, 4.0, p.Rating.Average())
	assert.Equal(t, 1, p.Version)

	_, err = s.Rate(ctx, p.ID, math.NaN())
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = s.Rate(ctx, "missing", 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClampStars(t *testing.T) {
	assert.Equal(t, 1, ClampStars(-3))
	assert.Equal(t, 1, ClampStars(0.4))
	assert.Equal(t, 3, ClampStars(2.5))
	assert.Equal(t, 4, ClampStars(4.2))
	assert.Equal(t, 5, ClampStars(9))
}

func TestToggleFavorite(t *testing.T) {
	s, _ := newPromptStore(t)
	ctx := context.Background()

	p, err := s.Save(ctx, models.Prompt{Title: "t", Content: "c"})
	require.NoError(t, err)

	p, err = s.ToggleFavorite(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, p.IsFavorite)
	p, err = s.ToggleFavorite(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, p.IsFavorite)
}

func TestRestoreVersion(t *testing.T) {
	s, _ := newPromptStore(t)
	ctx := context.Background()

	p, err := s.Save(ctx, models.Prompt{Title: "t1", Content: "c1"})
	require.NoError(t, err)
	p.Title, p.Content = "t2", "c2"
	p, err = s.Save(ctx, p)
	require.NoError(t, err)

	p, err = s.RestoreVersion(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "t1", p.Title)
	assert.Equal(t, "c1", p.Content)
	assert.Equal(t, 3, p.Version)
	assert.Equal(t, "c2", p.VersionHistory[0].Content)

	_, err = s.RestoreVersion(ctx, p.ID, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPromptStoreRejectsUnknownStatus(t *testing.T) {
	s, _ := newPromptStore(t)
	_, err := s.Save(context.Background(), models.Prompt{Title: "t", Status: "published"})
	assert.ErrorIs(t, err, ErrInvalid)
}
