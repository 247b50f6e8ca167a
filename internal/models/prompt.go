package models

import "time"

// MaxVersionHistory bounds Prompt.VersionHistory.
const MaxVersionHistory = 20

type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneFriendly     Tone = "friendly"
	ToneFormal       Tone = "formal"
	ToneTechnical    Tone = "technical"
	ToneCreative     Tone = "creative"
)

type PromptStatus string

const (
	PromptStatusDraft    PromptStatus = "draft"
	PromptStatusActive   PromptStatus = "active"
	PromptStatusArchived PromptStatus = "archived"
)

// VersionEntry is a snapshot of a prompt before a content-changing edit.
type VersionEntry struct {
	Version   int       `json:"version"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Rating accumulates star ratings. The mean is derived, never stored.
type Rating struct {
	Total int `json:"total"`
	Count int `json:"count"`
}

// Average returns the mean rating, or 0 when nobody rated.
func (r Rating) Average() float64 {
	if r.Count == 0 {
		return 0
	}
	return float64(r.Total) / float64(r.Count)
}

// Prompt is a reusable AI prompt owned by a team member.
type Prompt struct {
	Base
	Title               string         `json:"title"`
	Content             string         `json:"content"`
	Description         string         `json:"description"`
	IntendedOutcome     string         `json:"intendedOutcome"`
	Tone                Tone           `json:"tone"`
	ModelRecommendation string         `json:"modelRecommendation"`
	ExampleInput        string         `json:"exampleInput"`
	ExampleOutput       string         `json:"exampleOutput"`
	Tags                []string       `json:"tags"`
	FolderID            string         `json:"folderId,omitempty"`
	DepartmentID        string         `json:"departmentId,omitempty"`
	Owner               string         `json:"owner"`
	Status              PromptStatus   `json:"status" validate:"omitempty,oneof=draft active archived"`
	Version             int            `json:"version"`
	VersionHistory      []VersionEntry `json:"versionHistory"`
	Rating              Rating         `json:"rating"`
	UsageCount          int            `json:"usageCount"`
	LastUsedAt          *time.Time     `json:"lastUsedAt,omitempty"`
	IsFavorite          bool           `json:"isFavorite"`
}

// HasTag reports whether the prompt carries tag exactly.
func (p *Prompt) HasTag(tag string) bool {
	return ContainsString(p.Tags, tag)
}
