package prompt

import (
	"teamprompt/internal/models"
	"teamprompt/internal/standards"
)

// CreatePromptRequest carries the editable fields of a new prompt.
type CreatePromptRequest struct {
	Title               string              `json:"title" binding:"required"`
	Content             string              `json:"content"`
	Description         string              `json:"description"`
	IntendedOutcome     string              `json:"intendedOutcome"`
	Tone                models.Tone         `json:"tone"`
	ModelRecommendation string              `json:"modelRecommendation"`
	ExampleInput        string              `json:"exampleInput"`
	ExampleOutput       string              `json:"exampleOutput"`
	Tags                []string            `json:"tags"`
	FolderID            string              `json:"folderId"`
	DepartmentID        string              `json:"departmentId"`
	Owner               string              `json:"owner"`
	Status              models.PromptStatus `json:"status" binding:"omitempty,oneof=draft active archived"`
}

func (r CreatePromptRequest) toModel() models.Prompt {
	return models.Prompt{
		Title:               r.Title,
		Content:             r.Content,
		Description:         r.Description,
		IntendedOutcome:     r.IntendedOutcome,
		Tone:                r.Tone,
		ModelRecommendation: r.ModelRecommendation,
		ExampleInput:        r.ExampleInput,
		ExampleOutput:       r.ExampleOutput,
		Tags:                r.Tags,
		FolderID:            r.FolderID,
		DepartmentID:        r.DepartmentID,
		Owner:               r.Owner,
		Status:              r.Status,
	}
}

// UpdatePromptRequest merges only the fields present in the body.
type UpdatePromptRequest struct {
	Title               *string              `json:"title"`
	Content             *string              `json:"content"`
	Description         *string              `json:"description"`
	IntendedOutcome     *string              `json:"intendedOutcome"`
	Tone                *models.Tone         `json:"tone"`
	ModelRecommendation *string              `json:"modelRecommendation"`
	ExampleInput        *string              `json:"exampleInput"`
	ExampleOutput       *string              `json:"exampleOutput"`
	Tags                []string             `json:"tags"`
	FolderID            *string              `json:"folderId"`
	DepartmentID        *string              `json:"departmentId"`
	Owner               *string              `json:"owner"`
	Status              *models.PromptStatus `json:"status" binding:"omitempty,oneof=draft active archived"`
	IsFavorite          *bool                `json:"isFavorite"`
}

// apply sets the present fields; an explicit "" clears a field.
func (r UpdatePromptRequest) apply(p *models.Prompt) {
	setString(&p.Title, r.Title)
	setString(&p.Content, r.Content)
	setString(&p.Description, r.Description)
	setString(&p.IntendedOutcome, r.IntendedOutcome)
	setString(&p.ModelRecommendation, r.ModelRecommendation)
	setString(&p.ExampleInput, r.ExampleInput)
	setString(&p.ExampleOutput, r.ExampleOutput)
	setString(&p.FolderID, r.FolderID)
	setString(&p.DepartmentID, r.DepartmentID)
	setString(&p.Owner, r.Owner)
	if r.Tone != nil {
		p.Tone = *r.Tone
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
	if r.Tags != nil {
		p.Tags = r.Tags
	}
	if r.IsFavorite != nil {
		p.IsFavorite = *r.IsFavorite
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Stars is rounded and clamped to 1..5 by the repository.
type RatePromptRequest struct {
	Stars *float64 `json:"stars" binding:"required"`
}

type RestoreVersionRequest struct {
	Version int `json:"version" binding:"required,min=1"`
}

// SavePromptResponse pairs the saved prompt with its standards report.
type SavePromptResponse struct {
	Prompt models.Prompt    `json:"prompt"`
	Report standards.Report `json:"report"`
}

type PromptListResponse struct {
	Total int             `json:"total"`
	Items []models.Prompt `json:"items"`
}
