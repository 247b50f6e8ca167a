package models

import "time"

type Plan string

const (
	PlanFree     Plan = "free"
	PlanPro      Plan = "pro"
	PlanTeam     Plan = "team"
	PlanBusiness Plan = "business"
)

type OrgSettings struct {
	// BlockOnViolations turns standards reports into save-blocking errors.
	BlockOnViolations bool            `json:"blockOnViolations"`
	AllowPublicShare  bool            `json:"allowPublicShare"`
	Features          map[string]bool `json:"features,omitempty"`
}

// Org is the singleton organization record.
type Org struct {
	Name      string      `json:"name"`
	Plan      Plan        `json:"plan" validate:"omitempty,oneof=free pro team business"`
	Settings  OrgSettings `json:"settings"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
