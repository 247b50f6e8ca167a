package models

type Visibility string

const (
	VisibilityPersonal Visibility = "personal"
	VisibilityTeam     Visibility = "team"
	VisibilityOrg      Visibility = "org"
	VisibilityPublic   Visibility = "public"
)

// Collection is a named, ordered list of prompt ids. Membership never implies
// ownership: deleting a collection leaves its prompts alone.
type Collection struct {
	Base
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	PromptIDs   []string   `json:"promptIds"`
	Visibility  Visibility `json:"visibility" validate:"required,oneof=personal team org public"`
	TeamID      string     `json:"teamId,omitempty"`
}
