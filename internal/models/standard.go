package models

// StandardRules is the declarative body of a Standard. Tone, Do, Dont and
// TemplateStructure are guidance for authors and never evaluated.
type StandardRules struct {
	Tone              string   `json:"tone"`
	Do                []string `json:"do"`
	Dont              []string `json:"dont"`
	MinLength         int      `json:"minLength" validate:"gte=0"`
	MaxLength         int      `json:"maxLength" validate:"gte=0"`
	RequiredTags      []string `json:"requiredTags"`
	BannedWords       []string `json:"bannedWords"`
	RequiredFields    []string `json:"requiredFields"`
	TemplateStructure string   `json:"templateStructure"`
}

// Standard is an organization-defined content-quality rule set. Only
// enforced standards take part in validation.
type Standard struct {
	Base
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Scope       string        `json:"scope"`
	Enforced    bool          `json:"enforced"`
	Rules       StandardRules `json:"rules"`
}
