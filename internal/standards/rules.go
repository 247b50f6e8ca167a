// Package standards validates prompt candidates against the organization's
// enforced content standards.
package standards

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"teamprompt/internal/models"
)

// Rule is one check compiled from a standard. Evaluate returns the messages
// for every problem found, or nil.
type Rule interface {
	Kind() string
	Evaluate(candidate *models.Prompt) []string
}

const (
	KindLengthBound     = "length_bound"
	KindRequiredTags    = "required_tags"
	KindBannedSubstring = "banned_substring"
	KindRequiredField   = "required_field"
)

// LengthBound limits the content length in characters. Zero disables a bound.
// Length is counted in Unicode code points, so an astral-plane character
// such as "\U0001F600" counts once, not as the two UTF-16 units it takes in a browser.
type LengthBound struct {
	Min int
	Max int
}

func (LengthBound) Kind() string { return KindLengthBound }

func (r LengthBound) Evaluate(c *models.Prompt) []string {
	n := utf8.RuneCountInString(c.Content)
	var out []string
	if r.Min > 0 && n < r.Min {
		out = append(out, fmt.Sprintf("Content must be at least %d characters (currently %d)", r.Min, n))
	}
	if r.Max > 0 && n > r.Max {
		out = append(out, fmt.Sprintf("Content must be at most %d characters (currently %d)", r.Max, n))
	}
	return out
}

// RequiredTags demands every listed tag. Missing tags are reported together.
type RequiredTags struct {
	Tags []string
}

func (RequiredTags) Kind() string { return KindRequiredTags }

func (r RequiredTags) Evaluate(c *models.Prompt) []string {
	var missing []string
	for _, tag := range r.Tags {
		if !c.HasTag(tag) {
			missing = append(missing, tag)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []string{"Missing required tags: " + strings.Join(missing, ", ")}
}

// BannedSubstring flags words found anywhere in the content, ignoring case.
// Matches are reported together.
type BannedSubstring struct {
	Words []string
}

func (BannedSubstring) Kind() string { return KindBannedSubstring }

func (r BannedSubstring) Evaluate(c *models.Prompt) []string {
	content := strings.ToLower(c.Content)
	var found []string
	for _, w := range r.Words {
		if w == "" {
			continue
		}
		if strings.Contains(content, strings.ToLower(w)) {
			found = append(found, w)
		}
	}
	if len(found) == 0 {
		return nil
	}
	return []string{"Contains banned words: " + strings.Join(found, ", ")}
}

// RequiredField demands a non-blank value for one named field.
type RequiredField struct {
	Field string
}

func (RequiredField) Kind() string { return KindRequiredField }

func (r RequiredField) Evaluate(c *models.Prompt) []string {
	if v, ok := FieldValue(c, r.Field); ok && strings.TrimSpace(v) != "" {
		return nil
	}
	return []string{fmt.Sprintf("Required field %q is empty", r.Field)}
}

// FieldValue reads a prompt field by its JSON name. Unknown names report
// false and therefore never satisfy a RequiredField rule.
func FieldValue(p *models.Prompt, field string) (string, bool) {
	switch field {
	case "title":
		return p.Title, true
	case "content":
		return p.Content, true
	case "description":
		return p.Description, true
	case "intendedOutcome", "outcome":
		return p.IntendedOutcome, true
	case "tone":
		return string(p.Tone), true
	case "modelRecommendation":
		return p.ModelRecommendation, true
	case "exampleInput":
		return p.ExampleInput, true
	case "exampleOutput":
		return p.ExampleOutput, true
	case "folderId":
		return p.FolderID, true
	case "departmentId":
		return p.DepartmentID, true
	case "owner":
		return p.Owner, true
	case "tags":
		return strings.Join(p.Tags, ","), true
	}
	return "", false
}

// Compile turns a standard's declarative rules into checks, in evaluation
// order: length, tags, banned words, then one check per required field.
func Compile(rules models.StandardRules) []Rule {
	var out []Rule
	if rules.MinLength > 0 || rules.MaxLength > 0 {
		out = append(out, LengthBound{Min: rules.MinLength, Max: rules.MaxLength})
	}
	if len(rules.RequiredTags) > 0 {
		out = append(out, RequiredTags{Tags: rules.RequiredTags})
	}
	if len(rules.BannedWords) > 0 {
		out = append(out, BannedSubstring{Words: rules.BannedWords})
	}
	for _, f := range rules.RequiredFields {
		out = append(out, RequiredField{Field: f})
	}
	return out
}
