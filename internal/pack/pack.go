// Package pack exports prompts into portable envelopes and imports them back
// as brand-new prompts.
package pack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"teamprompt/internal/models"
	"teamprompt/internal/repository"
	"teamprompt/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	FormatTag     = "teamprompt-pack"
	FormatVersion = "1.0"
	// ImportedTag is added to every imported prompt.
	ImportedTag = "imported"
)

// ErrUnsupportedFormat means the data is not a pack; nothing was imported.
var ErrUnsupportedFormat = errors.New("unsupported pack format")

// Encoding selects the serialized form of an envelope.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// Entry is the portable subset of a prompt. Ids, history, ratings and usage
// never leave the install.
type Entry struct {
	Title               string   `json:"title" yaml:"title"`
	Content             string   `json:"content" yaml:"content"`
	Description         string   `json:"description" yaml:"description"`
	IntendedOutcome     string   `json:"intendedOutcome" yaml:"intendedOutcome"`
	Tone                string   `json:"tone" yaml:"tone"`
	ModelRecommendation string   `json:"modelRecommendation" yaml:"modelRecommendation"`
	ExampleInput        string   `json:"exampleInput" yaml:"exampleInput"`
	ExampleOutput       string   `json:"exampleOutput" yaml:"exampleOutput"`
	Tags                []string `json:"tags" yaml:"tags"`
}

type Envelope struct {
	Format     string    `json:"format" yaml:"format"`
	Version    string    `json:"version" yaml:"version"`
	Name       string    `json:"name" yaml:"name"`
	ExportedAt time.Time `json:"exportedAt" yaml:"exportedAt"`
	Count      int       `json:"count" yaml:"count"`
	Prompts    []Entry   `json:"prompts" yaml:"prompts"`
}

// ImportResult reports how many prompts an import created.
type ImportResult struct {
	Name     string          `json:"name"`
	Imported int             `json:"imported"`
	Prompts  []models.Prompt `json:"prompts"`
}

// Store is the slice of the prompt repository the codec needs.
type Store interface {
	Get(ctx context.Context, id string) (models.Prompt, error)
	InsertMany(ctx context.Context, batch []models.Prompt) ([]models.Prompt, error)
}

type Codec struct {
	store Store
	now   func() time.Time
	log   *zap.Logger
}

func NewCodec(store Store, log *zap.Logger) *Codec {
	return &Codec{store: store, now: func() time.Time { return time.Now().UTC() }, log: logger.OrNop(log)}
}

// Export projects the prompts with the given ids into an envelope. Ids that
// do not resolve are skipped.
func (c *Codec) Export(ctx context.Context, ids []string, name string) (Envelope, error) {
	env := Envelope{
		Format:     FormatTag,
		Version:    FormatVersion,
		Name:       name,
		ExportedAt: c.now(),
		Prompts:    []Entry{},
	}
	for _, id := range ids {
		p, err := c.store.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.log.Debug("export skipped missing prompt", zap.String("prompt_id", id))
				continue
			}
			return Envelope{}, err
		}
		env.Prompts = append(env.Prompts, ToEntry(p))
	}
	env.Count = len(env.Prompts)
	return env, nil
}

// ToEntry copies the portable fields of p.
func ToEntry(p models.Prompt) Entry {
	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)
	return Entry{
		Title:               p.Title,
		Content:             p.Content,
		Description:         p.Description,
		IntendedOutcome:     p.IntendedOutcome,
		Tone:                string(p.Tone),
		ModelRecommendation: p.ModelRecommendation,
		ExampleInput:        p.ExampleInput,
		ExampleOutput:       p.ExampleOutput,
		Tags:                tags,
	}
}

// Encode serializes env as JSON (default) or YAML.
func Encode(env Envelope, enc Encoding) ([]byte, error) {
	if enc == EncodingYAML {
		return yaml.Marshal(env)
	}
	return json.MarshalIndent(env, "", "  ")
}

// rawEnvelope keeps every field loosely typed. Only a body that is not an
// object at all is rejected; anything past the format tag degrades to
// defaults instead of failing the import.
type rawEnvelope struct {
	Format  interface{} `json:"format" yaml:"format"`
	Version interface{} `json:"version" yaml:"version"`
	Name    interface{} `json:"name" yaml:"name"`
	Prompts interface{} `json:"prompts" yaml:"prompts"`
}

func decodeRaw(data []byte) (rawEnvelope, error) {
	var raw rawEnvelope
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return rawEnvelope{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return rawEnvelope{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return raw, nil
}

// entries returns one field map per element of prompts. A non-list prompts
// value yields no entries and a non-object element yields an empty map.
func (r rawEnvelope) entries() []map[string]interface{} {
	items, ok := r.Prompts.([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]interface{})
		if !ok {
			fields = map[string]interface{}{}
		}
		out = append(out, fields)
	}
	return out
}

// Import creates one new prompt per entry. The format tag must match exactly;
// otherwise nothing is created.
func (c *Codec) Import(ctx context.Context, data []byte, owner string) (ImportResult, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return ImportResult{}, err
	}
	format, _ := raw.Format.(string)
	if format != FormatTag {
		return ImportResult{}, fmt.Errorf("%w: format %v", ErrUnsupportedFormat, raw.Format)
	}
	name, _ := raw.Name.(string)

	entries := raw.entries()
	batch := make([]models.Prompt, 0, len(entries))
	for _, fields := range entries {
		p := fromFields(fields)
		p.Owner = owner
		batch = append(batch, p)
	}

	created, err := c.store.InsertMany(ctx, batch)
	if err != nil {
		return ImportResult{}, err
	}
	c.log.Info("pack imported", zap.String("pack", name), zap.Int("prompts", len(created)))
	return ImportResult{Name: name, Imported: len(created), Prompts: created}, nil
}

func fromFields(fields map[string]interface{}) models.Prompt {
	tags := append(stringList(fields["tags"]), ImportedTag)
	return models.Prompt{
		Title:               stringField(fields, "title"),
		Content:             stringField(fields, "content"),
		Description:         stringField(fields, "description"),
		IntendedOutcome:     stringField(fields, "intendedOutcome"),
		Tone:                models.Tone(stringField(fields, "tone")),
		ModelRecommendation: stringField(fields, "modelRecommendation"),
		ExampleInput:        stringField(fields, "exampleInput"),
		ExampleOutput:       stringField(fields, "exampleOutput"),
		Tags:                models.NormalizeSet(tags),
		Status:              models.PromptStatusActive,
	}
}

func stringField(fields map[string]interface{}, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}

func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
