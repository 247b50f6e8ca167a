package standards

import (
	"context"

	"teamprompt/internal/models"
	"teamprompt/pkg/logger"

	"go.uber.org/zap"
)

// Violation is one problem reported by an enforced standard.
type Violation struct {
	StandardID   string `json:"standardId"`
	StandardName string `json:"standardName"`
	Rule         string `json:"rule"`
	Message      string `json:"message"`
}

// String prefixes the message with the standard's name.
func (v Violation) String() string {
	return v.StandardName + ": " + v.Message
}

// Report is the outcome of a validation. It is never an error; callers decide
// whether a non-valid report blocks anything.
type Report struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// Messages returns the prefixed violation lines in order.
func (r Report) Messages() []string {
	out := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.String())
	}
	return out
}

// Source lists the standards to evaluate.
type Source interface {
	List(ctx context.Context) ([]models.Standard, error)
}

// Engine evaluates candidates against every enforced standard.
type Engine struct {
	source Source
	log    *zap.Logger
}

func NewEngine(source Source, log *zap.Logger) *Engine {
	return &Engine{source: source, log: logger.OrNop(log)}
}

// Validate loads the standards and evaluates candidate. The only error is a
// failure to load standards.
func (e *Engine) Validate(ctx context.Context, candidate models.Prompt) (Report, error) {
	all, err := e.source.List(ctx)
	if err != nil {
		return Report{}, err
	}
	report := Evaluate(all, &candidate)
	if !report.Valid {
		e.log.Debug("standards violated",
			zap.String("prompt_id", candidate.ID),
			zap.Int("violations", len(report.Violations)),
		)
	}
	return report, nil
}

// Evaluate checks candidate against the enforced standards in list order.
// Overlapping rules across standards are all reported.
func Evaluate(all []models.Standard, candidate *models.Prompt) Report {
	violations := []Violation{}
	for _, s := range all {
		if !s.Enforced {
			continue
		}
		for _, rule := range Compile(s.Rules) {
			for _, msg := range rule.Evaluate(candidate) {
				violations = append(violations, Violation{
					StandardID:   s.ID,
					StandardName: s.Name,
					Rule:         rule.Kind(),
					Message:      msg,
				})
			}
		}
	}
	return Report{Valid: len(violations) == 0, Violations: violations}
}
