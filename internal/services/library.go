package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teamprompt/internal/analytics"
	"teamprompt/internal/models"
	"teamprompt/internal/pack"
	"teamprompt/internal/repository"
	"teamprompt/internal/standards"
	"teamprompt/pkg/logger"

	"go.uber.org/zap"
)

// ErrBlocked is matched by a *BlockedError.
var ErrBlocked = errors.New("prompt violates enforced standards")

// BlockedError carries the report that stopped a save.
type BlockedError struct {
	Report standards.Report
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrBlocked, strings.Join(e.Report.Messages(), "; "))
}

func (e *BlockedError) Is(target error) bool { return target == ErrBlocked }

// Library is the surface UI collaborators call. It owns no state besides the
// repository it was built on.
type Library struct {
	Repo   *repository.Repository
	engine *standards.Engine
	codec  *pack.Codec
	log    *zap.Logger
}

func NewLibrary(repo *repository.Repository, log *zap.Logger) *Library {
	log = logger.OrNop(log)
	return &Library{
		Repo:   repo,
		engine: standards.NewEngine(repo.Standards, log.Named("standards")),
		codec:  pack.NewCodec(repo.Prompts, log.Named("pack")),
		log:    log,
	}
}

// ValidatePrompt reports how candidate fares against the enforced standards.
func (l *Library) ValidatePrompt(ctx context.Context, candidate models.Prompt) (standards.Report, error) {
	return l.engine.Validate(ctx, candidate)
}

// blocking reports whether the org turned standards into a save gate.
func (l *Library) blocking(ctx context.Context) (bool, error) {
	org, err := l.Repo.Org.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return org.Settings.BlockOnViolations, nil
}

// SavePrompt validates and then saves p. The report is always returned; when
// the org blocks on violations an invalid prompt is not saved and the error
// is a *BlockedError.
func (l *Library) SavePrompt(ctx context.Context, p models.Prompt) (models.Prompt, standards.Report, error) {
	// A partial save is judged by the record it merges into.
	candidate, err := l.Repo.Prompts.Preview(ctx, p)
	if err != nil {
		return models.Prompt{}, standards.Report{}, err
	}
	report, err := l.engine.Validate(ctx, candidate)
	if err != nil {
		return models.Prompt{}, standards.Report{}, err
	}

	if !report.Valid {
		block, err := l.blocking(ctx)
		if err != nil {
			return models.Prompt{}, report, err
		}
		if block {
			l.log.Info("prompt save blocked", zap.String("prompt_id", p.ID), zap.Int("violations", len(report.Violations)))
			return models.Prompt{}, report, &BlockedError{Report: report}
		}
	}

	saved, err := l.Repo.Prompts.Save(ctx, p)
	if err != nil {
		return models.Prompt{}, report, err
	}
	return saved, report, nil
}

// UpdatePrompt applies mutate to the stored prompt, gated by the same
// standards check as SavePrompt. Unlike SavePrompt it can clear fields.
func (l *Library) UpdatePrompt(ctx context.Context, id string, mutate func(*models.Prompt)) (models.Prompt, standards.Report, error) {
	current, err := l.Repo.Prompts.Get(ctx, id)
	if err != nil {
		return models.Prompt{}, standards.Report{}, err
	}
	mutate(&current)

	report, err := l.engine.Validate(ctx, current)
	if err != nil {
		return models.Prompt{}, standards.Report{}, err
	}
	if !report.Valid {
		block, err := l.blocking(ctx)
		if err != nil {
			return models.Prompt{}, report, err
		}
		if block {
			l.log.Info("prompt update blocked", zap.String("prompt_id", id), zap.Int("violations", len(report.Violations)))
			return models.Prompt{}, report, &BlockedError{Report: report}
		}
	}

	saved, err := l.Repo.Prompts.Update(ctx, id, func(p *models.Prompt) error {
		mutate(p)
		return nil
	})
	if err != nil {
		return models.Prompt{}, report, err
	}
	return saved, report, nil
}

// FolderReferences counts prompts filed under a folder. Callers use it to
// warn before a delete orphans them.
func (l *Library) FolderReferences(ctx context.Context, folderID string) (int, error) {
	return l.Repo.Prompts.Count(ctx, func(p models.Prompt) bool { return p.FolderID == folderID })
}

// DepartmentReferences counts prompts assigned to a department.
func (l *Library) DepartmentReferences(ctx context.Context, departmentID string) (int, error) {
	return l.Repo.Prompts.Count(ctx, func(p models.Prompt) bool { return p.DepartmentID == departmentID })
}

// TeamReferences counts members on a team plus collections shared with it.
func (l *Library) TeamReferences(ctx context.Context, teamID string) (int, error) {
	members, err := l.Repo.Members.Count(ctx, func(m models.Member) bool { return models.ContainsString(m.TeamIDs, teamID) })
	if err != nil {
		return 0, err
	}
	collections, err := l.Repo.Collections.Count(ctx, func(c models.Collection) bool { return c.TeamID == teamID })
	if err != nil {
		return 0, err
	}
	return members + collections, nil
}

// Summary recomputes prompt analytics.
func (l *Library) Summary(ctx context.Context, topN int) (analytics.Summary, error) {
	prompts, err := l.Repo.Prompts.List(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(prompts, topN), nil
}

func (l *Library) ExportPack(ctx context.Context, ids []string, name string) (pack.Envelope, error) {
	return l.codec.Export(ctx, ids, name)
}

// ImportPack creates the pack's prompts owned by the current member, if any.
func (l *Library) ImportPack(ctx context.Context, data []byte) (pack.ImportResult, error) {
	owner := ""
	if me, err := l.Repo.Members.Current(ctx); err == nil {
		owner = me.Name
	} else if !errors.Is(err, repository.ErrNotFound) {
		return pack.ImportResult{}, err
	}
	return l.codec.Import(ctx, data, owner)
}
