package repository

import "teamprompt/internal/models"

// ReviseIfChanged carries old's version and history onto next. When the title
// or content differ it snapshots old at the head of the history, trims the
// history to models.MaxVersionHistory and bumps the version. The returned
// entry is nil when nothing versioned.
func ReviseIfChanged(old, next models.Prompt) (models.Prompt, *models.VersionEntry) {
	version := old.Version
	if version < 1 {
		version = 1
	}
	next.Version = version
	next.VersionHistory = old.VersionHistory
	if next.VersionHistory == nil {
		next.VersionHistory = []models.VersionEntry{}
	}

	if old.Title == next.Title && old.Content == next.Content {
		return next, nil
	}

	entry := models.VersionEntry{
		Version:   version,
		Title:     old.Title,
		Content:   old.Content,
		UpdatedAt: old.UpdatedAt,
	}

	n := len(old.VersionHistory) + 1
	if n > models.MaxVersionHistory {
		n = models.MaxVersionHistory
	}
	history := make([]models.VersionEntry, 0, n)
	history = append(history, entry)
	for _, e := range old.VersionHistory {
		if len(history) == n {
			break
		}
		history = append(history, e)
	}

	next.VersionHistory = history
	next.Version = version + 1
	return next, &entry
}
