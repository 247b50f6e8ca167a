package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one durable key in the SQL medium.
type KVEntry struct {
	Key       string         `gorm:"primaryKey;size:191"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName overrides the table name
func (KVEntry) TableName() string {
	return "kv_entries"
}

// SQLMedium stores keys in a single table through gorm.
type SQLMedium struct {
	db *gorm.DB
}

// NewSQLMedium migrates the kv table and returns the medium.
func NewSQLMedium(db *gorm.DB) (*SQLMedium, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, err
	}
	return &SQLMedium{db: db}, nil
}

func (m *SQLMedium) Scan(ctx context.Context, prefix string) (map[string]string, error) {
	var entries []KVEntry
	if err := m.db.WithContext(ctx).Where("\"key\" LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").Find(&entries).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Key] = string(e.Value)
	}
	return out, nil
}

func (m *SQLMedium) Read(ctx context.Context, key string) (string, bool, error) {
	var entry KVEntry
	err := m.db.WithContext(ctx).Where("\"key\" = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(entry.Value), true, nil
}

func (m *SQLMedium) Write(ctx context.Context, key, value string) error {
	entry := KVEntry{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	return m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in a prefix match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
