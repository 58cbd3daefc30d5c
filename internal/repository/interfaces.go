// Package repository defines data access interfaces for akina-halo entities.
// All database access goes through these interfaces, enabling easy testing
// and database backend switching.
package repository

import (
	"context"
	"time"

	"github.com/hmwm/akina-halo/internal/models"
)

// ThemeConfigRepository defines operations for saved theme configurations.
type ThemeConfigRepository interface {
	// GetByName retrieves the saved configuration of a theme. Returns nil when none is saved.
	GetByName(ctx context.Context, name string) (*models.ThemeConfigRecord, error)
	// Save creates or replaces the configuration stored under cfg.Name.
	Save(ctx context.Context, cfg models.ThemeConfig) (*models.ThemeConfigRecord, error)
	// GetAll retrieves every saved configuration ordered by name.
	GetAll(ctx context.Context) ([]*models.ThemeConfigRecord, error)
	// Delete removes the configuration of a theme.
	Delete(ctx context.Context, name string) error
}

// ThemeFileRepository defines operations for persisted theme file content.
type ThemeFileRepository interface {
	// Get retrieves one file of a theme. Returns nil when the file is not stored.
	Get(ctx context.Context, themeName, name string) (*models.ThemeFile, error)
	// List retrieves every file of a theme ordered by name.
	List(ctx context.Context, themeName string) ([]*models.ThemeFile, error)
	// Upsert creates the file or replaces its content.
	Upsert(ctx context.Context, file *models.ThemeFile) error
	// Delete removes one file of a theme.
	Delete(ctx context.Context, themeName, name string) error
}

// ThemeSnapshotRepository defines operations for autosave snapshots.
type ThemeSnapshotRepository interface {
	// CreateBatch stores multiple snapshots in a single batch.
	CreateBatch(ctx context.Context, snapshots []*models.ThemeSnapshot) error
	// ListRecent retrieves the newest snapshots of a theme, newest first.
	ListRecent(ctx context.Context, themeName string, limit int) ([]*models.ThemeSnapshot, error)
	// Latest retrieves the newest snapshot of one file or config. Returns nil when none exists.
	Latest(ctx context.Context, themeName string, kind models.SnapshotKind, name string) (*models.ThemeSnapshot, error)
	// DeleteOlderThan removes snapshots taken before cutoff and returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
