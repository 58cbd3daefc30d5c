package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hmwm/akina-halo/internal/models"
	"gorm.io/gorm"
)

// themeSnapshotRepo implements ThemeSnapshotRepository using GORM.
type themeSnapshotRepo struct {
	db *gorm.DB
}

// NewThemeSnapshotRepository creates a new ThemeSnapshotRepository.
func NewThemeSnapshotRepository(db *gorm.DB) *themeSnapshotRepo {
	return &themeSnapshotRepo{db: db}
}

// CreateBatch stores multiple snapshots in a single batch.
func (r *themeSnapshotRepo) CreateBatch(ctx context.Context, snapshots []*models.ThemeSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(snapshots).Error; err != nil {
		return fmt.Errorf("creating snapshot batch: %w", err)
	}
	return nil
}

// ListRecent retrieves the newest snapshots of a theme, newest first.
func (r *themeSnapshotRepo) ListRecent(ctx context.Context, themeName string, limit int) ([]*models.ThemeSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	var snapshots []*models.ThemeSnapshot
	if err := r.db.WithContext(ctx).
		Where("theme_name = ?", themeName).
		Order("taken_at DESC").Order("id DESC").
		Limit(limit).
		Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	return snapshots, nil
}

// Latest retrieves the newest snapshot of one file or config.
func (r *themeSnapshotRepo) Latest(ctx context.Context, themeName string, kind models.SnapshotKind, name string) (*models.ThemeSnapshot, error) {
	var snapshot models.ThemeSnapshot
	if err := r.db.WithContext(ctx).
		Where("theme_name = ? AND kind = ? AND name = ?", themeName, kind, name).
		Order("taken_at DESC").Order("id DESC").
		First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting latest snapshot: %w", err)
	}
	return &snapshot, nil
}

// DeleteOlderThan removes snapshots taken before cutoff.
func (r *themeSnapshotRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("taken_at < ?", cutoff).Delete(&models.ThemeSnapshot{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting old snapshots: %w", result.Error)
	}
	return result.RowsAffected, nil
}
