package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hmwm/akina-halo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// themeFileRepo implements ThemeFileRepository using GORM.
type themeFileRepo struct {
	db *gorm.DB
}

// NewThemeFileRepository creates a new ThemeFileRepository.
func NewThemeFileRepository(db *gorm.DB) *themeFileRepo {
	return &themeFileRepo{db: db}
}

// Get retrieves one file of a theme.
func (r *themeFileRepo) Get(ctx context.Context, themeName, name string) (*models.ThemeFile, error) {
	var file models.ThemeFile
	if err := r.db.WithContext(ctx).
		Where("theme_name = ? AND name = ?", themeName, name).
		First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting theme file: %w", err)
	}
	return &file, nil
}

// List retrieves every file of a theme ordered by name.
func (r *themeFileRepo) List(ctx context.Context, themeName string) ([]*models.ThemeFile, error) {
	var files []*models.ThemeFile
	if err := r.db.WithContext(ctx).
		Where("theme_name = ?", themeName).
		Order("name ASC").
		Find(&files).Error; err != nil {
		return nil, fmt.Errorf("listing theme files: %w", err)
	}
	return files, nil
}

// Upsert creates the file or replaces its content, keyed by (theme_name, name).
func (r *themeFileRepo) Upsert(ctx context.Context, file *models.ThemeFile) error {
	file.Size = int64(len(file.Content))
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "theme_name"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "path", "content", "size", "updated_at"}),
	}).Create(file).Error; err != nil {
		return fmt.Errorf("upserting theme file: %w", err)
	}
	return nil
}

// Delete removes one file of a theme.
func (r *themeFileRepo) Delete(ctx context.Context, themeName, name string) error {
	if err := r.db.WithContext(ctx).
		Where("theme_name = ? AND name = ?", themeName, name).
		Delete(&models.ThemeFile{}).Error; err != nil {
		return fmt.Errorf("deleting theme file: %w", err)
	}
	return nil
}
