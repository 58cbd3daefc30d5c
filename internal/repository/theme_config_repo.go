package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hmwm/akina-halo/internal/models"
	"gorm.io/gorm"
)

// themeConfigRepo implements ThemeConfigRepository using GORM.
type themeConfigRepo struct {
	db *gorm.DB
}

// NewThemeConfigRepository creates a new ThemeConfigRepository.
func NewThemeConfigRepository(db *gorm.DB) *themeConfigRepo {
	return &themeConfigRepo{db: db}
}

// GetByName retrieves the saved configuration of a theme.
func (r *themeConfigRepo) GetByName(ctx context.Context, name string) (*models.ThemeConfigRecord, error) {
	var record models.ThemeConfigRecord
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting theme config by name: %w", err)
	}
	return &record, nil
}

// Save creates or replaces the configuration stored under cfg.Name.
func (r *themeConfigRepo) Save(ctx context.Context, cfg models.ThemeConfig) (*models.ThemeConfigRecord, error) {
	var record models.ThemeConfigRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ?", cfg.Name).First(&record).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = models.ThemeConfigRecord{Name: cfg.Name, Config: cfg}
			return tx.Create(&record).Error
		case err != nil:
			return err
		}
		record.Config = cfg
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, fmt.Errorf("saving theme config: %w", err)
	}
	return &record, nil
}

// GetAll retrieves every saved configuration ordered by name.
func (r *themeConfigRepo) GetAll(ctx context.Context) ([]*models.ThemeConfigRecord, error) {
	var records []*models.ThemeConfigRecord
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("getting all theme configs: %w", err)
	}
	return records, nil
}

// Delete removes the configuration of a theme.
func (r *themeConfigRepo) Delete(ctx context.Context, name string) error {
	if err := r.db.WithContext(ctx).Where("name = ?", name).Delete(&models.ThemeConfigRecord{}).Error; err != nil {
		return fmt.Errorf("deleting theme config: %w", err)
	}
	return nil
}
