package content

import (
	"context"
	"fmt"

	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/repository"
)

// DatabaseProvider keeps file content in the theme_files table.
// Files never saved fall back to the canned fixtures.
type DatabaseProvider struct {
	files    repository.ThemeFileRepository
	fallback *FixtureProvider
}

// NewDatabaseProvider creates a DatabaseProvider over files.
func NewDatabaseProvider(files repository.ThemeFileRepository) *DatabaseProvider {
	return &DatabaseProvider{files: files, fallback: NewFixtureProvider()}
}

// Name implements Provider.
func (p *DatabaseProvider) Name() string { return "database" }

// Get implements Provider.
func (p *DatabaseProvider) Get(ctx context.Context, theme string, file models.FileInfo) (string, error) {
	record, err := p.files.Get(ctx, theme, file.Name)
	if err != nil {
		return "", fmt.Errorf("loading file %s: %w", file.Name, err)
	}
	if record == nil {
		return p.fallback.Get(ctx, theme, file)
	}
	return record.Content, nil
}

// Put implements Provider.
func (p *DatabaseProvider) Put(ctx context.Context, theme string, file models.FileInfo, content string) error {
	return p.files.Upsert(ctx, &models.ThemeFile{
		ThemeName: theme,
		Name:      file.Name,
		Type:      file.Type,
		Path:      file.Path,
		Content:   content,
	})
}
