package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/storage"
)

// DirectoryProvider reads and writes files in a local theme workspace.
// FileInfo.Path is resolved relative to the workspace root.
type DirectoryProvider struct {
	sandbox *storage.Sandbox
}

// NewDirectoryProvider creates a DirectoryProvider over sandbox.
func NewDirectoryProvider(sandbox *storage.Sandbox) *DirectoryProvider {
	return &DirectoryProvider{sandbox: sandbox}
}

// Name implements Provider.
func (p *DirectoryProvider) Name() string { return "directory" }

// Root returns the absolute workspace directory.
func (p *DirectoryProvider) Root() string { return p.sandbox.BaseDir() }

// Get implements Provider.
func (p *DirectoryProvider) Get(_ context.Context, _ string, file models.FileInfo) (string, error) {
	data, err := p.sandbox.ReadFile(relativePath(file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("file %s: %w", file.Name, models.ErrNotFound)
		}
		return "", err
	}
	return string(data), nil
}

// Put implements Provider.
func (p *DirectoryProvider) Put(_ context.Context, _ string, file models.FileInfo, content string) error {
	return p.sandbox.WriteFile(relativePath(file), []byte(content))
}

func relativePath(file models.FileInfo) string {
	if p := strings.TrimPrefix(file.Path, "/"); p != "" {
		return p
	}
	return file.Name
}
