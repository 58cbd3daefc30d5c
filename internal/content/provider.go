// Package content provides the sources theme file content is fetched from and saved to.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hmwm/akina-halo/internal/config"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/repository"
	"github.com/hmwm/akina-halo/internal/storage"
	"github.com/hmwm/akina-halo/pkg/httpclient"
)

// Provider reads and writes the content of theme files.
type Provider interface {
	// Name identifies the provider in logs and status output.
	Name() string
	// Get returns the content of file in theme.
	Get(ctx context.Context, theme string, file models.FileInfo) (string, error)
	// Put replaces the content of file in theme.
	Put(ctx context.Context, theme string, file models.FileInfo, content string) error
}

// Dependencies are the collaborators a provider may need.
type Dependencies struct {
	Files  repository.ThemeFileRepository
	Logger *slog.Logger
}

// New builds the provider selected by cfg.Provider.
func New(cfg config.ThemeConfig, deps Dependencies) (Provider, error) {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	switch cfg.Provider {
	case config.ProviderFixture, "":
		return NewFixtureProvider(), nil
	case config.ProviderRemote:
		clientCfg := httpclient.DefaultConfig()
		clientCfg.Logger = log
		clientCfg.MaxResponseSize = int64(cfg.MaxFileSize)
		if cfg.Remote.Timeout > 0 {
			clientCfg.Timeout = cfg.Remote.Timeout
		}
		clientCfg.RetryAttempts = cfg.Remote.Retries
		if cfg.Remote.Token != "" {
			clientCfg.Headers = http.Header{httpclient.HeaderAuthorization: []string{"Bearer " + cfg.Remote.Token}}
		}
		return NewRemoteProvider(cfg.Remote.BaseURL, httpclient.New(clientCfg))
	case config.ProviderDirectory:
		sandbox, err := storage.NewSandbox(cfg.WorkspaceDir)
		if err != nil {
			return nil, fmt.Errorf("opening theme workspace: %w", err)
		}
		return NewDirectoryProvider(sandbox), nil
	case config.ProviderDatabase:
		if deps.Files == nil {
			return nil, fmt.Errorf("database provider requires a file repository")
		}
		return NewDatabaseProvider(deps.Files), nil
	default:
		return nil, fmt.Errorf("unknown content provider: %s", cfg.Provider)
	}
}
