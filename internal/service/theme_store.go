package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/repository"
)

// ThemeStore holds the theme configuration of the session.
// It starts from the default configuration. With a repository it also loads
// and persists the configuration; without one it lives only in memory.
type ThemeStore struct {
	mu     sync.RWMutex
	cfg    models.ThemeConfig
	repo   repository.ThemeConfigRepository
	logger *slog.Logger
}

// NewThemeStore creates a store holding the default configuration.
// repo may be nil.
func NewThemeStore(repo repository.ThemeConfigRepository) *ThemeStore {
	return &ThemeStore{
		cfg:    models.DefaultThemeConfig(),
		repo:   repo,
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the store.
func (s *ThemeStore) WithLogger(logger *slog.Logger) *ThemeStore {
	s.logger = logger
	return s
}

// Load replaces the held configuration with the saved configuration of name.
// When nothing is saved the default configuration is kept under name.
func (s *ThemeStore) Load(ctx context.Context, name string) error {
	cfg := models.DefaultThemeConfig()
	if name != "" {
		cfg.Name = name
	}

	if s.repo != nil {
		record, err := s.repo.GetByName(ctx, cfg.Name)
		if err != nil {
			return fmt.Errorf("loading theme config %s: %w", cfg.Name, err)
		}
		if record != nil {
			cfg = record.Config
			s.logger.DebugContext(ctx, "loaded saved theme config", slog.String("theme", cfg.Name))
		}
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Get returns the held configuration.
func (s *ThemeStore) Get() models.ThemeConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Name returns the name of the held configuration.
func (s *ThemeStore) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Name
}

// Save persists cfg and then replaces the held configuration.
// The held configuration is unchanged when persisting fails.
func (s *ThemeStore) Save(ctx context.Context, cfg models.ThemeConfig) error {
	if s.repo != nil {
		if _, err := s.repo.Save(ctx, cfg); err != nil {
			return fmt.Errorf("saving theme config %s: %w", cfg.Name, err)
		}
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}
