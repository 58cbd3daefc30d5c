package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hmwm/akina-halo/internal/config"
	"github.com/hmwm/akina-halo/internal/content"
	"github.com/hmwm/akina-halo/internal/database"
	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/repository"
	"github.com/hmwm/akina-halo/internal/service"
	"github.com/hmwm/akina-halo/internal/service/notify"
	"github.com/hmwm/akina-halo/internal/storage"
	"github.com/hmwm/akina-halo/internal/validation"
)

// session holds the collaborators of one theme development session.
type session struct {
	db          *database.DB
	provider    content.Provider
	store       *service.ThemeStore
	files       *service.FileRegistry
	msg         *i18n.Localizer
	notifier    *notify.Service
	development *service.ThemeDevelopmentService
	descriptors *validation.DescriptorValidator
	assets      *storage.AssetStore
	exporter    *service.ExportService
	logos       *service.LogoService
	snapshots   *service.SnapshotService
}

// openSession connects the database and builds every service of a session.
func openSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*session, error) {
	db, err := database.New(cfg.Database, logger, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	configRepo := repository.NewThemeConfigRepository(db.DB)
	fileRepo := repository.NewThemeFileRepository(db.DB)
	snapshotRepo := repository.NewThemeSnapshotRepository(db.DB)

	provider, err := content.New(cfg.Theme, content.Dependencies{Files: fileRepo, Logger: logger})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing content provider: %w", err)
	}

	store := service.NewThemeStore(configRepo).WithLogger(logger)
	if err := store.Load(ctx, cfg.Theme.Name); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading theme config: %w", err)
	}

	files := service.NewFileRegistry(provider, store.Name, models.DefaultFiles())

	msg := i18n.New(cfg.Notifications.Locale)
	notifier := notify.New(cfg.Notifications.BufferSize, msg).WithLogger(logger)

	development := service.NewThemeDevelopmentService(service.Dependencies{
		Store:          store,
		Files:          files,
		Provider:       provider,
		ThemeValidator: validation.NewThemeValidator(msg),
		FileValidators: validation.NewDefaultRegistry(msg),
		Notifier:       notifier,
	}, service.OptionsFromConfig(cfg.Theme)).WithLogger(logger)

	assets, err := storage.NewAssetStore(cfg.Theme.AssetsDir)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing asset store: %w", err)
	}

	return &session{
		db:          db,
		provider:    provider,
		store:       store,
		files:       files,
		msg:         msg,
		notifier:    notifier,
		development: development,
		descriptors: validation.NewDescriptorValidator(msg, cfg.Theme.PlatformVersion),
		assets:      assets,
		exporter:    service.NewExportService(store, files, assets).WithLogger(logger),
		logos: service.NewLogoService(assets, store, files, notifier, int64(cfg.Theme.MaxFileSize), nil).
			WithLogger(logger),
		snapshots: service.NewSnapshotService(store, files, snapshotRepo, notifier).WithLogger(logger),
	}, nil
}

// Close releases the database connection.
func (s *session) Close() error {
	return s.db.Close()
}
