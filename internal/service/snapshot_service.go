package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/repository"
	"github.com/hmwm/akina-halo/internal/service/notify"
)

// SnapshotService persists autosave snapshots of dirty files and of the
// theme configuration when it changed since the previous snapshot.
type SnapshotService struct {
	store    *ThemeStore
	files    *FileRegistry
	repo     repository.ThemeSnapshotRepository
	notifier *notify.Service
	logger   *slog.Logger
	now      func() time.Time

	mu         sync.Mutex
	lastConfig string
}

// NewSnapshotService creates a snapshot service.
func NewSnapshotService(
	store *ThemeStore,
	files *FileRegistry,
	repo repository.ThemeSnapshotRepository,
	notifier *notify.Service,
) *SnapshotService {
	return &SnapshotService{
		store:    store,
		files:    files,
		repo:     repo,
		notifier: notifier,
		logger:   slog.Default(),
		now:      time.Now,
	}
}

// WithLogger sets the logger for the service.
func (s *SnapshotService) WithLogger(logger *slog.Logger) *SnapshotService {
	s.logger = logger
	return s
}

// Snapshot writes one row per dirty file, plus one for the configuration if
// it changed, and returns how many rows were written. Nothing is written and
// no notification is sent when nothing changed.
func (s *SnapshotService) Snapshot(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.store.Get()
	takenAt := s.now()
	dirty := s.files.Dirty()

	snapshots := make([]*models.ThemeSnapshot, 0, len(dirty)+1)
	for _, f := range dirty {
		if f.Content == nil {
			continue
		}
		snapshots = append(snapshots, &models.ThemeSnapshot{
			ThemeName: cfg.Name,
			Kind:      models.SnapshotFile,
			Name:      f.Name,
			Content:   *f.Content,
			TakenAt:   takenAt,
		})
	}

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return 0, fmt.Errorf("encoding theme config: %w", err)
	}
	configChanged := string(cfgJSON) != s.lastConfig
	if configChanged {
		snapshots = append(snapshots, &models.ThemeSnapshot{
			ThemeName: cfg.Name,
			Kind:      models.SnapshotConfig,
			Name:      cfg.Name,
			Content:   string(cfgJSON),
			TakenAt:   takenAt,
		})
	}

	if len(snapshots) == 0 {
		return 0, nil
	}
	if err := s.repo.CreateBatch(ctx, snapshots); err != nil {
		return 0, fmt.Errorf("storing snapshots: %w", err)
	}

	s.files.MarkClean(dirty...)
	if configChanged {
		s.lastConfig = string(cfgJSON)
	}

	s.logger.InfoContext(ctx, "autosave snapshot taken",
		slog.String("theme", cfg.Name),
		slog.Int("files", len(dirty)),
		slog.Bool("config", configChanged),
	)
	if s.notifier != nil {
		s.notifier.Success(models.EventSaveCompleted, i18n.KeyAutosaveCompleted, cfg.Name, len(snapshots))
	}
	return len(snapshots), nil
}

// Recent returns the newest snapshots of the stored theme.
func (s *SnapshotService) Recent(ctx context.Context, limit int) ([]*models.ThemeSnapshot, error) {
	return s.repo.ListRecent(ctx, s.store.Name(), limit)
}

// Prune removes snapshots older than maxAge.
func (s *SnapshotService) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	removed, err := s.repo.DeleteOlderThan(ctx, s.now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	if removed > 0 {
		s.logger.InfoContext(ctx, "pruned autosave snapshots", slog.Int64("removed", removed))
	}
	return removed, nil
}
