package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/hmwm/akina-halo/internal/config"
)

// Task names registered by RegisterAutosave.
const (
	TaskAutosave      = "autosave"
	TaskPruneSnapshot = "prune_snapshots"
)

// pruneSchedule runs snapshot pruning at the top of every hour.
const pruneSchedule = "0 0 * * * *"

// Snapshotter takes and prunes autosave snapshots.
type Snapshotter interface {
	Snapshot(ctx context.Context) (int, error)
	Prune(ctx context.Context, maxAge time.Duration) (int64, error)
}

// RegisterAutosave registers the autosave and pruning tasks described by cfg.
// Nothing is registered when autosave is disabled.
func RegisterAutosave(s *Scheduler, cfg config.AutosaveConfig, snapshots Snapshotter) error {
	if !cfg.Enabled {
		s.logger.Debug("autosave disabled")
		return nil
	}

	if err := s.Register(TaskAutosave, cfg.Schedule, func(ctx context.Context) error {
		_, err := snapshots.Snapshot(ctx)
		return err
	}); err != nil {
		return err
	}

	if cfg.Retention > 0 {
		retention := cfg.Retention
		if err := s.Register(TaskPruneSnapshot, pruneSchedule, func(ctx context.Context) error {
			_, err := snapshots.Prune(ctx, retention)
			return err
		}); err != nil {
			return err
		}
	}

	s.logger.Info("autosave enabled",
		slog.String("schedule", cfg.Schedule),
		slog.Duration("retention", cfg.Retention))
	return nil
}
