package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/hmwm/akina-halo/internal/config"
	"github.com/hmwm/akina-halo/internal/content"
	internalhttp "github.com/hmwm/akina-halo/internal/http"
	"github.com/hmwm/akina-halo/internal/http/handlers"
	"github.com/hmwm/akina-halo/internal/observability"
	"github.com/hmwm/akina-halo/internal/scheduler"
	"github.com/hmwm/akina-halo/internal/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the theme development server",
	Long: `Start the akina-halo HTTP server and API.

The server provides:
- REST API for the theme configuration, files, validation and previews
- Server-Sent Events for session notifications
- Theme export and logo upload
- Health check endpoint
- OpenAPI documentation at /docs`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
	serveCmd.Flags().Int("port", 8090, "Port to listen on")
	serveCmd.Flags().String("provider", config.ProviderFixture, "Content provider (fixture, remote, directory, database)")
	serveCmd.Flags().String("workspace", "./theme", "Theme root for the directory provider")
	serveCmd.Flags().Bool("autosave", false, "Take periodic snapshots of unsaved changes")

	mustBindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	mustBindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	mustBindPFlag("theme.provider", serveCmd.Flags().Lookup("provider"))
	mustBindPFlag("theme.workspace_dir", serveCmd.Flags().Lookup("workspace"))
	mustBindPFlag("theme.autosave.enabled", serveCmd.Flags().Lookup("autosave"))
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if dir, ok := sess.provider.(*content.DirectoryProvider); ok && cfg.Theme.Watch {
		watcher := content.NewWatcher(dir.Root(), content.DefaultDebounce,
			observability.WithComponent(logger, "watcher"), sess.development.HandleFileChange)
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("starting workspace watcher: %w", err)
		}
		defer watcher.Stop()
	}

	sched := scheduler.NewScheduler().WithLogger(observability.WithComponent(logger, "scheduler"))
	if err := scheduler.RegisterAutosave(sched, cfg.Theme.Autosave, sess.snapshots); err != nil {
		return fmt.Errorf("registering autosave: %w", err)
	}
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	server := internalhttp.NewServer(cfg.Server, logger, version.Version)

	handlers.NewHealthHandler(version.Version).
		WithDB(sess.db.DB).
		WithProvider(sess.provider).
		Register(server.API())

	handlers.NewThemeDevelopmentHandler(sess.development).
		WithDescriptorValidator(sess.descriptors).
		Register(server.API())

	notificationHandler := handlers.NewNotificationHandler(sess.notifier).WithLogger(logger)
	notificationHandler.Register(server.API())
	notificationHandler.RegisterSSE(server.Router())

	handlers.NewExportHandler(sess.exporter, sess.store.Name).Register(server.API())
	handlers.NewLogoHandler(sess.logos).Register(server.API())
	handlers.NewSnapshotHandler(sess.snapshots).Register(server.API())

	logger.Info("starting akina-halo server",
		slog.String("address", cfg.Server.Address()),
		slog.String("theme", sess.store.Name()),
		slog.String("provider", sess.provider.Name()),
		slog.String("version", version.Version),
	)

	return server.ListenAndServe(ctx)
}
