package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/hmwm/akina-halo/internal/service"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Package the theme into an archive",
	Long: `Package the theme files, a regenerated theme.yaml and uploaded assets
into a tar archive read from the configured content provider.

Supported formats: tar, tar.gz (tgz), tar.bz2 (tbz2), tar.xz (txz).

  akina-halo export --format tar.xz --out akina-zzz.tar.xz`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "tar.gz", "archive format")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default <theme>.<format>)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := service.ParseArchiveFormat(exportFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sess, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	var buf bytes.Buffer
	if err := sess.exporter.Export(ctx, &buf, format); err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	out := exportOut
	if out == "" {
		out = format.FileName(sess.store.Name())
	}
	if err := atomic.WriteFile(out, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d bytes)\n", out, buf.Len())
	return nil
}
