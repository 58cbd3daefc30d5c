package service

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/dsnet/compress/bzip2"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/storage"
	"github.com/ulikunitz/xz"
)

// ArchiveFormat is a theme export container.
type ArchiveFormat string

const (
	ArchiveTar   ArchiveFormat = "tar"
	ArchiveTarGz ArchiveFormat = "tar.gz"
	ArchiveTarBz ArchiveFormat = "tar.bz2"
	ArchiveTarXz ArchiveFormat = "tar.xz"
)

// ArchiveFormats lists the supported export formats.
var ArchiveFormats = []ArchiveFormat{ArchiveTar, ArchiveTarGz, ArchiveTarBz, ArchiveTarXz}

// ParseArchiveFormat parses s, accepting "tgz" as tar.gz. Empty means tar.gz.
func ParseArchiveFormat(s string) (ArchiveFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "tar.gz", "tgz":
		return ArchiveTarGz, nil
	case "tar":
		return ArchiveTar, nil
	case "tar.bz2", "tbz2":
		return ArchiveTarBz, nil
	case "tar.xz", "txz":
		return ArchiveTarXz, nil
	default:
		return "", fmt.Errorf("%w: %s", models.ErrUnsupportedArchiveFormat, s)
	}
}

// ContentType returns the MIME type of the archive.
func (f ArchiveFormat) ContentType() string {
	switch f {
	case ArchiveTarGz:
		return "application/gzip"
	case ArchiveTarBz:
		return "application/x-bzip2"
	case ArchiveTarXz:
		return "application/x-xz"
	default:
		return "application/x-tar"
	}
}

// FileName returns the archive file name for theme.
func (f ArchiveFormat) FileName(theme string) string {
	return theme + "." + string(f)
}

// ExportService packages the theme into an archive.
type ExportService struct {
	store  *ThemeStore
	files  *FileRegistry
	assets *storage.AssetStore
	logger *slog.Logger
	now    func() time.Time
}

// NewExportService creates an export service. assets may be nil.
func NewExportService(store *ThemeStore, files *FileRegistry, assets *storage.AssetStore) *ExportService {
	return &ExportService{
		store:  store,
		files:  files,
		assets: assets,
		logger: slog.Default(),
		now:    time.Now,
	}
}

// WithLogger sets the logger for the service.
func (s *ExportService) WithLogger(logger *slog.Logger) *ExportService {
	s.logger = logger
	return s
}

// Export writes the theme to w as an archive in format.
// Entries live under a directory named after the theme. theme.yaml is
// regenerated from the stored configuration; other files use their saved
// content or are fetched through the provider.
func (s *ExportService) Export(ctx context.Context, w io.Writer, format ArchiveFormat) (err error) {
	cfg := s.store.Get()
	start := time.Now()

	compressor, err := newCompressor(w, format)
	if err != nil {
		return err
	}
	tw := tar.NewWriter(compressor)
	defer func() {
		if closeErr := tw.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("closing tar: %w", closeErr)
		}
		if closeErr := compressor.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("closing %s stream: %w", format, closeErr)
		}
	}()

	root := cfg.Name
	count := 0

	var existing string
	if _, ok := s.files.Get(models.DescriptorFileName); ok {
		existing, _ = s.files.Open(ctx, models.DescriptorFileName)
	}
	descriptor, err := RenderDescriptor(existing, cfg)
	if err != nil {
		return err
	}
	if err := s.writeEntry(tw, path.Join(root, models.DescriptorFileName), []byte(descriptor), s.now()); err != nil {
		return err
	}
	count++

	for _, file := range s.files.List() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if file.Name == models.DescriptorFileName {
			continue
		}
		text, err := s.files.Open(ctx, file.Name)
		if err != nil {
			return fmt.Errorf("exporting %s: %w", file.Name, err)
		}
		modified := s.now()
		if file.LastModified != nil {
			modified = *file.LastModified
		}
		name := path.Join(root, strings.TrimPrefix(path.Clean("/"+file.Path), "/"))
		if err := s.writeEntry(tw, name, []byte(text), modified); err != nil {
			return err
		}
		count++
	}

	n, err := s.exportAssets(tw, root, cfg.Name)
	if err != nil {
		return err
	}
	count += n

	s.logger.InfoContext(ctx, "theme exported",
		slog.String("theme", cfg.Name),
		slog.String("format", string(format)),
		slog.Int("entries", count),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (s *ExportService) exportAssets(tw *tar.Writer, root, theme string) (int, error) {
	if s.assets == nil {
		return 0, nil
	}
	metas, err := s.assets.List(theme)
	if err != nil {
		return 0, fmt.Errorf("listing assets: %w", err)
	}
	for _, meta := range metas {
		data, err := s.assets.ReadImage(meta)
		if err != nil {
			return 0, fmt.Errorf("reading asset %s: %w", meta.ID, err)
		}
		name := path.Join(root, "assets", "images", meta.ID+"."+meta.Format)
		if err := s.writeEntry(tw, name, data, meta.CreatedAt); err != nil {
			return 0, err
		}
	}
	return len(metas), nil
}

func (s *ExportService) writeEntry(tw *tar.Writer, name string, data []byte, modified time.Time) error {
	hdr := &tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: modified,
		Format:  tar.FormatPAX,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing header for %s: %w", name, err)
	}
	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func newCompressor(w io.Writer, format ArchiveFormat) (io.WriteCloser, error) {
	switch format {
	case ArchiveTar:
		return nopWriteCloser{w}, nil
	case ArchiveTarGz:
		return gzip.NewWriter(w), nil
	case ArchiveTarBz:
		bw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
		if err != nil {
			return nil, fmt.Errorf("creating bzip2 writer: %w", err)
		}
		return bw, nil
	case ArchiveTarXz:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("creating xz writer: %w", err)
		}
		return xw, nil
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedArchiveFormat, format)
	}
}
