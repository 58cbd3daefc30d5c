package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"slices"

	// Register image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// WebP support from x/image
	_ "golang.org/x/image/webp"

	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/service/notify"
	"github.com/hmwm/akina-halo/internal/storage"
)

// LogoInfo describes a decoded logo image.
type LogoInfo struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}

// InspectLogo decodes the header of a logo and reports its format and dimensions.
// SVG documents are recognised but carry no dimensions.
func InspectLogo(_ context.Context, data []byte) (*LogoInfo, error) {
	if isSVG(data) {
		return &LogoInfo{Format: "svg", Size: int64(len(data))}, nil
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image config: %w", models.ErrUnsupportedImageFormat, err)
	}
	return &LogoInfo{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   int64(len(data)),
	}, nil
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// LogoUpload is the result of storing a logo.
type LogoUpload struct {
	Info     LogoInfo               `json:"info"`
	Asset    *storage.AssetMetadata `json:"asset"`
	LogoPath string                 `json:"logoPath" doc:"Value written to spec.logo"`
}

// LogoService stores theme logos and points theme.yaml at them.
type LogoService struct {
	assets   *storage.AssetStore
	store    *ThemeStore
	files    *FileRegistry
	notifier *notify.Service
	maxSize  int64
	formats  []string
	logger   *slog.Logger
}

// NewLogoService creates a logo service accepting the given extensions up to maxSize bytes.
func NewLogoService(
	assets *storage.AssetStore,
	store *ThemeStore,
	files *FileRegistry,
	notifier *notify.Service,
	maxSize int64,
	formats []string,
) *LogoService {
	if len(formats) == 0 {
		formats = models.DefaultDevelopmentConfig.SupportedImageFormats
	}
	return &LogoService{
		assets:   assets,
		store:    store,
		files:    files,
		notifier: notifier,
		maxSize:  maxSize,
		formats:  formats,
		logger:   slog.Default(),
	}
}

// WithLogger sets the logger for the service.
func (s *LogoService) WithLogger(logger *slog.Logger) *LogoService {
	s.logger = logger
	return s
}

// Upload validates and stores a logo named fileName, then sets spec.logo in
// the theme.yaml held by the registry.
func (s *LogoService) Upload(ctx context.Context, fileName string, data []byte) (*LogoUpload, error) {
	ext := models.Extension(fileName)
	if !slices.Contains(s.formats, ext) {
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedImageFormat, ext)
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("logo is %d bytes: %w", len(data), models.ErrFileTooLarge)
	}

	info, err := InspectLogo(ctx, data)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(s.formats, info.Format) {
		return nil, fmt.Errorf("%w: decoded %q", models.ErrUnsupportedImageFormat, info.Format)
	}

	theme := s.store.Name()
	meta := storage.NewAssetMetadata(theme, info.Format)
	meta.Width = info.Width
	meta.Height = info.Height
	if err := s.assets.Store(meta, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("storing logo: %w", err)
	}

	logoPath := "/assets/images/" + meta.ID + "." + meta.Format
	if err := s.setDescriptorLogo(ctx, logoPath); err != nil {
		s.logger.WarnContext(ctx, "updating theme descriptor logo", slog.String("error", err.Error()))
	}

	s.logger.InfoContext(ctx, "logo uploaded",
		slog.String("theme", theme),
		slog.String("id", meta.ID),
		slog.String("format", meta.Format),
		slog.Int("width", meta.Width),
		slog.Int("height", meta.Height),
	)
	return &LogoUpload{Info: *info, Asset: meta, LogoPath: logoPath}, nil
}

func (s *LogoService) setDescriptorLogo(ctx context.Context, logoPath string) error {
	if _, ok := s.files.Get(models.DescriptorFileName); !ok {
		return nil
	}
	existing, err := s.files.Open(ctx, models.DescriptorFileName)
	if err != nil {
		return err
	}
	rendered, err := RenderDescriptor(existing, s.store.Get())
	if err != nil {
		return err
	}
	d, err := models.ParseDescriptor([]byte(rendered))
	if err != nil {
		return err
	}
	d.Spec.Logo = logoPath
	data, err := models.MarshalDescriptor(d)
	if err != nil {
		return err
	}
	if err := s.files.SetContent(models.DescriptorFileName, string(data)); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.Info(models.EventConfigChanged, i18n.KeyConfigChanged, s.store.Name())
	}
	return nil
}
