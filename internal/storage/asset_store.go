package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// AssetMetadata is stored as JSON alongside an uploaded theme image.
type AssetMetadata struct {
	ID          string    `json:"id"`
	ThemeName   string    `json:"theme_name"`
	Format      string    `json:"format"`
	ContentType string    `json:"content_type"`
	Width       int       `json:"width,omitempty"`
	Height      int       `json:"height,omitempty"`
	FileSize    int64     `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAssetMetadata creates metadata with a fresh ULID for an image in format.
func NewAssetMetadata(themeName, format string) *AssetMetadata {
	return &AssetMetadata{
		ID:          ulid.Make().String(),
		ThemeName:   themeName,
		Format:      strings.ToLower(format),
		ContentType: ContentTypeForFormat(format),
		CreatedAt:   time.Now().UTC(),
	}
}

// RelativeImagePath is the image location relative to the store root.
func (m *AssetMetadata) RelativeImagePath() string {
	return path.Join("images", m.ThemeName, m.ID+"."+m.Format)
}

// RelativeMetadataPath is the sidecar location relative to the store root.
func (m *AssetMetadata) RelativeMetadataPath() string {
	return path.Join("images", m.ThemeName, m.ID+".json")
}

// AssetStore keeps uploaded theme images on disk.
// Directory structure:
//   - images/{theme}/{ulid}.{format} - the image bytes
//   - images/{theme}/{ulid}.json - its AssetMetadata
type AssetStore struct {
	sandbox *Sandbox
}

// NewAssetStore creates an AssetStore in the given base directory.
func NewAssetStore(baseDir string) (*AssetStore, error) {
	sandbox, err := NewSandbox(baseDir)
	if err != nil {
		return nil, fmt.Errorf("creating sandbox: %w", err)
	}
	if err := sandbox.MkdirAll("images"); err != nil {
		return nil, fmt.Errorf("creating images directory: %w", err)
	}
	return &AssetStore{sandbox: sandbox}, nil
}

// BaseDir returns the absolute root of the store.
func (s *AssetStore) BaseDir() string {
	return s.sandbox.BaseDir()
}

// Store writes the image and then its metadata. FileSize is filled in from disk.
func (s *AssetStore) Store(meta *AssetMetadata, image io.Reader) error {
	if err := s.sandbox.WriteReader(meta.RelativeImagePath(), image); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}

	info, err := s.sandbox.Stat(meta.RelativeImagePath())
	if err != nil {
		return fmt.Errorf("getting file size: %w", err)
	}
	meta.FileSize = info.Size()

	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := s.sandbox.WriteFile(meta.RelativeMetadataPath(), metaJSON); err != nil {
		_ = s.sandbox.Remove(meta.RelativeImagePath())
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// Load reads the metadata of an image by theme and id.
func (s *AssetStore) Load(themeName, id string) (*AssetMetadata, error) {
	data, err := s.sandbox.ReadFile(path.Join("images", themeName, id+".json"))
	if err != nil {
		return nil, fmt.Errorf("reading metadata file: %w", err)
	}

	var meta AssetMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}
	return &meta, nil
}

// ReadImage returns the image bytes described by meta.
func (s *AssetStore) ReadImage(meta *AssetMetadata) ([]byte, error) {
	return s.sandbox.ReadFile(meta.RelativeImagePath())
}

// List returns the metadata of every image of a theme, newest first.
func (s *AssetStore) List(themeName string) ([]*AssetMetadata, error) {
	matches, err := s.sandbox.Glob(path.Join("images", themeName, "*.json"))
	if err != nil {
		return nil, err
	}

	result := make([]*AssetMetadata, 0, len(matches))
	for _, match := range matches {
		id := strings.TrimSuffix(path.Base(match), ".json")
		meta, err := s.Load(themeName, id)
		if err != nil {
			continue
		}
		result = append(result, meta)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// Delete removes an image and its metadata.
func (s *AssetStore) Delete(meta *AssetMetadata) error {
	errImg := s.sandbox.Remove(meta.RelativeImagePath())
	errMeta := s.sandbox.Remove(meta.RelativeMetadataPath())
	return errors.Join(errImg, errMeta)
}

// ContentTypeForFormat maps an image format name to its MIME type.
func ContentTypeForFormat(format string) string {
	switch strings.ToLower(format) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
