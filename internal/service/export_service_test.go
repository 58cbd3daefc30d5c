package service

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/hmwm/akina-halo/internal/content"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func setupExportService(t *testing.T, assets *storage.AssetStore) (*ExportService, *ThemeStore, *FileRegistry) {
	t.Helper()
	store := NewThemeStore(nil)
	files := NewFileRegistry(content.NewFixtureProvider(), store.Name, models.DefaultFiles())
	return NewExportService(store, files, assets), store, files
}

func readArchive(t *testing.T, data []byte, format ArchiveFormat) map[string]string {
	t.Helper()

	var r io.Reader = bytes.NewReader(data)
	switch format {
	case ArchiveTarGz:
		gz, err := gzip.NewReader(r)
		require.NoError(t, err)
		r = gz
	case ArchiveTarBz:
		bz, err := bzip2.NewReader(r, nil)
		require.NoError(t, err)
		r = bz
	case ArchiveTarXz:
		xr, err := xz.NewReader(r)
		require.NoError(t, err)
		r = xr
	}

	entries := make(map[string]string)
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		body, err := io.ReadAll(tr)
		require.NoError(t, err)
		entries[hdr.Name] = string(body)
	}
	return entries
}

func TestExportService_Formats(t *testing.T) {
	for _, format := range ArchiveFormats {
		t.Run(string(format), func(t *testing.T) {
			svc, _, _ := setupExportService(t, nil)

			var buf bytes.Buffer
			require.NoError(t, svc.Export(context.Background(), &buf, format))

			entries := readArchive(t, buf.Bytes(), format)
			assert.Len(t, entries, 9)
			assert.Contains(t, entries["akina-zzz/templates/index.html"], "<html")
			assert.Contains(t, entries["akina-zzz/assets/css/style.css"], "--primary-color")
			assert.Equal(t, content.Placeholder("post.html"), entries["akina-zzz/templates/post.html"])

			d, err := models.ParseDescriptor([]byte(entries["akina-zzz/theme.yaml"]))
			require.NoError(t, err)
			assert.Equal(t, "akina-zzz", d.Metadata.Name)
		})
	}
}

func TestExportService_UsesStoredConfigAndSavedContent(t *testing.T) {
	svc, store, files := setupExportService(t, nil)
	ctx := context.Background()

	cfg := models.DefaultThemeConfig()
	cfg.Name = "akina-next"
	cfg.Version = "3.0.0"
	require.NoError(t, store.Save(ctx, cfg))
	require.NoError(t, files.SetContent("style.css", "body{}"))

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf, ArchiveTar))

	entries := readArchive(t, buf.Bytes(), ArchiveTar)
	assert.Equal(t, "body{}", entries["akina-next/assets/css/style.css"])

	d, err := models.ParseDescriptor([]byte(entries["akina-next/theme.yaml"]))
	require.NoError(t, err)
	assert.Equal(t, "akina-next", d.Metadata.Name)
	assert.Equal(t, "3.0.0", d.Spec.Version)
}

func TestExportService_IncludesAssets(t *testing.T) {
	assets, err := storage.NewAssetStore(t.TempDir())
	require.NoError(t, err)
	meta := storage.NewAssetMetadata("akina-zzz", "png")
	require.NoError(t, assets.Store(meta, bytes.NewReader([]byte("png-bytes"))))

	svc, _, _ := setupExportService(t, assets)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf, ArchiveTarGz))

	entries := readArchive(t, buf.Bytes(), ArchiveTarGz)
	assert.Equal(t, "png-bytes", entries["akina-zzz/assets/images/"+meta.ID+".png"])
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	svc, _, _ := setupExportService(t, nil)
	err := svc.Export(context.Background(), io.Discard, ArchiveFormat("zip"))
	assert.ErrorIs(t, err, models.ErrUnsupportedArchiveFormat)
}

func TestParseArchiveFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ArchiveFormat
		wantErr bool
	}{
		{"", ArchiveTarGz, false},
		{"tgz", ArchiveTarGz, false},
		{"TAR.XZ", ArchiveTarXz, false},
		{".tar.bz2", ArchiveTarBz, false},
		{"tar", ArchiveTar, false},
		{"zip", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseArchiveFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrUnsupportedArchiveFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "akina-zzz.tar.xz", ArchiveTarXz.FileName("akina-zzz"))
	assert.Equal(t, "application/gzip", ArchiveTarGz.ContentType())
}
