package content

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/hmwm/akina-halo/internal/config"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/repository"
	"github.com/hmwm/akina-halo/internal/storage"
	"github.com/hmwm/akina-halo/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func fileInfo(t *testing.T, name, path string) models.FileInfo {
	t.Helper()
	f, err := models.NewFileInfo(name, path)
	require.NoError(t, err)
	return f
}

func TestFixtureProvider_CannedContent(t *testing.T) {
	p := NewFixtureProvider()
	ctx := context.Background()

	index, err := p.Get(ctx, "akina-zzz", fileInfo(t, "index.html", "/templates/index.html"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(index, "<!DOCTYPE html>"))
	assert.Contains(t, index, "<html")

	css, err := p.Get(ctx, "akina-zzz", fileInfo(t, "style.css", "/assets/css/style.css"))
	require.NoError(t, err)
	assert.Contains(t, css, "--primary-color: #4CCBA0;")

	js, err := p.Get(ctx, "akina-zzz", fileInfo(t, "script.js", "/assets/js/script.js"))
	require.NoError(t, err)
	assert.Contains(t, js, "class InfoFlowTheme")
	assert.Contains(t, js, "${post.heat}")

	yaml, err := p.Get(ctx, "akina-zzz", fileInfo(t, "theme.yaml", "/theme.yaml"))
	require.NoError(t, err)
	d, err := models.ParseDescriptor([]byte(yaml))
	require.NoError(t, err)
	assert.Equal(t, "akina-zzz", d.Metadata.Name)
}

func TestFixtureProvider_Placeholder(t *testing.T) {
	p := NewFixtureProvider()

	content, err := p.Get(context.Background(), "akina-zzz", fileInfo(t, "post.html", "/templates/post.html"))
	require.NoError(t, err)
	assert.Equal(t, "// post.html 文件内容\n// 这里应该包含 post.html 的实际内容", content)
	assert.Contains(t, content, "post.html")
}

func TestFixtureProvider_PutShadowsCanned(t *testing.T) {
	p := NewFixtureProvider()
	ctx := context.Background()
	f := fileInfo(t, "style.css", "/assets/css/style.css")

	require.NoError(t, p.Put(ctx, "akina-zzz", f, "a{}"))
	got, err := p.Get(ctx, "akina-zzz", f)
	require.NoError(t, err)
	assert.Equal(t, "a{}", got)
}

func TestDirectoryProvider(t *testing.T) {
	sb, err := storage.NewSandbox(t.TempDir())
	require.NoError(t, err)
	p := NewDirectoryProvider(sb)
	ctx := context.Background()
	f := fileInfo(t, "index.html", "/templates/index.html")

	_, err = p.Get(ctx, "akina-zzz", f)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, p.Put(ctx, "akina-zzz", f, "<html></html>"))
	data, err := os.ReadFile(filepath.Join(p.Root(), "templates", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	got, err := p.Get(ctx, "akina-zzz", f)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", got)

	escape := models.FileInfo{Name: "x.html", Type: models.FileTypeTemplate, Path: "../x.html"}
	assert.Error(t, p.Put(ctx, "akina-zzz", escape, "x"))
}

func TestRemoteProvider(t *testing.T) {
	var mu sync.Mutex
	files := map[string]string{"/themes/akina-zzz/files/assets/css/style.css": "body {}"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			content, ok := files[r.URL.Path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			io.WriteString(w, content)
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			files[r.URL.Path] = string(body)
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	cfg := config.ThemeConfig{
		Provider:    config.ProviderRemote,
		MaxFileSize: config.Megabyte,
		Remote:      config.RemoteConfig{BaseURL: server.URL, Token: "tok", Timeout: time.Second},
	}
	p, err := New(cfg, Dependencies{})
	require.NoError(t, err)
	assert.Equal(t, "remote", p.Name())
	ctx := context.Background()

	got, err := p.Get(ctx, "akina-zzz", fileInfo(t, "style.css", "/assets/css/style.css"))
	require.NoError(t, err)
	assert.Equal(t, "body {}", got)

	_, err = p.Get(ctx, "akina-zzz", fileInfo(t, "post.html", "/templates/post.html"))
	assert.ErrorIs(t, err, models.ErrNotFound)

	f := fileInfo(t, "script.js", "/assets/js/script.js")
	require.NoError(t, p.Put(ctx, "akina-zzz", f, "function a() {}"))
	got, err = p.Get(ctx, "akina-zzz", f)
	require.NoError(t, err)
	assert.Equal(t, "function a() {}", got)
}

func TestRemoteProvider_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	clientCfg := httpclient.DefaultConfig()
	clientCfg.RetryAttempts = 0
	p, err := NewRemoteProvider(url, httpclient.New(clientCfg))
	require.NoError(t, err)

	_, err = p.Get(context.Background(), "akina-zzz", fileInfo(t, "index.html", "/templates/index.html"))
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
}

func TestNewRemoteProvider_InvalidURL(t *testing.T) {
	_, err := NewRemoteProvider("ftp://example.com", httpclient.NewWithDefaults())
	assert.Error(t, err)
}

func TestDatabaseProvider(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.ThemeFile{}))

	p, err := New(config.ThemeConfig{Provider: config.ProviderDatabase}, Dependencies{
		Files: repository.NewThemeFileRepository(db),
	})
	require.NoError(t, err)
	ctx := context.Background()
	f := fileInfo(t, "post.html", "/templates/post.html")

	got, err := p.Get(ctx, "akina-zzz", f)
	require.NoError(t, err)
	assert.Equal(t, Placeholder("post.html"), got)

	require.NoError(t, p.Put(ctx, "akina-zzz", f, "<html>post</html>"))
	got, err = p.Get(ctx, "akina-zzz", f)
	require.NoError(t, err)
	assert.Equal(t, "<html>post</html>", got)
}

func TestNew_Selection(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.ThemeConfig
		deps     Dependencies
		wantName string
		wantErr  bool
	}{
		{"fixture", config.ThemeConfig{Provider: config.ProviderFixture}, Dependencies{}, "fixture", false},
		{"empty defaults to fixture", config.ThemeConfig{}, Dependencies{}, "fixture", false},
		{"directory", config.ThemeConfig{Provider: config.ProviderDirectory, WorkspaceDir: t.TempDir()}, Dependencies{}, "directory", false},
		{"database without repo", config.ThemeConfig{Provider: config.ProviderDatabase}, Dependencies{}, "", true},
		{"unknown", config.ThemeConfig{Provider: "ftp"}, Dependencies{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.cfg, tt.deps)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}
