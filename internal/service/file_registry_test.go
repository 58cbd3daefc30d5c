package service

import (
	"context"
	"testing"

	"github.com/hmwm/akina-halo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRegistry(t *testing.T) (*FileRegistry, *countingProvider) {
	t.Helper()
	provider := newCountingProvider()
	return NewFileRegistry(provider, func() string { return "akina-zzz" }, models.DefaultFiles()), provider
}

func fileNames(files []models.FileInfo) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names
}

func TestFileRegistry_SeededInOrder(t *testing.T) {
	r, _ := setupRegistry(t)

	assert.Equal(t, []string{
		"index.html", "post.html", "page.html", "category.html", "tag.html",
		"archive.html", "style.css", "script.js", "theme.yaml",
	}, fileNames(r.List()))

	f, ok := r.Get("script.js")
	require.True(t, ok)
	assert.Equal(t, models.FileTypeScript, f.Type)
	assert.Equal(t, "/assets/js/script.js", f.Path)
	assert.False(t, f.Loaded())
}

func TestFileRegistry_Add(t *testing.T) {
	r, _ := setupRegistry(t)

	f, err := r.Add("search.html", "")
	require.NoError(t, err)
	assert.Equal(t, models.FileTypeTemplate, f.Type)
	assert.Equal(t, "/templates/search.html", f.Path)
	assert.Equal(t, "search.html", r.List()[len(r.List())-1].Name)

	f, err = r.Add("dark.scss", "/assets/scss/dark.scss")
	require.NoError(t, err)
	assert.Equal(t, models.FileTypeStyle, f.Type)
	assert.Equal(t, "/assets/scss/dark.scss", f.Path)

	_, err = r.Add("index.html", "")
	assert.ErrorIs(t, err, models.ErrDuplicateFile)

	_, err = r.Add("logo.png", "")
	assert.ErrorIs(t, err, models.ErrUnsupportedFileType)
}

func TestFileRegistry_RemoveAndCurrent(t *testing.T) {
	r, _ := setupRegistry(t)

	assert.Equal(t, "", r.Current())
	require.NoError(t, r.SetCurrent("post.html"))
	assert.Equal(t, "post.html", r.Current())
	assert.ErrorIs(t, r.SetCurrent("missing.html"), models.ErrNotFound)

	require.NoError(t, r.Remove("post.html"))
	assert.Equal(t, "", r.Current())
	_, ok := r.Get("post.html")
	assert.False(t, ok)
	assert.Len(t, r.List(), 8)

	assert.ErrorIs(t, r.Remove("post.html"), models.ErrNotFound)
}

func TestFileRegistry_Match(t *testing.T) {
	r, _ := setupRegistry(t)
	_, err := r.Add("card.html", "/templates/partials/card.html")
	require.NoError(t, err)

	templates, err := r.Match("/templates/**/*.html")
	require.NoError(t, err)
	assert.Len(t, templates, 7)

	partials, err := r.Match("/templates/partials/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"card.html"}, fileNames(partials))

	assets, err := r.Match("/assets/**")
	require.NoError(t, err)
	assert.Equal(t, []string{"style.css", "script.js"}, fileNames(assets))

	_, err = r.Match("/templates/[")
	assert.Error(t, err)
}

func TestFileRegistry_OpenCaches(t *testing.T) {
	r, provider := setupRegistry(t)
	ctx := context.Background()

	first, err := r.Open(ctx, "style.css")
	require.NoError(t, err)
	second, err := r.Open(ctx, "style.css")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), provider.gets.Load())

	f, _ := r.Get("style.css")
	assert.True(t, f.Loaded())
	assert.Equal(t, int64(len(first)), *f.Size)

	_, err = r.Open(ctx, "missing.css")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFileRegistry_DirtyTracking(t *testing.T) {
	r, _ := setupRegistry(t)

	require.NoError(t, r.SetContent("style.css", "a{}"))
	require.NoError(t, r.SetContent("index.html", "<html>"))
	assert.ErrorIs(t, r.SetContent("missing.css", ""), models.ErrNotFound)

	dirty := r.Dirty()
	assert.Equal(t, []string{"index.html", "style.css"}, fileNames(dirty))

	// A save after the snapshot keeps the file dirty.
	require.NoError(t, r.SetContent("style.css", "b{}"))
	r.MarkClean(dirty...)
	assert.Equal(t, []string{"style.css"}, fileNames(r.Dirty()))

	// Dirty files keep their content when invalidated.
	r.Invalidate("style.css")
	f, _ := r.Get("style.css")
	assert.Equal(t, "b{}", *f.Content)

	r.MarkClean(f)
	assert.Empty(t, r.Dirty())
	r.Invalidate("style.css")
	f, _ = r.Get("style.css")
	assert.Nil(t, f.Content)
}

func TestFileRegistry_CopiesAreIsolated(t *testing.T) {
	r, _ := setupRegistry(t)
	require.NoError(t, r.SetContent("style.css", "a{}"))

	f, _ := r.Get("style.css")
	*f.Content = "mutated"

	again, _ := r.Get("style.css")
	assert.Equal(t, "a{}", *again.Content)
}

func TestFileRegistry_FindByPath(t *testing.T) {
	r, _ := setupRegistry(t)

	f, ok := r.FindByPath("templates/index.html")
	require.True(t, ok)
	assert.Equal(t, "index.html", f.Name)

	f, ok = r.FindByPath("/theme.yaml")
	require.True(t, ok)
	assert.Equal(t, "theme.yaml", f.Name)

	_, ok = r.FindByPath("templates/other.html")
	assert.False(t, ok)
}

func TestDefaultPath(t *testing.T) {
	tests := map[string]string{
		"about.html":    "/templates/about.html",
		"dark.css":      "/assets/css/dark.css",
		"app.ts":        "/assets/js/app.ts",
		"settings.yaml": "/settings.yaml",
		"notes.txt":     "/notes.txt",
	}
	for name, want := range tests {
		assert.Equal(t, want, DefaultPath(name), name)
	}
}
