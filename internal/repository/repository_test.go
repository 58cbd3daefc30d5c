package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupThemeTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.ThemeConfigRecord{}, &models.ThemeFile{}, &models.ThemeSnapshot{})
	require.NoError(t, err)

	return db
}

func TestThemeConfigRepo_SaveAndGet(t *testing.T) {
	repo := NewThemeConfigRepository(setupThemeTestDB(t))
	ctx := context.Background()

	missing, err := repo.GetByName(ctx, "akina-zzz")
	require.NoError(t, err)
	assert.Nil(t, missing)

	cfg := models.DefaultThemeConfig()
	created, err := repo.Save(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	cfg.DisplayName = "Renamed"
	cfg.Colors.Primary = "#fff"
	updated, err := repo.Save(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := repo.GetByName(ctx, "akina-zzz")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Renamed", got.Config.DisplayName)
	assert.Equal(t, "#fff", got.Config.Colors.Primary)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, "akina-zzz"))
	got, err = repo.GetByName(ctx, "akina-zzz")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestThemeFileRepo_Upsert(t *testing.T) {
	repo := NewThemeFileRepository(setupThemeTestDB(t))
	ctx := context.Background()

	file := &models.ThemeFile{
		ThemeName: "akina-zzz",
		Name:      "style.css",
		Type:      models.FileTypeStyle,
		Path:      "/assets/css/style.css",
		Content:   "body {}",
	}
	require.NoError(t, repo.Upsert(ctx, file))
	assert.Equal(t, int64(7), file.Size)

	require.NoError(t, repo.Upsert(ctx, &models.ThemeFile{
		ThemeName: "akina-zzz",
		Name:      "style.css",
		Type:      models.FileTypeStyle,
		Path:      "/assets/css/style.css",
		Content:   "body { color: red; }",
	}))

	got, err := repo.Get(ctx, "akina-zzz", "style.css")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "body { color: red; }", got.Content)
	assert.Equal(t, int64(len("body { color: red; }")), got.Size)

	files, err := repo.List(ctx, "akina-zzz")
	require.NoError(t, err)
	assert.Len(t, files, 1)

	info := got.Info()
	require.True(t, info.Loaded())
	assert.Equal(t, "body { color: red; }", *info.Content)
}

func TestThemeFileRepo_GetMissing(t *testing.T) {
	repo := NewThemeFileRepository(setupThemeTestDB(t))

	got, err := repo.Get(context.Background(), "akina-zzz", "nope.html")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestThemeFileRepo_ScopedByTheme(t *testing.T) {
	repo := NewThemeFileRepository(setupThemeTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.ThemeFile{ThemeName: "a", Name: "index.html", Type: models.FileTypeTemplate}))
	require.NoError(t, repo.Upsert(ctx, &models.ThemeFile{ThemeName: "b", Name: "index.html", Type: models.FileTypeTemplate}))

	files, err := repo.List(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, files, 1)

	require.NoError(t, repo.Delete(ctx, "a", "index.html"))
	got, err := repo.Get(ctx, "b", "index.html")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestThemeSnapshotRepo(t *testing.T) {
	repo := NewThemeSnapshotRepository(setupThemeTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateBatch(ctx, nil))
	require.NoError(t, repo.CreateBatch(ctx, []*models.ThemeSnapshot{
		{ThemeName: "akina-zzz", Kind: models.SnapshotFile, Name: "style.css", Content: "v1", TakenAt: base},
		{ThemeName: "akina-zzz", Kind: models.SnapshotFile, Name: "style.css", Content: "v2", TakenAt: base.Add(time.Minute)},
		{ThemeName: "akina-zzz", Kind: models.SnapshotConfig, Name: "akina-zzz", Content: "{}", TakenAt: base.Add(2 * time.Minute)},
	}))

	latest, err := repo.Latest(ctx, "akina-zzz", models.SnapshotFile, "style.css")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "v2", latest.Content)

	none, err := repo.Latest(ctx, "akina-zzz", models.SnapshotFile, "other.css")
	require.NoError(t, err)
	assert.Nil(t, none)

	recent, err := repo.ListRecent(ctx, "akina-zzz", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, models.SnapshotConfig, recent[0].Kind)

	removed, err := repo.DeleteOlderThan(ctx, base.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
