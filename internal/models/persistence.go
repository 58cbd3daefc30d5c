package models

import "time"

// ThemeConfigRecord persists the saved configuration of a theme.
type ThemeConfigRecord struct {
	BaseModel
	Name   string      `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Config ThemeConfig `gorm:"serializer:json;type:text" json:"config"`
}

// TableName returns the table name for ThemeConfigRecord.
func (ThemeConfigRecord) TableName() string {
	return "theme_configs"
}

// ThemeFile persists the content of one theme asset.
type ThemeFile struct {
	BaseModel
	ThemeName string   `gorm:"uniqueIndex:idx_theme_file;size:128;not null" json:"theme_name"`
	Name      string   `gorm:"uniqueIndex:idx_theme_file;size:255;not null" json:"name"`
	Type      FileType `gorm:"size:16;not null" json:"type"`
	Path      string   `gorm:"size:1024" json:"path"`
	Content   string   `gorm:"type:text" json:"content"`
	Size      int64    `json:"size"`
}

// TableName returns the table name for ThemeFile.
func (ThemeFile) TableName() string {
	return "theme_files"
}

// Info converts the record into a registry FileInfo.
func (f *ThemeFile) Info() FileInfo {
	content := f.Content
	size := f.Size
	modified := f.UpdatedAt
	return FileInfo{
		Name:         f.Name,
		Type:         f.Type,
		Path:         f.Path,
		Content:      &content,
		LastModified: &modified,
		Size:         &size,
	}
}

// SnapshotKind distinguishes what a ThemeSnapshot captured.
type SnapshotKind string

const (
	SnapshotConfig SnapshotKind = "config"
	SnapshotFile   SnapshotKind = "file"
)

// ThemeSnapshot is an autosaved copy of a config or file.
type ThemeSnapshot struct {
	BaseModel
	ThemeName string       `gorm:"index;size:128;not null" json:"theme_name"`
	Kind      SnapshotKind `gorm:"size:16;not null" json:"kind"`
	Name      string       `gorm:"size:255" json:"name"`
	Content   string       `gorm:"type:text" json:"content"`
	TakenAt   time.Time    `gorm:"index" json:"taken_at"`
}

// TableName returns the table name for ThemeSnapshot.
func (ThemeSnapshot) TableName() string {
	return "theme_snapshots"
}
