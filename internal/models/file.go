package models

import (
	"path"
	"strings"
	"time"
)

// FileType classifies a theme asset by its extension.
type FileType string

const (
	FileTypeTemplate FileType = "template"
	FileTypeStyle    FileType = "style"
	FileTypeScript   FileType = "script"
	FileTypeConfig   FileType = "config"
)

// FileExtensions maps a lowercase extension, including the dot, to its classification.
var FileExtensions = map[string]FileType{
	".html": FileTypeTemplate,
	".htm":  FileTypeTemplate,
	".css":  FileTypeStyle,
	".scss": FileTypeStyle,
	".sass": FileTypeStyle,
	".js":   FileTypeScript,
	".ts":   FileTypeScript,
	".yaml": FileTypeConfig,
	".yml":  FileTypeConfig,
	".json": FileTypeConfig,
}

// Extension returns the lowercase final extension of name without the dot.
// A name without a dot yields an empty string.
func Extension(name string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
}

// ClassifyFile derives the FileType of name from its extension.
func ClassifyFile(name string) (FileType, bool) {
	t, ok := FileExtensions[strings.ToLower(path.Ext(name))]
	return t, ok
}

// LanguageFor returns the editor language for name, or "plaintext".
func LanguageFor(name string) string {
	if lang, ok := LanguageMap[Extension(name)]; ok {
		return lang
	}
	return "plaintext"
}

// FileInfo describes one editable theme asset.
type FileInfo struct {
	Name         string     `json:"name"`
	Type         FileType   `json:"type"`
	Path         string     `json:"path"`
	Content      *string    `json:"content,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty"`
	Size         *int64     `json:"size,omitempty"`
}

// NewFileInfo creates a FileInfo whose type is derived from name.
func NewFileInfo(name, filePath string) (FileInfo, error) {
	t, ok := ClassifyFile(name)
	if !ok {
		return FileInfo{}, ErrUnsupportedFileType
	}
	return FileInfo{Name: name, Type: t, Path: filePath}, nil
}

// Loaded reports whether the file content has been fetched or saved.
func (f FileInfo) Loaded() bool {
	return f.Content != nil
}

// DefaultFiles returns the assets a new development session is seeded with.
func DefaultFiles() []FileInfo {
	return []FileInfo{
		{Name: "index.html", Type: FileTypeTemplate, Path: "/templates/index.html"},
		{Name: "post.html", Type: FileTypeTemplate, Path: "/templates/post.html"},
		{Name: "page.html", Type: FileTypeTemplate, Path: "/templates/page.html"},
		{Name: "category.html", Type: FileTypeTemplate, Path: "/templates/category.html"},
		{Name: "tag.html", Type: FileTypeTemplate, Path: "/templates/tag.html"},
		{Name: "archive.html", Type: FileTypeTemplate, Path: "/templates/archive.html"},
		{Name: "style.css", Type: FileTypeStyle, Path: "/assets/css/style.css"},
		{Name: "script.js", Type: FileTypeScript, Path: "/assets/js/script.js"},
		{Name: "theme.yaml", Type: FileTypeConfig, Path: "/theme.yaml"},
	}
}
