package service

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hmwm/akina-halo/internal/content"
	"github.com/hmwm/akina-halo/internal/models"
)

// FileRegistry holds the theme files of the session in insertion order.
// Content is loaded lazily through the provider on first Open.
type FileRegistry struct {
	mu       sync.RWMutex
	order    []string
	files    map[string]*models.FileInfo
	dirty    map[string]bool
	current  string
	provider content.Provider
	theme    func() string
	now      func() time.Time
}

// NewFileRegistry creates a registry seeded with files. theme returns the
// name of the theme whose content the provider should serve.
func NewFileRegistry(provider content.Provider, theme func() string, files []models.FileInfo) *FileRegistry {
	r := &FileRegistry{
		files:    make(map[string]*models.FileInfo, len(files)),
		dirty:    make(map[string]bool),
		provider: provider,
		theme:    theme,
		now:      time.Now,
	}
	for _, f := range files {
		f := f
		if _, exists := r.files[f.Name]; exists {
			continue
		}
		r.order = append(r.order, f.Name)
		r.files[f.Name] = &f
	}
	return r
}

// List returns copies of every registered file in insertion order.
func (r *FileRegistry) List() []models.FileInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.FileInfo, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, copyFileInfo(r.files[name]))
	}
	return out
}

// Get returns the file registered as name.
func (r *FileRegistry) Get(name string) (models.FileInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.files[name]
	if !ok {
		return models.FileInfo{}, false
	}
	return copyFileInfo(f), true
}

// Add registers a new file. The type is derived from the extension of name.
// An empty filePath places the file in the default directory for its type.
func (r *FileRegistry) Add(name, filePath string) (models.FileInfo, error) {
	if filePath == "" {
		filePath = DefaultPath(name)
	}
	f, err := models.NewFileInfo(name, filePath)
	if err != nil {
		return models.FileInfo{}, fmt.Errorf("adding %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.files[name]; exists {
		return models.FileInfo{}, fmt.Errorf("adding %s: %w", name, models.ErrDuplicateFile)
	}
	r.order = append(r.order, name)
	r.files[name] = &f
	return copyFileInfo(&f), nil
}

// Remove unregisters name. Removing the current file clears the selection.
func (r *FileRegistry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.files[name]; !exists {
		return fmt.Errorf("removing %s: %w", name, models.ErrNotFound)
	}
	delete(r.files, name)
	delete(r.dirty, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.current == name {
		r.current = ""
	}
	return nil
}

// SetCurrent marks name as the file open in the editor.
func (r *FileRegistry) SetCurrent(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.files[name]; !exists {
		return fmt.Errorf("selecting %s: %w", name, models.ErrNotFound)
	}
	r.current = name
	return nil
}

// Current returns the name of the open file, or "" when none is selected.
func (r *FileRegistry) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Match returns the files whose path matches the doublestar pattern,
// e.g. "/templates/**/*.html".
func (r *FileRegistry) Match(pattern string) ([]models.FileInfo, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.FileInfo, 0)
	for _, name := range r.order {
		f := r.files[name]
		if ok, _ := doublestar.Match(pattern, f.Path); ok {
			out = append(out, copyFileInfo(f))
		}
	}
	return out, nil
}

// Open returns the content of name, fetching it through the provider the
// first time. Later calls return the cached content.
func (r *FileRegistry) Open(ctx context.Context, name string) (string, error) {
	r.mu.RLock()
	f, ok := r.files[name]
	var info models.FileInfo
	if ok {
		info = copyFileInfo(f)
	}
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("opening %s: %w", name, models.ErrNotFound)
	}
	if info.Content != nil {
		return *info.Content, nil
	}

	text, err := r.provider.Get(ctx, r.theme(), info)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.files[name]; ok {
		if f.Content != nil {
			// Saved while the fetch was in flight.
			return *f.Content, nil
		}
		size := int64(len(text))
		f.Content = &text
		f.Size = &size
	}
	return text, nil
}

// SetContent stores content on name and records its size and modification time.
// The file is marked dirty until MarkClean.
func (r *FileRegistry) SetContent(name, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.files[name]
	if !ok {
		return fmt.Errorf("updating %s: %w", name, models.ErrNotFound)
	}
	size := int64(len(text))
	modified := r.now()
	f.Content = &text
	f.Size = &size
	f.LastModified = &modified
	r.dirty[name] = true
	return nil
}

// Invalidate drops the cached content of name so the next Open refetches it.
func (r *FileRegistry) Invalidate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.files[name]; ok && !r.dirty[name] {
		f.Content = nil
		f.Size = nil
	}
}

// FindByPath returns the file registered at filePath. Paths compare without
// the leading slash.
func (r *FileRegistry) FindByPath(filePath string) (models.FileInfo, bool) {
	want := path.Clean("/" + filePath)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.order {
		f := r.files[name]
		if path.Clean("/"+f.Path) == want {
			return copyFileInfo(f), true
		}
	}
	return models.FileInfo{}, false
}

// Dirty returns the files changed since they were last marked clean.
func (r *FileRegistry) Dirty() []models.FileInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.FileInfo, 0, len(r.dirty))
	for _, name := range r.order {
		if r.dirty[name] {
			out = append(out, copyFileInfo(r.files[name]))
		}
	}
	return out
}

// MarkClean clears the dirty flag of files whose registered content still
// equals the content in the given copy. Files saved again since stay dirty.
func (r *FileRegistry) MarkClean(files ...models.FileInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, saved := range files {
		f, ok := r.files[saved.Name]
		if !ok || saved.Content == nil || f.Content == nil || *f.Content != *saved.Content {
			continue
		}
		delete(r.dirty, saved.Name)
	}
}

// DefaultPath returns where a file named name lives in the standard theme layout.
func DefaultPath(name string) string {
	t, _ := models.ClassifyFile(name)
	switch t {
	case models.FileTypeTemplate:
		return "/templates/" + name
	case models.FileTypeStyle:
		return "/assets/css/" + name
	case models.FileTypeScript:
		return "/assets/js/" + name
	default:
		return "/" + name
	}
}

func copyFileInfo(f *models.FileInfo) models.FileInfo {
	out := *f
	if f.Content != nil {
		c := *f.Content
		out.Content = &c
	}
	if f.Size != nil {
		s := *f.Size
		out.Size = &s
	}
	if f.LastModified != nil {
		m := *f.LastModified
		out.LastModified = &m
	}
	return out
}
