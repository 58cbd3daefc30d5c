package content

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/hmwm/akina-halo/internal/models"
)

//go:embed fixtures
var fixtureFS embed.FS

// fixtureFiles are the files with canned content.
var fixtureFiles = []string{"index.html", "style.css", "script.js", "theme.yaml"}

// FixtureProvider serves canned content for the starter theme.
// Saved content is kept in memory and shadows the canned text.
type FixtureProvider struct {
	mu     sync.RWMutex
	canned map[string]string
	saved  map[string]string
}

// NewFixtureProvider loads the embedded fixtures.
func NewFixtureProvider() *FixtureProvider {
	canned := make(map[string]string, len(fixtureFiles))
	for _, name := range fixtureFiles {
		data, err := fixtureFS.ReadFile("fixtures/" + name)
		if err != nil {
			panic(fmt.Sprintf("missing embedded fixture %s: %v", name, err))
		}
		canned[name] = string(data)
	}
	return &FixtureProvider{canned: canned, saved: make(map[string]string)}
}

// Name implements Provider.
func (p *FixtureProvider) Name() string { return "fixture" }

// Get returns the saved or canned content, or a placeholder naming the file.
func (p *FixtureProvider) Get(_ context.Context, _ string, file models.FileInfo) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if content, ok := p.saved[file.Name]; ok {
		return content, nil
	}
	if content, ok := p.canned[file.Name]; ok {
		return content, nil
	}
	return Placeholder(file.Name), nil
}

// Put implements Provider.
func (p *FixtureProvider) Put(_ context.Context, _ string, file models.FileInfo, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved[file.Name] = content
	return nil
}

// Placeholder is the content served for files without canned text.
func Placeholder(name string) string {
	return fmt.Sprintf("// %s 文件内容\n// 这里应该包含 %s 的实际内容", name, name)
}
