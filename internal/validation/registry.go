package validation

import (
	"strings"
	"sync"

	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/models"
)

// Registry selects a file Validator by extension.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
	fallback   Validator
}

// NewRegistry creates an empty registry that accepts every file.
func NewRegistry() *Registry {
	return &Registry{
		validators: make(map[string]Validator),
		fallback:   NoopValidator{},
	}
}

// NewDefaultRegistry registers the built-in heuristics:
// html and htm, css, js, yaml and yml. Other extensions are not checked.
func NewDefaultRegistry(l *i18n.Localizer) *Registry {
	r := NewRegistry()
	template := NewTemplateValidator(l)
	config := NewConfigValidator(l)

	r.Register("html", template)
	r.Register("htm", template)
	r.Register("css", NewStyleValidator(l))
	r.Register("js", NewScriptValidator(l))
	r.Register("yaml", config)
	r.Register("yml", config)
	return r
}

// Register binds v to ext. The extension is matched case-insensitively,
// with or without a leading dot.
func (r *Registry) Register(ext string, v Validator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[normalizeExt(ext)] = v
}

// For returns the validator for fileName.
func (r *Registry) For(fileName string) Validator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.validators[models.Extension(fileName)]; ok {
		return v
	}
	return r.fallback
}

// Validate runs the validator selected for fileName against content.
func (r *Registry) Validate(fileName, content string) models.ValidationResult {
	return r.For(fileName).Validate(content)
}

func normalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}
