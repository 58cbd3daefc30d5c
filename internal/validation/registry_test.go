package validation

import (
	"testing"

	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDefaultRegistry_Validate(t *testing.T) {
	r := NewDefaultRegistry(i18n.New("en"))

	tests := []struct {
		name     string
		file     string
		content  string
		numError int
	}{
		{"html missing root", "page.html", "<body></body>", 1},
		{"html with root", "page.html", "<html></html>", 0},
		{"htm missing root", "legacy.htm", "<body></body>", 1},
		{"html extension case insensitive", "PAGE.HTML", "<body></body>", 1},
		{"css unclosed", "a.css", "body { color: red;", 1},
		{"css closed", "a.css", "body { color: red; }", 0},
		{"css closing brace anywhere passes", "a.css", "a { b { c }", 0},
		{"css without braces", "a.css", "/* empty */", 0},
		{"js function without brace", "a.js", "function", 1},
		{"js function with brace", "a.js", "function f() {}", 0},
		{"js no function", "a.js", "const x = 1", 0},
		{"yaml colon without space", "theme.yaml", "name:akina", 1},
		{"yaml normal", "theme.yaml", "name: akina", 0},
		{"yml colon without space", "theme.yml", "a:b", 1},
		{"yaml without colon", "theme.yaml", "akina", 0},
		{"scss is not checked", "a.scss", "body {", 0},
		{"ts is not checked", "a.ts", "function", 0},
		{"json is not checked", "a.json", "a:b", 0},
		{"unknown extension", "unknown.xyz", "anything", 0},
		{"no extension", "html", "<body>", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Validate(tt.file, tt.content)
			assert.Len(t, result.Errors, tt.numError)
			assert.Equal(t, tt.numError == 0, result.Valid)
			assert.Empty(t, result.Warnings)
		})
	}
}

func TestRegistry_For(t *testing.T) {
	r := NewDefaultRegistry(i18n.New("en"))

	assert.Equal(t, "template", r.For("index.html").Name())
	assert.Equal(t, "template", r.For("index.htm").Name())
	assert.Equal(t, "style", r.For("style.css").Name())
	assert.Equal(t, "script", r.For("script.js").Name())
	assert.Equal(t, "config", r.For("theme.YML").Name())
	assert.Equal(t, "noop", r.For("logo.png").Name())
	assert.Equal(t, "noop", r.For("html").Name(), "a name without a dot is not checked")
	assert.True(t, r.Validate("html", "no markup").Valid)
}

type rejectAll struct{}

func (rejectAll) Name() string { return "reject" }

func (rejectAll) Validate(string) models.ValidationResult {
	return models.NewValidationResult([]string{"rejected"}, nil)
}

func TestRegistry_RegisterOverrides(t *testing.T) {
	r := NewDefaultRegistry(i18n.New("en"))
	r.Register(".SCSS", rejectAll{})

	assert.Equal(t, "reject", r.For("theme.scss").Name())
	assert.False(t, r.Validate("theme.scss", "").Valid)
}
