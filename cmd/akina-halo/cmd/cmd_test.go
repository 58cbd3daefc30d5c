package cmd

import (
	"bytes"
	"testing"
	"testing/fstest"
	"time"

	"github.com/hmwm/akina-halo/internal/config"
	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTree(t *testing.T) {
	msg := i18n.New("en")
	fsys := fstest.MapFS{
		"theme.yaml": {Data: []byte(`apiVersion: theme.halo.run/v1alpha1
kind: Theme
metadata:
  name: akina-zzz
spec:
  displayName: Akina
  version: 1.0.0
  requires: ">=2.0.0"
`)},
		"templates/index.html":      {Data: []byte("<!DOCTYPE html><html><body></body></html>")},
		"templates/modules/nav.htm": {Data: []byte("<nav></nav>")},
		"assets/css/style.css":      {Data: []byte("body { color: red; }")},
		"assets/js/main.js":         {Data: []byte("function init() {}")},
		"templates/ARCHIVE.HTML":    {Data: []byte("<HTML></HTML>")},
		"README.md":                 {Data: []byte("not checked")},
	}

	var out bytes.Buffer
	failed, err := validateTree(&out, fsys, validation.NewDefaultRegistry(msg),
		validation.NewDescriptorValidator(msg, "2.20.0"))
	require.NoError(t, err)

	assert.Equal(t, 2, failed)
	assert.Contains(t, out.String(), "FAIL templates/modules/nav.htm")
	assert.Contains(t, out.String(), "FAIL templates/ARCHIVE.HTML", "upper-case extensions are checked")
	assert.Contains(t, out.String(), "ok   theme.yaml")
	assert.Contains(t, out.String(), "6 file(s) checked, 2 with errors")
	assert.NotContains(t, out.String(), "README.md")
}

func TestToMap(t *testing.T) {
	m := toMap(&config.Config{
		Server: config.ServerConfig{Port: 8090, ReadTimeout: 30 * time.Second},
		Theme: config.ThemeConfig{
			MaxFileSize: 10 * config.Megabyte,
			Autosave:    config.AutosaveConfig{Schedule: "*/5 * * * * *"},
		},
	})

	server := m["server"].(map[string]any)
	assert.Equal(t, 8090, server["port"])
	assert.Equal(t, "30s", server["read_timeout"])

	theme := m["theme"].(map[string]any)
	assert.Equal(t, "10MB", theme["max_file_size"])
	assert.Equal(t, "*/5 * * * * *", theme["autosave"].(map[string]any)["schedule"])
}
