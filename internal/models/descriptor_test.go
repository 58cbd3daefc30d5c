package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDescriptor = `apiVersion: theme.halo.run/v1alpha1
kind: Theme
metadata:
  name: akina-zzz
spec:
  displayName: Akina ZZZ 信息流主题
  version: 1.0.0
  author:
    name: Akina Team
    website: https://www.akina.run
  logo: /assets/images/logo.png
  license:
    - name: MIT
      url: https://opensource.org/licenses/MIT
  requires: ">=2.0.0"
  customTemplates:
    post:
      - name: 信息流布局
        file: post-infoflow.html
  templates:
    - name: index
      file: index.html
`

func TestParseDescriptor(t *testing.T) {
	d, err := ParseDescriptor([]byte(sampleDescriptor))
	require.NoError(t, err)

	assert.Equal(t, DescriptorAPIVersion, d.APIVersion)
	assert.Equal(t, DescriptorKind, d.Kind)
	assert.Equal(t, "akina-zzz", d.Metadata.Name)
	assert.Equal(t, "1.0.0", d.Spec.Version)
	assert.Equal(t, "Akina Team", d.Spec.Author.Name)
	assert.Equal(t, ">=2.0.0", d.Spec.Requires)
	require.Len(t, d.Spec.License, 1)
	assert.Equal(t, "MIT", d.Spec.License[0].Name)
	require.Len(t, d.Spec.CustomTemplates.Post, 1)
	assert.Equal(t, "post-infoflow.html", d.Spec.CustomTemplates.Post[0].File)
	assert.Equal(t, []TemplateRef{{Name: "index", File: "index.html"}}, d.Spec.Templates)
}

func TestParseDescriptor_Invalid(t *testing.T) {
	_, err := ParseDescriptor([]byte("spec: [broken"))
	assert.Error(t, err)
}

func TestDescriptorFromConfig(t *testing.T) {
	cfg := DefaultThemeConfig()
	d := DescriptorFromConfig(cfg)

	assert.Equal(t, "akina-zzz", d.Metadata.Name)
	assert.Equal(t, "akina-zzz-setting", d.Spec.SettingName)
	assert.Equal(t, "akina-zzz-config", d.Spec.ConfigMapName)
	assert.Len(t, d.Spec.Templates, 6)
	assert.Len(t, d.Spec.Assets, 3)

	data, err := MarshalDescriptor(d)
	require.NoError(t, err)

	parsed, err := ParseDescriptor(data)
	require.NoError(t, err)
	assert.Equal(t, d, parsed)

	applied := parsed.ApplyTo(ThemeConfig{Colors: cfg.Colors, Settings: cfg.Settings})
	assert.Equal(t, cfg, applied)
}

func TestThemeDescriptor_UpdateFrom(t *testing.T) {
	d, err := ParseDescriptor([]byte(sampleDescriptor))
	require.NoError(t, err)

	cfg := DefaultThemeConfig()
	cfg.Name = "akina-next"
	cfg.Version = "2.1.0"
	d.UpdateFrom(cfg)

	assert.Equal(t, "akina-next", d.Metadata.Name)
	assert.Equal(t, "2.1.0", d.Spec.Version)
	assert.Equal(t, cfg.Description, d.Spec.Description)
	assert.Equal(t, "/assets/images/logo.png", d.Spec.Logo)
	assert.Equal(t, ">=2.0.0", d.Spec.Requires)

	empty := &ThemeDescriptor{}
	empty.UpdateFrom(cfg)
	assert.Equal(t, DescriptorAPIVersion, empty.APIVersion)
	assert.Equal(t, DescriptorKind, empty.Kind)
}
