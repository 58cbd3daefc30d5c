package models

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Descriptor identity expected by the theme-hosting platform.
const (
	DescriptorAPIVersion = "theme.halo.run/v1alpha1"
	DescriptorKind       = "Theme"
	DescriptorFileName   = "theme.yaml"
)

// ThemeDescriptor is the theme.yaml manifest consumed by the hosting platform.
type ThemeDescriptor struct {
	APIVersion string             `yaml:"apiVersion" json:"apiVersion"`
	Kind       string             `yaml:"kind" json:"kind"`
	Metadata   DescriptorMetadata `yaml:"metadata" json:"metadata"`
	Spec       DescriptorSpec     `yaml:"spec" json:"spec"`
}

// DescriptorMetadata holds the resource identity.
type DescriptorMetadata struct {
	Name string `yaml:"name" json:"name"`
}

// DescriptorSpec is the body of a theme manifest.
type DescriptorSpec struct {
	DisplayName     string              `yaml:"displayName" json:"displayName"`
	Version         string              `yaml:"version" json:"version"`
	Description     string              `yaml:"description,omitempty" json:"description,omitempty"`
	Author          ThemeAuthor         `yaml:"author" json:"author"`
	Logo            string              `yaml:"logo,omitempty" json:"logo,omitempty"`
	Website         string              `yaml:"website,omitempty" json:"website,omitempty"`
	Repo            string              `yaml:"repo,omitempty" json:"repo,omitempty"`
	Issues          string              `yaml:"issues,omitempty" json:"issues,omitempty"`
	License         []DescriptorLicense `yaml:"license,omitempty" json:"license,omitempty"`
	Requires        string              `yaml:"requires,omitempty" json:"requires,omitempty"`
	SettingName     string              `yaml:"settingName,omitempty" json:"settingName,omitempty"`
	ConfigMapName   string              `yaml:"configMapName,omitempty" json:"configMapName,omitempty"`
	CustomTemplates CustomTemplates     `yaml:"customTemplates,omitempty" json:"customTemplates,omitempty"`
	Templates       []TemplateRef       `yaml:"templates,omitempty" json:"templates,omitempty"`
	Assets          []TemplateRef       `yaml:"assets,omitempty" json:"assets,omitempty"`
}

// DescriptorLicense names a license of the theme.
type DescriptorLicense struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
}

// CustomTemplates lists alternative templates selectable per post or page.
type CustomTemplates struct {
	Post []TemplateRef `yaml:"post,omitempty" json:"post,omitempty"`
	Page []TemplateRef `yaml:"page,omitempty" json:"page,omitempty"`
}

// TemplateRef binds a logical name to a file in the theme.
type TemplateRef struct {
	Name string `yaml:"name" json:"name"`
	File string `yaml:"file" json:"file"`
}

// ParseDescriptor decodes a theme.yaml document.
func ParseDescriptor(data []byte) (*ThemeDescriptor, error) {
	var d ThemeDescriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing theme descriptor: %w", err)
	}
	return &d, nil
}

// MarshalDescriptor encodes d as YAML with two-space indentation.
func MarshalDescriptor(d *ThemeDescriptor) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding theme descriptor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding theme descriptor: %w", err)
	}
	return buf.Bytes(), nil
}

// DescriptorFromConfig builds the manifest for cfg with the standard template
// and asset layout. Resource names are derived from cfg.Name.
func DescriptorFromConfig(cfg ThemeConfig) *ThemeDescriptor {
	return &ThemeDescriptor{
		APIVersion: DescriptorAPIVersion,
		Kind:       DescriptorKind,
		Metadata:   DescriptorMetadata{Name: cfg.Name},
		Spec: DescriptorSpec{
			DisplayName:   cfg.DisplayName,
			Version:       cfg.Version,
			Description:   cfg.Description,
			Author:        cfg.Author,
			Logo:          "/assets/images/logo.png",
			Website:       cfg.Author.Website,
			License:       []DescriptorLicense{{Name: "MIT", URL: "https://opensource.org/licenses/MIT"}},
			Requires:      ">=2.0.0",
			SettingName:   cfg.Name + "-setting",
			ConfigMapName: cfg.Name + "-config",
			CustomTemplates: CustomTemplates{
				Post: []TemplateRef{
					{Name: "信息流布局", File: "post-infoflow.html"},
					{Name: "传统布局", File: "post-traditional.html"},
				},
				Page: []TemplateRef{
					{Name: "关于页面", File: "page-about.html"},
					{Name: "联系页面", File: "page-contact.html"},
				},
			},
			Templates: []TemplateRef{
				{Name: "index", File: "index.html"},
				{Name: "post", File: "post.html"},
				{Name: "page", File: "page.html"},
				{Name: "category", File: "category.html"},
				{Name: "tag", File: "tag.html"},
				{Name: "archive", File: "archive.html"},
			},
			Assets: []TemplateRef{
				{Name: "style", File: "/assets/css/style.css"},
				{Name: "script", File: "/assets/js/script.js"},
				{Name: "images", File: "/assets/images/"},
			},
		},
	}
}

// ApplyTo copies the manifest identity fields onto cfg, leaving settings and colors intact.
func (d *ThemeDescriptor) ApplyTo(cfg ThemeConfig) ThemeConfig {
	cfg.Name = d.Metadata.Name
	cfg.DisplayName = d.Spec.DisplayName
	cfg.Version = d.Spec.Version
	cfg.Description = d.Spec.Description
	cfg.Author = d.Spec.Author
	return cfg
}

// UpdateFrom overwrites the manifest identity fields with those of cfg.
// Templates, assets, logo and license entries are kept.
func (d *ThemeDescriptor) UpdateFrom(cfg ThemeConfig) {
	if d.APIVersion == "" {
		d.APIVersion = DescriptorAPIVersion
	}
	if d.Kind == "" {
		d.Kind = DescriptorKind
	}
	d.Metadata.Name = cfg.Name
	d.Spec.DisplayName = cfg.DisplayName
	d.Spec.Version = cfg.Version
	d.Spec.Description = cfg.Description
	d.Spec.Author = cfg.Author
	if cfg.Author.Website != "" {
		d.Spec.Website = cfg.Author.Website
	}
}
