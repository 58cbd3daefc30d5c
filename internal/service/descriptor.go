package service

import (
	"github.com/hmwm/akina-halo/internal/models"
)

// RenderDescriptor returns theme.yaml for cfg. When existing is a parsable
// manifest its templates, assets and logo are kept and only the identity is
// replaced; otherwise the standard manifest is generated.
func RenderDescriptor(existing string, cfg models.ThemeConfig) (string, error) {
	d, err := models.ParseDescriptor([]byte(existing))
	if err != nil || existing == "" || d.APIVersion == "" {
		d = models.DescriptorFromConfig(cfg)
	} else {
		d.UpdateFrom(cfg)
	}

	data, err := models.MarshalDescriptor(d)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
