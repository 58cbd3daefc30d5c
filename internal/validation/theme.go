package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/models"
)

// MinDescriptionLength is the description length below which a warning is raised.
const MinDescriptionLength = 10

// ThemeValidator checks a ThemeConfig.
type ThemeValidator struct {
	msg *i18n.Localizer
}

// NewThemeValidator creates a ThemeValidator.
func NewThemeValidator(l *i18n.Localizer) *ThemeValidator {
	return &ThemeValidator{msg: l}
}

// Validate checks identity, version and palette. Errors are ordered name,
// display name, version, then one per invalid color in palette order.
// A short description is only a warning.
func (v *ThemeValidator) Validate(cfg models.ThemeConfig) models.ValidationResult {
	var errs, warnings []string

	if strings.TrimSpace(cfg.Name) == "" {
		errs = append(errs, v.msg.T(i18n.KeyNameRequired))
	}
	if strings.TrimSpace(cfg.DisplayName) == "" {
		errs = append(errs, v.msg.T(i18n.KeyDisplayNameRequired))
	}
	if !models.VersionPattern.MatchString(cfg.Version) {
		errs = append(errs, v.msg.T(i18n.KeyVersionFormat))
	}
	for _, field := range cfg.Colors.Fields() {
		if !models.ColorPattern.MatchString(field.Value) {
			errs = append(errs, v.msg.T(i18n.KeyColorFormat, field.Key))
		}
	}

	if utf8.RuneCountInString(cfg.Description) < MinDescriptionLength {
		warnings = append(warnings, v.msg.T(i18n.KeyDescriptionShort))
	}

	return models.NewValidationResult(errs, warnings)
}
