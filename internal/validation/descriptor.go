package validation

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/models"
)

// DescriptorValidator checks a theme.yaml manifest against the platform it targets.
type DescriptorValidator struct {
	msg             *i18n.Localizer
	platformVersion string
}

// NewDescriptorValidator creates a DescriptorValidator. An empty or unparsable
// platformVersion skips the compatibility warning.
func NewDescriptorValidator(l *i18n.Localizer, platformVersion string) *DescriptorValidator {
	return &DescriptorValidator{msg: l, platformVersion: platformVersion}
}

// Validate reports structural errors and, when spec.requires parses, warns
// if the platform version falls outside the constraint.
func (v *DescriptorValidator) Validate(d *models.ThemeDescriptor) models.ValidationResult {
	var errs, warnings []string

	if d.APIVersion != models.DescriptorAPIVersion {
		errs = append(errs, v.msg.T(i18n.KeyDescriptorAPIVersion, models.DescriptorAPIVersion))
	}
	if d.Kind != models.DescriptorKind {
		errs = append(errs, v.msg.T(i18n.KeyDescriptorKind, models.DescriptorKind))
	}
	if strings.TrimSpace(d.Metadata.Name) == "" {
		errs = append(errs, v.msg.T(i18n.KeyDescriptorName))
	}

	if d.Spec.Requires != "" {
		constraint, err := semver.NewConstraint(d.Spec.Requires)
		if err != nil {
			errs = append(errs, v.msg.T(i18n.KeyDescriptorRequires, d.Spec.Requires))
		} else if platform, err := semver.NewVersion(v.platformVersion); err == nil && !constraint.Check(platform) {
			warnings = append(warnings, v.msg.T(i18n.KeyDescriptorUnsatisfied, v.platformVersion, d.Spec.Requires))
		}
	}

	return models.NewValidationResult(errs, warnings)
}

// ValidateDocument parses data as theme.yaml and validates it. A parse failure
// is reported as a single error rather than returned.
func (v *DescriptorValidator) ValidateDocument(data []byte) (*models.ThemeDescriptor, models.ValidationResult) {
	d, err := models.ParseDescriptor(data)
	if err != nil {
		return nil, models.NewValidationResult([]string{err.Error()}, nil)
	}
	return d, v.Validate(d)
}
