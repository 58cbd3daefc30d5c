// Package validation implements the theme configuration, file content and
// theme descriptor validators.
//
// File validators are substring checks, not parsers.
package validation

import (
	"strings"

	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/models"
)

// Validator checks the content of one class of theme file.
type Validator interface {
	// Name identifies the validator in logs and API responses.
	Name() string
	// Validate returns the result for content. It must not produce warnings
	// unless the variant documents them.
	Validate(content string) models.ValidationResult
}

// TemplateValidator requires an <html element in template files.
type TemplateValidator struct {
	msg *i18n.Localizer
}

// NewTemplateValidator creates a TemplateValidator.
func NewTemplateValidator(l *i18n.Localizer) *TemplateValidator {
	return &TemplateValidator{msg: l}
}

// Name implements Validator.
func (v *TemplateValidator) Name() string { return "template" }

// Validate implements Validator.
func (v *TemplateValidator) Validate(content string) models.ValidationResult {
	var errs []string
	if !strings.Contains(content, "<html") {
		errs = append(errs, v.msg.T(i18n.KeyHTMLStructure))
	}
	return models.NewValidationResult(errs, nil)
}

// StyleValidator flags stylesheets that open a brace and never close one.
type StyleValidator struct {
	msg *i18n.Localizer
}

// NewStyleValidator creates a StyleValidator.
func NewStyleValidator(l *i18n.Localizer) *StyleValidator {
	return &StyleValidator{msg: l}
}

// Name implements Validator.
func (v *StyleValidator) Name() string { return "style" }

// Validate implements Validator.
func (v *StyleValidator) Validate(content string) models.ValidationResult {
	var errs []string
	if strings.Contains(content, "{") && !strings.Contains(content, "}") {
		errs = append(errs, v.msg.T(i18n.KeyCSSSyntax))
	}
	return models.NewValidationResult(errs, nil)
}

// ScriptValidator flags scripts mentioning function without any opening brace.
type ScriptValidator struct {
	msg *i18n.Localizer
}

// NewScriptValidator creates a ScriptValidator.
func NewScriptValidator(l *i18n.Localizer) *ScriptValidator {
	return &ScriptValidator{msg: l}
}

// Name implements Validator.
func (v *ScriptValidator) Name() string { return "script" }

// Validate implements Validator.
func (v *ScriptValidator) Validate(content string) models.ValidationResult {
	var errs []string
	if strings.Contains(content, "function") && !strings.Contains(content, "{") {
		errs = append(errs, v.msg.T(i18n.KeyJSSyntax))
	}
	return models.NewValidationResult(errs, nil)
}

// ConfigValidator flags YAML that has a colon but no space anywhere.
type ConfigValidator struct {
	msg *i18n.Localizer
}

// NewConfigValidator creates a ConfigValidator.
func NewConfigValidator(l *i18n.Localizer) *ConfigValidator {
	return &ConfigValidator{msg: l}
}

// Name implements Validator.
func (v *ConfigValidator) Name() string { return "config" }

// Validate implements Validator.
func (v *ConfigValidator) Validate(content string) models.ValidationResult {
	var errs []string
	if strings.Contains(content, ":") && !strings.Contains(content, " ") {
		errs = append(errs, v.msg.T(i18n.KeyYAMLSyntax))
	}
	return models.NewValidationResult(errs, nil)
}

// NoopValidator accepts any content.
type NoopValidator struct{}

// Name implements Validator.
func (NoopValidator) Name() string { return "noop" }

// Validate implements Validator.
func (NoopValidator) Validate(string) models.ValidationResult {
	return models.NewValidationResult(nil, nil)
}
