package models

// ValidationResult is the outcome of validating a theme config or file.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewValidationResult builds a result whose Valid flag follows the error list.
func NewValidationResult(errs, warnings []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// Merge appends the messages of other, recomputing Valid.
func (r ValidationResult) Merge(other ValidationResult) ValidationResult {
	errs := append(append([]string{}, r.Errors...), other.Errors...)
	warnings := append(append([]string{}, r.Warnings...), other.Warnings...)
	return NewValidationResult(errs, warnings)
}
