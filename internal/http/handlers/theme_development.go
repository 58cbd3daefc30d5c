package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/service"
	"github.com/hmwm/akina-halo/internal/validation"
)

// BasePath prefixes every theme development route.
const BasePath = "/api/v1/theme-development"

// ThemeDevelopmentHandler serves the configuration, file, preview and status
// routes of the development session.
type ThemeDevelopmentHandler struct {
	svc         *service.ThemeDevelopmentService
	descriptors *validation.DescriptorValidator
}

// NewThemeDevelopmentHandler creates a handler over svc.
func NewThemeDevelopmentHandler(svc *service.ThemeDevelopmentService) *ThemeDevelopmentHandler {
	return &ThemeDevelopmentHandler{
		svc:         svc,
		descriptors: validation.NewDescriptorValidator(svc.Notifier().Localizer(), ""),
	}
}

// WithDescriptorValidator sets the validator used for theme.yaml.
func (h *ThemeDevelopmentHandler) WithDescriptorValidator(v *validation.DescriptorValidator) *ThemeDevelopmentHandler {
	h.descriptors = v
	return h
}

// Register registers the routes with the API.
func (h *ThemeDevelopmentHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getThemeConfig",
		Method:      "GET",
		Path:        BasePath + "/config",
		Summary:     "Get theme configuration",
		Tags:        []string{"Theme Config"},
	}, h.GetConfig)

	huma.Register(api, huma.Operation{
		OperationID: "saveThemeConfig",
		Method:      "PUT",
		Path:        BasePath + "/config",
		Summary:     "Save theme configuration",
		Description: "Stores the configuration and regenerates theme.yaml. Failures are reported in the outcome.",
		Tags:        []string{"Theme Config"},
	}, h.SaveConfig)

	huma.Register(api, huma.Operation{
		OperationID: "validateThemeConfig",
		Method:      "POST",
		Path:        BasePath + "/config/validate",
		Summary:     "Validate theme configuration",
		Tags:        []string{"Theme Config"},
	}, h.ValidateConfig)

	huma.Register(api, huma.Operation{
		OperationID: "validateThemeDescriptor",
		Method:      "POST",
		Path:        BasePath + "/descriptor/validate",
		Summary:     "Validate theme.yaml",
		Description: "Checks apiVersion, kind, metadata.name and spec.requires against the platform version",
		Tags:        []string{"Theme Config"},
	}, h.ValidateDescriptor)

	huma.Register(api, huma.Operation{
		OperationID: "generatePreview",
		Method:      "POST",
		Path:        BasePath + "/preview",
		Summary:     "Generate preview URL",
		Description: "Returns a preview URL with a fresh cache-busting timestamp",
		Tags:        []string{"Preview"},
	}, h.GeneratePreview)

	huma.Register(api, huma.Operation{
		OperationID: "getPreviewURL",
		Method:      "GET",
		Path:        BasePath + "/preview",
		Summary:     "Get preview URL",
		Tags:        []string{"Preview"},
	}, h.GetPreviewURL)

	huma.Register(api, huma.Operation{
		OperationID: "getDevelopmentStatus",
		Method:      "GET",
		Path:        BasePath + "/status",
		Summary:     "Get session status",
		Description: "Returns the loading flag, the last error and the pending action outcomes",
		Tags:        []string{"Status"},
	}, h.GetStatus)

	huma.Register(api, huma.Operation{
		OperationID: "getDevelopmentConstants",
		Method:      "GET",
		Path:        BasePath + "/constants",
		Summary:     "Get development constants",
		Tags:        []string{"Status"},
	}, h.GetConstants)

	h.registerFiles(api)
}

// GetConfigInput is the input for getting the configuration.
type GetConfigInput struct{}

// GetConfigOutput is the output for getting the configuration.
type GetConfigOutput struct {
	Body models.ThemeConfig
}

// GetConfig returns the stored configuration.
func (h *ThemeDevelopmentHandler) GetConfig(_ context.Context, _ *GetConfigInput) (*GetConfigOutput, error) {
	return &GetConfigOutput{Body: h.svc.Config()}, nil
}

// ActionResponse reports the result of a save-style action.
type ActionResponse struct {
	Success bool            `json:"success"`
	Outcome *models.Outcome `json:"outcome"`
}

// SaveConfigInput is the input for saving the configuration.
type SaveConfigInput struct {
	Body models.ThemeConfig
}

// SaveConfigOutput is the output for saving the configuration.
type SaveConfigOutput struct {
	Body ActionResponse
}

// SaveConfig stores the configuration.
func (h *ThemeDevelopmentHandler) SaveConfig(ctx context.Context, input *SaveConfigInput) (*SaveConfigOutput, error) {
	ok, outcome := h.svc.SaveThemeWithOutcome(ctx, input.Body)
	return &SaveConfigOutput{Body: ActionResponse{Success: ok, Outcome: outcome}}, nil
}

// ValidationResponse is a validation result with the outcome of the call.
type ValidationResponse struct {
	models.ValidationResult
	Outcome *models.Outcome `json:"outcome"`
}

// ValidateConfigInput is the input for validating a configuration.
type ValidateConfigInput struct {
	Body models.ThemeConfig
}

// ValidateConfigOutput is the output for validating a configuration.
type ValidateConfigOutput struct {
	Body ValidationResponse
}

// ValidateConfig validates the configuration without storing it.
func (h *ThemeDevelopmentHandler) ValidateConfig(ctx context.Context, input *ValidateConfigInput) (*ValidateConfigOutput, error) {
	result, outcome := h.svc.ValidateThemeWithOutcome(ctx, input.Body)
	return &ValidateConfigOutput{Body: ValidationResponse{ValidationResult: result, Outcome: outcome}}, nil
}

// DescriptorValidationResponse is the result of validating theme.yaml.
type DescriptorValidationResponse struct {
	models.ValidationResult
	Descriptor *models.ThemeDescriptor `json:"descriptor,omitempty"`
}

// ValidateDescriptorInput is the input for validating theme.yaml.
type ValidateDescriptorInput struct {
	Body ValidateFileRequest
}

// ValidateDescriptorOutput is the output for validating theme.yaml.
type ValidateDescriptorOutput struct {
	Body DescriptorValidationResponse
}

// ValidateDescriptor validates the given theme.yaml, or the current one.
func (h *ThemeDevelopmentHandler) ValidateDescriptor(ctx context.Context, input *ValidateDescriptorInput) (*ValidateDescriptorOutput, error) {
	var text string
	if input.Body.Content != nil {
		text = *input.Body.Content
	} else {
		current, err := h.svc.GetFileContent(ctx, models.DescriptorFileName)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, huma.Error404NotFound("theme.yaml not found", err)
			}
			return nil, huma.Error502BadGateway("failed to load theme.yaml", err)
		}
		text = current
	}

	d, result := h.descriptors.ValidateDocument([]byte(text))
	return &ValidateDescriptorOutput{Body: DescriptorValidationResponse{ValidationResult: result, Descriptor: d}}, nil
}

// PreviewResponse carries a preview URL.
type PreviewResponse struct {
	URL     string          `json:"url"`
	Outcome *models.Outcome `json:"outcome,omitempty"`
}

// GeneratePreviewInput is the input for generating a preview URL.
type GeneratePreviewInput struct{}

// PreviewOutput is the output of the preview routes.
type PreviewOutput struct {
	Body PreviewResponse
}

// GeneratePreview returns a fresh preview URL.
func (h *ThemeDevelopmentHandler) GeneratePreview(ctx context.Context, _ *GeneratePreviewInput) (*PreviewOutput, error) {
	previewURL, outcome, err := h.svc.GeneratePreviewWithOutcome(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to generate preview", err)
	}
	return &PreviewOutput{Body: PreviewResponse{URL: previewURL, Outcome: outcome}}, nil
}

// GetPreviewURLInput is the input for getting the preview URL.
type GetPreviewURLInput struct{}

// GetPreviewURL returns the preview URL without a cache-buster.
func (h *ThemeDevelopmentHandler) GetPreviewURL(_ context.Context, _ *GetPreviewURLInput) (*PreviewOutput, error) {
	return &PreviewOutput{Body: PreviewResponse{URL: h.svc.GetPreviewURL()}}, nil
}

// GetStatusInput is the input for getting the session status.
type GetStatusInput struct{}

// GetStatusOutput is the output for getting the session status.
type GetStatusOutput struct {
	Body service.Status
}

// GetStatus returns the aggregate status of the action layer.
func (h *ThemeDevelopmentHandler) GetStatus(_ context.Context, _ *GetStatusInput) (*GetStatusOutput, error) {
	return &GetStatusOutput{Body: h.svc.Status()}, nil
}

// ConstantsResponse publishes the fixed tables of the development workbench.
type ConstantsResponse struct {
	ThemeTypes         models.ThemeTypes                `json:"themeTypes"`
	FileExtensions     map[string]models.FileType       `json:"fileExtensions"`
	LanguageMap        map[string]string                `json:"languageMap"`
	DefaultThemeConfig models.ThemeConfig               `json:"defaultThemeConfig"`
	DefaultFiles       []models.FileInfo                `json:"defaultFiles"`
	PreviewModes       []models.PreviewMode             `json:"previewModes"`
	DevicePresets      []models.DevicePreset            `json:"devicePresets"`
	EditorConfig       models.EditorConfig              `json:"editorConfig"`
	ValidationRules    map[string]models.ValidationRule `json:"validationRules"`
	Shortcuts          map[string]string                `json:"shortcuts"`
	DevelopmentTools   []models.DevelopmentTool         `json:"developmentTools"`
	ErrorCodes         []models.ErrorCode               `json:"errorCodes"`
	DevelopmentStates  []models.DevelopmentState        `json:"developmentStates"`
	DevelopmentEvents  []models.DevelopmentEvent        `json:"developmentEvents"`
	DevelopmentConfig  models.DevelopmentConfig         `json:"developmentConfig"`
}

// GetConstantsInput is the input for getting the constants.
type GetConstantsInput struct{}

// GetConstantsOutput is the output for getting the constants.
type GetConstantsOutput struct {
	Body ConstantsResponse
}

// GetConstants returns the workbench tables.
func (h *ThemeDevelopmentHandler) GetConstants(_ context.Context, _ *GetConstantsInput) (*GetConstantsOutput, error) {
	return &GetConstantsOutput{Body: ConstantsResponse{
		ThemeTypes:         models.AllThemeTypes(),
		FileExtensions:     models.FileExtensions,
		LanguageMap:        models.LanguageMap,
		DefaultThemeConfig: models.DefaultThemeConfig(),
		DefaultFiles:       models.DefaultFiles(),
		PreviewModes:       models.PreviewModes,
		DevicePresets:      models.DevicePresets,
		EditorConfig:       models.DefaultEditorConfig,
		ValidationRules:    models.ValidationRules,
		Shortcuts:          models.Shortcuts,
		DevelopmentTools:   models.DevelopmentTools,
		ErrorCodes:         models.ErrorCodes,
		DevelopmentStates:  models.DevelopmentStates,
		DevelopmentEvents:  models.DevelopmentEvents,
		DevelopmentConfig:  models.DefaultDevelopmentConfig,
	}}, nil
}

// mapError converts a service error into an HTTP error.
func mapError(msg string, err error) error {
	var invalid models.ErrValidation
	switch {
	case errors.Is(err, models.ErrNotFound):
		return huma.Error404NotFound(msg, err)
	case errors.Is(err, models.ErrDuplicateFile):
		return huma.Error409Conflict(msg, err)
	case errors.Is(err, models.ErrFileTooLarge):
		return huma.NewError(http.StatusRequestEntityTooLarge, msg, err)
	case errors.Is(err, models.ErrUnsupportedImageFormat):
		return huma.Error415UnsupportedMediaType(msg, err)
	case errors.Is(err, models.ErrUnsupportedFileType),
		errors.Is(err, models.ErrUnsupportedArchiveFormat):
		return huma.Error400BadRequest(msg, err)
	case errors.As(err, &invalid):
		return huma.Error422UnprocessableEntity(msg, err)
	case errors.Is(err, models.ErrProviderUnavailable):
		return huma.Error502BadGateway(msg, err)
	default:
		return huma.Error500InternalServerError(msg, err)
	}
}
