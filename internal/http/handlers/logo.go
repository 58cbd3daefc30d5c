package handlers

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hmwm/akina-halo/internal/service"
)

// LogoHandler serves logo uploads.
type LogoHandler struct {
	logoService *service.LogoService
}

// NewLogoHandler creates a logo handler.
func NewLogoHandler(logoService *service.LogoService) *LogoHandler {
	return &LogoHandler{logoService: logoService}
}

// Register registers the logo route with the API.
func (h *LogoHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:      "uploadThemeLogo",
		Method:           "PUT",
		Path:             BasePath + "/logo",
		Summary:          "Upload theme logo",
		Description:      "Stores the image in the form field \"file\" as a theme asset and points spec.logo at it",
		Tags:             []string{"Assets"},
		RequestBody:      &huma.RequestBody{Content: map[string]*huma.MediaType{"multipart/form-data": {}}},
		SkipValidateBody: true,
	}, h.UploadLogo)
}

// UploadLogoInput is the input for uploading a logo.
type UploadLogoInput struct {
	RawBody multipart.Form
}

// UploadLogoOutput is the output for uploading a logo.
type UploadLogoOutput struct {
	Body service.LogoUpload
}

// UploadLogo stores the uploaded logo.
func (h *LogoHandler) UploadLogo(ctx context.Context, input *UploadLogoInput) (*UploadLogoOutput, error) {
	files := input.RawBody.File["file"]
	if len(files) == 0 {
		return nil, huma.Error400BadRequest("no file provided")
	}
	header := files[0]

	f, err := header.Open()
	if err != nil {
		return nil, huma.Error400BadRequest("failed to open uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, huma.Error400BadRequest("failed to read uploaded file", err)
	}

	upload, err := h.logoService.Upload(ctx, header.Filename, data)
	if err != nil {
		return nil, mapError("failed to upload logo", err)
	}
	return &UploadLogoOutput{Body: *upload}, nil
}
