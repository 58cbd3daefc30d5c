package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hmwm/akina-halo/internal/models"
)

func (h *ThemeDevelopmentHandler) registerFiles(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listThemeFiles",
		Method:      "GET",
		Path:        BasePath + "/files",
		Summary:     "List theme files",
		Description: "Lists the registered files without their content. pattern filters paths with a glob such as /templates/**/*.html.",
		Tags:        []string{"Theme Files"},
	}, h.ListFiles)

	huma.Register(api, huma.Operation{
		OperationID:   "addThemeFile",
		Method:        "POST",
		Path:          BasePath + "/files",
		Summary:       "Register a theme file",
		Tags:          []string{"Theme Files"},
		DefaultStatus: http.StatusCreated,
	}, h.AddFile)

	huma.Register(api, huma.Operation{
		OperationID:   "removeThemeFile",
		Method:        "DELETE",
		Path:          BasePath + "/files/{name}",
		Summary:       "Unregister a theme file",
		Tags:          []string{"Theme Files"},
		DefaultStatus: http.StatusNoContent,
	}, h.RemoveFile)

	huma.Register(api, huma.Operation{
		OperationID: "getThemeFile",
		Method:      "GET",
		Path:        BasePath + "/files/{name}",
		Summary:     "Get file content",
		Description: "Returns the file content from the content provider. Provider failures answer 502.",
		Tags:        []string{"Theme Files"},
	}, h.GetFile)

	huma.Register(api, huma.Operation{
		OperationID: "saveThemeFile",
		Method:      "PUT",
		Path:        BasePath + "/files/{name}",
		Summary:     "Save file content",
		Description: "Writes the content through the content provider. Unregistered files with a known extension are added.",
		Tags:        []string{"Theme Files"},
	}, h.SaveFile)

	huma.Register(api, huma.Operation{
		OperationID: "validateThemeFile",
		Method:      "POST",
		Path:        BasePath + "/files/{name}/validate",
		Summary:     "Validate file content",
		Description: "Validates the given content, or the current content of the file when none is given",
		Tags:        []string{"Theme Files"},
	}, h.ValidateFile)
}

// FileListResponse lists registered files.
type FileListResponse struct {
	Files   []models.FileInfo `json:"files"`
	Current string            `json:"current,omitempty" doc:"File last opened"`
}

// ListFilesInput is the input for listing files.
type ListFilesInput struct {
	Pattern string `query:"pattern" doc:"Glob over file paths, e.g. /templates/**/*.html"`
}

// ListFilesOutput is the output for listing files.
type ListFilesOutput struct {
	Body FileListResponse
}

// ListFiles lists the registered files.
func (h *ThemeDevelopmentHandler) ListFiles(_ context.Context, input *ListFilesInput) (*ListFilesOutput, error) {
	files := h.svc.Files().List()
	if input.Pattern != "" {
		matched, err := h.svc.Files().Match(input.Pattern)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid pattern", err)
		}
		files = matched
	}

	for i := range files {
		files[i].Content = nil
	}
	return &ListFilesOutput{Body: FileListResponse{Files: files, Current: h.svc.Files().Current()}}, nil
}

// AddFileRequest is the request body for registering a file.
type AddFileRequest struct {
	Name string `json:"name" minLength:"1" maxLength:"255" doc:"File name; the extension selects the file type"`
	Path string `json:"path,omitempty" doc:"Path inside the theme; defaults to the directory of the file type"`
}

// AddFileInput is the input for registering a file.
type AddFileInput struct {
	Body AddFileRequest
}

// FileOutput is the output carrying one file.
type FileOutput struct {
	Body models.FileInfo
}

// AddFile registers a file.
func (h *ThemeDevelopmentHandler) AddFile(_ context.Context, input *AddFileInput) (*FileOutput, error) {
	f, err := h.svc.Files().Add(input.Body.Name, input.Body.Path)
	if err != nil {
		return nil, mapError("failed to add file", err)
	}
	return &FileOutput{Body: f}, nil
}

// FileNameInput addresses one file.
type FileNameInput struct {
	Name string `path:"name" doc:"File name"`
}

// RemoveFileOutput is the output for unregistering a file.
type RemoveFileOutput struct{}

// RemoveFile unregisters a file.
func (h *ThemeDevelopmentHandler) RemoveFile(_ context.Context, input *FileNameInput) (*RemoveFileOutput, error) {
	if err := h.svc.Files().Remove(input.Name); err != nil {
		return nil, mapError("failed to remove file", err)
	}
	return &RemoveFileOutput{}, nil
}

// FileContentResponse is the content of one file.
type FileContentResponse struct {
	Name     string          `json:"name"`
	Language string          `json:"language" doc:"Editor language"`
	Content  string          `json:"content"`
	Outcome  *models.Outcome `json:"outcome"`
}

// GetFileOutput is the output for getting file content.
type GetFileOutput struct {
	Body FileContentResponse
}

// GetFile returns the content of a file and marks it as the open file.
func (h *ThemeDevelopmentHandler) GetFile(ctx context.Context, input *FileNameInput) (*GetFileOutput, error) {
	text, outcome, err := h.svc.GetFileContentWithOutcome(ctx, input.Name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, huma.Error404NotFound("file not found", err)
		}
		return nil, huma.Error502BadGateway("failed to load file", err)
	}
	_ = h.svc.Files().SetCurrent(input.Name)

	return &GetFileOutput{Body: FileContentResponse{
		Name:     input.Name,
		Language: models.LanguageFor(input.Name),
		Content:  text,
		Outcome:  outcome,
	}}, nil
}

// SaveFileRequest is the request body for saving a file.
type SaveFileRequest struct {
	Content string `json:"content"`
}

// SaveFileInput is the input for saving a file.
type SaveFileInput struct {
	Name string `path:"name" doc:"File name"`
	Body SaveFileRequest
}

// SaveFileOutput is the output for saving a file.
type SaveFileOutput struct {
	Body ActionResponse
}

// SaveFile writes the content of a file.
func (h *ThemeDevelopmentHandler) SaveFile(ctx context.Context, input *SaveFileInput) (*SaveFileOutput, error) {
	ok, outcome := h.svc.SaveFileWithOutcome(ctx, input.Name, input.Body.Content)
	return &SaveFileOutput{Body: ActionResponse{Success: ok, Outcome: outcome}}, nil
}

// ValidateFileRequest is the request body for validating a file.
type ValidateFileRequest struct {
	Content *string `json:"content,omitempty" doc:"Content to validate; the current content is used when omitted"`
}

// ValidateFileInput is the input for validating a file.
type ValidateFileInput struct {
	Name string `path:"name" doc:"File name"`
	Body ValidateFileRequest
}

// ValidateFileOutput is the output for validating a file.
type ValidateFileOutput struct {
	Body ValidationResponse
}

// ValidateFile validates file content with the validator for its extension.
func (h *ThemeDevelopmentHandler) ValidateFile(ctx context.Context, input *ValidateFileInput) (*ValidateFileOutput, error) {
	var text string
	if input.Body.Content != nil {
		text = *input.Body.Content
	} else {
		current, err := h.svc.GetFileContent(ctx, input.Name)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, huma.Error404NotFound("file not found", err)
			}
			return nil, huma.Error502BadGateway("failed to load file", err)
		}
		text = current
	}

	result, outcome := h.svc.ValidateFileWithOutcome(ctx, input.Name, text)
	return &ValidateFileOutput{Body: ValidationResponse{ValidationResult: result, Outcome: outcome}}, nil
}
