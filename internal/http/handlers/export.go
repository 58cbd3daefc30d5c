package handlers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hmwm/akina-halo/internal/service"
)

// ExportHandler serves theme archive downloads.
type ExportHandler struct {
	exportService *service.ExportService
	themeName     func() string
}

// NewExportHandler creates an export handler. themeName names the download.
func NewExportHandler(exportService *service.ExportService, themeName func() string) *ExportHandler {
	return &ExportHandler{exportService: exportService, themeName: themeName}
}

// ExportInput is the input for exporting the theme.
type ExportInput struct {
	Format string `query:"format" default:"tar.gz" enum:"tar,tar.gz,tgz,tar.bz2,tbz2,tar.xz,txz" doc:"Archive format"`
}

// ExportOutput is the archive download.
type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// Register registers the export route with the API.
func (h *ExportHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "exportTheme",
		Method:      "GET",
		Path:        BasePath + "/export",
		Summary:     "Export theme archive",
		Description: "Downloads theme.yaml, every registered file and the uploaded assets as a tar archive",
		Tags:        []string{"Export"},
	}, h.Export)
}

// Export builds the archive in memory and returns it.
func (h *ExportHandler) Export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	format, err := service.ParseArchiveFormat(input.Format)
	if err != nil {
		return nil, mapError("invalid export format", err)
	}

	var buf bytes.Buffer
	if err := h.exportService.Export(ctx, &buf, format); err != nil {
		return nil, mapError("failed to export theme", err)
	}

	return &ExportOutput{
		ContentType:        format.ContentType(),
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", format.FileName(h.themeName())),
		Body:               buf.Bytes(),
	}, nil
}
