package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/service"
)

// SnapshotHandler lists autosave snapshots.
type SnapshotHandler struct {
	snapshots *service.SnapshotService
}

// NewSnapshotHandler creates a snapshot handler.
func NewSnapshotHandler(snapshots *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots}
}

// Register registers the snapshot route with the API.
func (h *SnapshotHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listSnapshots",
		Method:      "GET",
		Path:        BasePath + "/snapshots",
		Summary:     "List autosave snapshots",
		Description: "Returns the newest autosave snapshots of the theme, newest first",
		Tags:        []string{"Autosave"},
	}, h.ListSnapshots)
}

// ListSnapshotsInput is the input for listing snapshots.
type ListSnapshotsInput struct {
	Limit int `query:"limit" default:"50" minimum:"1" maximum:"500" doc:"Maximum number of snapshots"`
}

// ListSnapshotsOutput is the output for listing snapshots.
type ListSnapshotsOutput struct {
	Body struct {
		Snapshots []*models.ThemeSnapshot `json:"snapshots"`
	}
}

// ListSnapshots returns recent snapshots.
func (h *SnapshotHandler) ListSnapshots(ctx context.Context, input *ListSnapshotsInput) (*ListSnapshotsOutput, error) {
	snapshots, err := h.snapshots.Recent(ctx, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list snapshots", err)
	}
	if snapshots == nil {
		snapshots = []*models.ThemeSnapshot{}
	}
	out := &ListSnapshotsOutput{}
	out.Body.Snapshots = snapshots
	return out, nil
}
