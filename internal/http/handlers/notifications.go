package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/go-chi/chi/v5"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/service/notify"
)

// NotificationHandler serves the notification feed and its event stream.
type NotificationHandler struct {
	service           *notify.Service
	heartbeatInterval time.Duration
	logger            *slog.Logger
}

// NewNotificationHandler creates a notification handler.
func NewNotificationHandler(service *notify.Service) *NotificationHandler {
	return &NotificationHandler{
		service:           service,
		heartbeatInterval: notify.HeartbeatInterval,
		logger:            slog.Default(),
	}
}

// WithLogger sets the logger for the handler.
func (h *NotificationHandler) WithLogger(logger *slog.Logger) *NotificationHandler {
	h.logger = logger
	return h
}

// NotificationEvent is the payload of every event on the stream.
type NotificationEvent models.Notification

// ListNotificationsInput is the input for listing notifications.
type ListNotificationsInput struct {
	Limit int `query:"limit" default:"50" minimum:"0" maximum:"1000" doc:"Maximum number of notifications; 0 returns all retained"`
}

// ListNotificationsOutput is the output for listing notifications.
type ListNotificationsOutput struct {
	Body struct {
		Notifications []models.Notification `json:"notifications"`
	}
}

// ClearNotificationsInput is the input for clearing notifications.
type ClearNotificationsInput struct{}

// ClearNotificationsOutput is the output for clearing notifications.
type ClearNotificationsOutput struct{}

// StreamInput defines the query parameters of the event stream.
type StreamInput struct {
	Initial int `query:"initial" default:"0" minimum:"0" maximum:"200" doc:"Number of recent notifications replayed on connect"`
}

// Register registers the notification routes with the API.
func (h *NotificationHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listNotifications",
		Method:      "GET",
		Path:        BasePath + "/notifications",
		Summary:     "List recent notifications",
		Description: "Returns retained notifications, oldest first",
		Tags:        []string{"Notifications"},
	}, h.ListNotifications)

	huma.Register(api, huma.Operation{
		OperationID:   "clearNotifications",
		Method:        "DELETE",
		Path:          BasePath + "/notifications",
		Summary:       "Clear notifications",
		Tags:          []string{"Notifications"},
		DefaultStatus: http.StatusNoContent,
	}, h.ClearNotifications)

	events := make(map[string]any, len(models.DevelopmentEvents))
	for _, e := range models.DevelopmentEvents {
		events[string(e)] = NotificationEvent{}
	}

	// Registered for the OpenAPI document. RegisterSSE serves the route.
	sse.Register(api, huma.Operation{
		OperationID: "notificationStream",
		Method:      "GET",
		Path:        BasePath + "/events",
		Summary:     "Subscribe to notifications",
		Description: `Server-Sent Events stream of session notifications.

- On connect: a ` + "`:connected`" + ` comment, then up to ` + "`initial`" + ` recent notifications.
- Every 30s without events: a ` + "`:heartbeat <unix_epoch>`" + ` comment.
- Each event is named after its development event, e.g. ` + "`file_changed`" + `.`,
		Tags: []string{"Notifications"},
	}, events, func(ctx context.Context, _ *StreamInput, _ sse.Sender) {
		<-ctx.Done()
	})
}

// RegisterSSE serves the event stream on the chi router.
func (h *NotificationHandler) RegisterSSE(router chi.Router) {
	router.Get(BasePath+"/events", h.handleSSEStream)
}

// ListNotifications returns recent notifications.
func (h *NotificationHandler) ListNotifications(_ context.Context, input *ListNotificationsInput) (*ListNotificationsOutput, error) {
	out := &ListNotificationsOutput{}
	out.Body.Notifications = h.service.Recent(input.Limit)
	return out, nil
}

// ClearNotifications drops retained notifications.
func (h *NotificationHandler) ClearNotifications(_ context.Context, _ *ClearNotificationsInput) (*ClearNotificationsOutput, error) {
	h.service.Clear()
	return &ClearNotificationsOutput{}, nil
}

func (h *NotificationHandler) handleSSEStream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	initial := 0
	if v := r.URL.Query().Get("initial"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 200 {
			initial = n
		}
	}

	ctx := r.Context()
	sub := h.service.Subscribe(ctx)
	defer close(sub.Done)

	rc := http.NewResponseController(w)
	// The stream outlives the server write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	heartbeat := time.NewTicker(h.heartbeatInterval)
	defer heartbeat.Stop()

	fmt.Fprint(w, ":connected\n\n")
	if err := rc.Flush(); err != nil {
		h.logger.Error("failed to flush SSE connection", slog.String("error", err.Error()))
		return
	}

	if initial > 0 {
		for _, n := range h.service.Recent(initial) {
			if err := writeNotification(w, n); err != nil {
				h.logger.Debug("failed to replay notification", slog.String("error", err.Error()))
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ":heartbeat %d\n\n", time.Now().Unix())
			if err := rc.Flush(); err != nil {
				h.logger.Debug("heartbeat flush failed, client likely disconnected", slog.String("error", err.Error()))
				return
			}
		case n, ok := <-sub.Events:
			if !ok {
				return
			}
			if err := writeNotification(w, n); err != nil {
				h.logger.Debug("failed to write notification", slog.String("error", err.Error()))
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

// writeNotification writes n as one SSE message named after its event.
func writeNotification(w http.ResponseWriter, n models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", n.ID, n.Event, data)
	return err
}
