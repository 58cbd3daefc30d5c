package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/service/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationHandler_ListAndClear(t *testing.T) {
	svc := notify.New(10, i18n.New("en"))
	h := NewNotificationHandler(svc)
	ctx := context.Background()

	svc.Success(models.EventFileChanged, i18n.KeyFileSaveSuccess, "style.css")
	svc.Info(models.EventPreviewUpdated, i18n.KeyPreviewGenerated, "/theme-preview/akina-zzz")

	out, err := h.ListNotifications(ctx, &ListNotificationsInput{Limit: 1})
	require.NoError(t, err)
	require.Len(t, out.Body.Notifications, 1)
	assert.Equal(t, models.EventPreviewUpdated, out.Body.Notifications[0].Event)

	out, err = h.ListNotifications(ctx, &ListNotificationsInput{})
	require.NoError(t, err)
	assert.Len(t, out.Body.Notifications, 2)

	_, err = h.ClearNotifications(ctx, &ClearNotificationsInput{})
	require.NoError(t, err)
	assert.Empty(t, svc.Recent(0))
}

// readEvent reads lines until a blank line ends one SSE message.
func readEvent(t *testing.T, r *bufio.Reader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			return lines
		}
		lines = append(lines, line)
	}
}

func TestNotificationHandler_Stream(t *testing.T) {
	svc := notify.New(10, i18n.New("en"))
	svc.Info(models.EventConfigChanged, i18n.KeyConfigChanged, "akina-zzz")

	h := NewNotificationHandler(svc)
	router := chi.NewRouter()
	h.RegisterSSE(router)
	server := httptest.NewServer(router)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+BasePath+"/events?initial=5", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	reader := bufio.NewReader(resp.Body)
	assert.Equal(t, []string{":connected"}, readEvent(t, reader))

	replayed := readEvent(t, reader)
	require.Len(t, replayed, 3)
	assert.Equal(t, "event: config_changed", replayed[1])

	require.Eventually(t, func() bool { return svc.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)
	svc.Success(models.EventSaveCompleted, i18n.KeySaveSuccess, "akina-zzz")

	live := readEvent(t, reader)
	require.Len(t, live, 3)
	assert.Equal(t, "event: save_completed", live[1])

	var n models.Notification
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(live[2], "data: ")), &n))
	assert.Equal(t, models.NotifySuccess, n.Level)
	assert.Equal(t, i18n.KeySaveSuccess, n.Key)

	cancel()
	require.Eventually(t, func() bool { return svc.SubscriberCount() == 0 }, time.Second, 10*time.Millisecond)
}
