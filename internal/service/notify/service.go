// Package notify provides the notification feed for the theme development session.
// Notifications are kept in a bounded buffer and broadcast to subscribers.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/oklog/ulid/v2"
)

const (
	// DefaultMaxNotifications is the number of notifications retained when no size is configured.
	DefaultMaxNotifications = 200
	// DefaultSubscriberBuffer is the subscriber event buffer size.
	DefaultSubscriberBuffer = 100
	// HeartbeatInterval is the interval for sending heartbeats to SSE subscribers.
	HeartbeatInterval = 30 * time.Second
)

// Subscriber represents a client subscribed to notifications.
type Subscriber struct {
	ID     string
	Events chan models.Notification
	Done   chan struct{}
}

// Service records notifications and fans them out to subscribers.
type Service struct {
	mu            sync.RWMutex
	notifications []models.Notification
	max           int
	subscribers   map[string]*Subscriber
	msg           *i18n.Localizer
	logger        *slog.Logger
	now           func() time.Time
}

// New creates a notification service retaining up to bufferSize notifications.
func New(bufferSize int, msg *i18n.Localizer) *Service {
	if bufferSize < 1 {
		bufferSize = DefaultMaxNotifications
	}
	if msg == nil {
		msg = i18n.New("")
	}
	return &Service{
		notifications: make([]models.Notification, 0, bufferSize),
		max:           bufferSize,
		subscribers:   make(map[string]*Subscriber),
		msg:           msg,
		logger:        slog.Default(),
		now:           time.Now,
	}
}

// WithLogger sets the logger for the service.
func (s *Service) WithLogger(logger *slog.Logger) *Service {
	s.logger = logger
	return s
}

// Localizer returns the localizer used to render messages.
func (s *Service) Localizer() *i18n.Localizer {
	return s.msg
}

// Notify renders the catalog message for key and publishes it.
func (s *Service) Notify(
	level models.NotificationLevel,
	event models.DevelopmentEvent,
	key, subject string,
	args ...any,
) models.Notification {
	return s.Publish(models.Notification{
		Level:   level,
		Event:   event,
		Key:     key,
		Message: s.msg.T(key, args...),
		Subject: subject,
	})
}

// Success publishes a success notification.
func (s *Service) Success(event models.DevelopmentEvent, key, subject string, args ...any) models.Notification {
	return s.Notify(models.NotifySuccess, event, key, subject, args...)
}

// Info publishes an informational notification.
func (s *Service) Info(event models.DevelopmentEvent, key, subject string, args ...any) models.Notification {
	return s.Notify(models.NotifyInfo, event, key, subject, args...)
}

// Error publishes an error notification with message as its text.
// Failures carry the underlying error text rather than the catalog message.
func (s *Service) Error(key, subject, message string) models.Notification {
	if message == "" {
		message = s.msg.T(key)
	}
	return s.Publish(models.Notification{
		Level:   models.NotifyError,
		Event:   models.EventErrorOccurred,
		Key:     key,
		Message: message,
		Subject: subject,
	})
}

// Publish stores n and broadcasts it. Missing IDs and timestamps are filled in.
func (s *Service) Publish(n models.Notification) models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID.IsZero() {
		n.ID = models.ULID(ulid.Make())
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = s.now()
	}

	if len(s.notifications) >= s.max {
		s.notifications = s.notifications[1:]
	}
	s.notifications = append(s.notifications, n)

	s.logger.Debug("notification published",
		slog.String("level", string(n.Level)),
		slog.String("event", string(n.Event)),
		slog.String("key", n.Key),
		slog.String("subject", n.Subject),
	)

	// Broadcast to subscribers (non-blocking)
	for _, sub := range s.subscribers {
		select {
		case sub.Events <- n:
		default:
			// Subscriber buffer full, skip
		}
	}

	return n
}

// Recent returns up to limit notifications, oldest first.
// A limit of zero or less returns everything retained.
func (s *Service) Recent(limit int) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if limit > 0 && len(s.notifications) > limit {
		start = len(s.notifications) - limit
	}
	out := make([]models.Notification, len(s.notifications)-start)
	copy(out, s.notifications[start:])
	return out
}

// Clear drops every retained notification.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = s.notifications[:0]
}

// Subscribe creates a new subscriber. It is removed when ctx ends or Done is closed.
func (s *Service) Subscribe(ctx context.Context) *Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &Subscriber{
		ID:     ulid.Make().String(),
		Events: make(chan models.Notification, DefaultSubscriberBuffer),
		Done:   make(chan struct{}),
	}
	s.subscribers[sub.ID] = sub

	go func() {
		select {
		case <-ctx.Done():
		case <-sub.Done:
		}
		s.Unsubscribe(sub.ID)
	}()

	return sub
}

// Unsubscribe removes a subscriber and closes its event channel.
func (s *Service) Unsubscribe(subscriberID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub, ok := s.subscribers[subscriberID]; ok {
		close(sub.Events)
		delete(s.subscribers, subscriberID)
	}
}

// SubscriberCount returns the number of active subscribers.
func (s *Service) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
