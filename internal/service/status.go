// Package service provides the theme development session: the action layer,
// the file registry, the configuration store and their supporting services.
package service

import (
	"sort"
	"sync"

	"github.com/hmwm/akina-halo/internal/models"
)

// Action names recorded on outcomes.
const (
	ActionSaveTheme       = "save_theme"
	ActionValidateTheme   = "validate_theme"
	ActionGetFileContent  = "get_file_content"
	ActionSaveFile        = "save_file"
	ActionValidateFile    = "validate_file"
	ActionGeneratePreview = "generate_preview"
)

var actionStates = map[string]models.DevelopmentState{
	ActionSaveTheme:       models.StateSaving,
	ActionSaveFile:        models.StateSaving,
	ActionValidateTheme:   models.StateValidating,
	ActionValidateFile:    models.StateValidating,
	ActionGetFileContent:  models.StateLoading,
	ActionGeneratePreview: models.StatePreviewing,
}

// Status is the session-wide view of the action layer.
type Status struct {
	Loading bool                    `json:"loading"`
	Error   *string                 `json:"error"`
	State   models.DevelopmentState `json:"state"`
	Pending []models.Outcome        `json:"pending"`
}

// StatusTracker aggregates in-flight outcomes into a Status.
// Loading is true while any outcome is pending. Error is cleared when an
// action starts and holds the message of the last failure.
type StatusTracker struct {
	mu       sync.Mutex
	inflight map[models.ULID]*models.Outcome
	lastErr  *string
}

// NewStatusTracker creates an idle tracker.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{inflight: make(map[models.ULID]*models.Outcome)}
}

// Begin registers a pending outcome for action and clears the error.
func (t *StatusTracker) Begin(action string) *models.Outcome {
	o := models.NewOutcome(action)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.inflight[o.ID] = o
	t.lastErr = nil
	return o
}

// Finish completes o with err and removes it from the in-flight set.
// A nil err marks it successful.
func (t *StatusTracker) Finish(o *models.Outcome, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err != nil {
		o.Fail(err)
		msg := err.Error()
		t.lastErr = &msg
	} else {
		o.Succeed()
	}
	delete(t.inflight, o.ID)
}

// Status returns a snapshot of the aggregate state.
func (t *StatusTracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	pending := make([]models.Outcome, 0, len(t.inflight))
	for _, o := range t.inflight {
		pending = append(pending, *o)
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].StartedAt.Before(pending[j].StartedAt)
	})

	st := Status{
		Loading: len(pending) > 0,
		Pending: pending,
		State:   models.StateIdle,
	}
	if t.lastErr != nil {
		msg := *t.lastErr
		st.Error = &msg
	}

	switch {
	case st.Loading:
		st.State = actionStates[pending[len(pending)-1].Action]
	case st.Error != nil:
		st.State = models.StateError
	}
	return st
}
