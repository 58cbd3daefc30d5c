package service

import (
	"errors"
	"testing"

	"github.com/hmwm/akina-halo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTracker(t *testing.T) {
	tr := NewStatusTracker()

	st := tr.Status()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Error)
	assert.Equal(t, models.StateIdle, st.State)

	save := tr.Begin(ActionSaveTheme)
	preview := tr.Begin(ActionGeneratePreview)
	st = tr.Status()
	assert.True(t, st.Loading)
	require.Len(t, st.Pending, 2)
	assert.Equal(t, models.OutcomePending, st.Pending[0].State)

	tr.Finish(save, errors.New("disk full"))
	assert.Equal(t, models.OutcomeFailure, save.State)
	assert.Equal(t, "disk full", save.Error)

	st = tr.Status()
	assert.True(t, st.Loading, "preview still pending")
	assert.Equal(t, models.StatePreviewing, st.State)
	require.NotNil(t, st.Error)
	assert.Equal(t, "disk full", *st.Error)

	tr.Finish(preview, nil)
	assert.Equal(t, models.OutcomeSuccess, preview.State)

	st = tr.Status()
	assert.False(t, st.Loading)
	assert.Equal(t, models.StateError, st.State)

	tr.Finish(tr.Begin(ActionValidateTheme), nil)
	st = tr.Status()
	assert.Nil(t, st.Error)
	assert.Equal(t, models.StateIdle, st.State)
}

func TestStatusTracker_CodedErrors(t *testing.T) {
	tr := NewStatusTracker()
	o := tr.Begin(ActionSaveFile)
	tr.Finish(o, models.WithCode(models.ErrCodeFileWriteError, models.ErrFileTooLarge))

	assert.Equal(t, models.ErrCodeFileWriteError, o.Code)
	assert.ErrorIs(t, o.Err(), models.ErrFileTooLarge)
	assert.True(t, o.Done())
}
