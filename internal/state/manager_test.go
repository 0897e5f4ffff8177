package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyquery/backend/internal/models"
)

func testFile(name string) *models.FileInfo {
	return &models.FileInfo{
		ID:         "file-" + name,
		Name:       name,
		Size:       int64(len(name)),
		UploadedAt: time.Now(),
	}
}

// Drives a slot all the way to succeeded.
func completeUpload(t *testing.T, m *Manager, role models.SlotRole, units int) {
	t.Helper()
	_, err := m.Select(role, testFile(string(role)+".pdf"))
	require.NoError(t, err)
	_, err = m.BeginTransfer(role)
	require.NoError(t, err)
	_, err = m.CompleteTransfer(role, units)
	require.NoError(t, err)
}

func TestSlotLifecycle(t *testing.T) {
	m := NewManager()

	// Both slots start idle with nothing selected.
	slot, err := m.Slot(models.RoleNotes)
	require.NoError(t, err)
	assert.Equal(t, models.SlotIdle, slot.Status)
	assert.Nil(t, slot.File)

	// Scenario: select, transfer, succeed with 42 indexed units.
	slot, err = m.Select(models.RoleNotes, testFile("notes.pdf"))
	require.NoError(t, err)
	assert.Equal(t, models.SlotSelected, slot.Status)

	slot, err = m.BeginTransfer(models.RoleNotes)
	require.NoError(t, err)
	assert.Equal(t, models.SlotTransferring, slot.Status)
	assert.Contains(t, slot.StatusMessage, "notes")

	slot, err = m.CompleteTransfer(models.RoleNotes, 42)
	require.NoError(t, err)
	assert.Equal(t, models.SlotSucceeded, slot.Status)
	assert.Equal(t, 42, slot.IndexedUnits)
	assert.True(t, m.CanSubmit())
}

func TestSlotTransferFailure(t *testing.T) {
	m := NewManager()

	_, err := m.Select(models.RolePaper, testFile("paper.pdf"))
	require.NoError(t, err)
	_, err = m.BeginTransfer(models.RolePaper)
	require.NoError(t, err)

	slot, err := m.FailTransfer(models.RolePaper, "could not reach the inference service")
	require.NoError(t, err)
	assert.Equal(t, models.SlotFailed, slot.Status)
	assert.Equal(t, "could not reach the inference service", slot.StatusMessage)

	// A paper failure never touches the query session.
	assert.Equal(t, models.QueryIdle, m.Query().Status)
}

func TestSelectReArmsSlotFromAnyState(t *testing.T) {
	m := NewManager()

	// From failed.
	_, err := m.Select(models.RoleNotes, testFile("v1.pdf"))
	require.NoError(t, err)
	_, err = m.BeginTransfer(models.RoleNotes)
	require.NoError(t, err)
	_, err = m.FailTransfer(models.RoleNotes, "boom")
	require.NoError(t, err)

	slot, err := m.Select(models.RoleNotes, testFile("v2.pdf"))
	require.NoError(t, err)
	assert.Equal(t, models.SlotSelected, slot.Status)
	assert.Empty(t, slot.StatusMessage, "status message must be cleared on re-selection")
	assert.Equal(t, "v2.pdf", slot.File.Name)

	// From succeeded.
	completeUpload(t, m, models.RoleNotes, 7)
	slot, err = m.Select(models.RoleNotes, testFile("v3.pdf"))
	require.NoError(t, err)
	assert.Equal(t, models.SlotSelected, slot.Status)
	assert.Zero(t, slot.IndexedUnits)
}

func TestInvalidTransitionsAreRejected(t *testing.T) {
	m := NewManager()

	// Transfer without a selection.
	_, err := m.BeginTransfer(models.RoleNotes)
	assert.ErrorIs(t, err, ErrNotSelected)

	// Complete/fail outside transferring.
	_, err = m.CompleteTransfer(models.RoleNotes, 1)
	assert.ErrorIs(t, err, ErrNotTransferring)
	_, err = m.FailTransfer(models.RoleNotes, "x")
	assert.ErrorIs(t, err, ErrNotTransferring)

	// Double BeginTransfer is rejected, not silently ignored.
	_, err = m.Select(models.RoleNotes, testFile("notes.pdf"))
	require.NoError(t, err)
	_, err = m.BeginTransfer(models.RoleNotes)
	require.NoError(t, err)
	_, err = m.BeginTransfer(models.RoleNotes)
	assert.ErrorIs(t, err, ErrTransferInProgress)

	// Unknown role.
	_, err = m.Select("thesis", testFile("x.pdf"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestCanSubmitGate(t *testing.T) {
	m := NewManager()

	// Closed while notes is anything but succeeded, whatever paper does.
	assert.False(t, m.CanSubmit())
	completeUpload(t, m, models.RolePaper, 5)
	assert.False(t, m.CanSubmit(), "paper success alone must not open the gate")

	_, err := m.Select(models.RoleNotes, testFile("notes.pdf"))
	require.NoError(t, err)
	assert.False(t, m.CanSubmit())
	_, err = m.BeginTransfer(models.RoleNotes)
	require.NoError(t, err)
	assert.False(t, m.CanSubmit())
	_, err = m.CompleteTransfer(models.RoleNotes, 10)
	require.NoError(t, err)
	assert.True(t, m.CanSubmit())

	// Closed while the paper slot is mid-transfer.
	_, err = m.Select(models.RolePaper, testFile("paper2.pdf"))
	require.NoError(t, err)
	_, err = m.BeginTransfer(models.RolePaper)
	require.NoError(t, err)
	assert.False(t, m.CanSubmit())
	_, err = m.CompleteTransfer(models.RolePaper, 3)
	require.NoError(t, err)
	assert.True(t, m.CanSubmit())

	// Closed while a submission is in flight.
	require.NoError(t, m.BeginQuery("q"))
	assert.False(t, m.CanSubmit())
	require.NoError(t, m.CompleteQuery(models.AnswerResult{Kind: models.AnswerVerbatim, Text: "a"}))
	assert.True(t, m.CanSubmit())
}

func TestSubmitRejectedWhileNotesTransferring(t *testing.T) {
	m := NewManager()
	completeUpload(t, m, models.RoleNotes, 10)

	// Re-upload the notes document; gate must close during the transfer.
	_, err := m.Select(models.RoleNotes, testFile("notes2.pdf"))
	require.NoError(t, err)
	_, err = m.BeginTransfer(models.RoleNotes)
	require.NoError(t, err)

	before := m.Query()
	err = m.BeginQuery("Compare TCP and UDP")
	assert.ErrorIs(t, err, ErrSubmissionBlocked)
	assert.Equal(t, before, m.Query(), "rejected submission must leave the session unchanged")
}

func TestQueryLifecycle(t *testing.T) {
	m := NewManager()
	completeUpload(t, m, models.RoleNotes, 10)

	require.NoError(t, m.BeginQuery("What is a socket?"))
	q := m.Query()
	assert.Equal(t, models.QuerySubmitting, q.Status)
	assert.Equal(t, "What is a socket?", q.Question)
	assert.Nil(t, q.LastResult)

	require.NoError(t, m.CompleteQuery(models.AnswerResult{Kind: models.AnswerVerbatim, Text: "An endpoint."}))
	q = m.Query()
	assert.Equal(t, models.QuerySucceeded, q.Status)
	require.NotNil(t, q.LastResult)
	assert.Equal(t, "An endpoint.", q.LastResult.Text)

	// A fresh submission clears the previous result before submitting.
	require.NoError(t, m.BeginQuery("Second question"))
	q = m.Query()
	assert.Equal(t, models.QuerySubmitting, q.Status)
	assert.Nil(t, q.LastResult)
	require.NoError(t, m.FailQuery("timeout"))

	q = m.Query()
	assert.Equal(t, models.QueryFailed, q.Status)
	require.NotNil(t, q.LastResult)
	assert.Equal(t, models.AnswerError, q.LastResult.Kind)
	assert.Equal(t, "timeout", q.LastResult.Message)
}

func TestQueryTransitionsRequireSubmitting(t *testing.T) {
	m := NewManager()

	assert.ErrorIs(t, m.CompleteQuery(models.AnswerResult{}), ErrNotSubmitting)
	assert.ErrorIs(t, m.FailQuery("x"), ErrNotSubmitting)
	assert.ErrorIs(t, m.BeginQuery("q"), ErrSubmissionBlocked)
}

func TestNotesSuccessClearsLastResult(t *testing.T) {
	m := NewManager()
	completeUpload(t, m, models.RoleNotes, 10)

	require.NoError(t, m.BeginQuery("q"))
	require.NoError(t, m.CompleteQuery(models.AnswerResult{Kind: models.AnswerVerbatim, Text: "a"}))
	_, ok := m.LastResult()
	require.True(t, ok)

	// Re-uploading the notes document supersedes the answer source, so the
	// held result must go away.
	completeUpload(t, m, models.RoleNotes, 20)
	_, ok = m.LastResult()
	assert.False(t, ok)

	// A paper re-upload leaves the result alone.
	require.NoError(t, m.BeginQuery("q2"))
	require.NoError(t, m.CompleteQuery(models.AnswerResult{Kind: models.AnswerVerbatim, Text: "b"}))
	completeUpload(t, m, models.RolePaper, 5)
	_, ok = m.LastResult()
	assert.True(t, ok)
}

func TestStatusSnapshot(t *testing.T) {
	m := NewManager()
	completeUpload(t, m, models.RoleNotes, 42)

	status := m.Status()
	assert.True(t, status.CanSubmit)
	assert.Len(t, status.Slots, 2)
	assert.Equal(t, models.SlotSucceeded, status.Slots[models.RoleNotes].Status)
	assert.Equal(t, 42, status.Slots[models.RoleNotes].IndexedUnits)
	assert.Equal(t, models.SlotIdle, status.Slots[models.RolePaper].Status)
	assert.Equal(t, models.QueryIdle, status.Query.Status)

	// Snapshots are copies; mutating them must not leak into the manager.
	status.Slots[models.RoleNotes] = models.UploadSlot{}
	slot, err := m.Slot(models.RoleNotes)
	require.NoError(t, err)
	assert.Equal(t, models.SlotSucceeded, slot.Status)
}
