// Package state owns the upload slots and the query session. Every mutation
// goes through a transition method on Manager; handlers and background
// transfer goroutines never touch the fields directly.
package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/studyquery/backend/internal/models"
)

// Transition errors. These signal caller-discipline violations (an operation
// invoked outside its allowed source state), not runtime conditions.
var (
	ErrUnknownRole        = errors.New("unknown slot role")
	ErrNoFileSelected     = errors.New("no document selected for slot")
	ErrNotSelected        = errors.New("slot has no pending selection to transfer")
	ErrTransferInProgress = errors.New("transfer already in progress for slot")
	ErrNotTransferring    = errors.New("slot is not transferring")
	ErrSubmissionBlocked  = errors.New("query submission is not currently allowed")
	ErrNotSubmitting      = errors.New("no query submission in flight")
)

type slotState struct {
	role          models.SlotRole
	status        models.SlotStatus
	statusMessage string
	file          *models.FileInfo
	indexedUnits  int
}

type queryState struct {
	question   string
	status     models.QueryStatus
	lastResult *models.AnswerResult
}

// Manager holds the two upload slots and the single query session for the
// lifetime of the process. Slots are created once and are never reset
// automatically; only a fresh selection re-arms a slot.
type Manager struct {
	mu    sync.RWMutex
	slots map[models.SlotRole]*slotState
	query queryState
}

// NewManager creates a manager with both slots idle and the query session
// empty.
func NewManager() *Manager {
	return &Manager{
		slots: map[models.SlotRole]*slotState{
			models.RoleNotes: {role: models.RoleNotes, status: models.SlotIdle},
			models.RolePaper: {role: models.RolePaper, status: models.SlotIdle},
		},
		query: queryState{status: models.QueryIdle},
	}
}

// Select records a newly chosen document for a slot. Allowed from any state;
// it re-arms the slot to selected and clears any previous status message,
// but does not start a transfer. The remote side's previous index for this
// role is not invalidated here; the next successful transfer supersedes it.
func (m *Manager) Select(role models.SlotRole, file *models.FileInfo) (models.UploadSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, ok := m.slots[role]
	if !ok {
		return models.UploadSlot{}, ErrUnknownRole
	}

	slot.file = file
	slot.status = models.SlotSelected
	slot.statusMessage = ""
	slot.indexedUnits = 0

	return snapshotSlot(slot), nil
}

// BeginTransfer moves a slot from selected to transferring. A second call
// while a transfer is already running is a caller error and is rejected, not
// ignored.
func (m *Manager) BeginTransfer(role models.SlotRole) (models.UploadSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, ok := m.slots[role]
	if !ok {
		return models.UploadSlot{}, ErrUnknownRole
	}

	switch slot.status {
	case models.SlotTransferring:
		return models.UploadSlot{}, ErrTransferInProgress
	case models.SlotSelected:
		// Allowed.
	default:
		return models.UploadSlot{}, ErrNotSelected
	}

	if slot.file == nil {
		return models.UploadSlot{}, ErrNoFileSelected
	}

	slot.status = models.SlotTransferring
	slot.statusMessage = fmt.Sprintf("Uploading %s document...", role)

	return snapshotSlot(slot), nil
}

// CompleteTransfer moves a transferring slot to succeeded and records how
// many retrievable units the remote side indexed. When the notes slot
// succeeds, any previously held answer is cleared: the answer source
// changed, so a stale result must not be shown as if still valid.
func (m *Manager) CompleteTransfer(role models.SlotRole, indexedUnits int) (models.UploadSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, ok := m.slots[role]
	if !ok {
		return models.UploadSlot{}, ErrUnknownRole
	}
	if slot.status != models.SlotTransferring {
		return models.UploadSlot{}, ErrNotTransferring
	}

	slot.status = models.SlotSucceeded
	slot.indexedUnits = indexedUnits
	slot.statusMessage = fmt.Sprintf("Indexed %d units from %s document", indexedUnits, role)

	if role == models.RoleNotes {
		m.query.lastResult = nil
	}

	return snapshotSlot(slot), nil
}

// FailTransfer moves a transferring slot to failed with the given message.
// The query session is untouched.
func (m *Manager) FailTransfer(role models.SlotRole, message string) (models.UploadSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, ok := m.slots[role]
	if !ok {
		return models.UploadSlot{}, ErrUnknownRole
	}
	if slot.status != models.SlotTransferring {
		return models.UploadSlot{}, ErrNotTransferring
	}

	slot.status = models.SlotFailed
	slot.statusMessage = message

	return snapshotSlot(slot), nil
}

// CanSubmit reports whether a query may be submitted right now: the notes
// slot has succeeded, neither slot is mid-transfer, and no submission is
// already in flight. This is the system's only cross-component gate; every
// submission path must consult it.
func (m *Manager) CanSubmit() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.canSubmitLocked()
}

func (m *Manager) canSubmitLocked() bool {
	if m.slots[models.RoleNotes].status != models.SlotSucceeded {
		return false
	}
	for _, slot := range m.slots {
		if slot.status == models.SlotTransferring {
			return false
		}
	}
	return m.query.status != models.QuerySubmitting
}

// BeginQuery starts a submission. The previous result is cleared before the
// session enters submitting. Rejected when the gate is closed.
func (m *Manager) BeginQuery(question string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.canSubmitLocked() {
		return ErrSubmissionBlocked
	}

	m.query.lastResult = nil
	m.query.question = question
	m.query.status = models.QuerySubmitting

	return nil
}

// CompleteQuery records the interpreted answer for the in-flight submission.
func (m *Manager) CompleteQuery(result models.AnswerResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.query.status != models.QuerySubmitting {
		return ErrNotSubmitting
	}

	m.query.status = models.QuerySucceeded
	m.query.lastResult = &result

	return nil
}

// FailQuery records a failed submission. The message ends up as the
// error-variant result so the frontend has something to display.
func (m *Manager) FailQuery(message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.query.status != models.QuerySubmitting {
		return ErrNotSubmitting
	}

	m.query.status = models.QueryFailed
	m.query.lastResult = &models.AnswerResult{
		Kind:    models.AnswerError,
		Message: message,
	}

	return nil
}

// Slot returns a snapshot of one slot.
func (m *Manager) Slot(role models.SlotRole) (models.UploadSlot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slot, ok := m.slots[role]
	if !ok {
		return models.UploadSlot{}, ErrUnknownRole
	}
	return snapshotSlot(slot), nil
}

// Query returns a snapshot of the query session.
func (m *Manager) Query() models.QuerySession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return snapshotQuery(&m.query)
}

// LastResult returns the current answer, if the session is in a terminal
// state that produced one.
func (m *Manager) LastResult() (*models.AnswerResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.query.lastResult == nil {
		return nil, false
	}
	res := *m.query.lastResult
	return &res, true
}

// Status returns the combined snapshot served to the frontend.
func (m *Manager) Status() models.GatewayStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slots := make(map[models.SlotRole]models.UploadSlot, len(m.slots))
	for role, slot := range m.slots {
		slots[role] = snapshotSlot(slot)
	}

	return models.GatewayStatus{
		Slots:     slots,
		Query:     snapshotQuery(&m.query),
		CanSubmit: m.canSubmitLocked(),
	}
}

func snapshotSlot(s *slotState) models.UploadSlot {
	snap := models.UploadSlot{
		Role:          s.role,
		Status:        s.status,
		StatusMessage: s.statusMessage,
	}
	if s.file != nil {
		f := *s.file
		snap.File = &f
	}
	if s.status == models.SlotSucceeded {
		snap.IndexedUnits = s.indexedUnits
	}
	return snap
}

func snapshotQuery(q *queryState) models.QuerySession {
	snap := models.QuerySession{
		Question: q.question,
		Status:   q.status,
	}
	if q.lastResult != nil {
		res := *q.lastResult
		snap.LastResult = &res
	}
	return snap
}
