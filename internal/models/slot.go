package models

// SlotRole identifies which upload slot (and which remote endpoint) a
// document belongs to.
type SlotRole string

const (
	RoleNotes SlotRole = "notes"
	RolePaper SlotRole = "paper"
)

// Valid reports whether the role is one of the two known slots.
func (r SlotRole) Valid() bool {
	return r == RoleNotes || r == RolePaper
}

// SlotStatus represents the lifecycle state of an upload slot.
type SlotStatus string

const (
	SlotIdle         SlotStatus = "idle"
	SlotSelected     SlotStatus = "selected"
	SlotTransferring SlotStatus = "transferring"
	SlotSucceeded    SlotStatus = "succeeded"
	SlotFailed       SlotStatus = "failed"
)

// UploadSlot is a point-in-time snapshot of one slot's state.
// IndexedUnits is only meaningful when Status is succeeded.
type UploadSlot struct {
	Role          SlotRole   `json:"role"`
	Status        SlotStatus `json:"status"`
	StatusMessage string     `json:"statusMessage,omitempty"`
	File          *FileInfo  `json:"file,omitempty"`
	IndexedUnits  int        `json:"indexedUnits,omitempty"`
}

// QueryStatus represents the lifecycle state of the query session.
type QueryStatus string

const (
	QueryIdle       QueryStatus = "idle"
	QuerySubmitting QueryStatus = "submitting"
	QuerySucceeded  QueryStatus = "succeeded"
	QueryFailed     QueryStatus = "failed"
)

// QuerySession is a point-in-time snapshot of the question lifecycle.
// LastResult is present only after a terminal state.
type QuerySession struct {
	Question   string        `json:"question,omitempty"`
	Status     QueryStatus   `json:"status"`
	LastResult *AnswerResult `json:"lastResult,omitempty"`
}

// GatewayStatus is the combined snapshot served to the frontend.
type GatewayStatus struct {
	Slots     map[SlotRole]UploadSlot `json:"slots"`
	Query     QuerySession            `json:"query"`
	CanSubmit bool                    `json:"canSubmit"`
}
