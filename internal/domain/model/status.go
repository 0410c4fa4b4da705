package model

// ConfirmActionKind selects what confirming a status does.
type ConfirmActionKind string

const (
	ConfirmActionNone         ConfirmActionKind = "NONE"
	ConfirmActionStartTimer   ConfirmActionKind = "START_TIMER"
	ConfirmActionChangeStatus ConfirmActionKind = "CHANGE_STATUS"
)

// ConfirmAction is the tagged effect attached to a confirmable status.
// DurationMinutes is set for START_TIMER, TargetStatusID for CHANGE_STATUS.
type ConfirmAction struct {
	Kind            ConfirmActionKind
	DurationMinutes int
	TargetStatusID  int64
}

// OrderStatus is an admin-defined status catalog entry, fetched read-only.
type OrderStatus struct {
	ID                   int64
	Name                 string
	Color                string
	Description          string
	RequiresConfirmation bool
	ConfirmButtonText    string
	Action               ConfirmAction
	Default              bool
}
