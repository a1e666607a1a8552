package models

import "time"

// Room event types.
const (
	EventCheckIn        = "CHECK_IN"
	EventCheckOut       = "CHECK_OUT"
	EventACOn           = "AC_ON"
	EventACOff          = "AC_OFF"
	EventSettingsChange = "SETTINGS_CHANGE"
)

// RoomEvent is a single audit log entry describing a room transition.
type RoomEvent struct {
	EventID     string    `json:"event_id"`
	RoomID      int       `json:"room_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // CHECK_IN | CHECK_OUT | AC_ON | AC_OFF | SETTINGS_CHANGE
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
