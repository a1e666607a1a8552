package models

import "time"

// Room is the persisted state of a hotel room.
//
// Invariants: AC on implies occupied; OccupantID and CheckinTime are set
// together; ACIntervalStart is set exactly while AC is on.
type Room struct {
	ID              int             `json:"id"`
	Occupied        bool            `json:"occupied"`
	ACOn            bool            `json:"ac_on"`
	OccupantID      *int            `json:"occupant_id,omitempty"`
	CheckinTime     *time.Time      `json:"checkin_time,omitempty"`
	ACIntervalStart *time.Time      `json:"ac_interval_start,omitempty"`
	Settings        ClimateSettings `json:"settings"`
}

// OccupiedBy reports whether the room is currently held by guestID.
func (r Room) OccupiedBy(guestID int) bool {
	return r.Occupied && r.OccupantID != nil && *r.OccupantID == guestID
}

// CheckinRecord marks the start of a guest's current stay.
type CheckinRecord struct {
	UserID int       `json:"user_id"`
	RoomID int       `json:"room_id"`
	InTime time.Time `json:"in_time"`
}

// RoomStatus is the live view of a room used by status polling and the websocket stream.
type RoomStatus struct {
	Room             Room      `json:"room"`
	OpenIntervalCost float64   `json:"open_interval_cost"`
	StayCost         float64   `json:"stay_cost"`
	AsOf             time.Time `json:"as_of"`
}
