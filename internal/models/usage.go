package models

import "time"

// UsageRecord is one closed AC interval. Records are written once and never updated.
type UsageRecord struct {
	ID        int64           `json:"id"`
	UserID    int             `json:"user_id"`
	RoomID    int             `json:"room_id"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Settings  ClimateSettings `json:"settings"`
	Cost      float64         `json:"cost"`
}

// Bill is the itemized usage of one stay.
type Bill struct {
	GuestID     int           `json:"guest_id"`
	RoomID      int           `json:"room_id"`
	CheckinTime time.Time     `json:"checkin_time"`
	Total       float64       `json:"cost"`
	Records     []UsageRecord `json:"invoices"`
}

// Report is the full usage history of a room across guests.
type Report struct {
	RoomID  int           `json:"room_id"`
	Total   float64       `json:"total_cost"`
	Records []UsageRecord `json:"report"`
}

// SumCost adds up the cost of every record.
func SumCost(records []UsageRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Cost
	}
	return total
}
