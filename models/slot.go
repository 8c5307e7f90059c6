package models

import "time"

// Reasons a computed slot cannot be booked. A slot carries at most one,
// resolved in this priority order.
const (
	SlotReasonBooked  = "booked"
	SlotReasonBlocked = "blocked"
	SlotReasonPast    = "past"
)

// Slot is a computed candidate booking interval of fixed duration.
// Slots are derived from weekly windows on demand and never persisted.
type Slot struct {
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	IsAvailable bool      `json:"isAvailable"`
	Reason      string    `json:"reason,omitempty"`
}

// DayAvailability groups the slots computed for one calendar date.
type DayAvailability struct {
	Date  string `json:"date"` // "2006-01-02"
	Slots []Slot `json:"slots"`
}
