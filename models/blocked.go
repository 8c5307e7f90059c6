package models

import "time"

// BlockedTimeRange is a one-off interval during which a coach cannot be booked,
// regardless of their weekly windows.
type BlockedTimeRange struct {
	ID        string    `bson:"id" json:"id"`
	CoachID   string    `bson:"coach_id" json:"coachId"`
	StartAt   time.Time `bson:"start_at" json:"startAt"`
	EndAt     time.Time `bson:"end_at" json:"endAt"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// BlockTimeRequest defines the payload for blocking out a time range.
type BlockTimeRequest struct {
	StartAt string `json:"startAt" binding:"required"` // RFC 3339
	EndAt   string `json:"endAt" binding:"required"`   // RFC 3339
	Reason  string `json:"reason,omitempty"`
}
