package models

import "time"

// SessionStatus tracks a session through its lifecycle. Transitions are
// monotonic: a session leaves "scheduled" exactly once and never returns.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
	SessionNoShow    SessionStatus = "no_show"
)

type SessionType string

const (
	SessionOneOnOne  SessionType = "one-on-one"
	SessionGroup     SessionType = "group"
	SessionDiscovery SessionType = "discovery"
)

// Session durations in minutes accepted by the booking engine.
const (
	MinSessionDuration     = 15
	MaxSessionDuration     = 240
	DefaultSessionDuration = 60
)

// Session represents a booked coaching session between a coach and a mentee.
type Session struct {
	ID                 string        `bson:"id" json:"id"`
	CoachID            string        `bson:"coach_id" json:"coachId"`
	MenteeID           string        `bson:"mentee_id" json:"menteeId"`
	ScheduledAt        time.Time     `bson:"scheduled_at" json:"scheduledAt"`
	DurationMinutes    int           `bson:"duration_minutes" json:"durationMinutes"`
	EndsAt             time.Time     `bson:"ends_at" json:"endsAt"` // derived: ScheduledAt + DurationMinutes
	SessionType        SessionType   `bson:"session_type" json:"sessionType"`
	Topic              string        `bson:"topic" json:"topic"`
	Notes              string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Timezone           string        `bson:"timezone,omitempty" json:"timezone,omitempty"`
	Status             SessionStatus `bson:"status" json:"status"`
	CancelledAt        *time.Time    `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancellationReason string        `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	CompletedAt        *time.Time    `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CreatedAt          time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time     `bson:"updated_at" json:"updatedAt"`
}

// ComputeEndsAt refreshes the derived end instant after the schedule changes.
func (s *Session) ComputeEndsAt() {
	s.EndsAt = s.ScheduledAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// IsParticipant reports whether the given user is the session's coach or mentee.
func (s *Session) IsParticipant(userID string) bool {
	return s.CoachID == userID || s.MenteeID == userID
}

// BookSessionRequest defines the payload for booking a session.
type BookSessionRequest struct {
	CoachID         string `json:"coachId" binding:"required"`
	ScheduledAt     string `json:"scheduledAt" binding:"required"` // RFC 3339
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	SessionType     string `json:"sessionType,omitempty"`
	Topic           string `json:"topic" binding:"required"`
	Notes           string `json:"notes,omitempty"`
	Timezone        string `json:"timezone,omitempty"`
}

// Actions accepted by the session update endpoint.
const (
	ActionReschedule = "reschedule"
	ActionCancel     = "cancel"
	ActionComplete   = "complete"
)

// UpdateSessionRequest defines the payload for a lifecycle transition.
type UpdateSessionRequest struct {
	Action          string `json:"action" binding:"required"` // reschedule | cancel | complete
	ScheduledAt     string `json:"scheduledAt,omitempty"`     // reschedule only, RFC 3339
	DurationMinutes int    `json:"durationMinutes,omitempty"` // reschedule only
	Reason          string `json:"reason,omitempty"`          // cancel only
}

// SessionFilters narrows a session listing.
type SessionFilters struct {
	Status   string
	CoachID  string
	MenteeID string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

// PaginatedSessions is one page of a session listing.
type PaginatedSessions struct {
	Sessions []Session `json:"sessions"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}
