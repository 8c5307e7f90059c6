package models

// WeeklyAvailabilityWindow is a recurring weekly availability interval for a coach.
// Start and End are minutes from midnight (e.g., 540 for 9:00 AM) in the window's
// timezone. A coach's full set of windows is always replaced wholesale.
type WeeklyAvailabilityWindow struct {
	ID          string `bson:"id" json:"id"`
	CoachID     string `bson:"coach_id" json:"coachId"`
	DayOfWeek   int    `bson:"day_of_week" json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday
	StartMinute int    `bson:"start_minute" json:"startMinute"`
	EndMinute   int    `bson:"end_minute" json:"endMinute"`
	Timezone    string `bson:"timezone,omitempty" json:"timezone,omitempty"`
	IsActive    bool   `bson:"is_active" json:"isActive"`
}

// WeeklyWindowInput is one window in a bulk-replace request.
// IsActive defaults to true when omitted.
type WeeklyWindowInput struct {
	DayOfWeek   int    `json:"dayOfWeek"`
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
	Timezone    string `json:"timezone,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// SetAvailabilityRequest defines the payload for replacing a coach's weekly schedule.
type SetAvailabilityRequest struct {
	Windows []WeeklyWindowInput `json:"windows" binding:"required"`
}
