package models

import "time"

// SessionFeedback is the mentee's one-time review of a completed session.
// There is exactly one record per session and no update or delete path.
type SessionFeedback struct {
	ID             string    `bson:"id" json:"id"`
	SessionID      string    `bson:"session_id" json:"sessionId"`
	CoachID        string    `bson:"coach_id" json:"coachId"`
	MenteeID       string    `bson:"mentee_id" json:"menteeId"`
	Rating         int       `bson:"rating" json:"rating"` // 1-5
	WouldRecommend bool      `bson:"would_recommend" json:"wouldRecommend"`
	Comment        string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Highlights     []string  `bson:"highlights,omitempty" json:"highlights,omitempty"`
	IsPublic       bool      `bson:"is_public" json:"isPublic"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

// SubmitFeedbackRequest defines the payload for submitting session feedback.
type SubmitFeedbackRequest struct {
	Rating         int      `json:"rating" binding:"required"`
	WouldRecommend *bool    `json:"wouldRecommend,omitempty"`
	Comment        string   `json:"comment,omitempty"`
	Highlights     []string `json:"highlights,omitempty"`
	IsPublic       *bool    `json:"isPublic,omitempty"`
}
