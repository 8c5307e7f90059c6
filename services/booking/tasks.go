package booking

// TypeSessionCompleted is the asynq task enqueued when a session completes.
// Downstream effects (certificate issuance, analytics, feedback nudges) hang
// off this task rather than the request path.
const TypeSessionCompleted = "session:completed"

// SessionCompletedPayload is the task payload for TypeSessionCompleted.
type SessionCompletedPayload struct {
	SessionID   string `json:"sessionId"`
	CoachID     string `json:"coachId"`
	MenteeID    string `json:"menteeId"`
	CompletedAt string `json:"completedAt"` // RFC 3339
}
