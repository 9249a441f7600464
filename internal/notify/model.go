package notify

import "time"

const (
	TypeSessionBooked   = "session_booked"
	TypeRequestPending  = "request_pending"
	TypeRequestDecision = "request_decision"
)

type Notification struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Type      string    `db:"type" json:"type"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Job is the wire format queued in redis between enqueue and delivery.
type Job struct {
	UserID  int       `json:"user_id"`
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}
