package request

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Request struct {
	ID          int        `db:"id" json:"id"`
	UserID      int        `db:"user_id" json:"user_id"`
	MemberName  string     `db:"member_name" json:"member_name"`
	Plan        string     `db:"plan" json:"plan"`
	Status      string     `db:"status" json:"status"`
	Message     string     `db:"message" json:"message"`
	MaxSessions *int       `db:"max_sessions" json:"max_sessions,omitempty"`
	DecidedBy   *int       `db:"decided_by" json:"decided_by,omitempty"`
	DecidedAt   *time.Time `db:"decided_at" json:"decided_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

type SubmitRequest struct {
	Plan        string `json:"plan" binding:"required,oneof=monthly quarterly annual session"`
	Message     string `json:"message"`
	MaxSessions *int   `json:"max_sessions" binding:"omitempty,min=1"`
}
