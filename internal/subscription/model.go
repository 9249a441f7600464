package subscription

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
	StatusSuspended Status = "suspended"
)

const (
	PlanMonthly   = "monthly"
	PlanQuarterly = "quarterly"
	PlanAnnual    = "annual"
	PlanSession   = "session"
)

type Subscription struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"user_id"`
	Plan           string    `db:"plan" json:"plan"`
	Status         Status    `db:"status" json:"status"`
	StartDate      time.Time `db:"start_date" json:"start_date"`
	EndDate        time.Time `db:"end_date" json:"end_date"`
	DisplayName    string    `db:"display_name" json:"display_name"`
	CustomMemberID string    `db:"custom_member_id" json:"custom_member_id"`
	UsedSessions   int       `db:"used_sessions" json:"used_sessions"`
	MaxSessions    *int      `db:"max_sessions" json:"max_sessions,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CreateSubscriptionRequest struct {
	UserID         int    `json:"user_id" binding:"required"`
	Plan           string `json:"plan" binding:"required,oneof=monthly quarterly annual session"`
	DisplayName    string `json:"display_name"`
	CustomMemberID string `json:"custom_member_id"`
	MaxSessions    *int   `json:"max_sessions" binding:"omitempty,min=1"`
}
