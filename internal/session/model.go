package session

import "time"

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"

	TypeSolo  = "solo"
	TypeGroup = "group"
)

// SlotCapacity is the maximum number of scheduled sessions per (date, slot).
const SlotCapacity = 5

type Session struct {
	ID             int       `db:"id" json:"id"`
	SubscriptionID *int      `db:"subscription_id" json:"subscription_id,omitempty"`
	UserID         int       `db:"user_id" json:"user_id"`
	ScheduledDate  time.Time `db:"scheduled_date" json:"scheduled_date"`
	TimeSlot       string    `db:"time_slot" json:"time_slot"`
	Status         string    `db:"status" json:"status"`
	WorkoutType    string    `db:"workout_type" json:"workout_type"`
	Title          string    `db:"title" json:"title"`
	Descriptions   string    `db:"descriptions" json:"descriptions"`
	Type           string    `db:"type" json:"type"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type BlockedDate struct {
	ID          int       `db:"id" json:"id"`
	BlockedDate time.Time `db:"blocked_date" json:"blocked_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// SlotAvailability reports occupancy of one slot on one day for the booking form.
type SlotAvailability struct {
	TimeSlot       string `json:"time_slot"`
	ScheduledCount int    `json:"scheduled_count"`
	Available      int    `json:"available"`
	IsFull         bool   `json:"is_full"`
	IsPast         bool   `json:"is_past"`
}

type CreateSessionRequest struct {
	UserID         int    `json:"user_id" binding:"required"`
	SubscriptionID *int   `json:"subscription_id"`
	Date           string `json:"date" binding:"required"`
	TimeSlot       string `json:"time_slot" binding:"required"`
	Title          string `json:"title"`
	Descriptions   string `json:"descriptions"`
	Type           string `json:"type" binding:"omitempty,oneof=solo group"`
}

type RescheduleSessionRequest struct {
	Date     string `json:"date" binding:"required"`
	TimeSlot string `json:"time_slot" binding:"required"`
}

type BlockDateRequest struct {
	Date string `json:"date" binding:"required"`
}
