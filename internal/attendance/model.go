package attendance

import "time"

type Attendance struct {
	ID              int        `db:"id" json:"id"`
	UserID          int        `db:"user_id" json:"user_id"`
	CheckInTime     time.Time  `db:"check_in_time" json:"check_in_time"`
	CheckOutTime    *time.Time `db:"check_out_time" json:"check_out_time,omitempty"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

type ScanRequest struct {
	Code string `json:"code" binding:"required"`
}

type ScanResponse struct {
	Action     string      `json:"action" example:"check_in"`
	Attendance *Attendance `json:"attendance"`
}

type QRCodeResponse struct {
	Code string `json:"code" example:"42_1718000000_a1b2c3d4"`
}
