package guide

import "time"

type Guide struct {
	ID          int       `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Equipment   string    `db:"equipment" json:"equipment"`
	VideoURL    string    `db:"video_url" json:"video_url"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	CreatedBy   int       `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type SaveGuideRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Equipment   string `json:"equipment" binding:"required"`
	VideoURL    string `json:"video_url" binding:"omitempty,url"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}
