package inventory

import "time"

const (
	ConditionGood        = "good"
	ConditionMaintenance = "maintenance"
	ConditionBroken      = "broken"
)

type Item struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Category  string    `db:"category" json:"category"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Condition string    `db:"condition" json:"condition"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateItemRequest struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=0"`
	Condition string `json:"condition" binding:"omitempty,oneof=good maintenance broken"`
	Notes     string `json:"notes"`
}

type UpdateItemRequest struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Quantity  int    `json:"quantity" binding:"min=0"`
	Condition string `json:"condition" binding:"omitempty,oneof=good maintenance broken"`
	Notes     string `json:"notes"`
}
