package user

import "time"

type User struct {
	ID                   int       `db:"id" json:"id"`
	Name                 string    `db:"name" json:"name"`
	Email                string    `db:"email" json:"email"`
	PasswordHash         string    `db:"password_hash" json:"-"`
	Role                 string    `db:"role" json:"role"`
	SubscriptionStatus   *string   `db:"subscription_status" json:"subscription_status,omitempty"`
	ActiveSubscriptionID *int      `db:"active_subscription_id" json:"active_subscription_id,omitempty"`
	LastSubscriptionID   *int      `db:"last_subscription_id" json:"last_subscription_id,omitempty"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=staff admin"`
}

type SendResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResendResetRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTPID string `json:"otp_id" binding:"required"`
}

type ConfirmResetRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	OTPID       string `json:"otp_id" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
