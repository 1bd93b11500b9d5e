package models

import "time"

type User struct {
	ID          int64      `json:"id"`
	Phone       string     `json:"phone"`
	UserType    string     `json:"user_type"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

type OTPCode struct {
	ID         int64      `json:"id"`
	Phone      string     `json:"phone"`
	CodeHash   string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
