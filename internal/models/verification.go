package models

import "time"

type Verification struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	PhoneVerified   bool       `json:"phone_verified"`
	AadhaarVerified bool       `json:"aadhaar_verified"`
	UPIVerified     bool       `json:"upi_verified"`
	NGOVerified     bool       `json:"ngo_verified"`
	UPIID           *string    `json:"upi_id"`
	TrustScore      int        `json:"trust_score"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
