package models

import "time"

type Employer struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	CompanyName  *string   `json:"company_name"`
	Location     string    `json:"location"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	ProfilePhoto *string   `json:"profile_photo"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"total_reviews"`
	JobsPosted   int       `json:"jobs_posted"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
