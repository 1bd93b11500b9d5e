package models

import "time"

type Worker struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	Skill         string    `json:"skill"`
	Experience    *string   `json:"experience"`
	Location      string    `json:"location"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	Languages     *[]string `json:"languages"`
	Bio           *string   `json:"bio"`
	ProfilePhoto  *string   `json:"profile_photo"`
	HourlyRate    *int      `json:"hourly_rate"`
	DailyRate     *int      `json:"daily_rate"`
	Availability  string    `json:"availability"`
	Rating        float64   `json:"rating"`
	TotalReviews  int       `json:"total_reviews"`
	JobsCompleted int       `json:"jobs_completed"`
	ResponseTime  *int      `json:"response_time"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RankedWorker is a match result: the worker plus the computed distance from
// the requester, when both sides have coordinates. Synthetic marks fallback
// sample entries so callers can never mistake them for real workers.
type RankedWorker struct {
	Worker
	DistanceKm   *float64 `json:"distance_km,omitempty"`
	DistanceText string   `json:"distance_text,omitempty"`
	Synthetic    bool     `json:"synthetic,omitempty"`
}
