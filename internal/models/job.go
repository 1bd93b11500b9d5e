package models

import "time"

type Job struct {
	ID                int64      `json:"id"`
	EmployerID        int64      `json:"employer_id"`
	Title             string     `json:"title"`
	Skill             string     `json:"skill"`
	Description       string     `json:"description"`
	Location          string     `json:"location"`
	Latitude          *float64   `json:"latitude"`
	Longitude         *float64   `json:"longitude"`
	Budget            int        `json:"budget"`
	BudgetType        string     `json:"budget_type"`
	StartDate         *time.Time `json:"start_date"`
	Duration          *string    `json:"duration"`
	Urgent            bool       `json:"urgent"`
	Status            string     `json:"status"`
	ApplicationsCount int        `json:"applications_count"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

type Application struct {
	ID           int64      `json:"id"`
	JobID        int64      `json:"job_id"`
	WorkerID     int64      `json:"worker_id"`
	Status       string     `json:"status"`
	Message      *string    `json:"message"`
	ProposedRate *int       `json:"proposed_rate"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}
