package repository

import (
	"context"
	"time"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
)

const jobColumns = `id, employer_id, title, skill, description, location, latitude, longitude,
	   budget, budget_type, start_date, duration, urgent, status, applications_count,
	   created_at, updated_at, completed_at`

type CreateJobInput struct {
	EmployerID  int64
	Title       string
	Skill       string
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
	Budget      int
	BudgetType  string
	StartDate   *time.Time
	Duration    *string
	Urgent      bool
}

type JobRepository struct {
	db DBTX
}

func NewJobRepository(db DBTX) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, input CreateJobInput) (*models.Job, error) {
	query := `
		INSERT INTO jobs (employer_id, title, skill, description, location, latitude, longitude,
						  budget, budget_type, start_date, duration, urgent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + jobColumns
	return r.scanJob(r.db.QueryRow(ctx, query,
		input.EmployerID,
		input.Title,
		input.Skill,
		input.Description,
		input.Location,
		input.Latitude,
		input.Longitude,
		input.Budget,
		input.BudgetType,
		input.StartDate,
		input.Duration,
		input.Urgent,
	))
}

func (r *JobRepository) GetByID(ctx context.Context, jobID int64) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return r.scanJob(r.db.QueryRow(ctx, query, jobID))
}

// ListOpenBySkill returns open jobs for a skill, urgent postings first, then
// newest first.
func (r *JobRepository) ListOpenBySkill(ctx context.Context, skill string, limit int) ([]models.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE skill = $1 AND status = 'open'
		ORDER BY urgent DESC, created_at DESC
		LIMIT $2
	`
	return r.listJobs(ctx, query, skill, limit)
}

func (r *JobRepository) ListByEmployer(ctx context.Context, employerID int64) ([]models.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE employer_id = $1
		ORDER BY created_at DESC
	`
	return r.listJobs(ctx, query, employerID)
}

func (r *JobRepository) UpdateStatusIfCurrent(ctx context.Context, jobID int64, currentStatus, nextStatus string) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET status = $3,
			completed_at = CASE WHEN $3 = 'completed' THEN NOW() ELSE completed_at END,
			updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + jobColumns
	return r.scanJob(r.db.QueryRow(ctx, query, jobID, currentStatus, nextStatus))
}

func (r *JobRepository) IncrementApplications(ctx context.Context, jobID int64) error {
	query := `UPDATE jobs SET applications_count = applications_count + 1, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, jobID)
	return err
}

func (r *JobRepository) listJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]models.Job, 0)
	for rows.Next() {
		job, err := r.scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepository) scanJob(row rowScanner) (*models.Job, error) {
	var job models.Job
	err := row.Scan(
		&job.ID,
		&job.EmployerID,
		&job.Title,
		&job.Skill,
		&job.Description,
		&job.Location,
		&job.Latitude,
		&job.Longitude,
		&job.Budget,
		&job.BudgetType,
		&job.StartDate,
		&job.Duration,
		&job.Urgent,
		&job.Status,
		&job.ApplicationsCount,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
