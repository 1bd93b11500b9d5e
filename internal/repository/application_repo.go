package repository

import (
	"context"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
)

const applicationColumns = `id, job_id, worker_id, status, message, proposed_rate,
	   created_at, updated_at, responded_at`

type CreateApplicationInput struct {
	JobID        int64
	WorkerID     int64
	Message      *string
	ProposedRate *int
}

type ApplicationRepository struct {
	db DBTX
}

func NewApplicationRepository(db DBTX) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, input CreateApplicationInput) (*models.Application, error) {
	query := `
		INSERT INTO applications (job_id, worker_id, message, proposed_rate)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + applicationColumns
	return r.scanApplication(r.db.QueryRow(ctx, query,
		input.JobID,
		input.WorkerID,
		input.Message,
		input.ProposedRate,
	))
}

func (r *ApplicationRepository) GetByID(ctx context.Context, applicationID int64) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return r.scanApplication(r.db.QueryRow(ctx, query, applicationID))
}

func (r *ApplicationRepository) GetByJobAndWorker(ctx context.Context, jobID, workerID int64) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 AND worker_id = $2`
	return r.scanApplication(r.db.QueryRow(ctx, query, jobID, workerID))
}

func (r *ApplicationRepository) ListByWorker(ctx context.Context, workerID int64) ([]models.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE worker_id = $1
		ORDER BY created_at DESC
	`
	return r.listApplications(ctx, query, workerID)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE job_id = $1
		ORDER BY created_at DESC
	`
	return r.listApplications(ctx, query, jobID)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, applicationID int64, status string) (*models.Application, error) {
	query := `
		UPDATE applications
		SET status = $2, responded_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + applicationColumns
	return r.scanApplication(r.db.QueryRow(ctx, query, applicationID, status))
}

func (r *ApplicationRepository) listApplications(ctx context.Context, query string, args ...any) ([]models.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := make([]models.Application, 0)
	for rows.Next() {
		application, err := r.scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *application)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *ApplicationRepository) scanApplication(row rowScanner) (*models.Application, error) {
	var application models.Application
	err := row.Scan(
		&application.ID,
		&application.JobID,
		&application.WorkerID,
		&application.Status,
		&application.Message,
		&application.ProposedRate,
		&application.CreatedAt,
		&application.UpdatedAt,
		&application.RespondedAt,
	)
	if err != nil {
		return nil, err
	}
	return &application, nil
}
