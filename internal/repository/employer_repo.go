package repository

import (
	"context"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
)

const employerColumns = `id, user_id, name, company_name, location, latitude, longitude,
	   profile_photo, rating, total_reviews, jobs_posted, is_active, created_at, updated_at`

type CreateEmployerInput struct {
	UserID      int64
	Name        string
	CompanyName *string
	Location    string
	Latitude    *float64
	Longitude   *float64
}

type EmployerRepository struct {
	db DBTX
}

func NewEmployerRepository(db DBTX) *EmployerRepository {
	return &EmployerRepository{db: db}
}

func (r *EmployerRepository) Create(ctx context.Context, input CreateEmployerInput) (*models.Employer, error) {
	query := `
		INSERT INTO employers (user_id, name, company_name, location, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + employerColumns
	return r.scanEmployer(r.db.QueryRow(ctx, query,
		input.UserID,
		input.Name,
		input.CompanyName,
		input.Location,
		input.Latitude,
		input.Longitude,
	))
}

func (r *EmployerRepository) GetByUserID(ctx context.Context, userID int64) (*models.Employer, error) {
	query := `SELECT ` + employerColumns + ` FROM employers WHERE user_id = $1`
	return r.scanEmployer(r.db.QueryRow(ctx, query, userID))
}

func (r *EmployerRepository) GetByID(ctx context.Context, employerID int64) (*models.Employer, error) {
	query := `SELECT ` + employerColumns + ` FROM employers WHERE id = $1`
	return r.scanEmployer(r.db.QueryRow(ctx, query, employerID))
}

func (r *EmployerRepository) IncrementJobsPosted(ctx context.Context, employerID int64) error {
	query := `UPDATE employers SET jobs_posted = jobs_posted + 1, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, employerID)
	return err
}

func (r *EmployerRepository) UpdateRatingByUserID(ctx context.Context, userID int64, rating float64, totalReviews int) error {
	query := `
		UPDATE employers
		SET rating = $2, total_reviews = $3, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query, userID, rating, totalReviews)
	return err
}

func (r *EmployerRepository) scanEmployer(row rowScanner) (*models.Employer, error) {
	var employer models.Employer
	err := row.Scan(
		&employer.ID,
		&employer.UserID,
		&employer.Name,
		&employer.CompanyName,
		&employer.Location,
		&employer.Latitude,
		&employer.Longitude,
		&employer.ProfilePhoto,
		&employer.Rating,
		&employer.TotalReviews,
		&employer.JobsPosted,
		&employer.IsActive,
		&employer.CreatedAt,
		&employer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &employer, nil
}
