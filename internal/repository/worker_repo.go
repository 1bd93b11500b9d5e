package repository

import (
	"context"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
)

const workerColumns = `id, user_id, name, skill, experience, location, latitude, longitude,
	   languages, bio, profile_photo, hourly_rate, daily_rate, availability,
	   rating, total_reviews, jobs_completed, response_time, is_active,
	   created_at, updated_at`

type CreateWorkerInput struct {
	UserID     int64
	Name       string
	Skill      string
	Experience *string
	Location   string
	Latitude   *float64
	Longitude  *float64
	Languages  []string
	Bio        *string
	HourlyRate *int
	DailyRate  *int
}

type UpdateWorkerInput struct {
	Name         *string
	Skill        *string
	Experience   *string
	Location     *string
	Latitude     *float64
	Longitude    *float64
	Languages    *[]string
	Bio          *string
	ProfilePhoto *string
	HourlyRate   *int
	DailyRate    *int
	Availability *string
}

type WorkerRepository struct {
	db DBTX
}

func NewWorkerRepository(db DBTX) *WorkerRepository {
	return &WorkerRepository{db: db}
}

func (r *WorkerRepository) Create(ctx context.Context, input CreateWorkerInput) (*models.Worker, error) {
	query := `
		INSERT INTO workers (user_id, name, skill, experience, location, latitude, longitude,
							 languages, bio, hourly_rate, daily_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + workerColumns
	return r.scanWorker(r.db.QueryRow(ctx, query,
		input.UserID,
		input.Name,
		input.Skill,
		input.Experience,
		input.Location,
		input.Latitude,
		input.Longitude,
		input.Languages,
		input.Bio,
		input.HourlyRate,
		input.DailyRate,
	))
}

func (r *WorkerRepository) GetByUserID(ctx context.Context, userID int64) (*models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE user_id = $1`
	return r.scanWorker(r.db.QueryRow(ctx, query, userID))
}

func (r *WorkerRepository) GetByID(ctx context.Context, workerID int64) (*models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1`
	return r.scanWorker(r.db.QueryRow(ctx, query, workerID))
}

func (r *WorkerRepository) UpdatePartial(ctx context.Context, workerID int64, input UpdateWorkerInput) (*models.Worker, error) {
	query := `
		UPDATE workers
		SET name = COALESCE($1, name),
			skill = COALESCE($2, skill),
			experience = COALESCE($3, experience),
			location = COALESCE($4, location),
			latitude = COALESCE($5, latitude),
			longitude = COALESCE($6, longitude),
			languages = COALESCE($7, languages),
			bio = COALESCE($8, bio),
			profile_photo = COALESCE($9, profile_photo),
			hourly_rate = COALESCE($10, hourly_rate),
			daily_rate = COALESCE($11, daily_rate),
			availability = COALESCE($12, availability),
			updated_at = NOW()
		WHERE id = $13
		RETURNING ` + workerColumns
	return r.scanWorker(r.db.QueryRow(ctx, query,
		input.Name,
		input.Skill,
		input.Experience,
		input.Location,
		input.Latitude,
		input.Longitude,
		input.Languages,
		input.Bio,
		input.ProfilePhoto,
		input.HourlyRate,
		input.DailyRate,
		input.Availability,
		workerID,
	))
}

// FindActiveBySkill returns up to limit active workers with an exact skill
// match, best-rated first. The ordering is applied before the limit so the
// candidate pool is always the top-rated slice.
func (r *WorkerRepository) FindActiveBySkill(ctx context.Context, skill string, limit int) ([]models.Worker, error) {
	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE skill = $1 AND is_active = TRUE
		ORDER BY rating DESC, id ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, skill, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := make([]models.Worker, 0)
	for rows.Next() {
		worker, err := r.scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, *worker)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workers, nil
}

func (r *WorkerRepository) UpdateRatingByUserID(ctx context.Context, userID int64, rating float64, totalReviews int) error {
	query := `
		UPDATE workers
		SET rating = $2, total_reviews = $3, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query, userID, rating, totalReviews)
	return err
}

func (r *WorkerRepository) SetActive(ctx context.Context, workerID int64, active bool) error {
	query := `UPDATE workers SET is_active = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, workerID, active)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *WorkerRepository) scanWorker(row rowScanner) (*models.Worker, error) {
	var worker models.Worker
	err := row.Scan(
		&worker.ID,
		&worker.UserID,
		&worker.Name,
		&worker.Skill,
		&worker.Experience,
		&worker.Location,
		&worker.Latitude,
		&worker.Longitude,
		&worker.Languages,
		&worker.Bio,
		&worker.ProfilePhoto,
		&worker.HourlyRate,
		&worker.DailyRate,
		&worker.Availability,
		&worker.Rating,
		&worker.TotalReviews,
		&worker.JobsCompleted,
		&worker.ResponseTime,
		&worker.IsActive,
		&worker.CreatedAt,
		&worker.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &worker, nil
}
