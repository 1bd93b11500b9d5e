package repository

import (
	"context"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
)

const reviewColumns = `id, job_id, reviewer_id, reviewee_id, rating, comment, badges,
	   is_public, created_at, updated_at`

type CreateReviewInput struct {
	JobID      int64
	ReviewerID int64
	RevieweeID int64
	Rating     int
	Comment    *string
	Badges     []string
}

type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, input CreateReviewInput) (*models.Review, error) {
	query := `
		INSERT INTO reviews (job_id, reviewer_id, reviewee_id, rating, comment, badges)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + reviewColumns
	badges := input.Badges
	if badges == nil {
		badges = []string{}
	}
	return r.scanReview(r.db.QueryRow(ctx, query,
		input.JobID,
		input.ReviewerID,
		input.RevieweeID,
		input.Rating,
		input.Comment,
		badges,
	))
}

func (r *ReviewRepository) ListByReviewee(ctx context.Context, revieweeID int64) ([]models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE reviewee_id = $1 AND is_public = TRUE
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, revieweeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		review, err := r.scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListPublicRatings returns only the rating values for a reviewee, the input
// to the rating aggregation.
func (r *ReviewRepository) ListPublicRatings(ctx context.Context, revieweeID int64) ([]int, error) {
	query := `
		SELECT rating
		FROM reviews
		WHERE reviewee_id = $1 AND is_public = TRUE
	`
	rows, err := r.db.Query(ctx, query, revieweeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]int, 0)
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ReviewRepository) scanReview(row rowScanner) (*models.Review, error) {
	var review models.Review
	err := row.Scan(
		&review.ID,
		&review.JobID,
		&review.ReviewerID,
		&review.RevieweeID,
		&review.Rating,
		&review.Comment,
		&review.Badges,
		&review.IsPublic,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}
