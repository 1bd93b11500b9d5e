package services

import (
	"context"
	"errors"
	"math"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewService struct {
	db               *pgxpool.Pool
	reviewRepo       *repository.ReviewRepository
	notificationRepo *repository.NotificationRepository
	jobRepo          *repository.JobRepository
}

func NewReviewService(
	db *pgxpool.Pool,
	reviewRepo *repository.ReviewRepository,
	notificationRepo *repository.NotificationRepository,
	jobRepo *repository.JobRepository,
) *ReviewService {
	return &ReviewService{
		db:               db,
		reviewRepo:       reviewRepo,
		notificationRepo: notificationRepo,
		jobRepo:          jobRepo,
	}
}

type CreateReviewInput struct {
	JobID      int64
	RevieweeID int64
	Rating     int
	Comment    *string
	Badges     []string
}

// CreateReview stores the review and refreshes the reviewee's aggregate
// rating in the same transaction. The reviewee may hold both a worker and an
// employer profile, so both are refreshed from the same aggregate.
func (s *ReviewService) CreateReview(ctx context.Context, reviewerID int64, input CreateReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if input.RevieweeID == reviewerID {
		return nil, ErrSelfReview
	}

	job, err := s.jobRepo.GetByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if job.Status != "completed" {
		return nil, ErrInvalidTransition
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txReviewRepo := repository.NewReviewRepository(tx)
	txWorkerRepo := repository.NewWorkerRepository(tx)
	txEmployerRepo := repository.NewEmployerRepository(tx)
	txNotificationRepo := repository.NewNotificationRepository(tx)

	review, err := txReviewRepo.Create(ctx, repository.CreateReviewInput{
		JobID:      input.JobID,
		ReviewerID: reviewerID,
		RevieweeID: input.RevieweeID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		Badges:     input.Badges,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	ratings, err := txReviewRepo.ListPublicRatings(ctx, input.RevieweeID)
	if err != nil {
		return nil, err
	}
	summary := aggregateRatings(ratings)

	if err := txWorkerRepo.UpdateRatingByUserID(ctx, input.RevieweeID, summary.AverageRating, summary.TotalReviews); err != nil {
		return nil, err
	}
	if err := txEmployerRepo.UpdateRatingByUserID(ctx, input.RevieweeID, summary.AverageRating, summary.TotalReviews); err != nil {
		return nil, err
	}

	referenceType := "review"
	if _, err := txNotificationRepo.Create(ctx, repository.CreateNotificationInput{
		UserID:        input.RevieweeID,
		Title:         "New review received",
		Message:       "You received a new rating on a completed job",
		Type:          "review",
		ReferenceID:   &review.ID,
		ReferenceType: &referenceType,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListForUser(ctx context.Context, revieweeID int64) ([]models.Review, error) {
	return s.reviewRepo.ListByReviewee(ctx, revieweeID)
}

// Summary returns the current aggregate for a user, computed fresh from the
// stored public reviews.
func (s *ReviewService) Summary(ctx context.Context, revieweeID int64) (models.RatingSummary, error) {
	ratings, err := s.reviewRepo.ListPublicRatings(ctx, revieweeID)
	if err != nil {
		return models.RatingSummary{}, err
	}
	return aggregateRatings(ratings), nil
}

// aggregateRatings averages the ratings and rounds to two decimals. No
// reviews means a neutral zero, not an error.
func aggregateRatings(ratings []int) models.RatingSummary {
	if len(ratings) == 0 {
		return models.RatingSummary{}
	}
	sum := 0
	for _, rating := range ratings {
		sum += rating
	}
	mean := float64(sum) / float64(len(ratings))
	return models.RatingSummary{
		AverageRating: math.Round(mean*100) / 100,
		TotalReviews:  len(ratings),
	}
}
