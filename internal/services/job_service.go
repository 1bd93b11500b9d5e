package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// jobTransitions lists the allowed status moves. Completed and cancelled are
// terminal.
var jobTransitions = map[string][]string{
	"open":        {"in_progress", "cancelled"},
	"in_progress": {"completed", "cancelled"},
}

type JobService struct {
	db           *pgxpool.Pool
	jobRepo      *repository.JobRepository
	employerRepo *repository.EmployerRepository
}

func NewJobService(
	db *pgxpool.Pool,
	jobRepo *repository.JobRepository,
	employerRepo *repository.EmployerRepository,
) *JobService {
	return &JobService{db: db, jobRepo: jobRepo, employerRepo: employerRepo}
}

// PostJob creates the posting and bumps the employer's jobs_posted counter in
// the same transaction.
func (s *JobService) PostJob(ctx context.Context, employerUserID int64, input repository.CreateJobInput) (*models.Job, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Skill) == "" {
		return nil, ErrInvalidQuery
	}
	if input.Budget <= 0 {
		return nil, ErrInvalidAmount
	}
	if input.BudgetType != "fixed" && input.BudgetType != "daily" && input.BudgetType != "hourly" {
		input.BudgetType = "fixed"
	}

	employer, err := s.employerRepo.GetByUserID(ctx, employerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	input.EmployerID = employer.ID

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txJobRepo := repository.NewJobRepository(tx)
	txEmployerRepo := repository.NewEmployerRepository(tx)

	job, err := txJobRepo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := txEmployerRepo.IncrementJobsPosted(ctx, employer.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, jobID int64) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *JobService) SearchOpenJobs(ctx context.Context, skill string, limit int) ([]models.Job, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" || limit <= 0 {
		return nil, ErrInvalidQuery
	}
	return s.jobRepo.ListOpenBySkill(ctx, skill, limit)
}

func (s *JobService) ListForEmployer(ctx context.Context, employerUserID int64) ([]models.Job, error) {
	employer, err := s.employerRepo.GetByUserID(ctx, employerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return s.jobRepo.ListByEmployer(ctx, employer.ID)
}

// UpdateStatus moves the job along the allowed transitions. The guard in the
// repository makes the move a no-op when another request already changed the
// status.
func (s *JobService) UpdateStatus(ctx context.Context, employerUserID, jobID int64, nextStatus string) (*models.Job, error) {
	employer, err := s.employerRepo.GetByUserID(ctx, employerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if job.EmployerID != employer.ID {
		return nil, ErrNotJobOwner
	}
	if !transitionAllowed(job.Status, nextStatus) {
		return nil, ErrInvalidTransition
	}

	updated, err := s.jobRepo.UpdateStatusIfCurrent(ctx, jobID, job.Status, nextStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	return updated, nil
}

func transitionAllowed(current, next string) bool {
	for _, allowed := range jobTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}
