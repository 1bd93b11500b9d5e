package services

import (
	"context"
	"errors"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplicationService struct {
	db              *pgxpool.Pool
	applicationRepo *repository.ApplicationRepository
	jobRepo         *repository.JobRepository
	workerRepo      *repository.WorkerRepository
	employerRepo    *repository.EmployerRepository
}

func NewApplicationService(
	db *pgxpool.Pool,
	applicationRepo *repository.ApplicationRepository,
	jobRepo *repository.JobRepository,
	workerRepo *repository.WorkerRepository,
	employerRepo *repository.EmployerRepository,
) *ApplicationService {
	return &ApplicationService{
		db:              db,
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		workerRepo:      workerRepo,
		employerRepo:    employerRepo,
	}
}

type ApplyInput struct {
	JobID        int64
	Message      *string
	ProposedRate *int
}

// Apply files an application, bumps the job's counter and notifies the
// employer, all in one transaction.
func (s *ApplicationService) Apply(ctx context.Context, workerUserID int64, input ApplyInput) (*models.Application, error) {
	worker, err := s.workerRepo.GetByUserID(ctx, workerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if job.Status != "open" {
		return nil, ErrJobNotOpen
	}

	employer, err := s.employerRepo.GetByID(ctx, job.EmployerID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txApplicationRepo := repository.NewApplicationRepository(tx)
	txJobRepo := repository.NewJobRepository(tx)
	txNotificationRepo := repository.NewNotificationRepository(tx)

	application, err := txApplicationRepo.Create(ctx, repository.CreateApplicationInput{
		JobID:        input.JobID,
		WorkerID:     worker.ID,
		Message:      input.Message,
		ProposedRate: input.ProposedRate,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	if err := txJobRepo.IncrementApplications(ctx, input.JobID); err != nil {
		return nil, err
	}

	referenceType := "application"
	if _, err := txNotificationRepo.Create(ctx, repository.CreateNotificationInput{
		UserID:        employer.UserID,
		Title:         "New application",
		Message:       worker.Name + " applied for " + job.Title,
		Type:          "application",
		ReferenceID:   &application.ID,
		ReferenceType: &referenceType,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return application, nil
}

// Respond accepts or rejects a pending application. Accepting also moves the
// job to in_progress so other applicants can no longer be accepted.
func (s *ApplicationService) Respond(ctx context.Context, employerUserID, applicationID int64, accept bool) (*models.Application, error) {
	employer, err := s.employerRepo.GetByUserID(ctx, employerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if application.Status != "pending" {
		return nil, ErrInvalidTransition
	}

	job, err := s.jobRepo.GetByID(ctx, application.JobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employer.ID {
		return nil, ErrNotJobOwner
	}

	worker, err := s.workerRepo.GetByID(ctx, application.WorkerID)
	if err != nil {
		return nil, err
	}

	status := "rejected"
	if accept {
		status = "accepted"
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txApplicationRepo := repository.NewApplicationRepository(tx)
	txJobRepo := repository.NewJobRepository(tx)
	txNotificationRepo := repository.NewNotificationRepository(tx)

	updated, err := txApplicationRepo.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return nil, err
	}
	if accept {
		if _, err := txJobRepo.UpdateStatusIfCurrent(ctx, job.ID, "open", "in_progress"); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrJobNotOpen
			}
			return nil, err
		}
	}

	referenceType := "application"
	title := "Application rejected"
	message := "Your application for " + job.Title + " was not selected"
	if accept {
		title = "Application accepted"
		message = "You got the job: " + job.Title
	}
	if _, err := txNotificationRepo.Create(ctx, repository.CreateNotificationInput{
		UserID:        worker.UserID,
		Title:         title,
		Message:       message,
		Type:          "application",
		ReferenceID:   &updated.ID,
		ReferenceType: &referenceType,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ApplicationService) Withdraw(ctx context.Context, workerUserID, applicationID int64) (*models.Application, error) {
	worker, err := s.workerRepo.GetByUserID(ctx, workerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if application.WorkerID != worker.ID {
		return nil, ErrNotApplicant
	}
	if application.Status != "pending" {
		return nil, ErrInvalidTransition
	}

	return s.applicationRepo.UpdateStatus(ctx, applicationID, "withdrawn")
}

func (s *ApplicationService) ListForWorker(ctx context.Context, workerUserID int64) ([]models.Application, error) {
	worker, err := s.workerRepo.GetByUserID(ctx, workerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return s.applicationRepo.ListByWorker(ctx, worker.ID)
}

func (s *ApplicationService) ListForJob(ctx context.Context, employerUserID, jobID int64) ([]models.Application, error) {
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
	return s.applicationRepo.ListByJob(ctx, jobID)
}
