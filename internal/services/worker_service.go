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

type WorkerService struct {
	db         *pgxpool.Pool
	workerRepo *repository.WorkerRepository
}

func NewWorkerService(db *pgxpool.Pool, workerRepo *repository.WorkerRepository) *WorkerService {
	return &WorkerService{db: db, workerRepo: workerRepo}
}

// CreateProfile creates the worker profile and seeds its verification and
// wallet rows in one transaction. The phone is already verified at this
// point, so the account starts with the phone share of the trust score.
func (s *WorkerService) CreateProfile(ctx context.Context, input repository.CreateWorkerInput) (*models.Worker, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txWorkerRepo := repository.NewWorkerRepository(tx)
	txVerificationRepo := repository.NewVerificationRepository(tx)
	txWalletRepo := repository.NewWalletRepository(tx)

	worker, err := txWorkerRepo.Create(ctx, input)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrProfileExists
		}
		return nil, err
	}
	if _, err := txVerificationRepo.CreateInitial(ctx, input.UserID, TrustScore(true, false, false, false)); err != nil {
		return nil, err
	}
	if _, err := txWalletRepo.Create(ctx, input.UserID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return worker, nil
}

func (s *WorkerService) GetProfile(ctx context.Context, userID int64) (*models.Worker, error) {
	worker, err := s.workerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return worker, nil
}

func (s *WorkerService) GetByID(ctx context.Context, workerID int64) (*models.Worker, error) {
	worker, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return worker, nil
}

func (s *WorkerService) UpdateProfile(ctx context.Context, userID int64, input repository.UpdateWorkerInput) (*models.Worker, error) {
	worker, err := s.workerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return s.workerRepo.UpdatePartial(ctx, worker.ID, input)
}

func (s *WorkerService) SetActive(ctx context.Context, userID int64, active bool) error {
	worker, err := s.workerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProfileNotFound
		}
		return err
	}
	return s.workerRepo.SetActive(ctx, worker.ID, active)
}
