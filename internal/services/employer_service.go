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

type EmployerService struct {
	db           *pgxpool.Pool
	employerRepo *repository.EmployerRepository
}

func NewEmployerService(db *pgxpool.Pool, employerRepo *repository.EmployerRepository) *EmployerService {
	return &EmployerService{db: db, employerRepo: employerRepo}
}

// CreateProfile mirrors the worker flow: profile plus verification and
// wallet rows in one transaction.
func (s *EmployerService) CreateProfile(ctx context.Context, input repository.CreateEmployerInput) (*models.Employer, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txEmployerRepo := repository.NewEmployerRepository(tx)
	txVerificationRepo := repository.NewVerificationRepository(tx)
	txWalletRepo := repository.NewWalletRepository(tx)

	employer, err := txEmployerRepo.Create(ctx, input)
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
	return employer, nil
}

func (s *EmployerService) GetProfile(ctx context.Context, userID int64) (*models.Employer, error) {
	employer, err := s.employerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return employer, nil
}

func (s *EmployerService) GetByID(ctx context.Context, employerID int64) (*models.Employer, error) {
	employer, err := s.employerRepo.GetByID(ctx, employerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return employer, nil
}
