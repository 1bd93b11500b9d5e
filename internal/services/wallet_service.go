package services

import (
	"context"
	"errors"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WalletService struct {
	db              *pgxpool.Pool
	walletRepo      *repository.WalletRepository
	paymentRepo     *repository.PaymentRepository
	jobRepo         *repository.JobRepository
	applicationRepo *repository.ApplicationRepository
	workerRepo      *repository.WorkerRepository
	employerRepo    *repository.EmployerRepository
}

func NewWalletService(
	db *pgxpool.Pool,
	walletRepo *repository.WalletRepository,
	paymentRepo *repository.PaymentRepository,
	jobRepo *repository.JobRepository,
	applicationRepo *repository.ApplicationRepository,
	workerRepo *repository.WorkerRepository,
	employerRepo *repository.EmployerRepository,
) *WalletService {
	return &WalletService{
		db:              db,
		walletRepo:      walletRepo,
		paymentRepo:     paymentRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		workerRepo:      workerRepo,
		employerRepo:    employerRepo,
	}
}

type CreatePaymentInput struct {
	JobID         int64
	Amount        int
	PaymentMethod *string
	Notes         *string
}

// CreatePayment opens an escrow hold for the accepted worker on the job. The
// money only reaches the worker's wallet on release.
func (s *WalletService) CreatePayment(ctx context.Context, employerUserID int64, input CreatePaymentInput) (*models.Payment, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	employer, err := s.employerRepo.GetByUserID(ctx, employerUserID)
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
	if job.EmployerID != employer.ID {
		return nil, ErrNotJobOwner
	}

	payeeUserID, err := s.acceptedWorkerUserID(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	return s.paymentRepo.Create(ctx, repository.CreatePaymentInput{
		JobID:         job.ID,
		PayerID:       employerUserID,
		PayeeID:       payeeUserID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		TransactionID: uuid.NewString(),
		Notes:         input.Notes,
	})
}

// ReleasePayment moves a held payment into the worker's wallet: the payment
// flips to released, the wallet is credited, and a ledger row records the
// balance after the credit. The row lock plus the status guard make a
// concurrent double release impossible.
func (s *WalletService) ReleasePayment(ctx context.Context, employerUserID, paymentID int64) (*models.Payment, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txPaymentRepo := repository.NewPaymentRepository(tx)
	txWalletRepo := repository.NewWalletRepository(tx)
	txNotificationRepo := repository.NewNotificationRepository(tx)

	payment, err := txPaymentRepo.GetByIDForUpdate(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.PayerID != employerUserID {
		return nil, ErrNotJobOwner
	}
	if payment.Status != "held" {
		return nil, ErrPaymentNotHeld
	}

	released, err := txPaymentRepo.UpdateStatusIfCurrent(ctx, paymentID, "held", "released")
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotHeld
		}
		return nil, err
	}

	wallet, err := txWalletRepo.GetByUserIDForUpdate(ctx, payment.PayeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	credited, err := txWalletRepo.Credit(ctx, wallet.ID, payment.Amount)
	if err != nil {
		return nil, err
	}

	description := "Payment released for job"
	referenceType := "payment"
	if _, err := txWalletRepo.CreateTransaction(ctx, repository.CreateWalletTransactionInput{
		WalletID:      wallet.ID,
		Type:          "credit",
		Amount:        payment.Amount,
		Description:   &description,
		ReferenceID:   &payment.ID,
		ReferenceType: &referenceType,
		BalanceAfter:  credited.Balance,
	}); err != nil {
		return nil, err
	}

	if _, err := txNotificationRepo.Create(ctx, repository.CreateNotificationInput{
		UserID:        payment.PayeeID,
		Title:         "Payment received",
		Message:       "A job payment was released to your wallet",
		Type:          "payment",
		ReferenceID:   &payment.ID,
		ReferenceType: &referenceType,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return released, nil
}

// RefundPayment cancels a held escrow. No wallet moves, the hold simply goes
// back to the payer's side of the ledger.
func (s *WalletService) RefundPayment(ctx context.Context, employerUserID, paymentID int64) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.PayerID != employerUserID {
		return nil, ErrNotJobOwner
	}
	if payment.Status != "held" {
		return nil, ErrPaymentNotHeld
	}

	refunded, err := s.paymentRepo.UpdateStatusIfCurrent(ctx, paymentID, "held", "refunded")
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotHeld
		}
		return nil, err
	}
	return refunded, nil
}

// Withdraw debits the wallet after checking the balance under a row lock, so
// two concurrent withdrawals can never overdraw.
func (s *WalletService) Withdraw(ctx context.Context, userID int64, amount int) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txWalletRepo := repository.NewWalletRepository(tx)

	wallet, err := txWalletRepo.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	if wallet.Balance < amount {
		return nil, ErrInsufficientBalance
	}

	debited, err := txWalletRepo.Debit(ctx, wallet.ID, amount)
	if err != nil {
		return nil, err
	}

	description := "Withdrawal"
	referenceType := "withdrawal"
	if _, err := txWalletRepo.CreateTransaction(ctx, repository.CreateWalletTransactionInput{
		WalletID:      wallet.ID,
		Type:          "debit",
		Amount:        amount,
		Description:   &description,
		ReferenceType: &referenceType,
		BalanceAfter:  debited.Balance,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return debited, nil
}

func (s *WalletService) GetWallet(ctx context.Context, userID int64) (*models.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return wallet, nil
}

func (s *WalletService) ListTransactions(ctx context.Context, userID int64, limit int) ([]models.WalletTransaction, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return s.walletRepo.ListTransactions(ctx, wallet.ID, limit)
}

func (s *WalletService) GetPayment(ctx context.Context, userID, paymentID int64) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.PayerID != userID && payment.PayeeID != userID {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *WalletService) acceptedWorkerUserID(ctx context.Context, jobID int64) (int64, error) {
	applications, err := s.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return 0, err
	}
	for _, application := range applications {
		if application.Status != "accepted" {
			continue
		}
		worker, err := s.workerRepo.GetByID(ctx, application.WorkerID)
		if err != nil {
			return 0, err
		}
		return worker.UserID, nil
	}
	return 0, ErrApplicationNotFound
}
