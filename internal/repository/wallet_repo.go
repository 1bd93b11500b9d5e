package repository

import (
	"context"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
)

const walletColumns = `id, user_id, balance, total_earnings, total_withdrawals, created_at, updated_at`

const walletTransactionColumns = `id, wallet_id, type, amount, description,
	   reference_id, reference_type, balance_after, created_at`

type CreateWalletTransactionInput struct {
	WalletID      int64
	Type          string
	Amount        int
	Description   *string
	ReferenceID   *int64
	ReferenceType *string
	BalanceAfter  int
}

type WalletRepository struct {
	db DBTX
}

func NewWalletRepository(db DBTX) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) Create(ctx context.Context, userID int64) (*models.Wallet, error) {
	query := `
		INSERT INTO wallets (user_id)
		VALUES ($1)
		RETURNING ` + walletColumns
	return r.scanWallet(r.db.QueryRow(ctx, query, userID))
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID int64) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	return r.scanWallet(r.db.QueryRow(ctx, query, userID))
}

// GetByUserIDForUpdate locks the wallet row for the rest of the transaction.
// Callers must be inside a tx or the lock is released immediately.
func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, userID int64) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 FOR UPDATE`
	return r.scanWallet(r.db.QueryRow(ctx, query, userID))
}

func (r *WalletRepository) Credit(ctx context.Context, walletID int64, amount int) (*models.Wallet, error) {
	query := `
		UPDATE wallets
		SET balance = balance + $2, total_earnings = total_earnings + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + walletColumns
	return r.scanWallet(r.db.QueryRow(ctx, query, walletID, amount))
}

func (r *WalletRepository) Debit(ctx context.Context, walletID int64, amount int) (*models.Wallet, error) {
	query := `
		UPDATE wallets
		SET balance = balance - $2, total_withdrawals = total_withdrawals + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + walletColumns
	return r.scanWallet(r.db.QueryRow(ctx, query, walletID, amount))
}

func (r *WalletRepository) CreateTransaction(ctx context.Context, input CreateWalletTransactionInput) (*models.WalletTransaction, error) {
	query := `
		INSERT INTO wallet_transactions (wallet_id, type, amount, description, reference_id, reference_type, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + walletTransactionColumns
	return r.scanTransaction(r.db.QueryRow(ctx, query,
		input.WalletID,
		input.Type,
		input.Amount,
		input.Description,
		input.ReferenceID,
		input.ReferenceType,
		input.BalanceAfter,
	))
}

func (r *WalletRepository) ListTransactions(ctx context.Context, walletID int64, limit int) ([]models.WalletTransaction, error) {
	query := `
		SELECT ` + walletTransactionColumns + `
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, walletID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.WalletTransaction, 0)
	for rows.Next() {
		transaction, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *WalletRepository) scanWallet(row rowScanner) (*models.Wallet, error) {
	var wallet models.Wallet
	err := row.Scan(
		&wallet.ID,
		&wallet.UserID,
		&wallet.Balance,
		&wallet.TotalEarnings,
		&wallet.TotalWithdrawals,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *WalletRepository) scanTransaction(row rowScanner) (*models.WalletTransaction, error) {
	var transaction models.WalletTransaction
	err := row.Scan(
		&transaction.ID,
		&transaction.WalletID,
		&transaction.Type,
		&transaction.Amount,
		&transaction.Description,
		&transaction.ReferenceID,
		&transaction.ReferenceType,
		&transaction.BalanceAfter,
		&transaction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}
