package repository

import (
	"context"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
)

const paymentColumns = `id, job_id, payer_id, payee_id, amount, status, payment_method,
	   transaction_id, notes, created_at, updated_at, released_at`

type CreatePaymentInput struct {
	JobID         int64
	PayerID       int64
	PayeeID       int64
	Amount        int
	PaymentMethod *string
	TransactionID string
	Notes         *string
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create records a payment in held status; the amount stays in escrow until
// released or refunded.
func (r *PaymentRepository) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	query := `
		INSERT INTO payments (job_id, payer_id, payee_id, amount, status, payment_method, transaction_id, notes)
		VALUES ($1, $2, $3, $4, 'held', $5, $6, $7)
		RETURNING ` + paymentColumns
	return r.scanPayment(r.db.QueryRow(ctx, query,
		input.JobID,
		input.PayerID,
		input.PayeeID,
		input.Amount,
		input.PaymentMethod,
		input.TransactionID,
		input.Notes,
	))
}

func (r *PaymentRepository) GetByID(ctx context.Context, paymentID int64) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return r.scanPayment(r.db.QueryRow(ctx, query, paymentID))
}

func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, paymentID int64) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	return r.scanPayment(r.db.QueryRow(ctx, query, paymentID))
}

func (r *PaymentRepository) GetByJobID(ctx context.Context, jobID int64) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE job_id = $1 ORDER BY id DESC LIMIT 1`
	return r.scanPayment(r.db.QueryRow(ctx, query, jobID))
}

// UpdateStatusIfCurrent transitions the payment only when it is still in the
// expected state, so concurrent releases cannot double-pay.
func (r *PaymentRepository) UpdateStatusIfCurrent(ctx context.Context, paymentID int64, currentStatus, nextStatus string) (*models.Payment, error) {
	query := `
		UPDATE payments
		SET status = $3,
			released_at = CASE WHEN $3 = 'released' THEN NOW() ELSE released_at END,
			updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + paymentColumns
	return r.scanPayment(r.db.QueryRow(ctx, query, paymentID, currentStatus, nextStatus))
}

func (r *PaymentRepository) scanPayment(row rowScanner) (*models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.ID,
		&payment.JobID,
		&payment.PayerID,
		&payment.PayeeID,
		&payment.Amount,
		&payment.Status,
		&payment.PaymentMethod,
		&payment.TransactionID,
		&payment.Notes,
		&payment.CreatedAt,
		&payment.UpdatedAt,
		&payment.ReleasedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
