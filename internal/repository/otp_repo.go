package repository

import (
	"context"
	"time"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
)

type OTPRepository struct {
	db DBTX
}

func NewOTPRepository(db DBTX) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) Create(ctx context.Context, phone, codeHash string, expiresAt time.Time) (*models.OTPCode, error) {
	query := `
		INSERT INTO otp_codes (phone, code_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, phone, code_hash, expires_at, consumed_at, created_at
	`
	var code models.OTPCode
	err := r.db.QueryRow(ctx, query, phone, codeHash, expiresAt).Scan(
		&code.ID,
		&code.Phone,
		&code.CodeHash,
		&code.ExpiresAt,
		&code.ConsumedAt,
		&code.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *OTPRepository) GetLatestUnconsumed(ctx context.Context, phone string) (*models.OTPCode, error) {
	query := `
		SELECT id, phone, code_hash, expires_at, consumed_at, created_at
		FROM otp_codes
		WHERE phone = $1 AND consumed_at IS NULL
		ORDER BY id DESC
		LIMIT 1
	`
	var code models.OTPCode
	err := r.db.QueryRow(ctx, query, phone).Scan(
		&code.ID,
		&code.Phone,
		&code.CodeHash,
		&code.ExpiresAt,
		&code.ConsumedAt,
		&code.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *OTPRepository) MarkConsumed(ctx context.Context, id int64) error {
	query := `UPDATE otp_codes SET consumed_at = NOW() WHERE id = $1 AND consumed_at IS NULL`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
