package repository

import (
	"context"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
)

const verificationColumns = `id, user_id, phone_verified, aadhaar_verified, upi_verified,
	   ngo_verified, upi_id, trust_score, verified_at, created_at, updated_at`

type UpdateVerificationInput struct {
	AadhaarVerified *bool
	UPIVerified     *bool
	NGOVerified     *bool
	UPIID           *string
	TrustScore      int
}

type VerificationRepository struct {
	db DBTX
}

func NewVerificationRepository(db DBTX) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// CreateInitial seeds a verification row for a fresh profile: phone is
// verified by virtue of the OTP login, nothing else is.
func (r *VerificationRepository) CreateInitial(ctx context.Context, userID int64, trustScore int) (*models.Verification, error) {
	query := `
		INSERT INTO verifications (user_id, phone_verified, trust_score)
		VALUES ($1, TRUE, $2)
		RETURNING ` + verificationColumns
	return r.scanVerification(r.db.QueryRow(ctx, query, userID, trustScore))
}

func (r *VerificationRepository) GetByUserID(ctx context.Context, userID int64) (*models.Verification, error) {
	query := `SELECT ` + verificationColumns + ` FROM verifications WHERE user_id = $1`
	return r.scanVerification(r.db.QueryRow(ctx, query, userID))
}

func (r *VerificationRepository) Update(ctx context.Context, userID int64, input UpdateVerificationInput) (*models.Verification, error) {
	query := `
		UPDATE verifications
		SET aadhaar_verified = COALESCE($1, aadhaar_verified),
			upi_verified = COALESCE($2, upi_verified),
			ngo_verified = COALESCE($3, ngo_verified),
			upi_id = COALESCE($4, upi_id),
			trust_score = $5,
			verified_at = NOW(),
			updated_at = NOW()
		WHERE user_id = $6
		RETURNING ` + verificationColumns
	return r.scanVerification(r.db.QueryRow(ctx, query,
		input.AadhaarVerified,
		input.UPIVerified,
		input.NGOVerified,
		input.UPIID,
		input.TrustScore,
		userID,
	))
}

func (r *VerificationRepository) scanVerification(row rowScanner) (*models.Verification, error) {
	var verification models.Verification
	err := row.Scan(
		&verification.ID,
		&verification.UserID,
		&verification.PhoneVerified,
		&verification.AadhaarVerified,
		&verification.UPIVerified,
		&verification.NGOVerified,
		&verification.UPIID,
		&verification.TrustScore,
		&verification.VerifiedAt,
		&verification.CreatedAt,
		&verification.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &verification, nil
}
