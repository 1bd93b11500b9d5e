package services

import (
	"context"
	"errors"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/repository"
	"github.com/jackc/pgx/v5"
)

// Trust score weights. A fully verified account lands on exactly 100.
const (
	trustPhonePoints = 25
	trustUPIPoints   = 25
	trustNGOPoints   = 50
)

type VerificationService struct {
	verificationRepo *repository.VerificationRepository
}

func NewVerificationService(verificationRepo *repository.VerificationRepository) *VerificationService {
	return &VerificationService{verificationRepo: verificationRepo}
}

type UpdateVerificationInput struct {
	AadhaarVerified *bool
	UPIVerified     *bool
	NGOVerified     *bool
	UPIID           *string
}

func (s *VerificationService) Get(ctx context.Context, userID int64) (*models.Verification, error) {
	verification, err := s.verificationRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return verification, nil
}

// Update merges the submitted flags over the stored ones and recomputes the
// trust score from the merged state, so the score can never drift from the
// flags it is derived from.
func (s *VerificationService) Update(ctx context.Context, userID int64, input UpdateVerificationInput) (*models.Verification, error) {
	current, err := s.verificationRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}

	aadhaar := current.AadhaarVerified
	if input.AadhaarVerified != nil {
		aadhaar = *input.AadhaarVerified
	}
	upi := current.UPIVerified
	if input.UPIVerified != nil {
		upi = *input.UPIVerified
	}
	ngo := current.NGOVerified
	if input.NGOVerified != nil {
		ngo = *input.NGOVerified
	}

	return s.verificationRepo.Update(ctx, userID, repository.UpdateVerificationInput{
		AadhaarVerified: input.AadhaarVerified,
		UPIVerified:     input.UPIVerified,
		NGOVerified:     input.NGOVerified,
		UPIID:           input.UPIID,
		TrustScore:      TrustScore(current.PhoneVerified, aadhaar, upi, ngo),
	})
}

// TrustScore computes the 0-100 trust score from the verification flags.
// Aadhaar is recorded but carries no weight yet; it needs a real KYC
// integration before it can count toward the score.
func TrustScore(phone, aadhaar, upi, ngo bool) int {
	_ = aadhaar

	score := 0
	if phone {
		score += trustPhonePoints
	}
	if upi {
		score += trustUPIPoints
	}
	if ngo {
		score += trustNGOPoints
	}
	return score
}
