package services

import "errors"

var (
	ErrInvalidQuery = errors.New("invalid match query")

	ErrInvalidOTP      = errors.New("invalid otp code")
	ErrOTPExpired      = errors.New("otp code expired")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrInvalidUserType = errors.New("user type must be worker or employer")

	ErrUserNotFound         = errors.New("user not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileExists        = errors.New("profile already exists")
	ErrJobNotFound          = errors.New("job not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrAlreadyApplied       = errors.New("already applied to this job")
	ErrJobNotOpen           = errors.New("job is not open")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrNotJobOwner          = errors.New("job belongs to another employer")
	ErrNotApplicant         = errors.New("application belongs to another worker")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrSelfReview           = errors.New("cannot review yourself")
	ErrAlreadyReviewed      = errors.New("job already reviewed")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentNotHeld       = errors.New("payment is not in held status")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInsufficientBalance  = errors.New("insufficient wallet balance")
	ErrVerificationNotFound = errors.New("verification record not found")
	ErrMessageToSelf        = errors.New("cannot message yourself")
	ErrEmptyMessage         = errors.New("message content is empty")
)
