package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/repository"
	"github.com/Durgaprasad-Developer/KaamSethu/pkg/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var indianMobile = regexp.MustCompile(`^[6-9]\d{9}$`)

type AuthService struct {
	db           *pgxpool.Pool
	userRepo     *repository.UserRepository
	otpRepo      *repository.OTPRepository
	workerRepo   *repository.WorkerRepository
	employerRepo *repository.EmployerRepository
	jwtSecret    string
	otpTTL       time.Duration
	devMode      bool
}

func NewAuthService(
	db *pgxpool.Pool,
	userRepo *repository.UserRepository,
	otpRepo *repository.OTPRepository,
	workerRepo *repository.WorkerRepository,
	employerRepo *repository.EmployerRepository,
	jwtSecret string,
	otpTTL time.Duration,
	devMode bool,
) *AuthService {
	return &AuthService{
		db:           db,
		userRepo:     userRepo,
		otpRepo:      otpRepo,
		workerRepo:   workerRepo,
		employerRepo: employerRepo,
		jwtSecret:    jwtSecret,
		otpTTL:       otpTTL,
		devMode:      devMode,
	}
}

// Account is the authenticated user plus whichever role profile exists. A
// fresh account has a user row but no profile yet.
type Account struct {
	User     *models.User     `json:"user"`
	Worker   *models.Worker   `json:"worker,omitempty"`
	Employer *models.Employer `json:"employer,omitempty"`
}

// RequestOTP issues a fresh one-time code for the phone number. Only the
// bcrypt hash is stored; in development the plain code is logged instead of
// being handed to an SMS gateway.
func (s *AuthService) RequestOTP(ctx context.Context, phone string) error {
	if !indianMobile.MatchString(phone) {
		return ErrInvalidPhone
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	hash, err := utils.HashOTP(code)
	if err != nil {
		return err
	}
	if _, err := s.otpRepo.Create(ctx, phone, hash, time.Now().Add(s.otpTTL)); err != nil {
		return err
	}

	if s.devMode {
		log.Printf("otp for %s: %s", phone, code)
	}
	return nil
}

// VerifyOTP checks the code against the latest unconsumed one for the phone.
// On success it consumes the code, creates the user on first login, and
// returns a signed token.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code, userType string) (*models.User, string, error) {
	if !indianMobile.MatchString(phone) {
		return nil, "", ErrInvalidPhone
	}
	if userType != "worker" && userType != "employer" {
		return nil, "", ErrInvalidUserType
	}

	otp, err := s.otpRepo.GetLatestUnconsumed(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrInvalidOTP
		}
		return nil, "", err
	}
	if time.Now().After(otp.ExpiresAt) {
		return nil, "", ErrOTPExpired
	}
	if !utils.CheckOTP(code, otp.CodeHash) {
		return nil, "", ErrInvalidOTP
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txUserRepo := repository.NewUserRepository(tx)
	txOTPRepo := repository.NewOTPRepository(tx)

	if err := txOTPRepo.MarkConsumed(ctx, otp.ID); err != nil {
		return nil, "", err
	}

	user, err := txUserRepo.GetByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, "", err
		}
		user = &models.User{Phone: phone, UserType: userType}
		if err := txUserRepo.Create(ctx, user); err != nil {
			return nil, "", err
		}
	} else if err := txUserRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), user.UserType, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*Account, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	account := &Account{User: user}
	switch user.UserType {
	case "worker":
		worker, err := s.workerRepo.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		account.Worker = worker
	case "employer":
		employer, err := s.employerRepo.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		account.Employer = employer
	}
	return account, nil
}
