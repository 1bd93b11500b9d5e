package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/repository"
)

var (
	testDBOnce sync.Once
	testDBPool *pgxpool.Pool
	testDBErr  error
)

func TestMarketplaceHireAndPayFlow(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)

	workerUserID := createTestUser(t, ctx, pool, "worker")
	employerUserID := createTestUser(t, ctx, pool, "employer")
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, workerUserID, employerUserID) })

	workerService := NewWorkerService(pool, repository.NewWorkerRepository(pool))
	employerService := NewEmployerService(pool, repository.NewEmployerRepository(pool))
	jobService := NewJobService(pool, repository.NewJobRepository(pool), repository.NewEmployerRepository(pool))
	applicationService := NewApplicationService(
		pool,
		repository.NewApplicationRepository(pool),
		repository.NewJobRepository(pool),
		repository.NewWorkerRepository(pool),
		repository.NewEmployerRepository(pool),
	)
	reviewService := NewReviewService(
		pool,
		repository.NewReviewRepository(pool),
		repository.NewNotificationRepository(pool),
		repository.NewJobRepository(pool),
	)
	walletService := NewWalletService(
		pool,
		repository.NewWalletRepository(pool),
		repository.NewPaymentRepository(pool),
		repository.NewJobRepository(pool),
		repository.NewApplicationRepository(pool),
		repository.NewWorkerRepository(pool),
		repository.NewEmployerRepository(pool),
	)

	daily := 500
	worker, err := workerService.CreateProfile(ctx, repository.CreateWorkerInput{
		UserID:    workerUserID,
		Name:      "Integration Worker",
		Skill:     "Plumber",
		Location:  "Andheri West",
		Languages: []string{"Hindi"},
		DailyRate: &daily,
	})
	if err != nil {
		t.Fatalf("CreateProfile worker: %v", err)
	}
	if _, err := employerService.CreateProfile(ctx, repository.CreateEmployerInput{
		UserID:   employerUserID,
		Name:     "Integration Employer",
		Location: "Andheri East",
	}); err != nil {
		t.Fatalf("CreateProfile employer: %v", err)
	}

	job, err := jobService.PostJob(ctx, employerUserID, repository.CreateJobInput{
		Title:       "Fix kitchen sink",
		Skill:       "Plumber",
		Description: "Leaking pipe under the sink",
		Location:    "Andheri East",
		Budget:      600,
		BudgetType:  "daily",
	})
	if err != nil {
		t.Fatalf("PostJob: %v", err)
	}

	application, err := applicationService.Apply(ctx, workerUserID, ApplyInput{JobID: job.ID})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	accepted, err := applicationService.Respond(ctx, employerUserID, application.ID, true)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if accepted.Status != "accepted" {
		t.Fatalf("expected accepted application, got %q", accepted.Status)
	}

	inProgress, err := jobService.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if inProgress.Status != "in_progress" {
		t.Fatalf("expected in_progress job after accept, got %q", inProgress.Status)
	}

	payment, err := walletService.CreatePayment(ctx, employerUserID, CreatePaymentInput{
		JobID:  job.ID,
		Amount: 600,
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	if payment.Status != "held" {
		t.Fatalf("expected held payment, got %q", payment.Status)
	}

	if _, err := jobService.UpdateStatus(ctx, employerUserID, job.ID, "completed"); err != nil {
		t.Fatalf("UpdateStatus completed: %v", err)
	}

	released, err := walletService.ReleasePayment(ctx, employerUserID, payment.ID)
	if err != nil {
		t.Fatalf("ReleasePayment: %v", err)
	}
	if released.Status != "released" {
		t.Fatalf("expected released payment, got %q", released.Status)
	}
	if _, err := walletService.ReleasePayment(ctx, employerUserID, payment.ID); err == nil {
		t.Fatal("expected second release to fail")
	}

	wallet, err := walletService.GetWallet(ctx, workerUserID)
	if err != nil {
		t.Fatalf("GetWallet: %v", err)
	}
	if wallet.Balance != 600 || wallet.TotalEarnings != 600 {
		t.Fatalf("expected balance 600 after release, got %+v", wallet)
	}

	withdrawn, err := walletService.Withdraw(ctx, workerUserID, 200)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if withdrawn.Balance != 400 || withdrawn.TotalWithdrawals != 200 {
		t.Fatalf("expected balance 400 after withdrawal, got %+v", withdrawn)
	}
	if _, err := walletService.Withdraw(ctx, workerUserID, 1000); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if _, err := reviewService.CreateReview(ctx, employerUserID, CreateReviewInput{
		JobID:      job.ID,
		RevieweeID: workerUserID,
		Rating:     5,
	}); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	rated, err := workerService.GetByID(ctx, worker.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if rated.Rating != 5 || rated.TotalReviews != 1 {
		t.Fatalf("expected rating 5 with 1 review, got %.2f/%d", rated.Rating, rated.TotalReviews)
	}
}

func TestMatchingServiceFindsSeededWorker(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)

	workerUserID := createTestUser(t, ctx, pool, "worker")
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, workerUserID) })

	workerService := NewWorkerService(pool, repository.NewWorkerRepository(pool))
	skill := fmt.Sprintf("skill-%d", time.Now().UnixNano())
	daily := 400
	seeded, err := workerService.CreateProfile(ctx, repository.CreateWorkerInput{
		UserID:    workerUserID,
		Name:      "Seeded Worker",
		Skill:     skill,
		Location:  "Juhu",
		Languages: []string{"Marathi"},
		DailyRate: &daily,
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	matchingService := NewMatchingService(repository.NewWorkerRepository(pool), false)
	ranked, err := matchingService.Match(ctx, MatchQuery{Skill: skill}, 20)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(ranked) != 1 || ranked[0].ID != seeded.ID {
		t.Fatalf("expected seeded worker, got %+v", ranked)
	}
}

func integrationTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testDBOnce.Do(func() {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(filepath.Join("..", "..", ".env"))

		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			testDBErr = fmt.Errorf("DB_URL is not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			testDBErr = err
			return
		}

		testDBPool, testDBErr = pgxpool.NewWithConfig(context.Background(), cfg)
		if testDBErr != nil {
			return
		}
		testDBErr = testDBPool.Ping(context.Background())
	})

	if testDBErr != nil {
		t.Skipf("skipping integration test: %v", testDBErr)
	}
	return testDBPool
}

var testPhoneCounter int64

func createTestUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userType string) int64 {
	t.Helper()

	testPhoneCounter++
	phone := fmt.Sprintf("9%09d", (time.Now().UnixNano()+testPhoneCounter)%1_000_000_000)
	user := &models.User{Phone: phone, UserType: userType}
	if err := repository.NewUserRepository(pool).Create(ctx, user); err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user.ID
}

func cleanupTestUsers(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userIDs ...int64) {
	t.Helper()

	statements := []string{
		`DELETE FROM notifications WHERE user_id = ANY($1)`,
		`DELETE FROM wallet_transactions WHERE wallet_id IN (SELECT id FROM wallets WHERE user_id = ANY($1))`,
		`DELETE FROM payments WHERE payer_id = ANY($1) OR payee_id = ANY($1)`,
		`DELETE FROM wallets WHERE user_id = ANY($1)`,
		`DELETE FROM reviews WHERE reviewer_id = ANY($1) OR reviewee_id = ANY($1)`,
		`DELETE FROM messages WHERE sender_id = ANY($1) OR receiver_id = ANY($1)`,
		`DELETE FROM applications WHERE worker_id IN (SELECT id FROM workers WHERE user_id = ANY($1))`,
		`DELETE FROM jobs WHERE employer_id IN (SELECT id FROM employers WHERE user_id = ANY($1))`,
		`DELETE FROM verifications WHERE user_id = ANY($1)`,
		`DELETE FROM workers WHERE user_id = ANY($1)`,
		`DELETE FROM employers WHERE user_id = ANY($1)`,
		`DELETE FROM users WHERE id = ANY($1)`,
	}
	for _, statement := range statements {
		if _, err := pool.Exec(ctx, statement, userIDs); err != nil {
			t.Logf("cleanup: %v", err)
		}
	}
}
