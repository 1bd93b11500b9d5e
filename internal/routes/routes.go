package routes

import (
	"time"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/config"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/handlers"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/middleware"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/repository"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/services"
	chatws "github.com/Durgaprasad-Developer/KaamSethu/internal/websocket"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	employerRepo := repository.NewEmployerRepository(db)
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authService := services.NewAuthService(
		db,
		userRepo,
		otpRepo,
		workerRepo,
		employerRepo,
		cfg.JWTSecret,
		time.Duration(cfg.OTPTTLMinutes)*time.Minute,
		cfg.IsDevelopment(),
	)
	workerService := services.NewWorkerService(db, workerRepo)
	employerService := services.NewEmployerService(db, employerRepo)
	matchingService := services.NewMatchingService(workerRepo, cfg.EnableMatchFallback)
	jobService := services.NewJobService(db, jobRepo, employerRepo)
	applicationService := services.NewApplicationService(db, applicationRepo, jobRepo, workerRepo, employerRepo)
	reviewService := services.NewReviewService(db, reviewRepo, notificationRepo, jobRepo)
	verificationService := services.NewVerificationService(verificationRepo)
	walletService := services.NewWalletService(db, walletRepo, paymentRepo, jobRepo, applicationRepo, workerRepo, employerRepo)
	messageService := services.NewMessageService(db, messageRepo, userRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	chatHub := chatws.NewHub()
	go chatHub.Run()

	authHandler := handlers.NewAuthHandler(authService)
	workerHandler := handlers.NewWorkerHandler(workerService, matchingService)
	employerHandler := handlers.NewEmployerHandler(employerService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	verificationHandler := handlers.NewVerificationHandler(verificationService)
	walletHandler := handlers.NewWalletHandler(walletService)
	messageHandler := handlers.NewMessageHandler(messageService, chatHub, cfg.JWTSecret)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/otp/request", authHandler.RequestOTP)
	auth.Post("/otp/verify", authHandler.VerifyOTP)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	workers := authProtected.Group("/workers")
	workers.Post("", workerHandler.CreateProfile)
	workers.Get("/search", workerHandler.SearchWorkers)
	workers.Get("/me", workerHandler.GetMyProfile)
	workers.Patch("/me", workerHandler.UpdateMyProfile)
	workers.Patch("/me/active", workerHandler.SetActive)
	workers.Get("/:id", workerHandler.GetWorker)

	employers := authProtected.Group("/employers")
	employers.Post("", employerHandler.CreateProfile)
	employers.Get("/me", employerHandler.GetMyProfile)
	employers.Get("/:id", employerHandler.GetEmployer)

	jobs := authProtected.Group("/jobs")
	jobs.Post("", jobHandler.PostJob)
	jobs.Get("", jobHandler.SearchJobs)
	jobs.Get("/mine", jobHandler.ListMyJobs)
	jobs.Get("/:id", jobHandler.GetJob)
	jobs.Put("/:id/status", jobHandler.UpdateStatus)
	jobs.Get("/:id/applications", applicationHandler.ListForJob)

	applications := authProtected.Group("/applications")
	applications.Post("", applicationHandler.Apply)
	applications.Get("/mine", applicationHandler.ListMine)
	applications.Put("/:id/respond", applicationHandler.Respond)
	applications.Delete("/:id", applicationHandler.Withdraw)

	reviews := authProtected.Group("/reviews")
	reviews.Post("", reviewHandler.CreateReview)

	users := authProtected.Group("/users")
	users.Get("/:id/reviews", reviewHandler.ListForUser)
	users.Get("/:id/rating", reviewHandler.RatingSummary)

	verifications := authProtected.Group("/verifications")
	verifications.Get("/me", verificationHandler.GetMyVerification)
	verifications.Put("/me", verificationHandler.UpdateMyVerification)

	wallet := authProtected.Group("/wallet")
	wallet.Get("", walletHandler.GetMyWallet)
	wallet.Get("/transactions", walletHandler.ListTransactions)
	wallet.Post("/withdraw", walletHandler.Withdraw)

	payments := authProtected.Group("/payments")
	payments.Post("", walletHandler.CreatePayment)
	payments.Get("/:id", walletHandler.GetPayment)
	payments.Post("/:id/release", walletHandler.ReleasePayment)
	payments.Post("/:id/refund", walletHandler.RefundPayment)

	messages := authProtected.Group("/messages")
	messages.Post("", messageHandler.SendMessage)
	messages.Get("/:userId", messageHandler.GetConversation)
	messages.Put("/:userId/read", messageHandler.MarkConversationRead)

	notifications := authProtected.Group("/notifications")
	notifications.Get("", notificationHandler.ListMine)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	api.Use("/v1/ws", messageHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(messageHandler.HandleWebSocket))
}
