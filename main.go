package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"social-reward-system/handlers"
	"social-reward-system/middleware"
	"social-reward-system/models"
	"social-reward-system/services"
	"social-reward-system/social"
	"social-reward-system/utils"
	"social-reward-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
	})

	// Only gateway-forwarded requests are allowed, no exceptions.
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, X-User-ID, X-User-Roles, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.LinkedAccount{},
		&models.VerificationChallenge{},
		&models.Task{},
		&models.Submission{},
		&models.SystemSetting{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}
	for _, stmt := range models.ClaimIndexStatements {
		if err := db.Exec(stmt).Error; err != nil {
			log.Fatal("failed to create claim indexes:", err)
		}
	}

	identityServiceURL := os.Getenv("IDENTITY_SERVICE_URL")
	if identityServiceURL == "" {
		log.Fatal("IDENTITY_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("REWARD_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("REWARD_SERVICE_TOKEN environment variable not set")
	}

	fetcher := social.NewFetcher(utils.HTTPClient)

	accountService := services.NewAccountService(db, fetcher)
	submissionService := services.NewSubmissionService(db, fetcher)
	taskService := services.NewTaskService(db)
	reviewService := services.NewReviewService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	syncWorker := workers.NewUserSyncWorker(db, identityServiceURL, "/api/v1/public/profiles", serviceToken)
	syncWorker.Start(ctx)

	recheckClient := workers.NewProofRecheckClient(db, fetcher)
	go workers.PollPendingProofs(ctx, recheckClient, 10*time.Minute)

	services.StartMaintenanceScheduler(db)

	handlers.SetupSocialRoutes(app, accountService)
	handlers.SetupTaskRoutes(app, taskService, submissionService)
	handlers.SetupAdminRoutes(app, taskService, reviewService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("server error: %v", err)
		}
	}()

	log.Printf("server running on http://localhost:%s", port)
	log.Println("user sync worker running")
	log.Println("proof recheck polling running (every 10m)")
	log.Println("maintenance scheduler running")

	<-ctx.Done()
	log.Println("shutting down server...")
	_ = app.Shutdown()
}
