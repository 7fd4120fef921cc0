package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dealspot/internal/handlers"
	"dealspot/internal/middleware"
	"dealspot/internal/models"
	"dealspot/internal/repositories"
	"dealspot/internal/services"
	"dealspot/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("JWT_SECRET", "changeme")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SEED_DEMO", false)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Repositories ---
	// An empty DATABASE_URL selects the in-memory repositories so the server
	// can run without a database.
	var (
		userRepo     repositories.UserRepository
		merchantRepo repositories.MerchantRepository
		dealRepo     repositories.DealRepository
	)
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory repositories")
		userRepo = repositories.NewMockUserRepository()
		merchantRepo = repositories.NewMockMerchantRepository()
		dealRepo = repositories.NewMockDealRepository()
	} else {
		db, err := openDatabase(databaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Merchant{}, &models.User{}, &models.Deal{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		userRepo = repositories.NewGORMUserRepository(db)
		merchantRepo = repositories.NewGORMMerchantRepository(db)
		dealRepo = repositories.NewGORMDealRepository(db)
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeDealEvents(func(msg amqp.Delivery) error {
			log.Printf("Received deal event %s: %s", msg.Type, string(msg.Body))
			return nil
		}); err != nil {
			log.Printf("Failed to start deal events consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL not set, deal events disabled")
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo, jwtSecret)
	dealService := services.NewDealService(dealRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	dealHandler := handlers.NewDealHandler(dealService)

	// --- Demo data ---
	if viper.GetBool("SEED_DEMO") {
		seedDemoData(merchantRepo, userRepo, dealRepo)
	}

	// --- Fiber app and routes ---
	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	})

	authHandler.RegisterRoutes(app)

	dealRoutes := app.Group("/deals",
		middleware.AuthRequired(authService),
		middleware.MerchantRequired(authService),
	)
	dealHandler.RegisterRoutes(dealRoutes)

	// --- Start HTTP server with graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", appPort)
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase opens a GORM connection. DSNs starting with postgres use the
// PostgreSQL driver; anything else is treated as a sqlite path or DSN.
func openDatabase(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.HasPrefix(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// seedDemoData idempotently creates a demo merchant, a demo user attached to
// it, and a few deals if the merchant has none.
//
// Demo credentials:
//
//	email:    demo@merchant.com
//	password: Password123!
func seedDemoData(merchantRepo repositories.MerchantRepository, userRepo repositories.UserRepository, dealRepo repositories.DealRepository) {
	merchant, err := merchantRepo.GetByName("Demo Merchant")
	if err != nil {
		merchant = &models.Merchant{Name: "Demo Merchant"}
		if err := merchantRepo.Create(merchant); err != nil {
			log.Printf("Error seeding demo merchant: %v", err)
			return
		}
	}

	if _, err := userRepo.GetByEmail("demo@merchant.com"); err != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing demo password: %v", err)
			return
		}
		user := &models.User{
			Email:        "demo@merchant.com",
			PasswordHash: string(hashed),
			MerchantID:   &merchant.ID,
		}
		if err := userRepo.Create(user); err != nil {
			log.Printf("Error seeding demo user: %v", err)
			return
		}
	}

	_, total, err := dealRepo.ListByMerchant(merchant.ID, repositories.DealFilter{Limit: 1})
	if err != nil || total > 0 {
		return
	}
	deals := []models.Deal{
		{Title: "10% off at checkout", Description: "Apply at checkout to receive 10% discount.", Active: true, MerchantID: merchant.ID},
		{Title: "BOGO on accessories", Description: "Buy one accessory, get one free.", Active: true, MerchantID: merchant.ID},
		{Title: "Free shipping over $50", Description: "Orders over $50 qualify for free shipping.", Active: true, MerchantID: merchant.ID},
	}
	for i := range deals {
		if err := dealRepo.Create(&deals[i]); err != nil {
			log.Printf("Error seeding deal %q: %v", deals[i].Title, err)
		}
	}
	log.Println("Seed complete: demo@merchant.com / Password123!")
}
