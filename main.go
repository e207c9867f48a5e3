package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/dracohq/seller_backend/config"
	"github.com/dracohq/seller_backend/controllers"
	"github.com/dracohq/seller_backend/middleware"
	"github.com/dracohq/seller_backend/repositories"
	"github.com/dracohq/seller_backend/routes"
	"github.com/dracohq/seller_backend/services"
	"github.com/dracohq/seller_backend/utils"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis (optional; webhook caching degrades gracefully)
	redisClient := config.ConnectRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Connect to database
	client := config.ConnectDB()
	db := config.GetDatabase(client)

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeaders())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Seller Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize repositories
	sellerRepo := repositories.NewSellerRepository(db)
	rewardRepo := repositories.NewRewardRepository(db)
	payoutRepo := repositories.NewPayoutRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Initialize services
	sellerService := services.NewSellerService(sellerRepo, userRepo)
	referralService := services.NewReferralService(sellerRepo)
	rewardService := services.NewRewardService(rewardRepo, sellerRepo)
	payoutService := services.NewPayoutService(payoutRepo, sellerRepo,
		services.NotifierFunc(utils.SendNotificationEmail))

	// Initialize controllers
	authController := controllers.NewAuthController(userRepo)
	sellerController := controllers.NewSellerController(sellerService, referralService)
	payoutController := controllers.NewPayoutController(payoutService)
	webhookController := controllers.NewWebhookController(sellerService, rewardService, redisClient)

	// Register routes
	routes.RegisterAuthRoutes(e, authController)
	routes.RegisterSellerRoutes(e, sellerController)
	routes.RegisterPayoutRoutes(e, payoutController)
	routes.RegisterWebhookRoutes(e, webhookController)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
