package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/unibites/campus-bites/internal/cache"
	"github.com/unibites/campus-bites/internal/config"
	"github.com/unibites/campus-bites/internal/database"
	"github.com/unibites/campus-bites/internal/handler"
	"github.com/unibites/campus-bites/internal/middleware"
	"github.com/unibites/campus-bites/internal/repository"
	"github.com/unibites/campus-bites/internal/service"
	"github.com/unibites/campus-bites/internal/storage"
	"github.com/unibites/campus-bites/pkg/logger"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	// Redis backs the rate limiter and the top-rated cache
	redisOpt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	restaurantCache := cache.NewRestaurantCacheWithClient(redisClient, cfg.TopRatedCacheTTL)

	// Object storage for profile pictures
	pictureStore, err := storage.NewMinioStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := pictureStore.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("Failed to ensure storage bucket: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	restaurantRepo := repository.NewRestaurantRepository(database.DB)
	reviewRepo := repository.NewReviewRepository(database.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.Environment)
	userService := service.NewUserService(userRepo)
	restaurantService := service.NewRestaurantService(restaurantRepo, restaurantCache)
	reviewService := service.NewReviewService(reviewRepo, restaurantService, database.DB)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, pictureStore)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))
	router.Use(rateLimiter.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")

	// Auth
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/profile", middleware.AuthMiddleware(cfg.JWTSecret), authHandler.Profile)

	// Users
	users := api.Group("/users", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		users.GET("", middleware.AdminMiddleware(), userHandler.List)
		users.POST("/admin", middleware.AdminMiddleware(), userHandler.CreateAdmin)
		users.GET("/:id", userHandler.Get)
		users.PATCH("/:id", userHandler.Update)
		users.PATCH("/:id/role", middleware.AdminMiddleware(), userHandler.ChangeRole)
		users.PATCH("/:id/activate", middleware.AdminMiddleware(), userHandler.Activate)
		users.PATCH("/:id/deactivate", middleware.AdminMiddleware(), userHandler.Deactivate)
		users.PATCH("/:id/verify", middleware.AdminMiddleware(), userHandler.Verify)
		users.DELETE("/:id", middleware.AdminMiddleware(), userHandler.Delete)
		users.POST("/:id/picture", userHandler.UploadPicture)
	}

	// Restaurants
	restaurants := api.Group("/restaurants")
	{
		restaurants.GET("", middleware.OptionalAuthMiddleware(cfg.JWTSecret), restaurantHandler.List)
		restaurants.GET("/top-rated", restaurantHandler.TopRated)
		restaurants.GET("/search", restaurantHandler.Search)
		restaurants.GET("/university/:university", restaurantHandler.ByUniversity)
		restaurants.GET("/:id", restaurantHandler.Get)

		authed := restaurants.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
		{
			authed.POST("", restaurantHandler.Create)
			authed.PATCH("/:id", restaurantHandler.Update)
			authed.DELETE("/:id", restaurantHandler.Delete)
			authed.PATCH("/:id/approve", middleware.AdminMiddleware(), restaurantHandler.Approve)
			authed.PATCH("/:id/unapprove", middleware.AdminMiddleware(), restaurantHandler.Unapprove)
		}
	}

	// Reviews
	reviews := api.Group("/reviews")
	{
		reviews.GET("/restaurant/:restaurantId", middleware.OptionalAuthMiddleware(cfg.JWTSecret), reviewHandler.ByRestaurant)
		reviews.GET("/restaurant/:restaurantId/stats", reviewHandler.Stats)
		reviews.GET("/top", reviewHandler.Top)
		reviews.GET("/:id", reviewHandler.Get)

		authed := reviews.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
		{
			authed.POST("/restaurant/:restaurantId", reviewHandler.Create)
			authed.GET("/restaurant/:restaurantId/my-review", reviewHandler.MyReview)
			authed.GET("/my-reviews", reviewHandler.MyReviews)
			authed.GET("/unapproved", middleware.AdminMiddleware(), reviewHandler.Unapproved)
			authed.PATCH("/:id", reviewHandler.Update)
			authed.DELETE("/:id", reviewHandler.Delete)
			authed.PATCH("/:id/approve", middleware.AdminMiddleware(), reviewHandler.Approve)
			authed.PATCH("/:id/unapprove", middleware.AdminMiddleware(), reviewHandler.Unapprove)
			authed.PATCH("/:id/helpful", reviewHandler.MarkHelpful)
		}
	}

	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
