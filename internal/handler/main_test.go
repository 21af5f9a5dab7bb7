package handler

import (
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unibites/campus-bites/internal/middleware"
	"github.com/unibites/campus-bites/internal/repository"
	"github.com/unibites/campus-bites/internal/service"
	"github.com/unibites/campus-bites/internal/testutil"
	"github.com/unibites/campus-bites/pkg/logger"
	"go.uber.org/zap"
)

const testJWTSecret = "handler-test-secret"

// testServer wires the real services against the test database and
// exposes the same routes the production router registers.
type testServer struct {
	router            *gin.Engine
	testDB            *testutil.TestDatabase
	userRepo          *repository.UserRepository
	authService       *service.AuthService
	restaurantService *service.RestaurantService
	reviewService     *service.ReviewService
}

func newTestServer(t *testing.T) *testServer {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := repository.NewUserRepository(testDB.DB)
	restaurantRepo := repository.NewRestaurantRepository(testDB.DB)
	reviewRepo := repository.NewReviewRepository(testDB.DB)

	authService := service.NewAuthService(userRepo, testJWTSecret, time.Hour, "test")
	restaurantService := service.NewRestaurantService(restaurantRepo, nil)
	reviewService := service.NewReviewService(reviewRepo, restaurantService, testDB.DB)

	authHandler := NewAuthHandler(authService)
	restaurantHandler := NewRestaurantHandler(restaurantService)
	reviewHandler := NewReviewHandler(reviewService)

	router := gin.New()
	api := router.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/profile", middleware.AuthMiddleware(testJWTSecret), authHandler.Profile)

	restaurants := api.Group("/restaurants")
	{
		restaurants.GET("", middleware.OptionalAuthMiddleware(testJWTSecret), restaurantHandler.List)
		restaurants.GET("/:id", restaurantHandler.Get)

		authed := restaurants.Group("", middleware.AuthMiddleware(testJWTSecret))
		{
			authed.POST("", restaurantHandler.Create)
			authed.PATCH("/:id", restaurantHandler.Update)
			authed.PATCH("/:id/approve", middleware.AdminMiddleware(), restaurantHandler.Approve)
		}
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/restaurant/:restaurantId", middleware.OptionalAuthMiddleware(testJWTSecret), reviewHandler.ByRestaurant)

		authed := reviews.Group("", middleware.AuthMiddleware(testJWTSecret))
		{
			authed.POST("/restaurant/:restaurantId", reviewHandler.Create)
		}
	}

	return &testServer{
		router:            router,
		testDB:            testDB,
		userRepo:          userRepo,
		authService:       authService,
		restaurantService: restaurantService,
		reviewService:     reviewService,
	}
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}
