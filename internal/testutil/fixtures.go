package testutil

import (
	"github.com/google/uuid"
	"github.com/unibites/campus-bites/internal/models"
	"github.com/unibites/campus-bites/internal/utils"
)

// CreateTestUser builds a user with a real bcrypt hash.
func CreateTestUser(name, email, password string, role models.Role) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		University:   "Test University",
		IsActive:     true,
		Role:         role,
	}, nil
}

// DefaultTestUser returns a default test user (regular user)
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("Test User", "test@example.com", "Test123456", models.RoleUser)
}

// DefaultAdminUser returns a default admin user
func DefaultAdminUser() (*models.User, error) {
	return CreateTestUser("Admin", "admin@example.com", "Admin123456", models.RoleAdmin)
}

// CreateTestRestaurant builds a restaurant owned by creatorID.
func CreateTestRestaurant(creatorID, name string, approved bool) *models.Restaurant {
	return &models.Restaurant{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        models.TypeCafe,
		University:  "Test University",
		Approved:    approved,
		CreatedByID: creatorID,
	}
}

// CreateTestReview builds an approved review for the given pair.
func CreateTestReview(userID, restaurantID string, rating int) *models.Review {
	return &models.Review{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		UserID:       userID,
		Rating:       rating,
		IsApproved:   true,
	}
}
