package repository

import (
	"errors"

	"github.com/unibites/campus-bites/internal/models"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) GetByID(id string) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("User").Preload("Restaurant").
		Where("id = ?", id).First(&review).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &review, nil
}

// GetByUserAndRestaurant returns nil when the pair has no review yet;
// that is an expected state, not an error.
func (r *ReviewRepository) GetByUserAndRestaurant(userID, restaurantID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("User").Preload("Restaurant").
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		First(&review).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &review, nil
}

func (r *ReviewRepository) ListByRestaurant(restaurantID string, approvedOnly bool) ([]models.Review, error) {
	query := r.db.Preload("User").Where("restaurant_id = ?", restaurantID)
	if approvedOnly {
		query = query.Where("is_approved = ?", true)
	}

	var reviews []models.Review
	err := query.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) ListByUser(userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) ListUnapproved() ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").Preload("Restaurant").
		Where("is_approved = ?", false).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) Top(limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").Preload("Restaurant").
		Where("is_approved = ?", true).
		Order("rating DESC").Order("helpful_count DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) Save(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *ReviewRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Review{}).Error
}

// AggregateApproved computes AVG and COUNT over the restaurant's
// approved reviews. It accepts the caller's handle so the recompute can
// read and write inside a single transaction.
func (r *ReviewRepository) AggregateApproved(tx *gorm.DB, restaurantID string) (float64, int, error) {
	if tx == nil {
		tx = r.db
	}

	var agg struct {
		AvgRating    float64
		TotalReviews int64
	}
	err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS total_reviews").
		Where("restaurant_id = ? AND is_approved = ?", restaurantID, true).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}

	return agg.AvgRating, int(agg.TotalReviews), nil
}
