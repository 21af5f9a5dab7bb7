package service

import (
	"fmt"
	"math"

	"github.com/unibites/campus-bites/internal/models"
	"github.com/unibites/campus-bites/internal/repository"
	"github.com/unibites/campus-bites/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultTopReviewsLimit = 10

type CreateReviewInput struct {
	Rating            int
	Comment           string
	FoodQualityRating *int
	ServiceRating     *int
	ValueRating       *int
	PriceRange        string
}

type UpdateReviewInput struct {
	Rating            *int
	Comment           *string
	FoodQualityRating *int
	ServiceRating     *int
	ValueRating       *int
	PriceRange        *string
}

// RestaurantStats aggregates a restaurant's approved reviews. Sub-rating
// averages are computed only over reviews that carry that sub-rating.
type RestaurantStats struct {
	TotalReviews       int         `json:"total_reviews"`
	AverageRating      float64     `json:"average_rating"`
	RatingDistribution map[int]int `json:"rating_distribution"`
	AverageFoodQuality float64     `json:"average_food_quality"`
	AverageService     float64     `json:"average_service"`
	AverageValue       float64     `json:"average_value"`
}

type ReviewService struct {
	reviewRepo  *repository.ReviewRepository
	restaurants *RestaurantService
	db          *gorm.DB
}

func NewReviewService(reviewRepo *repository.ReviewRepository, restaurants *RestaurantService, db *gorm.DB) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		restaurants: restaurants,
		db:          db,
	}
}

// Create adds a review for a restaurant. At most one review per
// (user, restaurant) pair; a second attempt is a conflict and the
// caller should update instead. The review is auto-approved and the
// restaurant's aggregate is recomputed before returning.
func (s *ReviewService) Create(restaurantID string, input CreateReviewInput, userID string) (*models.Review, error) {
	if err := validateReviewInput(input.Rating, input.Comment, input.FoodQualityRating, input.ServiceRating, input.ValueRating, input.PriceRange); err != nil {
		logger.Log.Warn("Review validation failed",
			zap.String("restaurant_id", restaurantID),
			zap.Error(err),
		)
		return nil, err
	}

	if _, err := s.restaurants.FindByID(restaurantID); err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.GetByUserAndRestaurant(userID, restaurantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Duplicate review rejected",
			zap.String("restaurant_id", restaurantID),
			zap.String("user_id", userID),
		)
		return nil, ErrReviewAlreadyExists
	}

	review := &models.Review{
		RestaurantID:      restaurantID,
		UserID:            userID,
		Rating:            input.Rating,
		Comment:           input.Comment,
		FoodQualityRating: input.FoodQualityRating,
		ServiceRating:     input.ServiceRating,
		ValueRating:       input.ValueRating,
		PriceRange:        input.PriceRange,
		IsApproved:        true, // Reviews are auto-approved
	}

	if err := s.reviewRepo.Create(review); err != nil {
		logger.Log.Error("Failed to create review",
			zap.String("restaurant_id", restaurantID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.recomputeRating(restaurantID); err != nil {
		return nil, err
	}

	logger.Log.Info("Review created",
		zap.String("review_id", review.ID),
		zap.String("restaurant_id", restaurantID),
		zap.Int("rating", review.Rating),
	)

	return review, nil
}

func (s *ReviewService) FindByID(id string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// Update patches a review. Only the author may update; admins can
// delete but not rewrite someone else's words.
func (s *ReviewService) Update(id string, input UpdateReviewInput, userID string) (*models.Review, error) {
	review, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if review.UserID != userID {
		logger.Log.Warn("Review update denied",
			zap.String("review_id", id),
			zap.String("actor_id", userID),
		)
		return nil, ErrForbidden
	}

	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}
	if input.FoodQualityRating != nil {
		review.FoodQualityRating = input.FoodQualityRating
	}
	if input.ServiceRating != nil {
		review.ServiceRating = input.ServiceRating
	}
	if input.ValueRating != nil {
		review.ValueRating = input.ValueRating
	}
	if input.PriceRange != nil {
		review.PriceRange = *input.PriceRange
	}

	if err := validateReviewInput(review.Rating, review.Comment, review.FoodQualityRating, review.ServiceRating, review.ValueRating, review.PriceRange); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(review); err != nil {
		logger.Log.Error("Failed to update review",
			zap.String("review_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.recomputeRating(review.RestaurantID); err != nil {
		return nil, err
	}

	logger.Log.Info("Review updated", zap.String("review_id", id))
	return review, nil
}

// Remove deletes a review. Author or admin only.
func (s *ReviewService) Remove(id string, userID string, isAdmin bool) error {
	review, err := s.FindByID(id)
	if err != nil {
		return err
	}

	if !isAdmin && review.UserID != userID {
		logger.Log.Warn("Review delete denied",
			zap.String("review_id", id),
			zap.String("actor_id", userID),
		)
		return ErrForbidden
	}

	restaurantID := review.RestaurantID
	if err := s.reviewRepo.Delete(id); err != nil {
		logger.Log.Error("Failed to delete review",
			zap.String("review_id", id),
			zap.Error(err),
		)
		return err
	}

	if err := s.recomputeRating(restaurantID); err != nil {
		return err
	}

	logger.Log.Info("Review deleted", zap.String("review_id", id))
	return nil
}

// SetApproved toggles moderation state and recomputes the parent
// aggregate, so the rating always reflects the approved set rather
// than going stale until the next review mutation.
func (s *ReviewService) SetApproved(id string, approved bool) (*models.Review, error) {
	review, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	review.IsApproved = approved
	if err := s.reviewRepo.Save(review); err != nil {
		return nil, err
	}

	if err := s.recomputeRating(review.RestaurantID); err != nil {
		return nil, err
	}

	logger.Log.Info("Review approval changed",
		zap.String("review_id", id),
		zap.Bool("approved", approved),
	)
	return review, nil
}

// MarkHelpful increments the helpful counter. Repeat calls by the same
// user keep counting; there is no per-user vote ledger to de-duplicate
// against.
func (s *ReviewService) MarkHelpful(id string, userID string) (*models.Review, error) {
	review, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	review.HelpfulCount++
	if err := s.reviewRepo.Save(review); err != nil {
		return nil, err
	}

	return review, nil
}

// FindByRestaurant lists a restaurant's reviews, hiding unapproved ones
// from non-admin callers.
func (s *ReviewService) FindByRestaurant(restaurantID string, isAdmin bool) ([]models.Review, error) {
	return s.reviewRepo.ListByRestaurant(restaurantID, !isAdmin)
}

func (s *ReviewService) FindByUser(userID string) ([]models.Review, error) {
	return s.reviewRepo.ListByUser(userID)
}

// GetUserReview returns nil when the user has not reviewed the
// restaurant; absence is an expected state, not an error.
func (s *ReviewService) GetUserReview(restaurantID, userID string) (*models.Review, error) {
	return s.reviewRepo.GetByUserAndRestaurant(userID, restaurantID)
}

func (s *ReviewService) Unapproved() ([]models.Review, error) {
	return s.reviewRepo.ListUnapproved()
}

func (s *ReviewService) TopReviews(limit int) ([]models.Review, error) {
	if limit <= 0 {
		limit = DefaultTopReviewsLimit
	}
	return s.reviewRepo.Top(limit)
}

// Stats aggregates the approved reviews of a restaurant. Returns an
// all-zero structure (with a zero-filled histogram) when none exist.
func (s *ReviewService) Stats(restaurantID string) (*RestaurantStats, error) {
	reviews, err := s.reviewRepo.ListByRestaurant(restaurantID, true)
	if err != nil {
		return nil, err
	}

	stats := &RestaurantStats{
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return stats, nil
	}

	var ratingSum int
	var foodSum, foodCount int
	var serviceSum, serviceCount int
	var valueSum, valueCount int

	for _, review := range reviews {
		ratingSum += review.Rating
		stats.RatingDistribution[review.Rating]++

		if review.FoodQualityRating != nil {
			foodSum += *review.FoodQualityRating
			foodCount++
		}
		if review.ServiceRating != nil {
			serviceSum += *review.ServiceRating
			serviceCount++
		}
		if review.ValueRating != nil {
			valueSum += *review.ValueRating
			valueCount++
		}
	}

	stats.TotalReviews = len(reviews)
	stats.AverageRating = round2(float64(ratingSum) / float64(len(reviews)))
	if foodCount > 0 {
		stats.AverageFoodQuality = round2(float64(foodSum) / float64(foodCount))
	}
	if serviceCount > 0 {
		stats.AverageService = round2(float64(serviceSum) / float64(serviceCount))
	}
	if valueCount > 0 {
		stats.AverageValue = round2(float64(valueSum) / float64(valueCount))
	}

	return stats, nil
}

// recomputeRating rebuilds the restaurant's aggregate from its approved
// reviews. A full recompute per mutation is O(n) in review count but
// cannot drift; the read and write share one transaction so concurrent
// review mutations cannot interleave a stale aggregate.
func (s *ReviewService) recomputeRating(restaurantID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		avg, count, err := s.reviewRepo.AggregateApproved(tx, restaurantID)
		if err != nil {
			return err
		}
		return s.restaurants.ApplyRatingUpdate(tx, restaurantID, round2(avg), count)
	})
	if err != nil {
		logger.Log.Error("Rating recompute failed",
			zap.String("restaurant_id", restaurantID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func validateReviewInput(rating int, comment string, foodQuality, serviceRating, valueRating *int, priceRange string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	if comment != "" && (len(comment) < 10 || len(comment) > 500) {
		return fmt.Errorf("%w: comment must be 10-500 characters", ErrInvalidInput)
	}
	for name, sub := range map[string]*int{
		"food quality rating": foodQuality,
		"service rating":      serviceRating,
		"value rating":        valueRating,
	} {
		if sub != nil && (*sub < 1 || *sub > 5) {
			return fmt.Errorf("%w: %s must be between 1 and 5", ErrInvalidInput, name)
		}
	}
	if len(priceRange) > 50 {
		return fmt.Errorf("%w: price range must be at most 50 characters", ErrInvalidInput)
	}
	return nil
}
