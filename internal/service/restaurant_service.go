package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/unibites/campus-bites/internal/cache"
	"github.com/unibites/campus-bites/internal/models"
	"github.com/unibites/campus-bites/internal/repository"
	"github.com/unibites/campus-bites/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var phoneRegex = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,9}$`)

const DefaultTopRatedLimit = 10

type CreateRestaurantInput struct {
	Name          string
	Type          models.RestaurantType
	University    string
	Address       string
	GoogleMapLink string
	Latitude      *float64
	Longitude     *float64
	ContactNumber string
}

// UpdateRestaurantInput carries only caller-settable fields. Approval
// and the derived rating fields have their own write paths and cannot
// be patched here.
type UpdateRestaurantInput struct {
	Name          *string
	Type          *models.RestaurantType
	University    *string
	Address       *string
	GoogleMapLink *string
	Latitude      *float64
	Longitude     *float64
	ContactNumber *string
}

type RestaurantService struct {
	restaurantRepo *repository.RestaurantRepository
	cache          *cache.RestaurantCache // optional, nil disables caching
}

func NewRestaurantService(restaurantRepo *repository.RestaurantRepository, restaurantCache *cache.RestaurantCache) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		cache:          restaurantCache,
	}
}

// Create persists a new, unapproved restaurant bound to its creator.
func (s *RestaurantService) Create(input CreateRestaurantInput, creatorID string) (*models.Restaurant, error) {
	if err := validateRestaurantInput(input); err != nil {
		logger.Log.Warn("Restaurant validation failed",
			zap.String("name", input.Name),
			zap.Error(err),
		)
		return nil, err
	}

	restaurant := &models.Restaurant{
		Name:          input.Name,
		Type:          input.Type,
		University:    input.University,
		Address:       input.Address,
		GoogleMapLink: input.GoogleMapLink,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		ContactNumber: input.ContactNumber,
		Approved:      false,
		AverageRating: 0,
		TotalReviews:  0,
		CreatedByID:   creatorID,
	}

	if err := s.restaurantRepo.Create(restaurant); err != nil {
		logger.Log.Error("Failed to create restaurant",
			zap.String("name", input.Name),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Restaurant created",
		zap.String("restaurant_id", restaurant.ID),
		zap.String("creator_id", creatorID),
	)

	return restaurant, nil
}

func (s *RestaurantService) FindByID(id string) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	return restaurant, nil
}

func (s *RestaurantService) List(filters repository.RestaurantFilters, includeUnapproved bool) ([]models.Restaurant, error) {
	return s.restaurantRepo.List(filters, includeUnapproved)
}

func (s *RestaurantService) ByUniversity(university string) ([]models.Restaurant, error) {
	return s.restaurantRepo.ByUniversity(university)
}

func (s *RestaurantService) Search(text string) ([]models.Restaurant, error) {
	return s.restaurantRepo.Search(text)
}

// TopRated serves from the Redis cache when warm; cache failures fall
// through to the database.
func (s *RestaurantService) TopRated(limit int) ([]models.Restaurant, error) {
	if limit <= 0 {
		limit = DefaultTopRatedLimit
	}

	if s.cache != nil {
		cached, hit, err := s.cache.GetTopRated(limit)
		if err != nil {
			logger.Log.Warn("Top-rated cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	restaurants, err := s.restaurantRepo.TopRated(limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetTopRated(limit, restaurants); err != nil {
			logger.Log.Warn("Top-rated cache write failed", zap.Error(err))
		}
	}

	return restaurants, nil
}

// Update patches a restaurant. Only the creator or an admin may do so.
func (s *RestaurantService) Update(id string, input UpdateRestaurantInput, actorID string, isAdmin bool) (*models.Restaurant, error) {
	restaurant, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && restaurant.CreatedByID != actorID {
		logger.Log.Warn("Restaurant update denied",
			zap.String("restaurant_id", id),
			zap.String("actor_id", actorID),
		)
		return nil, ErrForbidden
	}

	if input.Name != nil {
		restaurant.Name = *input.Name
	}
	if input.Type != nil {
		restaurant.Type = *input.Type
	}
	if input.University != nil {
		restaurant.University = *input.University
	}
	if input.Address != nil {
		restaurant.Address = *input.Address
	}
	if input.GoogleMapLink != nil {
		restaurant.GoogleMapLink = *input.GoogleMapLink
	}
	if input.Latitude != nil {
		restaurant.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		restaurant.Longitude = input.Longitude
	}
	if input.ContactNumber != nil {
		restaurant.ContactNumber = *input.ContactNumber
	}

	if err := validateRestaurantInput(CreateRestaurantInput{
		Name:          restaurant.Name,
		Type:          restaurant.Type,
		University:    restaurant.University,
		Address:       restaurant.Address,
		GoogleMapLink: restaurant.GoogleMapLink,
		ContactNumber: restaurant.ContactNumber,
	}); err != nil {
		return nil, err
	}

	if err := s.restaurantRepo.Save(restaurant); err != nil {
		logger.Log.Error("Failed to update restaurant",
			zap.String("restaurant_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Restaurant updated", zap.String("restaurant_id", id))
	return restaurant, nil
}

// Delete removes a restaurant and, via the repository, its reviews.
func (s *RestaurantService) Delete(id string, actorID string, isAdmin bool) error {
	restaurant, err := s.FindByID(id)
	if err != nil {
		return err
	}

	if !isAdmin && restaurant.CreatedByID != actorID {
		logger.Log.Warn("Restaurant delete denied",
			zap.String("restaurant_id", id),
			zap.String("actor_id", actorID),
		)
		return ErrForbidden
	}

	if err := s.restaurantRepo.Delete(id); err != nil {
		logger.Log.Error("Failed to delete restaurant",
			zap.String("restaurant_id", id),
			zap.Error(err),
		)
		return err
	}

	s.invalidateTopRated()
	logger.Log.Info("Restaurant deleted", zap.String("restaurant_id", id))
	return nil
}

// SetApproved flips public visibility. Idempotent.
func (s *RestaurantService) SetApproved(id string, approved bool) (*models.Restaurant, error) {
	restaurant, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.restaurantRepo.SetApproved(id, approved); err != nil {
		return nil, err
	}
	restaurant.Approved = approved

	s.invalidateTopRated()
	logger.Log.Info("Restaurant approval changed",
		zap.String("restaurant_id", id),
		zap.Bool("approved", approved),
	)
	return restaurant, nil
}

func (s *RestaurantService) Count() (int64, error) {
	return s.restaurantRepo.Count()
}

// ApplyRatingUpdate is the sole write path for the derived rating
// fields, invoked by the review service after each review mutation.
// The tx handle lets the recompute stay inside one transaction.
func (s *RestaurantService) ApplyRatingUpdate(tx *gorm.DB, id string, avgRating float64, totalReviews int) error {
	if err := s.restaurantRepo.UpdateRating(tx, id, avgRating, totalReviews); err != nil {
		return err
	}
	s.invalidateTopRated()
	return nil
}

func (s *RestaurantService) invalidateTopRated() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTopRated(); err != nil {
		logger.Log.Warn("Top-rated cache invalidation failed", zap.Error(err))
	}
}

func validateRestaurantInput(input CreateRestaurantInput) error {
	if len(input.Name) < 3 || len(input.Name) > 100 {
		return fmt.Errorf("%w: name must be 3-100 characters", ErrInvalidInput)
	}
	if !models.ValidRestaurantType(input.Type) {
		return fmt.Errorf("%w: type must be one of campus_canteen, cafe, restaurant", ErrInvalidInput)
	}
	if len(input.University) < 2 || len(input.University) > 100 {
		return fmt.Errorf("%w: university must be 2-100 characters", ErrInvalidInput)
	}
	if input.Address != "" && (len(input.Address) < 3 || len(input.Address) > 255) {
		return fmt.Errorf("%w: address must be 3-255 characters", ErrInvalidInput)
	}
	if input.GoogleMapLink != "" {
		if len(input.GoogleMapLink) > 255 || !strings.HasPrefix(input.GoogleMapLink, "http") {
			return fmt.Errorf("%w: invalid google maps link", ErrInvalidInput)
		}
	}
	if input.ContactNumber != "" && !phoneRegex.MatchString(input.ContactNumber) {
		return fmt.Errorf("%w: invalid phone number format", ErrInvalidInput)
	}
	return nil
}
