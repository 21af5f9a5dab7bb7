package repository

import (
	"errors"
	"strings"

	"github.com/unibites/campus-bites/internal/models"
	"gorm.io/gorm"
)

// RestaurantFilters are independently optional list constraints.
type RestaurantFilters struct {
	University string
	Type       models.RestaurantType
	Name       string
	Approved   *bool
	Search     string
}

type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

func (r *RestaurantRepository) GetByID(id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.Preload("CreatedBy").Where("id = ?", id).First(&restaurant).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &restaurant, nil
}

// List applies the optional filters. When includeUnapproved is false the
// approved=true constraint is added unconditionally, so a public caller
// filtering approved=false still gets nothing unapproved.
func (r *RestaurantRepository) List(filters RestaurantFilters, includeUnapproved bool) ([]models.Restaurant, error) {
	query := r.db.Preload("CreatedBy").Model(&models.Restaurant{})

	if !includeUnapproved {
		query = query.Where("approved = ?", true)
	}
	if filters.University != "" {
		query = query.Where("university = ?", filters.University)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Name != "" {
		query = query.Where("name = ?", filters.Name)
	}
	if filters.Approved != nil {
		query = query.Where("approved = ?", *filters.Approved)
	}
	if filters.Search != "" {
		query = searchClause(query, filters.Search)
	}

	var restaurants []models.Restaurant
	err := query.Order("created_at DESC").Order("name ASC").Find(&restaurants).Error
	return restaurants, err
}

func (r *RestaurantRepository) ByUniversity(university string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.Preload("CreatedBy").
		Where("university = ? AND approved = ?", university, true).
		Order("created_at DESC").Order("name ASC").
		Find(&restaurants).Error
	return restaurants, err
}

func (r *RestaurantRepository) Search(text string) ([]models.Restaurant, error) {
	query := r.db.Preload("CreatedBy").Model(&models.Restaurant{}).
		Where("approved = ?", true)
	query = searchClause(query, text)

	var restaurants []models.Restaurant
	err := query.Order("created_at DESC").Order("name ASC").Find(&restaurants).Error
	return restaurants, err
}

func (r *RestaurantRepository) TopRated(limit int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.Preload("CreatedBy").
		Where("approved = ?", true).
		Order("average_rating DESC").Order("total_reviews DESC").
		Limit(limit).
		Find(&restaurants).Error
	return restaurants, err
}

func (r *RestaurantRepository) Save(restaurant *models.Restaurant) error {
	return r.db.Save(restaurant).Error
}

// SetApproved flips the approval flag; idempotent by nature of the update.
func (r *RestaurantRepository) SetApproved(id string, approved bool) error {
	return r.db.Model(&models.Restaurant{}).
		Where("id = ?", id).
		Update("approved", approved).Error
}

// UpdateRating writes the derived aggregate fields. It is the only write
// path for average_rating and total_reviews, and accepts the caller's
// handle so the review recompute can run it inside its transaction.
func (r *RestaurantRepository) UpdateRating(tx *gorm.DB, id string, avgRating float64, totalReviews int) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&models.Restaurant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_rating": avgRating,
			"total_reviews":  totalReviews,
		}).Error
}

// Delete removes the restaurant and its reviews in one transaction.
// The explicit review delete keeps the cascade portable across Postgres
// and the SQLite test database.
func (r *RestaurantRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Restaurant{}).Error
	})
}

func (r *RestaurantRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Restaurant{}).Count(&count).Error
	return count, err
}

// searchClause matches a case-insensitive substring against name,
// university and address. LOWER + LIKE behaves the same on Postgres
// and SQLite, unlike ILIKE.
func searchClause(query *gorm.DB, text string) *gorm.DB {
	pattern := "%" + strings.ToLower(text) + "%"
	return query.Where(
		"(LOWER(name) LIKE ? OR LOWER(university) LIKE ? OR LOWER(address) LIKE ?)",
		pattern, pattern, pattern,
	)
}
