package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is one user's rating of one restaurant. The composite unique
// index enforces at most one review per (user, restaurant) pair.
type Review struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID string     `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_user_restaurant" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	UserID       string     `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_user_restaurant" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment,omitempty"`

	// Optional sub-ratings, each 1-5 when present.
	FoodQualityRating *int `json:"food_quality_rating,omitempty"`
	ServiceRating     *int `json:"service_rating,omitempty"`
	ValueRating       *int `json:"value_rating,omitempty"`

	PriceRange   string    `gorm:"type:varchar(50)" json:"price_range,omitempty"`
	IsApproved   bool      `gorm:"not null;default:true;index" json:"is_approved"`
	HelpfulCount int       `gorm:"not null;default:0" json:"helpful_count"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
