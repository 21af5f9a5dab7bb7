package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RestaurantType string

const (
	TypeCampusCanteen RestaurantType = "campus_canteen"
	TypeCafe          RestaurantType = "cafe"
	TypeRestaurant    RestaurantType = "restaurant"
)

// ValidRestaurantType reports whether t is one of the known venue types.
func ValidRestaurantType(t RestaurantType) bool {
	switch t {
	case TypeCampusCanteen, TypeCafe, TypeRestaurant:
		return true
	}
	return false
}

type Restaurant struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"type:varchar(100);not null" json:"name"`
	Type          RestaurantType `gorm:"type:varchar(30);not null" json:"type"`
	University    string         `gorm:"type:varchar(100);not null;index" json:"university"`
	Address       string         `gorm:"type:varchar(255)" json:"address,omitempty"`
	GoogleMapLink string         `gorm:"type:varchar(255)" json:"google_map_link,omitempty"`
	Latitude      *float64       `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude     *float64       `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	ContactNumber string         `gorm:"type:varchar(20)" json:"contact_number,omitempty"`
	Approved      bool           `gorm:"not null;default:false;index" json:"approved"`

	// Derived fields, written only through the review rating recompute.
	AverageRating float64 `gorm:"type:decimal(3,2);not null;default:0" json:"average_rating"`
	TotalReviews  int     `gorm:"not null;default:0" json:"total_reviews"`

	CreatedByID string    `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID" json:"created_by"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
