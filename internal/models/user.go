package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	Email          string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	University     string    `gorm:"type:varchar(100)" json:"university,omitempty"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	IsVerified     bool      `gorm:"not null;default:false" json:"is_verified"`
	Role           Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	ProfilePicture string    `gorm:"type:varchar(255)" json:"profile_picture,omitempty"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID string so the same model runs on Postgres and SQLite.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
