package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User types recognized at registration and login.
const (
	UserTypeVendor = "vendor"
	UserTypeOwner  = "owner"
)

// User represents the user model stored in the database
type User struct {
	ID        string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserType  string         `json:"user_type" gorm:"type:varchar(10);index;not null"`
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"type:varchar(255);not null"`
	ShopName  string         `json:"shop_name,omitempty" gorm:"type:varchar(100)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns an opaque generated ID before insert
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ValidUserType reports whether t is one of the recognized user types
func ValidUserType(t string) bool {
	return t == UserTypeVendor || t == UserTypeOwner
}
