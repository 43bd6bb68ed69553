package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item represents a sellable catalog entry belonging to one supplier
type Item struct {
	ID         string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name       string         `json:"name" gorm:"type:varchar(255);not null"`
	Stock      int            `json:"stock" gorm:"default:0"`
	Price      float64        `json:"price" gorm:"not null"`
	Category   string         `json:"category" gorm:"type:varchar(100)"`
	Photo      string         `json:"photo" gorm:"type:text"`
	SupplierID string         `json:"supplier_id" gorm:"type:varchar(36);index;not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns an opaque generated ID before insert
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
