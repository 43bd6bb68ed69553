package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the closed set of states an order moves through.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
)

// validNext holds the allowed forward transitions. Delivered is terminal.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:   {StatusShipped: true},
	StatusShipped:   {StatusDelivered: true},
	StatusDelivered: {},
}

// Valid reports whether s is a recognized order status
func (s OrderStatus) Valid() bool {
	_, ok := validNext[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Order links one item to its supplier at the moment the order was placed.
// SupplierID is a denormalized copy of the item's supplier and is not
// re-validated after creation.
type Order struct {
	ID         string      `json:"id" gorm:"type:varchar(36);primaryKey"`
	ItemID     string      `json:"item_id" gorm:"type:varchar(36);index;not null"`
	Item       *Item       `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	SupplierID string      `json:"supplier_id" gorm:"type:varchar(36);index;not null"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(20);default:'Pending'"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// BeforeCreate assigns an opaque generated ID before insert
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
