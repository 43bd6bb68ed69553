package store

import (
	"context"
	"errors"

	"streetbite/internal/model"
)

// Sentinel errors returned by Store implementations. Handlers translate
// these into the HTTP error taxonomy.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store is the persistence boundary for the marketplace records.
type Store interface {
	// CreateUser persists an owner user. Vendor users go through
	// CreateVendor so the linked supplier is written in the same
	// transactional boundary.
	CreateUser(ctx context.Context, user *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByEmailAndType(ctx context.Context, email, userType string) (*model.User, error)
	CreateVendor(ctx context.Context, user *model.User, supplier *model.Supplier) error

	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	SupplierByID(ctx context.Context, id string) (*model.Supplier, error)
	SupplierByEmail(ctx context.Context, email string) (*model.Supplier, error)
	// AddItem creates the item and appends it to the supplier's catalog
	// as one unit; the supplier must exist.
	AddItem(ctx context.Context, supplierID string, item *model.Item) error

	ItemByID(ctx context.Context, id string) (*model.Item, error)

	CreateOrder(ctx context.Context, order *model.Order) error
	OrderByID(ctx context.Context, id string) (*model.Order, error)
	OrdersBySupplier(ctx context.Context, supplierID string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
}
