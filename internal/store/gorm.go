package store

import (
	"context"
	"errors"

	"streetbite/internal/model"

	"gorm.io/gorm"
)

// GormStore is the Postgres-backed Store implementation.
type GormStore struct {
	db *gorm.DB
}

// NewGorm creates a Store backed by the given GORM database handle
func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return &user, nil
}

func (s *GormStore) UserByEmailAndType(ctx context.Context, email, userType string) (*model.User, error) {
	var user model.User
	result := s.db.WithContext(ctx).
		Where("email = ? AND user_type = ?", email, userType).
		First(&user)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return &user, nil
}

// CreateVendor writes the vendor user and its supplier in one transaction
// so a failure between the two writes cannot leave a vendor without a
// storefront.
func (s *GormStore) CreateVendor(ctx context.Context, user *model.User, supplier *model.Supplier) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(supplier).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *GormStore) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	suppliers := []model.Supplier{}
	result := s.db.WithContext(ctx).
		Preload("Items", itemsInAppendOrder).
		Order("created_at asc").
		Find(&suppliers)
	if result.Error != nil {
		return nil, result.Error
	}
	return suppliers, nil
}

func (s *GormStore) SupplierByID(ctx context.Context, id string) (*model.Supplier, error) {
	var supplier model.Supplier
	result := s.db.WithContext(ctx).
		Preload("Items", itemsInAppendOrder).
		Where("id = ?", id).
		First(&supplier)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return &supplier, nil
}

func (s *GormStore) SupplierByEmail(ctx context.Context, email string) (*model.Supplier, error) {
	var supplier model.Supplier
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&supplier)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return &supplier, nil
}

// AddItem creates the item and touches the owning supplier inside one
// transaction; the catalog append and the item row land together.
func (s *GormStore) AddItem(ctx context.Context, supplierID string, item *model.Item) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var supplier model.Supplier
		if err := tx.Where("id = ?", supplierID).First(&supplier).Error; err != nil {
			return translate(err)
		}
		item.SupplierID = supplier.ID
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return tx.Save(&supplier).Error
	})
}

func (s *GormStore) ItemByID(ctx context.Context, id string) (*model.Item, error) {
	var item model.Item
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&item)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return &item, nil
}

func (s *GormStore) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *GormStore) OrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	result := s.db.WithContext(ctx).Preload("Item").Where("id = ?", id).First(&order)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return &order, nil
}

func (s *GormStore) OrdersBySupplier(ctx context.Context, supplierID string) ([]model.Order, error) {
	orders := []model.Order{}
	result := s.db.WithContext(ctx).
		Preload("Item").
		Where("supplier_id = ?", supplierID).
		Order("created_at asc").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}
	return orders, nil
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	var order model.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.WithContext(ctx).Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}
	order.Status = status
	return &order, nil
}

// itemsInAppendOrder keeps preloaded catalogs in the order items were added
func itemsInAppendOrder(db *gorm.DB) *gorm.DB {
	return db.Order("items.created_at asc")
}

// translate maps GORM errors onto the store's sentinel errors
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
