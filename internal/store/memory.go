package store

import (
	"context"
	"sync"
	"time"

	"streetbite/internal/model"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs the
// DB_DRIVER=memory mode and the handler tests; nothing survives a
// restart.
type MemoryStore struct {
	mu sync.RWMutex

	users     map[string]model.User
	suppliers map[string]model.Supplier
	items     map[string]model.Item
	orders    map[string]model.Order

	// catalog holds item IDs per supplier in append order; insertion
	// order of the other maps is not meaningful.
	catalog       map[string][]string
	supplierOrder []string
	orderLog      map[string][]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]model.User),
		suppliers: make(map[string]model.Supplier),
		items:     make(map[string]model.Item),
		orders:    make(map[string]model.Order),
		catalog:   make(map[string][]string),
		orderLog:  make(map[string][]string),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createUserLocked(user)
}

func (s *MemoryStore) createUserLocked(user *model.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UserByEmailAndType(_ context.Context, email, userType string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email && u.UserType == userType {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// CreateVendor writes the user and supplier under one lock hold, the
// memory store's equivalent of a transaction.
func (s *MemoryStore) CreateVendor(_ context.Context, user *model.User, supplier *model.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.createUserLocked(user); err != nil {
		return err
	}
	if supplier.ID == "" {
		supplier.ID = uuid.NewString()
	}
	now := time.Now()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now
	s.suppliers[supplier.ID] = *supplier
	s.supplierOrder = append(s.supplierOrder, supplier.ID)
	return nil
}

func (s *MemoryStore) ListSuppliers(_ context.Context) ([]model.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	suppliers := []model.Supplier{}
	for _, id := range s.supplierOrder {
		suppliers = append(suppliers, s.supplierWithItemsLocked(id))
	}
	return suppliers, nil
}

func (s *MemoryStore) SupplierByID(_ context.Context, id string) (*model.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.suppliers[id]; !ok {
		return nil, ErrNotFound
	}
	supplier := s.supplierWithItemsLocked(id)
	return &supplier, nil
}

func (s *MemoryStore) SupplierByEmail(_ context.Context, email string) (*model.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.supplierOrder {
		if s.suppliers[id].Email == email {
			supplier := s.supplierWithItemsLocked(id)
			return &supplier, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) AddItem(_ context.Context, supplierID string, item *model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.suppliers[supplierID]; !ok {
		return ErrNotFound
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.SupplierID = supplierID
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	s.items[item.ID] = *item
	s.catalog[supplierID] = append(s.catalog[supplierID], item.ID)
	return nil
}

func (s *MemoryStore) ItemByID(_ context.Context, id string) (*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *MemoryStore) CreateOrder(_ context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	stored := *order
	stored.Item = nil
	s.orders[stored.ID] = stored
	s.orderLog[stored.SupplierID] = append(s.orderLog[stored.SupplierID], stored.ID)
	return nil
}

func (s *MemoryStore) OrderByID(_ context.Context, id string) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.resolveItemLocked(&order)
	return &order, nil
}

func (s *MemoryStore) OrdersBySupplier(_ context.Context, supplierID string) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := []model.Order{}
	for _, id := range s.orderLog[supplierID] {
		order := s.orders[id]
		s.resolveItemLocked(&order)
		orders = append(orders, order)
	}
	return orders, nil
}

func (s *MemoryStore) UpdateOrderStatus(_ context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	s.orders[id] = order
	s.resolveItemLocked(&order)
	return &order, nil
}

func (s *MemoryStore) supplierWithItemsLocked(id string) model.Supplier {
	supplier := s.suppliers[id]
	supplier.Items = []model.Item{}
	for _, itemID := range s.catalog[id] {
		supplier.Items = append(supplier.Items, s.items[itemID])
	}
	return supplier
}

func (s *MemoryStore) resolveItemLocked(order *model.Order) {
	if item, ok := s.items[order.ItemID]; ok {
		order.Item = &item
	}
}
