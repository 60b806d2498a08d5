package cart

import (
	"context"
	"sort"
	"sync"

	"github.com/aokistore/ecommerce-api/models"
)

// MemoryStore is an in-memory Store with the same uniqueness and atomicity
// contract as GormStore. It backs the test suites; everything happens under
// one mutex, so each operation is a single atomic step.
type MemoryStore struct {
	mu         sync.Mutex
	products   map[uint]models.Product
	carts      map[string]*models.Cart // keyed by user ID
	items      map[uint]map[uint]*models.CartItem
	nextCartID uint
	nextItemID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   make(map[uint]models.Product),
		carts:      make(map[string]*models.Cart),
		items:      make(map[uint]map[uint]*models.CartItem),
		nextCartID: 1,
		nextItemID: 1,
	}
}

// AddProduct seeds the catalog side of the store.
func (s *MemoryStore) AddProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *MemoryStore) GetProduct(ctx context.Context, productID uint) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) GetCart(ctx context.Context, userID string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return models.Cart{}, ErrNotFound
	}
	return *c, nil
}

func (s *MemoryStore) CreateCart(ctx context.Context, userID string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.carts[userID]; exists {
		return models.Cart{}, ErrConflict
	}
	c := &models.Cart{ID: s.nextCartID, UserID: userID}
	s.nextCartID++
	s.carts[userID] = c
	s.items[c.ID] = make(map[uint]*models.CartItem)
	return *c, nil
}

func (s *MemoryStore) UpsertItemIncrement(ctx context.Context, cartID, productID uint) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.items[cartID]
	if !ok {
		return models.CartItem{}, ErrNotFound
	}
	if item, exists := rows[productID]; exists {
		item.Quantity++
		return *item, nil
	}
	item := &models.CartItem{ID: s.nextItemID, CartID: cartID, ProductID: productID, Quantity: 1}
	s.nextItemID++
	rows[productID] = item
	return *item, nil
}

func (s *MemoryStore) GetOrCreateItem(ctx context.Context, cartID, productID uint) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.items[cartID]
	if !ok {
		return models.CartItem{}, ErrNotFound
	}
	if item, exists := rows[productID]; exists {
		return *item, nil
	}
	item := &models.CartItem{ID: s.nextItemID, CartID: cartID, ProductID: productID, Quantity: 1}
	s.nextItemID++
	rows[productID] = item
	return *item, nil
}

func (s *MemoryStore) IncrementItem(ctx context.Context, cartID, productID uint) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[cartID][productID]
	if !ok {
		return models.CartItem{}, ErrNotFound
	}
	item.Quantity++
	return *item, nil
}

func (s *MemoryStore) DecrementItemAboveOne(ctx context.Context, cartID, productID uint) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[cartID][productID]
	if !ok {
		return models.CartItem{}, ErrNotFound
	}
	if item.Quantity > 1 {
		item.Quantity--
	}
	return *item, nil
}

func (s *MemoryStore) RemoveItem(ctx context.Context, cartID, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.items[cartID]
	if _, ok := rows[productID]; !ok {
		return ErrNotFound
	}
	delete(rows, productID)
	return nil
}

func (s *MemoryStore) ClearItems(ctx context.Context, cartID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.items[cartID]
	count := int64(len(rows))
	s.items[cartID] = make(map[uint]*models.CartItem)
	return count, nil
}

func (s *MemoryStore) ListItems(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.items[cartID]
	items := make([]models.CartItem, 0, len(rows))
	for _, item := range rows {
		it := *item
		it.Product = s.products[it.ProductID]
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}
