// Package cart owns the per-user cart and its line items. All reads and
// writes of the carts/cart_items relation go through the Manager; nothing
// else in the application touches those tables.
package cart

import (
	"context"
	"errors"

	"github.com/aokistore/ecommerce-api/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when the referenced user or product does not resolve.
	ErrNotFound = errors.New("cart: not found")
	// ErrInvalidAction is returned for an action outside the enumerated set.
	ErrInvalidAction = errors.New("cart: invalid action")
	// ErrConflict signals a concurrent mutation detected by the store.
	// Callers may retry; Manager retries the get-or-create paths itself.
	ErrConflict = errors.New("cart: conflict")
)

type Action string

const (
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
	ActionRemove   Action = "remove"
)

// Line is one cart item enriched with a read-only product snapshot.
type Line struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// View is the read model of a cart. Totals are computed, never stored.
type View struct {
	Items []Line          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Store is the persistence contract the Manager runs on. Every method is a
// single atomic step: the upsert/increment operations must be backed by a
// unique constraint on (cart_id, product_id) and on carts.user_id, and the
// quantity mutations must be storage-side read-modify-writes so concurrent
// calls never lose an update.
type Store interface {
	GetProduct(ctx context.Context, productID uint) (models.Product, error)
	GetCart(ctx context.Context, userID string) (models.Cart, error)
	CreateCart(ctx context.Context, userID string) (models.Cart, error)

	// UpsertItemIncrement creates the (cart, product) row with quantity 1
	// or increments an existing row, and returns the post-mutation row.
	UpsertItemIncrement(ctx context.Context, cartID, productID uint) (models.CartItem, error)
	// GetOrCreateItem returns the existing row, or creates it with quantity 1.
	GetOrCreateItem(ctx context.Context, cartID, productID uint) (models.CartItem, error)
	// IncrementItem adds 1 to the row's quantity.
	IncrementItem(ctx context.Context, cartID, productID uint) (models.CartItem, error)
	// DecrementItemAboveOne subtracts 1 only while quantity > 1; at 1 it is
	// a no-op and the unchanged row is returned.
	DecrementItemAboveOne(ctx context.Context, cartID, productID uint) (models.CartItem, error)
	RemoveItem(ctx context.Context, cartID, productID uint) error
	ClearItems(ctx context.Context, cartID uint) (int64, error)
	// ListItems returns the cart's rows with Product populated, in insertion order.
	ListItems(ctx context.Context, cartID uint) ([]models.CartItem, error)
}

// Manager is the cart aggregate: get-or-create idempotency, quantity
// mutation rules and bulk clearing, scoped per user. The user identifier is
// an explicit parameter on every operation.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// GetOrCreateCart returns the user's cart, creating an empty one on first
// use. A concurrent first call for the same user resolves to the single row
// the unique constraint let through.
func (m *Manager) GetOrCreateCart(ctx context.Context, userID string) (models.Cart, error) {
	c, err := m.store.GetCart(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Cart{}, err
	}

	c, err = m.store.CreateCart(ctx, userID)
	if err == nil {
		return c, nil
	}
	// Someone else created it between our get and create.
	if errors.Is(err, ErrConflict) {
		return m.store.GetCart(ctx, userID)
	}
	return models.Cart{}, err
}

// AddItem puts one unit of the product into the user's cart: a new line
// starts at quantity 1, a repeated add increments the existing line. The
// post-mutation line is returned.
func (m *Manager) AddItem(ctx context.Context, userID string, productID uint) (models.CartItem, error) {
	if _, err := m.store.GetProduct(ctx, productID); err != nil {
		return models.CartItem{}, err
	}
	c, err := m.GetOrCreateCart(ctx, userID)
	if err != nil {
		return models.CartItem{}, err
	}
	return m.store.UpsertItemIncrement(ctx, c.ID, productID)
}

// UpdateItem applies an action to the user's line for the product. The line
// is lazily get-or-created (quantity 1) before the action runs, so NotFound
// only arises for an unknown product. Decrease floors at quantity 1 without
// removing the line; remove deletes it unconditionally and reports
// removed=true with a zero item.
func (m *Manager) UpdateItem(ctx context.Context, userID string, productID uint, action Action) (models.CartItem, bool, error) {
	switch action {
	case ActionIncrease, ActionDecrease, ActionRemove:
	default:
		return models.CartItem{}, false, ErrInvalidAction
	}

	if _, err := m.store.GetProduct(ctx, productID); err != nil {
		return models.CartItem{}, false, err
	}
	c, err := m.GetOrCreateCart(ctx, userID)
	if err != nil {
		return models.CartItem{}, false, err
	}
	if _, err := m.store.GetOrCreateItem(ctx, c.ID, productID); err != nil {
		return models.CartItem{}, false, err
	}

	switch action {
	case ActionIncrease:
		item, err := m.store.IncrementItem(ctx, c.ID, productID)
		return item, false, err
	case ActionDecrease:
		item, err := m.store.DecrementItemAboveOne(ctx, c.ID, productID)
		return item, false, err
	default:
		if err := m.store.RemoveItem(ctx, c.ID, productID); err != nil {
			return models.CartItem{}, false, err
		}
		return models.CartItem{}, true, nil
	}
}

// ClearCart deletes every line in the user's cart and returns how many were
// removed. A user without a cart gets an empty one and a count of 0.
func (m *Manager) ClearCart(ctx context.Context, userID string) (int64, error) {
	c, err := m.GetOrCreateCart(ctx, userID)
	if err != nil {
		return 0, err
	}
	return m.store.ClearItems(ctx, c.ID)
}

// ViewCart returns the cart's lines with product snapshots and totals.
// The read path never creates rows: a user without a cart gets an empty view.
func (m *Manager) ViewCart(ctx context.Context, userID string) (View, error) {
	view := View{Items: []Line{}, Total: decimal.Zero}

	c, err := m.store.GetCart(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return view, nil
	}
	if err != nil {
		return View{}, err
	}

	items, err := m.store.ListItems(ctx, c.ID)
	if err != nil {
		return View{}, err
	}
	for _, item := range items {
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, Line{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price,
			ImageURL:  item.Product.Image,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
	}
	return view, nil
}
