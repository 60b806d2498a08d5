package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/aokistore/ecommerce-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the production Store, backed by the carts/cart_items tables.
// The unique indexes on carts.user_id and cart_items(cart_id, product_id)
// are what make the upsert operations safe under concurrency.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetProduct(ctx context.Context, productID uint) (models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

func (s *GormStore) GetCart(ctx context.Context, userID string) (models.Cart, error) {
	var c models.Cart
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Cart{}, ErrNotFound
		}
		return models.Cart{}, err
	}
	return c, nil
}

func (s *GormStore) CreateCart(ctx context.Context, userID string) (models.Cart, error) {
	c := models.Cart{UserID: userID}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		if isUniqueViolation(err) {
			return models.Cart{}, ErrConflict
		}
		return models.Cart{}, err
	}
	return c, nil
}

func (s *GormStore) UpsertItemIncrement(ctx context.Context, cartID, productID uint) (models.CartItem, error) {
	item := models.CartItem{CartID: cartID, ProductID: productID, Quantity: 1}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + 1"),
		}),
	}).Create(&item).Error
	if err != nil {
		return models.CartItem{}, err
	}
	return s.getItem(ctx, cartID, productID)
}

func (s *GormStore) GetOrCreateItem(ctx context.Context, cartID, productID uint) (models.CartItem, error) {
	item := models.CartItem{CartID: cartID, ProductID: productID, Quantity: 1}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(&item).Error
	if err != nil {
		return models.CartItem{}, err
	}
	return s.getItem(ctx, cartID, productID)
}

func (s *GormStore) IncrementItem(ctx context.Context, cartID, productID uint) (models.CartItem, error) {
	res := s.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		UpdateColumn("quantity", gorm.Expr("quantity + 1"))
	if res.Error != nil {
		return models.CartItem{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.CartItem{}, ErrNotFound
	}
	return s.getItem(ctx, cartID, productID)
}

func (s *GormStore) DecrementItemAboveOne(ctx context.Context, cartID, productID uint) (models.CartItem, error) {
	// The quantity > 1 guard keeps the floor inside the statement, so two
	// concurrent decrements can never push a line to zero.
	res := s.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ? AND quantity > 1", cartID, productID).
		UpdateColumn("quantity", gorm.Expr("quantity - 1"))
	if res.Error != nil {
		return models.CartItem{}, res.Error
	}
	return s.getItem(ctx, cartID, productID)
}

func (s *GormStore) RemoveItem(ctx context.Context, cartID, productID uint) error {
	res := s.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ClearItems(ctx context.Context, cartID uint) (int64, error) {
	res := s.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

func (s *GormStore) ListItems(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.WithContext(ctx).Preload("Product").
		Where("cart_id = ?", cartID).Order("id").Find(&items).Error
	return items, err
}

func (s *GormStore) getItem(ctx context.Context, cartID, productID uint) (models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CartItem{}, ErrNotFound
	}
	return item, err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
