package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aokistore/ecommerce-api/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func newTestManager(t *testing.T) (*Manager, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	store.AddProduct(models.Product{ID: 1, Name: "Sencha", Price: decimal.RequireFromString("10.00"), Image: "photos/sencha.jpg"})
	store.AddProduct(models.Product{ID: 2, Name: "Matcha", Price: decimal.RequireFromString("5.50"), Image: "photos/matcha.jpg"})
	store.AddProduct(models.Product{ID: 3, Name: "Hojicha", Price: decimal.RequireFromString("3.25"), Image: "photos/hojicha.jpg"})
	return NewManager(store), store
}

func TestFirstAddYieldsSingleLine(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	view, err := m.ViewCart(ctx, "u1")
	if err != nil {
		t.Fatalf("ViewCart failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty view, got %d items", len(view.Items))
	}

	if _, err := m.AddItem(ctx, "u1", 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	view, err = m.ViewCart(ctx, "u1")
	if err != nil {
		t.Fatalf("ViewCart failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Items))
	}
	if view.Items[0].ProductID != 1 || view.Items[0].Quantity != 1 {
		t.Fatalf("unexpected line: %+v", view.Items[0])
	}
}

func TestRepeatedAddAggregates(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	for i := 0; i < 2; i++ {
		if _, err := m.AddItem(ctx, "u1", 1); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
	}

	view, err := m.ViewCart(ctx, "u1")
	if err != nil {
		t.Fatalf("ViewCart failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", view.Items[0].Quantity)
	}
}

func TestDecreaseFloorsAtOne(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	if _, err := m.AddItem(ctx, "u1", 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	item, removed, err := m.UpdateItem(ctx, "u1", 1, ActionDecrease)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if removed {
		t.Fatal("decrease must not remove the line")
	}
	if item.Quantity != 1 {
		t.Fatalf("expected quantity to stay at 1, got %d", item.Quantity)
	}
}

func TestDecreaseAboveOne(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	for i := 0; i < 3; i++ {
		if _, err := m.AddItem(ctx, "u1", 1); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
	}

	item, _, err := m.UpdateItem(ctx, "u1", 1, ActionDecrease)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", item.Quantity)
	}
}

func TestRemoveIsUnconditional(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	for i := 0; i < 4; i++ {
		if _, err := m.AddItem(ctx, "u1", 1); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
	}

	_, removed, err := m.UpdateItem(ctx, "u1", 1, ActionRemove)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if !removed {
		t.Fatal("expected removed result")
	}

	view, err := m.ViewCart(ctx, "u1")
	if err != nil {
		t.Fatalf("ViewCart failed: %v", err)
	}
	for _, line := range view.Items {
		if line.ProductID == 1 {
			t.Fatal("removed product still present in view")
		}
	}
}

func TestClearCartCountsAndEmpties(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	for _, pid := range []uint{1, 2, 3} {
		if _, err := m.AddItem(ctx, "u1", pid); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
	}

	count, err := m.ClearCart(ctx, "u1")
	if err != nil {
		t.Fatalf("ClearCart failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 removed, got %d", count)
	}

	view, err := m.ViewCart(ctx, "u1")
	if err != nil {
		t.Fatalf("ViewCart failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty view after clear, got %d items", len(view.Items))
	}

	// A second clear finds nothing.
	count, err = m.ClearCart(ctx, "u1")
	if err != nil || count != 0 {
		t.Fatalf("expected 0 removed, got %d (err %v)", count, err)
	}
}

func TestCartTotal(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	// (10.00 x 2) + (5.50 x 1) = 25.50
	for i := 0; i < 2; i++ {
		if _, err := m.AddItem(ctx, "u1", 1); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
	}
	if _, err := m.AddItem(ctx, "u1", 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	view, err := m.ViewCart(ctx, "u1")
	if err != nil {
		t.Fatalf("ViewCart failed: %v", err)
	}
	want := decimal.RequireFromString("25.50")
	if !view.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, view.Total)
	}
	if !view.Items[0].LineTotal.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("unexpected line total %s", view.Items[0].LineTotal)
	}
}

func TestViewDoesNotCreateCart(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)

	if _, err := m.ViewCart(ctx, "u1"); err != nil {
		t.Fatalf("ViewCart failed: %v", err)
	}
	if _, err := store.GetCart(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("view must not create a cart row, got %v", err)
	}
}

func TestUnknownProduct(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	if _, err := m.AddItem(ctx, "u1", 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := m.UpdateItem(ctx, "u1", 99, ActionIncrease); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInvalidAction(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	if _, _, err := m.UpdateItem(ctx, "u1", 1, Action("double")); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestUpdateLazilyCreatesItem(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	// Decrease on a product never added: the line is get-or-created at
	// quantity 1 before the action applies, so it survives at 1.
	item, removed, err := m.UpdateItem(ctx, "u1", 2, ActionDecrease)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if removed || item.Quantity != 1 {
		t.Fatalf("expected quantity-1 line, got removed=%v quantity=%d", removed, item.Quantity)
	}
}

func TestConcurrentAddItem(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	const n = 50
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := m.AddItem(ctx, "u1", 1)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent AddItem failed: %v", err)
	}

	view, err := m.ViewCart(ctx, "u1")
	if err != nil {
		t.Fatalf("ViewCart failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected a single line, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != n {
		t.Fatalf("expected quantity %d, got %d", n, view.Items[0].Quantity)
	}
}

func TestConcurrentGetOrCreateCart(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	const n = 50
	ids := make(map[uint]struct{})
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			c, err := m.GetOrCreateCart(ctx, "u1")
			if err != nil {
				return err
			}
			mu.Lock()
			ids[c.ID] = struct{}{}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent GetOrCreateCart failed: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected exactly 1 cart id, got %d: %v", len(ids), ids)
	}
}
