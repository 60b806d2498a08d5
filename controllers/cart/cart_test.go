package cartControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aokistore/ecommerce-api/cart"
	"github.com/aokistore/ecommerce-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func newTestRouter(store *cart.MemoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	carts := cart.NewManager(store)

	r := gin.New()
	authed := r.Group("/api/auth")
	authed.Use(func(c *gin.Context) { c.Set("user_id", "u1") })
	authed.POST("/add_to_cart", AddToCart(carts))
	authed.GET("/cart", GetCart(carts))
	authed.POST("/cart/update", UpdateCart(carts))
	authed.POST("/cart/remove-all", RemoveAll(carts))
	return r
}

func seededStore() *cart.MemoryStore {
	store := cart.NewMemoryStore()
	store.AddProduct(models.Product{ID: 1, Name: "Sencha", Price: decimal.RequireFromString("10.00")})
	store.AddProduct(models.Product{ID: 2, Name: "Matcha", Price: decimal.RequireFromString("5.50")})
	return store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCartUnknownProduct(t *testing.T) {
	r := newTestRouter(seededStore())

	w := doJSON(t, r, "POST", "/api/auth/add_to_cart", `{"product_id": 99}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAddToCartCreated(t *testing.T) {
	r := newTestRouter(seededStore())

	w := doJSON(t, r, "POST", "/api/auth/add_to_cart", `{"product_id": 1}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Item models.CartItem `json:"item"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Item.ProductID != 1 || resp.Item.Quantity != 1 {
		t.Fatalf("unexpected item: %+v", resp.Item)
	}
}

func TestUpdateCartInvalidAction(t *testing.T) {
	r := newTestRouter(seededStore())

	w := doJSON(t, r, "POST", "/api/auth/cart/update", `{"product_id": 1, "action": "double"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateCartRemove(t *testing.T) {
	r := newTestRouter(seededStore())

	doJSON(t, r, "POST", "/api/auth/add_to_cart", `{"product_id": 1}`)
	w := doJSON(t, r, "POST", "/api/auth/cart/update", `{"product_id": 1, "action": "remove"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "removed") {
		t.Fatalf("expected removal message, got %s", w.Body.String())
	}
}

func TestGetCartTotals(t *testing.T) {
	r := newTestRouter(seededStore())

	doJSON(t, r, "POST", "/api/auth/add_to_cart", `{"product_id": 1}`)
	doJSON(t, r, "POST", "/api/auth/add_to_cart", `{"product_id": 1}`)
	doJSON(t, r, "POST", "/api/auth/add_to_cart", `{"product_id": 2}`)

	w := doJSON(t, r, "GET", "/api/auth/cart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var view cart.View
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(view.Items))
	}
	if !view.Total.Equal(decimal.RequireFromString("25.50")) {
		t.Fatalf("expected total 25.50, got %s", view.Total)
	}
}

func TestRemoveAllCount(t *testing.T) {
	r := newTestRouter(seededStore())

	doJSON(t, r, "POST", "/api/auth/add_to_cart", `{"product_id": 1}`)
	doJSON(t, r, "POST", "/api/auth/add_to_cart", `{"product_id": 2}`)

	w := doJSON(t, r, "POST", "/api/auth/cart/remove-all", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected count 2, got %d", resp.Count)
	}

	w = doJSON(t, r, "GET", "/api/auth/cart", "")
	var view cart.View
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(view.Items))
	}
}
