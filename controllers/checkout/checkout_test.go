package checkoutControllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func setupCheckoutEnv(t *testing.T, apiURL string) {
	t.Helper()
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_API_URL", apiURL)
	t.Setenv("CHECKOUT_SUCCESS_URL", "https://shop.example/success")
	t.Setenv("CHECKOUT_CANCEL_URL", "https://shop.example/cancel")
}

func TestCreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("bad form: %v", err)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.PostFormValue("line_items[0][price_data][unit_amount]"); got != "2550" {
			t.Errorf("unexpected amount %q", got)
		}
		w.Write([]byte(`{"id": "cs_test_abc"}`))
	}))
	defer srv.Close()
	setupCheckoutEnv(t, srv.URL)

	id, err := CreateCheckoutSession(2550)
	if err != nil {
		t.Fatalf("CreateCheckoutSession failed: %v", err)
	}
	if id != "cs_test_abc" {
		t.Fatalf("expected cs_test_abc, got %q", id)
	}
}

func TestCreateCheckoutSessionProcessorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "Amount must be at least 50 cents"}}`))
	}))
	defer srv.Close()
	setupCheckoutEnv(t, srv.URL)

	if _, err := CreateCheckoutSession(1); err == nil {
		t.Fatal("expected processor error")
	}
}

func TestCreateCheckoutSessionMissingConfig(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("CHECKOUT_SUCCESS_URL", "")
	t.Setenv("CHECKOUT_CANCEL_URL", "")

	if _, err := CreateCheckoutSession(100); err == nil {
		t.Fatal("expected configuration error")
	}
}
