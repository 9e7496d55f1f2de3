package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL}, WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestSearchProducts(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/search" {
			t.Errorf("path = %q, want /products/search", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "red phone" {
			t.Errorf("q = %q, want %q", got, "red phone")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[{"id":1,"title":"iPhone 9","price":549,"rating":4.69,"thumbnail":"t.jpg","category":"smartphones","description":"A phone."}],"total":1}`))
	})

	products, err := client.SearchProducts(context.Background(), "red phone")
	if err != nil {
		t.Fatalf("SearchProducts() error = %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	p := products[0]
	if p.ID != 1 || p.Title != "iPhone 9" || p.Price != 549 || p.Rating != 4.69 {
		t.Fatalf("product = %#v", p)
	}
}

func TestSearchProductsEmptyResult(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[],"total":0}`))
	})

	products, err := client.SearchProducts(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("SearchProducts() error = %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("products = %d, want 0", len(products))
	}
}

func TestCart(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/carts/5" {
			t.Errorf("path = %q, want /carts/5", r.URL.Path)
		}
		w.Write([]byte(`{"id":5,"total":1499.5,"totalProducts":4}`))
	})

	cart, err := client.Cart(context.Background(), "5")
	if err != nil {
		t.Fatalf("Cart() error = %v", err)
	}
	if cart.ID != 5 || cart.Total != 1499.5 || cart.TotalProducts != 4 {
		t.Fatalf("cart = %#v", cart)
	}
}

func TestCartNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Cart with id '999' not found"}`, http.StatusNotFound)
	})

	_, err := client.Cart(context.Background(), "999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Cart() error = %v, want ErrNotFound", err)
	}
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("path = %q, want /products", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("limit = %q, want 100", got)
		}
		w.Write([]byte(`{"products":[{"id":1,"title":"iPhone 9"}],"total":194}`))
	})

	list, err := client.ListProducts(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if list.Total != 194 || len(list.Products) != 1 {
		t.Fatalf("list = %#v", list)
	}
}

func TestGetJSONServerError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.SearchProducts(context.Background(), "phone")
	if err == nil {
		t.Fatal("SearchProducts() error = nil, want non-nil")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("SearchProducts() error = %v, must not be ErrNotFound", err)
	}
}

func TestGetJSONMalformedBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":`))
	})

	if _, err := client.SearchProducts(context.Background(), "phone"); err == nil {
		t.Fatal("SearchProducts() error = nil, want decode error")
	}
}

func TestProductURL(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{BaseURL: "https://catalog.test/"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if got := client.ProductURL(7); got != "https://catalog.test/products/7" {
		t.Fatalf("ProductURL() = %q", got)
	}
}

func TestNewClientInvalidBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{BaseURL: "not a url"}); err == nil {
		t.Fatal("NewClient() error = nil, want invalid base url error")
	}
}
