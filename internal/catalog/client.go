package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	errx "github.com/shopmate-fulfillment/server/internal/core/error"
)

var (
	ErrNotFound = errors.New("catalog entry not found")
)

const (
	defaultBaseURL       = "https://dummyjson.com"
	maxResponseSizeBytes = 2 << 20
)

// Product is one catalog item as returned by the product API.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Thumbnail   string  `json:"thumbnail"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// ProductList is a catalog page with the total count across all pages.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// Cart doubles as the order record in the catalog API.
type Cart struct {
	ID            int     `json:"id"`
	Total         float64 `json:"total"`
	TotalProducts int     `json:"totalProducts"`
}

type Config struct {
	BaseURL string        `split_words:"true" default:"https://dummyjson.com"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

// ClientOption customizes Client.
type ClientOption func(*Client)

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client is a thin typed client for the product-catalog service. Each call is
// a single request/response; retries are the service's own concern.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid catalog base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// SearchProducts queries the catalog by keyword. An empty result slice is a
// valid answer, not an error.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	endpoint := fmt.Sprintf("%s/products/search?q=%s", c.baseURL, url.QueryEscape(query))

	var list ProductList
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return list.Products, nil
}

// Cart fetches one order/cart by id. A 404 maps to ErrNotFound.
func (c *Client) Cart(ctx context.Context, orderID string) (*Cart, error) {
	endpoint := fmt.Sprintf("%s/carts/%s", c.baseURL, url.PathEscape(orderID))

	var cart Cart
	if err := c.getJSON(ctx, endpoint, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListProducts fetches one catalog page of at most limit items plus the
// catalog-wide total.
func (c *Client) ListProducts(ctx context.Context, limit int) (*ProductList, error) {
	endpoint := fmt.Sprintf("%s/products?limit=%d", c.baseURL, limit)

	var list ProductList
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ProductURL returns the public link for a catalog item, used as the action
// link on rich replies.
func (c *Client) ProductURL(productID int) string {
	return fmt.Sprintf("%s/products/%d", c.baseURL, productID)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errx.New(err, http.StatusBadGateway, errx.CatalogErrorMessage)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return errx.New(err, http.StatusBadGateway, errx.CatalogErrorMessage)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := fmt.Errorf("catalog http status=%d body=%s", resp.StatusCode, string(raw))
		return errx.New(err, http.StatusBadGateway, errx.CatalogErrorMessage)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errx.New(fmt.Errorf("decode catalog response: %w", err), http.StatusBadGateway, errx.CatalogErrorMessage)
	}
	return nil
}
