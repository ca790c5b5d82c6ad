// Package api implements the HTTP client for the remote storefront API. The
// server is the source of truth for products, orders and identity; this
// client only shapes requests, carries the bearer credential and maps error
// responses onto the client error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/qmexai/storefront-client/internal/entity"
)

// TokenFunc supplies the current bearer credential, or "" when logged out.
type TokenFunc func() string

// Client talks to the storefront API. Requests use the transport's default
// timeout behavior and are never retried automatically; a failed call
// surfaces as an error for the user to act on.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenFunc
}

// NewClient creates a Client for the API at baseURL. token may be nil for an
// always-anonymous client.
func NewClient(baseURL string, token TokenFunc) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		token:      token,
	}
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/", nil, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &p); err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &p, nil
}

// CreateProduct creates a product (admin). The server re-derives sale price
// consistency after creation and its response is authoritative.
func (c *Client) CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	var created entity.Product
	if err := c.doJSON(ctx, http.MethodPost, "/products/", p, &created); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

// UpdateProduct replaces the editable fields of a product (admin).
func (c *Client) UpdateProduct(ctx context.Context, id int64, p *entity.Product) (*entity.Product, error) {
	var updated entity.Product
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), p, &updated); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return &updated, nil
}

// BulkDiscount applies a discount percentage to every product in a category
// (admin). The call is atomic from the caller's perspective: it either
// reports whole success or an error.
func (c *Client) BulkDiscount(ctx context.Context, req entity.BulkDiscountRequest) error {
	if err := c.doJSON(ctx, http.MethodPost, "/products/bulk-discount", req, nil); err != nil {
		return fmt.Errorf("failed to apply bulk discount: %w", err)
	}
	return nil
}

// SeedProducts asks the server to seed demo products (admin).
func (c *Client) SeedProducts(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/products/seed", nil, nil); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	return nil
}

// Checkout submits a normalized item list and creates an order in Pending.
func (c *Client) Checkout(ctx context.Context, req entity.CheckoutRequest) (*entity.Order, error) {
	var order entity.Order
	if err := c.doJSON(ctx, http.MethodPost, "/orders/checkout", req, &order); err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}
	return &order, nil
}

// MyOrders lists the authenticated user's orders.
func (c *Client) MyOrders(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders/my-orders", nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder fetches one of the user's orders.
func (c *Client) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	var order entity.Order
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}

// AdminOrders lists all orders (admin).
func (c *Client) AdminOrders(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := c.doJSON(ctx, http.MethodGet, "/admin/orders", nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to list admin orders: %w", err)
	}
	return orders, nil
}

// AdminOrder fetches an order's detail view (admin). On the server, opening
// a Pending order moves it to Processing as a side effect of this fetch.
func (c *Client) AdminOrder(ctx context.Context, id int64) (*entity.Order, error) {
	var order entity.Order
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/orders/%d", id), nil, &order); err != nil {
		return nil, fmt.Errorf("failed to get admin order %d: %w", id, err)
	}
	return &order, nil
}

// Stats fetches the admin revenue aggregates.
func (c *Client) Stats(ctx context.Context) (*entity.RevenueStats, error) {
	var stats entity.RevenueStats
	if err := c.doJSON(ctx, http.MethodGet, "/admin/stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &stats, nil
}

// Login exchanges credentials for a bearer token. The endpoint speaks
// OAuth2 password flow, so the body is form encoded and the email travels
// as "username".
func (c *Client) Login(ctx context.Context, email, password string) (*entity.Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token entity.Token
	if err := c.send(req, &token); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &token, nil
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Register creates a new account and returns the resulting profile.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*entity.User, error) {
	var user entity.User
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &user); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &user, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*entity.User, error) {
	var user entity.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &user, nil
}

// ProfileUpdate carries the editable profile fields. Nil fields are left
// unchanged by the server.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// UpdateMe updates the authenticated user's profile.
func (c *Client) UpdateMe(ctx context.Context, update ProfileUpdate) (*entity.User, error) {
	var user entity.User
	if err := c.doJSON(ctx, http.MethodPut, "/auth/me", update, &user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

// doJSON performs a request with an optional JSON body, decoding the
// response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorFromResponse maps an error response onto the client taxonomy. The
// server reports failures as {"detail": "..."}.
func errorFromResponse(resp *http.Response) error {
	detail := readDetail(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthorizationError{StatusCode: resp.StatusCode, Message: detail}
	case http.StatusNotFound:
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, detail)
		}
		return ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		if detail == "" {
			detail = "request rejected"
		}
		return &DomainConflictError{Message: detail}
	}

	if detail != "" {
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, detail)
	}
	return fmt.Errorf("server error (%d)", resp.StatusCode)
}

func readDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}
