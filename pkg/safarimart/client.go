// pkg/safarimart/client.go

// Package safarimart is a typed HTTP client for the SafariMart marketplace
// API. Responses are decoded once into the canonical types in this package,
// and API failures map onto the exported sentinel errors so callers can
// branch with errors.Is.
package safarimart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sentinel errors mirroring the server's error taxonomy.
var (
	ErrNotFound       = errors.New("safarimart: not found")
	ErrUnauthorized   = errors.New("safarimart: authentication required")
	ErrForbidden      = errors.New("safarimart: forbidden")
	ErrInactive       = errors.New("safarimart: product is inactive")
	ErrTransferFailed = errors.New("safarimart: transfer failed")
	ErrBadRequest     = errors.New("safarimart: bad request")
)

// APIError carries the server's error payload. It unwraps to the sentinel
// matching its code.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("safarimart: %s (%s)", e.Message, e.Code)
}

func (e *APIError) Unwrap() error {
	switch e.Code {
	case "NOT_FOUND":
		return ErrNotFound
	case "UNAUTHORIZED":
		return ErrUnauthorized
	case "FORBIDDEN":
		return ErrForbidden
	case "CONFLICT":
		return ErrInactive
	case "TRANSFER_FAILED":
		return ErrTransferFailed
	default:
		return ErrBadRequest
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login authenticates and stores the returned access token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", body, &out); err != nil {
		return nil, err
	}

	c.token = out.Token
	return &out, nil
}

// ListProduct creates a new listing owned by the authenticated user.
func (c *Client) ListProduct(ctx context.Context, req *ListProductRequest) (*Product, error) {
	var out struct {
		Product *Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/products", req, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var out struct {
		Product *Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

// UpdateProduct applies a partial update. Only the listing's creator may
// call this.
func (c *Client) UpdateProduct(ctx context.Context, id int64, req *UpdateProductRequest) (*Product, error) {
	var out struct {
		Product *Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/v1/products/%d", id), req, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

// GetAllActiveProducts returns the full active catalog in listing order.
func (c *Client) GetAllActiveProducts(ctx context.Context) ([]Product, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/products/active", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) GetProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/products/category/"+category, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// GetProductsByCreator returns a creator's full catalog, inactive listings
// included.
func (c *Client) GetProductsByCreator(ctx context.Context, creatorID string) ([]Product, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/creators/"+creatorID+"/products", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// PurchaseProduct pays for a product from the authenticated user's wallet.
// Payment is in the smallest currency unit.
func (c *Client) PurchaseProduct(ctx context.Context, productID, payment int64) (*Purchase, error) {
	body := map[string]int64{"payment": payment}

	var out struct {
		Purchase *Purchase `json:"purchase"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/products/%d/purchase", productID), body, &out); err != nil {
		return nil, err
	}
	return out.Purchase, nil
}

func (c *Client) GetPurchase(ctx context.Context, id int64) (*Purchase, error) {
	var out struct {
		Purchase *Purchase `json:"purchase"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/purchases/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Purchase, nil
}

// HasPurchased reports whether the authenticated user has bought the product.
func (c *Client) HasPurchased(ctx context.Context, productID int64) (bool, error) {
	var out struct {
		Purchased bool `json:"purchased"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/purchases/check/%d", productID), nil, &out); err != nil {
		return false, err
	}
	return out.Purchased, nil
}

// GetPurchaseHistory returns the authenticated user's purchases with product
// details, oldest first.
func (c *Client) GetPurchaseHistory(ctx context.Context) ([]PurchaseHistoryItem, error) {
	var out struct {
		History []PurchaseHistoryItem `json:"history"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/purchases/history", nil, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

func (c *Client) GetWallet(ctx context.Context) (*Wallet, error) {
	var out struct {
		Wallet *Wallet `json:"wallet"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/wallet", nil, &out); err != nil {
		return nil, err
	}
	return out.Wallet, nil
}

// GetProductJournal returns the provenance trail for a product.
func (c *Client) GetProductJournal(ctx context.Context, productID int64) ([]JournalEntry, error) {
	var out struct {
		Entries []JournalEntry `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/products/%d/journal", productID), nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// envelope is the API's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("safarimart: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("safarimart: failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("safarimart: request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("safarimart: failed to decode response: %w", err)
	}

	if !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("safarimart: failed to decode payload: %w", err)
		}
	}

	return nil
}
