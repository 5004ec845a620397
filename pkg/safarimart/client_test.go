// pkg/safarimart/client_test.go
package safarimart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func TestGetProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/products/7", r.URL.Path)
		respond(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"product": map[string]interface{}{
					"id":        7,
					"title":     "Rhino Pack",
					"price":     2500,
					"is_active": true,
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	product, err := client.GetProduct(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), product.ID)
	assert.Equal(t, "Rhino Pack", product.Title)
	assert.Equal(t, int64(2500), product.Price)
	assert.True(t, product.IsActive)
}

func TestGetProductNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"error": map[string]interface{}{
				"code":    "NOT_FOUND",
				"message": "Product not found",
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetProduct(context.Background(), 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestPurchaseProductSendsPaymentAndToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/products/3/purchase", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(1500), body["payment"])

		respond(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"purchase": map[string]interface{}{
					"id":         1,
					"product_id": 3,
					"price_paid": 1500,
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithToken("test-token"))
	purchase, err := client.PurchaseProduct(context.Background(), 3, 1500)
	require.NoError(t, err)

	assert.Equal(t, int64(1), purchase.ID)
	assert.Equal(t, int64(1500), purchase.PricePaid)
}

func TestPurchaseTransferFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusPaymentRequired, map[string]interface{}{
			"success": false,
			"error": map[string]interface{}{
				"code":    "TRANSFER_FAILED",
				"message": "Wallet transfer failed",
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithToken("test-token"))
	_, err := client.PurchaseProduct(context.Background(), 3, 99999)

	assert.ErrorIs(t, err, ErrTransferFailed)
}

func TestLoginStoresToken(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Path {
		case "/v1/auth/login":
			respond(w, http.StatusOK, map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"token":      "issued-token",
					"token_type": "Bearer",
					"user": map[string]interface{}{
						"username": "tembo",
					},
				},
			})
		case "/v1/purchases/history":
			assert.Equal(t, "Bearer issued-token", r.Header.Get("Authorization"))
			respond(w, http.StatusOK, map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"history": []interface{}{},
				},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	auth, err := client.Login(context.Background(), "tembo@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", auth.Token)
	assert.Equal(t, "tembo", auth.User.Username)

	history, err := client.GetPurchaseHistory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Equal(t, 2, calls)
}

func TestGetAllActiveProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/products/active", r.URL.Path)
		respond(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"products": []interface{}{
					map[string]interface{}{"id": 1, "title": "First"},
					map[string]interface{}{"id": 2, "title": "Second"},
				},
				"count": 2,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	products, err := client.GetAllActiveProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Second", products[1].Title)
}
