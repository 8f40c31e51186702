package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/internal/config"
	"marketplace/internal/store"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router *mux.Router
	stores store.Stores
}

// newTestEnv builds the real router over in-memory stores. Each test
// gets its own instance so the rate limiter bucket starts full.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Config{
		JWTSecret:      "test-secret",
		AllowedOrigins: []string{"*"},
	}
	stores := store.NewMemory()
	return &testEnv{
		router: New(cfg, stores, zerolog.Nop()),
		stores: stores,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (e *testEnv) register(t *testing.T, name, email, password string) (int, string) {
	t.Helper()
	rec := e.do(t, "POST", "/api/vendors/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	return int(body["id"].(float64)), body["token"].(string)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/vendors/register", "", map[string]string{
		"name": "Acme", "email": "a@x.com", "password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Acme", body["name"])
	assert.NotEmpty(t, body["token"])
	assert.NotContains(t, rec.Body.String(), "pw123456")

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/vendors/register", "", map[string]string{
			"name": "Other", "email": "a@x.com", "password": "different",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Vendor already exists", decode(t, rec)["message"])
	})

	t.Run("login issues a fresh token", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/vendors/login", "", map[string]string{
			"email": "a@x.com", "password": "pw123456",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, decode(t, rec)["token"])
	})

	t.Run("bad credentials are generic", func(t *testing.T) {
		recWrongPassword := env.do(t, "POST", "/api/vendors/login", "", map[string]string{
			"email": "a@x.com", "password": "wrong",
		})
		recUnknownEmail := env.do(t, "POST", "/api/vendors/login", "", map[string]string{
			"email": "nobody@x.com", "password": "pw123456",
		})
		assert.Equal(t, http.StatusUnauthorized, recWrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, recUnknownEmail.Code)
		assert.Equal(t, recWrongPassword.Body.String(), recUnknownEmail.Body.String())
	})
}

func TestAuthGate(t *testing.T) {
	env := newTestEnv(t)

	t.Run("no token", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/products", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Not authorized, no token", decode(t, rec)["message"])
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/products", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Not authorized, no token", decode(t, rec)["message"])
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/products", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Not authorized", decode(t, rec)["message"])
	})

	t.Run("vendor deleted after issuance", func(t *testing.T) {
		id, token := env.register(t, "Ghost", "ghost@x.com", "pw123456")
		env.stores.Vendors.(*store.MemoryVendorStore).Delete(id)

		rec := env.do(t, "GET", "/api/products", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Not authorized", decode(t, rec)["message"])
	})
}

func TestProductEndpoints(t *testing.T) {
	env := newTestEnv(t)
	vendorID, token := env.register(t, "Acme", "a@x.com", "pw123456")

	rec := env.do(t, "POST", "/api/products", token, map[string]interface{}{
		"name": "Widget", "price": 9.99, "stock": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, float64(vendorID), created["vendor"])
	productID := int(created["id"].(float64))

	t.Run("list", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/products?page=1&limit=10", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, float64(1), body["totalPages"])
		assert.Equal(t, float64(1), body["currentPage"])
		products := body["products"].([]interface{})
		require.Len(t, products, 1)
		assert.Equal(t, "Widget", products[0].(map[string]interface{})["name"])
	})

	t.Run("non-numeric pagination params clamp to defaults", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/products?page=abc&limit=-3", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, float64(1), body["currentPage"])
		assert.Equal(t, float64(1), body["totalPages"])
	})

	t.Run("non-numeric price names the field", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/products", token, map[string]interface{}{
			"name": "Bad", "price": "abc", "stock": 1,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		fieldErrors := decode(t, rec)["errors"].([]interface{})
		require.NotEmpty(t, fieldErrors)
		assert.Equal(t, "price", fieldErrors[0].(map[string]interface{})["field"])
	})

	t.Run("update merges allow-listed fields only", func(t *testing.T) {
		rec := env.do(t, "PUT", fmt.Sprintf("/api/products/%d", productID), token, map[string]interface{}{
			"price": 19.99, "vendor": 9999,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, 19.99, body["price"])
		assert.Equal(t, "Widget", body["name"])
		assert.Equal(t, float64(vendorID), body["vendor"])
	})

	t.Run("delete", func(t *testing.T) {
		rec := env.do(t, "DELETE", fmt.Sprintf("/api/products/%d", productID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Product deleted successfully", decode(t, rec)["message"])

		rec = env.do(t, "DELETE", fmt.Sprintf("/api/products/%d", productID), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestVendorIsolation(t *testing.T) {
	env := newTestEnv(t)
	_, tokenA := env.register(t, "Acme", "a@x.com", "pw123456")
	_, tokenB := env.register(t, "Bolt", "b@x.com", "pw123456")

	rec := env.do(t, "POST", "/api/products", tokenA, map[string]interface{}{
		"name": "Widget", "price": 9.99, "stock": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	productID := int(decode(t, rec)["id"].(float64))

	t.Run("B cannot list A's products", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/products", tokenB, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode(t, rec)["products"].([]interface{}), 0)
	})

	t.Run("B updating A's product reads as not found", func(t *testing.T) {
		rec := env.do(t, "PUT", fmt.Sprintf("/api/products/%d", productID), tokenB, map[string]interface{}{
			"name": "Stolen",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Product not found", decode(t, rec)["message"])
	})

	t.Run("B deleting A's product reads as not found", func(t *testing.T) {
		rec := env.do(t, "DELETE", fmt.Sprintf("/api/products/%d", productID), tokenB, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("A still owns the product untouched", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/products", tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		products := decode(t, rec)["products"].([]interface{})
		require.Len(t, products, 1)
		assert.Equal(t, "Widget", products[0].(map[string]interface{})["name"])
	})
}

func TestOrderEndpoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, tokenA := env.register(t, "Acme", "a@x.com", "pw123456")
	_, tokenB := env.register(t, "Bolt", "b@x.com", "pw123456")

	rec := env.do(t, "POST", "/api/products", tokenA, map[string]interface{}{
		"name": "Widget", "price": 9.99, "stock": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	productID := int(decode(t, rec)["id"].(float64))

	// Orders come from the external intake flow, not an endpoint.
	order, err := env.stores.Orders.Create(ctx, productID)
	require.NoError(t, err)

	t.Run("list expands the product reference", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/orders", tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var orders []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		require.Len(t, orders, 1)
		assert.Equal(t, "pending", orders[0]["status"])
		product := orders[0]["product"].(map[string]interface{})
		assert.Equal(t, "Widget", product["name"])
		assert.Equal(t, 9.99, product["price"])
	})

	t.Run("foreign vendor sees no orders", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/orders", tokenB, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("foreign vendor cannot ship", func(t *testing.T) {
		rec := env.do(t, "PUT", fmt.Sprintf("/api/orders/%d", order.ID), tokenB, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Unauthorized", decode(t, rec)["message"])
	})

	t.Run("owner ships", func(t *testing.T) {
		rec := env.do(t, "PUT", fmt.Sprintf("/api/orders/%d", order.ID), tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Order marked as shipped", body["message"])
		assert.Equal(t, "shipped", body["order"].(map[string]interface{})["status"])
	})

	t.Run("transition observable on a later list", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/orders", tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var orders []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		require.Len(t, orders, 1)
		assert.Equal(t, "shipped", orders[0]["status"])
	})

	t.Run("shipping a missing order is forbidden", func(t *testing.T) {
		rec := env.do(t, "PUT", "/api/orders/9999", tokenA, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
