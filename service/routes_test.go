package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPublicRoutes verifies the read-only storefront surface responds.
func TestPublicRoutes(t *testing.T) {
	e, _ := setupTestEcho(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"Health check", "GET", "/health", http.StatusOK},
		{"Catalogue tree", "GET", "/api/catalogue", http.StatusOK},
		{"Category listing", "GET", "/api/categories/Candles/products", http.StatusOK},
		{"Unknown category", "GET", "/api/categories/Nope/products", http.StatusNotFound},
		{"Product detail", "GET", "/api/products/detail?id=c1", http.StatusOK},
		{"Product detail missing id", "GET", "/api/products/detail", http.StatusNotFound},
		{"Product detail unknown id", "GET", "/api/products/detail?id=ghost", http.StatusNotFound},
		{"Payment link QR", "GET", "/api/products/ch1/qr", http.StatusOK},
		{"QR without payment link", "GET", "/api/products/c1/qr", http.StatusNotFound},
		{"Cart", "GET", "/api/cart", http.StatusOK},
		{"Wishlist", "GET", "/api/wishlist", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code,
				"Route %s %s should return %d, got %d",
				tt.method, tt.path, tt.wantStatus, rec.Code)
		})
	}
}

func TestNonExistentRoute(t *testing.T) {
	e, _ := setupTestEcho(t)

	req := httptest.NewRequest("GET", "/this-route-does-not-exist", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// doJSON plays one request against the service, carrying the shopper cookie
// between calls.
func doJSON(t *testing.T, e http.Handler, cookies []*http.Cookie, method, path, body string) (*httptest.ResponseRecorder, []*http.Cookie) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Result().Cookies(); len(got) > 0 {
		cookies = got
	}
	return rec, cookies
}

func TestCartFlow(t *testing.T) {
	e, _ := setupTestEcho(t)
	var cookies []*http.Cookie

	// Add the same product twice; the entry must merge.
	rec, cookies := doJSON(t, e, cookies, "POST", "/api/cart/items", `{"id":"c1","qty":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, cookies = doJSON(t, e, cookies, "POST", "/api/cart/items", `{"id":"c1","qty":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Items []struct {
			ID        string  `json:"id"`
			Qty       int     `json:"qty"`
			LineTotal float64 `json:"line_total"`
		} `json:"items"`
		Subtotal float64 `json:"subtotal"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Qty)
	assert.Equal(t, 25.0, view.Subtotal)

	// Unknown products are rejected at the API edge.
	rec, cookies = doJSON(t, e, cookies, "POST", "/api/cart/items", `{"id":"ghost","qty":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Missing id fails validation.
	rec, cookies = doJSON(t, e, cookies, "POST", "/api/cart/items", `{"qty":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Remove, then clear.
	rec, cookies = doJSON(t, e, cookies, "DELETE", "/api/cart/items/c1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, e, cookies, "GET", "/api/cart", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, view.Subtotal)
}

func TestWishlistFlow(t *testing.T) {
	e, _ := setupTestEcho(t)
	var cookies []*http.Cookie

	rec, cookies := doJSON(t, e, cookies, "PUT", "/api/wishlist/c1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Idempotent second add.
	rec, cookies = doJSON(t, e, cookies, "PUT", "/api/wishlist/c1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Items []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Vanilla Jar", view.Items[0].Name)

	rec, _ = doJSON(t, e, cookies, "DELETE", "/api/wishlist/c1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Empty(t, view.Items)
}

func TestCheckoutFlow(t *testing.T) {
	e, _ := setupTestEcho(t)
	var cookies []*http.Cookie

	// Empty cart cannot check out.
	rec, cookies := doJSON(t, e, cookies, "POST", "/api/checkout", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, cookies = doJSON(t, e, cookies, "POST", "/api/cart/items", `{"id":"c1","qty":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, e, cookies, "POST", "/api/checkout", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		URL      string  `json:"url"`
		OrderID  string  `json:"order_id"`
		Subtotal float64 `json:"subtotal"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://pay.example/approve/test", resp.URL)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, 25.0, resp.Subtotal)
}

func TestCatalogueRefreshFailureKeepsServing(t *testing.T) {
	e, svc := setupTestEcho(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("POST", "/api/catalogue/refresh", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Break the source. The refresh fails but the previous index keeps
	// serving listings.
	require.NoError(t, os.Remove(svc.CatalogueStore().Source()))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("POST", "/api/catalogue/refresh", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", "/api/catalogue", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
