package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/velvetcharms/storefront/internal/cart"
	"github.com/velvetcharms/storefront/internal/catalogue"
	"github.com/velvetcharms/storefront/internal/checkout"
	"github.com/velvetcharms/storefront/internal/handlers"
	"github.com/velvetcharms/storefront/internal/session"
	"github.com/velvetcharms/storefront/storage"
)

const testCatalogue = `{
	"categories": [
		{
			"name": "Candles",
			"banner": "images/candles-banner.jpg",
			"subcategories": [
				{
					"name": "Jar Candles",
					"products": [
						{"id": "c1", "name": "Vanilla Jar", "price": 12.5, "options": {"scent": "general"}},
						{"id": "c2", "name": "Sage Jar", "price": 14.0, "options": {"scent": "spiritual"}}
					]
				}
			]
		},
		{
			"name": "Charms",
			"products": [
				{"id": "ch1", "name": "Moon Charm", "price": 6.0, "paymentLink": "https://pay.example/ch1"},
				{"id": "ch2", "name": "Bespoke Charm"}
			]
		}
	]
}`

// stubBridge satisfies checkout.Bridge without talking to any payment
// collaborator.
type stubBridge struct {
	url string
	err error
}

func (b *stubBridge) CreateCheckout(_ context.Context, _ checkout.Snapshot, _ string) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return b.url, nil
}

// setupTestService creates a service instance with an in-memory database and
// a fixture catalogue.
func setupTestService(t *testing.T) *Service {
	t.Helper()

	store, cleanup, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	cataloguePath := filepath.Join(t.TempDir(), "catalogue.json")
	if err := os.WriteFile(cataloguePath, []byte(testCatalogue), 0644); err != nil {
		t.Fatalf("failed to write catalogue fixture: %v", err)
	}

	catalogueStore := catalogue.NewStore(catalogue.NewLoader(cataloguePath, time.Second))
	if err := catalogueStore.Refresh(context.Background()); err != nil {
		t.Fatalf("failed to load fixture catalogue: %v", err)
	}

	cartManager := cart.NewManager(store)
	sessionManager := session.NewManager("test-secret")
	bridge := &stubBridge{url: "https://pay.example/approve/test"}

	return &Service{
		storage:          store,
		config:           &Config{Environment: "test", Port: "8080"},
		catalogueStore:   catalogueStore,
		cartManager:      cartManager,
		sessionManager:   sessionManager,
		catalogueHandler: handlers.NewCatalogueHandler(catalogueStore),
		cartHandler:      handlers.NewCartHandler(cartManager, sessionManager, catalogueStore),
		wishlistHandler:  handlers.NewWishlistHandler(cartManager, sessionManager, catalogueStore),
		checkoutHandler:  handlers.NewCheckoutHandler(cartManager, sessionManager, catalogueStore, bridge, store),
		qrHandler:        handlers.NewQRHandler(catalogueStore),
	}
}

// setupTestEcho creates an Echo instance with all routes registered.
func setupTestEcho(t *testing.T) (*echo.Echo, *Service) {
	t.Helper()

	e := echo.New()
	svc := setupTestService(t)
	svc.RegisterRoutes(e)

	return e, svc
}
