package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/velvetcharms/storefront/internal/cart"
	"github.com/velvetcharms/storefront/internal/catalogue"
	"github.com/velvetcharms/storefront/internal/checkout"
	"github.com/velvetcharms/storefront/internal/handlers"
	"github.com/velvetcharms/storefront/internal/session"
	"github.com/velvetcharms/storefront/storage"
)

type Service struct {
	storage          *storage.Storage
	config           *Config
	catalogueStore   *catalogue.Store
	cartManager      *cart.Manager
	sessionManager   *session.Manager
	catalogueHandler *handlers.CatalogueHandler
	cartHandler      *handlers.CartHandler
	wishlistHandler  *handlers.WishlistHandler
	checkoutHandler  *handlers.CheckoutHandler
	qrHandler        *handlers.QRHandler
}

func New(store *storage.Storage, config *Config) *Service {
	catalogueStore := catalogue.NewStore(
		catalogue.NewLoader(config.Catalogue.Source, config.Catalogue.FetchTimeout),
	)

	// First load happens here so the index is ready before the first
	// request. A failure is a degraded state, not a startup abort: the
	// handlers serve "catalogue failed to load" until a refresh succeeds.
	if err := catalogueStore.Refresh(context.Background()); err != nil {
		slog.Warn("initial catalogue load failed, serving degraded until refresh",
			"error", err,
			"source", config.Catalogue.Source,
		)
	}

	cartManager := cart.NewManager(store)
	sessionManager := session.NewManager(config.Session.Secret)

	var bridge checkout.Bridge
	if config.Checkout.OrderAPIURL != "" {
		client := checkout.NewOrderClient(config.Checkout.OrderAPIURL, config.Catalogue.FetchTimeout)
		client.Shipping = config.Checkout.Shipping
		bridge = client
		slog.Info("checkout bridge: external order endpoint", "url", config.Checkout.OrderAPIURL)
	} else {
		bridge = checkout.NewStripeBridge(
			config.Stripe.SecretKey,
			config.BaseURL+"/checkout/success?session_id={CHECKOUT_SESSION_ID}",
			config.BaseURL+"/cart",
		)
		slog.Info("checkout bridge: stripe hosted checkout")
	}

	return &Service{
		storage:          store,
		config:           config,
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

// CatalogueStore exposes the catalogue store for jobs and tests.
func (s *Service) CatalogueStore() *catalogue.Store {
	return s.catalogueStore
}

// requestValidator adapts go-playground/validator to Echo's Validator hook.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	e.Validator = &requestValidator{validate: validator.New()}

	// Static front-end assets
	e.Static("/public", "public")

	e.GET("/health", s.handleHealth)

	// Catalogue
	e.GET("/api/catalogue", s.catalogueHandler.HandleTree)
	e.POST("/api/catalogue/refresh", s.catalogueHandler.HandleRefresh)
	e.GET("/api/categories/:name/products", s.catalogueHandler.HandleCategoryProducts)
	e.GET("/api/products/detail", s.catalogueHandler.HandleProductDetail)
	e.GET("/api/products/:id/qr", s.qrHandler.HandlePaymentLinkQR)

	// Cart
	e.GET("/api/cart", s.cartHandler.HandleGetCart)
	e.POST("/api/cart/items", s.cartHandler.HandleAddItem)
	e.DELETE("/api/cart/items/:id", s.cartHandler.HandleRemoveItem)
	e.POST("/api/cart/clear", s.cartHandler.HandleClearCart)

	// Wishlist
	e.GET("/api/wishlist", s.wishlistHandler.HandleGetWishlist)
	e.PUT("/api/wishlist/:id", s.wishlistHandler.HandleAddItem)
	e.DELETE("/api/wishlist/:id", s.wishlistHandler.HandleRemoveItem)

	// Checkout
	e.POST("/api/checkout", s.checkoutHandler.HandleCheckout)
}

func (s *Service) handleHealth(c echo.Context) error {
	status := map[string]any{
		"status":    "ok",
		"catalogue": s.catalogueStore.Index() != nil,
	}
	return c.JSON(http.StatusOK, status)
}
