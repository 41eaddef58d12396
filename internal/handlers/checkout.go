package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/velvetcharms/storefront/internal/cart"
	"github.com/velvetcharms/storefront/internal/catalogue"
	"github.com/velvetcharms/storefront/internal/checkout"
	"github.com/velvetcharms/storefront/internal/session"
	"github.com/velvetcharms/storefront/storage"
)

// CheckoutHandler snapshots the cart against the current index and hands the
// result to the configured bridge. Entries that fail to resolve are dropped
// from the snapshot and reported back so the front-end can warn the shopper.
type CheckoutHandler struct {
	manager  *cart.Manager
	sessions *session.Manager
	store    *catalogue.Store
	bridge   checkout.Bridge
	orders   *storage.Storage
}

func NewCheckoutHandler(manager *cart.Manager, sessions *session.Manager, store *catalogue.Store, bridge checkout.Bridge, orders *storage.Storage) *CheckoutHandler {
	return &CheckoutHandler{
		manager:  manager,
		sessions: sessions,
		store:    store,
		bridge:   bridge,
		orders:   orders,
	}
}

type CheckoutResponse struct {
	URL      string   `json:"url"`
	OrderID  string   `json:"order_id"`
	Subtotal float64  `json:"subtotal"`
	Dropped  []string `json:"dropped,omitempty"`
}

func (h *CheckoutHandler) HandleCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	shopperID, err := h.sessions.ShopperID(c)
	if err != nil {
		slog.Error("failed to establish shopper session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to establish session")
	}

	idx := h.store.Index()
	if idx == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "catalogue failed to load",
		})
	}

	current, err := h.manager.Cart(ctx, shopperID)
	if err != nil {
		slog.Error("failed to load cart for checkout", "error", err, "shopper_id", shopperID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load cart")
	}

	snap := checkout.BuildSnapshot(current, idx)
	if snap.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "nothing to check out",
			"dropped": snap.Dropped,
		})
	}

	url, err := h.bridge.CreateCheckout(ctx, snap, shopperID)
	if err != nil {
		slog.Error("checkout bridge failed", "error", err, "shopper_id", shopperID)
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to start checkout")
	}

	orderID := uuid.New().String()
	payload, err := json.Marshal(snap)
	if err != nil {
		slog.Error("failed to encode order snapshot", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record order")
	}

	if err := h.orders.CreateOrder(ctx, storage.Order{
		ID:        orderID,
		SessionID: shopperID,
		Reference: url,
		Subtotal:  snap.Subtotal,
		Payload:   payload,
	}); err != nil {
		slog.Error("failed to record order", "error", err, "order_id", orderID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record order")
	}

	if len(snap.Dropped) > 0 {
		slog.Warn("checkout dropped unresolved cart entries",
			"shopper_id", shopperID,
			"dropped", snap.Dropped,
		)
	}

	return c.JSON(http.StatusOK, CheckoutResponse{
		URL:      url,
		OrderID:  orderID,
		Subtotal: snap.Subtotal,
		Dropped:  snap.Dropped,
	})
}
