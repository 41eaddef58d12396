package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/velvetcharms/storefront/internal/cart"
	"github.com/velvetcharms/storefront/internal/catalogue"
	"github.com/velvetcharms/storefront/internal/session"
)

// CartHandler exposes the shopper's cart. Every mutation persists before the
// response is written; reads always reflect the freshest stored state.
type CartHandler struct {
	manager  *cart.Manager
	sessions *session.Manager
	store    *catalogue.Store
}

func NewCartHandler(manager *cart.Manager, sessions *session.Manager, store *catalogue.Store) *CartHandler {
	return &CartHandler{
		manager:  manager,
		sessions: sessions,
		store:    store,
	}
}

type AddCartItemRequest struct {
	ID      string            `json:"id" validate:"required"`
	Qty     int               `json:"qty" validate:"omitempty,min=1"`
	Options map[string]string `json:"options"`
	Note    string            `json:"note"`
}

// CartItemView is a cart entry joined with current catalogue data. Entries
// whose product no longer resolves stay listed but are flagged and priced
// at zero.
type CartItemView struct {
	ID         string            `json:"id"`
	Qty        int               `json:"qty"`
	Options    map[string]string `json:"options,omitempty"`
	Note       string            `json:"note,omitempty"`
	Name       string            `json:"name,omitempty"`
	Price      *float64          `json:"price,omitempty"`
	LineTotal  float64           `json:"line_total"`
	Unresolved bool              `json:"unresolved,omitempty"`
}

type CartView struct {
	Items    []CartItemView `json:"items"`
	Subtotal float64        `json:"subtotal"`
}

func (h *CartHandler) cartView(c *cart.Cart) CartView {
	idx := h.store.Index()

	view := CartView{Items: make([]CartItemView, 0, c.Len())}
	for _, entry := range c.Items {
		item := CartItemView{
			ID:      entry.ID,
			Qty:     entry.Qty,
			Options: entry.Options,
			Note:    entry.Note,
		}

		if product, ok := idx.FindByID(entry.ID); ok {
			item.Name = product.Name
			item.Price = product.Price
			if product.HasPrice() {
				item.LineTotal = product.PriceValue() * float64(entry.Qty)
			}
		} else {
			item.Unresolved = true
		}

		view.Items = append(view.Items, item)
	}
	view.Subtotal = c.Subtotal(idx)
	return view
}

func (h *CartHandler) shopperID(c echo.Context) (string, error) {
	id, err := h.sessions.ShopperID(c)
	if err != nil {
		slog.Error("failed to establish shopper session", "error", err)
		return "", echo.NewHTTPError(http.StatusInternalServerError, "Failed to establish session")
	}
	return id, nil
}

func (h *CartHandler) HandleGetCart(c echo.Context) error {
	shopperID, err := h.shopperID(c)
	if err != nil {
		return err
	}

	current, err := h.manager.Cart(c.Request().Context(), shopperID)
	if err != nil {
		slog.Error("failed to load cart", "error", err, "shopper_id", shopperID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load cart")
	}

	return c.JSON(http.StatusOK, h.cartView(current))
}

func (h *CartHandler) HandleAddItem(c echo.Context) error {
	shopperID, err := h.shopperID(c)
	if err != nil {
		return err
	}

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Product id is required and qty must be at least 1")
	}

	// Pre-validate against the index so shoppers cannot cart ghost ids via
	// the API; the state layer itself stays tolerant either way.
	if idx := h.store.Index(); idx != nil {
		if _, ok := idx.FindByID(req.ID); !ok {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
	}

	if req.Qty == 0 {
		req.Qty = 1
	}

	current, err := h.manager.AddToCartWithNote(c.Request().Context(), shopperID, req.ID, req.Qty, req.Options, req.Note)
	if err != nil {
		slog.Error("failed to add cart item", "error", err, "shopper_id", shopperID, "product_id", req.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update cart")
	}

	return c.JSON(http.StatusOK, h.cartView(current))
}

func (h *CartHandler) HandleRemoveItem(c echo.Context) error {
	shopperID, err := h.shopperID(c)
	if err != nil {
		return err
	}

	current, err := h.manager.RemoveFromCart(c.Request().Context(), shopperID, c.Param("id"))
	if err != nil {
		slog.Error("failed to remove cart item", "error", err, "shopper_id", shopperID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update cart")
	}

	return c.JSON(http.StatusOK, h.cartView(current))
}

func (h *CartHandler) HandleClearCart(c echo.Context) error {
	shopperID, err := h.shopperID(c)
	if err != nil {
		return err
	}

	current, err := h.manager.ClearCart(c.Request().Context(), shopperID)
	if err != nil {
		slog.Error("failed to clear cart", "error", err, "shopper_id", shopperID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to clear cart")
	}

	return c.JSON(http.StatusOK, h.cartView(current))
}
