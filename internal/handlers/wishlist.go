package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/velvetcharms/storefront/internal/cart"
	"github.com/velvetcharms/storefront/internal/catalogue"
	"github.com/velvetcharms/storefront/internal/session"
)

type WishlistHandler struct {
	manager  *cart.Manager
	sessions *session.Manager
	store    *catalogue.Store
}

func NewWishlistHandler(manager *cart.Manager, sessions *session.Manager, store *catalogue.Store) *WishlistHandler {
	return &WishlistHandler{
		manager:  manager,
		sessions: sessions,
		store:    store,
	}
}

type WishlistItemView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Unresolved bool     `json:"unresolved,omitempty"`
}

func (h *WishlistHandler) wishlistView(w *cart.Wishlist) []WishlistItemView {
	idx := h.store.Index()

	items := make([]WishlistItemView, 0, w.Len())
	for _, id := range w.IDs() {
		item := WishlistItemView{ID: id}
		if product, ok := idx.FindByID(id); ok {
			item.Name = product.Name
			item.Price = product.Price
		} else {
			item.Unresolved = true
		}
		items = append(items, item)
	}
	return items
}

func (h *WishlistHandler) shopperID(c echo.Context) (string, error) {
	id, err := h.sessions.ShopperID(c)
	if err != nil {
		slog.Error("failed to establish shopper session", "error", err)
		return "", echo.NewHTTPError(http.StatusInternalServerError, "Failed to establish session")
	}
	return id, nil
}

func (h *WishlistHandler) HandleGetWishlist(c echo.Context) error {
	shopperID, err := h.shopperID(c)
	if err != nil {
		return err
	}

	w, err := h.manager.Wishlist(c.Request().Context(), shopperID)
	if err != nil {
		slog.Error("failed to load wishlist", "error", err, "shopper_id", shopperID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load wishlist")
	}

	return c.JSON(http.StatusOK, map[string]any{"items": h.wishlistView(w)})
}

func (h *WishlistHandler) HandleAddItem(c echo.Context) error {
	shopperID, err := h.shopperID(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Product id is required")
	}

	w, err := h.manager.AddToWishlist(c.Request().Context(), shopperID, id)
	if err != nil {
		slog.Error("failed to add wishlist item", "error", err, "shopper_id", shopperID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update wishlist")
	}

	return c.JSON(http.StatusOK, map[string]any{"items": h.wishlistView(w)})
}

func (h *WishlistHandler) HandleRemoveItem(c echo.Context) error {
	shopperID, err := h.shopperID(c)
	if err != nil {
		return err
	}

	w, err := h.manager.RemoveFromWishlist(c.Request().Context(), shopperID, c.Param("id"))
	if err != nil {
		slog.Error("failed to remove wishlist item", "error", err, "shopper_id", shopperID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update wishlist")
	}

	return c.JSON(http.StatusOK, map[string]any{"items": h.wishlistView(w)})
}
