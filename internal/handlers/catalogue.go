package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/velvetcharms/storefront/internal/catalogue"
)

// CatalogueHandler serves listings and product detail from the current
// catalogue index. All failures degrade to JSON error bodies; nothing here
// may take the page down.
type CatalogueHandler struct {
	store *catalogue.Store
}

func NewCatalogueHandler(store *catalogue.Store) *CatalogueHandler {
	return &CatalogueHandler{store: store}
}

type CategorySummary struct {
	Name         string `json:"name"`
	Banner       string `json:"banner,omitempty"`
	ProductCount int    `json:"product_count"`
}

type ProductView struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Price       *float64            `json:"price,omitempty"`
	PriceText   string              `json:"price_text,omitempty"`
	Images      []string            `json:"images,omitempty"`
	Description string              `json:"description,omitempty"`
	PaymentLink string              `json:"payment_link,omitempty"`
	Options     map[string][]string `json:"options,omitempty"`
}

func productView(p catalogue.Product) ProductView {
	view := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Images:      p.Images,
		Description: p.Description,
		PaymentLink: p.PaymentLink,
	}
	if !p.HasPrice() {
		view.PriceText = "Contact for price"
	}
	if len(p.Options) > 0 {
		view.Options = make(map[string][]string, len(p.Options))
		for name, values := range p.Options {
			view.Options[name] = values.Choices
		}
	}
	return view
}

// HandleTree returns the category tree summary.
func (h *CatalogueHandler) HandleTree(c echo.Context) error {
	idx := h.store.Index()
	if idx == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "catalogue failed to load",
		})
	}

	cat := h.store.Catalogue()
	summaries := make([]CategorySummary, 0, len(cat.Categories))
	for _, category := range cat.Categories {
		summaries = append(summaries, CategorySummary{
			Name:         category.Name,
			Banner:       category.Banner,
			ProductCount: len(idx.CategoryProducts(category.Name)),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"categories": summaries,
		"loaded_at":  h.store.LoadedAt(),
	})
}

// HandleCategoryProducts returns the ordered listing for one category.
func (h *CatalogueHandler) HandleCategoryProducts(c echo.Context) error {
	idx := h.store.Index()
	if idx == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "catalogue failed to load",
		})
	}

	name := c.Param("name")
	if !idx.HasCategory(name) {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "category not found",
		})
	}

	listing := idx.CategoryProducts(name)
	views := make([]ProductView, 0, len(listing))
	for _, p := range listing {
		views = append(views, productView(p))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"category": name,
		"products": views,
	})
}

// HandleProductDetail serves the detail view selected by the id query
// parameter. A missing or unknown id is a "not found" body, never a crash.
func (h *CatalogueHandler) HandleProductDetail(c echo.Context) error {
	idx := h.store.Index()
	if idx == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "catalogue failed to load",
		})
	}

	id := c.QueryParam("id")
	product, ok := idx.FindByID(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "product not found",
		})
	}

	return c.JSON(http.StatusOK, productView(product))
}

// HandleRefresh re-fetches the catalogue. On failure the previous index
// keeps serving and the error kind is reported.
func (h *CatalogueHandler) HandleRefresh(c echo.Context) error {
	if err := h.store.Refresh(c.Request().Context()); err != nil {
		slog.Error("catalogue refresh failed", "error", err)
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "catalogue refresh failed",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"products":  h.store.Index().Len(),
		"loaded_at": h.store.LoadedAt(),
	})
}
