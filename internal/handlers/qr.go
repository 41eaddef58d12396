package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/velvetcharms/storefront/internal/catalogue"
)

// QRHandler renders a product's external payment link as a QR code, for
// point-of-sale cards and print flyers.
type QRHandler struct {
	store *catalogue.Store
}

func NewQRHandler(store *catalogue.Store) *QRHandler {
	return &QRHandler{store: store}
}

func (h *QRHandler) HandlePaymentLinkQR(c echo.Context) error {
	idx := h.store.Index()
	if idx == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "catalogue failed to load",
		})
	}

	product, ok := idx.FindByID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "product not found",
		})
	}
	if product.PaymentLink == "" {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "product has no payment link",
		})
	}

	png, err := qrcode.Encode(product.PaymentLink, qrcode.Medium, 256)
	if err != nil {
		slog.Error("failed to encode payment link QR", "error", err, "id", product.ID)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to render QR code",
		})
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
