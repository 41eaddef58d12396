package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/stripe/stripe-go/v80"
	checkoutsession "github.com/stripe/stripe-go/v80/checkout/session"
)

// Bridge hands a snapshot to a payment collaborator and returns the approval
// redirect URL the shopper should be sent to.
type Bridge interface {
	CreateCheckout(ctx context.Context, snap Snapshot, shopperID string) (string, error)
}

// StripeBridge creates a hosted Stripe checkout session for the snapshot.
type StripeBridge struct {
	secretKey  string
	successURL string
	cancelURL  string
}

func NewStripeBridge(secretKey, successURL, cancelURL string) *StripeBridge {
	return &StripeBridge{
		secretKey:  secretKey,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (b *StripeBridge) CreateCheckout(_ context.Context, snap Snapshot, shopperID string) (string, error) {
	if snap.Empty() {
		return "", fmt.Errorf("refusing to create checkout for an empty snapshot")
	}

	stripe.Key = b.secretKey

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("usd"),
				UnitAmount: stripe.Int64(toCents(line.Price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
					Metadata: map[string]string{
						"product_id": line.ProductID,
					},
				},
			},
			Quantity: stripe.Int64(int64(line.Qty)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(b.successURL),
		CancelURL:  stripe.String(b.cancelURL),
	}
	params.Metadata = map[string]string{
		"shopper_id": shopperID,
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		slog.Error("failed to create stripe checkout session", "error", err)
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return session.URL, nil
}

func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
