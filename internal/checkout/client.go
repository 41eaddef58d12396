package checkout

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

// OrderClient posts snapshots to an external order-creation endpoint and
// relays its approval URL. It is the thin-server-endpoint flavor of the
// checkout handoff.
type OrderClient struct {
	endpoint   string
	httpClient *resty.Client

	// Shipping is a flat passthrough amount included with every request.
	Shipping float64
}

func NewOrderClient(endpoint string, timeout time.Duration) *OrderClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &OrderClient{
		endpoint:   endpoint,
		httpClient: client,
	}
}

type orderRequest struct {
	Cart orderCart `json:"cart"`
}

type orderCart struct {
	Items    []Line  `json:"items"`
	Shipping float64 `json:"shipping"`
}

type orderResponse struct {
	ApprovalURL string `json:"approvalUrl"`
	Error       string `json:"error,omitempty"`
}

func (c *OrderClient) CreateCheckout(ctx context.Context, snap Snapshot, _ string) (string, error) {
	if snap.Empty() {
		return "", fmt.Errorf("refusing to create order for an empty snapshot")
	}

	var result orderResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(orderRequest{Cart: orderCart{Items: snap.Lines, Shipping: c.Shipping}}).
		SetResult(&result).
		SetError(&result).
		Post(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("order request failed: %w", err)
	}

	if resp.IsError() {
		if result.Error != "" {
			return "", fmt.Errorf("order endpoint rejected the cart: %s", result.Error)
		}
		return "", fmt.Errorf("order endpoint returned HTTP %d", resp.StatusCode())
	}

	if result.ApprovalURL == "" {
		return "", fmt.Errorf("order endpoint returned no approval URL")
	}
	return result.ApprovalURL, nil
}
