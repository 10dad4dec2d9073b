// Package supplier implements the supplier gateway over the supplier's
// HTTP purchasing API. Transport and provider failures are translated into
// coded external-call errors so the application layer can route them
// without knowing the provider's API.
package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"dropship/internal/core/domain/model/order"
	"dropship/internal/core/domain/services"
	"dropship/internal/pkg/errs"
)

// maxResponseSize caps how much of a supplier response is read (1MB).
const maxResponseSize = 1 * 1024 * 1024

// Config holds the supplier API connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Validate checks the config is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errs.NewValueIsRequiredError("BaseURL")
	}
	if c.Timeout <= 0 {
		return errs.NewValueIsRequiredError("Timeout")
	}
	return nil
}

// Client calls the supplier's purchasing API.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a supplier API client with the given configuration.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// placeOrderRequest is the supplier purchase payload.
type placeOrderRequest struct {
	Platform         string `json:"platform"`
	PlatformOrderRef string `json:"platform_order_ref"`
	ProductID        string `json:"product_id"`
	Qty              int    `json:"qty"`
	UnitPriceAmount  int64  `json:"unit_price_amount"`
	UnitPriceCcy     string `json:"unit_price_currency"`
}

// placeOrderResponse is the supplier's success payload.
type placeOrderResponse struct {
	SupplierOrderID string `json:"supplier_order_id"`
}

// apiError is the supplier's error payload.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PlaceOrder submits a purchase order to the supplier and returns the
// supplier-side order id.
func (c *Client) PlaceOrder(ctx context.Context, aggregate *order.Order) (string, error) {
	payload := placeOrderRequest{
		Platform:         aggregate.Platform(),
		PlatformOrderRef: aggregate.PlatformOrderRef(),
		ProductID:        aggregate.ProductID(),
		Qty:              aggregate.Qty(),
		UnitPriceAmount:  aggregate.UnitPrice().Amount(),
		UnitPriceCcy:     aggregate.UnitPrice().Currency(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal supplier order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build supplier order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.NewExternalCallError(transportCode(err), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", services.NewExternalCallError(services.CodeUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", statusError(resp.StatusCode, respBody)
	}

	var result placeOrderResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", services.NewExternalCallError(services.CodeServerError,
			fmt.Errorf("decode supplier response: %w", err))
	}
	if result.SupplierOrderID == "" {
		return "", services.NewExternalCallError(services.CodeServerError,
			errors.New("supplier response missing supplier_order_id"))
	}
	return result.SupplierOrderID, nil
}

// transportCode maps a transport-level failure to an adapter error code.
func transportCode(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return services.CodeTimeout
	}
	return services.CodeUnreachable
}

// statusError maps a non-2xx supplier response to a coded error. Provider
// rejection codes from the body pass through untouched so the failure router
// can apply the configured code table.
func statusError(status int, body []byte) error {
	switch {
	case status == http.StatusTooManyRequests:
		return services.NewExternalCallError(services.CodeRateLimited,
			fmt.Errorf("supplier returned status %d", status))
	case status >= http.StatusInternalServerError:
		return services.NewExternalCallError(services.CodeServerError,
			fmt.Errorf("supplier returned status %d", status))
	}

	var rejection apiError
	if err := json.Unmarshal(body, &rejection); err == nil && rejection.Code != "" {
		return services.NewExternalCallError(rejection.Code,
			fmt.Errorf("supplier rejected order: %s", rejection.Message))
	}
	return services.NewExternalCallError(services.CodeServerError,
		fmt.Errorf("supplier returned status %d", status))
}
