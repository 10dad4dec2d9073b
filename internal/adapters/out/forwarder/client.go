// Package forwarder implements the forwarder gateway over the freight
// forwarder's HTTP API. Transport and provider failures are translated into
// coded external-call errors so the application layer can route them
// without knowing the provider's API.
package forwarder

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

	"dropship/internal/core/domain/model/buyer"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/core/domain/services"
	"dropship/internal/pkg/errs"
)

// maxResponseSize caps how much of a forwarder response is read (1MB).
const maxResponseSize = 1 * 1024 * 1024

// Config holds the forwarder API connection settings.
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

// Client calls the freight forwarder's shipment API.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a forwarder API client with the given configuration.
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

// recipient is the buyer part of the shipment payload.
type recipient struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	CustomsID string `json:"customs_id,omitempty"`
}

// submitShipmentRequest is the forwarder handoff payload.
type submitShipmentRequest struct {
	SupplierOrderID string    `json:"supplier_order_id"`
	ProductID       string    `json:"product_id"`
	Qty             int       `json:"qty"`
	Recipient       recipient `json:"recipient"`
}

// submitShipmentResponse is the forwarder's success payload.
type submitShipmentResponse struct {
	JobID string `json:"job_id"`
}

// apiError is the forwarder's error payload.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SubmitShipment registers the shipment with the forwarder and returns the
// forwarder-side job id. The supplier order id ties the handoff to the
// physical parcel the forwarder will receive.
func (c *Client) SubmitShipment(ctx context.Context, aggregate *order.Order, info *buyer.BuyerInfo) (string, error) {
	supplierOrderID := aggregate.SupplierOrderID()
	if supplierOrderID == nil {
		return "", errs.NewValueIsRequiredError("supplierOrderID")
	}

	payload := submitShipmentRequest{
		SupplierOrderID: *supplierOrderID,
		ProductID:       aggregate.ProductID(),
		Qty:             aggregate.Qty(),
		Recipient: recipient{
			Name:      info.Name(),
			Phone:     info.Phone(),
			Address1:  info.Address1(),
			Address2:  info.Address2(),
			Zip:       info.Zip(),
			Country:   info.Country(),
			CustomsID: info.CustomsID(),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal shipment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/v1/shipments", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build shipment request: %w", err)
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

	var result submitShipmentResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", services.NewExternalCallError(services.CodeServerError,
			fmt.Errorf("decode forwarder response: %w", err))
	}
	if result.JobID == "" {
		return "", services.NewExternalCallError(services.CodeServerError,
			errors.New("forwarder response missing job_id"))
	}
	return result.JobID, nil
}

// transportCode maps a transport-level failure to an adapter error code.
func transportCode(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return services.CodeTimeout
	}
	return services.CodeUnreachable
}

// statusError maps a non-2xx forwarder response to a coded error. Provider
// rejection codes from the body pass through untouched so the failure router
// can apply the configured code table.
func statusError(status int, body []byte) error {
	switch {
	case status == http.StatusTooManyRequests:
		return services.NewExternalCallError(services.CodeRateLimited,
			fmt.Errorf("forwarder returned status %d", status))
	case status >= http.StatusInternalServerError:
		return services.NewExternalCallError(services.CodeServerError,
			fmt.Errorf("forwarder returned status %d", status))
	}

	var rejection apiError
	if err := json.Unmarshal(body, &rejection); err == nil && rejection.Code != "" {
		return services.NewExternalCallError(rejection.Code,
			fmt.Errorf("forwarder rejected shipment: %s", rejection.Message))
	}
	return services.NewExternalCallError(services.CodeServerError,
		fmt.Errorf("forwarder returned status %d", status))
}
