package http

import "time"

// Error is the uniform error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest registers a platform sale for fulfillment.
type CreateOrderRequest struct {
	Platform         string `json:"platform"`
	PlatformOrderRef string `json:"platform_order_ref"`
	ProductID        string `json:"product_id"`
	Qty              int    `json:"qty"`
	Actor            string `json:"actor,omitempty"`
}

// CreateOrderResponse returns the id assigned to the new order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// AdvanceOrderRequest moves an order one step along the pipeline.
type AdvanceOrderRequest struct {
	Target string `json:"target"`
	Actor  string `json:"actor,omitempty"`
}

// SetBuyerInfoRequest attaches shipping and customs data to an order.
type SetBuyerInfoRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	CustomsID string `json:"customs_id,omitempty"`
	Actor     string `json:"actor,omitempty"`
}

// MarkReviewRequest parks an order for operator attention.
type MarkReviewRequest struct {
	Reason string `json:"reason"`
	Actor  string `json:"actor,omitempty"`
}

// ResolveReviewRequest closes a review item with a verdict.
type ResolveReviewRequest struct {
	Verdict string `json:"verdict"`
	Note    string `json:"note,omitempty"`
	Actor   string `json:"actor,omitempty"`
}

// RetryOrderRequest re-drives a retrying order.
type RetryOrderRequest struct {
	Actor string `json:"actor,omitempty"`
}

// Order is the read model returned by order listings.
type Order struct {
	ID               string    `json:"id"`
	Platform         string    `json:"platform"`
	PlatformOrderRef string    `json:"platform_order_ref"`
	ProductID        string    `json:"product_id"`
	Qty              int       `json:"qty"`
	UnitPriceAmount  int64     `json:"unit_price_amount"`
	UnitPriceCcy     string    `json:"unit_price_currency"`
	Status           string    `json:"status"`
	RetryCount       int       `json:"retry_count"`
	SupplierOrderID  *string   `json:"supplier_order_id,omitempty"`
	ForwarderJobID   *string   `json:"forwarder_job_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AuditEntry is one row of an order's audit trail.
type AuditEntry struct {
	Actor     string            `json:"actor"`
	Action    string            `json:"action"`
	Meta      map[string]string `json:"meta,omitempty"`
	Timestamp time.Time         `json:"ts"`
}
