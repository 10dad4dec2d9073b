// Package catalog implements the catalog client over the catalog service's
// HTTP API, with an optional Redis read-through cache in front of it.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/ports"
	"dropship/internal/pkg/cache"
	"dropship/internal/pkg/errs"
)

// maxResponseSize caps how much of a catalog response is read (1MB).
const maxResponseSize = 1 * 1024 * 1024

// cacheOperation namespaces product keys in the shared cache.
const cacheOperation = "product"

// Config holds the catalog API connection settings.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
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

// Client resolves products from the catalog service. When a cache is set,
// lookups go through it first; cache failures degrade to a direct call.
type Client struct {
	config     Config
	httpClient *http.Client
	cache      cache.Cache
	logger     *slog.Logger
}

// NewClient creates a catalog client. cache may be nil to disable caching.
func NewClient(config Config, productCache cache.Cache, logger *slog.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		cache:  productCache,
		logger: logger,
	}, nil
}

// productDTO is the catalog service's product payload, also used as the
// cache representation.
type productDTO struct {
	ID              string `json:"id"`
	SKU             string `json:"sku"`
	Title           string `json:"title"`
	UnitPriceAmount int64  `json:"unit_price_amount"`
	UnitPriceCcy    string `json:"unit_price_currency"`
	Available       bool   `json:"available"`
}

func (dto productDTO) toPort() (*ports.Product, error) {
	price, err := kernel.NewMoney(dto.UnitPriceAmount, dto.UnitPriceCcy)
	if err != nil {
		return nil, fmt.Errorf("catalog product %s has invalid price: %w", dto.ID, err)
	}
	return &ports.Product{
		ID:        dto.ID,
		SKU:       dto.SKU,
		Title:     dto.Title,
		UnitPrice: price,
		Available: dto.Available,
	}, nil
}

// GetProduct fetches a product by id, preferring the cache.
func (c *Client) GetProduct(ctx context.Context, productID string) (*ports.Product, error) {
	if productID == "" {
		return nil, errs.NewValueIsRequiredError("productID")
	}

	if product, ok := c.fromCache(ctx, productID); ok {
		return product, nil
	}

	dto, err := c.fetch(ctx, productID)
	if err != nil {
		return nil, err
	}

	c.toCache(ctx, productID, dto)
	return dto.toPort()
}

func (c *Client) fetch(ctx context.Context, productID string) (productDTO, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+"/v1/products/"+productID, nil)
	if err != nil {
		return productDTO{}, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return productDTO{}, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return productDTO{}, fmt.Errorf("read catalog response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return productDTO{}, errs.NewObjectNotFoundError("productID", productID)
	case resp.StatusCode != http.StatusOK:
		return productDTO{}, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var dto productDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return productDTO{}, fmt.Errorf("decode catalog response: %w", err)
	}
	return dto, nil
}

func (c *Client) fromCache(ctx context.Context, productID string) (*ports.Product, bool) {
	if c.cache == nil {
		return nil, false
	}

	key := c.cache.GenerateKey(cacheOperation, productID)
	cached, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("catalog cache read failed", "product_id", productID, "error", err)
		return nil, false
	}
	if cached == "" {
		return nil, false
	}

	var dto productDTO
	if err := json.Unmarshal([]byte(cached), &dto); err != nil {
		c.logger.Warn("catalog cache entry corrupt", "product_id", productID, "error", err)
		return nil, false
	}
	product, err := dto.toPort()
	if err != nil {
		return nil, false
	}
	return product, true
}

func (c *Client) toCache(ctx context.Context, productID string, dto productDTO) {
	if c.cache == nil || c.config.CacheTTL <= 0 {
		return
	}

	encoded, err := json.Marshal(dto)
	if err != nil {
		return
	}
	key := c.cache.GenerateKey(cacheOperation, productID)
	if err := c.cache.Set(ctx, key, string(encoded), c.config.CacheTTL); err != nil {
		c.logger.Warn("catalog cache write failed", "product_id", productID, "error", err)
	}
}
