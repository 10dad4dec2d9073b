package cmd

import "time"

// Config carries all runtime settings for the service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	SupplierAPIURL  string
	SupplierAPIKey  string
	ForwarderAPIURL string
	ForwarderAPIKey string
	CatalogAPIURL   string
	RedisAddr       string

	// MaxRetries is the retry budget for external calls before an order is
	// forced to FAILED.
	MaxRetries int

	// ExternalTimeout bounds every supplier, forwarder and catalog call.
	ExternalTimeout time.Duration

	// CatalogCacheTTL is how long product lookups stay cached.
	CatalogCacheTTL time.Duration

	// TransientErrorCodes route a failed external call to RETRYING,
	// FatalErrorCodes route it to FAILED. Codes in neither list go to
	// MANUAL_REVIEW.
	TransientErrorCodes []string
	FatalErrorCodes     []string
}
