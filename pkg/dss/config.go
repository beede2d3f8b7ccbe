package dss

import (
	"crypto/tls"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"
)

// Config contains configuration for a DSS API client.
type Config struct {
	// BaseURL is the base URL of the DSS instance
	// Example: "https://dss.example.com"
	BaseURL string `json:"baseUrl"`

	// APIKey is the API key used for authentication (Bearer token).
	// Admin operations require a key with admin rights.
	APIKey string `json:"-"` // Don't marshal the API key to JSON

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `json:"tlsVerify,omitempty"`

	// Timeout for API requests
	// Default: 30 seconds
	Timeout time.Duration `json:"timeout,omitempty"`

	// Logger for request/response debug logging (optional)
	Logger hclog.Logger `json:"-"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		TLSVerify: &tlsVerify,
		Timeout:   30 * time.Second,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.APIKey, validation.Required),
	)
}

// NewHTTPClient creates a configured HTTP client for this config
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	// Configure TLS verification
	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
