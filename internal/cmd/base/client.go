package base

import (
	"errors"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/quarrylabs/dss-go/pkg/dss"
)

// ClientFlags holds the connection flags every command that talks to a DSS
// instance registers.
type ClientFlags struct {
	URL           string
	APIKey        string
	TLSSkipVerify bool
	Timeout       time.Duration
}

// Register declares the connection flags on the given flag set.
func (cf *ClientFlags) Register(f *FlagSet) {
	f.StringVar(
		&cf.URL, "url", "",
		"[DSS_URL] Base URL of the DSS instance",
	)
	f.StringVar(
		&cf.APIKey, "api-key", "",
		"[DSS_API_KEY] API key with admin rights",
	)
	f.BoolVar(
		&cf.TLSSkipVerify, "tls-skip-verify", false,
		"Skip TLS certificate verification (development only)",
	)
	f.DurationVar(
		&cf.Timeout, "timeout", 30*time.Second,
		"Timeout for API requests",
	)
}

// NewClient builds a DSS client from the flags, falling back to the
// environment for URL and API key when the flags are unset.
func (cf *ClientFlags) NewClient(log hclog.Logger) (*dss.Client, error) {
	url := cf.URL
	if val, ok := os.LookupEnv("DSS_URL"); ok && url == "" {
		url = val
	}
	apiKey := cf.APIKey
	if val, ok := os.LookupEnv("DSS_API_KEY"); ok && apiKey == "" {
		apiKey = val
	}

	if url == "" {
		return nil, errors.New("instance URL is required (--url or DSS_URL)")
	}
	if apiKey == "" {
		return nil, errors.New("API key is required (--api-key or DSS_API_KEY)")
	}

	tlsVerify := !cf.TLSSkipVerify
	return dss.New(&dss.Config{
		BaseURL:   url,
		APIKey:    apiKey,
		TLSVerify: &tlsVerify,
		Timeout:   cf.Timeout,
		Logger:    log,
	})
}
