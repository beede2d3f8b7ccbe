package dss

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
)

// ErrNoData is returned when an endpoint that must produce a body
// returned nothing.
var ErrNoData = errors.New("dss: no data in response")

// APIError is returned when the DSS instance answers with a non-2xx status.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Message is the server's error message, when the body decoded as a
	// JSON error envelope. Empty otherwise.
	Message string

	// Body is the raw response body, kept for diagnostics when the
	// envelope could not be decoded.
	Body string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("dss: API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("dss: API returned status %d: %s", e.StatusCode, e.Body)
}

// newAPIError builds an APIError from a non-2xx response body, extracting
// the server's message when the body is a JSON error envelope.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			apiErr.Message = envelope.Message
		} else if envelope.Error != "" {
			apiErr.Message = envelope.Error
		}
	}

	return apiErr
}

// messageEnvelope is the shape of the "messages" block that mutating
// operations (code envs, clusters) report their outcome in.
type messageEnvelope struct {
	Error    bool `mapstructure:"error"`
	Messages []struct {
		Severity string `mapstructure:"severity"`
		Message  string `mapstructure:"message"`
	} `mapstructure:"messages"`
}

// CheckOperationResult inspects the response of a mutating operation for a
// "messages" envelope with the error flag set, and translates it into an
// error carrying every reported message. A nil response is ErrNoData: the
// operation's outcome is unknown and must not be treated as success.
func CheckOperationResult(op string, resp map[string]any) error {
	if resp == nil {
		return fmt.Errorf("%s: %w", op, ErrNoData)
	}

	var envelope struct {
		Messages messageEnvelope `mapstructure:"messages"`
	}
	if err := mapstructure.Decode(resp, &envelope); err != nil {
		return fmt.Errorf("%s: decoding operation result: %w", op, err)
	}
	if !envelope.Messages.Error {
		return nil
	}

	var result *multierror.Error
	result = multierror.Append(result, fmt.Errorf("%s failed", op))
	for _, m := range envelope.Messages.Messages {
		if m.Message == "" {
			continue
		}
		if m.Severity != "" {
			result = multierror.Append(result, fmt.Errorf("%s: %s", m.Severity, m.Message))
		} else {
			result = multierror.Append(result, errors.New(m.Message))
		}
	}

	return result.ErrorOrNil()
}
