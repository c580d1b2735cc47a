package youtube

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/api/googleapi"
)

// The recommendation service degrades identically on every failure, but the
// cause is still classified so logs, metrics and tests can tell a missing
// key apart from an upstream outage.
var (
	// ErrCredentialMissing means no YOUTUBE_API_KEY is configured.
	ErrCredentialMissing = errors.New("youtube: API key not configured")

	// ErrTransport covers network failures, timeouts and non-200 responses.
	ErrTransport = errors.New("youtube: transport error")

	// ErrRateLimited means the API quota or our outbound limiter refused the call.
	ErrRateLimited = errors.New("youtube: rate limited")

	// ErrMalformedResponse means a 200 response could not be understood.
	ErrMalformedResponse = errors.New("youtube: malformed response")
)

// quotaReasons are the googleapi error reasons YouTube uses for quota exhaustion.
var quotaReasons = map[string]bool{
	"quotaExceeded":         true,
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"dailyLimitExceeded":    true,
}

// classify maps any error from the API client onto the closed taxonomy.
// Errors already in the taxonomy pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCredentialMissing) || errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrRateLimited) || errors.Is(err, ErrMalformedResponse) {
		return err
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		if gerr.Code == http.StatusForbidden {
			for _, item := range gerr.Errors {
				if quotaReasons[item.Reason] {
					return fmt.Errorf("%w: %v", ErrRateLimited, err)
				}
			}
		}
		return fmt.Errorf("%w: status %d: %v", ErrTransport, gerr.Code, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// Timeouts, cancellations and connection failures.
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

// Kind returns a short label for the taxonomy member err belongs to.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrCredentialMissing):
		return "credential_missing"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	default:
		return "transport_error"
	}
}
