package riot

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

type Kind int

const (
	KindRateLimited Kind = iota + 1
	KindServerError
	KindNetworkError
	KindClientError
	KindAuthError
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindServerError:
		return "server_error"
	case KindNetworkError:
		return "network_error"
	case KindClientError:
		return "client_error"
	case KindAuthError:
		return "auth_error"
	default:
		return "unknown"
	}
}

// UpstreamError is returned for every failed call to the Riot API. Status is
// zero for network level failures.
type UpstreamError struct {
	Kind       Kind
	Status     int
	Path       string
	RetryAfter time.Duration
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("riot %s: %s: http %d", e.Kind, e.Path, e.Status)
	}
	return fmt.Sprintf("riot %s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the call may succeed if repeated.
func (e *UpstreamError) Retryable() bool {
	switch e.Kind {
	case KindRateLimited, KindNetworkError:
		return true
	case KindServerError:
		return isTransientStatus(e.Status)
	default:
		return false
	}
}

// IsKind reports whether err carries an UpstreamError of the given kind.
func IsKind(err error, kind Kind) bool {
	var uerr *UpstreamError
	return errors.As(err, &uerr) && uerr.Kind == kind
}

func isTransientStatus(status int) bool {
	switch status {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func classifyStatus(status int) Kind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuthError
	case status >= 500:
		return KindServerError
	default:
		return KindClientError
	}
}
