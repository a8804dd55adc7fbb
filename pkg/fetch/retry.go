package fetch

import (
	"errors"
	"net/http"
	"strings"
)

// retryableStatuses is the fixed set of response codes worth another attempt.
var retryableStatuses = map[int]bool{
	http.StatusRequestTimeout:      true, // 408
	http.StatusTooEarly:            true, // 425
	http.StatusTooManyRequests:     true, // 429
	http.StatusInternalServerError: true, // 500
	http.StatusBadGateway:          true, // 502
	http.StatusServiceUnavailable:  true, // 503
	http.StatusGatewayTimeout:      true, // 504
}

// transientFailures are substrings of transport errors worth another attempt.
var transientFailures = []string{
	"connection reset",
	"timeout",
	"network",
}

// retryableError marks a failure the retry loop may attempt again. Callers
// outside this package never see it; the loop unwraps before returning.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

func unwrapRetryable(err error) error {
	var re *retryableError
	if errors.As(err, &re) {
		return re.err
	}
	return err
}

func isTransientTransportError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, substr := range transientFailures {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
