package fetch

import (
	"context"
	"errors"
	"net/http"

	perr "engagegov/internal/platform/errors"
)

// StatusError carries a final non 2xx upstream status
type StatusError struct {
	Status int
	URL    string
	Body   string
}

// Error implements error
func (e *StatusError) Error() string {
	return "upstream status " + http.StatusText(e.Status) + " from " + e.URL
}

// HTTPStatus returns the upstream status
func (e *StatusError) HTTPStatus() int { return e.Status }

// classify maps a final attempt into a coded error
func classify(target string, res Response, err error) error {
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return perr.Wrapf(err, perr.ErrorCodeTimeout, "upstream attempt timed out %s", target)
		}
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "upstream transport failure %s", target)
	}

	se := &StatusError{Status: res.Status, URL: target, Body: string(res.Body)}
	switch {
	case res.Status == http.StatusNotFound || res.Status == http.StatusGone:
		return perr.Wrap(se, perr.ErrorCodeNotFound, "upstream not found")
	case res.Status == http.StatusTooManyRequests:
		return perr.Wrap(se, perr.ErrorCodeTooManyRequests, "upstream rate limited")
	case res.Status >= 500:
		return perr.Wrap(se, perr.ErrorCodeUnavailable, "upstream unavailable")
	default:
		return perr.Wrap(se, perr.ErrorCodeUpstream, "upstream rejected request")
	}
}

// StatusOf returns the upstream status carried by err, or 0
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
