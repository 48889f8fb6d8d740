package xapi

import (
	"errors"
	"fmt"
)

// StatusError is a non-success HTTP status mapped to its failure reason.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Reason, e.Code)
}

// statusReasons is the fixed table of known non-success status meanings.
// Codes outside this table still fail, carrying only the raw code.
var statusReasons = map[int]string{
	400: "bad request",
	401: "unauthorized",
	403: "forbidden",
	404: "not found",
	408: "request timeout",
	429: "too many requests",
	500: "internal server error",
	502: "bad gateway",
	503: "service unavailable",
}

// checkStatus passes HTTP 200 through untouched and turns every other
// status into a *StatusError. A non-success code never slips through.
func checkStatus(resp *Response) error {
	if resp.Status == 200 {
		return nil
	}
	reason, ok := statusReasons[resp.Status]
	if !ok {
		reason = "unexpected status"
	}
	return &StatusError{Code: resp.Status, Reason: reason}
}

// AsStatusError unwraps err into a *StatusError if one is in its chain.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
