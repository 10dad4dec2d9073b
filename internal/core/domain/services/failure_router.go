package services

import (
	"errors"
	"fmt"
)

// Error codes produced by the HTTP adapters themselves, as opposed to codes
// extracted from a provider's response body.
const (
	CodeTimeout     = "TIMEOUT"
	CodeUnreachable = "UNREACHABLE"
	CodeRateLimited = "RATE_LIMITED"
	CodeServerError = "SERVER_ERROR"
)

// ErrExternalCall is the unwrap target for ExternalCallError.
var ErrExternalCall = errors.New("external call failed")

// ExternalCallError is returned by the supplier, forwarder and catalog
// adapters when a call fails. Code carries the provider's error vocabulary
// (or one of the adapter-level Code* constants) so the FailureRouter can
// classify the failure without the state machine knowing any provider's API.
type ExternalCallError struct {
	Code  string
	Cause error
}

// NewExternalCallError creates a coded external-call error.
func NewExternalCallError(code string, cause error) *ExternalCallError {
	return &ExternalCallError{Code: code, Cause: cause}
}

func (e *ExternalCallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("external call failed: %s (cause: %s)", e.Code, e.Cause)
	}
	return fmt.Sprintf("external call failed: %s", e.Code)
}

func (e *ExternalCallError) Unwrap() error {
	return ErrExternalCall
}

// Route is the lifecycle destination chosen for a failed external call.
type Route int

const (
	// RouteUnknown is the zero value and never returned by the router.
	RouteUnknown Route = iota

	// RouteRetry sends the order to RETRYING: the failure is transient
	// (timeout, rate limit) and a re-attempt may succeed.
	RouteRetry

	// RouteReview sends the order to MANUAL_REVIEW: the provider rejected
	// the order for a business reason (stock, pricing, customs) and a
	// human must resolve it.
	RouteReview

	// RouteFail sends the order straight to FAILED: the failure is known
	// to be unrecoverable.
	RouteFail
)

// String returns a short name for the route, for logs and audit meta.
func (r Route) String() string {
	switch r {
	case RouteRetry:
		return "retry"
	case RouteReview:
		return "manual_review"
	case RouteFail:
		return "fail"
	default:
		return "unknown"
	}
}

// FailureRouter maps external-call error codes to lifecycle routes.
//
// The code table is supplied by configuration rather than hard-coded, so the
// same pipeline can face different supplier or forwarder APIs. Codes absent
// from the table route to manual review: an unrecognized rejection is safer
// in front of an operator than in a blind retry loop.
type FailureRouter struct {
	routes map[string]Route
}

// NewFailureRouter builds a router from the configured code lists.
// Transient codes route to RETRYING, fatal codes to FAILED, everything else
// to MANUAL_REVIEW.
func NewFailureRouter(transientCodes []string, fatalCodes []string) FailureRouter {
	routes := make(map[string]Route, len(transientCodes)+len(fatalCodes))
	for _, code := range transientCodes {
		routes[code] = RouteRetry
	}
	for _, code := range fatalCodes {
		routes[code] = RouteFail
	}
	return FailureRouter{routes: routes}
}

// NewDefaultFailureRouter builds a router covering the adapter-level codes:
// transport-class failures retry, everything else goes to review.
func NewDefaultFailureRouter() FailureRouter {
	return NewFailureRouter(
		[]string{CodeTimeout, CodeUnreachable, CodeRateLimited, CodeServerError},
		nil,
	)
}

// Classify maps a failed external call to its lifecycle route.
// Errors that are not ExternalCallError also route to manual review.
func (r FailureRouter) Classify(err error) Route {
	var callErr *ExternalCallError
	if !errors.As(err, &callErr) {
		return RouteReview
	}
	if route, ok := r.routes[callErr.Code]; ok {
		return route
	}
	return RouteReview
}
