// Package handlers defines the HTTP-layer error codes used across all API
// endpoints.
//
// These constants form the stable, machine-readable error taxonomy that
// supplements the human-readable messages in ErrorResponse. Generic codes
// mirror common HTTP status semantics; domain codes mark business failures
// that a status alone cannot convey (the assistant branches on them to decide
// what to tell the customer).
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeLeadFailed       = "lead_failed"
	ErrCodeScheduleFailed   = "schedule_failed"
	ErrCodeCatalogFailed    = "catalog_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
