package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto HTTP
// statuses; everything else surfaces as an internal error.
var (
	// ErrNotFound covers both genuinely missing records and records the caller
	// is not allowed to know exist.
	ErrNotFound = errors.New("resource not found")

	// ErrPermissionDenied means the caller is authenticated but the access
	// predicate rejected the operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrPreconditionFailed means the record exists but is no longer in a
	// state that allows the operation (e.g. an illegal status transition).
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrRateLimited means the caller exhausted the fixed window for this
	// endpoint.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrReplayDetected means a signed request presented an already-consumed
	// nonce.
	ErrReplayDetected = errors.New("request replay detected")

	// ErrInvalidSignature means a signed request failed signature or timestamp
	// verification.
	ErrInvalidSignature = errors.New("invalid request signature")

	// ErrValidation covers malformed or semantically invalid input.
	ErrValidation = errors.New("validation failed")

	// ErrTenantExists is returned when a slug is already taken by an active
	// tenant.
	ErrTenantExists = errors.New("tenant already exists")
)
