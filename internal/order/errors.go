package order

import "errors"

var (
	// ErrInvalid is returned by Service.Submit when validation fails.
	// No request is sent.
	ErrInvalid = errors.New("order: invalid submission")

	// ErrTransport means the form endpoint could not be reached.
	ErrTransport = errors.New("order: transport failure")

	// ErrRejected means the endpoint answered with a non-success status.
	ErrRejected = errors.New("order: submission rejected")

	ErrUnknownPhoneRule    = errors.New("order: unknown phone rule")
	ErrUnknownFallbackMode = errors.New("order: unknown fallback mode")
)
