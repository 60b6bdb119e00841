package shape

import "errors"

var (
	// ErrInvalidSpec indicates a structurally invalid shape specification.
	ErrInvalidSpec = errors.New("shape: invalid diagram spec")
	// ErrUnknownKind indicates a "kind" value with no matching Shape variant.
	ErrUnknownKind = errors.New("shape: unknown kind")
)
