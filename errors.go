package pyramid

import "errors"

// Errors returned by the blending core. Matches deepteams-webp/webp.go's
// stdlib errors.New sentinel convention; the core never logs (spec.md §7
// — diagnostics are the caller's responsibility) so these are the only
// way failures surface.
var (
	// ErrSizeMismatch is returned by Feed when the image and mask
	// dimensions disagree (spec.md §7's invariant-violation error kind).
	ErrSizeMismatch = errors.New("pyramid: image and mask dimensions do not match")

	// ErrAlreadyBlended is returned by Feed once Blend has been called.
	ErrAlreadyBlended = errors.New("pyramid: feed called after blend")

	// ErrNotBlended is returned by Result before Blend has been called.
	ErrNotBlended = errors.New("pyramid: result requested before blend")

	// ErrClosed is returned by Feed and Blend when called after Close.
	ErrClosed = errors.New("pyramid: blender is closed")

	// ErrInvalidBands is returned by New when numBands is negative.
	ErrInvalidBands = errors.New("pyramid: numBands must be >= 0")
)
