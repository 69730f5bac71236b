package sentsplit

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidMaxLength indicates a maximum segment length below MinLength.
	ErrInvalidMaxLength = errors.New("sentsplit: invalid maximum segment length")
)
