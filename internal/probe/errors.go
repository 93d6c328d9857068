package probe

import "errors"

// Error constants.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrInconsistent     = errors.New("inconsistent results")
)
