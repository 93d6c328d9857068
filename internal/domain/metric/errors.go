package metric

import "errors"

// Sentinel kinds for metric errors.
var (
	ErrInvalidPercentage = errors.New("invalid percentage")
	ErrInvalidDefinition = errors.New("invalid metric definition")
	ErrUnknownMetric     = errors.New("unknown metric")
)
