package team

import "errors"

// ErrEmptyRoster is returned when there is nothing to aggregate.
var ErrEmptyRoster = errors.New("empty roster")
