package repository

import "errors"

// Sentinel kinds for snapshot lookups.
var (
	ErrNotFound   = errors.New("player not found")
	ErrNoSnapshot = errors.New("no snapshot published")
)
