package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNoCatalogData is returned when the selected path has no catalog entry.
var ErrNoCatalogData = errors.New("no catalog data for selection")

// ErrOutOfDomain is returned when a derived calculation would leave its valid
// mathematical domain (e.g. ball-nose depth of cut exceeding the diameter).
var ErrOutOfDomain = errors.New("value outside valid domain")
