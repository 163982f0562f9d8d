package search

import "errors"

// ErrNoSessionFactory indicates that no session factory was provided.
var ErrNoSessionFactory = errors.New("search: session factory is required")
