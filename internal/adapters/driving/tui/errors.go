package tui

import "errors"

// ErrMissingSessionFactory is returned when the session factory is not provided.
var ErrMissingSessionFactory = errors.New("tui: session factory is required")

// ErrInvalidPorts is returned when no ports are provided.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
