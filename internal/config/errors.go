package config

import (
	"errors"
)

// Sentinel error kinds for this package. Load wraps them so callers can
// match with errors.Is.
var (
	// ErrInvalidConfig marks a value that loaded but failed Validate.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a file, env or decode failure.
	ErrLoadConfig = errors.New("load config failed")
)
