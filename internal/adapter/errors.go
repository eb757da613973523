package adapter

import (
	"errors"
)

var (
	// ErrNotAuthenticated is returned when no delegated Drive credential is
	// available. Handlers map it to 401.
	ErrNotAuthenticated = errors.New("not authenticated with storage provider")
)
