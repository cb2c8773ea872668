package signwarp

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by calls that need the discovered API base
// before Discover has succeeded.
var ErrNotInitialized = errors.New("signwarp: api endpoints not discovered")

// ErrEmptyPlayer is returned when an invite or uninvite names no player.
var ErrEmptyPlayer = errors.New("signwarp: player name is empty")

// APIError is a non-2xx response. Message carries the server's message or
// error field verbatim when present.
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, e.Message)
}

// ServerMessage extracts the server-provided message from err, falling back
// to err's own text.
func ServerMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
