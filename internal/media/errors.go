package media

import "errors"

// Failure classes surfaced to clients. Handlers match them with errors.Is;
// anything that wraps none of these is an unexpected failure.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUpstreamUnavailable = errors.New("provider unavailable")
	ErrNotFound            = errors.New("not found")
	ErrStreamingFailure    = errors.New("streaming failed")
)
