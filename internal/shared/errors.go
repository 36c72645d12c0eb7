package shared

import "fmt"

var (
	// Input-absence errors. These are the only class that terminates a run:
	// an empty catalog, an empty suggestion list, or zero matches means there
	// is nothing to mutate, and no partial report is produced.
	ErrNothingToDo   = fmt.Errorf("nothing to do")
	ErrEmptyPlaylist = fmt.Errorf("%w: source playlist has no tracks", ErrNothingToDo)
	ErrNoSuggestions = fmt.Errorf("%w: model returned no suggestions", ErrNothingToDo)
	ErrNoMatches     = fmt.Errorf("%w: no suggestions matched the catalog", ErrNothingToDo)

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
