package page

import "gitlab.com/tozd/go/errors"

var (
	// ErrMissingIdentifier is returned by Fetch when the builder was given
	// neither a page title nor a page ID.
	ErrMissingIdentifier = errors.Base("page title or page ID required")
	// ErrMissingField is returned when the upstream response is missing a
	// field fetch shaping treats as required (title, pageid, or the HTML body).
	ErrMissingField = errors.Base("required field missing from response")
	// ErrResponseError wraps an error object returned by the MediaWiki API
	// itself (as opposed to a transport failure).
	ErrResponseError = errors.Base("MediaWiki API returned an error")
)
