package edge

import (
	"errors"
	"fmt"
)

// Errors returned by edge resolution.
var (
	// ErrInvalidReference indicates an edge reference with no clip identity.
	ErrInvalidReference = errors.New("edge reference missing clip id")

	// ErrTrackUnresolved indicates no track id could be derived for an edge.
	ErrTrackUnresolved = errors.New("track id unresolved")

	// ErrMissingOriginalState indicates no pre-edit snapshot exists for the
	// referenced clip, so its boundary cannot be computed.
	ErrMissingOriginalState = errors.New("missing original clip state")

	// ErrUnhandledEdgeType indicates an edge type outside the model.
	ErrUnhandledEdgeType = errors.New("unhandled edge type")
)

// ResolveError wraps a resolution failure with the clip it concerns.
type ResolveError struct {
	Op     string
	ClipID string
	Err    error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s clip %s: %v", e.Op, e.ClipID, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// UnhandledTypeError reports an edge type the resolver cannot interpret,
// carrying the raw type, its normalized bracket, and the clip id so the
// failure is diagnosable from the error alone.
type UnhandledTypeError struct {
	ClipID  string
	Raw     string
	Bracket Bracket
}

func (e *UnhandledTypeError) Error() string {
	return fmt.Sprintf("unhandled edge type %q (bracket %s) on clip %s", e.Raw, e.Bracket, e.ClipID)
}

func (e *UnhandledTypeError) Unwrap() error {
	return ErrUnhandledEdgeType
}

// IsMissingState reports whether err stems from an absent original snapshot.
func IsMissingState(err error) bool {
	return errors.Is(err, ErrMissingOriginalState)
}
