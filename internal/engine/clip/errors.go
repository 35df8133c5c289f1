package clip

import "errors"

// Errors returned by clip validation and parsing.
var (
	// ErrMissingClipID indicates a clip with an empty id.
	ErrMissingClipID = errors.New("clip id is empty")

	// ErrNegativeDuration indicates a clip whose duration is below zero.
	ErrNegativeDuration = errors.New("negative duration")

	// ErrNegativeStart indicates a clip starting before the timeline origin.
	ErrNegativeStart = errors.New("negative start")

	// ErrUnknownClipKind indicates a kind name that is not part of the model.
	ErrUnknownClipKind = errors.New("unknown clip kind")

	// ErrNotTempGap indicates an id that does not follow the temp-gap pattern.
	ErrNotTempGap = errors.New("not a temp gap id")
)
