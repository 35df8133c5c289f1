package timeline

import (
	"errors"
	"fmt"
)

// ErrMissingTrackID indicates a clip that names no track.
var ErrMissingTrackID = errors.New("clip missing track id")

// MissingTrackError names the clip that could not be placed on a track.
type MissingTrackError struct {
	ClipID string
}

func (e *MissingTrackError) Error() string {
	return fmt.Sprintf("clip %s: %v", e.ClipID, ErrMissingTrackID)
}

func (e *MissingTrackError) Unwrap() error {
	return ErrMissingTrackID
}
