// Package clip defines the timeline objects the edit engine operates on:
// clips, tracks, immutable pre-edit snapshots, and gap intervals.
package clip

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/keystorm/internal/engine/timecode"
)

// ClipKind categorizes the media a clip carries.
type ClipKind uint8

const (
	// KindUnknown is the zero value; it never appears in committed state and
	// signals an undeterminable kind during undo reconstruction.
	KindUnknown ClipKind = iota

	// KindVideo is a video clip.
	KindVideo

	// KindAudio is an audio clip.
	KindAudio

	// KindImage is a still image clip.
	KindImage

	// KindTitle is a generated title or graphic clip.
	KindTitle

	// KindGap is a synthetic clip standing in for empty space between clips
	// during preview sessions. Gap clips are never persisted.
	KindGap
)

// String returns the wire name of the kind.
func (k ClipKind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindImage:
		return "image"
	case KindTitle:
		return "title"
	case KindGap:
		return "gap"
	default:
		return "unknown"
	}
}

// ParseClipKind converts a wire name to a ClipKind.
func ParseClipKind(s string) (ClipKind, error) {
	switch s {
	case "video":
		return KindVideo, nil
	case "audio":
		return KindAudio, nil
	case "image":
		return KindImage, nil
	case "title":
		return KindTitle, nil
	case "gap":
		return KindGap, nil
	default:
		return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownClipKind, s)
	}
}

// MarshalJSON encodes the kind as its wire name.
func (k ClipKind) MarshalJSON() ([]byte, error) {
	if k == KindUnknown {
		return []byte(`""`), nil
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a wire name. An empty string decodes to KindUnknown
// so reconstruction can detect and report the missing kind itself.
func (k *ClipKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding clip kind: %w", err)
	}
	if s == "" {
		*k = KindUnknown
		return nil
	}
	parsed, err := ParseClipKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// TrackKind categorizes a track.
type TrackKind uint8

const (
	// TrackVideo holds video, image, and title clips.
	TrackVideo TrackKind = iota

	// TrackAudio holds audio clips.
	TrackAudio
)

// String returns the wire name of the track kind.
func (k TrackKind) String() string {
	switch k {
	case TrackVideo:
		return "video"
	case TrackAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// Track is a horizontal lane of non-overlapping clips within a sequence.
type Track struct {
	ID         string    `json:"id"`
	SequenceID string    `json:"sequence_id"`
	Kind       TrackKind `json:"-"`
}

// Clip is a placed piece of media on a track. Its timeline interval is
// half-open: [Start, Start+Duration). Duration is never negative in
// committed state.
type Clip struct {
	ID         string         `json:"id"`
	TrackID    string         `json:"track_id"`
	SequenceID string         `json:"sequence_id,omitempty"`
	Name       string         `json:"name,omitempty"`
	Kind       ClipKind       `json:"kind"`
	Start      timecode.Value `json:"start"`
	Duration   timecode.Value `json:"duration"`
	SourceIn   timecode.Value `json:"source_in"`
	SourceOut  timecode.Value `json:"source_out"`
	Enabled    bool           `json:"enabled"`
}

// End returns the exclusive end of the clip's timeline interval.
func (c Clip) End() timecode.Value {
	return c.Start.AddFrames(c.Duration.Frames)
}

// IsGap reports whether the clip is synthetic empty space: either a KindGap
// clip or one carrying a temp-gap id from a preview session.
func (c Clip) IsGap() bool {
	return c.Kind == KindGap || IsTempGapID(c.ID)
}

// Validate checks the invariants committed clips must hold.
func (c Clip) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("clip: %w", ErrMissingClipID)
	}
	if c.Duration.IsNegative() {
		return fmt.Errorf("clip %s: duration %s: %w", c.ID, c.Duration, ErrNegativeDuration)
	}
	if c.Start.IsNegative() {
		return fmt.Errorf("clip %s: start %s: %w", c.ID, c.Start, ErrNegativeStart)
	}
	if !c.Start.Rate.Equal(c.Duration.Rate) {
		return fmt.Errorf("clip %s: start rate %s vs duration rate %s: %w",
			c.ID, c.Start.Rate, c.Duration.Rate, timecode.ErrRateMismatch)
	}
	return nil
}
