// Package edge identifies and resolves clip boundaries for trim planning.
//
// An edge is one side of a clip interval, or one side of the empty space
// next to it. Edges arriving from interaction layers reference clips by id,
// sometimes via preview copies with their own ids, sometimes via synthetic
// temp-gap clips. This package gives every such reference a resolved track,
// an exact boundary time, and a stable identity key that survives the
// preview/commit/undo cycle.
package edge

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/keystorm/internal/engine/clip"
)

// EdgeType names which boundary of a clip an edge refers to.
type EdgeType uint8

const (
	// EdgeIn is the left boundary of the clip's own interval.
	EdgeIn EdgeType = iota

	// EdgeOut is the right boundary of the clip's own interval.
	EdgeOut

	// EdgeGapBefore is the boundary between the clip and the empty space
	// before it.
	EdgeGapBefore

	// EdgeGapAfter is the boundary between the clip and the empty space
	// after it.
	EdgeGapAfter
)

// String returns the wire name of the edge type.
func (t EdgeType) String() string {
	switch t {
	case EdgeIn:
		return "in"
	case EdgeOut:
		return "out"
	case EdgeGapBefore:
		return "gap_before"
	case EdgeGapAfter:
		return "gap_after"
	default:
		return fmt.Sprintf("edge_type(%d)", uint8(t))
	}
}

// ParseEdgeType converts a wire name to an EdgeType.
func ParseEdgeType(s string) (EdgeType, error) {
	switch s {
	case "in":
		return EdgeIn, nil
	case "out":
		return EdgeOut, nil
	case "gap_before":
		return EdgeGapBefore, nil
	case "gap_after":
		return EdgeGapAfter, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnhandledEdgeType, s)
	}
}

// Bracket returns the normalized orientation of the edge type: every edge
// collapses to either a start-side "[" or an end-side "]".
func (t EdgeType) Bracket() Bracket {
	switch t {
	case EdgeOut, EdgeGapAfter:
		return BracketOut
	default:
		return BracketIn
	}
}

// IsGap reports whether the edge refers to empty space rather than the
// clip's own interval.
func (t EdgeType) IsGap() bool {
	return t == EdgeGapBefore || t == EdgeGapAfter
}

// MarshalJSON encodes the edge type as its wire name.
func (t EdgeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a wire name.
func (t *EdgeType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding edge type: %w", err)
	}
	parsed, err := ParseEdgeType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Bracket is the normalized two-way orientation of an edge.
type Bracket uint8

const (
	// BracketIn is the start-side orientation, rendered "[".
	BracketIn Bracket = iota

	// BracketOut is the end-side orientation, rendered "]".
	BracketOut
)

// String returns the bracket glyph.
func (b Bracket) String() string {
	if b == BracketOut {
		return "]"
	}
	return "["
}

// TrimType selects how a moved boundary affects surrounding clips.
type TrimType uint8

const (
	// TrimRipple moves downstream clips by the applied delta so the edit
	// neither opens nor closes unintended space.
	TrimRipple TrimType = iota

	// TrimRoll moves the shared boundary between two adjacent clips,
	// leaving everything else in place.
	TrimRoll
)

// String returns the wire name of the trim type.
func (t TrimType) String() string {
	if t == TrimRoll {
		return "roll"
	}
	return "ripple"
}

// ParseTrimType converts a wire name to a TrimType. An empty string selects
// ripple, the default mode.
func ParseTrimType(s string) (TrimType, error) {
	switch s {
	case "", "ripple":
		return TrimRipple, nil
	case "roll":
		return TrimRoll, nil
	default:
		return 0, fmt.Errorf("%w: trim type %q", ErrUnhandledEdgeType, s)
	}
}

// MarshalJSON encodes the trim type as its wire name.
func (t TrimType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a wire name.
func (t *TrimType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding trim type: %w", err)
	}
	parsed, err := ParseTrimType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Reference identifies one edge in a drag batch, as received from the
// interaction layer. ClipID may name a preview copy; OriginalClipID, when
// set, names the persisted clip the preview copy was made from and anchors
// the edge's identity. TrackID is optional and resolved when absent.
type Reference struct {
	ClipID         string   `json:"clip_id"`
	OriginalClipID string   `json:"original_clip_id,omitempty"`
	TrackID        string   `json:"track_id,omitempty"`
	Type           EdgeType `json:"edge_type"`
	Trim           TrimType `json:"trim_type,omitempty"`
}

// SourceID returns the identity-bearing clip id: the original clip when the
// reference carries one, the referenced clip otherwise.
func (r Reference) SourceID() string {
	if r.OriginalClipID != "" {
		return r.OriginalClipID
	}
	return r.ClipID
}

// Key returns the stable identity of the edge, "{source_id}:{edge_type}".
// Previews, commits, and undo reports for the same edge all use this key.
func (r Reference) Key() (string, error) {
	source := r.SourceID()
	if source == "" {
		return "", fmt.Errorf("edge key: %w", ErrInvalidReference)
	}
	return source + ":" + r.Type.String(), nil
}

// Validate checks that the reference can identify an edge at all.
func (r Reference) Validate() error {
	if r.ClipID == "" && r.OriginalClipID == "" {
		return fmt.Errorf("edge reference: %w", ErrInvalidReference)
	}
	return nil
}

// gapClipID reports whether the reference points at a synthetic gap clip.
func gapClipID(id string, snap *clip.Snapshot) bool {
	if clip.IsTempGapID(id) {
		return true
	}
	return snap != nil && snap.Kind == clip.KindGap
}
