package edge

import (
	"github.com/dshills/keystorm/internal/engine/clip"
	"github.com/dshills/keystorm/internal/engine/timecode"
)

// ResolveTrackID derives the track an edge lives on. The chain is: the
// reference's own field, then the live clip, then the original snapshot,
// then the track embedded in a temp-gap id. Failure of the whole chain is
// fatal for the edge.
func ResolveTrackID(r Reference, live map[string]clip.Clip, originals map[string]*clip.Snapshot) (string, error) {
	if r.TrackID != "" {
		return r.TrackID, nil
	}
	if c, ok := live[r.ClipID]; ok && c.TrackID != "" {
		return c.TrackID, nil
	}
	if s, ok := originals[r.ClipID]; ok && s != nil && s.TrackID != "" {
		return s.TrackID, nil
	}
	if clip.IsTempGapID(r.ClipID) {
		if g, err := clip.ParseTempGapID(r.ClipID); err == nil && g.TrackID != "" {
			return g.TrackID, nil
		}
	}
	return "", &ResolveError{Op: "resolve track for", ClipID: r.ClipID, Err: ErrTrackUnresolved}
}

// BoundaryTime computes the exact timeline position of an edge from the
// referenced clip's pre-edit snapshot.
//
// On a real clip, in and gap_before sit at the clip's start, out and
// gap_after at its end. On a synthetic gap clip the gap edges invert: the
// gap stands between two real clips, so gap_before anchors at the gap's end
// (nearer the next real clip) and gap_after at its start.
func BoundaryTime(r Reference, originals map[string]*clip.Snapshot) (timecode.Value, error) {
	snap, ok := originals[r.ClipID]
	if !ok || snap == nil {
		return timecode.Value{}, &ResolveError{Op: "boundary of", ClipID: r.ClipID, Err: ErrMissingOriginalState}
	}

	onGap := gapClipID(r.ClipID, snap)

	switch r.Type {
	case EdgeIn:
		return snap.Start, nil
	case EdgeOut:
		return snap.End(), nil
	case EdgeGapBefore:
		if onGap {
			return snap.End(), nil
		}
		return snap.Start, nil
	case EdgeGapAfter:
		if onGap {
			return snap.Start, nil
		}
		return snap.End(), nil
	default:
		return timecode.Value{}, &UnhandledTypeError{
			ClipID:  r.ClipID,
			Raw:     r.Type.String(),
			Bracket: r.Type.Bracket(),
		}
	}
}
