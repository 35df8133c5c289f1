package clip

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/keystorm/internal/engine/timecode"
)

// tempGapPrefix marks synthetic clip ids minted for gaps during preview.
const tempGapPrefix = "temp_gap_"

// GapInterval is the explicit form of a gap: empty track space between two
// clips, or between the timeline origin and the first clip. Preview sessions
// historically encoded gaps as clip ids ("temp_gap_<track>_<start>_<end>");
// the codec below converts between that form and this one so resolution
// logic never works off raw strings.
type GapInterval struct {
	TrackID     string
	StartFrames int64
	EndFrames   int64
}

// Frames returns the width of the gap in frames.
func (g GapInterval) Frames() int64 {
	return g.EndFrames - g.StartFrames
}

// Clip synthesizes a KindGap clip covering the interval at the given rate.
func (g GapInterval) Clip(rate timecode.Rate) Clip {
	return Clip{
		ID:       FormatTempGapID(g),
		TrackID:  g.TrackID,
		Kind:     KindGap,
		Start:    timecode.New(g.StartFrames, rate),
		Duration: timecode.New(g.Frames(), rate),
	}
}

// Snapshot synthesizes a snapshot of the gap, for preview sessions that
// reference gap edges alongside real clip edges.
func (g GapInterval) Snapshot(rate timecode.Rate) *Snapshot {
	return &Snapshot{
		ID:       FormatTempGapID(g),
		TrackID:  g.TrackID,
		Kind:     KindGap,
		Start:    timecode.New(g.StartFrames, rate),
		Duration: timecode.New(g.Frames(), rate),
	}
}

// IsTempGapID reports whether the id follows the temp-gap pattern.
func IsTempGapID(id string) bool {
	return strings.HasPrefix(id, tempGapPrefix)
}

// FormatTempGapID renders the legacy id form of a gap interval.
func FormatTempGapID(g GapInterval) string {
	return fmt.Sprintf("%s%s_%d_%d", tempGapPrefix, g.TrackID, g.StartFrames, g.EndFrames)
}

// ParseTempGapID decodes a temp-gap id. Track ids may themselves contain
// underscores, so the frame fields are taken from the right.
func ParseTempGapID(id string) (GapInterval, error) {
	if !strings.HasPrefix(id, tempGapPrefix) {
		return GapInterval{}, fmt.Errorf("parse %q: %w", id, ErrNotTempGap)
	}
	rest := id[len(tempGapPrefix):]

	endSep := strings.LastIndexByte(rest, '_')
	if endSep <= 0 {
		return GapInterval{}, fmt.Errorf("parse %q: missing frame fields: %w", id, ErrNotTempGap)
	}
	startSep := strings.LastIndexByte(rest[:endSep], '_')
	if startSep <= 0 {
		return GapInterval{}, fmt.Errorf("parse %q: missing frame fields: %w", id, ErrNotTempGap)
	}

	track := rest[:startSep]
	startStr := rest[startSep+1 : endSep]
	endStr := rest[endSep+1:]

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return GapInterval{}, fmt.Errorf("parse %q: bad start %q: %w", id, startStr, ErrNotTempGap)
	}
	end, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return GapInterval{}, fmt.Errorf("parse %q: bad end %q: %w", id, endStr, ErrNotTempGap)
	}
	if end < start {
		return GapInterval{}, fmt.Errorf("parse %q: end %d before start %d: %w", id, end, start, ErrNotTempGap)
	}

	return GapInterval{TrackID: track, StartFrames: start, EndFrames: end}, nil
}
