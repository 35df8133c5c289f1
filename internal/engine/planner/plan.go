package planner

import (
	"sort"
	"strings"

	"github.com/dshills/keystorm/internal/engine/clip"
	"github.com/dshills/keystorm/internal/engine/edge"
	"github.com/dshills/keystorm/internal/engine/timecode"
	"github.com/dshills/keystorm/internal/engine/timeline"
)

// Request describes one edit decision: a batch of edges dragged together by
// a single delta. DryRun previews without committing; the resulting Plan is
// identical either way. Originals and Region may be preloaded by the caller
// (a preview session holding temp-gap snapshots does this); when nil they
// are derived from the live clips.
type Request struct {
	SequenceID string
	Edges      []edge.Reference
	Delta      timecode.Value
	DryRun     bool
	LeadEdge   string
	Originals  map[string]*clip.Snapshot
	Region     *timeline.ActiveRegion
}

// ClipMutation is a direct edit to one clip: the pre-edit snapshot and the
// post-edit state. Only clips whose own boundaries were trimmed appear
// here; clips that merely move ride in shift blocks.
type ClipMutation struct {
	ClipID  string         `json:"clip_id"`
	TrackID string         `json:"track_id"`
	Before  *clip.Snapshot `json:"before"`
	After   *clip.Snapshot `json:"after"`
}

// ClipShift is one clip carried along by ripple propagation, enumerated for
// clips inside the active region so a preview can draw them in motion.
type ClipShift struct {
	ClipID     string `json:"clip_id"`
	TrackID    string `json:"track_id"`
	FromFrames int64  `json:"from_frames"`
	ToFrames   int64  `json:"to_frames"`
}

// ShiftBlock compactly records ripple propagation on one track: every clip
// at or after the anchor shifts by the delta. Blocks cover the unbounded
// tail of a track without enumerating it.
type ShiftBlock struct {
	TrackID     string `json:"track_id"`
	FirstClipID string `json:"first_clip_id"`
	StartFrames int64  `json:"start_frames"`
	DeltaFrames int64  `json:"delta_frames"`
}

// EdgePreview reports the outcome for one edge of the batch: its stable
// key, normalized bracket for rendering, and boundary position before and
// after the applied delta.
type EdgePreview struct {
	Key            string       `json:"key"`
	ClipID         string       `json:"clip_id"`
	TrackID        string       `json:"track_id"`
	Bracket        edge.Bracket `json:"-"`
	BracketGlyph   string       `json:"bracket"`
	BoundaryBefore int64        `json:"boundary_before"`
	BoundaryAfter  int64        `json:"boundary_after"`
	Clamped        bool         `json:"clamped"`
}

// Plan is the planner's complete answer for one request. Dry-run and commit
// produce byte-identical plans for identical inputs; nothing in a Plan
// depends on whether it will be applied.
type Plan struct {
	SequenceID      string         `json:"sequence_id"`
	Signature       string         `json:"signature"`
	LeadEdge        string         `json:"lead_edge,omitempty"`
	RequestedFrames int64          `json:"requested_frames"`
	AppliedFrames   int64          `json:"applied_frames"`
	Affected        []ClipMutation `json:"affected_clips"`
	Shifted         []ClipShift    `json:"shifted_clips"`
	ShiftBlocks     []ShiftBlock   `json:"shift_blocks"`
	ClampedEdges    []string       `json:"clamped_edges"`
	EdgePreview     []EdgePreview  `json:"edge_preview"`
}

// Clamped reports whether the batch moved by less than was asked.
func (p *Plan) Clamped() bool {
	return p.AppliedFrames != p.RequestedFrames
}

// IsNoop reports whether the plan changes nothing.
func (p *Plan) IsNoop() bool {
	return p.AppliedFrames == 0
}

// Signature derives the memoization identity of an edge batch: the sorted,
// deduplicated edge keys joined with "|". Two requests with equal
// signatures and equal deltas describe the same decision.
func Signature(edges []edge.Reference) (string, error) {
	keys := make([]string, 0, len(edges))
	seen := make(map[string]bool, len(edges))
	for _, ref := range edges {
		key, err := ref.Key()
		if err != nil {
			return "", err
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return strings.Join(keys, "|"), nil
}
