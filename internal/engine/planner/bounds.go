package planner

import (
	"math"

	"github.com/dshills/keystorm/internal/engine/clip"
	"github.com/dshills/keystorm/internal/engine/edge"
	"github.com/dshills/keystorm/internal/engine/timeline"
)

// Sentinel frame values for sides with no bound.
const (
	noLowerBound = math.MinInt64
	noUpperBound = math.MaxInt64
)

// interval is the signed range of deltas one edge admits. Every interval
// contains zero: a neighbor can forbid motion but never force it, which is
// what makes the batch intersection safe to take.
type interval struct {
	lo int64
	hi int64
}

func (iv interval) contains(d int64) bool {
	return d >= iv.lo && d <= iv.hi
}

// clampInto returns d clamped into the interval.
func (iv interval) clampInto(d int64) int64 {
	if d < iv.lo {
		return iv.lo
	}
	if d > iv.hi {
		return iv.hi
	}
	return d
}

// intersect narrows iv by another interval.
func (iv interval) intersect(o interval) interval {
	out := iv
	if o.lo > out.lo {
		out.lo = o.lo
	}
	if o.hi < out.hi {
		out.hi = o.hi
	}
	return out
}

// edgeBounds computes the admissible delta interval for one edge from the
// clip's pre-edit geometry and its cached neighbor positions. Bounds are
// taken against where neighbors sit now, not where propagation will move
// them; the conservative form keeps the clamp independent of evaluation
// order.
func edgeBounds(ref edge.Reference, snap *clip.Snapshot, nb timeline.NeighborBounds, partner *clip.Snapshot) interval {
	start := snap.Start.Frames
	dur := snap.Duration.Frames
	end := start + dur

	// Synthetic gap clips: every edge on them resizes the gap itself.
	// Shrinkable to nothing, growable without limit.
	if snap.IsGap() {
		return interval{lo: -dur, hi: noUpperBound}
	}

	prevEnd := int64(0) // the timeline origin backstops a missing previous clip
	if nb.PrevEnd != nil {
		prevEnd = *nb.PrevEnd
	}

	switch ref.Type {
	case edge.EdgeIn:
		if ref.Trim == edge.TrimRoll && partner != nil {
			// Rolling against the previous clip: its end travels with the
			// boundary, so only the two durations bound the move.
			return interval{lo: -partner.Duration.Frames, hi: dur}
		}
		return interval{lo: prevEnd - start, hi: dur}

	case edge.EdgeOut:
		if ref.Trim == edge.TrimRoll && partner != nil {
			return interval{lo: -dur, hi: partner.Duration.Frames}
		}
		hi := int64(noUpperBound)
		if nb.NextStart != nil {
			hi = *nb.NextStart - end
		}
		return interval{lo: -dur, hi: hi}

	case edge.EdgeGapBefore:
		return interval{lo: prevEnd - start, hi: noUpperBound}

	case edge.EdgeGapAfter:
		if nb.NextStart == nil {
			// No clip after means no gap to resize; the edge admits no
			// leftward motion and growth shifts nothing.
			return interval{lo: 0, hi: noUpperBound}
		}
		return interval{lo: end - *nb.NextStart, hi: noUpperBound}

	default:
		// Unreachable for parsed references; resolution rejects unknown
		// types before bounds are computed.
		return interval{lo: 0, hi: 0}
	}
}
