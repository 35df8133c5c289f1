// Package planner decides ripple and roll edits: which clips trim, which
// clips move, by how much, and where the batch clamps.
//
// A drag hands the planner a batch of edges and one signed frame delta. The
// planner resolves every edge to a track and boundary, computes the
// admissible delta interval per edge from cached neighbor positions, and
// applies the single shared delta nearest the request that every edge
// admits. The answer is a Plan: per-clip trim mutations, per-track shift
// blocks for ripple propagation, and a per-edge preview. Planning never
// mutates the clips it reads; dry runs and commits produce identical plans.
package planner

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/dshills/keystorm/internal/engine/clip"
	"github.com/dshills/keystorm/internal/engine/edge"
	"github.com/dshills/keystorm/internal/engine/timecode"
	"github.com/dshills/keystorm/internal/engine/timeline"
)

// Planner evaluates edit requests against one consistent timeline view.
type Planner struct {
	ix     *timeline.Index
	rate   timecode.Rate
	pad    int64
	logger *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithRegionPad sets the active-region pad in frames. Zero selects the
// default of one second at the sequence rate.
func WithRegionPad(frames int64) Option {
	return func(p *Planner) {
		if frames > 0 {
			p.pad = frames
		}
	}
}

// WithLogger attaches a logger for debug-level plan summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// New creates a planner over an index at the given sequence rate.
func New(ix *timeline.Index, rate timecode.Rate, opts ...Option) (*Planner, error) {
	if ix == nil {
		return nil, ErrNilIndex
	}
	if !rate.Valid() {
		return nil, fmt.Errorf("planner: rate %s: %w", rate, timecode.ErrInvalidRate)
	}
	p := &Planner{
		ix:   ix,
		rate: rate,
		pad:  rate.FramesPerSecond(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// resolvedEdge is one edge of the batch after resolution: identity, track,
// boundary, geometry, bounds, and roll partner.
type resolvedEdge struct {
	ref      edge.Reference
	key      string
	sourceID string
	trackID  string
	boundary int64
	snap     *clip.Snapshot
	partner  *clip.Snapshot
	iv       interval
	clamped  bool
}

// Plan evaluates one request. Every failure is fatal for the whole call;
// there are no partial plans.
func (p *Planner) Plan(req Request) (*Plan, error) {
	if len(req.Edges) == 0 {
		return nil, ErrNoEdges
	}
	if req.Delta.Rate.Valid() && !req.Delta.Rate.Equal(p.rate) {
		return nil, fmt.Errorf("delta rate %s vs sequence rate %s: %w",
			req.Delta.Rate, p.rate, timecode.ErrRateMismatch)
	}

	originals, err := p.ensureOriginals(req)
	if err != nil {
		return nil, err
	}

	edges, err := p.resolveEdges(req.Edges, originals)
	if err != nil {
		return nil, err
	}

	requested := req.Delta.Frames
	applied := p.clampBatch(edges, requested)

	deltas := p.trimDeltas(edges, applied, originals)
	affected, err := buildMutations(deltas)
	if err != nil {
		return nil, err
	}

	region := req.Region
	if region == nil {
		region = p.deriveRegion(edges)
	}

	shifted, blocks := p.rippleShifts(edges, applied, deltas, region)

	plan := &Plan{
		SequenceID:      req.SequenceID,
		LeadEdge:        req.LeadEdge,
		RequestedFrames: requested,
		AppliedFrames:   applied,
		Affected:        affected,
		Shifted:         shifted,
		ShiftBlocks:     blocks,
		EdgePreview:     previews(edges, applied),
		ClampedEdges:    clampedKeys(edges),
	}
	plan.Signature, err = Signature(req.Edges)
	if err != nil {
		return nil, err
	}

	if p.logger != nil {
		p.logger.Debug("planned edit batch",
			"sequence_id", req.SequenceID,
			"signature", plan.Signature,
			"requested", requested,
			"applied", applied,
			"affected", len(affected),
			"blocks", len(blocks),
			"clamped", len(plan.ClampedEdges),
			"dry_run", req.DryRun,
		)
	}
	return plan, nil
}

// ensureOriginals returns the pre-edit snapshot map the request plans
// against. A caller-preloaded map is used as given, except that temp-gap
// references absent from it are synthesized from their ids; with no
// preloaded map, every live clip is snapshotted.
func (p *Planner) ensureOriginals(req Request) (map[string]*clip.Snapshot, error) {
	originals := req.Originals
	if originals == nil {
		originals = make(map[string]*clip.Snapshot, p.ix.Len())
		for id, c := range p.ix.ClipMap() {
			snap, err := clip.SnapshotOf(c)
			if err != nil {
				return nil, err
			}
			originals[id] = snap
		}
	}

	for _, ref := range req.Edges {
		if _, ok := originals[ref.ClipID]; ok || !clip.IsTempGapID(ref.ClipID) {
			continue
		}
		g, err := clip.ParseTempGapID(ref.ClipID)
		if err != nil {
			return nil, err
		}
		originals[ref.ClipID] = g.Snapshot(p.rate)
	}
	return originals, nil
}

// resolveEdges validates, deduplicates, and resolves the batch, returning
// it sorted by (track, boundary, key) so everything downstream iterates in
// one deterministic order.
func (p *Planner) resolveEdges(refs []edge.Reference, originals map[string]*clip.Snapshot) ([]*resolvedEdge, error) {
	live := p.ix.ClipMap()

	seen := make(map[string]bool, len(refs))
	edges := make([]*resolvedEdge, 0, len(refs))
	for _, ref := range refs {
		if err := ref.Validate(); err != nil {
			return nil, err
		}
		key, err := ref.Key()
		if err != nil {
			return nil, err
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		trackID, err := edge.ResolveTrackID(ref, live, originals)
		if err != nil {
			return nil, err
		}
		boundary, err := edge.BoundaryTime(ref, originals)
		if err != nil {
			return nil, err
		}

		re := &resolvedEdge{
			ref:      ref,
			key:      key,
			sourceID: ref.SourceID(),
			trackID:  trackID,
			boundary: boundary.Frames,
			snap:     originals[ref.ClipID],
		}
		re.partner = p.rollPartner(ref, re.snap, originals)

		// Preview copies carry their own ids; neighbor positions live
		// under the persisted id when the copy itself is not indexed.
		nb, ok := p.ix.Bounds(ref.ClipID)
		if !ok {
			nb, _ = p.ix.Bounds(re.sourceID)
		}
		re.iv = edgeBounds(ref, re.snap, nb, re.partner)
		edges = append(edges, re)
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].trackID != edges[j].trackID {
			return edges[i].trackID < edges[j].trackID
		}
		if edges[i].boundary != edges[j].boundary {
			return edges[i].boundary < edges[j].boundary
		}
		return edges[i].key < edges[j].key
	})
	return edges, nil
}

// rollPartner resolves the adjacent clip a roll edge trades frames with.
// Partner state prefers the preloaded snapshot and falls back to the live
// clip; a roll with no adjacent clip has no partner and degrades to a
// plain trim.
func (p *Planner) rollPartner(ref edge.Reference, snap *clip.Snapshot, originals map[string]*clip.Snapshot) *clip.Snapshot {
	if ref.Trim != edge.TrimRoll || ref.Type.IsGap() || snap == nil || snap.IsGap() {
		return nil
	}
	nb, ok := p.ix.Bounds(ref.ClipID)
	if !ok {
		nb, ok = p.ix.Bounds(ref.SourceID())
		if !ok {
			return nil
		}
	}

	partnerID := nb.NextID
	if ref.Type == edge.EdgeIn {
		partnerID = nb.PrevID
	}
	if partnerID == "" {
		return nil
	}

	if s, ok := originals[partnerID]; ok && s != nil {
		return s
	}
	if c, ok := p.ix.Clip(partnerID); ok {
		if s, err := clip.SnapshotOf(c); err == nil {
			originals[partnerID] = s
			return s
		}
	}
	return nil
}

// clampBatch intersects every edge's interval and clamps the requested
// delta into the result. Each interval contains zero, so the intersection
// is never empty and the worst case is a batch that cannot move at all.
// Edges whose own interval excludes the request are flagged clamped.
func (p *Planner) clampBatch(edges []*resolvedEdge, requested int64) int64 {
	batch := interval{lo: noLowerBound, hi: noUpperBound}
	for _, e := range edges {
		batch = batch.intersect(e.iv)
		if !e.iv.contains(requested) {
			e.clamped = true
		}
	}
	return batch.clampInto(requested)
}

// fieldDelta accumulates the frame adjustments one clip receives from the
// batch. A clip touched by several edges (both its edges selected, or a
// trim plus a roll partner) composes here.
type fieldDelta struct {
	before  *clip.Snapshot
	trackID string
	start   int64
	dur     int64
	srcIn   int64
	srcOut  int64
}

// trimDeltas turns the batch into per-clip field adjustments, keyed by the
// identity-bearing clip id. Gap edges and synthetic gap clips contribute
// none; their effect rides in shift blocks.
func (p *Planner) trimDeltas(edges []*resolvedEdge, applied int64, originals map[string]*clip.Snapshot) map[string]*fieldDelta {
	deltas := make(map[string]*fieldDelta)
	if applied == 0 {
		return deltas
	}

	get := func(id string, before *clip.Snapshot, trackID string) *fieldDelta {
		fd, ok := deltas[id]
		if !ok {
			fd = &fieldDelta{before: before, trackID: trackID}
			deltas[id] = fd
		}
		return fd
	}

	for _, e := range edges {
		if e.ref.Type.IsGap() || e.snap == nil || e.snap.IsGap() {
			continue
		}

		// The mutation targets the persisted clip. When a preview copy
		// planned the edit, prefer the persisted clip's own snapshot.
		before := e.snap
		if s, ok := originals[e.sourceID]; ok && s != nil {
			before = s
		}

		switch e.ref.Type {
		case edge.EdgeIn:
			own := get(e.sourceID, before, e.trackID)
			own.start += applied
			own.dur -= applied
			own.srcIn += applied
			if e.partner != nil {
				prev := get(e.partner.ID, e.partner, e.partner.TrackID)
				prev.dur += applied
				prev.srcOut += applied
			}
		case edge.EdgeOut:
			own := get(e.sourceID, before, e.trackID)
			own.dur += applied
			own.srcOut += applied
			if e.partner != nil {
				next := get(e.partner.ID, e.partner, e.partner.TrackID)
				next.start += applied
				next.dur -= applied
				next.srcIn += applied
			}
		}
	}
	return deltas
}

// buildMutations materializes before/after snapshots for every trimmed
// clip, sorted by (track, pre-edit start, id).
func buildMutations(deltas map[string]*fieldDelta) ([]ClipMutation, error) {
	out := make([]ClipMutation, 0, len(deltas))
	for id, fd := range deltas {
		after, err := fd.before.Clone()
		if err != nil {
			return nil, err
		}
		after.ID = id
		after.Start = after.Start.AddFrames(fd.start)
		after.Duration = after.Duration.AddFrames(fd.dur)
		after.SourceIn = after.SourceIn.AddFrames(fd.srcIn)
		after.SourceOut = after.SourceOut.AddFrames(fd.srcOut)
		if after.Duration.IsNegative() {
			return nil, fmt.Errorf("clip %s: trimmed duration %s: %w", id, after.Duration, clip.ErrNegativeDuration)
		}

		trackID := fd.trackID
		if trackID == "" {
			trackID = fd.before.TrackID
		}
		out = append(out, ClipMutation{ClipID: id, TrackID: trackID, Before: fd.before, After: after})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TrackID != out[j].TrackID {
			return out[i].TrackID < out[j].TrackID
		}
		if out[i].Before.Start.Frames != out[j].Before.Start.Frames {
			return out[i].Before.Start.Frames < out[j].Before.Start.Frames
		}
		return out[i].ClipID < out[j].ClipID
	})
	return out, nil
}

// deriveRegion builds the bounded snapshot window around the batch.
func (p *Planner) deriveRegion(edges []*resolvedEdge) *timeline.ActiveRegion {
	lo, hi := edges[0].boundary, edges[0].boundary
	tracks := make([]string, 0, len(edges))
	for _, e := range edges {
		if e.boundary < lo {
			lo = e.boundary
		}
		if e.boundary > hi {
			hi = e.boundary
		}
		tracks = append(tracks, e.trackID)
	}
	return p.ix.Region(tracks, lo, hi, p.pad)
}

// rippleShifts computes per-track propagation. On each track carrying at
// least one propagating edge (gap edges always propagate; trim edges only
// in ripple mode), every clip at or after the last propagating boundary
// shifts by the applied delta, except clips the batch trimmed directly.
// The block records the track's first moving clip; Shifted enumerates the
// movers inside the active region for preview rendering.
func (p *Planner) rippleShifts(edges []*resolvedEdge, applied int64, deltas map[string]*fieldDelta, region *timeline.ActiveRegion) ([]ClipShift, []ShiftBlock) {
	if applied == 0 {
		return nil, nil
	}

	lastBoundary := make(map[string]int64)
	for _, e := range edges {
		if !e.ref.Type.IsGap() && e.ref.Trim != edge.TrimRipple {
			continue
		}
		b, ok := lastBoundary[e.trackID]
		if !ok || e.boundary > b {
			lastBoundary[e.trackID] = e.boundary
		}
	}

	tracks := make([]string, 0, len(lastBoundary))
	for trackID := range lastBoundary {
		tracks = append(tracks, trackID)
	}
	sort.Strings(tracks)

	inRegion := make(map[string]bool)
	if region != nil {
		for _, c := range region.Clips {
			inRegion[c.ID] = true
		}
	}

	var shifted []ClipShift
	var blocks []ShiftBlock
	for _, trackID := range tracks {
		boundary := lastBoundary[trackID]
		var movers []clip.Clip
		for _, c := range p.ix.Track(trackID) {
			if c.Start.Frames < boundary {
				continue
			}
			if _, trimmed := deltas[c.ID]; trimmed {
				continue
			}
			movers = append(movers, c)
		}
		if len(movers) == 0 {
			continue
		}

		blocks = append(blocks, ShiftBlock{
			TrackID:     trackID,
			FirstClipID: movers[0].ID,
			StartFrames: movers[0].Start.Frames,
			DeltaFrames: applied,
		})
		for _, c := range movers {
			if region != nil && !inRegion[c.ID] {
				continue
			}
			shifted = append(shifted, ClipShift{
				ClipID:     c.ID,
				TrackID:    trackID,
				FromFrames: c.Start.Frames,
				ToFrames:   c.Start.Frames + applied,
			})
		}
	}
	return shifted, blocks
}

// previews reports each edge's boundary motion in resolved order.
func previews(edges []*resolvedEdge, applied int64) []EdgePreview {
	out := make([]EdgePreview, 0, len(edges))
	for _, e := range edges {
		bracket := e.ref.Type.Bracket()
		out = append(out, EdgePreview{
			Key:            e.key,
			ClipID:         e.ref.ClipID,
			TrackID:        e.trackID,
			Bracket:        bracket,
			BracketGlyph:   bracket.String(),
			BoundaryBefore: e.boundary,
			BoundaryAfter:  e.boundary + applied,
			Clamped:        e.clamped,
		})
	}
	return out
}

// clampedKeys lists the keys of clamped edges in sorted order.
func clampedKeys(edges []*resolvedEdge) []string {
	var keys []string
	for _, e := range edges {
		if e.clamped {
			keys = append(keys, e.key)
		}
	}
	sort.Strings(keys)
	return keys
}
