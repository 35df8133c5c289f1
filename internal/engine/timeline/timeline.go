// Package timeline indexes clips by track for neighbor and range queries.
//
// The index is a per-planning-pass structure: built from a caller-owned
// clip slice, used for the duration of one edit decision, and discarded.
// Nothing here is global and nothing here mutates the clips it was built
// from.
package timeline

import (
	"fmt"
	"sort"

	"github.com/dshills/keystorm/internal/engine/clip"
)

// NeighborBounds caches, for one clip, where its track neighbors sit.
// Nil frame pointers mean no neighbor on that side. The bounds are the
// clamp inputs for edge motion: a boundary may move toward a neighbor but
// never across it.
type NeighborBounds struct {
	PrevID    string
	NextID    string
	PrevEnd   *int64
	NextStart *int64
}

// BuildTrackClipMap groups clips by track, each group sorted by start frame
// with clip id as the tie break. A clip without a track id is a fatal input
// error and names the clip.
func BuildTrackClipMap(clips []clip.Clip) (map[string][]clip.Clip, error) {
	byTrack := make(map[string][]clip.Clip)
	for _, c := range clips {
		if c.TrackID == "" {
			return nil, &MissingTrackError{ClipID: c.ID}
		}
		byTrack[c.TrackID] = append(byTrack[c.TrackID], c)
	}
	for id := range byTrack {
		sortTrack(byTrack[id])
	}
	return byTrack, nil
}

func sortTrack(track []clip.Clip) {
	sort.SliceStable(track, func(i, j int) bool {
		if track[i].Start.Frames != track[j].Start.Frames {
			return track[i].Start.Frames < track[j].Start.Frames
		}
		return track[i].ID < track[j].ID
	})
}

// BuildNeighborBounds derives the neighbor cache for every clip in a track
// map produced by BuildTrackClipMap. One linear walk per track.
func BuildNeighborBounds(byTrack map[string][]clip.Clip) map[string]NeighborBounds {
	bounds := make(map[string]NeighborBounds)
	for _, track := range byTrack {
		for i, c := range track {
			var nb NeighborBounds
			if i > 0 {
				prev := track[i-1]
				end := prev.End().Frames
				nb.PrevID = prev.ID
				nb.PrevEnd = &end
			}
			if i < len(track)-1 {
				next := track[i+1]
				start := next.Start.Frames
				nb.NextID = next.ID
				nb.NextStart = &start
			}
			bounds[c.ID] = nb
		}
	}
	return bounds
}

// Index is a sorted per-track view of a clip set with a neighbor cache.
type Index struct {
	byTrack map[string][]clip.Clip
	byID    map[string]clip.Clip
	bounds  map[string]NeighborBounds
	tracks  []string
}

// NewIndex builds an index over the given clips.
func NewIndex(clips []clip.Clip) (*Index, error) {
	byTrack, err := BuildTrackClipMap(clips)
	if err != nil {
		return nil, fmt.Errorf("building track index: %w", err)
	}

	byID := make(map[string]clip.Clip, len(clips))
	for _, c := range clips {
		byID[c.ID] = c
	}

	tracks := make([]string, 0, len(byTrack))
	for id := range byTrack {
		tracks = append(tracks, id)
	}
	sort.Strings(tracks)

	return &Index{
		byTrack: byTrack,
		byID:    byID,
		bounds:  BuildNeighborBounds(byTrack),
		tracks:  tracks,
	}, nil
}

// Len returns the number of indexed clips.
func (ix *Index) Len() int {
	return len(ix.byID)
}

// TrackIDs returns the indexed track ids in sorted order.
func (ix *Index) TrackIDs() []string {
	out := make([]string, len(ix.tracks))
	copy(out, ix.tracks)
	return out
}

// Track returns the sorted clips of one track. The returned slice is the
// index's own; callers must not modify it.
func (ix *Index) Track(trackID string) []clip.Clip {
	return ix.byTrack[trackID]
}

// Clip looks a clip up by id.
func (ix *Index) Clip(id string) (clip.Clip, bool) {
	c, ok := ix.byID[id]
	return c, ok
}

// ClipMap returns the id lookup map backing the index. The map is the
// index's own; callers must not modify it.
func (ix *Index) ClipMap() map[string]clip.Clip {
	return ix.byID
}

// Bounds returns the neighbor cache entry for a clip.
func (ix *Index) Bounds(clipID string) (NeighborBounds, bool) {
	nb, ok := ix.bounds[clipID]
	return nb, ok
}

// NextOnTrack returns the first clip on the track whose start is at or
// after the given frame. Binary search over the sorted track.
func (ix *Index) NextOnTrack(trackID string, frames int64) (clip.Clip, bool) {
	track := ix.byTrack[trackID]
	i := sort.Search(len(track), func(i int) bool {
		return track[i].Start.Frames >= frames
	})
	if i >= len(track) {
		return clip.Clip{}, false
	}
	return track[i], true
}

// PrevOnTrack returns the last clip on the track whose end is at or before
// the given frame. Clips on a track do not overlap, so ends are sorted the
// same way starts are.
func (ix *Index) PrevOnTrack(trackID string, frames int64) (clip.Clip, bool) {
	track := ix.byTrack[trackID]
	i := sort.Search(len(track), func(i int) bool {
		return track[i].End().Frames > frames
	})
	if i == 0 {
		return clip.Clip{}, false
	}
	return track[i-1], true
}

// FindNextClipOnTrack scans a flat, unordered clip slice for the first clip
// on the track starting at or after the given frame. Linear fallback for
// callers holding raw slices without an index.
func FindNextClipOnTrack(clips []clip.Clip, trackID string, frames int64) (clip.Clip, bool) {
	var best clip.Clip
	found := false
	for _, c := range clips {
		if c.TrackID != trackID || c.Start.Frames < frames {
			continue
		}
		if !found || c.Start.Frames < best.Start.Frames ||
			(c.Start.Frames == best.Start.Frames && c.ID < best.ID) {
			best = c
			found = true
		}
	}
	return best, found
}

// FindPrevClipOnTrack scans a flat, unordered clip slice for the last clip
// on the track ending at or before the given frame.
func FindPrevClipOnTrack(clips []clip.Clip, trackID string, frames int64) (clip.Clip, bool) {
	var best clip.Clip
	found := false
	for _, c := range clips {
		if c.TrackID != trackID || c.End().Frames > frames {
			continue
		}
		if !found || c.End().Frames > best.End().Frames ||
			(c.End().Frames == best.End().Frames && c.ID > best.ID) {
			best = c
			found = true
		}
	}
	return best, found
}
