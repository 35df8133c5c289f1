package timeline

import "github.com/dshills/keystorm/internal/engine/clip"

// ActiveRegion is the bounded snapshot of clips near an edit. Planning a
// drag against a long sequence must not enumerate every clip on every
// pointer move; the region holds the clips whose intervals touch the padded
// window around the edited boundaries, on the touched tracks only. Clips
// beyond the window are covered compactly by shift blocks.
type ActiveRegion struct {
	StartFrames int64
	EndFrames   int64
	Tracks      []string
	Clips       []clip.Clip
}

// Contains reports whether a clip id is part of the region.
func (r *ActiveRegion) Contains(clipID string) bool {
	if r == nil {
		return false
	}
	for _, c := range r.Clips {
		if c.ID == clipID {
			return true
		}
	}
	return false
}

// Region builds the active region for a window [lo, hi] widened by pad
// frames, restricted to the given tracks. Track order is preserved from the
// input after dropping duplicates; clips come back in track order, sorted
// as the index stores them.
func (ix *Index) Region(trackIDs []string, lo, hi, pad int64) *ActiveRegion {
	start := lo - pad
	end := hi + pad

	seen := make(map[string]bool, len(trackIDs))
	region := &ActiveRegion{StartFrames: start, EndFrames: end}
	for _, trackID := range trackIDs {
		if seen[trackID] {
			continue
		}
		seen[trackID] = true
		region.Tracks = append(region.Tracks, trackID)

		for _, c := range ix.byTrack[trackID] {
			if c.Start.Frames > end {
				break
			}
			if c.End().Frames < start {
				continue
			}
			region.Clips = append(region.Clips, c)
		}
	}
	return region
}
