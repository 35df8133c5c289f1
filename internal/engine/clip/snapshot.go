package clip

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/dshills/keystorm/internal/engine/timecode"
)

// Snapshot is a self-contained copy of a clip's persisted fields taken
// before an edit. Snapshots are what mutation records carry, so undo can
// restore a clip without consulting any other state. ProjectID and
// SequenceID may be empty on capture and are backfilled from the owning
// command during reconstruction.
type Snapshot struct {
	ID         string         `json:"clip_id"`
	TrackID    string         `json:"track_id"`
	ProjectID  string         `json:"project_id,omitempty"`
	SequenceID string         `json:"owner_sequence_id,omitempty"`
	Name       string         `json:"name,omitempty"`
	Kind       ClipKind       `json:"clip_kind"`
	Start      timecode.Value `json:"start"`
	Duration   timecode.Value `json:"duration"`
	SourceIn   timecode.Value `json:"source_in"`
	SourceOut  timecode.Value `json:"source_out"`
	Enabled    bool           `json:"enabled"`
}

// SnapshotOf captures a deep copy of a clip's state.
func SnapshotOf(c Clip) (*Snapshot, error) {
	var s Snapshot
	if err := copier.CopyWithOption(&s, &c, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("snapshot clip %s: %w", c.ID, err)
	}
	return &s, nil
}

// Clone returns an independent deep copy of the snapshot.
func (s *Snapshot) Clone() (*Snapshot, error) {
	var out Snapshot
	if err := copier.CopyWithOption(&out, s, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone snapshot %s: %w", s.ID, err)
	}
	return &out, nil
}

// Clip converts the snapshot back into a live clip value.
func (s *Snapshot) Clip() (Clip, error) {
	var c Clip
	if err := copier.CopyWithOption(&c, s, copier.Option{DeepCopy: true}); err != nil {
		return Clip{}, fmt.Errorf("restore clip %s: %w", s.ID, err)
	}
	return c, nil
}

// End returns the exclusive end of the snapshotted interval.
func (s *Snapshot) End() timecode.Value {
	return s.Start.AddFrames(s.Duration.Frames)
}

// IsGap reports whether the snapshot describes synthetic empty space.
func (s *Snapshot) IsGap() bool {
	return s.Kind == KindGap || IsTempGapID(s.ID)
}

// Normalize returns a clone with empty ProjectID and SequenceID replaced by
// the given values. The receiver is never modified; records built from live
// snapshots must not alias them.
func (s *Snapshot) Normalize(projectID, sequenceID string) (*Snapshot, error) {
	out, err := s.Clone()
	if err != nil {
		return nil, err
	}
	if out.ProjectID == "" {
		out.ProjectID = projectID
	}
	if out.SequenceID == "" {
		out.SequenceID = sequenceID
	}
	return out, nil
}
