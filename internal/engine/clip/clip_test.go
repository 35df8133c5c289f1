package clip

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dshills/keystorm/internal/engine/timecode"
)

func testClip() Clip {
	return Clip{
		ID:         "clip-1",
		TrackID:    "video-1",
		SequenceID: "seq-1",
		Kind:       KindVideo,
		Start:      timecode.New(100, timecode.Rate30),
		Duration:   timecode.New(50, timecode.Rate30),
		SourceIn:   timecode.New(0, timecode.Rate30),
		SourceOut:  timecode.New(50, timecode.Rate30),
		Enabled:    true,
	}
}

func TestClipEnd(t *testing.T) {
	c := testClip()
	if got := c.End().Frames; got != 150 {
		t.Errorf("End() = %d, want 150", got)
	}
}

func TestClipValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Clip)
		wantErr error
	}{
		{"valid", func(c *Clip) {}, nil},
		{"empty id", func(c *Clip) { c.ID = "" }, ErrMissingClipID},
		{"negative duration", func(c *Clip) { c.Duration.Frames = -1 }, ErrNegativeDuration},
		{"negative start", func(c *Clip) { c.Start.Frames = -1 }, ErrNegativeStart},
		{"rate mismatch", func(c *Clip) { c.Duration.Rate = timecode.Rate25 }, timecode.ErrRateMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClip()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClipKindRoundTrip(t *testing.T) {
	kinds := []ClipKind{KindVideo, KindAudio, KindImage, KindTitle, KindGap}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			parsed, err := ParseClipKind(k.String())
			if err != nil {
				t.Fatalf("ParseClipKind(%q) returned error: %v", k.String(), err)
			}
			if parsed != k {
				t.Errorf("ParseClipKind(%q) = %v, want %v", k.String(), parsed, k)
			}
		})
	}

	if _, err := ParseClipKind("hologram"); !errors.Is(err, ErrUnknownClipKind) {
		t.Errorf("ParseClipKind(hologram) error = %v, want ErrUnknownClipKind", err)
	}
}

func TestClipKindJSON(t *testing.T) {
	data, err := json.Marshal(KindAudio)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != `"audio"` {
		t.Errorf("Marshal = %s, want %q", data, `"audio"`)
	}

	var k ClipKind
	if err := json.Unmarshal([]byte(`""`), &k); err != nil {
		t.Fatalf("Unmarshal empty kind returned error: %v", err)
	}
	if k != KindUnknown {
		t.Errorf("Unmarshal empty kind = %v, want KindUnknown", k)
	}
}

func TestSnapshotIndependence(t *testing.T) {
	c := testClip()
	snap, err := SnapshotOf(c)
	if err != nil {
		t.Fatalf("SnapshotOf returned error: %v", err)
	}

	if snap.ID != c.ID || snap.TrackID != c.TrackID || snap.SequenceID != c.SequenceID {
		t.Errorf("snapshot ids = %s/%s/%s, want %s/%s/%s",
			snap.ID, snap.TrackID, snap.SequenceID, c.ID, c.TrackID, c.SequenceID)
	}
	if snap.Start.Frames != 100 || snap.Duration.Frames != 50 {
		t.Errorf("snapshot interval = %d+%d, want 100+50", snap.Start.Frames, snap.Duration.Frames)
	}

	// Mutating the live clip must not reach the snapshot.
	c.Start = c.Start.AddFrames(25)
	c.Duration = c.Duration.AddFrames(-10)
	if snap.Start.Frames != 100 || snap.Duration.Frames != 50 {
		t.Errorf("snapshot changed after clip mutation: %d+%d", snap.Start.Frames, snap.Duration.Frames)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := testClip()
	snap, err := SnapshotOf(c)
	if err != nil {
		t.Fatalf("SnapshotOf returned error: %v", err)
	}
	back, err := snap.Clip()
	if err != nil {
		t.Fatalf("Clip() returned error: %v", err)
	}
	if back != c {
		t.Errorf("round trip = %+v, want %+v", back, c)
	}
}

func TestSnapshotNormalize(t *testing.T) {
	snap, err := SnapshotOf(testClip())
	if err != nil {
		t.Fatalf("SnapshotOf returned error: %v", err)
	}
	snap.SequenceID = ""

	norm, err := snap.Normalize("proj-9", "seq-9")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if norm.ProjectID != "proj-9" {
		t.Errorf("ProjectID = %q, want proj-9", norm.ProjectID)
	}
	if norm.SequenceID != "seq-9" {
		t.Errorf("SequenceID = %q, want seq-9", norm.SequenceID)
	}
	// Original untouched.
	if snap.ProjectID != "" || snap.SequenceID != "" {
		t.Errorf("receiver modified: project %q sequence %q", snap.ProjectID, snap.SequenceID)
	}

	// Present values win over backfill.
	snap.ProjectID = "proj-1"
	norm, err = snap.Normalize("proj-9", "seq-9")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if norm.ProjectID != "proj-1" {
		t.Errorf("ProjectID = %q, want proj-1", norm.ProjectID)
	}
}

func TestSnapshotJSONKeys(t *testing.T) {
	snap, err := SnapshotOf(testClip())
	if err != nil {
		t.Fatalf("SnapshotOf returned error: %v", err)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	for _, key := range []string{"clip_id", "track_id", "clip_kind", "start", "duration"} {
		if _, ok := m[key]; !ok {
			t.Errorf("marshalled snapshot missing key %q", key)
		}
	}
}

func TestTempGapCodec(t *testing.T) {
	g := GapInterval{TrackID: "video-1", StartFrames: 150, EndFrames: 200}

	id := FormatTempGapID(g)
	if id != "temp_gap_video-1_150_200" {
		t.Errorf("FormatTempGapID = %q, want temp_gap_video-1_150_200", id)
	}
	if !IsTempGapID(id) {
		t.Errorf("IsTempGapID(%q) = false, want true", id)
	}

	back, err := ParseTempGapID(id)
	if err != nil {
		t.Fatalf("ParseTempGapID returned error: %v", err)
	}
	if back != g {
		t.Errorf("round trip = %+v, want %+v", back, g)
	}
}

func TestTempGapUnderscoreTrack(t *testing.T) {
	g := GapInterval{TrackID: "video_track_2", StartFrames: 0, EndFrames: 90}
	back, err := ParseTempGapID(FormatTempGapID(g))
	if err != nil {
		t.Fatalf("ParseTempGapID returned error: %v", err)
	}
	if back.TrackID != "video_track_2" {
		t.Errorf("TrackID = %q, want video_track_2", back.TrackID)
	}
	if back.StartFrames != 0 || back.EndFrames != 90 {
		t.Errorf("interval = [%d,%d), want [0,90)", back.StartFrames, back.EndFrames)
	}
}

func TestTempGapParseErrors(t *testing.T) {
	bad := []string{
		"clip-1",
		"temp_gap_",
		"temp_gap_video-1",
		"temp_gap_video-1_abc_200",
		"temp_gap_video-1_200_abc",
		"temp_gap_video-1_200_100",
	}
	for _, id := range bad {
		if _, err := ParseTempGapID(id); !errors.Is(err, ErrNotTempGap) {
			t.Errorf("ParseTempGapID(%q) error = %v, want ErrNotTempGap", id, err)
		}
	}
}

func TestGapIntervalClip(t *testing.T) {
	g := GapInterval{TrackID: "video-1", StartFrames: 150, EndFrames: 200}
	c := g.Clip(timecode.Rate30)

	if !c.IsGap() {
		t.Errorf("IsGap() = false, want true")
	}
	if c.Start.Frames != 150 || c.Duration.Frames != 50 {
		t.Errorf("gap clip interval = %d+%d, want 150+50", c.Start.Frames, c.Duration.Frames)
	}
	if c.Kind != KindGap {
		t.Errorf("Kind = %v, want KindGap", c.Kind)
	}
}
