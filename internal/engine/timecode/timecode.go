// Package timecode provides exact rational time values for timeline math.
//
// A Value is a frame count paired with a frame rate expressed as an exact
// fraction, so edits on 29.97 and 23.976 material stay frame-accurate with
// no floating point anywhere in the arithmetic. All operations between two
// values require matching rates; mixing rates is a caller bug and is
// reported, never silently converted.
package timecode

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Errors returned by timecode operations.
var (
	// ErrRateMismatch indicates arithmetic between values of different rates.
	ErrRateMismatch = errors.New("frame rate mismatch")

	// ErrInvalidRate indicates a rate with a zero numerator or denominator.
	ErrInvalidRate = errors.New("invalid frame rate")
)

// Rate is a frame rate expressed as an exact fraction of frames per second.
type Rate struct {
	Num uint32 `json:"num"`
	Den uint32 `json:"den"`
}

// Common broadcast and film rates.
var (
	Rate23976 = Rate{Num: 24000, Den: 1001}
	Rate24    = Rate{Num: 24, Den: 1}
	Rate25    = Rate{Num: 25, Den: 1}
	Rate2997  = Rate{Num: 30000, Den: 1001}
	Rate30    = Rate{Num: 30, Den: 1}
	Rate50    = Rate{Num: 50, Den: 1}
	Rate5994  = Rate{Num: 60000, Den: 1001}
	Rate60    = Rate{Num: 60, Den: 1}
)

// Valid reports whether the rate has a nonzero numerator and denominator.
func (r Rate) Valid() bool {
	return r.Num > 0 && r.Den > 0
}

// Equal reports whether two rates describe the same frames-per-second value.
// Comparison is by cross product, so 30000/1001 and 60000/2002 are equal.
func (r Rate) Equal(o Rate) bool {
	return uint64(r.Num)*uint64(o.Den) == uint64(o.Num)*uint64(r.Den)
}

// FramesPerSecond returns the rate rounded up to whole frames per second.
// Useful for sizing windows measured in seconds.
func (r Rate) FramesPerSecond() int64 {
	if r.Den == 0 {
		return 0
	}
	return int64((r.Num + r.Den - 1) / r.Den)
}

// String returns the rate as "num/den".
func (r Rate) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Value is an exact point or span on a timeline: a signed frame count at a
// given rate. Committed clip state never holds negative values; negatives
// appear only transiently during delta math.
type Value struct {
	Frames int64
	Rate   Rate
}

// New creates a value from a frame count and rate.
func New(frames int64, rate Rate) Value {
	return Value{Frames: frames, Rate: rate}
}

// Zero returns the zero value at the given rate.
func Zero(rate Rate) Value {
	return Value{Rate: rate}
}

// Add returns v + o. The rates must match.
func (v Value) Add(o Value) (Value, error) {
	if !v.Rate.Equal(o.Rate) {
		return Value{}, fmt.Errorf("add %s + %s: %w", v, o, ErrRateMismatch)
	}
	return Value{Frames: v.Frames + o.Frames, Rate: v.Rate}, nil
}

// Sub returns v - o. The rates must match.
func (v Value) Sub(o Value) (Value, error) {
	if !v.Rate.Equal(o.Rate) {
		return Value{}, fmt.Errorf("sub %s - %s: %w", v, o, ErrRateMismatch)
	}
	return Value{Frames: v.Frames - o.Frames, Rate: v.Rate}, nil
}

// AddFrames returns a value shifted by n frames at the same rate.
func (v Value) AddFrames(n int64) Value {
	return Value{Frames: v.Frames + n, Rate: v.Rate}
}

// Neg returns the negation of v.
func (v Value) Neg() Value {
	return Value{Frames: -v.Frames, Rate: v.Rate}
}

// Cmp compares v against o: -1 if v < o, 0 if equal, 1 if v > o.
// The rates must match.
func (v Value) Cmp(o Value) (int, error) {
	if !v.Rate.Equal(o.Rate) {
		return 0, fmt.Errorf("compare %s vs %s: %w", v, o, ErrRateMismatch)
	}
	switch {
	case v.Frames < o.Frames:
		return -1, nil
	case v.Frames > o.Frames:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal reports whether v and o are the same instant at the same rate.
func (v Value) Equal(o Value) bool {
	return v.Frames == o.Frames && v.Rate.Equal(o.Rate)
}

// IsZero reports whether the frame count is zero.
func (v Value) IsZero() bool {
	return v.Frames == 0
}

// IsNegative reports whether the frame count is below zero.
func (v Value) IsNegative() bool {
	return v.Frames < 0
}

// ClampZero returns v with negative frame counts raised to zero.
func (v Value) ClampZero() Value {
	if v.Frames < 0 {
		return Value{Rate: v.Rate}
	}
	return v
}

// Seconds returns the approximate wall-clock duration of v.
// It is for display and logging only; all edit math stays in frames.
func (v Value) Seconds() float64 {
	if !v.Rate.Valid() {
		return 0
	}
	return float64(v.Frames) * float64(v.Rate.Den) / float64(v.Rate.Num)
}

// String returns the value as "frames@num/den".
func (v Value) String() string {
	return fmt.Sprintf("%d@%s", v.Frames, v.Rate)
}

// valueJSON is the wire form of a Value.
type valueJSON struct {
	Frames int64  `json:"frames"`
	Num    uint32 `json:"num"`
	Den    uint32 `json:"den"`
}

// MarshalJSON encodes the value as {"frames":n,"num":n,"den":n}.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(valueJSON{Frames: v.Frames, Num: v.Rate.Num, Den: v.Rate.Den})
}

// UnmarshalJSON decodes the wire form and validates the rate.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w valueJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decoding timecode value: %w", err)
	}
	rate := Rate{Num: w.Num, Den: w.Den}
	if !rate.Valid() {
		return fmt.Errorf("decoding timecode value %d@%d/%d: %w", w.Frames, w.Num, w.Den, ErrInvalidRate)
	}
	v.Frames = w.Frames
	v.Rate = rate
	return nil
}
