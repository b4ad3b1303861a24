package r3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var swoopTrack = KeyTrack{
	{Time: 0, Value: 120},
	{Time: 0.9, Value: 15},
	{Time: 1.5, Value: 0},
}

var linearTests = []struct {
	t, want float32
}{
	{-1, 120}, // clamps before the start
	{0, 120},
	{0.45, 67.5},
	{0.9, 15},
	{1.2, 7.5},
	{1.5, 0},
	{99, 0}, // clamps past the end
}

func TestSampleLinear(t *testing.T) {
	for _, test := range linearTests {
		got := swoopTrack.SampleLinear(test.t)
		if !mgl32.FloatEqualThreshold(got, test.want, eps) {
			t.Errorf("SampleLinear(%v)=%v; expected %v", test.t, got, test.want)
		}
	}
}

// Cubic interpolation must still pass through every knot and respect the
// clamp behavior at the track edges.
func TestSampleCubicKnots(t *testing.T) {
	for _, key := range swoopTrack {
		got := swoopTrack.SampleCubic(key.Time)
		if !mgl32.FloatEqualThreshold(got, key.Value, eps) {
			t.Errorf("SampleCubic(%v)=%v; expected knot value %v", key.Time, got, key.Value)
		}
	}
	if got := swoopTrack.SampleCubic(-5); got != 120 {
		t.Errorf("SampleCubic(-5)=%v; expected clamp to 120", got)
	}
	if got := swoopTrack.SampleCubic(100); got != 0 {
		t.Errorf("SampleCubic(100)=%v; expected clamp to 0", got)
	}
}

// A monotone decreasing track must stay inside the knot envelope between
// samples; the swoop never overshoots past its target.
func TestSampleCubicEnvelope(t *testing.T) {
	for ft := float32(0); ft <= 1.5; ft += 0.05 {
		got := swoopTrack.SampleCubic(ft)
		if got < -eps || got > 120+eps {
			t.Errorf("SampleCubic(%v)=%v; outside [0,120]", ft, got)
		}
	}
}

func TestSampleShortTracks(t *testing.T) {
	if got := (KeyTrack{}).SampleLinear(1); got != 0 {
		t.Errorf("empty track sample=%v; expected 0", got)
	}
	single := KeyTrack{{Time: 0, Value: 7}}
	if got := single.SampleCubic(3); got != 7 {
		t.Errorf("single key sample=%v; expected 7", got)
	}
	pair := KeyTrack{{Time: 0, Value: 0}, {Time: 2, Value: 10}}
	if got := pair.SampleCubic(1); !mgl32.FloatEqualThreshold(got, 5, eps) {
		t.Errorf("two key cubic falls back to linear: got %v; expected 5", got)
	}
}
