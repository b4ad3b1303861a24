package r3d

// Keyframe interpolation for the intro camera swoop. Only the two modes the
// editor needs: linear and Catmull-Rom cubic over scalar tracks.

type Keyframe struct {
	Time  float32
	Value float32
}

type KeyTrack []Keyframe

// segment finds the keyframe pair surrounding t and the normalized position
// inside it. Out-of-range times clamp to the track ends.
func (k KeyTrack) segment(t float32) (i int, s float32) {
	if len(k) == 0 {
		return 0, 0
	}
	if t <= k[0].Time {
		return 0, 0
	}
	last := len(k) - 1
	if t >= k[last].Time {
		return last - 1, 1
	}
	for i = 0; i < last-1; i++ {
		if t < k[i+1].Time {
			break
		}
	}
	span := k[i+1].Time - k[i].Time
	if span <= 0 {
		return i, 0
	}
	return i, (t - k[i].Time) / span
}

func (k KeyTrack) SampleLinear(t float32) float32 {
	switch len(k) {
	case 0:
		return 0
	case 1:
		return k[0].Value
	}
	i, s := k.segment(t)
	return k[i].Value + (k[i+1].Value-k[i].Value)*s
}

// SampleCubic samples with Catmull-Rom tangents, clamping the phantom
// endpoints to the track edges.
func (k KeyTrack) SampleCubic(t float32) float32 {
	if len(k) < 3 {
		return k.SampleLinear(t)
	}
	i, s := k.segment(t)

	p1 := k[i].Value
	p2 := k[i+1].Value
	p0 := p1
	if i > 0 {
		p0 = k[i-1].Value
	}
	p3 := p2
	if i+2 < len(k) {
		p3 = k[i+2].Value
	}

	s2 := s * s
	s3 := s2 * s
	return 0.5 * ((2 * p1) +
		(p2-p0)*s +
		(2*p0-5*p1+4*p2-p3)*s2 +
		(3*p1-3*p2+p3-p0)*s3)
}
