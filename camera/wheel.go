package camera

import (
	"math"
	"time"
)

const (
	wheelWarmup       = 4
	wheelBinaryRepeat = 4
	wheelPeakInitial  = 10
	wheelPeakDecay    = 0.95
	wheelMaxInterval  = 100 * time.Millisecond
)

// WheelNormalizer converts raw wheel deltas into zoom steps.
//
// Mice with notched wheels repeat one fixed delta and are mapped to ±1 per
// notch. Touchpads and smooth wheels are scaled by a decaying peak rate,
// so a typical gesture yields a few steps regardless of the device's
// delta unit.
type WheelNormalizer struct {
	events int

	lastAbs float64
	repeats int
	binary  bool

	peak float64
	prev time.Time
	acc  float64

	now func() time.Time
}

// Ready reports whether enough events were seen to classify the device.
func (n *WheelNormalizer) Ready() bool {
	return n.events > wheelWarmup
}

// Normalize returns the zoom step for a raw delta and whether the device
// classification is settled.
func (n *WheelNormalizer) Normalize(d float64) (float64, bool) {
	if n.events <= wheelWarmup {
		n.events++
	}
	abs := math.Abs(d)
	if abs == 0 {
		return 0, n.Ready()
	}

	if abs == n.lastAbs {
		n.repeats++
	} else {
		n.repeats = 0
	}
	n.lastAbs = abs

	binary := n.repeats > wheelBinaryRepeat
	if binary != n.binary || n.peak == 0 {
		n.peak = wheelPeakInitial
	}
	n.binary = binary

	n.track(d)

	if n.binary {
		return math.Copysign(1, d), n.Ready()
	}
	return d * 250 / n.peak, n.Ready()
}

// track updates the decaying peak of the delta rate.
func (n *WheelNormalizer) track(d float64) {
	clock := n.now
	if clock == nil {
		clock = time.Now
	}
	t := clock()
	dt := t.Sub(n.prev)
	n.acc += d
	if dt <= 0 {
		return
	}
	if dt > wheelMaxInterval {
		dt = wheelMaxInterval
	}
	rate := math.Abs(n.acc / dt.Seconds())
	n.acc = 0
	n.prev = t

	if rate > n.peak {
		// Average to damp single spikes.
		n.peak = (n.peak + rate) / 2
	}
	n.peak *= wheelPeakDecay
	if n.peak < 1 {
		n.peak = 1
	}
}
