package camera

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

const (
	defaultRotateSpeed = 0.01
	defaultPanSpeed    = 0.002
	defaultZoomStep    = 0.05

	polarEpsilon = 1e-6
)

// Button identifies the pointer button of a drag.
type Button int

const (
	ButtonLeft   Button = 0
	ButtonMiddle Button = 1
	ButtonRight  Button = 2
)

// Pointer is a pointer position in canvas pixels.
type Pointer struct {
	X, Y   int
	Button Button
}

// OrbitBounds limits the orbit controls.
type OrbitBounds struct {
	MinDistance, MaxDistance     float64
	MinPolarAngle, MaxPolarAngle float64
	EnablePan                    bool
}

// DefaultOrbitBounds returns distance [1, 100], full polar range and
// panning enabled.
func DefaultOrbitBounds() OrbitBounds {
	return OrbitBounds{
		MinDistance:   1,
		MaxDistance:   100,
		MinPolarAngle: 0,
		MaxPolarAngle: math.Pi,
		EnablePan:     true,
	}
}

// Orbit rotates, zooms and pans a Camera around its Target.
type Orbit struct {
	cam *Camera
	OrbitBounds

	RotateSpeed float64
	PanSpeed    float64
	ZoomStep    float64

	drag *Pointer
}

// NewOrbit returns orbit controls for cam.
func NewOrbit(cam *Camera, b OrbitBounds) *Orbit {
	return &Orbit{
		cam:         cam,
		OrbitBounds: b,
		RotateSpeed: defaultRotateSpeed,
		PanSpeed:    defaultPanSpeed,
		ZoomStep:    defaultZoomStep,
	}
}

// Dragging reports whether a drag is in progress.
func (o *Orbit) Dragging() bool {
	return o.drag != nil
}

func (o *Orbit) DragStart(p Pointer) {
	o.drag = &p
}

func (o *Orbit) DragEnd(p Pointer) {
	if o.drag == nil {
		return
	}
	o.Drag(p)
	o.drag = nil
}

// Cancel ends a drag without applying further motion.
func (o *Orbit) Cancel() {
	o.drag = nil
}

// Drag applies the pointer motion since the previous event.
// The button pressed at DragStart selects rotation or panning.
func (o *Orbit) Drag(p Pointer) {
	if o.drag == nil {
		return
	}
	dx := float64(p.X - o.drag.X)
	dy := float64(p.Y - o.drag.Y)
	o.drag.X, o.drag.Y = p.X, p.Y

	switch o.drag.Button {
	case ButtonLeft:
		o.Rotate(-o.RotateSpeed*dx, -o.RotateSpeed*dy)
	case ButtonMiddle, ButtonRight:
		if o.EnablePan {
			o.Pan(dx, dy)
		}
	}
}

// Rotate changes azimuth and polar angle by the given radians.
func (o *Orbit) Rotate(dAzimuth, dPolar float64) {
	r, theta, phi := o.spherical()
	o.place(r, theta+dAzimuth, phi+dPolar)
}

// Zoom scales the distance to the target. Positive delta moves away.
func (o *Orbit) Zoom(delta float64) {
	r, theta, phi := o.spherical()
	s := 1 + o.ZoomStep*delta
	if s < 0.1 {
		s = 0.1
	}
	o.place(r*s, theta, phi)
}

// Pan moves the camera and its target in the view plane by a pixel delta.
func (o *Orbit) Pan(dx, dy float64) {
	f, ok := o.cam.Forward()
	if !ok {
		return
	}
	right := f.Cross(worldUp)
	if right.NormSq() < 1e-12 {
		right = mat.Vec3{1, 0, 0}
	}
	right = right.Normalized()
	up := right.Cross(f)

	dist := float64(o.cam.Target.Sub(o.cam.Position).Norm())
	s := float32(o.PanSpeed * dist)
	o.cam.Translate(right.Mul(-float32(dx) * s).Add(up.Mul(float32(dy) * s)))
}

// Update re-applies the distance and polar bounds around the current target.
// Call once per frame.
func (o *Orbit) Update() {
	r, theta, phi := o.spherical()
	o.place(r, theta, phi)
}

// spherical returns the camera offset from the target as
// radius, azimuth around +Y from +Z, and polar angle from +Y.
func (o *Orbit) spherical() (r, theta, phi float64) {
	d := o.cam.Position.Sub(o.cam.Target)
	x, y, z := float64(d[0]), float64(d[1]), float64(d[2])
	r = math.Sqrt(x*x + y*y + z*z)
	if r < 1e-9 {
		return 0, 0, math.Pi / 2
	}
	theta = math.Atan2(x, z)
	phi = math.Acos(clamp(y/r, -1, 1))
	return r, theta, phi
}

func (o *Orbit) place(r, theta, phi float64) {
	minPhi := math.Max(o.MinPolarAngle, polarEpsilon)
	maxPhi := math.Min(o.MaxPolarAngle, math.Pi-polarEpsilon)
	phi = clamp(phi, minPhi, maxPhi)
	r = clamp(r, o.MinDistance, o.MaxDistance)
	theta = math.Remainder(theta, 2*math.Pi)

	s := r * math.Sin(phi)
	off := mat.Vec3{
		float32(s * math.Sin(theta)),
		float32(r * math.Cos(phi)),
		float32(s * math.Cos(theta)),
	}
	o.cam.MoveTo(o.cam.Target.Add(off))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
