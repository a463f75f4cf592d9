// Package camera implements the shared scene camera and the controllers
// mutating it: keyboard navigation and orbit controls.
package camera

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

const (
	// DefaultFOV is the vertical field of view in degrees.
	DefaultFOV = 50.0

	defaultNear = 0.1
	defaultFar  = 1000.0
)

// worldUp is the world up vector. It never changes.
var worldUp = mat.Vec3{0, 1, 0}

// Camera is a perspective camera looking from Position toward Target.
// A single Camera is shared by every controller for the lifetime of the
// viewer.
type Camera struct {
	Position mat.Vec3
	Target   mat.Vec3

	// FOV is the vertical field of view in degrees.
	FOV       float32
	Near, Far float32
}

// New returns a camera at position looking at target.
func New(position, target mat.Vec3, fov float32) *Camera {
	if fov <= 0 || fov >= 180 {
		fov = DefaultFOV
	}
	return &Camera{
		Position: position,
		Target:   target,
		FOV:      fov,
		Near:     defaultNear,
		Far:      defaultFar,
	}
}

// Up returns the world up vector.
func (c *Camera) Up() mat.Vec3 {
	return worldUp
}

// Forward returns the unit facing direction.
// ok is false if Position and Target coincide.
func (c *Camera) Forward() (mat.Vec3, bool) {
	d := c.Target.Sub(c.Position)
	n := d.Norm()
	if n < 1e-9 || !isFinite(d) {
		return mat.Vec3{0, 0, -1}, false
	}
	return d.Mul(1 / n), true
}

// Translate moves both Position and Target by d.
// Non-finite results are rejected and the camera is left unchanged.
func (c *Camera) Translate(d mat.Vec3) bool {
	p, t := c.Position.Add(d), c.Target.Add(d)
	if !isFinite(p) || !isFinite(t) {
		return false
	}
	c.Position, c.Target = p, t
	return true
}

// MoveTo sets Position, keeping the Target.
func (c *Camera) MoveTo(p mat.Vec3) bool {
	if !isFinite(p) {
		return false
	}
	c.Position = p
	return true
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() mat.Mat4 {
	f, _ := c.Forward()
	r := f.Cross(worldUp)
	if r.NormSq() < 1e-12 {
		// Looking straight up or down.
		r = mat.Vec3{1, 0, 0}
	}
	r = r.Normalized()
	u := r.Cross(f)
	e := c.Position

	return mat.Mat4{
		r[0], u[0], -f[0], 0,
		r[1], u[1], -f[1], 0,
		r[2], u[2], -f[2], 0,
		-r.Dot(e), -u.Dot(e), f.Dot(e), 1,
	}
}

// ProjectionMatrix returns the perspective projection for the given
// viewport aspect ratio (width / height).
func (c *Camera) ProjectionMatrix(aspect float32) mat.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	// mat.Perspective takes the horizontal angle.
	v := float64(c.FOV) * math.Pi / 180
	h := 2 * math.Atan(float64(aspect)*math.Tan(v/2))
	return mat.Perspective(float32(h), aspect, c.Near, c.Far)
}

func isFinite(v mat.Vec3) bool {
	for _, a := range v {
		f := float64(a)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
