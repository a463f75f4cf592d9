package main

import (
	"github.com/seqsense/pcgol/mat"
	"go.uber.org/zap"

	"github.com/seqsense/sceneviewer/camera"
	"github.com/seqsense/sceneviewer/input"
	"github.com/seqsense/sceneviewer/scene"
)

// viewer owns the camera and the composed scene. Keyboard and orbit
// controllers hold the same *camera.Camera while mounted.
type viewer struct {
	scene *scene.Scene
	log   *zap.Logger

	cam   *camera.Camera
	nav   *camera.Navigator
	orbit *camera.Orbit
	wheel camera.WheelNormalizer
	keys  *input.Dispatcher

	drawables []scene.Drawable
	composed  bool
	detach    func()
}

func newViewer(sc *scene.Scene, log *zap.Logger) *viewer {
	cam := sc.NewCamera()
	return &viewer{
		scene: sc,
		log:   log,
		cam:   cam,
		nav:   camera.NewNavigator(cam, sc.Camera.Speed),
		orbit: camera.NewOrbit(cam, sc.Orbit.Bounds()),
		keys:  input.NewDispatcher(),
	}
}

// Mount composes the scene on first use and starts listening to keys.
// Mounting a mounted viewer does nothing.
func (v *viewer) Mount(l scene.Loader) []scene.Drawable {
	if v.detach != nil {
		return v.drawables
	}
	if !v.composed {
		v.drawables = scene.Compose(v.scene.Instances, l, v.log)
		v.composed = true
	}
	v.detach = v.nav.Attach(v.keys)
	v.log.Info("viewer mounted", zap.Int("instances", len(v.drawables)))
	return v.drawables
}

// Unmount stops listening to keys. Unmounting twice does nothing.
func (v *viewer) Unmount() {
	if v.detach == nil {
		return
	}
	v.detach()
	v.detach = nil
	v.orbit.Cancel()
	v.log.Info("viewer unmounted")
}

func (v *viewer) Mounted() bool {
	return v.detach != nil
}

// Key delivers a keydown key symbol to the key subscribers.
func (v *viewer) Key(key string) {
	v.keys.Dispatch(key)
	if camera.CommandFromKey(key) == camera.CommandNone {
		v.log.Debug("key ignored", zap.String("key", key))
	}
}

func (v *viewer) PointerDown(p camera.Pointer) {
	if v.Mounted() {
		v.orbit.DragStart(p)
	}
}

func (v *viewer) PointerMove(p camera.Pointer) {
	v.orbit.Drag(p)
}

func (v *viewer) PointerUp(p camera.Pointer) {
	v.orbit.DragEnd(p)
}

// Wheel zooms by a raw wheel delta.
func (v *viewer) Wheel(delta float64) {
	if !v.Mounted() {
		return
	}
	d, _ := v.wheel.Normalize(delta)
	v.orbit.Zoom(d)
}

// Frame applies the orbit bounds and returns the view and projection
// matrices for a viewport of the given size.
func (v *viewer) Frame(width, height int) (view, projection mat.Mat4) {
	v.orbit.Update()
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return v.cam.ViewMatrix(), v.cam.ProjectionMatrix(aspect)
}

// Reset restores the initial camera in place.
func (v *viewer) Reset() {
	initial := v.scene.NewCamera()
	v.cam.Position = initial.Position
	v.cam.Target = initial.Target
	v.cam.FOV = initial.FOV
	v.orbit.Cancel()
}
