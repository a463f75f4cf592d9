package main

import (
	"math"

	webgl "github.com/seqsense/webgl-go"

	"github.com/seqsense/sceneviewer/camera"
)

type gestureMode int

const (
	gestureNone gestureMode = iota
	gestureRotate
	gesturePinch
	gesturePan
)

// gesture translates pointer events into orbit drags and pinch zoom.
// A single pointer drags with its own button, two pointers pinch and
// three pointers pan.
type gesture struct {
	pointers map[int]webgl.PointerEvent
	pointer0 webgl.PointerEvent

	onDragStart func(camera.Pointer)
	onDrag      func(camera.Pointer)
	onDragEnd   func(camera.Pointer)
	onZoom      func(delta float64)

	mode      gestureMode
	btn       camera.Button
	distance0 float64
}

func newGesture() *gesture {
	return &gesture{pointers: make(map[int]webgl.PointerEvent)}
}

func orbitPointer(e webgl.PointerEvent, b camera.Button) camera.Pointer {
	return camera.Pointer{X: e.OffsetX, Y: e.OffsetY, Button: b}
}

func (g *gesture) button() camera.Button {
	if g.mode == gesturePan {
		return camera.ButtonMiddle
	}
	return g.btn
}

func (g *gesture) pinchDistance() float64 {
	var pp []webgl.PointerEvent
	for id := range g.pointers {
		pp = append(pp, g.pointers[id])
	}
	return math.Hypot(float64(pp[0].OffsetX-pp[1].OffsetX), float64(pp[0].OffsetY-pp[1].OffsetY))
}

func (g *gesture) pointerUp(e webgl.PointerEvent) {
	if _, ok := g.pointers[e.PointerId]; !ok {
		return
	}
	e.PreventDefault()
	e.StopPropagation()

	delete(g.pointers, e.PointerId)
	if len(g.pointers) == 0 {
		if e.IsPrimary {
			g.pointer0 = e
		}
		switch g.mode {
		case gestureRotate, gesturePan:
			g.onDragEnd(orbitPointer(g.pointer0, g.button()))
		}
		g.mode = gestureNone
	}
}

func (g *gesture) pointerMove(e webgl.PointerEvent) {
	if _, ok := g.pointers[e.PointerId]; !ok {
		return
	}
	e.PreventDefault()
	e.StopPropagation()
	g.pointers[e.PointerId] = e

	if g.mode == gestureNone {
		switch len(g.pointers) {
		case 1:
			g.mode = gestureRotate
			g.onDragStart(orbitPointer(g.pointer0, g.button()))
		case 2:
			g.mode = gesturePinch
		case 3:
			g.mode = gesturePan
			g.onDragStart(orbitPointer(g.pointer0, g.button()))
		}
	}
	switch g.mode {
	case gestureRotate, gesturePan:
		if e.IsPrimary {
			g.onDrag(orbitPointer(e, g.button()))
		}
	case gesturePinch:
		if len(g.pointers) != 2 {
			break
		}
		d := g.pinchDistance()
		g.onZoom((g.distance0 - d) / 10)
		g.distance0 = d
	}
	if e.IsPrimary {
		g.pointer0 = e
	}
}

func (g *gesture) pointerDown(e webgl.PointerEvent) {
	e.PreventDefault()
	e.StopPropagation()
	g.pointers[e.PointerId] = e

	switch len(g.pointers) {
	case 1:
		g.pointer0 = e
		g.btn = camera.ButtonLeft
		if e.Button > 0 {
			g.btn = camera.Button(e.Button)
		}
	case 2:
		g.distance0 = g.pinchDistance()
	}
}
