package main

import (
	"context"
	"errors"
	"io"
	"syscall/js"
	"time"

	webgl "github.com/seqsense/webgl-go"
	"go.uber.org/zap"

	"github.com/seqsense/sceneviewer/camera"
	"github.com/seqsense/sceneviewer/input"
	"github.com/seqsense/sceneviewer/logger"
	"github.com/seqsense/sceneviewer/scene"
)

const frameInterval = time.Second / 30

type consoleRequest struct {
	line    string
	resolve func(string)
	reject  func(error)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "mapCanvas")
	sinks := []io.Writer{logDiv(doc.Call("getElementById", "log"))}

	logger.InitWithOptions(logger.Options{Level: "info", Console: true, Sinks: sinks})
	defer logger.Sync()

	sceneURL := ""
	if attr := canvas.Call("getAttribute", "data-scene"); attr.Type() == js.TypeString {
		sceneURL = attr.String()
	}
	sc := readScene(ctx, sceneURL)
	logger.InitWithOptions(logger.Options{Level: sc.Logging.Level, Console: true, Sinks: sinks})
	log := logger.Named("viewer")

	gl, err := webgl.New(canvas)
	if err != nil {
		log.Error("failed to initialize WebGL", zap.Error(err))
		return
	}
	showDebugInfo(gl, log)

	r, err := newRenderer(gl, sc.Lights, log)
	if err != nil {
		log.Error("failed to initialize renderer", zap.Error(err))
		return
	}

	if sc.Environment.Background && sc.Environment.Image != "" {
		img, err := loadImage(ctx, resolvePath(sceneURL, sc.Environment.Image))
		if err != nil {
			log.Warn("environment unavailable",
				zap.String("image", sc.Environment.Image),
				zap.Error(err),
			)
		} else {
			r.SetEnvironment(img)
		}
	}

	v := newViewer(sc, log)
	con := &console{v: v}
	r.SetDrawables(v.Mount(&fetchLoader{ctx: ctx, base: sceneURL}))

	chKey := make(chan string, 16)
	releaseKeys := input.ListenKeyDown(func(key string) {
		select {
		case chKey <- key:
		case <-ctx.Done():
		}
	})
	defer releaseKeys()

	chUnmount := make(chan struct{}, 1)
	unmount := func() {
		select {
		case chUnmount <- struct{}{}:
		default:
		}
	}
	releasePageHide := input.ListenPageHide(unmount)
	defer releasePageHide()

	unmountFunc := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		unmount()
		return nil
	})
	defer unmountFunc.Release()
	js.Global().Set("sceneViewerUnmount", unmountFunc)
	defer js.Global().Delete("sceneViewerUnmount")

	chCommand := make(chan consoleRequest)
	commandFunc := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 || args[0].Type() != js.TypeString {
			return js.Global().Get("Promise").Call("reject", errorToJS(errArgumentNumber))
		}
		line := args[0].String()
		var executor js.Func
		executor = js.FuncOf(func(this js.Value, pargs []js.Value) interface{} {
			resolve, reject := pargs[0], pargs[1]
			executor.Release()
			go func() {
				req := consoleRequest{
					line:    line,
					resolve: func(s string) { resolve.Invoke(s) },
					reject:  func(err error) { reject.Invoke(errorToJS(err)) },
				}
				select {
				case chCommand <- req:
				case <-ctx.Done():
					req.reject(ctx.Err())
				}
			}()
			return nil
		})
		return js.Global().Get("Promise").New(executor)
	})
	defer commandFunc.Release()
	js.Global().Set("sceneViewerCommand", commandFunc)
	defer js.Global().Delete("sceneViewerCommand")

	chWheel := make(chan webgl.WheelEvent, 16)
	gl.Canvas.OnWheel(func(e webgl.WheelEvent) {
		e.PreventDefault()
		e.StopPropagation()
		select {
		case chWheel <- e:
		case <-ctx.Done():
		}
	})
	type pointerEvent struct {
		webgl.PointerEvent
		fn func(*gesture, webgl.PointerEvent)
	}
	chPointer := make(chan pointerEvent, 16)
	onPointer := func(fn func(*gesture, webgl.PointerEvent)) func(webgl.PointerEvent) {
		return func(e webgl.PointerEvent) {
			select {
			case chPointer <- pointerEvent{PointerEvent: e, fn: fn}:
			case <-ctx.Done():
			}
		}
	}
	gl.Canvas.OnPointerDown(onPointer((*gesture).pointerDown))
	gl.Canvas.OnPointerMove(onPointer((*gesture).pointerMove))
	gl.Canvas.OnPointerUp(onPointer((*gesture).pointerUp))
	gl.Canvas.OnContextMenu(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
	})
	chContextLost := make(chan struct{}, 1)
	gl.Canvas.OnWebGLContextLost(func(e webgl.WebGLContextEvent) {
		select {
		case chContextLost <- struct{}{}:
		default:
		}
	})

	g := newGesture()
	g.onDragStart = func(p camera.Pointer) {
		v.PointerDown(p)
		if v.orbit.Dragging() {
			setCursor(canvas, cursorGrabbing)
		}
	}
	g.onDrag = v.PointerMove
	g.onDragEnd = func(p camera.Pointer) {
		v.PointerUp(p)
		setCursor(canvas, cursorGrab)
	}
	g.onZoom = v.Wheel
	setCursor(canvas, cursorGrab)

	tick := time.NewTicker(frameInterval)
	defer tick.Stop()

	log.Info("viewer started", zap.String("scene", sceneURL))
	for {
		view, projection := v.Frame(r.Resize())
		r.Draw(view, projection)

		select {
		case key := <-chKey:
			v.Key(key)
		case e := <-chWheel:
			v.Wheel(e.DeltaY)
		case e := <-chPointer:
			e.fn(g, e.PointerEvent)
		case req := <-chCommand:
			res, err := con.Run(req.line)
			if err != nil {
				log.Debug("command failed", zap.String("command", req.line), zap.Error(err))
				req.reject(err)
				break
			}
			req.resolve(res)
		case <-chContextLost:
			log.Error("stopping viewer", zap.Error(errContextLostEvent))
			v.Unmount()
			setCursor(canvas, cursorAuto)
			return
		case <-chUnmount:
			v.Unmount()
			setCursor(canvas, cursorAuto)
			return
		case <-tick.C:
		}
	}
}

// readScene fetches the scene document, falling back to the built-in
// scene when it is unavailable or invalid.
func readScene(ctx context.Context, url string) *scene.Scene {
	if url == "" {
		return scene.Default()
	}
	b, err := fetchGet(ctx, url)
	if err == nil {
		var sc *scene.Scene
		if sc, err = scene.Parse(b); err == nil {
			return sc
		}
	}
	if errors.Is(err, context.Canceled) {
		return scene.Default()
	}
	logger.Warn("scene unavailable, using the default scene",
		zap.String("url", url),
		zap.Error(err),
	)
	return scene.Default()
}
