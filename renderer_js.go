package main

import (
	"fmt"

	"github.com/seqsense/pcgol/mat"
	webgl "github.com/seqsense/webgl-go"
	"go.uber.org/zap"

	"github.com/seqsense/sceneviewer/scene"
)

const pointSizeBase = 60.0

type renderable struct {
	scene.Drawable
	buf webgl.Buffer
}

type pointUniforms struct {
	model, view, projection webgl.Location
	yMin, yRange            webgl.Location
	pointSize               webgl.Location
	ambient                 webgl.Location
	lightPosition           webgl.Location
	lightIntensity          webgl.Location
	placeholder             webgl.Location
}

type renderer struct {
	gl  *webgl.WebGL
	log *zap.Logger

	program   webgl.Program
	uniforms  pointUniforms
	lights    scene.Lights
	drawables []renderable

	bgProgram  webgl.Program
	bgInvVP    webgl.Location
	bgSampler  webgl.Location
	bgBuf      webgl.Buffer
	bgTexture  webgl.Texture
	background bool

	width, height int
}

func newRenderer(gl *webgl.WebGL, lights scene.Lights, log *zap.Logger) (*renderer, error) {
	program, err := buildProgram(gl, vsSource, fsSource)
	if err != nil {
		return nil, fmt.Errorf("point program: %w", err)
	}
	bgProgram, err := buildProgram(gl, vsBackgroundSource, fsBackgroundSource)
	if err != nil {
		return nil, fmt.Errorf("background program: %w", err)
	}

	r := &renderer{
		gl:      gl,
		log:     log,
		program: program,
		uniforms: pointUniforms{
			model:          gl.GetUniformLocation(program, "uModelMatrix"),
			view:           gl.GetUniformLocation(program, "uViewMatrix"),
			projection:     gl.GetUniformLocation(program, "uProjectionMatrix"),
			yMin:           gl.GetUniformLocation(program, "uYMin"),
			yRange:         gl.GetUniformLocation(program, "uYRange"),
			pointSize:      gl.GetUniformLocation(program, "uPointSizeBase"),
			ambient:        gl.GetUniformLocation(program, "uAmbient"),
			lightPosition:  gl.GetUniformLocation(program, "uLightPosition"),
			lightIntensity: gl.GetUniformLocation(program, "uLightIntensity"),
			placeholder:    gl.GetUniformLocation(program, "uPlaceholder"),
		},
		lights:    lights,
		bgProgram: bgProgram,
		bgInvVP:   gl.GetUniformLocation(bgProgram, "uInvViewProjection"),
		bgSampler: gl.GetUniformLocation(bgProgram, "uSampler"),
		bgBuf:     gl.CreateBuffer(),
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.bgBuf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer([]float32{
		-1, -1,
		1, -1,
		-1, 1,
		1, 1,
	}), gl.STATIC_DRAW)

	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.ClearDepth(1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.EnableVertexAttribArray(0)

	return r, nil
}

// SetDrawables uploads the point data of ds.
func (r *renderer) SetDrawables(ds []scene.Drawable) {
	gl := r.gl
	r.drawables = r.drawables[:0]
	for _, d := range ds {
		buf := gl.CreateBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, buf)
		gl.BufferData(gl.ARRAY_BUFFER, webgl.ByteArrayBuffer(d.Cloud.Data), gl.STATIC_DRAW)
		r.drawables = append(r.drawables, renderable{Drawable: d, buf: buf})
	}
	r.log.Debug("drawables uploaded", zap.Int("n", len(r.drawables)))
}

// SetEnvironment uploads the equirectangular backdrop image.
func (r *renderer) SetEnvironment(img envImage) {
	gl := r.gl
	r.bgTexture = gl.CreateTexture()
	gl.BindTexture(gl.TEXTURE_2D, r.bgTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, gl.RGBA, gl.UNSIGNED_BYTE, img.Interface())
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	r.background = true
	r.log.Debug("environment uploaded", zap.Int("width", img.Width()), zap.Int("height", img.Height()))
}

// Resize matches the drawing buffer to the canvas client size.
func (r *renderer) Resize() (width, height int) {
	gl := r.gl
	w, h := gl.Canvas.ClientWidth(), gl.Canvas.ClientHeight()
	if w != r.width || h != r.height {
		r.width, r.height = w, h
		gl.Canvas.SetWidth(w)
		gl.Canvas.SetHeight(h)
		gl.Viewport(0, 0, w, h)
	}
	return r.width, r.height
}

func (r *renderer) Draw(view, projection mat.Mat4) {
	gl := r.gl
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.background {
		rot := view
		rot[12], rot[13], rot[14] = 0, 0, 0

		gl.Disable(gl.DEPTH_TEST)
		gl.UseProgram(r.bgProgram)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.bgTexture)
		gl.Uniform1i(r.bgSampler, 0)
		gl.UniformMatrix4fv(r.bgInvVP, false, projection.Mul(rot).Inv())
		gl.BindBuffer(gl.ARRAY_BUFFER, r.bgBuf)
		gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, 0)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
		gl.Enable(gl.DEPTH_TEST)
	}

	u := r.uniforms
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(u.view, false, view)
	gl.UniformMatrix4fv(u.projection, false, projection)
	gl.Uniform1f(u.pointSize, pointSizeBase)
	gl.Uniform1f(u.ambient, r.lights.Ambient.Intensity)
	gl.Uniform3fv(u.lightPosition, r.lights.Directional.Position.Vec3())
	gl.Uniform1f(u.lightIntensity, r.lights.Directional.Intensity)

	for _, d := range r.drawables {
		yRange := d.YMax - d.YMin
		if yRange <= 0 {
			yRange = 1
		}
		placeholder := 0
		if d.Placeholder {
			placeholder = 1
		}
		gl.UniformMatrix4fv(u.model, false, d.Model)
		gl.Uniform1f(u.yMin, d.YMin)
		gl.Uniform1f(u.yRange, yRange)
		gl.Uniform1i(u.placeholder, placeholder)

		gl.BindBuffer(gl.ARRAY_BUFFER, d.buf)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, d.Cloud.Stride(), d.PositionOffset())
		gl.DrawArrays(gl.POINTS, 0, d.Cloud.Points)
	}
}
