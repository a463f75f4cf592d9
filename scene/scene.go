// Package scene describes the static scene: camera, lights, environment,
// orbit bounds and the placed model instances.
package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"math"

	"github.com/seqsense/pcgol/mat"
	"gopkg.in/yaml.v3"

	"github.com/seqsense/sceneviewer/camera"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	errVectorLength = errors.New("vector must have 3 elements")
	errNonFinite    = errors.New("value must be finite")
)

// Vector is a 3D vector written as a YAML sequence [x, y, z].
type Vector mat.Vec3

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Vector) UnmarshalYAML(n *yaml.Node) error {
	var a []float32
	if err := n.Decode(&a); err != nil {
		return err
	}
	if len(a) != 3 {
		return fmt.Errorf("line %d: %w", n.Line, errVectorLength)
	}
	*v = Vector{a[0], a[1], a[2]}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Vector) MarshalYAML() (interface{}, error) {
	return []float32{v[0], v[1], v[2]}, nil
}

// Vec3 returns v as mat.Vec3.
func (v Vector) Vec3() mat.Vec3 {
	return mat.Vec3(v)
}

// Scale is a per-axis scale written either as a scalar or as [x, y, z].
type Scale mat.Vec3

// Uniform returns a scale of s on every axis.
func Uniform(s float32) Scale {
	return Scale{s, s, s}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Scale) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		var f float32
		if err := n.Decode(&f); err != nil {
			return err
		}
		*s = Uniform(f)
		return nil
	}
	var v Vector
	if err := v.UnmarshalYAML(n); err != nil {
		return err
	}
	*s = Scale(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Scale) MarshalYAML() (interface{}, error) {
	if s[0] == s[1] && s[1] == s[2] {
		return s[0], nil
	}
	return []float32{s[0], s[1], s[2]}, nil
}

// Instance is a model placed in the scene.
type Instance struct {
	Name     string `yaml:"name"`
	Model    string `yaml:"model"`
	Position Vector `yaml:"position"`
	Scale    Scale  `yaml:"scale"`
}

// Transform returns the model-to-world matrix.
func (i Instance) Transform() mat.Mat4 {
	p, s := i.Position, i.Scale
	return mat.Translate(p[0], p[1], p[2]).MulAffine(mat.Scale(s[0], s[1], s[2]))
}

// Camera holds the initial camera and the keyboard step.
type Camera struct {
	Position Vector  `yaml:"position"`
	Target   Vector  `yaml:"target"`
	FOV      float32 `yaml:"fov"`
	Speed    float32 `yaml:"speed"`
}

// AmbientLight lights every point uniformly.
type AmbientLight struct {
	Intensity float32 `yaml:"intensity"`
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Position  Vector  `yaml:"position"`
	Intensity float32 `yaml:"intensity"`
}

// Lights of the scene.
type Lights struct {
	Ambient     AmbientLight     `yaml:"ambient"`
	Directional DirectionalLight `yaml:"directional"`
}

// Environment is the panoramic backdrop.
type Environment struct {
	Image      string `yaml:"image"`
	Background bool   `yaml:"background"`
}

// Orbit holds the pointer control bounds.
type Orbit struct {
	MinDistance   float64 `yaml:"min_distance"`
	MaxDistance   float64 `yaml:"max_distance"`
	MinPolarAngle float64 `yaml:"min_polar_angle"`
	MaxPolarAngle float64 `yaml:"max_polar_angle"`
	EnablePan     bool    `yaml:"enable_pan"`
}

// Bounds converts o to camera.OrbitBounds.
func (o Orbit) Bounds() camera.OrbitBounds {
	return camera.OrbitBounds{
		MinDistance:   o.MinDistance,
		MaxDistance:   o.MaxDistance,
		MinPolarAngle: o.MinPolarAngle,
		MaxPolarAngle: o.MaxPolarAngle,
		EnablePan:     o.EnablePan,
	}
}

// Logging configures the viewer log output.
type Logging struct {
	Level string `yaml:"level"`
}

// Scene is the whole startup configuration.
type Scene struct {
	Camera      Camera      `yaml:"camera"`
	Lights      Lights      `yaml:"lights"`
	Environment Environment `yaml:"environment"`
	Orbit       Orbit       `yaml:"orbit"`
	Instances   []Instance  `yaml:"instances"`
	Logging     Logging     `yaml:"logging"`
}

// base returns the values used for keys missing from a scene file.
func base() *Scene {
	b := camera.DefaultOrbitBounds()
	return &Scene{
		Camera: Camera{
			Position: Vector{5, 3, 10},
			FOV:      camera.DefaultFOV,
			Speed:    camera.DefaultSpeed,
		},
		Lights: Lights{
			Ambient: AmbientLight{Intensity: 1},
			Directional: DirectionalLight{
				Position:  Vector{5, 5, 5},
				Intensity: 2,
			},
		},
		Environment: Environment{Background: true},
		Orbit: Orbit{
			MinDistance:   b.MinDistance,
			MaxDistance:   b.MaxDistance,
			MinPolarAngle: b.MinPolarAngle,
			MaxPolarAngle: b.MaxPolarAngle,
			EnablePan:     b.EnablePan,
		},
		Logging: Logging{Level: "info"},
	}
}

// Default returns the built-in scene.
func Default() *Scene {
	s, err := Parse(defaultYAML)
	if err != nil {
		panic("scene: invalid default.yaml: " + err.Error())
	}
	return s
}

// Parse decodes a scene YAML document. Missing keys keep their defaults
// and instances without scale get scale 1.
func Parse(b []byte) (*Scene, error) {
	s := base()
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	for i := range s.Instances {
		if s.Instances[i].Scale == (Scale{}) {
			s.Instances[i].Scale = Uniform(1)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks s for values the viewer cannot use.
func (s *Scene) Validate() error {
	if !finite(s.Camera.Position) || !finite(s.Camera.Target) {
		return fmt.Errorf("camera: %w", errNonFinite)
	}
	if s.Camera.Position == s.Camera.Target {
		return errors.New("camera: position and target must differ")
	}
	if s.Camera.FOV <= 0 || s.Camera.FOV >= 180 {
		return fmt.Errorf("camera: fov %v out of range (0, 180)", s.Camera.FOV)
	}
	if s.Camera.Speed <= 0 {
		return fmt.Errorf("camera: speed %v must be positive", s.Camera.Speed)
	}
	o := s.Orbit
	if o.MinDistance < 0 || o.MaxDistance < o.MinDistance {
		return fmt.Errorf("orbit: invalid distance range [%v, %v]", o.MinDistance, o.MaxDistance)
	}
	if o.MinPolarAngle < 0 || o.MaxPolarAngle > math.Pi || o.MaxPolarAngle < o.MinPolarAngle {
		return fmt.Errorf("orbit: invalid polar angle range [%v, %v]", o.MinPolarAngle, o.MaxPolarAngle)
	}
	for i, inst := range s.Instances {
		if inst.Model == "" {
			return fmt.Errorf("instance %d (%s): model is empty", i, inst.Name)
		}
		if !finite(inst.Position) || !finite(Vector(inst.Scale)) {
			return fmt.Errorf("instance %d (%s): %w", i, inst.Name, errNonFinite)
		}
		if inst.Scale[0] == 0 || inst.Scale[1] == 0 || inst.Scale[2] == 0 {
			return fmt.Errorf("instance %d (%s): scale must not be zero", i, inst.Name)
		}
	}
	return nil
}

// NewCamera returns the initial camera of s.
func (s *Scene) NewCamera() *camera.Camera {
	return camera.New(s.Camera.Position.Vec3(), s.Camera.Target.Vec3(), s.Camera.FOV)
}

func finite(v Vector) bool {
	for _, a := range v {
		if math.IsNaN(float64(a)) || math.IsInf(float64(a), 0) {
			return false
		}
	}
	return true
}
