package scene

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/seqsense/pcgol/mat"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	s := Default()

	if s.Camera.Position != (Vector{5, 3, 10}) {
		t.Errorf("expected camera at (5, 3, 10), got %v", s.Camera.Position)
	}
	if s.Camera.FOV != 50 {
		t.Errorf("expected fov 50, got %f", s.Camera.FOV)
	}
	if s.Camera.Speed != 0.5 {
		t.Errorf("expected speed 0.5, got %f", s.Camera.Speed)
	}
	if s.Lights.Ambient.Intensity != 1 {
		t.Errorf("expected ambient intensity 1, got %f", s.Lights.Ambient.Intensity)
	}
	if s.Lights.Directional.Position != (Vector{5, 5, 5}) || s.Lights.Directional.Intensity != 2 {
		t.Errorf("unexpected directional light %+v", s.Lights.Directional)
	}
	if s.Environment.Image == "" || !s.Environment.Background {
		t.Errorf("unexpected environment %+v", s.Environment)
	}

	expectedOrbit := Orbit{
		MinDistance:   1,
		MaxDistance:   100,
		MinPolarAngle: 0,
		MaxPolarAngle: math.Pi,
		EnablePan:     true,
	}
	if s.Orbit != expectedOrbit {
		t.Errorf("expected orbit %+v, got %+v", expectedOrbit, s.Orbit)
	}

	expected := []struct {
		name     string
		position Vector
		scale    Scale
	}{
		{"bighorn", Vector{0, -1, 0}, Uniform(1)},
		{"coconut_tree", Vector{-3, -1, 2}, Uniform(0.1)},
		{"neem_tree", Vector{7, -1, 2}, Uniform(0.05)},
		{"aloe_vera", Vector{2, -1.1, 4}, Uniform(0.08)},
		{"garden_bridge", Vector{-2, -2.8, -40}, Uniform(0.3)},
		{"jungle", Vector{0, -1.8, -60}, Scale{2, 2, 2}},
	}
	if len(s.Instances) != len(expected) {
		t.Fatalf("expected %d instances, got %d", len(expected), len(s.Instances))
	}
	for i, e := range expected {
		inst := s.Instances[i]
		if inst.Name != e.name || inst.Position != e.position || inst.Scale != e.scale {
			t.Errorf("instance %d: expected %s %v %v, got %s %v %v",
				i, e.name, e.position, e.scale, inst.Name, inst.Position, inst.Scale)
		}
		if inst.Model == "" {
			t.Errorf("instance %d: model path is empty", i)
		}
	}
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
camera:
  position: [1, 2, 3]
  fov: 70
instances:
  - name: rock
    model: rock.pcd
    position: [0, 0, 0]
    scale: [1, 2, 3]
  - name: tree
    model: tree.pcd
    position: [1, 0, 0]
`))
	if err != nil {
		t.Fatal(err)
	}
	if s.Camera.Position != (Vector{1, 2, 3}) || s.Camera.FOV != 70 {
		t.Errorf("unexpected camera %+v", s.Camera)
	}
	if s.Camera.Speed != 0.5 {
		t.Errorf("missing speed must default to 0.5, got %f", s.Camera.Speed)
	}
	if s.Lights.Directional.Intensity != 2 {
		t.Errorf("missing lights must keep defaults, got %+v", s.Lights)
	}
	if s.Instances[0].Scale != (Scale{1, 2, 3}) {
		t.Errorf("expected per-axis scale, got %v", s.Instances[0].Scale)
	}
	if s.Instances[1].Scale != Uniform(1) {
		t.Errorf("missing scale must default to 1, got %v", s.Instances[1].Scale)
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := map[string]struct {
		input string
		err   error
		msg   string
	}{
		"ShortVector": {
			input: "camera:\n  position: [1, 2]\n",
			err:   errVectorLength,
		},
		"SameTarget": {
			input: "camera:\n  position: [1, 1, 1]\n  target: [1, 1, 1]\n",
			msg:   "must differ",
		},
		"FOV": {
			input: "camera:\n  fov: 180\n",
			msg:   "fov",
		},
		"Speed": {
			input: "camera:\n  speed: -1\n",
			msg:   "speed",
		},
		"Distance": {
			input: "orbit:\n  min_distance: 10\n  max_distance: 5\n",
			msg:   "distance",
		},
		"Polar": {
			input: "orbit:\n  max_polar_angle: 4\n",
			msg:   "polar",
		},
		"NoModel": {
			input: "instances:\n  - name: a\n    position: [0, 0, 0]\n",
			msg:   "model is empty",
		},
		"ZeroScale": {
			input: "instances:\n  - name: a\n    model: a.pcd\n    scale: [1, 0, 1]\n",
			msg:   "scale",
		},
		"Syntax": {
			input: "camera: [",
			msg:   "decoding scene",
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
			if tt.msg != "" && !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected error containing %q, got %v", tt.msg, err)
			}
		})
	}
}

func TestScale_MarshalYAML(t *testing.T) {
	type doc struct {
		A Scale `yaml:"a"`
		B Scale `yaml:"b"`
	}
	b, err := yaml.Marshal(doc{A: Uniform(0.5), B: Scale{1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	expected := "a: 0.5\nb:\n    - 1\n    - 2\n    - 3\n"
	if string(b) != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, string(b))
	}

	var d doc
	if err := yaml.Unmarshal(b, &d); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(doc{A: Uniform(0.5), B: Scale{1, 2, 3}}, d) {
		t.Errorf("unexpected %+v", d)
	}
}

func TestInstance_Transform(t *testing.T) {
	inst := Instance{
		Position: Vector{1, 2, 3},
		Scale:    Scale{2, 3, 4},
	}
	p := inst.Transform().TransformAffine(mat.Vec3{1, 1, 1})
	if expected := (mat.Vec3{3, 5, 7}); p != expected {
		t.Errorf("expected %v, got %v", expected, p)
	}
}

func TestScene_NewCamera(t *testing.T) {
	cam := Default().NewCamera()
	if cam.Position != (mat.Vec3{5, 3, 10}) {
		t.Errorf("unexpected position %v", cam.Position)
	}
	if cam.FOV != 50 {
		t.Errorf("unexpected fov %f", cam.FOV)
	}
}
