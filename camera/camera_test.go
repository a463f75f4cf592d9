package camera

import (
	"math"
	"testing"

	"github.com/seqsense/pcgol/mat"
)

func TestCamera_ViewMatrix(t *testing.T) {
	testCases := map[string]struct {
		position, target mat.Vec3
	}{
		"Default": {
			position: mat.Vec3{5, 3, 10},
			target:   mat.Vec3{0, 0, 0},
		},
		"AlongZ": {
			position: mat.Vec3{0, 0, 0},
			target:   mat.Vec3{0, 0, -4},
		},
		"StraightDown": {
			position: mat.Vec3{0, 10, 0},
			target:   mat.Vec3{0, 0, 0},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			cam := New(tt.position, tt.target, 50)
			v := cam.ViewMatrix()

			eye := v.TransformAffine(tt.position)
			if !vecNear(eye, mat.Vec3{}, 1e-4) {
				t.Errorf("Eye must be at view origin, got %v", eye)
			}
			dist := tt.target.Sub(tt.position).Norm()
			target := v.TransformAffine(tt.target)
			if !vecNear(target, mat.Vec3{0, 0, -dist}, 1e-4) {
				t.Errorf("Target must be on -Z at %f, got %v", dist, target)
			}
		})
	}
}

func TestCamera_ProjectionMatrix(t *testing.T) {
	cam := New(mat.Vec3{0, 0, 0}, mat.Vec3{0, 0, -1}, 90)
	p := cam.ProjectionMatrix(2)

	// With 90 degrees vertical, y scale is 1/tan(45deg) and x is y / aspect.
	if math.Abs(float64(p[5])-1) > 1e-5 {
		t.Errorf("Expected y scale 1, got %f", p[5])
	}
	if math.Abs(float64(p[0])-0.5) > 1e-5 {
		t.Errorf("Expected x scale 0.5, got %f", p[0])
	}
}

func TestCamera_InvalidFOV(t *testing.T) {
	for _, fov := range []float32{0, -10, 180, 360} {
		if cam := New(mat.Vec3{}, mat.Vec3{0, 0, -1}, fov); cam.FOV != DefaultFOV {
			t.Errorf("FOV %f must fall back to %f, got %f", fov, DefaultFOV, cam.FOV)
		}
	}
}

func TestCamera_Finite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	cam := New(mat.Vec3{1, 2, 3}, mat.Vec3{0, 0, 0}, 50)
	if cam.MoveTo(mat.Vec3{nan, 0, 0}) {
		t.Error("MoveTo(NaN) must be rejected")
	}
	if cam.Translate(mat.Vec3{0, inf, 0}) {
		t.Error("Translate(Inf) must be rejected")
	}
	if cam.Position != (mat.Vec3{1, 2, 3}) || cam.Target != (mat.Vec3{}) {
		t.Errorf("Camera must be unchanged, got %v -> %v", cam.Position, cam.Target)
	}
	if !cam.Translate(mat.Vec3{1, 1, 1}) {
		t.Fatal("Finite translation must be applied")
	}
	if cam.Position != (mat.Vec3{2, 3, 4}) || cam.Target != (mat.Vec3{1, 1, 1}) {
		t.Errorf("Unexpected camera %v -> %v", cam.Position, cam.Target)
	}
}
