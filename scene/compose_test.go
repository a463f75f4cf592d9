package scene

import (
	"errors"
	"testing"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func cloudOf(vecs ...mat.Vec3) *pc.PointCloud {
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Fields: []string{"x", "y", "z"},
			Size:   []int{4, 4, 4},
			Type:   []string{"F", "F", "F"},
			Count:  []int{1, 1, 1},
			Width:  len(vecs),
			Height: 1,
		},
		Points: len(vecs),
		Data:   make([]byte, len(vecs)*4*3),
	}
	if len(vecs) == 0 {
		return pp
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		panic(err)
	}
	for _, v := range vecs {
		it.SetVec3(v)
		it.Incr()
	}
	return pp
}

func TestCompose(t *testing.T) {
	clouds := map[string]*pc.PointCloud{
		"a.pcd": cloudOf(mat.Vec3{0, 0, 0}, mat.Vec3{0, 1, 0}),
		"b.pcd": cloudOf(mat.Vec3{1, 2, 3}),
		"e.pcd": cloudOf(),
	}
	loader := LoaderFunc(func(path string) (*pc.PointCloud, error) {
		pp, ok := clouds[path]
		if !ok {
			return nil, errors.New("not found")
		}
		return pp, nil
	})
	instances := []Instance{
		{Name: "a", Model: "a.pcd", Position: Vector{0, -1, 0}, Scale: Uniform(2)},
		{Name: "missing", Model: "missing.pcd", Position: Vector{5, 0, 0}, Scale: Uniform(0.01)},
		{Name: "b", Model: "b.pcd", Position: Vector{0, 0, -10}, Scale: Uniform(1)},
		{Name: "empty", Model: "e.pcd", Scale: Uniform(1)},
	}

	core, logs := observer.New(zapcore.DebugLevel)
	ds := Compose(instances, loader, zap.New(core))

	if len(ds) != len(instances) {
		t.Fatalf("expected %d drawables, got %d", len(instances), len(ds))
	}
	for i, d := range ds {
		if d.Instance.Name != instances[i].Name {
			t.Errorf("drawable %d: expected %s, got %s", i, instances[i].Name, d.Instance.Name)
		}
	}

	if ds[0].Placeholder || ds[0].Cloud != clouds["a.pcd"] {
		t.Error("a must be loaded")
	}
	if ds[0].YMin != -1 || ds[0].YMax != 1 {
		t.Errorf("expected height range [-1, 1], got [%f, %f]", ds[0].YMin, ds[0].YMax)
	}
	if !ds[1].Placeholder || !ds[3].Placeholder {
		t.Error("missing and empty models must be placeholders")
	}
	// Placeholders ignore the instance scale to stay visible.
	if p := ds[1].Model.TransformAffine(mat.Vec3{0.5, 0, 0}); p != (mat.Vec3{5.5, 0, 0}) {
		t.Errorf("unexpected placeholder transform, got %v", p)
	}
	if p := ds[2].Model.TransformAffine(mat.Vec3{1, 2, 3}); p != (mat.Vec3{1, 2, -7}) {
		t.Errorf("unexpected transform, got %v", p)
	}

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warns) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warns))
	}
	if name := warns[0].ContextMap()["name"]; name != "missing" {
		t.Errorf("expected warning for missing, got %v", name)
	}
}

func TestPlaceholder(t *testing.T) {
	pp := Placeholder()
	if pp.Points != 21*12 {
		t.Errorf("expected %d points, got %d", 21*12, pp.Points)
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		t.Fatal(err)
	}
	for ; it.IsValid(); it.Incr() {
		v := it.Vec3()
		var onFace int
		for _, a := range v {
			if a < -0.5001 || 0.5001 < a {
				t.Fatalf("point %v out of the unit cube", v)
			}
			if a < -0.4999 || 0.4999 < a {
				onFace++
			}
		}
		if onFace < 2 {
			t.Fatalf("point %v is not on an edge", v)
		}
	}
}

func TestDrawable_PositionOffset(t *testing.T) {
	d := Drawable{Cloud: &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Fields: []string{"label", "rgb", "x", "y", "z"},
			Size:   []int{4, 1, 4, 4, 4},
			Count:  []int{1, 3, 1, 1, 1},
		},
	}}
	if off := d.PositionOffset(); off != 7 {
		t.Errorf("expected offset 7, got %d", off)
	}
	if off := (Drawable{Cloud: Placeholder()}).PositionOffset(); off != 0 {
		t.Errorf("expected offset 0, got %d", off)
	}
}
