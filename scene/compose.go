package scene

import (
	"errors"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
	"go.uber.org/zap"
)

const (
	placeholderSize = 1.0
	placeholderStep = 0.05
)

var errEmptyModel = errors.New("model has no points")

// Loader returns the point cloud stored at path.
type Loader interface {
	Load(path string) (*pc.PointCloud, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (*pc.PointCloud, error)

// Load implements Loader.
func (f LoaderFunc) Load(path string) (*pc.PointCloud, error) {
	return f(path)
}

// Drawable is an Instance resolved to renderable data.
type Drawable struct {
	Instance    Instance
	Cloud       *pc.PointCloud
	Model       mat.Mat4
	Placeholder bool

	// YMin and YMax are the world height range of the cloud.
	YMin, YMax float32
}

// PositionOffset returns the byte offset of the x field in a point.
func (d Drawable) PositionOffset() int {
	var off int
	for i, f := range d.Cloud.Fields {
		if f == "x" {
			return off
		}
		off += d.Cloud.Size[i] * d.Cloud.Count[i]
	}
	return 0
}

// Compose loads every instance in declaration order. Instances failing to
// load are replaced by a placeholder marker at their position.
func Compose(instances []Instance, l Loader, log *zap.Logger) []Drawable {
	ds := make([]Drawable, 0, len(instances))
	for _, inst := range instances {
		d, err := load(inst, l)
		if err != nil {
			log.Warn("model unavailable, using placeholder",
				zap.String("name", inst.Name),
				zap.String("model", inst.Model),
				zap.Error(err),
			)
			p := inst.Position
			d = Drawable{
				Instance:    inst,
				Cloud:       Placeholder(),
				Model:       mat.Translate(p[0], p[1], p[2]),
				Placeholder: true,
			}
		} else {
			log.Debug("model loaded",
				zap.String("name", inst.Name),
				zap.Int("points", d.Cloud.Points),
			)
		}
		d.YMin, d.YMax = heightRange(d.Cloud, d.Model)
		ds = append(ds, d)
	}
	return ds
}

func load(inst Instance, l Loader) (Drawable, error) {
	pp, err := l.Load(inst.Model)
	if err != nil {
		return Drawable{}, err
	}
	if pp == nil || pp.Points == 0 {
		return Drawable{}, errEmptyModel
	}
	if _, err := pp.Vec3Iterator(); err != nil {
		return Drawable{}, err
	}
	return Drawable{
		Instance: inst,
		Cloud:    pp,
		Model:    inst.Transform(),
	}, nil
}

// Placeholder returns the edges of a unit cube centered at the origin.
func Placeholder() *pc.PointCloud {
	n := int(placeholderSize/placeholderStep) + 1
	h := float32(placeholderSize / 2)

	var pts []mat.Vec3
	for i := 0; i < n; i++ {
		t := float32(i)*placeholderStep - h
		for _, a := range [2]float32{-h, h} {
			for _, b := range [2]float32{-h, h} {
				pts = append(pts,
					mat.Vec3{t, a, b},
					mat.Vec3{a, t, b},
					mat.Vec3{a, b, t},
				)
			}
		}
	}

	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version: 0.7,
			Fields:  []string{"x", "y", "z"},
			Size:    []int{4, 4, 4},
			Type:    []string{"F", "F", "F"},
			Count:   []int{1, 1, 1},
			Width:   len(pts),
			Height:  1,
		},
		Points: len(pts),
		Data:   make([]byte, len(pts)*4*3),
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		panic(err)
	}
	for _, p := range pts {
		it.SetVec3(p)
		it.Incr()
	}
	return pp
}

func heightRange(pp *pc.PointCloud, m mat.Mat4) (float32, float32) {
	it, err := pp.Vec3Iterator()
	if err != nil || !it.IsValid() {
		return 0, 0
	}
	yMin, yMax := float32(1e30), float32(-1e30)
	for ; it.IsValid(); it.Incr() {
		y := m.TransformAffine(it.Vec3())[1]
		if y < yMin {
			yMin = y
		}
		if y > yMax {
			yMax = y
		}
	}
	return yMin, yMax
}
