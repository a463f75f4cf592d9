package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/seqsense/pcgol/mat"
)

type console struct {
	v *viewer
}

var errArgumentNumber = errors.New("invalid number of arguments")
var errInvalidCommand = errors.New("invalid command")

type consoleCommand func(v *viewer, args []string) ([][]float32, error)

var consoleCommands = map[string]consoleCommand{
	"position": func(v *viewer, args []string) ([][]float32, error) {
		switch len(args) {
		case 0:
		case 3:
			p, err := parseVec3(args)
			if err != nil {
				return nil, err
			}
			if p == v.cam.Target {
				return nil, errors.New("position must differ from target")
			}
			if !v.cam.MoveTo(p) {
				return nil, errors.New("failed to set position")
			}
		default:
			return nil, errArgumentNumber
		}
		p := v.cam.Position
		return [][]float32{{p[0], p[1], p[2]}}, nil
	},
	"target": func(v *viewer, args []string) ([][]float32, error) {
		switch len(args) {
		case 0:
		case 3:
			p, err := parseVec3(args)
			if err != nil {
				return nil, err
			}
			if p == v.cam.Position {
				return nil, errors.New("target must differ from position")
			}
			v.cam.Target = p
		default:
			return nil, errArgumentNumber
		}
		p := v.cam.Target
		return [][]float32{{p[0], p[1], p[2]}}, nil
	},
	"speed": func(v *viewer, args []string) ([][]float32, error) {
		switch len(args) {
		case 0:
		case 1:
			f, err := parseFloats(args)
			if err != nil {
				return nil, err
			}
			if !(f[0] > 0) {
				return nil, errors.New("speed must be positive")
			}
			v.nav.Speed = f[0]
		default:
			return nil, errArgumentNumber
		}
		return [][]float32{{v.nav.Speed}}, nil
	},
	"fov": func(v *viewer, args []string) ([][]float32, error) {
		switch len(args) {
		case 0:
		case 1:
			f, err := parseFloats(args)
			if err != nil {
				return nil, err
			}
			if !(f[0] > 0 && f[0] < 180) {
				return nil, errors.New("fov must be in (0, 180)")
			}
			v.cam.FOV = f[0]
		default:
			return nil, errArgumentNumber
		}
		return [][]float32{{v.cam.FOV}}, nil
	},
	"move": func(v *viewer, args []string) ([][]float32, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		if !v.Mounted() {
			return nil, errors.New("viewer is not mounted")
		}
		v.Key(args[0])
		p := v.cam.Position
		return [][]float32{{p[0], p[1], p[2]}}, nil
	},
	"reset": func(v *viewer, args []string) ([][]float32, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		v.Reset()
		p := v.cam.Position
		return [][]float32{{p[0], p[1], p[2]}}, nil
	},
}

func (c *console) Run(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}
	fn, ok := consoleCommands[args[0]]
	if !ok {
		return "", errInvalidCommand
	}
	res, err := fn(c.v, args[1:])
	if err != nil {
		return "", err
	}
	var resStr []string
	for _, vv := range res {
		var resLine []string
		for _, v := range vv {
			resLine = append(resLine, strconv.FormatFloat(float64(v), 'f', 3, 32))
		}
		resStr = append(resStr, strings.Join(resLine, " "))
	}
	return strings.Join(resStr, "\n"), nil
}

func parseFloats(args []string) ([]float32, error) {
	var ret []float32
	for _, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, err
		}
		ret = append(ret, float32(f))
	}
	return ret, nil
}

func parseVec3(args []string) (mat.Vec3, error) {
	f, err := parseFloats(args)
	if err != nil {
		return mat.Vec3{}, err
	}
	return mat.Vec3{f[0], f[1], f[2]}, nil
}
