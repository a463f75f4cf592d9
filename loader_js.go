package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/seqsense/pcgol/pc"
)

// fetchLoader loads PCD models over HTTP relative to the scene document.
type fetchLoader struct {
	ctx  context.Context
	base string
}

func (l *fetchLoader) Load(p string) (*pc.PointCloud, error) {
	u := resolvePath(l.base, p)
	b, err := fetchGet(l.ctx, u)
	if err != nil {
		return nil, err
	}
	pp, err := pc.Unmarshal(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", u, err)
	}
	return pp, nil
}
