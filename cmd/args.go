package main

import (
	"fmt"
	"strconv"

	"github.com/royalcat/mapcore/geom"
)

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func parsePosition(args []string) (geom.Position, error) {
	v, err := parseFloats(args, 2)
	if err != nil {
		return geom.Position{}, err
	}
	return geom.NewPosition(v[0], v[1]), nil
}

func parseBoundingBox(args []string) (geom.BoundingBox, error) {
	v, err := parseFloats(args, 4)
	if err != nil {
		return geom.BoundingBox{}, err
	}
	return geom.BoundingBoxFromArray(v)
}
