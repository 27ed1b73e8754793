package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/royalcat/mapcore/geohash"
)

func geohashCmd(ctx *cli.Context) error {
	reg, err := geohash.NewRegistry()
	if err != nil {
		return err
	}
	args := ctx.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("expected one of encode, decode, neighbors or cover")
	}
	return runGeohash(os.Stdout, reg, args[0], args[1:], ctx.Int("precision"))
}

func runGeohash(w io.Writer, reg *geohash.Registry, op string, args []string, precision int) error {
	switch op {
	case "encode":
		pos, err := parsePosition(args)
		if err != nil {
			return err
		}
		if precision == 0 {
			precision = geohash.MaxPrecision
		}
		g, err := reg.At(pos, precision)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, g.ID())
		return err

	case "decode":
		g, err := singleGeohash(reg, args)
		if err != nil {
			return err
		}
		c := g.Center()
		_, err = fmt.Fprintf(w, "%g %g %s\n", c.Longitude, c.Latitude, g.Bounds())
		return err

	case "neighbors":
		g, err := singleGeohash(reg, args)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, strings.Join(g.Neighbors(), " "))
		return err

	case "cover":
		bbox, err := parseBoundingBox(args)
		if err != nil {
			return err
		}
		var col *geohash.Collection
		if precision == 0 {
			col, err = reg.CollectionFor(bbox)
		} else {
			col, err = reg.CollectionWithPrecision(bbox, precision)
		}
		if err != nil {
			return err
		}
		for _, id := range col.IDs() {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown geohash operation %q", op)
}

func singleGeohash(reg *geohash.Registry, args []string) (*geohash.Geohash, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected a single geohash, got %d arguments", len(args))
	}
	return reg.WithIdentifier(args[0])
}
