package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/royalcat/mapcore/geom"
	"github.com/royalcat/mapcore/projection"
)

func project(ctx *cli.Context) error {
	reg, err := projection.NewRegistry()
	if err != nil {
		return err
	}
	pos, err := parsePosition(ctx.Args().Slice())
	if err != nil {
		return err
	}
	return writeProjected(os.Stdout, reg, ctx.String("from"), ctx.String("to"), pos)
}

func writeProjected(w io.Writer, reg *projection.Registry, from, to string, pos geom.Position) error {
	src, ok := reg.ForSRID(from)
	if !ok {
		return fmt.Errorf("unknown SRID %s", from)
	}
	dst, ok := reg.ForSRID(to)
	if !ok {
		return fmt.Errorf("unknown SRID %s", to)
	}
	out := dst.ProjectPosition(src.InversePosition(pos))
	_, err := fmt.Fprintf(w, "%.9g %.9g\n", out.Longitude, out.Latitude)
	return err
}

func mgrs(ctx *cli.Context) error {
	return runMGRS(os.Stdout, ctx.Args().Slice(), ctx.Int("digits"))
}

func runMGRS(w io.Writer, args []string, digits int) error {
	if len(args) == 2 {
		pos, err := parsePosition(args)
		if err != nil {
			return err
		}
		ref, err := projection.ToMGRS(pos, digits)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, ref)
		return err
	}
	pos, err := projection.ParseMGRS(strings.Join(args, ""))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%.6f %.6f\n", pos.Longitude, pos.Latitude)
	return err
}
