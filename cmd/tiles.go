package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/royalcat/mapcore/geom"
	"github.com/royalcat/mapcore/tile"
)

func tiles(ctx *cli.Context) error {
	bbox, err := parseBoundingBox(ctx.Args().Slice())
	if err != nil {
		return err
	}
	origin := tile.TopLeft
	if ctx.Bool("tms") {
		origin = tile.BottomLeft
	}
	return writeTiles(os.Stdout, bbox, ctx.Int("zoom"), origin, ctx.String("template"))
}

func writeTiles(w io.Writer, bbox geom.BoundingBox, zoom int, origin tile.Origin, template string) error {
	bounds, err := tile.ForBoundingBox(bbox, zoom, origin)
	if err != nil {
		return err
	}
	bounds.Range(func(t tile.Tile) bool {
		if template != "" {
			_, err = fmt.Fprintln(w, tile.Expand(template, t))
		} else {
			_, err = fmt.Fprintln(w, t.Normalized())
		}
		return err == nil
	})
	return err
}
