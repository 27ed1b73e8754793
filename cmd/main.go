package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/royalcat/mapcore/internal/telemetry"

	_ "github.com/KimMachineGun/automemlimit"
	_ "go.uber.org/automaxprocs"
)

var telemetryClient *telemetry.Client

func main() {
	app := &cli.App{
		Name:        "mapcore",
		Description: "Geometry, projection, geohash and tile pyramid toolbox",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
			},
		},
		Before: func(ctx *cli.Context) error {
			level, err := telemetry.ParseLevel(ctx.String("log-level"))
			if err != nil {
				return err
			}
			telemetryClient, err = telemetry.Setup(ctx.Context, "mapcore", level)
			return err
		},
		After: func(ctx *cli.Context) error {
			if telemetryClient == nil {
				return nil
			}
			if err := telemetryClient.Flush(ctx.Context); err != nil {
				slog.Warn("failed to flush telemetry", "error", err)
			}
			telemetryClient.Shutdown(ctx.Context)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "tiles",
				Usage:     "list the tiles covering a bounding box",
				ArgsUsage: "XMIN YMIN XMAX YMAX",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "zoom",
						Aliases:  []string{"z"},
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "tms",
						Usage: "count rows from the south edge",
					},
					&cli.StringFlag{
						Name:    "template",
						Aliases: []string{"t"},
						Usage:   "print URLs, e.g. https://tile.example/{z}/{x}/{y}.png",
					},
				},
				Action: tiles,
			},
			{
				Name:      "geohash",
				Usage:     "encode, decode, cover or list neighbours of geohashes",
				ArgsUsage: "encode LON LAT | decode ID | neighbors ID | cover XMIN YMIN XMAX YMAX",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "precision",
						Aliases:     []string{"p"},
						DefaultText: "auto",
					},
				},
				Action: geohashCmd,
			},
			{
				Name:      "project",
				Usage:     "reproject a coordinate between two SRIDs",
				ArgsUsage: "X Y",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "from",
						Value: "EPSG:4326",
					},
					&cli.StringFlag{
						Name:  "to",
						Value: "EPSG:3857",
					},
				},
				Action: project,
			},
			{
				Name:      "mgrs",
				Usage:     "format a position as an MGRS reference, or parse one",
				ArgsUsage: "LON LAT | REF",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "digits",
						Value: 5,
					},
				},
				Action: mgrs,
			},
			{
				Name:  "cover",
				Usage: "cover every feature of a GeoJSON FeatureCollection with geohash cells",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:      "input",
						Aliases:   []string{"i"},
						Required:  true,
						TakesFile: true,
						Usage:     "GeoJSON file, zstd compressed when ending in .zst",
					},
					&cli.StringFlag{
						Name:      "output",
						Aliases:   []string{"o"},
						TakesFile: true,
						Usage:     "defaults to stdout",
					},
					&cli.IntFlag{
						Name:        "precision",
						Aliases:     []string{"p"},
						DefaultText: "auto",
					},
					&cli.IntFlag{
						Name:        "threads",
						Aliases:     []string{"t"},
						DefaultText: "max",
					},
					&cli.StringFlag{
						Name:  "cache",
						Value: "xmap",
						Usage: "geohash cache backend: xmap, mutex or lru",
					},
					&cli.IntFlag{
						Name:  "cache-size",
						Value: 1 << 16,
						Usage: "entries kept by the lru backend",
					},
					&cli.BoolFlag{
						Name:  "exact",
						Usage: "drop cells that only touch the feature's bounding box",
					},
					&cli.BoolFlag{
						Name:  "stats",
						Usage: "print resource usage when done",
					},
				},
				Action: cover,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
