package main

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/cheggaaa/pb/v3/termutil"
	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb/geojson"
	"github.com/sourcegraph/conc/pool"
	"github.com/urfave/cli/v3"

	"github.com/royalcat/mapcore/geohash"
	"github.com/royalcat/mapcore/geom"
	"github.com/royalcat/mapcore/internal/stats"
	"github.com/royalcat/mapcore/kv"
)

type coverResult struct {
	Index int
	ID    string
	Cells []string
}

func cover(ctx *cli.Context) error {
	log := slog.Default().With("command", "cover")

	threads := ctx.Int("threads")
	if threads == 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	var collector *stats.Collector
	if ctx.Bool("stats") {
		var err error
		collector, err = stats.NewCollector(time.Second)
		if err != nil {
			return err
		}
		collector.Start()
	}

	in, size, err := openInput(ctx.String("input"))
	if err != nil {
		return err
	}
	defer in.Close()
	log.Info("reading features", "input", ctx.String("input"), "size", humanize.IBytes(uint64(size)))

	fc, err := readFeatures(in)
	if err != nil {
		return err
	}

	cacheOpt, err := cacheOption(ctx.String("cache"), ctx.Int("cache-size"))
	if err != nil {
		return err
	}
	reg, err := geohash.NewRegistry(cacheOpt)
	if err != nil {
		return err
	}

	bar := pb.StartNew(len(fc.Features))
	bar.SetWriter(os.Stderr)
	bar.Set("prefix", "covering features")
	if w, err := termutil.TerminalWidth(); w == 0 || err != nil {
		bar.SetTemplateString(`{{with string . "prefix"}}{{.}} {{end}}{{counters . }} {{percent . }} {{rtime . "ETA %s"}}` + "\n")
	}

	results, err := coverFeatures(reg, fc.Features, ctx.Int("precision"), ctx.Bool("exact"), threads, bar.Increment)
	bar.Finish()
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if name := ctx.String("output"); name != "" {
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	cells, err := writeCover(out, results)
	if err != nil {
		return err
	}

	log.Info("cover complete",
		"features", humanize.Comma(int64(len(results))),
		"cells", humanize.Comma(int64(cells)),
		"distinct", humanize.Comma(int64(reg.Len())),
	)

	if collector != nil {
		if _, err := collector.Stop().WriteTo(os.Stderr); err != nil {
			return err
		}
	}
	return nil
}

func cacheOption(backend string, size int) (geohash.Option, error) {
	switch backend {
	case "xmap":
		return geohash.WithCache(kv.NewXMap[string, *geohash.Geohash]()), nil
	case "mutex":
		return geohash.WithCache(kv.NewMutexMap[string, *geohash.Geohash]()), nil
	case "lru":
		return geohash.WithCacheSize(size), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", backend)
}

func readFeatures(r io.Reader) (*geojson.FeatureCollection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}
	return fc, nil
}

// coverFeatures covers every feature on a bounded worker pool. Results keep
// the input order.
func coverFeatures(reg *geohash.Registry, features []*geojson.Feature, precision int, exact bool, threads int, done func() *pb.ProgressBar) ([]coverResult, error) {
	p := pool.NewWithResults[coverResult]().WithErrors().WithMaxGoroutines(max(threads, 1))
	for i, f := range features {
		p.Go(func() (coverResult, error) {
			defer done()
			return coverFeature(reg, i, f, precision, exact)
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(results, func(a, b coverResult) int { return cmp.Compare(a.Index, b.Index) })
	return results, nil
}

func coverFeature(reg *geohash.Registry, i int, f *geojson.Feature, precision int, exact bool) (coverResult, error) {
	res := coverResult{Index: i, ID: featureID(i, f)}
	if f.Geometry == nil {
		return res, nil
	}
	g, err := geom.FromOrb(f.Geometry)
	if err != nil {
		return res, fmt.Errorf("feature %s: %w", res.ID, err)
	}
	if g.IsEmpty() {
		return res, nil
	}

	var col *geohash.Collection
	if precision == 0 {
		col, err = reg.CollectionFor(g.Bounds())
	} else {
		col, err = reg.CollectionWithPrecision(g.Bounds(), precision)
	}
	if err != nil {
		return res, fmt.Errorf("feature %s: %w", res.ID, err)
	}

	for _, cell := range col.Geohashes() {
		if exact && !g.Intersects(cell.Bounds()) {
			continue
		}
		res.Cells = append(res.Cells, cell.ID())
	}
	return res, nil
}

func featureID(i int, f *geojson.Feature) string {
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	return fmt.Sprint(i)
}

func writeCover(w io.Writer, results []coverResult) (int, error) {
	cells := 0
	for _, r := range results {
		cells += len(r.Cells)
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r.ID, strings.Join(r.Cells, ",")); err != nil {
			return cells, err
		}
	}
	return cells, nil
}
