// Command render runs the map pipeline once and writes the result to disk as a
// standalone HTML page, optionally alongside the composed map document as JSON.
//
// Usage:
//
//	go run ./cmd/render \
//	  -in internal/pipeline/testdata/all_day_sample.geojson \
//	  -out dist/index.html \
//	  -json dist/map.json \
//	  -token "$MAPBOX_TOKEN"
//
// Without -in the live feed at -feed-url is fetched.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	httpadapter "github.com/couchcryptid/quake-map-service/internal/adapter/http"
	"github.com/couchcryptid/quake-map-service/internal/adapter/mapbox"
	"github.com/couchcryptid/quake-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/couchcryptid/quake-map-service/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	in      string
	feedURL string
	timeout time.Duration
	out     string
	jsonOut string
	token   string
	tileset string
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var o options
	fs.StringVar(&o.in, "in", "", "local GeoJSON feed file (default: fetch -feed-url)")
	fs.StringVar(&o.feedURL, "feed-url", usgs.DefaultFeedURL, "earthquake feed URL")
	fs.DurationVar(&o.timeout, "timeout", 0, "feed request timeout (0 = none)")
	fs.StringVar(&o.out, "out", "index.html", "output path for the rendered page")
	fs.StringVar(&o.jsonOut, "json", "", "optional output path for the map document JSON")
	fs.StringVar(&o.token, "token", os.Getenv("MAPBOX_TOKEN"), "Mapbox access token for base tiles")
	fs.StringVar(&o.tileset, "tileset", "", "Mapbox tileset ID (default mapbox.light)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.out == "" {
		fs.Usage()
		return o, fmt.Errorf("missing required flag: -out")
	}
	return o, nil
}

func run() error {
	o, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetrics()

	var fetcher pipeline.Fetcher
	source := o.feedURL
	if o.in != "" {
		fetcher = usgs.NewFileSource(o.in, logger)
		source = o.in
	} else {
		fetcher = usgs.NewClient(o.feedURL, o.timeout, metrics, logger)
	}

	files := &fileWriter{pagePath: o.out, jsonPath: o.jsonOut}
	p := pipeline.New(
		fetcher,
		pipeline.NewRenderer(nil, logger),
		pipeline.NewComposer(mapbox.TileLayer(o.token, o.tileset), source),
		[]pipeline.Publisher{files},
		logger,
		metrics,
	)

	if err := p.Run(context.Background()); err != nil {
		return err
	}

	log.Printf("Wrote %d markers to %s", files.markers, o.out)
	if o.jsonOut != "" {
		log.Printf("Wrote map document to %s", o.jsonOut)
	}
	return nil
}

// fileWriter publishes the composed map as files on disk.
type fileWriter struct {
	pagePath string
	jsonPath string
	markers  int
}

func (f *fileWriter) Name() string { return "file" }

func (f *fileWriter) Publish(_ context.Context, doc domain.MapDocument) error {
	var buf bytes.Buffer
	if err := httpadapter.RenderPage(&buf, doc); err != nil {
		return err
	}
	if err := writeFile(f.pagePath, buf.Bytes()); err != nil {
		return err
	}
	if f.jsonPath != "" {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal map document: %w", err)
		}
		if err := writeFile(f.jsonPath, append(data, '\n')); err != nil {
			return err
		}
	}
	f.markers = len(doc.Markers())
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
