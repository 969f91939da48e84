package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DefaultFeedURL is the USGS summary feed of all earthquakes in the past day.
const DefaultFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson"

// Client fetches a USGS GeoJSON summary feed.
// It implements pipeline.Fetcher.
type Client struct {
	feedURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed client. A zero timeout leaves requests unbounded.
func NewClient(feedURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
		logger:     logger,
	}
}

// FeedURL returns the URL the client reads from.
func (c *Client) FeedURL() string {
	return c.feedURL
}

// Fetch issues a single GET to the feed and decodes every point feature.
// There are no retries; any failure is returned to the caller.
func (c *Client) Fetch(ctx context.Context) ([]domain.Earthquake, error) {
	start := time.Now()
	defer func() {
		c.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("usgs feed error: status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	quakes, err := DecodeFeed(data, c.logger)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("feed fetched", "url", c.feedURL, "features", len(quakes), "bytes", len(data))
	return quakes, nil
}

// FileSource reads a previously downloaded feed from disk.
// It implements pipeline.Fetcher.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a fetcher backed by a local GeoJSON file.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

// FeedURL returns the file path.
func (f *FileSource) FeedURL() string {
	return f.path
}

func (f *FileSource) Fetch(_ context.Context) ([]domain.Earthquake, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}
	return DecodeFeed(data, f.logger)
}

// DecodeFeed parses a GeoJSON FeatureCollection into earthquakes, preserving
// feature order. Non-point features are skipped.
func DecodeFeed(data []byte, logger *slog.Logger) ([]domain.Earthquake, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	quakes := make([]domain.Earthquake, 0, len(fc.Features))
	for i, f := range fc.Features {
		point, ok := f.Geometry.(orb.Point)
		if !ok {
			logger.Debug("skipping non-point feature", "index", i, "id", f.ID)
			continue
		}
		quakes = append(quakes, toEarthquake(f, point))
	}
	return quakes, nil
}

// toEarthquake never fails: properties of the wrong JSON type read as their
// defaults, so a non-numeric mag becomes NaN.
func toEarthquake(f *geojson.Feature, point orb.Point) domain.Earthquake {
	ms := int64(floatProp(f.Properties, "time", 0))
	return domain.Earthquake{
		ID:          featureID(f),
		Place:       stringProp(f.Properties, "place"),
		Time:        domain.EventTime(ms),
		TimeMillis:  ms,
		Magnitude:   floatProp(f.Properties, "mag", math.NaN()),
		Coordinates: domain.LatLng{Lat: point.Lat(), Lon: point.Lon()},
		URL:         stringProp(f.Properties, "url"),
	}
}

func floatProp(p geojson.Properties, key string, def float64) float64 {
	if v, ok := p[key].(float64); ok {
		return v
	}
	return def
}

func stringProp(p geojson.Properties, key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// featureID prefers the top-level feature id, falling back to the "code"
// property that older feeds carry.
func featureID(f *geojson.Feature) string {
	switch id := f.ID.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return fmt.Sprintf("%.0f", id)
	}
	return stringProp(f.Properties, "code")
}
