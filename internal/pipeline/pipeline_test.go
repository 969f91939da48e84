package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/couchcryptid/quake-map-service/internal/adapter/memory"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/couchcryptid/quake-map-service/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockFetcher struct {
	quakes []domain.Earthquake
	err    error
	calls  int
}

func (m *mockFetcher) Fetch(_ context.Context) ([]domain.Earthquake, error) {
	m.calls++
	return m.quakes, m.err
}

type mockPublisher struct {
	name string
	err  error
	docs []domain.MapDocument
}

func (m *mockPublisher) Name() string { return m.name }

func (m *mockPublisher) Publish(_ context.Context, doc domain.MapDocument) error {
	m.docs = append(m.docs, doc)
	return m.err
}

type mockGeocoder struct {
	calls int
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.GeocodingResult, error) {
	m.calls++
	return domain.GeocodingResult{FormattedAddress: "Resolved Place"}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLayer() domain.TileLayer {
	return domain.TileLayer{ID: "mapbox.light", AccessToken: "pk.test"}
}

func quake(id, place string, mag float64) domain.Earthquake {
	return domain.Earthquake{
		ID:          id,
		Place:       place,
		Magnitude:   mag,
		Coordinates: domain.LatLng{Lat: 35, Lon: -97},
	}
}

func newPipeline(f pipeline.Fetcher, pubs ...pipeline.Publisher) (*pipeline.Pipeline, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(
		f,
		pipeline.NewRenderer(nil, discardLogger()),
		pipeline.NewComposer(testLayer(), "https://feed.example.com"),
		pubs,
		discardLogger(),
		metrics,
	)
	return p, metrics
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	f := &mockFetcher{quakes: []domain.Earthquake{
		quake("a", "Here", 0.5),
		quake("b", "There", 3.3),
		quake("c", "Elsewhere", 6.1),
	}}
	store := memory.NewStore()
	p, metrics := newPipeline(f, store)

	require.Error(t, p.CheckReadiness(context.Background()))

	err := p.Run(context.Background())
	require.NoError(t, err)

	doc, ok := store.Document()
	require.True(t, ok)
	require.Len(t, doc.Markers(), 3)
	assert.Equal(t, "a", doc.Markers()[0].ID)
	assert.Equal(t, "https://feed.example.com", doc.FeedURL)
	assert.True(t, p.Ready())
	require.NoError(t, p.CheckReadiness(context.Background()))

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.FeaturesFetched))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MarkersRendered.WithLabelValues("0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MarkersRendered.WithLabelValues("3")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MarkersRendered.WithLabelValues("5")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MapsComposed))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.PipelineRunning))
}

func TestPipeline_Run_FetchErrorAbortsRender(t *testing.T) {
	f := &mockFetcher{err: errors.New("connection refused")}
	pub := &mockPublisher{name: "mock"}
	p, metrics := newPipeline(f, pub)

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	assert.Empty(t, pub.docs, "nothing is published when the fetch fails")
	assert.False(t, p.Ready())
	assert.Equal(t, 1, f.calls, "no retries")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FeedFetchErrors))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.MapsComposed))
}

func TestPipeline_Run_PublisherErrorDoesNotStopOthers(t *testing.T) {
	f := &mockFetcher{quakes: []domain.Earthquake{quake("a", "Here", 2)}}
	failing := &mockPublisher{name: "kafka", err: errors.New("broker down")}
	store := memory.NewStore()
	p, metrics := newPipeline(f, failing, store)

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish to kafka")

	_, ok := store.Document()
	assert.True(t, ok)
	assert.True(t, p.Ready())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PublishErrors.WithLabelValues("kafka")))
}

func TestPipeline_Run_EmptyFeed(t *testing.T) {
	store := memory.NewStore()
	p, _ := newPipeline(&mockFetcher{}, store)

	require.NoError(t, p.Run(context.Background()))

	doc, ok := store.Document()
	require.True(t, ok)
	assert.Empty(t, doc.Markers())
	assert.Len(t, doc.Legend.Entries, 6)
}

func TestQuakeRenderer_EnrichesEmptyPlaces(t *testing.T) {
	geo := &mockGeocoder{}
	r := pipeline.NewRenderer(geo, discardLogger())

	markers, err := r.Render(context.Background(), []domain.Earthquake{
		quake("a", "Known", 1.5),
		quake("b", "", 2.5),
	})
	require.NoError(t, err)
	require.Len(t, markers, 2)

	assert.Equal(t, 1, geo.calls)
	assert.Contains(t, markers[0].Popup, "Location: Known")
	assert.Contains(t, markers[1].Popup, "Location: Resolved Place")
}

func TestQuakeRenderer_CancelledContext(t *testing.T) {
	r := pipeline.NewRenderer(&mockGeocoder{}, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, []domain.Earthquake{quake("a", "", 1)})
	require.ErrorIs(t, err, context.Canceled)
}

func TestQuakeRenderer_MalformedMagnitude(t *testing.T) {
	r := pipeline.NewRenderer(nil, discardLogger())

	markers, err := r.Render(context.Background(), []domain.Earthquake{quake("a", "x", math.NaN())})
	require.NoError(t, err)
	assert.Equal(t, 5, markers[0].Band)
}
