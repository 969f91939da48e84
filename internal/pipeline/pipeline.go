package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// Fetcher reads the earthquake feed.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.Earthquake, error)
}

// Renderer converts earthquakes into styled markers.
type Renderer interface {
	Render(ctx context.Context, quakes []domain.Earthquake) ([]domain.Marker, error)
}

// Composer assembles markers into a map document.
type Composer interface {
	Compose(markers []domain.Marker) domain.MapDocument
}

// Publisher hands a composed map to its destination.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, doc domain.MapDocument) error
}

// Pipeline orchestrates the single fetch-render-compose-publish pass.
type Pipeline struct {
	fetcher    Fetcher
	renderer   Renderer
	composer   Composer
	publishers []Publisher
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(f Fetcher, r Renderer, c Composer, publishers []Publisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:    f,
		renderer:   r,
		composer:   c,
		publishers: publishers,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns nil once a map has been published, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("map has not been rendered yet")
	}
	return nil
}

// Ready reports whether a map has been published.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run performs one fetch, render and compose, then publishes the result to
// every publisher in order. A fetch or render failure aborts the pass before
// anything is published. Publisher failures do not stop later publishers; the
// first one is returned.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.logger.Info("pipeline started", "publishers", len(p.publishers))
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	quakes, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.metrics.FeedFetchErrors.Inc()
		p.logger.Error("fetch feed failed, render aborted", "error", err)
		return fmt.Errorf("fetch feed: %w", err)
	}
	p.metrics.FeaturesFetched.Add(float64(len(quakes)))

	markers, err := p.renderer.Render(ctx, quakes)
	if err != nil {
		p.logger.Error("render markers failed, render aborted", "error", err)
		return fmt.Errorf("render markers: %w", err)
	}
	for _, m := range markers {
		p.metrics.MarkersRendered.WithLabelValues(strconv.Itoa(m.Band)).Inc()
	}

	doc := p.composer.Compose(markers)
	p.metrics.MapsComposed.Inc()

	var firstErr error
	for _, pub := range p.publishers {
		if err := pub.Publish(ctx, doc); err != nil {
			p.metrics.PublishErrors.WithLabelValues(pub.Name()).Inc()
			p.logger.Error("publish map failed", "publisher", pub.Name(), "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("publish to %s: %w", pub.Name(), err)
			}
			continue
		}
		p.ready.Store(true)
	}

	p.logger.Info("map rendered",
		"features", len(quakes),
		"markers", len(markers),
		"duration", time.Since(start),
	)
	return firstErr
}
