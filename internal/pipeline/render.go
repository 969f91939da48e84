package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// QuakeRenderer implements Renderer using the domain marker functions with
// optional place enrichment.
type QuakeRenderer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewRenderer creates a QuakeRenderer. Pass a nil geocoder to disable place
// enrichment.
func NewRenderer(geocoder domain.Geocoder, logger *slog.Logger) *QuakeRenderer {
	return &QuakeRenderer{
		geocoder: geocoder,
		logger:   logger,
	}
}

func (r *QuakeRenderer) Render(ctx context.Context, quakes []domain.Earthquake) ([]domain.Marker, error) {
	if r.geocoder != nil {
		enriched := make([]domain.Earthquake, len(quakes))
		for i, q := range quakes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			enriched[i] = domain.EnrichPlace(ctx, q, r.geocoder, r.logger)
		}
		quakes = enriched
	}
	return domain.RenderMarkers(quakes), nil
}

// MapComposer implements Composer for a fixed base layer and feed source.
type MapComposer struct {
	base    domain.TileLayer
	feedURL string
}

// NewComposer creates a MapComposer.
func NewComposer(base domain.TileLayer, feedURL string) *MapComposer {
	return &MapComposer{base: base, feedURL: feedURL}
}

func (c *MapComposer) Compose(markers []domain.Marker) domain.MapDocument {
	return domain.Compose(markers, c.base, c.feedURL)
}
