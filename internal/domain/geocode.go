package domain

import (
	"context"
	"log/slog"
)

// GeocodingResult is the best place match for a coordinate.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // provider relevance, 0..1
}

// Geocoder resolves an epicenter to a place.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}

// EnrichPlace fills in an empty place by reverse geocoding the event's
// coordinates. Events that already have a place, a nil geocoder, and failed or
// empty lookups all return the event unchanged (graceful degradation).
func EnrichPlace(ctx context.Context, e Earthquake, geocoder Geocoder, logger *slog.Logger) Earthquake {
	if geocoder == nil || e.Place != "" {
		return e
	}

	result, err := geocoder.ReverseGeocode(ctx, e.Coordinates.Lat, e.Coordinates.Lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"event_id", e.ID,
			"lat", e.Coordinates.Lat,
			"lon", e.Coordinates.Lon,
			"error", err,
		)
		return e
	}

	switch {
	case result.FormattedAddress != "":
		e.Place = result.FormattedAddress
	case result.PlaceName != "":
		e.Place = result.PlaceName
	}
	return e
}
