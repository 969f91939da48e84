package domain

import (
	"math"
	"time"
)

// LatLng is a WGS-84 latitude/longitude pair in Leaflet order.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Earthquake is a single event decoded from a feed feature.
type Earthquake struct {
	ID          string    `json:"id"`
	Place       string    `json:"place"`
	Time        time.Time `json:"time"`
	TimeMillis  int64     `json:"time_ms"`
	Magnitude   float64   `json:"-"`
	Coordinates LatLng    `json:"coordinates"`
	URL         string    `json:"url,omitempty"`
}

// HasMagnitude reports whether the feed supplied a usable magnitude.
func (e Earthquake) HasMagnitude() bool {
	return !math.IsNaN(e.Magnitude) && !math.IsInf(e.Magnitude, 0)
}

// EventTime converts a feed "time" value (Unix milliseconds) to UTC.
// Returns zero time for a zero input.
func EventTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
