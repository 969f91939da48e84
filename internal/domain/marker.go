package domain

import (
	"fmt"
	"html"
	"time"
)

// Circle marker outline and fill settings shared by every marker.
const (
	markerStroke      = "black"
	markerWeight      = 1
	markerFillOpacity = 0.8
)

// MarkerStyle holds Leaflet circle path options.
type MarkerStyle struct {
	Radius      float64 `json:"radius"`
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
	FillColor   string  `json:"fillColor"`
	FillOpacity float64 `json:"fillOpacity"`
}

// Marker is one styled circle with its popup, ready to be placed on the map.
type Marker struct {
	ID        string      `json:"id"`
	Position  LatLng      `json:"position"`
	Magnitude *float64    `json:"magnitude"` // nil when the feed value was malformed
	Band      int         `json:"band"`
	Style     MarkerStyle `json:"style"`
	Popup     string      `json:"popup"`
}

// StyleFor derives the circle style for a magnitude.
func StyleFor(magnitude float64) MarkerStyle {
	return MarkerStyle{
		Radius:      CircleRadius(magnitude),
		Color:       markerStroke,
		Weight:      markerWeight,
		FillColor:   CircleColor(magnitude),
		FillOpacity: markerFillOpacity,
	}
}

// PopupHTML builds the popup body for an earthquake: place heading, then time
// and magnitude. The place is HTML-escaped.
func PopupHTML(e Earthquake) string {
	return fmt.Sprintf("<h3>Location: %s</h3><hr /><p>Time: %s<br />Magnitude: %s</p>",
		html.EscapeString(e.Place), formatPopupTime(e.Time), formatMagnitude(e))
}

func formatPopupTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format(time.RFC1123)
}

func formatMagnitude(e Earthquake) string {
	if !e.HasMagnitude() {
		return "unknown"
	}
	return fmt.Sprintf("%g", e.Magnitude)
}

// NewMarker converts one earthquake into a styled marker.
func NewMarker(e Earthquake) Marker {
	m := Marker{
		ID:       e.ID,
		Position: e.Coordinates,
		Band:     BandIndex(e.Magnitude),
		Style:    StyleFor(e.Magnitude),
		Popup:    PopupHTML(e),
	}
	if e.HasMagnitude() {
		mag := e.Magnitude
		m.Magnitude = &mag
	}
	return m
}

// RenderMarkers produces one marker per earthquake in input order. Duplicates
// are kept and nothing is sorted.
func RenderMarkers(quakes []Earthquake) []Marker {
	markers := make([]Marker, 0, len(quakes))
	for _, q := range quakes {
		markers = append(markers, NewMarker(q))
	}
	return markers
}
