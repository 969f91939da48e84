package domain

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Fixed initial view of the map.
const (
	MapContainerID = "map"
	DefaultZoom    = 5

	BaseLayerName    = "Light Map"
	OverlayLayerName = "Earthquakes"
	LegendPosition   = "bottomright"
)

// DefaultCenter is the initial map center over the contiguous United States.
var DefaultCenter = LatLng{Lat: 37.09, Lon: -95.71}

// TileLayer describes a raster tile base layer.
type TileLayer struct {
	URLTemplate string `json:"urlTemplate"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
	ID          string `json:"id"`
	AccessToken string `json:"accessToken,omitempty"`
}

// MapView is the initial view handed to the mapping library.
type MapView struct {
	ContainerID string `json:"containerId"`
	Center      LatLng `json:"center"`
	Zoom        int    `json:"zoom"`
}

// LayerControl configures the base/overlay toggle.
type LayerControl struct {
	Collapsed bool `json:"collapsed"`
}

// LegendEntry is one colored swatch and its magnitude label.
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Legend is the magnitude key shown in a map corner.
type Legend struct {
	Position string        `json:"position"`
	Entries  []LegendEntry `json:"entries"`
}

// MapDocument is the complete description of the rendered map. It is built in
// a single pass and never updated afterwards.
type MapDocument struct {
	View         MapView              `json:"view"`
	BaseLayers   map[string]TileLayer `json:"baseLayers"`
	Overlays     map[string][]Marker  `json:"overlays"`
	LayerControl LayerControl         `json:"layerControl"`
	Legend       Legend               `json:"legend"`
	FeedURL      string               `json:"feedUrl,omitempty"`
	GeneratedAt  time.Time            `json:"generatedAt"`
}

// Markers returns the earthquake overlay markers.
func (d MapDocument) Markers() []Marker {
	return d.Overlays[OverlayLayerName]
}

// BuildLegend returns one entry per magnitude band in ascending order.
func BuildLegend() Legend {
	bands := Bands()
	entries := make([]LegendEntry, 0, len(bands))
	for _, b := range bands {
		entries = append(entries, LegendEntry{Label: b.Label, Color: b.Color})
	}
	return Legend{Position: LegendPosition, Entries: entries}
}

// HTML renders the legend body: a swatch and label per entry, one per line.
func (l Legend) HTML() string {
	var b strings.Builder
	for i, e := range l.Entries {
		fmt.Fprintf(&b, `<i style="background:%s"></i> %s`,
			html.EscapeString(e.Color), html.EscapeString(e.Label))
		if i < len(l.Entries)-1 {
			b.WriteString("<br>")
		}
	}
	return b.String()
}

// Compose assembles the map: fixed view, one base tile layer, the marker
// overlay, an expanded layer control and the legend.
func Compose(markers []Marker, base TileLayer, feedURL string) MapDocument {
	if markers == nil {
		markers = []Marker{}
	}
	return MapDocument{
		View: MapView{
			ContainerID: MapContainerID,
			Center:      DefaultCenter,
			Zoom:        DefaultZoom,
		},
		BaseLayers:   map[string]TileLayer{BaseLayerName: base},
		Overlays:     map[string][]Marker{OverlayLayerName: markers},
		LayerControl: LayerControl{Collapsed: false},
		Legend:       BuildLegend(),
		FeedURL:      feedURL,
		GeneratedAt:  clock.Now().UTC(),
	}
}
