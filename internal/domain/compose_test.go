package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTileLayer = TileLayer{
	URLTemplate: "https://tiles.example.com/{id}/{z}/{x}/{y}.png?access_token={accessToken}",
	Attribution: "test",
	MaxZoom:     18,
	ID:          "mapbox.light",
	AccessToken: "pk.test",
}

func TestBuildLegend(t *testing.T) {
	legend := BuildLegend()

	assert.Equal(t, "bottomright", legend.Position)
	want := []LegendEntry{
		{Label: "0–1", Color: "#fdd49e"},
		{Label: "1–2", Color: "#fdbb84"},
		{Label: "2–3", Color: "#fc8d59"},
		{Label: "3–4", Color: "#e34a33"},
		{Label: "4–5", Color: "#b30000"},
		{Label: "5+", Color: "#fef0d9"},
	}
	if diff := cmp.Diff(want, legend.Entries); diff != "" {
		t.Errorf("legend entries mismatch (-want +got):\n%s", diff)
	}
}

func TestLegend_HTML(t *testing.T) {
	got := BuildLegend().HTML()

	assert.Equal(t,
		`<i style="background:#fdd49e"></i> 0–1<br>`+
			`<i style="background:#fdbb84"></i> 1–2<br>`+
			`<i style="background:#fc8d59"></i> 2–3<br>`+
			`<i style="background:#e34a33"></i> 3–4<br>`+
			`<i style="background:#b30000"></i> 4–5<br>`+
			`<i style="background:#fef0d9"></i> 5+`,
		got)
}

func TestCompose(t *testing.T) {
	frozen := time.Date(2024, 4, 27, 6, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { SetClock(nil) })

	markers := RenderMarkers([]Earthquake{sampleQuake("a", 1.1), sampleQuake("b", 5.6)})
	doc := Compose(markers, testTileLayer, "https://feed.example.com/all_day.geojson")

	assert.Equal(t, MapView{ContainerID: "map", Center: LatLng{Lat: 37.09, Lon: -95.71}, Zoom: 5}, doc.View)
	require.Contains(t, doc.BaseLayers, "Light Map")
	assert.Equal(t, testTileLayer, doc.BaseLayers["Light Map"])
	assert.Len(t, doc.BaseLayers, 1)
	require.Contains(t, doc.Overlays, "Earthquakes")
	assert.Len(t, doc.Overlays, 1)
	assert.Equal(t, markers, doc.Markers())
	assert.False(t, doc.LayerControl.Collapsed)
	assert.Len(t, doc.Legend.Entries, 6)
	assert.Equal(t, "https://feed.example.com/all_day.geojson", doc.FeedURL)
	assert.Equal(t, frozen, doc.GeneratedAt)
}

func TestCompose_NoMarkers(t *testing.T) {
	doc := Compose(nil, testTileLayer, "")

	assert.NotNil(t, doc.Markers())
	assert.Empty(t, doc.Markers())

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Earthquakes":[]`)
}

func TestCompose_JSONShape(t *testing.T) {
	markers := RenderMarkers([]Earthquake{sampleQuake("a", 2.0)})
	data, err := json.Marshal(Compose(markers, testTileLayer, ""))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	view := decoded["view"].(map[string]any)
	assert.Equal(t, "map", view["containerId"])
	assert.Equal(t, 5.0, view["zoom"])

	control := decoded["layerControl"].(map[string]any)
	assert.Equal(t, false, control["collapsed"])

	overlay := decoded["overlays"].(map[string]any)["Earthquakes"].([]any)
	require.Len(t, overlay, 1)
	style := overlay[0].(map[string]any)["style"].(map[string]any)
	assert.Equal(t, "#fc8d59", style["fillColor"])
}
