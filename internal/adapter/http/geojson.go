package http

import (
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// markersToGeoJSON converts rendered markers into a FeatureCollection with the
// circle style carried in each feature's properties.
func markersToGeoJSON(markers []domain.Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(orb.Point{m.Position.Lon, m.Position.Lat})
		f.ID = m.ID
		f.Properties["band"] = m.Band
		f.Properties["radius"] = m.Style.Radius
		f.Properties["color"] = m.Style.Color
		f.Properties["weight"] = m.Style.Weight
		f.Properties["fillColor"] = m.Style.FillColor
		f.Properties["fillOpacity"] = m.Style.FillOpacity
		f.Properties["popup"] = m.Popup
		if m.Magnitude != nil {
			f.Properties["mag"] = *m.Magnitude
		} else {
			f.Properties["mag"] = nil
		}
		fc.Append(f)
	}
	return fc
}
