package mapbox

import "github.com/couchcryptid/quake-map-service/internal/domain"

const (
	tileURLTemplate = "https://api.tiles.mapbox.com/v4/{id}/{z}/{x}/{y}.png?access_token={accessToken}"
	tileAttribution = `Map data &copy; <a href="https://www.openstreetmap.org/">OpenStreetMap</a> contributors, ` +
		`<a href="https://creativecommons.org/licenses/by-sa/2.0/">CC-BY-SA</a>, ` +
		`Imagery © <a href="https://www.mapbox.com/">Mapbox</a>`
	tileMaxZoom      = 18
	defaultTilesetID = "mapbox.light"
)

// TileLayer describes the Mapbox raster base layer. The access token is
// substituted into the URL template by the mapping library.
func TileLayer(token, tilesetID string) domain.TileLayer {
	if tilesetID == "" {
		tilesetID = defaultTilesetID
	}
	return domain.TileLayer{
		URLTemplate: tileURLTemplate,
		Attribution: tileAttribution,
		MaxZoom:     tileMaxZoom,
		ID:          tilesetID,
		AccessToken: token,
	}
}
