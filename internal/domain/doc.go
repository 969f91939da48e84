// Package domain models USGS earthquake events and the map that displays them.
//
// # Data Source
//
// Events come from the USGS real-time GeoJSON summary feeds, available at
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/geojson.php. The service
// reads the "all earthquakes, past day" feed by default. Each feed is a GeoJSON
// FeatureCollection whose features are Points.
//
// # USGS Feed Conventions
//
// Coordinates:
//
//	[longitude, latitude, depth]  →  e.g. [-116.7776667, 33.6633333, 12.21]
//	Depth is in kilometers and is not used for display.
//
// Time:
//
//	"time" is milliseconds since the Unix epoch, UTC, e.g. 1714144210940.
//
// Magnitude:
//
//	"mag" is a decimal number. It can be negative for very small events and
//	is occasionally null while a solution is pending. Missing or non-numeric
//	values decode to NaN and are rendered with the default (last) band.
//
// Place:
//
//	"place" is a human-readable description such as "10 km NE of Aguanga, CA".
//	Some events carry an empty place; those may be filled in by reverse
//	geocoding when it is enabled. See [EnrichPlace].
//
// # Magnitude Bands
//
// Markers are styled by six half-open bands with boundaries at 1, 2, 3, 4 and 5.
// Comparisons are strictly less than, checked in ascending order, and the first
// match wins, so a magnitude exactly on a boundary belongs to the higher band:
//
//	Band 0: m < 1     #fdd49e
//	Band 1: m < 2     #fdbb84
//	Band 2: m < 3     #fc8d59
//	Band 3: m < 4     #e34a33
//	Band 4: m < 5     #b30000
//	Band 5: otherwise #fef0d9
//
// Marker radius is linear in magnitude: 20 km per magnitude unit. See [BandFor],
// [CircleColor] and [CircleRadius].
package domain
