package domain

import (
	"fmt"
	"math"
)

// radiusPerMagnitude is the circle radius, in meters, per unit of magnitude.
const radiusPerMagnitude = 20000

// Band is a half-open magnitude interval [Lower, Upper) mapped to one style.
type Band struct {
	Index int     `json:"index"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"-"` // +Inf for the last band
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// bandThresholds are the exclusive upper bounds of every band but the last.
var bandThresholds = []float64{1, 2, 3, 4, 5}

// bandColors is indexed by band; the last entry is the default bucket.
var bandColors = []string{
	"#fdd49e",
	"#fdbb84",
	"#fc8d59",
	"#e34a33",
	"#b30000",
	"#fef0d9",
}

// Bands returns every magnitude band in ascending order.
func Bands() []Band {
	bands := make([]Band, 0, len(bandColors))
	lower := 0.0
	for i, color := range bandColors {
		b := Band{Index: i, Lower: lower, Upper: math.Inf(1), Color: color}
		if i < len(bandThresholds) {
			b.Upper = bandThresholds[i]
			b.Label = fmt.Sprintf("%g–%g", lower, b.Upper)
			lower = b.Upper
		} else {
			b.Label = fmt.Sprintf("%g+", lower)
		}
		bands = append(bands, b)
	}
	return bands
}

// BandIndex returns the band a magnitude falls in. Thresholds are checked in
// ascending order with strictly-less-than comparisons and the first match wins.
// NaN fails every comparison and lands in the last band.
func BandIndex(magnitude float64) int {
	for i, upper := range bandThresholds {
		if magnitude < upper {
			return i
		}
	}
	return len(bandThresholds)
}

// BandFor returns the band for a magnitude.
func BandFor(magnitude float64) Band {
	return Bands()[BandIndex(magnitude)]
}

// CircleColor maps a magnitude to its marker fill color.
func CircleColor(magnitude float64) string {
	return bandColors[BandIndex(magnitude)]
}

// CircleRadius maps a magnitude to a circle radius in meters. Negative and
// non-finite magnitudes yield 0 so the marker still renders as a point.
func CircleRadius(magnitude float64) float64 {
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) || magnitude < 0 {
		return 0
	}
	return magnitude * radiusPerMagnitude
}
