package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandIndex(t *testing.T) {
	tests := []struct {
		name      string
		magnitude float64
		expected  int
	}{
		{"negative", -0.5, 0},
		{"zero", 0, 0},
		{"just below 1", 0.99, 0},
		{"exactly 1", 1, 1},
		{"mid band 1", 1.5, 1},
		{"exactly 2", 2, 2},
		{"exactly 3", 3, 3},
		{"just below 5", 4.99, 4},
		{"exactly 4", 4, 4},
		{"exactly 5", 5, 5},
		{"large", 9.1, 5},
		{"NaN falls through", math.NaN(), 5},
		{"positive infinity", math.Inf(1), 5},
		{"negative infinity", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BandIndex(tt.magnitude))
		})
	}
}

func TestCircleColor(t *testing.T) {
	tests := []struct {
		name      string
		magnitude float64
		expected  string
	}{
		{"below 1", 0.3, "#fdd49e"},
		{"1 to 2", 1.2, "#fdbb84"},
		{"2 to 3", 2.7, "#fc8d59"},
		{"3 to 4", 3.0, "#e34a33"},
		{"4 to 5", 4.4, "#b30000"},
		{"5 and above", 5.0, "#fef0d9"},
		{"malformed", math.NaN(), "#fef0d9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CircleColor(tt.magnitude))
		})
	}
}

func TestCircleRadius(t *testing.T) {
	tests := []struct {
		name      string
		magnitude float64
		expected  float64
	}{
		{"zero", 0, 0},
		{"one", 1, 20000},
		{"fractional", 2.5, 50000},
		{"large", 7, 140000},
		{"negative clamps", -1.2, 0},
		{"NaN clamps", math.NaN(), 0},
		{"infinity clamps", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CircleRadius(tt.magnitude), 1e-9)
		})
	}
}

func TestBands_BelowOneAndAboveFive(t *testing.T) {
	for _, m := range []float64{-2, 0, 0.5, 0.999} {
		assert.Equal(t, bandColors[0], CircleColor(m), "magnitude %g", m)
		assert.Equal(t, 0, BandFor(m).Index)
	}
	for _, m := range []float64{5, 5.01, 6.3, 9.5} {
		assert.Equal(t, bandColors[5], CircleColor(m), "magnitude %g", m)
		assert.Equal(t, 5, BandFor(m).Index)
	}
}

func TestBands_BoundariesBelongToHigherBand(t *testing.T) {
	for i, threshold := range bandThresholds {
		assert.Equal(t, i+1, BandIndex(threshold), "threshold %g", threshold)
		assert.Equal(t, i, BandIndex(math.Nextafter(threshold, math.Inf(-1))), "just below %g", threshold)
	}
}

func TestBands(t *testing.T) {
	bands := Bands()
	require.Len(t, bands, 6)

	labels := make([]string, 0, len(bands))
	for i, b := range bands {
		assert.Equal(t, i, b.Index)
		assert.Equal(t, bandColors[i], b.Color)
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"0–1", "1–2", "2–3", "3–4", "4–5", "5+"}, labels)
	assert.True(t, math.IsInf(bands[5].Upper, 1))
	assert.Equal(t, 5.0, bands[5].Lower)
}
