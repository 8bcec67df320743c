package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColorFor returns the palette colour at position i. Positions wrap around, so
// colours follow selection order rather than entity identity.
func ColorFor(palette []string, i int) string {
	if len(palette) == 0 {
		return "#444444"
	}
	if i < 0 {
		i = 0
	}
	return palette[i%len(palette)]
}

// heatLow and heatHigh bound the sequential heatmap ramp.
const (
	heatLow  = "#f7fbff"
	heatHigh = "#08306b"
)

// Ramp interpolates between two hex colours; t is clamped to [0, 1].
func Ramp(from, to string, t float64) string {
	t = math.Max(0, math.Min(1, t))
	r1, g1, b1 := parseHex(from)
	r2, g2, b2 := parseHex(to)
	lerp := func(a, b int) int {
		return int(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return fmt.Sprintf("#%02x%02x%02x", lerp(r1, r2), lerp(g1, g2), lerp(b1, b2))
}

func parseHex(c string) (int, int, int) {
	c = strings.TrimPrefix(c, "#")
	if len(c) == 3 {
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	}
	if len(c) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(c, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

// textOn picks black or white text for a fill colour.
func textOn(fill string) string {
	r, g, b := parseHex(fill)
	if 0.299*float64(r)+0.587*float64(g)+0.114*float64(b) > 150 {
		return "#222222"
	}
	return "#ffffff"
}
