package render

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// TooltipLine is one series' entry in a tooltip.
type TooltipLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
	// Class is the classification tier of the value, if the chart defines tiers.
	Class string `json:"class,omitempty"`
	Color string `json:"color"`
}

// Tooltip describes the hover readout for one x position.
type Tooltip struct {
	Year  int
	X     float64 // pixel position of the data point
	Lines []TooltipLine
}

// String renders the tooltip as plain text, one series per line.
func (t Tooltip) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(t.Year))
	for _, l := range t.Lines {
		b.WriteString("\n")
		b.WriteString(l.Label)
		b.WriteString(": ")
		b.WriteString(l.Value)
		if l.Class != "" {
			b.WriteString(" (")
			b.WriteString(l.Class)
			b.WriteString(")")
		}
	}
	return b.String()
}

// tipIndex holds the per-year tooltips of a time-based scene.
type tipIndex struct {
	x    Linear
	xs   []float64 // data x (years), ascending
	tips []Tooltip
}

// NearestIndex returns the index of the value in xs closest to x. xs must be
// ascending. Positions before the first or after the last value report false.
// A pointer exactly halfway between two values resolves to the earlier one.
func NearestIndex(xs []float64, x float64) (int, bool) {
	n := len(xs)
	if n == 0 || x < xs[0] || x > xs[n-1] {
		return -1, false
	}
	i := sort.SearchFloat64s(xs, x)
	if xs[i] == x {
		return i, true
	}
	// xs[i-1] < x < xs[i]
	if x-xs[i-1] <= xs[i]-x {
		return i - 1, true
	}
	return i, true
}

// TooltipAt returns the tooltip nearest to the pointer x position in pixels.
// Only trend and distribution scenes carry tooltips.
func (s *Scene) TooltipAt(px float64) (Tooltip, bool) {
	if s.tips == nil {
		return Tooltip{}, false
	}
	xs := s.tips.xs
	x := s.tips.x.Invert(px)
	// absorb rounding from the pixel round trip at the ends
	if n := len(xs); n > 0 {
		if math.Abs(x-xs[0]) < 1e-6 {
			x = xs[0]
		} else if math.Abs(x-xs[n-1]) < 1e-6 {
			x = xs[n-1]
		}
	}
	i, ok := NearestIndex(xs, x)
	if !ok {
		return Tooltip{}, false
	}
	return s.tips.tips[i], true
}

// Tooltips returns every tooltip of the scene in x order.
func (s *Scene) Tooltips() []Tooltip {
	if s.tips == nil {
		return nil
	}
	return append([]Tooltip(nil), s.tips.tips...)
}

// hitBands materialises the tooltip index as one transparent rectangle per
// data x, reaching halfway to each neighbour.
func (s *Scene) hitBands(a area) {
	if s.tips == nil {
		return
	}
	n := len(s.tips.xs)
	s.group("hits", "hits")
	for i, t := range s.tips.tips {
		left := s.tips.x.Map(s.tips.xs[i])
		right := left
		if i > 0 {
			left = (s.tips.x.Map(s.tips.xs[i-1]) + s.tips.x.Map(s.tips.xs[i])) / 2
		}
		if i < n-1 {
			right = (s.tips.x.Map(s.tips.xs[i]) + s.tips.x.Map(s.tips.xs[i+1])) / 2
		}
		w := right - left
		if w <= 0 {
			w = 1
			left -= 0.5
		}
		s.add(Command{Kind: KindHitRegion, X: left, Y: a.Top, W: w, H: a.Height(), Class: "hit", Title: t.String()})
	}
	s.endGroup()
}
