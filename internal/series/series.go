package series

import (
	"math"
	"sort"
)

// Source is the read side of a parsed, decomposed table.
type Source interface {
	Years() []int
	Value(entity, sub string, year int) (float64, bool)
}

// Point is one (x, y) sample of a trend series.
type Point struct {
	X, Y float64
}

// Series is the shaped data for one selected entity.
type Series struct {
	Entity string
	Points []Point
}

// Bar is one point-in-time comparison value.
type Bar struct {
	Entity string
	Value  float64
}

// Segment is one stacked part of a bar or area. Start and End are cumulative offsets.
type Segment struct {
	SubDimension string
	Value        float64 // raw value
	Share        float64 // percentage of the row total
	Start, End   float64
}

// StackedBar is a comparison bar split into sub-dimension segments.
type StackedBar struct {
	Entity   string
	Total    float64
	Segments []Segment
}

// StackedPoint is one year of a stacked-area series.
type StackedPoint struct {
	Year     int
	Segments []Segment
}

// Slice is one arc of a breakdown pie. Angles are in radians, clockwise from 12 o'clock.
type Slice struct {
	Label      string
	Value      float64
	Share      float64
	StartAngle float64
	EndAngle   float64
}

// Cell is one heatmap square. Norm is Value scaled to [0, 1] over the matrix extent.
type Cell struct {
	Entity string
	Year   int
	Value  float64
	Norm   float64
}

// SortOrder decides how comparison bars are ordered.
type SortOrder int

const (
	Descending SortOrder = iota
	Ascending
)

// Trend returns one series per entity with the (year, value) pairs of sub.
// Years with a null value are omitted, leaving a gap.
func Trend(src Source, entities []string, sub string) []Series {
	years := src.Years()
	out := make([]Series, 0, len(entities))
	for _, e := range entities {
		s := Series{Entity: e}
		for _, y := range years {
			if v, ok := src.Value(e, sub, y); ok {
				s.Points = append(s.Points, Point{X: float64(y), Y: v})
			}
		}
		out = append(out, s)
	}
	return out
}

// ShareTrend is Trend over the percentage of sub within subs. Years where every
// sibling is null are omitted.
func ShareTrend(src Source, entities []string, sub string, subs []string) []Series {
	pos := indexOf(subs, sub)
	years := src.Years()
	out := make([]Series, 0, len(entities))
	for _, e := range entities {
		s := Series{Entity: e}
		if pos >= 0 {
			for _, y := range years {
				shares, ok := Shares(src, e, subs, y)
				if ok {
					s.Points = append(s.Points, Point{X: float64(y), Y: shares[pos]})
				}
			}
		}
		out = append(out, s)
	}
	return out
}

// Compare returns the value of sub in year for each entity, sorted by value.
// Entities without a value are dropped. Ties keep selection order.
func Compare(src Source, entities []string, sub string, year int, order SortOrder) []Bar {
	bars := make([]Bar, 0, len(entities))
	for _, e := range entities {
		if v, ok := src.Value(e, sub, year); ok {
			bars = append(bars, Bar{Entity: e, Value: v})
		}
	}
	sort.SliceStable(bars, func(i, j int) bool {
		if order == Ascending {
			return bars[i].Value < bars[j].Value
		}
		return bars[i].Value > bars[j].Value
	})
	return bars
}

// Percentages converts parts into percentages of their sum. A zero total yields
// zero for every part.
func Percentages(parts []float64) []float64 {
	total := 0.0
	for _, p := range parts {
		total += p
	}
	out := make([]float64, len(parts))
	if total == 0 {
		return out
	}
	for i, p := range parts {
		out[i] = p / total * 100
	}
	return out
}

// Shares returns the percentage of each sub-dimension in subs for one entity and
// year. Null siblings count as zero; ok is false only when all of them are null.
func Shares(src Source, entity string, subs []string, year int) ([]float64, bool) {
	parts, ok := values(src, entity, subs, year)
	if !ok {
		return nil, false
	}
	return Percentages(parts), true
}

// Stack lays parts end to end in order, producing cumulative offsets.
func Stack(parts []float64) [][2]float64 {
	out := make([][2]float64, len(parts))
	offset := 0.0
	for i, p := range parts {
		out[i] = [2]float64{offset, offset + p}
		offset += p
	}
	return out
}

// StackedCompare builds a percentage-stacked bar per entity for year. Bars are
// sorted by the share of sortBy.
func StackedCompare(src Source, entities []string, subs []string, year int, sortBy string, order SortOrder) []StackedBar {
	pos := indexOf(subs, sortBy)
	bars := make([]StackedBar, 0, len(entities))
	for _, e := range entities {
		parts, ok := values(src, e, subs, year)
		if !ok {
			continue
		}
		bars = append(bars, StackedBar{Entity: e, Total: sum(parts), Segments: segments(subs, parts)})
	}
	if pos >= 0 {
		sort.SliceStable(bars, func(i, j int) bool {
			a, b := bars[i].Segments[pos].Share, bars[j].Segments[pos].Share
			if order == Ascending {
				return a < b
			}
			return a > b
		})
	}
	return bars
}

// Distribution builds the stacked percentage area of one entity across all years.
func Distribution(src Source, entity string, subs []string) []StackedPoint {
	var out []StackedPoint
	for _, y := range src.Years() {
		parts, ok := values(src, entity, subs, y)
		if !ok {
			continue
		}
		out = append(out, StackedPoint{Year: y, Segments: segments(subs, parts)})
	}
	return out
}

// Slices lays values around a circle. Non-positive values are skipped.
func Slices(labels []string, values []float64) []Slice {
	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return nil
	}
	out := make([]Slice, 0, len(values))
	angle := 0.0
	for i, v := range values {
		if v <= 0 {
			continue
		}
		sweep := v / total * 2 * math.Pi
		out = append(out, Slice{
			Label:      labels[i],
			Value:      v,
			Share:      v / total * 100,
			StartAngle: angle,
			EndAngle:   angle + sweep,
		})
		angle += sweep
	}
	return out
}

// SubDimensionBreakdown is the pie of every sub-dimension of one entity in year.
func SubDimensionBreakdown(src Source, entity string, subs []string, year int) []Slice {
	parts, ok := values(src, entity, subs, year)
	if !ok {
		return nil
	}
	return Slices(subs, parts)
}

// EntityBreakdown is the pie of sub across entities in year. Nulls are skipped.
func EntityBreakdown(src Source, entities []string, sub string, year int) []Slice {
	labels := make([]string, 0, len(entities))
	vals := make([]float64, 0, len(entities))
	for _, e := range entities {
		if v, ok := src.Value(e, sub, year); ok {
			labels = append(labels, e)
			vals = append(vals, v)
		}
	}
	return Slices(labels, vals)
}

// Heatmap returns one cell per entity and year with a value for sub.
func Heatmap(src Source, entities []string, sub string) []Cell {
	var cells []Cell
	for _, e := range entities {
		for _, y := range src.Years() {
			if v, ok := src.Value(e, sub, y); ok {
				cells = append(cells, Cell{Entity: e, Year: y, Value: v})
			}
		}
	}
	vals := make([]float64, len(cells))
	for i, c := range cells {
		vals[i] = c.Value
	}
	lo, hi, ok := Extent(vals)
	if !ok {
		return cells
	}
	for i := range cells {
		if hi > lo {
			cells[i].Norm = (cells[i].Value - lo) / (hi - lo)
		}
	}
	return cells
}

// Extent returns the minimum and maximum of vals, ignoring NaN.
func Extent(vals []float64) (lo, hi float64, ok bool) {
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, ok
}

// SeriesExtent is Extent over the y values of every series.
func SeriesExtent(ss []Series) (lo, hi float64, ok bool) {
	var vals []float64
	for _, s := range ss {
		for _, p := range s.Points {
			vals = append(vals, p.Y)
		}
	}
	return Extent(vals)
}

func values(src Source, entity string, subs []string, year int) ([]float64, bool) {
	parts := make([]float64, len(subs))
	found := false
	for i, sub := range subs {
		if v, ok := src.Value(entity, sub, year); ok {
			parts[i] = v
			found = true
		}
	}
	return parts, found
}

func segments(subs []string, parts []float64) []Segment {
	shares := Percentages(parts)
	stack := Stack(shares)
	segs := make([]Segment, len(subs))
	for i, sub := range subs {
		segs[i] = Segment{
			SubDimension: sub,
			Value:        parts[i],
			Share:        shares[i],
			Start:        stack[i][0],
			End:          stack[i][1],
		}
	}
	return segs
}

func sum(vals []float64) float64 {
	t := 0.0
	for _, v := range vals {
		t += v
	}
	return t
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
