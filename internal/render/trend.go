package render

import (
	"fmt"

	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

// trend draws one line per selected entity with a marker per year.
func (b *builder) trend() {
	c, sel := b.c, b.sel
	var lines []series.Series
	if c.Descriptor.Shares {
		lines = series.ShareTrend(c, sel.Entities, sel.SubDimension, c.SubDimensions())
	} else {
		lines = series.Trend(c, sel.Entities, sel.SubDimension)
	}
	lo, hi, ok := series.SeriesExtent(lines)
	first, last, hasYears := c.YearRange()
	if !ok || !hasYears {
		b.noData()
		return
	}

	ylo, yhi, ticks := niceDomain(lo, hi, false)
	labels := tickLabels(ticks, "")
	legend := make([]LegendItem, len(sel.Entities))
	for i, e := range sel.Entities {
		legend[i] = LegendItem{Label: c.EntityLabel(e), Color: ColorFor(c.Palette(), i)}
	}
	b.layoutPlot(labels, legend, true)

	xs := Linear{D0: float64(first), D1: float64(last), R0: b.plot.Left, R1: b.plot.Right}
	ys := Linear{D0: ylo, D1: yhi, R0: b.plot.Bottom, R1: b.plot.Top}
	b.yAxis(ys, ticks, labels)
	b.yearAxis(xs, first, last)

	for i, line := range lines {
		color := ColorFor(c.Palette(), i)
		label := c.EntityLabel(line.Entity)
		b.s.group("series-"+line.Entity, "series")
		if len(line.Points) > 1 {
			pts := make([]series.Point, len(line.Points))
			for j, p := range line.Points {
				pts[j] = series.Point{X: xs.Map(p.X), Y: ys.Map(p.Y)}
			}
			b.s.add(Command{Kind: KindPolyline, Points: pts, Stroke: color, StrokeWidth: 2, Fill: "none", Class: "line"})
		}
		for _, p := range line.Points {
			title := fmt.Sprintf("%s, %d: %s", label, int(p.X), b.formatValue(sel.SubDimension, p.Y))
			if cl := c.Classify(sel.SubDimension, p.Y); cl != "" {
				title += " (" + cl + ")"
			}
			b.s.add(Command{Kind: KindCircle, X: xs.Map(p.X), Y: ys.Map(p.Y), R: 3, Fill: color, Stroke: "#FFFFFF", StrokeWidth: 1, Class: "mark point", Title: title})
		}
		b.s.endGroup()
	}
	b.legend(legend)

	b.s.tips = b.trendTips(xs, c.Years(), lines)
	b.s.hitBands(b.plot)
}

// trendTips builds one tooltip per year in which any selected series has a
// value, listing every selected series.
func (b *builder) trendTips(xs Linear, years []int, lines []series.Series) *tipIndex {
	c, sub := b.c, b.sel.SubDimension
	idx := &tipIndex{x: xs}
	for _, y := range years {
		t := Tooltip{Year: y, X: xs.Map(float64(y))}
		found := false
		for i, line := range lines {
			tl := TooltipLine{Label: c.EntityLabel(line.Entity), Value: "n/a", Color: ColorFor(c.Palette(), i)}
			for _, p := range line.Points {
				if int(p.X) == y {
					tl.Value = b.formatValue(sub, p.Y)
					tl.Class = c.Classify(sub, p.Y)
					found = true
					break
				}
			}
			t.Lines = append(t.Lines, tl)
		}
		// years no selected series reports are not tooltip positions
		if !found {
			continue
		}
		idx.xs = append(idx.xs, float64(y))
		idx.tips = append(idx.tips, t)
	}
	return idx
}
