package render

import (
	"fmt"
	"math"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

// breakdown draws a pie for the selected year.
func (b *builder) breakdown() {
	c, sel := b.c, b.sel
	subs := c.SubDimensions()
	var (
		slices []series.Slice
		label  func(string) string
		color  func(string) string
	)
	if c.Descriptor.Breakdown == chart.AcrossEntities {
		slices = series.EntityBreakdown(c, sel.Entities, sel.SubDimension, sel.Year)
		label, color = c.EntityLabel, b.entityColor
	} else {
		if len(sel.Entities) > 0 {
			slices = series.SubDimensionBreakdown(c, sel.Entities[0], subs, sel.Year)
		}
		label = c.SubLabel
		color = func(s string) string { return b.subColor(s, subs) }
	}
	if len(slices) == 0 {
		b.noData()
		return
	}

	legend := make([]LegendItem, len(slices))
	for i, sl := range slices {
		legend[i] = LegendItem{Label: fmt.Sprintf("%s %s", label(sl.Label), chart.FormatShare(sl.Share)), Color: color(sl.Label)}
	}
	b.layoutPlot(nil, legend, false)

	a := b.plot
	cx, cy := (a.Left+a.Right)/2, (a.Top+a.Bottom)/2
	r := math.Max(10, math.Min(a.Width(), a.Height())/2-8)
	unitSub := sel.SubDimension
	b.s.group("slices", "slices")
	for _, sl := range slices {
		sub := unitSub
		if c.Descriptor.Breakdown != chart.AcrossEntities {
			sub = sl.Label
		}
		title := fmt.Sprintf("%s: %s (%s)", label(sl.Label), c.FormatValue(sub, sl.Value), chart.FormatShare(sl.Share))
		if len(slices) == 1 {
			b.s.add(Command{Kind: KindCircle, X: cx, Y: cy, R: r, Fill: color(sl.Label), Stroke: "#FFFFFF", StrokeWidth: 1, Class: "mark slice", Title: title})
			continue
		}
		b.s.addPath(Command{Path: arcPath(cx, cy, r, sl.StartAngle, sl.EndAngle), Fill: color(sl.Label), Stroke: "#FFFFFF", StrokeWidth: 1, Class: "mark slice", Title: title},
			cx-r, cy-r, 2*r, 2*r)
	}
	b.s.endGroup()
	b.legend(legend)
}

// arcPath is a pie wedge between two angles measured clockwise from 12 o'clock.
func arcPath(cx, cy, r, start, end float64) string {
	x0, y0 := cx+r*math.Sin(start), cy-r*math.Cos(start)
	x1, y1 := cx+r*math.Sin(end), cy-r*math.Cos(end)
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d 1 %.2f,%.2f Z", cx, cy, x0, y0, r, r, large, x1, y1)
}
