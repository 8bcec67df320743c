package render

import (
	"bytes"
	"fmt"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

// distribution draws the stacked percentage area of the first selected entity.
func (b *builder) distribution() {
	c, sel := b.c, b.sel
	subs := c.SubDimensions()
	if len(sel.Entities) == 0 || len(subs) == 0 {
		b.noData()
		return
	}
	entity := sel.Entities[0]
	pts := series.Distribution(c, entity, subs)
	if len(pts) == 0 {
		b.noData()
		return
	}
	ticks := []float64{0, 20, 40, 60, 80, 100}
	labels := tickLabels(ticks, "%")
	legend := make([]LegendItem, len(subs))
	for i, s := range subs {
		legend[i] = LegendItem{Label: c.SubLabel(s), Color: ColorFor(c.Palette(), i)}
	}
	b.layoutPlot(labels, legend, true)

	first, last, ok := c.YearRange()
	if !ok {
		first, last = pts[0].Year, pts[len(pts)-1].Year
	}
	xs := Linear{D0: float64(first), D1: float64(last), R0: b.plot.Left, R1: b.plot.Right}
	ys := Linear{D0: 0, D1: 100, R0: b.plot.Bottom, R1: b.plot.Top}
	b.yAxis(ys, ticks, labels)
	b.yearAxis(xs, first, last)

	b.s.group("areas", "areas")
	for i, sub := range subs {
		var d bytes.Buffer
		for j, p := range pts {
			cmd := "L"
			if j == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&d, "%s%.2f,%.2f ", cmd, xs.Map(float64(p.Year)), ys.Map(p.Segments[i].End))
		}
		for j := len(pts) - 1; j >= 0; j-- {
			p := pts[j]
			fmt.Fprintf(&d, "L%.2f,%.2f ", xs.Map(float64(p.Year)), ys.Map(p.Segments[i].Start))
		}
		d.WriteString("Z")
		class := "mark area"
		if sub == sel.SubDimension {
			class += " selected"
		}
		b.s.addPath(Command{Path: d.String(), Fill: ColorFor(c.Palette(), i), Opacity: 0.85, Class: class, Title: c.SubLabel(sub)},
			b.plot.Left, b.plot.Top, b.plot.Width(), b.plot.Height())
	}
	b.s.endGroup()
	b.legend(legend)

	idx := &tipIndex{x: xs}
	for _, p := range pts {
		t := Tooltip{Year: p.Year, X: xs.Map(float64(p.Year))}
		for i, seg := range p.Segments {
			t.Lines = append(t.Lines, TooltipLine{
				Label: c.SubLabel(seg.SubDimension),
				Value: fmt.Sprintf("%s (%s)", chart.FormatShare(seg.Share), c.FormatValue(seg.SubDimension, seg.Value)),
				Color: ColorFor(c.Palette(), i),
			})
		}
		idx.xs = append(idx.xs, float64(p.Year))
		idx.tips = append(idx.tips, t)
	}
	b.s.tips = idx
	b.s.hitBands(b.plot)
}
