package render

import (
	"fmt"
	"math"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

// comparison draws sorted bars for the selected year. Share charts get
// percentage-stacked bars split by sub-dimension.
func (b *builder) comparison() {
	if b.c.Descriptor.Shares {
		b.stackedBars()
		return
	}
	c, sel := b.c, b.sel
	bars := series.Compare(c, sel.Entities, sel.SubDimension, sel.Year, c.Descriptor.Order)
	if len(bars) == 0 {
		b.noData()
		return
	}
	vals := make([]float64, len(bars))
	total := 0.0
	for i, bar := range bars {
		vals[i] = bar.Value
		total += bar.Value
	}
	lo, hi, _ := series.Extent(vals)
	ylo, yhi, ticks := niceDomain(math.Min(lo, 0), hi, true)
	labels := tickLabels(ticks, "")
	b.layoutPlot(labels, nil, true)

	ys := Linear{D0: ylo, D1: yhi, R0: b.plot.Bottom, R1: b.plot.Top}
	band := Band{N: len(bars), R0: b.plot.Left, R1: b.plot.Right, Padding: 0.3}
	b.yAxis(ys, ticks, labels)

	names := make([]string, len(bars))
	base := ys.Map(math.Max(ylo, 0))
	b.s.group("bars", "bars")
	for i, bar := range bars {
		names[i] = c.EntityLabel(bar.Entity)
		top := ys.Map(bar.Value)
		y, h := math.Min(top, base), math.Abs(base-top)
		pct := 0.0
		if total != 0 {
			pct = bar.Value / total * 100
		}
		title := fmt.Sprintf("%s: %s (%s of total)", names[i], b.formatValue(sel.SubDimension, bar.Value), chart.FormatShare(pct))
		if cl := c.Classify(sel.SubDimension, bar.Value); cl != "" {
			title += ", " + cl
		}
		b.s.rect(band.Pos(i), y, band.Width(), math.Max(h, 0.5), b.entityColor(bar.Entity), "mark bar", title)
		b.s.text(band.Center(i), y-4, c.FormatValue(sel.SubDimension, bar.Value), "middle", b.small, textColor, "value")
	}
	b.s.endGroup()
	b.bandAxis(band, names)
}

// stackedBars draws one 100% bar per entity, sorted by the selected share.
func (b *builder) stackedBars() {
	c, sel := b.c, b.sel
	subs := c.SubDimensions()
	bars := series.StackedCompare(c, sel.Entities, subs, sel.Year, sel.SubDimension, c.Descriptor.Order)
	if len(bars) == 0 {
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

	ys := Linear{D0: 0, D1: 100, R0: b.plot.Bottom, R1: b.plot.Top}
	band := Band{N: len(bars), R0: b.plot.Left, R1: b.plot.Right, Padding: 0.3}
	b.yAxis(ys, ticks, labels)

	names := make([]string, len(bars))
	b.s.group("bars", "bars")
	for i, bar := range bars {
		names[i] = c.EntityLabel(bar.Entity)
		for _, seg := range bar.Segments {
			if seg.Share <= 0 {
				continue
			}
			y0, y1 := ys.Map(seg.End), ys.Map(seg.Start)
			title := fmt.Sprintf("%s, %s: %s (%s)", names[i], c.SubLabel(seg.SubDimension),
				chart.FormatShare(seg.Share), c.FormatValue(seg.SubDimension, seg.Value))
			class := "mark segment"
			if seg.SubDimension == sel.SubDimension {
				class += " selected"
			}
			b.s.rect(band.Pos(i), y0, band.Width(), y1-y0, b.subColor(seg.SubDimension, subs), class, title)
		}
	}
	b.s.endGroup()
	b.bandAxis(band, names)
	b.legend(legend)
}
