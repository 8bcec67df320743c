package render

import (
	"fmt"
	"math"

	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

// heatmap draws an entity by year matrix shaded on a sequential ramp.
func (b *builder) heatmap() {
	c, sel := b.c, b.sel
	cells := series.Heatmap(c, sel.Entities, sel.SubDimension)
	years := c.Years()
	if len(cells) == 0 || len(years) == 0 {
		b.noData()
		return
	}
	vals := make([]float64, len(cells))
	for i, cell := range cells {
		vals[i] = cell.Value
	}
	lo, hi, _ := series.Extent(vals)
	names := make([]string, len(sel.Entities))
	for i, e := range sel.Entities {
		names[i] = c.EntityLabel(e)
	}
	legend := []LegendItem{
		{Label: c.FormatValue(sel.SubDimension, lo), Color: Ramp(heatLow, heatHigh, 0)},
		{Label: c.FormatValue(sel.SubDimension, hi), Color: Ramp(heatLow, heatHigh, 1)},
	}
	b.layoutPlot(names, legend, true)

	a := b.plot
	cols := Band{N: len(years), R0: a.Left, R1: a.Right, Padding: 0.05}
	rows := Band{N: len(names), R0: a.Top, R1: a.Bottom, Padding: 0.05}
	col := make(map[int]int, len(years))
	for i, y := range years {
		col[y] = i
	}
	row := make(map[string]int, len(sel.Entities))
	b.s.group("y-axis", "axis")
	for i, e := range sel.Entities {
		row[e] = i
		b.s.text(a.Left-6, rows.Center(i)+float64(b.small.FontSize)/3, names[i], "end", b.small, axisColor, "tick")
	}
	b.s.endGroup()

	b.s.group("cells", "cells")
	for _, cell := range cells {
		i, j := col[cell.Year], row[cell.Entity]
		fill := Ramp(heatLow, heatHigh, cell.Norm)
		title := fmt.Sprintf("%s, %d: %s", c.EntityLabel(cell.Entity), cell.Year, b.formatValue(sel.SubDimension, cell.Value))
		if cl := c.Classify(sel.SubDimension, cell.Value); cl != "" {
			title += " (" + cl + ")"
		}
		b.s.rect(cols.Pos(i), rows.Pos(j), cols.Width(), rows.Width(), fill, "mark cell", title)
		if cols.Width() >= textWidth(c.FormatValue(sel.SubDimension, cell.Value), b.small)+4 && rows.Width() >= textHeight(b.small) {
			b.s.text(cols.Center(i), rows.Center(j)+float64(b.small.FontSize)/3, c.FormatValue(sel.SubDimension, cell.Value), "middle", b.small, textOn(fill), "value")
		}
	}
	b.s.endGroup()

	maxTicks := int(math.Max(2, a.Width()/(textWidth("0000", b.small)+16)))
	b.s.group("x-axis", "axis")
	for _, y := range yearTicks(years[0], years[len(years)-1], maxTicks) {
		if i, ok := col[y]; ok {
			b.s.text(cols.Center(i), a.Bottom+4+textHeight(b.small), fmt.Sprint(y), "middle", b.small, axisColor, "tick")
		}
	}
	b.s.endGroup()
	b.legend(legend)
}
