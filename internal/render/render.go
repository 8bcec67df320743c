// Package render turns a chart and its current selection into a Scene of draw
// commands, and encodes scenes as SVG.
package render

import (
	"fmt"
	"math"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/dataset"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

const (
	axisColor  = "#444444"
	gridColor  = "#e5e5e5"
	textColor  = "#222222"
	mutedColor = "#777777"
	errorColor = "#b00020"
)

// builder carries the state of one Render call.
type builder struct {
	c     *chart.Chart
	sel   series.Selection
	l     Layout
	s     *Scene
	plot  area
	small FontStyle
}

// Render draws c for sel. The selection is normalized against the chart first,
// so any selection renders. A chart in the error state renders a message scene.
func Render(c *chart.Chart, sel series.Selection, l Layout) (*Scene, error) {
	l = l.withDefaults()
	b := &builder{c: c, l: l}
	b.s = &Scene{
		ChartID:    c.Descriptor.ID,
		Width:      l.Width,
		Height:     l.Height,
		Background: l.Background,
		Font:       l.Font,
		Title:      c.Descriptor.Title,
	}
	b.small = l.Font
	b.small.FontSize = int(math.Max(8, float64(l.Font.FontSize-2)))

	if !c.Ready() {
		b.errorScene()
		return b.s, nil
	}
	b.sel = c.Normalize(sel.Clone())
	b.s.View = b.sel.View
	b.s.Subtitle = b.subtitle()

	var err error
	switch b.sel.View {
	case series.ViewTrend:
		b.trend()
	case series.ViewComparison:
		b.comparison()
	case series.ViewDistribution:
		b.distribution()
	case series.ViewBreakdown:
		b.breakdown()
	case series.ViewHeatmap:
		b.heatmap()
	default:
		err = fmt.Errorf("%w: %s", series.ErrUnsupportedView, b.sel.View)
	}
	if err != nil {
		return nil, err
	}
	return b.s, nil
}

func (b *builder) subtitle() string {
	sub := b.c.SubLabel(b.sel.SubDimension)
	if u := b.c.Unit(b.sel.SubDimension); u != "" {
		sub += " (" + u + ")"
	}
	switch b.sel.View {
	case series.ViewComparison, series.ViewBreakdown:
		return fmt.Sprintf("%s, %d", sub, b.sel.Year)
	case series.ViewDistribution:
		if len(b.sel.Entities) > 0 {
			return fmt.Sprintf("%s, share of total", b.c.EntityLabel(b.sel.Entities[0]))
		}
	}
	return sub
}

// header draws the title block and returns its height.
func (b *builder) header() float64 {
	l := b.l
	y := l.Padding + textHeight(l.TitleFont)
	b.s.text(l.Padding, y, b.s.Title, "start", l.TitleFont, textColor, "title")
	if b.s.Subtitle != "" {
		y += textHeight(l.Font) + 2
		b.s.text(l.Padding, y, b.s.Subtitle, "start", l.Font, mutedColor, "subtitle")
	}
	return y + 10
}

// layoutPlot sizes the plot area around the given tick labels and legend.
func (b *builder) layoutPlot(yLabels []string, legend []LegendItem, xAxis bool) {
	l := b.l
	top := b.header()
	left := l.Padding
	for _, lbl := range yLabels {
		left = math.Max(left, l.Padding+textWidth(lbl, b.small)+8)
	}
	right := l.Width - l.Padding
	if len(legend) > 0 {
		w := 0.0
		for _, it := range legend {
			w = math.Max(w, textWidth(it.Label, b.small))
		}
		right -= w + 28
	}
	bottom := l.Height - l.Padding
	if xAxis {
		bottom -= textHeight(b.small) + 8
	}
	b.plot = area{Left: left, Top: top, Right: math.Max(right, left+10), Bottom: math.Max(bottom, top+10)}
}

// yAxis draws horizontal grid lines and value labels.
func (b *builder) yAxis(ys Linear, ticks []float64, labels []string) {
	a := b.plot
	b.s.group("y-axis", "axis")
	for i, t := range ticks {
		y := ys.Map(t)
		b.s.line(a.Left, y, a.Right, y, gridColor, 1, "grid")
		b.s.text(a.Left-6, y+float64(b.small.FontSize)/3, labels[i], "end", b.small, axisColor, "tick")
	}
	b.s.line(a.Left, a.Top, a.Left, a.Bottom, axisColor, 1, "domain")
	b.s.endGroup()
}

// yearAxis draws the time axis along the bottom of the plot.
func (b *builder) yearAxis(xs Linear, first, last int) {
	a := b.plot
	maxTicks := int(math.Max(2, a.Width()/(textWidth("0000", b.small)+16)))
	b.s.group("x-axis", "axis")
	b.s.line(a.Left, a.Bottom, a.Right, a.Bottom, axisColor, 1, "domain")
	for _, y := range yearTicks(first, last, maxTicks) {
		x := xs.Map(float64(y))
		b.s.line(x, a.Bottom, x, a.Bottom+4, axisColor, 1, "tick")
		b.s.text(x, a.Bottom+4+textHeight(b.small), fmt.Sprint(y), "middle", b.small, axisColor, "tick")
	}
	b.s.endGroup()
}

// bandAxis labels the slots of a band scale along the bottom of the plot.
func (b *builder) bandAxis(band Band, labels []string) {
	a := b.plot
	font := b.small
	for _, lbl := range labels {
		for font.FontSize > 7 && textWidth(lbl, font) > band.Step() {
			font.FontSize--
		}
	}
	b.s.group("x-axis", "axis")
	b.s.line(a.Left, a.Bottom, a.Right, a.Bottom, axisColor, 1, "domain")
	for i, lbl := range labels {
		b.s.text(band.Center(i), a.Bottom+4+textHeight(font), lbl, "middle", font, axisColor, "tick")
	}
	b.s.endGroup()
}

// legend draws the swatches to the right of the plot.
func (b *builder) legend(items []LegendItem) {
	if len(items) == 0 {
		return
	}
	b.s.Legend = items
	x := b.plot.Right + 16
	y := b.plot.Top
	b.s.group("legend", "legend")
	for _, it := range items {
		b.s.rect(x, y, 10, 10, it.Color, "swatch", "")
		b.s.text(x+16, y+9, it.Label, "start", b.small, textColor, "legend-label")
		y += textHeight(b.small) + 6
	}
	b.s.endGroup()
}

// message replaces the plot with a centred status text.
func (b *builder) message(msg, color, detail string) {
	b.s.Message = msg
	cx := b.l.Width / 2
	cy := b.l.Height / 2
	b.s.add(Command{Kind: KindText, X: cx, Y: cy, Text: msg, Anchor: "middle", Font: b.l.Font, Fill: color, Class: "message", Title: detail})
}

func (b *builder) errorScene() {
	b.header()
	detail := ""
	if b.c.Err != nil {
		detail = b.c.Err.Error()
	}
	b.message(dataset.ErrMalformed.Error(), errorColor, detail)
}

func (b *builder) noData() {
	b.layoutPlot(nil, nil, false)
	b.message("No data for the current selection", mutedColor, "")
}

// formatValue renders v the way the chart reports the selected sub-dimension.
func (b *builder) formatValue(sub string, v float64) string {
	if b.c.Descriptor.Shares {
		return chart.FormatShare(v)
	}
	s := b.c.FormatValue(sub, v)
	if u := b.c.Unit(sub); u != "" {
		s += " " + u
	}
	return s
}

// entityColor keeps an entity's colour tied to its position in the selection.
func (b *builder) entityColor(entity string) string {
	for i, e := range b.sel.Entities {
		if e == entity {
			return ColorFor(b.c.Palette(), i)
		}
	}
	return ColorFor(b.c.Palette(), 0)
}

func (b *builder) subColor(sub string, subs []string) string {
	for i, s := range subs {
		if s == sub {
			return ColorFor(b.c.Palette(), i)
		}
	}
	return ColorFor(b.c.Palette(), 0)
}

func tickLabels(ticks []float64, suffix string) []string {
	d := tickDecimals(ticks)
	out := make([]string, len(ticks))
	for i, t := range ticks {
		out[i] = chart.FormatNumber(t, d) + suffix
	}
	return out
}
