package dashboard

import (
	"errors"
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

const (
	tileWidth  = 240
	tileHeight = 72
)

var errNoTrend = errors.New("not enough points for a sparkline")

// sparklinePoints is the default selection's first trend line.
func sparklinePoints(c *chart.Chart) ([]float64, []float64, error) {
	if !c.Ready() {
		return nil, nil, fmt.Errorf("%w: %w", chart.ErrNotReady, c.Err)
	}
	sel := c.DefaultSelection()
	if len(sel.Entities) == 0 {
		return nil, nil, errNoTrend
	}
	entities := sel.Entities[:1]
	var lines []series.Series
	if c.Descriptor.Shares {
		lines = series.ShareTrend(c, entities, sel.SubDimension, c.SubDimensions())
	} else {
		lines = series.Trend(c, entities, sel.SubDimension)
	}
	pts := lines[0].Points
	if len(pts) < 2 {
		return nil, nil, errNoTrend
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys, nil
}

// Sparkline writes a small PNG of the chart's default trend without axes.
func Sparkline(w io.Writer, c *chart.Chart) error {
	xs, ys, err := sparklinePoints(c)
	if err != nil {
		return fmt.Errorf("sparkline %s: %w", c.Descriptor.ID, err)
	}
	color := drawing.ColorFromHex(c.Palette()[0])
	yAxis := gochart.YAxis{Style: gochart.Hidden()}
	if lo, hi, _ := series.Extent(ys); lo == hi {
		yAxis.Range = &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	ch := gochart.Chart{
		Width:      tileWidth,
		Height:     tileHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 6, Left: 4, Right: 4, Bottom: 6}},
		XAxis:      gochart.XAxis{Style: gochart.Hidden()},
		YAxis:      yAxis,
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    c.EntityLabel(c.DefaultSelection().Entities[0]),
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: color,
					StrokeWidth: 2,
					FillColor:   color.WithAlpha(40),
				},
			},
		},
	}
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("sparkline %s: %w", c.Descriptor.ID, err)
	}
	return nil
}
