package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/render"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

// HTML wraps a rendered scene in a standalone page with its legend and a
// summary of the selection that produced it.
func HTML(scene *render.Scene, c *chart.Chart, sel series.Selection) (string, error) {
	if scene == nil {
		return "", fmt.Errorf("no scene to embed")
	}
	var b strings.Builder
	d := c.Descriptor

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(d.Title))
	b.WriteString("<style>\n")
	fmt.Fprintf(&b, "body { margin: 0; padding: 32px; font-family: %s; font-size: %dpx; color: #222; }\n",
		escapeCSS(scene.Font.FontFamily), scene.Font.FontSize)
	b.WriteString(`.chart-card { max-width: ` + fmt.Sprintf("%.0f", scene.Width) + `px; margin: 0 auto; }
.chart-card h1 { font-size: 1.4em; margin: 0 0 4px; }
.chart-card .description { color: #555; margin: 0 0 12px; }
.legend { list-style: none; padding: 0; display: flex; flex-wrap: wrap; gap: 12px; }
.legend .swatch { display: inline-block; width: 10px; height: 10px; margin-right: 6px; }
.selection { border-collapse: collapse; margin-top: 12px; }
.selection th { text-align: left; padding-right: 16px; color: #555; font-weight: normal; }
.source, .excluded { color: #777; font-size: 0.9em; }
`)
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString("<div class=\"chart-card\">\n")
	fmt.Fprintf(&b, "  <h1>%s</h1>\n", html.EscapeString(d.Title))
	if d.Description != "" {
		fmt.Fprintf(&b, "  <p class=\"description\">%s</p>\n", html.EscapeString(d.Description))
	}

	b.WriteString("  <div class=\"chart\">\n")
	b.WriteString(scene.SVG())
	b.WriteString("  </div>\n")

	if len(scene.Legend) > 0 {
		b.WriteString("  <ul class=\"legend\">\n")
		for _, it := range scene.Legend {
			fmt.Fprintf(&b, "    <li><span class=\"swatch\" style=\"background:%s\"></span>%s</li>\n",
				escapeCSS(it.Color), html.EscapeString(it.Label))
		}
		b.WriteString("  </ul>\n")
	}

	if c.Ready() {
		sel = c.Normalize(sel.Clone())
		labels := make([]string, len(sel.Entities))
		for i, e := range sel.Entities {
			labels[i] = c.EntityLabel(e)
		}
		b.WriteString("  <table class=\"selection\">\n")
		writeRow(&b, "Selected", strings.Join(labels, ", "))
		writeRow(&b, "Measure", c.SubLabel(sel.SubDimension))
		writeRow(&b, "View", string(sel.View))
		writeRow(&b, "Year", fmt.Sprint(sel.Year))
		b.WriteString("  </table>\n")
	}
	if d.Source != "" {
		fmt.Fprintf(&b, "  <p class=\"source\">Source: %s</p>\n", html.EscapeString(d.Source))
	}
	if len(c.Excluded) > 0 {
		fmt.Fprintf(&b, "  <p class=\"excluded\">Columns not shown: %s</p>\n", html.EscapeString(strings.Join(c.Excluded, ", ")))
	}
	b.WriteString("</div>\n</body>\n</html>\n")
	return b.String(), nil
}

func writeRow(b *strings.Builder, k, v string) {
	fmt.Fprintf(b, "    <tr><th>%s</th><td>%s</td></tr>\n", html.EscapeString(k), html.EscapeString(v))
}

// escapeCSS keeps a value from breaking out of a style declaration.
func escapeCSS(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, `<`, ``)
	s = strings.ReplaceAll(s, `;`, ``)
	return s
}
