package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

const styleBlock = `  <style>
    .mark { transition: opacity 0.1s; }
    .bar, .segment, .cell, .slice, .area { opacity: 0.9; }
    .mark:hover { opacity: 1; stroke: #222222; stroke-width: 1.5; }
    .point:hover { stroke-width: 2; }
    .hit { fill: transparent; }
    .hit:hover { fill: rgba(0, 0, 0, 0.06); }
    .selected { stroke: #222222; stroke-width: 1; }
  </style>
`

// SVG encodes the scene as a standalone SVG document.
func (s *Scene) SVG() string {
	var body bytes.Buffer
	for _, c := range s.Commands {
		writeCommand(&body, c)
	}
	return assembleFinalSVG(body, s)
}

func assembleFinalSVG(body bytes.Buffer, s *Scene) string {
	var svg bytes.Buffer
	fmt.Fprintf(&svg, `<svg width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg" font-family="%s" font-size="%d" data-chart="%s" data-view="%s">`,
		s.Width, s.Height, s.Width, s.Height, escapeXML(s.Font.FontFamily), s.Font.FontSize, escapeXML(s.ChartID), escapeXML(string(s.View)))
	svg.WriteString("\n")
	fmt.Fprintf(&svg, `  <title>%s</title>`, escapeXML(strings.TrimSpace(s.Title+" "+s.Subtitle)))
	svg.WriteString("\n")
	svg.WriteString(styleBlock)
	fmt.Fprintf(&svg, `  <rect width="%.0f" height="%.0f" fill="%s" />`, s.Width, s.Height, escapeXML(s.Background))
	svg.WriteString("\n")
	svg.Write(body.Bytes())
	svg.WriteString("</svg>\n")
	return svg.String()
}

func writeCommand(svg *bytes.Buffer, c Command) {
	switch c.Kind {
	case KindGroup:
		svg.WriteString("  <g")
		writeAttr(svg, "id", c.ID)
		writeAttr(svg, "class", c.Class)
		svg.WriteString(">\n")
		return
	case KindEndGroup:
		svg.WriteString("  </g>\n")
		return
	case KindLine:
		fmt.Fprintf(svg, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"`, c.X, c.Y, c.X2, c.Y2)
	case KindPolyline:
		fmt.Fprintf(svg, `  <polyline points="%s"`, pointList(c.Points))
	case KindRect, KindHitRegion:
		fmt.Fprintf(svg, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"`, c.X, c.Y, c.W, c.H)
	case KindCircle:
		fmt.Fprintf(svg, `  <circle cx="%.2f" cy="%.2f" r="%.2f"`, c.X, c.Y, c.R)
	case KindPath:
		fmt.Fprintf(svg, `  <path d="%s"`, escapeXML(c.Path))
	case KindText:
		fmt.Fprintf(svg, `  <text x="%.2f" y="%.2f"`, c.X, c.Y)
		writeAttr(svg, "text-anchor", c.Anchor)
		if c.Font.FontFamily != "" {
			writeAttr(svg, "font-family", c.Font.FontFamily)
		}
		if c.Font.FontSize > 0 {
			fmt.Fprintf(svg, ` font-size="%d"`, c.Font.FontSize)
		}
		if c.Font.FontWeight != "" && c.Font.FontWeight != "normal" {
			writeAttr(svg, "font-weight", c.Font.FontWeight)
		}
	default:
		return
	}

	writePaint(svg, c)
	writeAttr(svg, "class", c.Class)

	switch {
	case c.Kind == KindText:
		svg.WriteString(">")
		if c.Title != "" {
			fmt.Fprintf(svg, "<title>%s</title>", escapeXML(c.Title))
		}
		fmt.Fprintf(svg, "%s</text>\n", escapeXML(c.Text))
	case c.Title != "":
		fmt.Fprintf(svg, "><title>%s</title></%s>\n", escapeXML(c.Title), elementName(c.Kind))
	default:
		svg.WriteString(" />\n")
	}
}

func writePaint(svg *bytes.Buffer, c Command) {
	switch {
	case c.Kind == KindHitRegion:
		svg.WriteString(` fill="transparent"`)
	case c.Fill != "":
		writeAttr(svg, "fill", c.Fill)
	case c.Kind == KindLine || c.Kind == KindPolyline:
		svg.WriteString(` fill="none"`)
	}
	if c.Stroke != "" {
		writeAttr(svg, "stroke", c.Stroke)
		if c.StrokeWidth > 0 {
			fmt.Fprintf(svg, ` stroke-width="%.2f"`, c.StrokeWidth)
		}
		if c.Kind == KindPolyline {
			svg.WriteString(` stroke-linejoin="round" stroke-linecap="round"`)
		}
	}
	if c.Dash != "" {
		writeAttr(svg, "stroke-dasharray", c.Dash)
	}
	if c.Opacity > 0 {
		fmt.Fprintf(svg, ` opacity="%.2f"`, c.Opacity)
	}
}

func writeAttr(svg *bytes.Buffer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(svg, ` %s="%s"`, name, escapeXML(value))
}

func elementName(k Kind) string {
	switch k {
	case KindLine:
		return "line"
	case KindPolyline:
		return "polyline"
	case KindRect, KindHitRegion:
		return "rect"
	case KindCircle:
		return "circle"
	case KindPath:
		return "path"
	case KindText:
		return "text"
	}
	return "g"
}

func pointList(pts []series.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", p.X, p.Y)
	}
	return b.String()
}

// escapeXML escapes text for element content and attribute values.
func escapeXML(s string) string {
	var buf strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
