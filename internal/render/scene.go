package render

import (
	"math"

	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

// Kind identifies a draw command.
type Kind int

const (
	KindLine Kind = iota
	KindPolyline
	KindRect
	KindCircle
	KindPath
	KindText
	KindGroup
	KindEndGroup
	// KindHitRegion is an invisible rectangle that carries tooltip text.
	KindHitRegion
)

// Command is one primitive of a Scene. Which fields apply depends on Kind.
type Command struct {
	Kind Kind

	X, Y   float64 // origin, line start, circle centre or text anchor
	X2, Y2 float64 // line end
	W, H   float64
	R      float64
	Points []series.Point
	Path   string

	Text   string
	Anchor string // start, middle, end
	Font   FontStyle

	Fill        string
	Stroke      string
	StrokeWidth float64
	Dash        string
	Opacity     float64 // zero leaves the attribute out

	Class string
	Title string // hover text
	ID    string
}

// LegendItem pairs a label with its colour.
type LegendItem struct {
	Label string
	Color string
}

// Scene is the complete, declarative description of one rendered chart.
type Scene struct {
	ChartID    string
	View       series.ViewMode
	Width      float64
	Height     float64
	Background string
	Font       FontStyle
	Title      string
	Subtitle   string
	Legend     []LegendItem
	Commands   []Command
	// Message is set when the scene shows a status text instead of marks.
	Message string

	bounds bounds
	tips   *tipIndex
}

// bounds tracks the extent of everything drawn.
type bounds struct {
	minX, maxX, minY, maxY float64
	isSet                  bool
}

func (b *bounds) updatePoint(x, y float64) {
	if !b.isSet {
		b.minX, b.maxX = x, x
		b.minY, b.maxY = y, y
		b.isSet = true
		return
	}
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func (b *bounds) updateRect(x, y, w, h float64) {
	if w > 0 && h > 0 {
		b.updatePoint(x, y)
		b.updatePoint(x+w, y+h)
	}
}

// Bounds returns the extent of the drawn commands as x0, y0, x1, y1.
func (s *Scene) Bounds() (x0, y0, x1, y1 float64, ok bool) {
	return s.bounds.minX, s.bounds.minY, s.bounds.maxX, s.bounds.maxY, s.bounds.isSet
}

func (s *Scene) add(c Command) {
	switch c.Kind {
	case KindLine:
		s.bounds.updatePoint(c.X, c.Y)
		s.bounds.updatePoint(c.X2, c.Y2)
	case KindPolyline:
		for _, p := range c.Points {
			s.bounds.updatePoint(p.X, p.Y)
		}
	case KindRect, KindHitRegion:
		s.bounds.updateRect(c.X, c.Y, c.W, c.H)
	case KindCircle:
		s.bounds.updateRect(c.X-c.R, c.Y-c.R, 2*c.R, 2*c.R)
	case KindPath:
		// paths carry their own geometry; callers register the box with addPath
	case KindText:
		s.bounds.updatePoint(c.X, c.Y)
	}
	s.Commands = append(s.Commands, c)
}

func (s *Scene) line(x1, y1, x2, y2 float64, stroke string, width float64, class string) {
	s.add(Command{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2, Stroke: stroke, StrokeWidth: width, Class: class})
}

func (s *Scene) rect(x, y, w, h float64, fill, class, title string) {
	s.add(Command{Kind: KindRect, X: x, Y: y, W: w, H: h, Fill: fill, Class: class, Title: title})
}

func (s *Scene) text(x, y float64, text, anchor string, font FontStyle, fill, class string) {
	s.add(Command{Kind: KindText, X: x, Y: y, Text: text, Anchor: anchor, Font: font, Fill: fill, Class: class})
}

// addPath appends a path whose geometry lies within the given box.
func (s *Scene) addPath(c Command, x, y, w, h float64) {
	c.Kind = KindPath
	s.bounds.updateRect(x, y, w, h)
	s.Commands = append(s.Commands, c)
}

func (s *Scene) group(id, class string) {
	s.add(Command{Kind: KindGroup, ID: id, Class: class})
}

func (s *Scene) endGroup() {
	s.add(Command{Kind: KindEndGroup})
}

// Count returns how many commands of kind k carry class (any class when empty).
func (s *Scene) Count(k Kind, class string) int {
	n := 0
	for _, c := range s.Commands {
		if c.Kind == k && (class == "" || c.Class == class) {
			n++
		}
	}
	return n
}
