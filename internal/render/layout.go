package render

const (
	defaultWidth    = 720.0
	defaultHeight   = 420.0
	defaultPadding  = 16.0
	defaultFont     = "Arial, sans-serif"
	defaultFontSize = 12
)

// FontStyle defines common font properties.
type FontStyle struct {
	FontFamily string
	FontSize   int
	FontWeight string
}

// Layout controls the canvas size and typography of a rendered chart.
// Zero fields fall back to defaults.
type Layout struct {
	Width, Height float64
	Padding       float64
	Font          FontStyle
	TitleFont     FontStyle
	Background    string
}

// DefaultLayout is the layout used when the caller does not size the chart.
func DefaultLayout() Layout {
	return Layout{}.withDefaults()
}

func (l Layout) withDefaults() Layout {
	if l.Width <= 0 {
		l.Width = defaultWidth
	}
	if l.Height <= 0 {
		l.Height = defaultHeight
	}
	if l.Padding <= 0 {
		l.Padding = defaultPadding
	}
	if l.Background == "" {
		l.Background = "#FFFFFF"
	}
	l.Font = effectiveFont(l.Font, FontStyle{})
	l.TitleFont = effectiveFont(l.TitleFont, FontStyle{
		FontFamily: l.Font.FontFamily,
		FontSize:   l.Font.FontSize + 4,
		FontWeight: "bold",
	})
	return l
}

// effectiveFont fills the empty fields of f from base, then from the package defaults.
func effectiveFont(f, base FontStyle) FontStyle {
	if f.FontFamily == "" {
		f.FontFamily = base.FontFamily
	}
	if f.FontSize == 0 {
		f.FontSize = base.FontSize
	}
	if f.FontWeight == "" {
		f.FontWeight = base.FontWeight
	}
	if f.FontFamily == "" {
		f.FontFamily = defaultFont
	}
	if f.FontSize <= 0 {
		f.FontSize = defaultFontSize
	}
	if f.FontWeight == "" {
		f.FontWeight = "normal"
	}
	return f
}

// textHeight is a rough line height for font.
func textHeight(font FontStyle) float64 {
	if font.FontSize <= 0 {
		return 15
	}
	return float64(font.FontSize) * 1.2
}

// textWidth is a rough width estimate: proportional fonts average about 0.6em per rune.
func textWidth(text string, font FontStyle) float64 {
	if font.FontSize <= 0 || text == "" {
		return 0
	}
	return float64(len([]rune(text))) * float64(font.FontSize) * 0.6
}

// area is the plot rectangle inside the margins.
type area struct {
	Left, Top, Right, Bottom float64
}

func (a area) Width() float64  { return a.Right - a.Left }
func (a area) Height() float64 { return a.Bottom - a.Top }
