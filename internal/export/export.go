// Package export writes rendered charts in the supported output formats.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/render"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

// ErrUnsupportedFormat is returned for an output format that has no writer.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is an output format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatXLSX Format = "xlsx"
)

// Formats lists the accepted format names.
var Formats = []string{"svg", "html", "png", "jpg", "jpeg", "xlsx"}

// ParseFormat converts a format name. "jpg" is accepted as an alias of jpeg.
func ParseFormat(s string) (Format, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "svg", "html", "png", "jpeg", "xlsx":
		return Format(f), nil
	case "jpg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, s, strings.Join(Formats, ", "))
	}
}

// ContentType is the MIME type of a format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// Options configures an export.
type Options struct {
	Layout render.Layout
	// ScreenshotTimeout bounds the headless browser run of raster formats.
	ScreenshotTimeout time.Duration
	// NoSandbox disables the Chrome sandbox, needed inside most containers.
	NoSandbox   bool
	JPEGQuality int
}

// Write renders c for sel and writes it to w in format f.
func Write(ctx context.Context, w io.Writer, c *chart.Chart, sel series.Selection, f Format, opts Options) error {
	if f == FormatXLSX {
		return WriteXLSX(w, c, sel)
	}
	scene, err := render.Render(c, sel, opts.Layout)
	if err != nil {
		return fmt.Errorf("render %s: %w", c.Descriptor.ID, err)
	}
	switch f {
	case FormatSVG:
		if _, err := io.WriteString(w, scene.SVG()); err != nil {
			return fmt.Errorf("failed to write SVG output: %w", err)
		}
	case FormatHTML:
		page, err := HTML(scene, c, sel)
		if err != nil {
			return fmt.Errorf("HTML generation failed: %w", err)
		}
		if _, err := io.WriteString(w, page); err != nil {
			return fmt.Errorf("failed to write HTML output: %w", err)
		}
	case FormatPNG, FormatJPEG:
		return Image(ctx, scene.SVG(), f, w, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	log.Printf("Wrote %s as %s.", c.Descriptor.ID, strings.ToUpper(string(f)))
	return nil
}
