// Package series reshapes parsed indicator tables into render-ready series for
// the current selection.
package series

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedView is returned when a chart does not offer a view mode.
var ErrUnsupportedView = errors.New("unsupported view mode")

// ViewMode is the rendering style a chart is currently shown in.
type ViewMode string

const (
	// ViewTrend draws one line per selected entity across all years.
	ViewTrend ViewMode = "trend"
	// ViewComparison draws sorted bars for the selected year.
	ViewComparison ViewMode = "comparison"
	// ViewDistribution draws the stacked share of every sub-dimension over time.
	ViewDistribution ViewMode = "distribution"
	// ViewBreakdown draws a pie for the selected year.
	ViewBreakdown ViewMode = "breakdown"
	// ViewHeatmap draws an entity by year matrix.
	ViewHeatmap ViewMode = "heatmap"
)

// ParseViewMode converts user input into a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	switch v := ViewMode(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewTrend, ViewComparison, ViewDistribution, ViewBreakdown, ViewHeatmap:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedView, s)
	}
}

// Selection is the user-driven state of one chart instance. It is never
// persisted and is replaced wholesale on every interaction.
type Selection struct {
	Entities     []string // selection order decides palette colors
	SubDimension string
	View         ViewMode
	Year         int

	// Max bounds the number of selected entities. Zero means unbounded.
	Max int
	// Views lists the view modes the chart offers. Empty allows all.
	Views []ViewMode
}

// Clone returns a copy that shares no slices with s.
func (s Selection) Clone() Selection {
	c := s
	c.Entities = append([]string(nil), s.Entities...)
	c.Views = append([]ViewMode(nil), s.Views...)
	return c
}

// Contains reports whether entity is selected.
func (s *Selection) Contains(entity string) bool {
	return s.indexOf(entity) >= 0
}

// Add appends entity. It is a no-op when the entity is already selected or the
// maximum has been reached.
func (s *Selection) Add(entity string) bool {
	if entity == "" || s.Contains(entity) {
		return false
	}
	if s.Max > 0 && len(s.Entities) >= s.Max {
		return false
	}
	s.Entities = append(s.Entities, entity)
	return true
}

// Remove drops entity. Removing the last remaining entity is a no-op.
func (s *Selection) Remove(entity string) bool {
	i := s.indexOf(entity)
	if i < 0 || len(s.Entities) <= 1 {
		return false
	}
	s.Entities = append(s.Entities[:i:i], s.Entities[i+1:]...)
	return true
}

// Toggle removes a selected entity or adds an unselected one, subject to the
// same limits as Add and Remove.
func (s *Selection) Toggle(entity string) bool {
	if s.Contains(entity) {
		return s.Remove(entity)
	}
	return s.Add(entity)
}

// SetSubDimension changes the selected sub-dimension.
func (s *Selection) SetSubDimension(sub string) bool {
	if sub == "" || sub == s.SubDimension {
		return false
	}
	s.SubDimension = sub
	return true
}

// SetView switches the view mode when the chart offers it.
func (s *Selection) SetView(v ViewMode) (bool, error) {
	if !s.Supports(v) {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedView, v)
	}
	if v == s.View {
		return false, nil
	}
	s.View = v
	return true, nil
}

// SetYear changes the point-in-time year.
func (s *Selection) SetYear(year int) bool {
	if year == s.Year {
		return false
	}
	s.Year = year
	return true
}

// Supports reports whether v is one of the offered views.
func (s *Selection) Supports(v ViewMode) bool {
	if len(s.Views) == 0 {
		_, err := ParseViewMode(string(v))
		return err == nil
	}
	for _, allowed := range s.Views {
		if allowed == v {
			return true
		}
	}
	return false
}

func (s *Selection) indexOf(entity string) int {
	for i, e := range s.Entities {
		if e == entity {
			return i
		}
	}
	return -1
}
