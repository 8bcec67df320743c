// Package chart binds each indicator dataset to its descriptor and holds the
// loaded, read-only chart instances the renderer draws from.
package chart

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/TWhYNoTT/indicators-sub001/internal/column"
	"github.com/TWhYNoTT/indicators-sub001/internal/dataset"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

var (
	// ErrUnknownChart is returned by Lookup for an unregistered chart ID.
	ErrUnknownChart = errors.New("unknown chart")
	// ErrNotReady is returned when data is requested from a chart that failed to load.
	ErrNotReady = errors.New("chart not ready")
)

// State is the lifecycle of a chart instance.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// newPrinter formats numbers with English digit grouping.
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// Chart is a loaded indicator. It is safe for concurrent readers once Load returns.
type Chart struct {
	Descriptor Descriptor
	State      State
	Err        error
	// Excluded lists columns that did not match the naming convention and are
	// therefore not selectable.
	Excluded []string

	table *dataset.Table
	index *column.Index
}

// Load parses the descriptor's literal and resolves its columns. Parse failures
// leave the chart in StateError; they are reported once and never retried.
func Load(d Descriptor) *Chart {
	c := &Chart{Descriptor: d, State: StateLoading}

	literal := d.Literal
	if literal == "" {
		lit, err := dataset.Literal(d.Dataset)
		if err != nil {
			c.fail(err)
			return c
		}
		literal = lit
	}
	tbl, err := dataset.Parse(d.Dataset, literal)
	if err != nil {
		c.fail(err)
		return c
	}
	idx, unresolved := column.Build(d.Convention, tbl.Columns())
	if len(unresolved) > 0 {
		log.Printf("chart %s: %d column(s) do not match the naming convention and are excluded: %v", d.ID, len(unresolved), unresolved)
	}
	c.table, c.index, c.Excluded = tbl, idx, unresolved
	c.State = StateReady
	return c
}

func (c *Chart) fail(err error) {
	c.State = StateError
	c.Err = fmt.Errorf("chart %s: %w", c.Descriptor.ID, err)
	log.Printf("%v", c.Err)
}

// Ready reports whether the chart can be drawn.
func (c *Chart) Ready() bool {
	return c.State == StateReady
}

// Table returns the parsed dataset, or ErrNotReady.
func (c *Chart) Table() (*dataset.Table, error) {
	if !c.Ready() {
		return nil, fmt.Errorf("%w: %v", ErrNotReady, c.Err)
	}
	return c.table, nil
}

// Years implements series.Source.
func (c *Chart) Years() []int {
	if !c.Ready() {
		return nil
	}
	return c.table.Years()
}

// YearRange returns the first and last year of the dataset.
func (c *Chart) YearRange() (first, last int, ok bool) {
	if !c.Ready() || c.table.Len() == 0 {
		return 0, 0, false
	}
	return c.table.FirstYear(), c.table.LastYear(), true
}

// Value implements series.Source by reconstructing the column key from entity and sub.
func (c *Chart) Value(entity, sub string, year int) (float64, bool) {
	if !c.Ready() {
		return 0, false
	}
	col, ok := c.index.Column(entity, sub)
	if !ok {
		return 0, false
	}
	return c.table.Value(year, col)
}

// Entities lists the selectable entities in dataset order.
func (c *Chart) Entities() []string {
	if !c.Ready() {
		return nil
	}
	return c.index.Entities()
}

// SubDimensions lists the selectable sub-dimensions. The descriptor order wins
// when it is given; entries missing from the data are dropped.
func (c *Chart) SubDimensions() []string {
	if !c.Ready() {
		return nil
	}
	if len(c.Descriptor.SubDimensions) == 0 {
		return c.index.SubDimensions()
	}
	var subs []string
	for _, s := range c.Descriptor.SubDimensions {
		if c.index.HasSubDimension(s) {
			subs = append(subs, s)
		}
	}
	return subs
}

// EntityLabel returns the display name of an entity.
func (c *Chart) EntityLabel(entity string) string {
	if l, ok := c.Descriptor.EntityLabels[entity]; ok {
		return l
	}
	return entity
}

// SubLabel returns the display name of a sub-dimension.
func (c *Chart) SubLabel(sub string) string {
	if l, ok := c.Descriptor.SubLabels[sub]; ok {
		return l
	}
	return sub
}

// Unit returns the unit of a sub-dimension, or of its share when the chart
// reports distributions.
func (c *Chart) Unit(sub string) string {
	if c.Descriptor.Shares {
		return "%"
	}
	if u, ok := c.Descriptor.Units[sub]; ok {
		return u
	}
	return c.Descriptor.Unit
}

// FormatValue renders v with the sub-dimension's precision and digit grouping.
func (c *Chart) FormatValue(sub string, v float64) string {
	d := c.Descriptor.Decimals
	if p, ok := c.Descriptor.SubDecimals[sub]; ok {
		d = p
	}
	return FormatNumber(v, d)
}

// FormatNumber renders v with the given decimals and English digit grouping.
func FormatNumber(v float64, decimals int) string {
	return newPrinter().Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// FormatShare renders a percentage with one decimal.
func FormatShare(v float64) string {
	return newPrinter().Sprintf("%.1f%%", v)
}

// Classify returns the tier label of v for sub, or "" when the chart has no tiers for it.
func (c *Chart) Classify(sub string, v float64) string {
	if c.Descriptor.Classifier == nil || !c.Descriptor.Classifier.AppliesTo(sub) {
		return ""
	}
	return c.Descriptor.Classifier.Classify(v)
}

// Palette returns the descriptor palette or the shared default.
func (c *Chart) Palette() []string {
	if len(c.Descriptor.Palette) > 0 {
		return c.Descriptor.Palette
	}
	return DefaultPalette
}

// DefaultSelection returns the descriptor's initial selection resolved against the data.
func (c *Chart) DefaultSelection() series.Selection {
	d := c.Descriptor
	return c.Normalize(series.Selection{
		Entities:     append([]string(nil), d.DefaultEntities...),
		SubDimension: d.DefaultSubDimension,
		View:         d.DefaultView,
	})
}

// Normalize drops unknown entities, applies limits and replaces invalid values
// with defaults. The result always has at least one entity when the chart is ready.
func (c *Chart) Normalize(sel series.Selection) series.Selection {
	d := c.Descriptor
	out := series.Selection{
		Max:   d.MaxSelected,
		Views: append([]series.ViewMode(nil), d.Views...),
		Year:  sel.Year,
	}
	if !c.Ready() {
		out.Entities = append(out.Entities, sel.Entities...)
		out.SubDimension, out.View = sel.SubDimension, sel.View
		return out
	}

	for _, e := range sel.Entities {
		if c.index.HasEntity(e) {
			out.Add(e)
		}
	}
	if len(out.Entities) == 0 {
		for _, e := range d.DefaultEntities {
			if c.index.HasEntity(e) {
				out.Add(e)
			}
		}
	}
	if len(out.Entities) == 0 {
		if ents := c.index.Entities(); len(ents) > 0 {
			out.Add(ents[0])
		}
	}

	subs := c.SubDimensions()
	out.SubDimension = sel.SubDimension
	if !contains(subs, out.SubDimension) {
		out.SubDimension = d.DefaultSubDimension
		if !contains(subs, out.SubDimension) && len(subs) > 0 {
			out.SubDimension = subs[0]
		}
	}

	out.View = sel.View
	if !out.Supports(out.View) {
		out.View = d.DefaultView
		if !out.Supports(out.View) && len(d.Views) > 0 {
			out.View = d.Views[0]
		}
	}

	out.Year = c.nearestYear(sel.Year)
	return out
}

// nearestYear clamps a requested year to the closest available one. Zero asks for the latest.
func (c *Chart) nearestYear(year int) int {
	years := c.table.Years()
	if len(years) == 0 {
		return 0
	}
	if year == 0 {
		return c.table.LastYear()
	}
	best := years[0]
	for _, y := range years {
		if abs(y-year) < abs(best-year) {
			best = y
		}
	}
	return best
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
