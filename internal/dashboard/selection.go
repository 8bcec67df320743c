package dashboard

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

var errBadRequest = errors.New("bad request")

// SelectionFromQuery applies one request's worth of selection changes to the
// chart's default selection:
//
//	entity  replaces the selected entities (repeatable, order kept)
//	toggle  adds or removes one entity (repeatable)
//	sub     selects the sub-dimension
//	view    switches the view mode
//	year    picks the comparison year
func SelectionFromQuery(c *chart.Chart, q url.Values) (series.Selection, error) {
	sel := c.DefaultSelection()
	known := c.Entities()

	if es, ok := q["entity"]; ok && len(es) > 0 {
		next := sel.Clone()
		next.Entities = nil
		for _, e := range es {
			if contains(known, e) {
				next.Add(e)
			}
		}
		if len(next.Entities) > 0 {
			sel = next
		}
	}
	for _, e := range q["toggle"] {
		if contains(known, e) {
			sel.Toggle(e)
		}
	}
	if sub := q.Get("sub"); sub != "" {
		if !contains(c.SubDimensions(), sub) {
			return sel, fmt.Errorf("%w: unknown measure %q", errBadRequest, sub)
		}
		sel.SetSubDimension(sub)
	}
	if v := q.Get("view"); v != "" {
		mode, err := series.ParseViewMode(v)
		if err != nil {
			return sel, err
		}
		if _, err := sel.SetView(mode); err != nil {
			return sel, err
		}
	}
	if y := q.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return sel, fmt.Errorf("%w: year %q", errBadRequest, y)
		}
		sel.SetYear(year)
	}
	return c.Normalize(sel), nil
}

// Query encodes a selection so that SelectionFromQuery reproduces it.
func Query(sel series.Selection) url.Values {
	q := url.Values{}
	for _, e := range sel.Entities {
		q.Add("entity", e)
	}
	if sel.SubDimension != "" {
		q.Set("sub", sel.SubDimension)
	}
	if sel.View != "" {
		q.Set("view", string(sel.View))
	}
	if sel.Year != 0 {
		q.Set("year", strconv.Itoa(sel.Year))
	}
	return q
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
