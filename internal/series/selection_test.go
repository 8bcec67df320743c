package series

import (
	"errors"
	"reflect"
	"testing"
)

func TestSelectionNeverEmpty(t *testing.T) {
	sel := Selection{Entities: []string{"MPO"}, Max: 6}
	before := len(sel.Entities)
	if sel.Remove("MPO") {
		t.Fatal("Remove of the sole entity reported a change")
	}
	if sel.Toggle("MPO") {
		t.Fatal("Toggle of the sole entity reported a change")
	}
	if len(sel.Entities) != before {
		t.Fatalf("len = %d, want %d", len(sel.Entities), before)
	}
}

func TestSelectionRespectsMaximum(t *testing.T) {
	sel := Selection{Entities: []string{"a"}, Max: 3}
	for _, e := range []string{"b", "c"} {
		if !sel.Add(e) {
			t.Fatalf("Add(%q) = false", e)
		}
	}
	if sel.Add("d") {
		t.Fatal("Add beyond the maximum reported a change")
	}
	if sel.Toggle("d") {
		t.Fatal("Toggle beyond the maximum reported a change")
	}
	if !reflect.DeepEqual(sel.Entities, []string{"a", "b", "c"}) {
		t.Fatalf("Entities = %v", sel.Entities)
	}
}

func TestSelectionToggleKeepsOrder(t *testing.T) {
	sel := Selection{Entities: []string{"a", "b", "c"}, Max: 5}
	if !sel.Toggle("b") {
		t.Fatal("Toggle(b) = false")
	}
	if !sel.Toggle("b") {
		t.Fatal("second Toggle(b) = false")
	}
	if !reflect.DeepEqual(sel.Entities, []string{"a", "c", "b"}) {
		t.Fatalf("Entities = %v", sel.Entities)
	}
	if sel.Add("a") {
		t.Fatal("Add of an already selected entity reported a change")
	}
}

func TestSelectionCloneIsIndependent(t *testing.T) {
	orig := Selection{Entities: []string{"a", "b"}, Max: 5}
	c := orig.Clone()
	c.Remove("a")
	c.Add("z")
	if !reflect.DeepEqual(orig.Entities, []string{"a", "b"}) {
		t.Fatalf("original mutated: %v", orig.Entities)
	}
}

func TestSelectionSetView(t *testing.T) {
	sel := Selection{View: ViewTrend, Views: []ViewMode{ViewTrend, ViewComparison}}
	changed, err := sel.SetView(ViewComparison)
	if err != nil || !changed {
		t.Fatalf("SetView(comparison) = %t, %v", changed, err)
	}
	if _, err := sel.SetView(ViewHeatmap); !errors.Is(err, ErrUnsupportedView) {
		t.Fatalf("SetView(heatmap) error = %v, want ErrUnsupportedView", err)
	}
	if sel.View != ViewComparison {
		t.Fatalf("View = %q", sel.View)
	}
}

func TestParseViewMode(t *testing.T) {
	if v, err := ParseViewMode(" Trend "); err != nil || v != ViewTrend {
		t.Fatalf("ParseViewMode = %q, %v", v, err)
	}
	if _, err := ParseViewMode("radar"); !errors.Is(err, ErrUnsupportedView) {
		t.Fatalf("ParseViewMode(radar) error = %v", err)
	}
}

func TestSelectionSetters(t *testing.T) {
	sel := Selection{SubDimension: "AM", Year: 2020}
	if sel.SetSubDimension("AM") || sel.SetSubDimension("") {
		t.Fatal("no-op SetSubDimension reported a change")
	}
	if !sel.SetSubDimension("PM") || sel.SubDimension != "PM" {
		t.Fatal("SetSubDimension(PM) failed")
	}
	if sel.SetYear(2020) || !sel.SetYear(2021) {
		t.Fatal("SetYear change detection wrong")
	}
}
