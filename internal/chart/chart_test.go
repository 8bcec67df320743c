package chart

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/TWhYNoTT/indicators-sub001/internal/column"
	"github.com/TWhYNoTT/indicators-sub001/internal/dataset"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

func mustLookup(t *testing.T, id string) *Chart {
	t.Helper()
	c, err := Default().Lookup(id)
	if err != nil {
		t.Fatalf("Lookup(%q) error = %v", id, err)
	}
	if !c.Ready() {
		t.Fatalf("chart %q state = %v, err = %v", id, c.State, c.Err)
	}
	return c
}

func TestAllChartsLoad(t *testing.T) {
	cat := Default()
	if got := len(cat.Charts()); got != 8 {
		t.Fatalf("Charts() = %d, want 8", got)
	}
	for _, c := range cat.Charts() {
		if c.State != StateReady {
			t.Errorf("chart %s state = %v (%v)", c.Descriptor.ID, c.State, c.Err)
		}
		if len(c.Entities()) == 0 || len(c.SubDimensions()) == 0 {
			t.Errorf("chart %s has no selectable entities or sub-dimensions", c.Descriptor.ID)
		}
		sel := c.DefaultSelection()
		if len(sel.Entities) == 0 {
			t.Errorf("chart %s default selection is empty", c.Descriptor.ID)
		}
		if !sel.Supports(sel.View) {
			t.Errorf("chart %s default view %q unsupported", c.Descriptor.ID, sel.View)
		}
	}
}

func TestBridgeScenario(t *testing.T) {
	c := mustLookup(t, "bridges")
	for year, want := range map[int]float64{2000: 0.139, 2023: 0.058} {
		got, ok := c.Value("MPO", "All", year)
		if !ok || math.Abs(got-want) > 1e-9 {
			t.Fatalf("MPO/All/%d = %v (%t), want %v", year, got, ok, want)
		}
	}
	if first, last, ok := c.YearRange(); !ok || first != 2000 || last != 2023 {
		t.Fatalf("YearRange() = %d, %d, %t", first, last, ok)
	}
}

func TestCongestionScenario(t *testing.T) {
	c := mustLookup(t, "congestion")
	got, ok := c.Value("hw", "PM", 2020)
	if !ok || got != 1.09 {
		t.Fatalf("hw/PM/2020 = %v (%t), want 1.09", got, ok)
	}
	if label := c.Classify("PM", got); label != "Moderate Congestion" {
		t.Fatalf("Classify(1.09) = %q, want Moderate Congestion", label)
	}
	if !reflect.DeepEqual(c.Excluded, []string{"vaAM", "vaPM"}) {
		t.Fatalf("Excluded = %v", c.Excluded)
	}
	for _, e := range c.Entities() {
		if e == "va" {
			t.Fatal("unresolved statewide columns leaked into the entity list")
		}
	}
}

func TestCongestionTiers(t *testing.T) {
	cases := map[float64]string{
		1.00: "No Congestion",
		1.05: "Moderate Congestion",
		1.29: "Moderate Congestion",
		1.30: "Heavy Congestion",
		1.49: "Heavy Congestion",
		1.50: "Severe Congestion",
		2.10: "Severe Congestion",
	}
	for v, want := range cases {
		if got := CongestionTiers.Classify(v); got != want {
			t.Errorf("Classify(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestSafetyClassifierOnlyForRate(t *testing.T) {
	c := mustLookup(t, "safety")
	if got := c.Classify("Fatalities", 12); got != "" {
		t.Fatalf("Classify(Fatalities) = %q, want empty", got)
	}
	if got := c.Classify("Fatality Rate", 1.2); got != "Elevated Severity" {
		t.Fatalf("Classify(Fatality Rate, 1.2) = %q", got)
	}
}

func TestPavementScenario(t *testing.T) {
	c := mustLookup(t, "pavement")
	want := map[string]float64{"Good": 2005.6, "Fair": 2043.6, "Poor": 1751}
	total := 0.0
	for sub, w := range want {
		got, ok := c.Value("hw", sub, 2010)
		if !ok || got != w {
			t.Fatalf("hw/%s/2010 = %v (%t), want %v", sub, got, ok, w)
		}
		total += got
	}
	if math.Abs(total-5800.2) > 1e-9 {
		t.Fatalf("total = %v, want 5800.2", total)
	}
	shares, ok := series.Shares(c, "hw", c.SubDimensions(), 2010)
	if !ok || math.Abs(shares[0]-34.58) > 0.005 {
		t.Fatalf("Good%% = %v (%t), want ≈34.58", shares, ok)
	}
	if got := c.FormatValue("Good", total); got != "5,800.2" {
		t.Fatalf("FormatValue = %q", got)
	}
	if got := c.Unit("Good"); got != "%" {
		t.Fatalf("Unit = %q", got)
	}
}

func TestMalformedLiteralEntersErrorState(t *testing.T) {
	c := Load(Descriptor{
		ID:         "broken",
		Dataset:    "broken",
		Literal:    "year,a-b\n2001,1\n2000,x",
		Convention: column.Delimited{},
	})
	if c.State != StateError {
		t.Fatalf("State = %v, want error", c.State)
	}
	if !errors.Is(c.Err, dataset.ErrMalformed) {
		t.Fatalf("Err = %v, want ErrMalformed", c.Err)
	}
	if _, err := c.Table(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Table() error = %v, want ErrNotReady", err)
	}
	if c.Years() != nil || c.Entities() != nil {
		t.Fatal("error-state chart exposes data")
	}
	if _, ok := c.Value("a", "b", 2001); ok {
		t.Fatal("error-state chart returned a value")
	}
	if _, _, ok := c.YearRange(); ok {
		t.Fatal("error-state chart reported a year range")
	}
}

func TestNormalize(t *testing.T) {
	c := mustLookup(t, "congestion")
	sel := c.Normalize(series.Selection{
		Entities:     []string{"zz", "cf", "hw", "cf", "pb", "dw", "pg", "ch"},
		SubDimension: "Noon",
		View:         series.ViewDistribution,
		Year:         1999,
	})
	if !reflect.DeepEqual(sel.Entities, []string{"cf", "hw", "pb", "dw", "pg"}) {
		t.Fatalf("Entities = %v", sel.Entities)
	}
	if sel.SubDimension != "PM" || sel.View != series.ViewTrend || sel.Year != 2012 {
		t.Fatalf("Normalize = %+v", sel)
	}
	if sel.Max != 5 {
		t.Fatalf("Max = %d", sel.Max)
	}

	empty := c.Normalize(series.Selection{Entities: []string{"nowhere"}})
	if !reflect.DeepEqual(empty.Entities, []string{"hw"}) {
		t.Fatalf("fallback entities = %v", empty.Entities)
	}
	if empty.Year != 2023 {
		t.Fatalf("zero year should select the latest, got %d", empty.Year)
	}
}

func TestCatalogLookupAndCategories(t *testing.T) {
	cat := Default()
	if _, err := cat.Lookup("ozone"); !errors.Is(err, ErrUnknownChart) {
		t.Fatalf("Lookup(ozone) error = %v", err)
	}
	cats := cat.Categories()
	var names []string
	count := 0
	for _, g := range cats {
		names = append(names, g.Name)
		count += len(g.Charts)
	}
	want := []string{CategoryCondition, CategoryMobility, CategorySafety, CategoryTransit}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("categories = %v, want %v", names, want)
	}
	if count != 8 {
		t.Fatalf("grouped %d charts, want 8", count)
	}
}

func TestLabels(t *testing.T) {
	c := mustLookup(t, "commute")
	if c.EntityLabel("pb") != "Petersburg" || c.EntityLabel("xx") != "xx" {
		t.Fatal("EntityLabel mismatch")
	}
	if c.SubLabel("Remote") != "Worked from home" || c.SubLabel("Walk") != "Walk" {
		t.Fatal("SubLabel mismatch")
	}
	if FormatShare(34.578) != "34.6%" {
		t.Fatalf("FormatShare = %q", FormatShare(34.578))
	}
}
