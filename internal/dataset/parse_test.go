package dataset

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const sampleLiteral = `
year,hwAM,hwPM,chAM
2018,1.08,1.12,
2019,1.1,1.15,1.02
2020,1.03,1.09,0.99
`

func TestParseTypedRows(t *testing.T) {
	tbl, err := Parse("sample", sampleLiteral)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}
	if got := strings.Join(tbl.Columns(), ","); got != "hwAM,hwPM,chAM" {
		t.Fatalf("Columns() = %q", got)
	}
	if v, ok := tbl.Value(2020, "hwPM"); !ok || v != 1.09 {
		t.Fatalf("Value(2020, hwPM) = %v, %t; want 1.09, true", v, ok)
	}
	if _, ok := tbl.Value(2018, "chAM"); ok {
		t.Fatal("Value(2018, chAM) reported a value for an empty field")
	}
	row, ok := tbl.Row(2018)
	if !ok {
		t.Fatal("Row(2018) missing")
	}
	if v, present := row.Values["chAM"]; !present || v != nil {
		t.Fatalf("empty field should be stored as nil, got %v (present=%t)", v, present)
	}
	if _, ok := tbl.Value(2021, "hwPM"); ok {
		t.Fatal("Value for a missing year reported ok")
	}
	if tbl.FirstYear() != 2018 || tbl.LastYear() != 2020 {
		t.Fatalf("year bounds = %d..%d", tbl.FirstYear(), tbl.LastYear())
	}
}

func TestParseRejectsMalformedLiterals(t *testing.T) {
	cases := map[string]struct {
		literal string
		line    int
	}{
		"empty":             {literal: "   ", line: 0},
		"header only":       {literal: "year,a", line: 0},
		"missing year":      {literal: "a,b\n1,2", line: 1},
		"duplicate column":  {literal: "year,a,a\n2000,1,2", line: 1},
		"non numeric":       {literal: "year,a\n2000,abc", line: 2},
		"fractional year":   {literal: "year,a\n2000.5,1", line: 2},
		"ragged row":        {literal: "year,a,b\n2000,1", line: 2},
		"duplicate year":    {literal: "year,a\n2000,1\n2000,2", line: 3},
		"decreasing years":  {literal: "year,a\n2001,1\n2000,2", line: 3},
		"empty column name": {literal: "year,,b\n2000,1,2", line: 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("broken", tc.literal)
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("error %v does not match ErrMalformed", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *ParseError", err)
			}
			if pe.Dataset != "broken" {
				t.Fatalf("Dataset = %q, want broken", pe.Dataset)
			}
			if pe.Line != tc.line {
				t.Fatalf("Line = %d, want %d (%v)", pe.Line, tc.line, err)
			}
			if !strings.Contains(err.Error(), "failed to parse dataset") {
				t.Fatalf("message %q lacks the parse failure prefix", err.Error())
			}
		})
	}
}

func TestEmbeddedDatasetsHaveStrictlyIncreasingYears(t *testing.T) {
	names := Names()
	if len(names) != 8 {
		t.Fatalf("Names() = %v, want 8 datasets", names)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			tbl, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) error = %v", name, err)
			}
			years := tbl.Years()
			seen := map[int]bool{}
			for i, y := range years {
				if seen[y] {
					t.Fatalf("duplicate year %d", y)
				}
				seen[y] = true
				if i > 0 && y <= years[i-1] {
					t.Fatalf("year %d follows %d", y, years[i-1])
				}
			}
			for _, row := range tbl.Rows() {
				if len(row.Values) != len(tbl.Columns()) {
					t.Fatalf("year %d has %d fields, want %d", row.Year, len(row.Values), len(tbl.Columns()))
				}
			}
		})
	}
}

func TestEmbeddedBridgeValues(t *testing.T) {
	tbl, err := Load("bridges")
	if err != nil {
		t.Fatalf("Load(bridges) error = %v", err)
	}
	for year, want := range map[int]float64{2000: 0.139, 2023: 0.058} {
		got, ok := tbl.Value(year, "MPO-All")
		if !ok || math.Abs(got-want) > 1e-9 {
			t.Fatalf("MPO-All %d = %v (%t), want %v", year, got, ok, want)
		}
	}
}

func TestLiteralUnknownDataset(t *testing.T) {
	_, err := Literal("nope")
	if err == nil {
		t.Fatal("Literal(nope) error = nil")
	}
	if !strings.Contains(err.Error(), "bridges, commute, congestion") {
		t.Fatalf("error %q does not list the embedded datasets", err)
	}
}
