package render

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

var update = flag.Bool("update", false, "rewrite the SVG snapshots in testdata")

// TestSVGGolden compares rendered charts with snapshots in testdata. Run with
// -update to record them.
func TestSVGGolden(t *testing.T) {
	testDataDir := "testdata"
	cases := []struct {
		name     string
		chart    string
		entities []string
		view     series.ViewMode
		year     int
	}{
		{"bridges-trend", "bridges", []string{"MPO", "Hopewell"}, series.ViewTrend, 0},
		{"congestion-comparison", "congestion", []string{"hw", "pb", "cf"}, series.ViewComparison, 2020},
		{"pavement-distribution", "pavement", []string{"hw"}, series.ViewDistribution, 0},
		{"transit-breakdown", "transit", nil, series.ViewBreakdown, 2022},
		{"vmt-heatmap", "vmt", nil, series.ViewHeatmap, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := chart.Default().Lookup(tc.chart)
			if err != nil {
				t.Fatal(err)
			}
			sel := c.DefaultSelection()
			if tc.entities != nil {
				sel.Entities = tc.entities
			}
			sel.View, sel.Year = tc.view, tc.year
			scene, err := Render(c, sel, DefaultLayout())
			if err != nil {
				t.Fatalf("Render %s: %v", tc.name, err)
			}
			generatedSVG := scene.SVG()
			again, err := Render(c, sel.Clone(), DefaultLayout())
			if err != nil {
				t.Fatalf("Render %s: %v", tc.name, err)
			}
			if again.SVG() != generatedSVG {
				t.Fatalf("rendering %s twice produced different SVG", tc.name)
			}
			expectedSVGFile := filepath.Join(testDataDir, tc.name+".expected.svg")

			if *update {
				if err := os.MkdirAll(testDataDir, 0o755); err != nil {
					t.Fatalf("create %s: %v", testDataDir, err)
				}
				if err := os.WriteFile(expectedSVGFile, []byte(generatedSVG), 0o644); err != nil {
					t.Fatalf("write %s: %v", expectedSVGFile, err)
				}
				t.Logf("Wrote %s", expectedSVGFile)
				return
			}
			expectedSVGBytes, err := os.ReadFile(expectedSVGFile)
			if os.IsNotExist(err) {
				t.Skipf("no snapshot %s; record it with -update", expectedSVGFile)
			}
			if err != nil {
				t.Fatalf("Error reading expected SVG file %s: %v", expectedSVGFile, err)
			}

			got := strings.ReplaceAll(generatedSVG, "\r\n", "\n")
			want := strings.ReplaceAll(string(expectedSVGBytes), "\r\n", "\n")
			if got != want {
				diff := findFirstDifference(want, got)
				t.Errorf("Generated SVG for %s does not match %s.\nFirst difference near character %d:\nEXPECTED:\n...%s...\nGOT:\n...%s...",
					tc.name, expectedSVGFile, diff.Index, diff.ExpectedContext, diff.GotContext)
				failedFile := filepath.Join(testDataDir, tc.name+".failed.svg")
				if err := os.WriteFile(failedFile, []byte(generatedSVG), 0o644); err == nil {
					t.Logf("Wrote differing output to %s", failedFile)
				}
			}
		})
	}
}

// diffResult shows context around the first difference.
type diffResult struct {
	Index           int
	ExpectedContext string
	GotContext      string
}

// findFirstDifference finds the first differing byte of expected and got.
func findFirstDifference(expected, got string) diffResult {
	limit := min(len(expected), len(got))
	idx := -1
	for i := 0; i < limit; i++ {
		if expected[i] != got[i] {
			idx = i
			break
		}
	}
	if idx == -1 && len(expected) != len(got) {
		idx = limit
	}
	if idx == -1 {
		return diffResult{ExpectedContext: "(identical)", GotContext: "(identical)"}
	}
	const contextSize = 40
	start := max(idx-contextSize, 0)
	return diffResult{
		Index:           idx,
		ExpectedContext: expected[start:min(idx+contextSize, len(expected))],
		GotContext:      got[start:min(idx+contextSize, len(got))],
	}
}

func TestFindFirstDifference(t *testing.T) {
	d := findFirstDifference("<svg a>", "<svg b>")
	if d.Index != 5 {
		t.Errorf("Index = %d, want 5", d.Index)
	}
	if d := findFirstDifference("abc", "abcd"); d.Index != 3 {
		t.Errorf("prefix Index = %d, want 3", d.Index)
	}
	if d := findFirstDifference("same", "same"); d.Index != 0 || d.GotContext != "(identical)" {
		t.Errorf("identical = %+v", d)
	}
}
