package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/config"
	"github.com/TWhYNoTT/indicators-sub001/internal/export"
	"github.com/TWhYNoTT/indicators-sub001/internal/render"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func TestListCharts(t *testing.T) {
	var out bytes.Buffer
	if err := listCharts(&out, chart.Default()); err != nil {
		t.Fatalf("listCharts: %v", err)
	}
	got := out.String()
	for _, d := range chart.Descriptors() {
		if !strings.Contains(got, d.ID) || !strings.Contains(got, d.Title) {
			t.Errorf("list is missing %s (%s)", d.ID, d.Title)
		}
	}
	if strings.Contains(got, "error") {
		t.Errorf("a built-in chart failed to load:\n%s", got)
	}
}

func TestSelectionFlags(t *testing.T) {
	c, err := chart.Default().Lookup("congestion")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	flags := selectionFlags{entities: []string{"pb", "hw"}, sub: "AM", view: "comparison", year: 2015}
	sel, err := flags.selection(c)
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if strings.Join(sel.Entities, ",") != "pb,hw" || sel.SubDimension != "AM" || sel.View != series.ViewComparison || sel.Year != 2015 {
		t.Errorf("selection = %+v", sel)
	}

	bad := selectionFlags{view: "breakdown"}
	if _, err := bad.selection(c); !errors.Is(err, series.ErrUnsupportedView) {
		t.Errorf("unsupported view: err = %v", err)
	}
}

func TestLayoutFlags(t *testing.T) {
	cfg := testConfig(t)
	f := layoutFlags{width: 400}
	if err := f.apply(&cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.ChartWidth != 400 || cfg.ChartHeight != 420 {
		t.Errorf("size = %vx%v", cfg.ChartWidth, cfg.ChartHeight)
	}
	f = layoutFlags{height: -1}
	if err := f.apply(&cfg); err == nil {
		t.Error("negative height must be rejected")
	}
}

func TestRenderChartToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bridges.svg")
	flags := selectionFlags{entities: []string{"MPO"}}
	err := renderChart(context.Background(), nil, chart.Default(), "bridges", "svg", out, &flags, testConfig(t))
	if err != nil {
		t.Fatalf("renderChart: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("<svg")) || !bytes.Contains(b, []byte("Bridge Conditions")) {
		t.Errorf("unexpected output: %.80q", b)
	}
}

func TestRenderChartToStdout(t *testing.T) {
	var out bytes.Buffer
	err := renderChart(context.Background(), &out, chart.Default(), "transit", "html", "", &selectionFlags{}, testConfig(t))
	if err != nil {
		t.Fatalf("renderChart: %v", err)
	}
	if !strings.Contains(out.String(), "<!DOCTYPE html>") || !strings.Contains(out.String(), "<svg") {
		t.Error("HTML page does not embed the chart")
	}
}

func TestRenderChartErrors(t *testing.T) {
	cfg := testConfig(t)
	out := filepath.Join(t.TempDir(), "out.pdf")
	err := renderChart(context.Background(), nil, chart.Default(), "bridges", "pdf", out, &selectionFlags{}, cfg)
	if !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Errorf("pdf: err = %v", err)
	}
	err = renderChart(context.Background(), nil, chart.Default(), "nope", "svg", out, &selectionFlags{}, cfg)
	if !errors.Is(err, chart.ErrUnknownChart) {
		t.Errorf("unknown chart: err = %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("no output file should be left behind")
	}
}

func TestPrintTooltip(t *testing.T) {
	cfg := testConfig(t)
	c, err := chart.Default().Lookup("congestion")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	scene, err := render.Render(c, c.DefaultSelection(), cfg.Layout())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var x float64
	for _, tip := range scene.Tooltips() {
		if tip.Year == 2020 {
			x = tip.X
		}
	}

	var out bytes.Buffer
	if err := printTooltip(&out, chart.Default(), "congestion", x, &selectionFlags{}, cfg); err != nil {
		t.Fatalf("printTooltip: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "2020") || !strings.Contains(got, "Hopewell: 1.09") {
		t.Errorf("tooltip = %q", got)
	}

	out.Reset()
	if err := printTooltip(&out, chart.Default(), "congestion", -10, &selectionFlags{}, cfg); err != nil {
		t.Fatalf("printTooltip: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("pointer outside the plot printed %q", out.String())
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"list", "render", "tooltip", "serve"} {
		if _, _, err := root.Find([]string{name}); err != nil {
			t.Errorf("missing command %s: %v", name, err)
		}
	}
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"list"})
	if err := root.Execute(); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "congestion") {
		t.Errorf("list output = %q", out.String())
	}
}
