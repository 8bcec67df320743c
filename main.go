// main.go
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/config"
	"github.com/TWhYNoTT/indicators-sub001/internal/dashboard"
	"github.com/TWhYNoTT/indicators-sub001/internal/export"
	"github.com/TWhYNoTT/indicators-sub001/internal/render"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

// selectionFlags are the command-line equivalents of the dashboard query parameters.
type selectionFlags struct {
	entities []string
	sub      string
	view     string
	year     int
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.entities, "entity", nil, "Entity to show, repeatable, in colour order (default: chart defaults)")
	cmd.Flags().StringVar(&f.sub, "sub", "", "Sub-dimension to show")
	cmd.Flags().StringVar(&f.view, "view", "", "View mode: trend, comparison, distribution, breakdown, heatmap")
	cmd.Flags().IntVar(&f.year, "year", 0, "Year for comparison and breakdown views (default: latest)")
}

func (f *selectionFlags) query() url.Values {
	q := url.Values{}
	for _, e := range f.entities {
		q.Add("entity", e)
	}
	if f.sub != "" {
		q.Set("sub", f.sub)
	}
	if f.view != "" {
		q.Set("view", f.view)
	}
	if f.year != 0 {
		q.Set("year", strconv.Itoa(f.year))
	}
	return q
}

// selection applies the flags to the chart's default selection.
func (f *selectionFlags) selection(c *chart.Chart) (series.Selection, error) {
	return dashboard.SelectionFromQuery(c, f.query())
}

// layoutFlags override the configured chart size.
type layoutFlags struct {
	width, height float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "Chart width in pixels (default: DASHBOARD_CHART_WIDTH)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "Chart height in pixels (default: DASHBOARD_CHART_HEIGHT)")
}

func (f *layoutFlags) apply(cfg *config.Config) error {
	if f.width != 0 {
		cfg.ChartWidth = f.width
	}
	if f.height != 0 {
		cfg.ChartHeight = f.height
	}
	return cfg.Validate()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "indicators",
		Short: "Render the regional performance indicator charts",
		Long: `indicators draws the Tri-Cities infrastructure performance charts from their
embedded datasets, as SVG, HTML, PNG, JPEG or an xlsx workbook, and serves the
interactive dashboard locally.`,
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(), newRenderCmd(), newTooltipCmd(), newServeCmd())
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCharts(cmd.OutOrStdout(), chart.Default())
		},
	}
}

func listCharts(w io.Writer, cat *chart.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tTITLE\tSTATE\tVIEWS")
	for _, c := range cat.Charts() {
		views := make([]string, len(c.Descriptor.Views))
		for i, v := range c.Descriptor.Views {
			views[i] = string(v)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.Descriptor.ID, c.Descriptor.Category, c.Descriptor.Title, c.State, strings.Join(views, ","))
	}
	return tw.Flush()
}

func newRenderCmd() *cobra.Command {
	var (
		outputFile string
		sel        selectionFlags
		layout     layoutFlags
	)
	cmd := &cobra.Command{
		Use:   "render <chart> <format>",
		Short: "Render one chart",
		Long:  "Render one chart in the given format: " + strings.Join(export.Formats, ", ") + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := layout.apply(&cfg); err != nil {
				return err
			}
			return renderChart(cmd.Context(), cmd.OutOrStdout(), chart.Default(), args[0], args[1], outputFile, &sel, cfg)
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default: stdout)")
	sel.register(cmd)
	layout.register(cmd)
	return cmd
}

func renderChart(ctx context.Context, stdout io.Writer, cat *chart.Catalog, id, format, outputFile string, flags *selectionFlags, cfg config.Config) (err error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	log.Printf("Loading chart: %s", id)
	c, err := cat.Lookup(id)
	if err != nil {
		return err
	}
	if !c.Ready() {
		log.Printf("Chart %s is in %s state: %v", id, c.State, c.Err)
	}
	sel, err := flags.selection(c)
	if err != nil {
		return err
	}
	log.Printf("Selection: entities=%v sub=%s view=%s year=%d", sel.Entities, sel.SubDimension, sel.View, sel.Year)

	var outputWriter = stdout
	if outputFile != "" {
		log.Printf("Output directed to file: %s", outputFile)
		var outFile *os.File
		outFile, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file %q: %w", outputFile, err)
		}
		defer func() {
			if closeErr := outFile.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close output file %q: %w", outputFile, closeErr)
			}
			if err != nil {
				log.Printf("Removing incomplete file: %s", outputFile)
				if removeErr := os.Remove(outputFile); removeErr != nil {
					log.Printf("Warning: could not remove output file %q: %v", outputFile, removeErr)
				}
			}
		}()
		outputWriter = outFile
	} else {
		log.Println("Output directed to stdout.")
	}

	log.Printf("Generating output for format: %s", f)
	if err := export.Write(ctx, outputWriter, c, sel, f, cfg.ExportOptions()); err != nil {
		return fmt.Errorf("generate %s: %w", f, err)
	}
	if outputFile != "" {
		log.Printf("Output saved to: %s", outputFile)
	}
	return nil
}

func newTooltipCmd() *cobra.Command {
	var (
		x      float64
		sel    selectionFlags
		layout layoutFlags
	)
	cmd := &cobra.Command{
		Use:   "tooltip <chart>",
		Short: "Print the trend tooltip nearest to a pointer x position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := layout.apply(&cfg); err != nil {
				return err
			}
			return printTooltip(cmd.OutOrStdout(), chart.Default(), args[0], x, &sel, cfg)
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "Pointer x position in chart pixels")
	sel.register(cmd)
	layout.register(cmd)
	_ = cmd.MarkFlagRequired("x")
	return cmd
}

func printTooltip(w io.Writer, cat *chart.Catalog, id string, x float64, flags *selectionFlags, cfg config.Config) error {
	c, err := cat.Lookup(id)
	if err != nil {
		return err
	}
	sel, err := flags.selection(c)
	if err != nil {
		return err
	}
	scene, err := render.Render(c, sel, cfg.Layout())
	if err != nil {
		return err
	}
	tip, ok := scene.TooltipAt(x)
	if !ok {
		log.Printf("No tooltip at x=%v.", x)
		return nil
	}
	_, err = fmt.Fprintln(w, tip.String())
	return err
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}
			log.SetPrefix("[DASHBOARD] ")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := dashboard.New(chart.Default(), cfg)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: DASHBOARD_HTTP_ADDR)")
	return cmd
}
