// Package dashboard serves the indicator grid and interactive chart pages
// over HTTP. Every request applies one selection change and redraws.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/config"
	"github.com/TWhYNoTT/indicators-sub001/internal/export"
	"github.com/TWhYNoTT/indicators-sub001/internal/render"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

var funcMap = template.FuncMap{
	"join": strings.Join,
}

// Server renders charts from a read-only catalog.
type Server struct {
	catalog *chart.Catalog
	cfg     config.Config
	index   *template.Template
	page    *template.Template
}

// New parses the page templates. The catalog must not be modified afterwards.
func New(cat *chart.Catalog, cfg config.Config) (*Server, error) {
	index, err := template.New("index").Funcs(funcMap).Parse(tmplBase + tmplIndex)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	page, err := template.New("chart").Funcs(funcMap).Parse(tmplBase + tmplChart)
	if err != nil {
		return nil, fmt.Errorf("parse chart template: %w", err)
	}
	return &Server{catalog: cat, cfg: cfg, index: index, page: page}, nil
}

// Handler returns the routes of the dashboard.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /charts/{name}", s.handleChart)
	mux.HandleFunc("GET /charts/{id}/tooltip", s.handleTooltip)
	mux.HandleFunc("GET /tiles/{name}", s.handleTile)
	return logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Printf("serving %d charts on http://%s", len(s.catalog.Charts()), s.cfg.HTTPAddr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Charts":     s.catalog.Charts(),
		"Categories": s.catalog.Categories(),
	}
	s.execute(w, s.index, data)
}

// handleChart serves the page, or the SVG or workbook when name carries an extension.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	id, ext, _ := strings.Cut(name, ".")
	c, err := s.catalog.Lookup(id)
	if err != nil {
		httpError(w, err)
		return
	}
	sel, err := SelectionFromQuery(c, r.URL.Query())
	if err != nil {
		httpError(w, err)
		return
	}

	switch ext {
	case "":
		s.chartPage(w, c, sel)
	case "svg":
		scene, err := render.Render(c, sel, s.cfg.Layout())
		if err != nil {
			httpError(w, err)
			return
		}
		w.Header().Set("Content-Type", export.FormatSVG.ContentType())
		if _, err := w.Write([]byte(scene.SVG())); err != nil {
			log.Printf("write svg %s: %v", id, err)
		}
	case "xlsx":
		f, err := export.Workbook(c, sel)
		if err != nil {
			httpError(w, err)
			return
		}
		defer f.Close()
		w.Header().Set("Content-Type", export.FormatXLSX.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, id))
		if _, err := f.WriteTo(w); err != nil {
			log.Printf("write xlsx %s: %v", id, err)
		}
	default:
		httpError(w, fmt.Errorf("%w: %q", export.ErrUnsupportedFormat, ext))
	}
}

// link is one control on the chart page.
type link struct {
	Label    string
	Href     string
	On       bool
	Disabled bool
}

func (s *Server) chartPage(w http.ResponseWriter, c *chart.Chart, sel series.Selection) {
	scene, err := render.Render(c, sel, s.cfg.Layout())
	if err != nil {
		httpError(w, err)
		return
	}
	id := c.Descriptor.ID
	href := func(next series.Selection) string {
		return "/charts/" + id + "?" + Query(next).Encode()
	}

	query := Query(sel).Encode()
	data := map[string]any{
		"Chart":    c,
		"SVG":      template.HTML(scene.SVG()),
		"SVGHref":  "/charts/" + id + ".svg?" + query,
		"XLSXHref": "/charts/" + id + ".xlsx?" + query,
	}
	if c.Ready() {
		var entities, subs, views, years []link
		for _, e := range c.Entities() {
			next := sel.Clone()
			changed := next.Toggle(e)
			entities = append(entities, link{
				Label:    c.EntityLabel(e),
				Href:     href(next),
				On:       sel.Contains(e),
				Disabled: !changed && !sel.Contains(e),
			})
		}
		for _, sub := range c.SubDimensions() {
			next := sel.Clone()
			next.SetSubDimension(sub)
			subs = append(subs, link{Label: c.SubLabel(sub), Href: href(next), On: sub == sel.SubDimension})
		}
		for _, v := range sel.Views {
			next := sel.Clone()
			if _, err := next.SetView(v); err != nil {
				continue
			}
			views = append(views, link{Label: string(v), Href: href(next), On: v == sel.View})
		}
		if sel.View == series.ViewComparison || sel.View == series.ViewBreakdown {
			for _, y := range c.Years() {
				next := sel.Clone()
				next.SetYear(y)
				years = append(years, link{Label: strconv.Itoa(y), Href: href(next), On: y == sel.Year})
			}
		}
		data["Entities"], data["Subs"], data["Views"], data["Years"] = entities, subs, views, years
	}
	s.execute(w, s.page, data)
}

// tooltipResponse is the JSON body of the tooltip endpoint.
type tooltipResponse struct {
	Year  int                  `json:"year"`
	X     float64              `json:"x"`
	Lines []render.TooltipLine `json:"lines"`
}

func (s *Server) handleTooltip(w http.ResponseWriter, r *http.Request) {
	c, err := s.catalog.Lookup(r.PathValue("id"))
	if err != nil {
		httpError(w, err)
		return
	}
	x, err := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	if err != nil {
		httpError(w, fmt.Errorf("%w: x must be a number", errBadRequest))
		return
	}
	sel, err := SelectionFromQuery(c, r.URL.Query())
	if err != nil {
		httpError(w, err)
		return
	}
	scene, err := render.Render(c, sel, s.cfg.Layout())
	if err != nil {
		httpError(w, err)
		return
	}
	tip, ok := scene.TooltipAt(x)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tooltipResponse{Year: tip.Year, X: tip.X, Lines: tip.Lines}); err != nil {
		log.Printf("write tooltip %s: %v", c.Descriptor.ID, err)
	}
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	id, ok := strings.CutSuffix(r.PathValue("name"), ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}
	c, err := s.catalog.Lookup(id)
	if err != nil {
		httpError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := Sparkline(&buf, c); err != nil {
		httpError(w, err)
		return
	}
	w.Header().Set("Content-Type", export.FormatPNG.ContentType())
	w.Header().Set("Cache-Control", "max-age=3600")
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("write tile %s: %v", id, err)
	}
}

func (s *Server) execute(w http.ResponseWriter, t *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		log.Printf("template error: %v", err)
	}
}

// httpError maps domain errors to status codes.
func httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, chart.ErrUnknownChart):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest), errors.Is(err, series.ErrUnsupportedView):
		status = http.StatusBadRequest
	case errors.Is(err, export.ErrUnsupportedFormat):
		status = http.StatusNotFound
	case errors.Is(err, chart.ErrNotReady), errors.Is(err, errNoTrend):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	http.Error(w, err.Error(), status)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
