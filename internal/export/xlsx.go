package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/TWhYNoTT/indicators-sub001/internal/chart"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

const (
	seriesSheet  = "Selection"
	datasetSheet = "Dataset"
)

// Workbook builds a spreadsheet with the shaped values of the current
// selection and the raw dataset. Null values are left blank.
func Workbook(c *chart.Chart, sel series.Selection) (*excelize.File, error) {
	tbl, err := c.Table()
	if err != nil {
		return nil, err
	}
	sel = c.Normalize(sel.Clone())

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", seriesSheet); err != nil {
		f.Close()
		return nil, err
	}
	var rows [][]any
	switch sel.View {
	case series.ViewComparison, series.ViewBreakdown:
		rows = pointInTimeRows(c, sel)
	case series.ViewDistribution:
		rows = distributionRows(c, sel)
	default:
		rows = trendRows(c, sel)
	}
	if err := writeRows(f, seriesSheet, rows); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(datasetSheet); err != nil {
		f.Close()
		return nil, err
	}
	raw := [][]any{append([]any{"year"}, toAny(tbl.Columns())...)}
	for _, r := range tbl.Rows() {
		row := []any{r.Year}
		for _, col := range tbl.Columns() {
			if v, ok := r.Get(col); ok {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		raw = append(raw, row)
	}
	if err := writeRows(f, datasetSheet, raw); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteXLSX writes the workbook of c for sel to w.
func WriteXLSX(w io.Writer, c *chart.Chart, sel series.Selection) error {
	f, err := Workbook(c, sel)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write XLSX output: %w", err)
	}
	return nil
}

// trendRows is a year by entity table of the selected sub-dimension.
func trendRows(c *chart.Chart, sel series.Selection) [][]any {
	header := []any{"year"}
	for _, e := range sel.Entities {
		header = append(header, c.EntityLabel(e))
	}
	rows := [][]any{header}
	for _, y := range c.Years() {
		row := []any{y}
		for _, e := range sel.Entities {
			if v, ok := c.Value(e, sel.SubDimension, y); ok {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// pointInTimeRows lists each entity's value and share of total for the selected year.
func pointInTimeRows(c *chart.Chart, sel series.Selection) [][]any {
	rows := [][]any{{"entity", fmt.Sprintf("%s %d", c.SubLabel(sel.SubDimension), sel.Year), "share of total (%)"}}
	bars := series.Compare(c, sel.Entities, sel.SubDimension, sel.Year, c.Descriptor.Order)
	vals := make([]float64, len(bars))
	for i, b := range bars {
		vals[i] = b.Value
	}
	shares := series.Percentages(vals)
	for i, b := range bars {
		rows = append(rows, []any{c.EntityLabel(b.Entity), b.Value, shares[i]})
	}
	return rows
}

// distributionRows is the share of every sub-dimension over time for the first entity.
func distributionRows(c *chart.Chart, sel series.Selection) [][]any {
	subs := c.SubDimensions()
	header := []any{"year"}
	for _, s := range subs {
		header = append(header, c.SubLabel(s)+" (%)")
	}
	rows := [][]any{header}
	if len(sel.Entities) == 0 {
		return rows
	}
	for _, p := range series.Distribution(c, sel.Entities[0], subs) {
		row := []any{p.Year}
		for _, seg := range p.Segments {
			row = append(row, seg.Share)
		}
		rows = append(rows, row)
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		last, err := excelize.ColumnNumberToName(len(rows[0]))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return err
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
