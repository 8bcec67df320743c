package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads a comma-separated literal, header row first, into a Table.
//
// Every data field parses as a float64 except empty fields, which become nil.
// The first column must be the integer time column and its values must be
// strictly increasing.
func Parse(name, literal string) (*Table, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(literal)))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, &ParseError{Dataset: name, Err: errors.New("empty literal")}
	}
	if err != nil {
		return nil, wrapCSVError(name, err)
	}
	if err := checkHeader(header); err != nil {
		return nil, &ParseError{Dataset: name, Line: 1, Err: err}
	}

	t := &Table{
		Name:    name,
		columns: make([]string, 0, len(header)-1),
		byYear:  make(map[int]int),
	}
	for _, h := range header[1:] {
		t.columns = append(t.columns, strings.TrimSpace(h))
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError(name, err)
		}
		line, _ := r.FieldPos(0)
		row, err := parseRecord(t.columns, record)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Dataset, pe.Line = name, line
				return nil, pe
			}
			return nil, &ParseError{Dataset: name, Line: line, Err: err}
		}
		if n := len(t.rows); n > 0 && row.Year <= t.rows[n-1].Year {
			return nil, &ParseError{
				Dataset: name,
				Line:    line,
				Column:  TimeColumn,
				Err:     fmt.Errorf("year %d does not follow %d", row.Year, t.rows[n-1].Year),
			}
		}
		t.byYear[row.Year] = len(t.rows)
		t.rows = append(t.rows, row)
	}

	if len(t.rows) == 0 {
		return nil, &ParseError{Dataset: name, Err: errors.New("no data rows")}
	}
	return t, nil
}

func checkHeader(header []string) error {
	if len(header) < 2 {
		return fmt.Errorf("header needs %q and at least one data column", TimeColumn)
	}
	if strings.TrimSpace(header[0]) != TimeColumn {
		return fmt.Errorf("first column is %q, want %q", header[0], TimeColumn)
	}
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			return errors.New("empty column name")
		}
		if seen[h] {
			return fmt.Errorf("duplicate column %q", h)
		}
		seen[h] = true
	}
	return nil
}

func parseRecord(columns []string, record []string) (Row, error) {
	year, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return Row{}, &ParseError{Column: TimeColumn, Err: fmt.Errorf("invalid year %q", record[0])}
	}
	row := Row{Year: year, Values: make(map[string]*float64, len(columns))}
	for i, col := range columns {
		field := strings.TrimSpace(record[i+1])
		if field == "" {
			row.Values[col] = nil
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Row{}, &ParseError{Column: col, Err: fmt.Errorf("invalid number %q", field)}
		}
		row.Values[col] = &v
	}
	return row, nil
}

// wrapCSVError keeps the line number the csv reader reports.
func wrapCSVError(name string, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Dataset: name, Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Dataset: name, Err: err}
}
