package tui

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	table "github.com/charmbracelet/bubbles/table"

	"geomap/internal/geom"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the currently selected path
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		// Do not touch table internals here to avoid re-render during SetColumns
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	// map to bubbles table columns/rows
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		w := len(c) + 2
		if w > maxColW {
			w = maxColW
		}
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Normalize each row to match the number of table columns
	colCount := len(tcols)
	for i := range trows {
		cells := []string(trows[i])
		if len(cells) < colCount {
			// pad
			pad := make([]string, colCount-len(cells))
			cells = append(cells, pad...)
		} else if len(cells) > colCount {
			// truncate
			cells = cells[:colCount]
		}
		trows[i] = table.Row(cells)
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes inspects the current dataset and returns (columns, rows)
func (m *Model) buildAttributes() ([]string, [][]string) {
	p := m.selPath
	if p == "" {
		// pasted WKT or ephemeral data: no attributes available
		return []string{}, [][]string{}
	}
	ext := strings.ToLower(filepath.Ext(p))
	switch ext {
	case ".geojson", ".json":
		return buildAttrsGeoJSON(p)
	case ".csv":
		return buildAttrsCSV(p)
	default:
		// fallback: extent/summary as a single-row table
		d := m.scene.data
		cols := []string{"name", "path", "extent", "points", "lines", "polygons", "invalid"}
		vals := []string{filepath.Base(p), p, d.Extent.String(), fmt.Sprint(len(d.Points)), fmt.Sprint(len(d.Lines)), fmt.Sprint(len(d.Polygons)), fmt.Sprint(len(m.scene.invalid))}
		return cols, [][]string{vals}
	}
}

// buildAttrsGeoJSON collects properties across all features and unions the keys
func buildAttrsGeoJSON(path string) ([]string, [][]string) {
	b, err := os.ReadFile(path)
	if err != nil {
		return []string{}, [][]string{}
	}
	fc, err := geom.ReadFeatures(b)
	if err != nil {
		return []string{}, [][]string{}
	}
	// union property keys, sorted for a stable column order
	order := []string{}
	seen := map[string]bool{}
	for _, f := range fc.Features {
		for k := range f.Properties {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	slices.Sort(order)
	rows := make([][]string, 0, len(fc.Features))
	for _, f := range fc.Features {
		vals := make([]string, 0, len(order))
		for _, k := range order {
			vals = append(vals, formatValue(f.Properties[k]))
		}
		rows = append(rows, vals)
	}
	return order, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprint(t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}

// buildAttrsCSV returns header as columns and each row as values
func buildAttrsCSV(path string) ([]string, [][]string) {
	f, err := os.Open(path)
	if err != nil {
		return []string{}, [][]string{}
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil || len(recs) == 0 {
		return []string{}, [][]string{}
	}
	header := recs[0]
	rows := make([][]string, 0, len(recs)-1)
	for _, row := range recs[1:] {
		vals := make([]string, len(header))
		copy(vals, row)
		rows = append(rows, vals)
	}
	return header, rows
}
