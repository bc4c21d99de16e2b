package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/shopspring/decimal"
)

var jsonOptions = ojg.Options{Indent: 2, Sort: true}

// Generic converts mapped rows into the generic []any form used by the
// JSON writer. Floats are converted to plain decimal numbers, the writer
// would use exponent notation for large values.
func Generic(rows []map[string]any) []any {
	ret := make([]any, len(rows))
	for i, r := range rows {
		row := make(map[string]any, len(r))
		for k, v := range r {
			row[k] = plainNumber(v)
		}
		ret[i] = row
	}
	return ret
}

func plainNumber(v any) any {
	if f, ok := v.(float64); ok {
		return json.Number(decimal.NewFromFloat(f).String())
	}
	return v
}

// Document converts the results of several reports keyed by name into the
// generic form used by the JSON writer.
func Document(reports map[string][]map[string]any) map[string]any {
	ret := make(map[string]any, len(reports))
	for name, rows := range reports {
		ret[name] = Generic(rows)
	}
	return ret
}

// JSON encodes v with sorted keys, so equal input yields byte identical output.
// v must be built from generic types (map[string]any, []any, scalars).
func JSON(v any) string {
	return oj.JSON(v, &jsonOptions)
}

func WriteJSON(w io.Writer, v any) error {
	_, err := fmt.Fprintln(w, JSON(v))
	return err
}

// WriteTable renders rows as text table with the given column order.
func WriteTable(w io.Writer, title string, columns []string, rows []map[string]any) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if title != "" {
		t.SetTitle(title)
	}
	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, r := range rows {
		row := make(table.Row, len(columns))
		for i, c := range columns {
			row[i] = cell(r[c])
		}
		t.AppendRow(row)
	}
	t.Render()
}

func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
