package csv

import (
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aarondl/opt/null"
)

// Null is the marker for absent values.
const Null = `\N`

// row gives typed access to one record by column name. The first
// conversion error is kept, later accesses return zero values.
type row struct {
	header map[string]int
	values []string
	line   int
	err    error
}

func (r *row) raw(col string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	idx, ok := r.header[col]
	if !ok {
		r.err = fmt.Errorf("%w %s", ErrMissingColumn, col)
		return "", false
	}
	if idx >= len(r.values) || r.values[idx] == Null {
		return "", false
	}
	return r.values[idx], true
}

func (r *row) fail(col, v string, err error) {
	r.err = fmt.Errorf("line %d column %s value %q: %w", r.line, col, v, err)
}

func (r *row) str(col string) string {
	v, _ := r.raw(col)
	return v
}

func (r *row) nullStr(col string) null.Val[string] {
	if v, ok := r.raw(col); ok {
		return null.From(v)
	}
	return null.Val[string]{}
}

func (r *row) nullInt(col string) null.Val[int] {
	v, ok := r.raw(col)
	if !ok || v == "" {
		return null.Val[int]{}
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		r.fail(col, v, err)
		return null.Val[int]{}
	}
	return null.From(i)
}

// int returns 0 for null values.
func (r *row) integer(col string) int {
	i, _ := r.nullInt(col).Get()
	return i
}

func (r *row) float(col string) float64 {
	v, ok := r.raw(col)
	if !ok || v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(col, v, err)
	}
	return f
}

func (r *row) date(col string) time.Time {
	v, ok := r.raw(col)
	if !ok || v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		r.fail(col, v, err)
	}
	return t
}

// decode reads the header line and converts all following records.
func decode[T any](ctx context.Context, in io.Reader, name string, conv func(*row) T) ([]T, error) {
	reader := stdcsv.NewReader(in)
	reader.ReuseRecord = true
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty file", name)
		}
		return nil, err
	}
	r := &row{header: make(map[string]int, len(header)), line: 1}
	for i, h := range header {
		r.header[h] = i
	}
	ret := make([]T, 0)
	for {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return ret, nil
		}
		if err != nil {
			return nil, err
		}
		r.line++
		if r.line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		r.values = values
		item := conv(r)
		if r.err != nil {
			return nil, r.err
		}
		ret = append(ret, item)
	}
}
