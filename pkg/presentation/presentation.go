// Package presentation converts report rows into the caller facing map
// format and renders them as JSON or text table.
package presentation

import (
	"github.com/aarondl/opt/null"
)

// Mappable is implemented by every report row. The returned map contains
// the full, fixed field set of the report; nullable fields are present
// with a nil value.
type Mappable interface {
	Map() map[string]any
}

// Rows maps all rows. The result is never nil.
func Rows[T Mappable](rows []T) []map[string]any {
	ret := make([]map[string]any, len(rows))
	for i := range rows {
		ret[i] = rows[i].Map()
	}
	return ret
}

// Nullable returns the value of v or an explicit nil if v is null.
func Nullable[T any](v null.Val[T]) any {
	if val, ok := v.Get(); ok {
		return val
	}
	return nil
}
