package tabular

import (
	"strconv"
	"strings"
	"time"

	"delivery-sync/core/utils"
)

// Dataset is the column-list + row-list tabular structure decoded from one
// named dataset in the partner's response envelope. The column index map is
// built once at construction so row access never rescans the column list.
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]any

	index map[string]int
}

// New builds a Dataset and its column index. Duplicate column names keep the
// first occurrence, matching the partner's own semantics.
func New(name string, columns []string, rows [][]any) *Dataset {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, exists := index[col]; !exists {
			index[col] = i
		}
	}
	return &Dataset{
		Name:    name,
		Columns: columns,
		Rows:    rows,
		index:   index,
	}
}

// Index returns the position of a named column.
func (d *Dataset) Index(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// HasColumn reports whether the dataset exposes the named column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// StructurallyValid reports whether the row's length matches the column list.
// Rows failing this check must be excluded from processing entirely.
func (d *Dataset) StructurallyValid(row []any) bool {
	return len(row) == len(d.Columns)
}

// Value returns the raw cell for a named column. The second return is false
// when the column is unknown or the cell is absent: nil, the empty string,
// or the literal string "null" (the partner emits all three for missing data).
func (d *Dataset) Value(row []any, column string) (any, bool) {
	i, ok := d.index[column]
	if !ok || i >= len(row) {
		return nil, false
	}
	val := row[i]
	if val == nil {
		return nil, false
	}
	if s, isStr := val.(string); isStr {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" || strings.EqualFold(trimmed, "null") {
			return nil, false
		}
	}
	return val, true
}

// String returns the cell as a string, or def when absent.
func (d *Dataset) String(row []any, column, def string) string {
	val, ok := d.Value(row, column)
	if !ok {
		return def
	}
	return strings.TrimSpace(utils.ToString(val))
}

// Int returns the cell as an int, or def when absent or unparseable.
func (d *Dataset) Int(row []any, column string, def int) int {
	val, ok := d.Value(row, column)
	if !ok {
		return def
	}
	return SafeInt(val, def)
}

// Bool returns the cell as a bool; absent cells are false.
func (d *Dataset) Bool(row []any, column string) bool {
	val, ok := d.Value(row, column)
	if !ok {
		return false
	}
	return utils.ToBool(val)
}

// Time returns the cell parsed against the known partner layouts, interpreted
// in loc. It returns nil when the cell is absent or no layout matches, so a
// missing date stays distinguishable from any real timestamp downstream.
func (d *Dataset) Time(row []any, column string, loc *time.Location) *time.Time {
	val, ok := d.Value(row, column)
	if !ok {
		return nil
	}
	t, ok := ParseTime(utils.ToString(val), loc)
	if !ok {
		return nil
	}
	return &t
}

// SafeInt converts any cell value to an int, falling back to def on any
// conversion failure. It never panics.
func SafeInt(val any, def int) int {
	if val == nil {
		return def
	}
	switch val.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return utils.ToInt(val)
	}

	s := strings.TrimSpace(utils.ToString(val))
	if s == "" || strings.EqualFold(s, "null") {
		return def
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return def
}
