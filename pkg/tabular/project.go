// Package tabular projects classified JSON objects into capped, column-unioned
// row sets suitable for table rendering. Aggregate-count fields and
// array-of-object fields are the two shapes it understands.
package tabular

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Projection caps. The projector records true totals whenever a cap trims
// the output.
const (
	MaxRows         = 50
	MaxCellChars    = 100
	NullMarker      = "NULL"
	ObjectMarker    = "Object"
	SyntheticSource = "data"
)

// Projection is the full tabular view of an object: one entry per aggregate
// field plus one table per array-of-object field.
type Projection struct {
	Aggregates []Aggregate `json:"aggregates,omitempty"`
	Tables     []Table     `json:"tables,omitempty"`
}

// Aggregate is a computed summary field, shaped `{aggregate:{count:N}}` in the
// source object.
type Aggregate struct {
	Field string `json:"field"` // humanized field name
	Count int64  `json:"count"`
}

// Table is one array-of-object field projected to rows.
type Table struct {
	Name          string   `json:"name"` // humanized source field name
	Columns       []string `json:"columns"`
	Rows          [][]Cell `json:"rows"`
	TotalRowCount int      `json:"total_row_count"`
	Truncated     bool     `json:"truncated,omitempty"`
}

// Cell is one formatted table value. Display is what a renderer shows;
// Full carries the untruncated original for long strings so a renderer can
// offer the complete value on demand.
type Cell struct {
	Display string `json:"display"`
	Full    string `json:"full,omitempty"`
}

// groupedPrinter renders numbers with locale grouping (1,234,567).
var groupedPrinter = message.NewPrinter(language.English)

// Matches reports whether an object (or bare array) has tabular shape: at
// least one non-empty array-of-object field or one aggregate field.
func Matches(v any) bool {
	if arr, ok := v.([]any); ok {
		return isObjectArray(arr)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, val := range obj {
		if arr, ok := val.([]any); ok && isObjectArray(arr) {
			return true
		}
		if nested, ok := val.(map[string]any); ok {
			if _, ok := nested["aggregate"]; ok {
				return true
			}
		}
	}
	return false
}

// Project builds the tabular projection of a value. A bare array of objects
// is accepted and attributed to a synthetic "data" field. Field order follows
// the order hint when provided (JSON object key order is not preserved by
// encoding/json, so callers that care pass the raw key order).
func Project(v any, fieldOrder []string) *Projection {
	if arr, ok := v.([]any); ok && isObjectArray(arr) {
		return &Projection{Tables: []Table{projectArray(SyntheticSource, arr)}}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return &Projection{}
	}

	p := &Projection{}
	for _, key := range orderedKeys(obj, fieldOrder) {
		val := obj[key]

		if nested, ok := val.(map[string]any); ok {
			if agg, ok := nested["aggregate"].(map[string]any); ok {
				if count, ok := asInt(agg["count"]); ok {
					p.Aggregates = append(p.Aggregates, Aggregate{
						Field: Humanize(key),
						Count: count,
					})
				}
				continue
			}
		}

		if arr, ok := val.([]any); ok && isObjectArray(arr) {
			p.Tables = append(p.Tables, projectArray(key, arr))
		}
	}
	return p
}

func projectArray(field string, arr []any) Table {
	t := Table{
		Name:          Humanize(field),
		TotalRowCount: len(arr),
	}

	// Column union in order of first appearance across every element.
	seen := make(map[string]bool)
	var rawCols []string
	for _, item := range arr {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, k := range sortedKeys(row) {
			if !seen[k] {
				seen[k] = true
				rawCols = append(rawCols, k)
			}
		}
	}

	t.Columns = make([]string, len(rawCols))
	for i, c := range rawCols {
		t.Columns[i] = Humanize(c)
	}

	limit := len(arr)
	if limit > MaxRows {
		limit = MaxRows
		t.Truncated = true
	}

	for _, item := range arr[:limit] {
		row, _ := item.(map[string]any)
		cells := make([]Cell, len(rawCols))
		for i, col := range rawCols {
			val, present := row[col]
			if !present {
				cells[i] = Cell{Display: NullMarker}
				continue
			}
			cells[i] = FormatCell(val)
		}
		t.Rows = append(t.Rows, cells)
	}

	return t
}

// FormatCell renders one value for table display: null marker, literal
// booleans, locale-grouped numbers, ellipsis-truncated long strings (original
// retained in Full), and a generic marker for nested structures.
func FormatCell(v any) Cell {
	switch val := v.(type) {
	case nil:
		return Cell{Display: NullMarker}
	case bool:
		if val {
			return Cell{Display: "true"}
		}
		return Cell{Display: "false"}
	case float64:
		return Cell{Display: formatNumber(val)}
	case string:
		if utf8.RuneCountInString(val) > MaxCellChars {
			return Cell{Display: string([]rune(val)[:MaxCellChars]) + "...", Full: val}
		}
		return Cell{Display: val}
	default:
		return Cell{Display: ObjectMarker}
	}
}

// Humanize converts a field name to a display label: underscores become
// spaces and each word is title-cased.
func Humanize(field string) string {
	words := strings.Split(strings.ReplaceAll(field, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return groupedPrinter.Sprintf("%d", int64(f))
	}
	return groupedPrinter.Sprintf("%v", f)
}

func isObjectArray(arr []any) bool {
	if len(arr) == 0 {
		return false
	}
	_, ok := arr[0].(map[string]any)
	return ok
}

func asInt(v any) (int64, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// orderedKeys returns the object's keys, honoring the order hint first and
// appending any remaining keys in lexical order for determinism.
func orderedKeys(obj map[string]any, hint []string) []string {
	var keys []string
	used := make(map[string]bool)
	for _, k := range hint {
		if _, ok := obj[k]; ok && !used[k] {
			keys = append(keys, k)
			used[k] = true
		}
	}
	rest := sortedKeys(obj)
	for _, k := range rest {
		if !used[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// sortedKeys returns map keys in lexical order. Parsed JSON objects lose the
// textual key order, so lexical order keeps projections deterministic when no
// order hint is available.
func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
