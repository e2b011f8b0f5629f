package tabular

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected bool
	}{
		{"array of objects field", `{"users":[{"id":1},{"id":2}]}`, true},
		{"aggregate field", `{"users_aggregate":{"aggregate":{"count":42}}}`, true},
		{"bare array of objects", `[{"a":1},{"a":2}]`, true},
		{"empty array field", `{"users":[]}`, false},
		{"array of scalars", `{"ids":[1,2,3]}`, false},
		{"plain object", `{"name":"x"}`, false},
		{"scalar", `42`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(parseJSON(t, tt.raw)))
		})
	}
}

func TestProjectArrayField(t *testing.T) {
	raw := `{"order_items":[{"product_name":"Widget","qty":2},{"product_name":"Gadget","qty":5,"note":"rush"}]}`
	p := Project(parseJSON(t, raw), KeyOrder([]byte(raw)))

	require.Len(t, p.Tables, 1)
	tbl := p.Tables[0]
	assert.Equal(t, "Order Items", tbl.Name)
	// Column union: keys of the second row appear after the first row's.
	assert.Equal(t, []string{"product_name", "qty", "note"}, rawColumnProbe(tbl.Columns))
	assert.Equal(t, 2, tbl.TotalRowCount)
	assert.False(t, tbl.Truncated)

	require.Len(t, tbl.Rows, 2)
	// Missing key in first row renders as the null marker.
	assert.Equal(t, NullMarker, tbl.Rows[0][2].Display)
	assert.Equal(t, "rush", tbl.Rows[1][2].Display)
}

// rawColumnProbe maps humanized columns back to their source form for
// order assertions.
func rawColumnProbe(cols []string) []string {
	inverse := map[string]string{
		"Product Name": "product_name",
		"Qty":          "qty",
		"Note":         "note",
	}
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = inverse[c]
	}
	return out
}

func TestProjectRowCapping(t *testing.T) {
	items := make([]map[string]any, 73)
	for i := range items {
		items[i] = map[string]any{"n": float64(i)}
	}
	raw, err := json.Marshal(map[string]any{"rows": items})
	require.NoError(t, err)

	p := Project(parseJSON(t, string(raw)), nil)

	require.Len(t, p.Tables, 1)
	tbl := p.Tables[0]
	assert.Len(t, tbl.Rows, 50)
	assert.True(t, tbl.Truncated)
	assert.Equal(t, 73, tbl.TotalRowCount)
}

func TestProjectAggregates(t *testing.T) {
	raw := `{"users_aggregate":{"aggregate":{"count":1234567}},"orders":[{"id":1}]}`
	p := Project(parseJSON(t, raw), KeyOrder([]byte(raw)))

	require.Len(t, p.Aggregates, 1)
	assert.Equal(t, "Users Aggregate", p.Aggregates[0].Field)
	assert.Equal(t, int64(1234567), p.Aggregates[0].Count)
	require.Len(t, p.Tables, 1)
	assert.Equal(t, "Orders", p.Tables[0].Name)
}

func TestProjectBareArray(t *testing.T) {
	p := Project(parseJSON(t, `[{"city":"Oslo"},{"city":"Lima"}]`), nil)

	require.Len(t, p.Tables, 1)
	assert.Equal(t, "Data", p.Tables[0].Name)
	assert.Equal(t, 2, p.Tables[0].TotalRowCount)
}

func TestFormatCell(t *testing.T) {
	long := ""
	for range 30 {
		long += "abcde"
	}

	tests := []struct {
		name    string
		value   any
		display string
		full    string
	}{
		{"nil", nil, NullMarker, ""},
		{"true", true, "true", ""},
		{"false", false, "false", ""},
		{"integer grouping", float64(1234567), "1,234,567", ""},
		{"short string", "hello", "hello", ""},
		{"long string truncated", long, long[:MaxCellChars] + "...", long},
		{"nested object", map[string]any{"a": 1}, ObjectMarker, ""},
		{"nested array", []any{1.0}, ObjectMarker, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := FormatCell(tt.value)
			assert.Equal(t, tt.display, cell.Display)
			assert.Equal(t, tt.full, cell.Full)
		})
	}
}

func TestFormatCellMultibyteTruncation(t *testing.T) {
	long := strings.Repeat("héllo", 30) // over the cap in runes and bytes

	cell := FormatCell(long)
	assert.True(t, utf8.ValidString(cell.Display))
	assert.Equal(t, string([]rune(long)[:MaxCellChars])+"...", cell.Display)
	assert.Equal(t, long, cell.Full)

	// A multi-byte string at or under the cap passes through untouched.
	short := strings.Repeat("é", MaxCellChars)
	assert.Equal(t, short, FormatCell(short).Display)
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"product_name", "Product Name"},
		{"qty", "Qty"},
		{"already Title", "Already Title"},
		{"émission_totale", "Émission Totale"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			assert.Equal(t, tt.out, Humanize(tt.in))
		})
	}
}

func TestKeyOrder(t *testing.T) {
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, KeyOrder([]byte(`{"zeta":1,"alpha":2,"mid":3}`)))
	assert.Nil(t, KeyOrder([]byte(`[1,2]`)))
	assert.Nil(t, KeyOrder([]byte(`not json`)))
}
