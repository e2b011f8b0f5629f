package jsonschema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

// FieldStat describes one field path across a set of samples.
type FieldStat struct {
	Path          string   `json:"path"` // dotted path, [] for array items
	Type          string   `json:"type"`
	Frequency     float64  `json:"frequency"` // fraction of samples carrying the field
	Required      bool     `json:"required"`
	Nullable      bool     `json:"nullable"`
	DistinctCount int      `json:"distinct_count"`
	Examples      []any    `json:"examples,omitempty"`
	Format        string   `json:"format,omitempty"` // uuid, iso8601, url, email, enum
	EnumValues    []string `json:"enum_values,omitempty"`
}

const (
	statsMaxDepth       = 5
	statsMaxExamples    = 3
	minSamplesForFormat = 5
	maxEnumValues       = 10
)

var (
	uuidPattern    = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	iso8601Pattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?`)
	urlPattern     = regexp.MustCompile(`^https?://`)
	emailPattern   = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
)

// FieldStats walks an inferred schema and cross-references the raw samples to
// produce a flat per-field table.
func FieldStats(schema *jsonschema.Schema, samples [][]byte) []FieldStat {
	if schema == nil || len(samples) == 0 {
		return nil
	}

	values := make([]any, 0, len(samples))
	for _, s := range samples {
		var v any
		if err := json.Unmarshal(s, &v); err != nil {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil
	}

	var stats []FieldStat
	walkStats(schema, "", values, 0, &stats)
	return stats
}

func walkStats(schema *jsonschema.Schema, path string, samples []any, depth int, stats *[]FieldStat) {
	if schema == nil {
		return
	}
	if depth > statsMaxDepth {
		*stats = append(*stats, FieldStat{Path: path + " (truncated at depth limit)", Type: "..."})
		return
	}
	if schema.Type != "object" || schema.Properties == nil {
		return
	}

	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		name, prop := pair.Key, pair.Value

		fieldPath := name
		if path != "" {
			fieldPath = path + "." + name
		}
		*stats = append(*stats, fieldStat(fieldPath, name, prop, samples))

		if prop.Type == "object" && prop.Properties != nil {
			walkStats(prop, fieldPath, collectChildObjects(name, samples), depth+1, stats)
		}
		if prop.Type == "array" && prop.Items != nil && prop.Items.Type == "object" {
			walkStats(prop.Items, fieldPath+"[]", collectChildArrayItems(name, samples), depth+1, stats)
		}
	}
}

func fieldStat(path, name string, schema *jsonschema.Schema, samples []any) FieldStat {
	stat := FieldStat{Path: path, Type: statType(schema)}

	present, nulls := 0, 0
	distinct := make(map[string]bool)
	var stringVals []string

	for _, sample := range samples {
		obj, ok := sample.(map[string]any)
		if !ok {
			continue
		}
		val, exists := obj[name]
		if !exists {
			continue
		}
		present++
		if val == nil {
			nulls++
			continue
		}

		key := fmt.Sprintf("%v", val)
		if !distinct[key] {
			distinct[key] = true
			// Nested structure is described by child stats; only scalar
			// examples are worth echoing.
			switch val.(type) {
			case map[string]any, []any:
			default:
				if len(stat.Examples) < statsMaxExamples {
					stat.Examples = append(stat.Examples, val)
				}
			}
		}
		if s, ok := val.(string); ok {
			stringVals = append(stringVals, s)
		}
	}

	if len(samples) > 0 {
		stat.Frequency = float64(present) / float64(len(samples))
	}
	stat.Required = present == len(samples) && nulls == 0
	stat.Nullable = nulls > 0
	stat.DistinctCount = len(distinct)

	if stat.Type == "string" && len(stringVals) >= minSamplesForFormat {
		stat.Format, stat.EnumValues = detectFormat(stringVals)
	}
	return stat
}

// detectFormat reports a format only when every observed value matches it.
func detectFormat(values []string) (string, []string) {
	patterns := []struct {
		name string
		re   *regexp.Regexp
	}{
		{"uuid", uuidPattern},
		{"iso8601", iso8601Pattern},
		{"url", urlPattern},
		{"email", emailPattern},
	}

next:
	for _, p := range patterns {
		for _, v := range values {
			if !p.re.MatchString(v) {
				continue next
			}
		}
		return p.name, nil
	}

	distinct := make(map[string]bool)
	for _, v := range values {
		distinct[v] = true
	}
	if len(distinct) <= maxEnumValues {
		enum := make([]string, 0, len(distinct))
		for v := range distinct {
			enum = append(enum, v)
		}
		sort.Strings(enum)
		return "enum", enum
	}
	return "", nil
}

func statType(schema *jsonschema.Schema) string {
	if schema.Type != "" {
		return schema.Type
	}
	if len(schema.AnyOf) > 0 {
		types := make([]string, 0, len(schema.AnyOf))
		for _, s := range schema.AnyOf {
			if s.Type != "" {
				types = append(types, s.Type)
			}
		}
		return strings.Join(types, "|")
	}
	return "unknown"
}
