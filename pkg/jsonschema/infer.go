// Package jsonschema infers JSON Schema (Draft 2020-12) documents from sample
// payloads and computes per-field statistics across samples.
package jsonschema

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/invopop/jsonschema"
)

// Inference is a schema inferred from one or more samples.
type Inference struct {
	Schema      *jsonschema.Schema `json:"schema"`
	SampleCount int                `json:"sample_count"`
	AllMatch    bool               `json:"all_match"` // every sample inferred the identical schema
}

// Infer parses each sample and returns the merged schema. Unparseable samples
// are skipped, and nil is returned when nothing parses. Object properties
// present in every sample and never null become required.
func Infer(samples ...[]byte) *Inference {
	values := make([]any, 0, len(samples))
	for _, data := range samples {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil
	}

	perSample := make([]*jsonschema.Schema, len(values))
	for i, v := range values {
		perSample[i] = InferValue(v)
	}

	allMatch := true
	if len(perSample) > 1 {
		first, _ := json.Marshal(perSample[0])
		for _, s := range perSample[1:] {
			other, _ := json.Marshal(s)
			if string(first) != string(other) {
				allMatch = false
				break
			}
		}
	}

	merged := merge(perSample)
	if merged.Type == "object" {
		markRequired(merged, values)
	}

	return &Inference{Schema: merged, SampleCount: len(values), AllMatch: allMatch}
}

// InferValue infers the schema of a single parsed JSON value. Numbers without
// a fractional part infer as integer.
func InferValue(v any) *jsonschema.Schema {
	switch val := v.(type) {
	case nil:
		return &jsonschema.Schema{Type: "null"}
	case bool:
		return &jsonschema.Schema{Type: "boolean"}
	case string:
		return &jsonschema.Schema{Type: "string"}
	case float64:
		if math.Trunc(val) == val && !math.IsInf(val, 0) {
			return &jsonschema.Schema{Type: "integer"}
		}
		return &jsonschema.Schema{Type: "number"}
	case []any:
		schema := &jsonschema.Schema{Type: "array"}
		if len(val) == 0 {
			return schema
		}
		items := make([]*jsonschema.Schema, len(val))
		for i, item := range val {
			items[i] = InferValue(item)
		}
		schema.Items = merge(items)
		return schema
	case map[string]any:
		schema := &jsonschema.Schema{Type: "object", Properties: jsonschema.NewProperties()}
		for _, k := range sortedMapKeys(val) {
			schema.Properties.Set(k, InferValue(val[k]))
		}
		return schema
	default:
		return &jsonschema.Schema{}
	}
}

// merge folds per-sample schemas into one. Same-typed schemas merge
// structurally; mixed types become an anyOf.
func merge(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 0 {
		return &jsonschema.Schema{}
	}
	if len(schemas) == 1 {
		return schemas[0]
	}

	byType := make(map[string][]*jsonschema.Schema)
	for _, s := range schemas {
		if s.Type != "" {
			byType[s.Type] = append(byType[s.Type], s)
		}
	}

	if len(byType) == 1 {
		for t, group := range byType {
			switch t {
			case "object":
				return mergeObjects(group)
			case "array":
				return mergeArrays(group)
			default:
				return group[0]
			}
		}
	}

	typeList := make([]string, 0, len(byType))
	for t := range byType {
		typeList = append(typeList, t)
	}
	sort.Strings(typeList)

	anyOf := make([]*jsonschema.Schema, 0, len(typeList))
	for _, t := range typeList {
		switch t {
		case "object":
			anyOf = append(anyOf, mergeObjects(byType[t]))
		case "array":
			anyOf = append(anyOf, mergeArrays(byType[t]))
		default:
			anyOf = append(anyOf, &jsonschema.Schema{Type: t})
		}
	}
	if len(anyOf) == 1 {
		return anyOf[0]
	}
	return &jsonschema.Schema{AnyOf: anyOf}
}

func mergeObjects(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 1 {
		return schemas[0]
	}

	byProp := make(map[string][]*jsonschema.Schema)
	for _, s := range schemas {
		if s.Properties == nil {
			continue
		}
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			byProp[pair.Key] = append(byProp[pair.Key], pair.Value)
		}
	}

	merged := &jsonschema.Schema{Type: "object", Properties: jsonschema.NewProperties()}
	keys := make([]string, 0, len(byProp))
	for k := range byProp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		merged.Properties.Set(k, merge(byProp[k]))
	}
	return merged
}

func mergeArrays(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 1 {
		return schemas[0]
	}
	var items []*jsonschema.Schema
	for _, s := range schemas {
		if s.Items != nil {
			items = append(items, s.Items)
		}
	}
	if len(items) == 0 {
		return &jsonschema.Schema{Type: "array"}
	}
	return &jsonschema.Schema{Type: "array", Items: merge(items)}
}

// markRequired marks properties present in every sample and never null as
// required, recursing into nested object properties and arrays of objects.
func markRequired(schema *jsonschema.Schema, samples []any) {
	if schema.Type != "object" || schema.Properties == nil {
		return
	}

	counts := make(map[string]int)
	nullable := make(map[string]bool)
	for _, sample := range samples {
		obj, ok := sample.(map[string]any)
		if !ok {
			continue
		}
		for key, value := range obj {
			counts[key]++
			if value == nil {
				nullable[key] = true
			}
		}
	}

	var required []string
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		if counts[pair.Key] == len(samples) && !nullable[pair.Key] {
			required = append(required, pair.Key)
		}
	}
	sort.Strings(required)
	if len(required) > 0 {
		schema.Required = required
	}

	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		switch pair.Value.Type {
		case "object":
			nested := collectChildObjects(pair.Key, samples)
			if len(nested) > 0 {
				markRequired(pair.Value, nested)
			}
		case "array":
			if pair.Value.Items != nil && pair.Value.Items.Type == "object" {
				items := collectChildArrayItems(pair.Key, samples)
				if len(items) > 0 {
					markRequired(pair.Value.Items, items)
				}
			}
		}
	}
}

func collectChildObjects(key string, samples []any) []any {
	var nested []any
	for _, sample := range samples {
		if obj, ok := sample.(map[string]any); ok {
			if child, ok := obj[key]; ok && child != nil {
				nested = append(nested, child)
			}
		}
	}
	return nested
}

func collectChildArrayItems(key string, samples []any) []any {
	var items []any
	for _, sample := range samples {
		obj, ok := sample.(map[string]any)
		if !ok {
			continue
		}
		arr, ok := obj[key].([]any)
		if !ok {
			continue
		}
		for _, item := range arr {
			if item != nil {
				items = append(items, item)
			}
		}
	}
	return items
}

func sortedMapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
