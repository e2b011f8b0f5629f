package classify

import (
	"fmt"
	"strings"

	"github.com/usestring/callsight-mcp/pkg/lenientjson"
	"github.com/usestring/callsight-mcp/pkg/sdl"
	"github.com/usestring/callsight-mcp/pkg/tabular"
)

// ClassifyResponse classifies a response-role payload. Priority order:
// Python execution result, GraphQL schema introspection, GraphQL SDL, tabular
// data, plain text. Schema-over-tabular ordering is a preserved design
// choice: an introspection document full of array fields must not render as
// tables.
func ClassifyResponse(raw string) *Result {
	if r, ok := matchExecutionResult(raw); ok {
		return r
	}

	out := lenientjson.Parse(raw)
	if !out.Unparseable {
		if r, ok := matchIntrospection(out.Value); ok {
			return r
		}
	}
	if r, ok := matchSDL(raw, out); ok {
		return r
	}
	if !out.Unparseable {
		if r, ok := matchTabular(raw, out.Value); ok {
			return r
		}
	}
	return plainText(raw)
}

// ---------------------------------------------------------------------------
// Python execution result
// ---------------------------------------------------------------------------

// hasMarker reports whether the raw text contains a quoted field-name marker,
// in either its plain or escaped form.
func hasMarker(raw, field string) bool {
	return strings.Contains(raw, `"`+field+`"`) ||
		strings.Contains(raw, `\"`+field+`\"`)
}

// matchExecutionResult is tried first and is the most expensive classifier,
// so a string-level gate runs before any parse attempt.
func matchExecutionResult(raw string) (*Result, bool) {
	if !hasMarker(raw, "success") {
		return nil, false
	}
	if !hasMarker(raw, "plot") && !hasMarker(raw, "output") && !hasMarker(raw, "error") {
		return nil, false
	}

	out := lenientjson.Parse(raw)
	if out.Unparseable {
		return nil, false
	}

	// Array-wrapped forms first: a text envelope whose inner payload is the
	// result, or an array whose first element already is the result.
	if arr, ok := asArray(out.Value); ok && len(arr) > 0 {
		if inner, ok := lenientjson.UnwrapEnvelope(out.Value); ok {
			resolved := lenientjson.Parse(inner)
			if !resolved.Unparseable && isExecutionShape(resolved.Value) {
				return extractExecution(resolved.Value), true
			}
		}
		if hasField(arr[0], "success") {
			return extractExecution(arr[0]), true
		}
		return nil, false
	}

	if isExecutionShape(out.Value) {
		return extractExecution(out.Value), true
	}
	return nil, false
}

func isExecutionShape(v any) bool {
	if !hasField(v, "success") {
		return false
	}
	return hasField(v, "output") || hasField(v, "error") || hasField(v, "plot")
}

func extractExecution(v any) *Result {
	exec := &ExecutionResult{}
	exec.Success, _ = boolField(v, "success")
	exec.Output, _ = stringField(v, "output")
	exec.Error, _ = stringField(v, "error")
	exec.Traceback, _ = stringField(v, "traceback")
	exec.PlotBase64, _ = stringField(v, "plot")

	if vars, ok := objectField(v, "variables"); ok && len(vars) > 0 {
		exec.Variables = make(map[string]string, len(vars))
		for k, val := range vars {
			if s, ok := val.(string); ok {
				exec.Variables[k] = s
			} else {
				exec.Variables[k] = fmt.Sprintf("%v", val)
			}
		}
	}

	return &Result{Category: CategoryPythonResult, Execution: exec}
}

// ---------------------------------------------------------------------------
// GraphQL schema introspection
// ---------------------------------------------------------------------------

func matchIntrospection(v any) (*Result, bool) {
	// One level of text-envelope unwrapping, then re-resolve.
	if inner, ok := lenientjson.UnwrapEnvelope(v); ok {
		resolved := lenientjson.Parse(inner)
		if resolved.Unparseable {
			return nil, false
		}
		v = resolved.Value
	}

	schema, ok := effectiveSchema(v)
	if !ok {
		return nil, false
	}
	return extractIntrospection(schema), true
}

// effectiveSchema finds the object holding the introspection fields:
// __schema, data.__schema, or the value itself when it already exposes a
// types array or a root-type field.
func effectiveSchema(v any) (map[string]any, bool) {
	if s, ok := objectField(v, "__schema"); ok {
		return s, true
	}
	if data, ok := objectField(v, "data"); ok {
		if s, ok := objectField(data, "__schema"); ok {
			return s, true
		}
	}
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	if _, ok := arrayField(obj, "types"); ok {
		return obj, true
	}
	if hasField(obj, "queryType") || hasField(obj, "mutationType") || hasField(obj, "subscriptionType") {
		return obj, true
	}
	return nil, false
}

func extractIntrospection(schema map[string]any) *Result {
	intro := &SchemaIntrospection{}

	if qt, ok := objectField(schema, "queryType"); ok {
		intro.QueryTypeName = nameOf(qt)
	}
	if mt, ok := objectField(schema, "mutationType"); ok {
		intro.MutationTypeName = nameOf(mt)
	}
	if st, ok := objectField(schema, "subscriptionType"); ok {
		intro.SubscriptionTypeName = nameOf(st)
	}

	types, _ := arrayField(schema, "types")
	for _, t := range types {
		name := nameOf(t)
		if name == "" || strings.HasPrefix(name, "__") {
			continue
		}
		intro.TotalTypeCount++
		if len(intro.Types) >= MaxTypesShown {
			continue
		}
		intro.Types = append(intro.Types, describeType(t))
	}

	return &Result{Category: CategoryGraphQLSchema, Introspection: intro}
}

func describeType(t any) TypeDescriptor {
	td := TypeDescriptor{Name: nameOf(t)}
	td.Kind, _ = stringField(t, "kind")
	td.Description, _ = stringField(t, "description")

	fields, _ := arrayField(t, "fields")
	td.TotalFieldCount = len(fields)
	for i, f := range fields {
		if i >= MaxFieldsShown {
			break
		}
		fd := FieldDescriptor{Name: nameOf(f)}
		if ft, ok := objField(f, "type"); ok {
			fd.TypeName = renderTypeRef(ft)
		}
		td.Fields = append(td.Fields, fd)
	}

	if enums, ok := arrayField(t, "enumValues"); ok {
		for _, ev := range enums {
			switch val := ev.(type) {
			case string:
				td.EnumValues = append(td.EnumValues, val)
			case map[string]any:
				if n := nameOf(val); n != "" {
					td.EnumValues = append(td.EnumValues, n)
				}
			}
		}
	}

	return td
}

// renderTypeRef renders an introspection type reference, following ofType
// through NON_NULL and LIST wrappers.
func renderTypeRef(t any) string {
	kind, _ := stringField(t, "kind")
	inner, hasInner := objField(t, "ofType")

	switch kind {
	case "NON_NULL":
		if hasInner {
			return renderTypeRef(inner) + "!"
		}
	case "LIST":
		if hasInner {
			return "[" + renderTypeRef(inner) + "]"
		}
	}

	if name := nameOf(t); name != "" {
		return name
	}
	if hasInner {
		return renderTypeRef(inner)
	}
	return ""
}

// ---------------------------------------------------------------------------
// GraphQL SDL
// ---------------------------------------------------------------------------

// matchSDL looks for SDL text in, order: an array envelope's first text
// field, an object's text field, the raw string itself.
func matchSDL(raw string, out lenientjson.Outcome) (*Result, bool) {
	var candidate string

	if !out.Unparseable {
		if inner, ok := lenientjson.UnwrapEnvelope(out.Value); ok {
			candidate = inner
		} else if text, ok := stringField(out.Value, "text"); ok {
			candidate = text
		}
	}
	if candidate == "" {
		candidate = raw
	}

	if !sdl.Looks(candidate) {
		return nil, false
	}
	return &Result{Category: CategoryGraphQLSDL, SDL: sdl.Extract(candidate)}, true
}

// ---------------------------------------------------------------------------
// Tabular data
// ---------------------------------------------------------------------------

// matchTabular walks the unwrap ladder and projects the first candidate with
// tabular shape. The key-order hint is best-effort: it is taken from the raw
// text and only applies where the candidate is the top-level object.
func matchTabular(raw string, v any) (*Result, bool) {
	topOrder := tabular.KeyOrder([]byte(strings.TrimSpace(lenientjson.Normalize(raw))))

	type candidate struct {
		value any
		order []string
	}
	var candidates []candidate

	if data, ok := objField(v, "data"); ok {
		candidates = append(candidates, candidate{value: data})
	}
	if inner, ok := lenientjson.UnwrapEnvelope(v); ok {
		resolved := lenientjson.Parse(inner)
		if !resolved.Unparseable {
			if data, ok := objField(resolved.Value, "data"); ok {
				candidates = append(candidates, candidate{value: data})
			}
			candidates = append(candidates, candidate{value: resolved.Value})
		}
	}
	candidates = append(candidates, candidate{value: v, order: topOrder})

	for _, c := range candidates {
		if tabular.Matches(c.value) {
			return &Result{
				Category: CategoryTabularData,
				Tabular:  tabular.Project(c.value, c.order),
			}, true
		}
	}
	return nil, false
}
