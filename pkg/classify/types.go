// Package classify turns opaque tool-call payload strings into one of a closed
// set of content categories and extracts the structured fields a renderer
// needs. Classification is a pure function of the input: no I/O, no shared
// state, deterministic, and it always succeeds: plain text is the universal
// fallback.
package classify

import (
	"github.com/usestring/callsight-mcp/pkg/sdl"
	"github.com/usestring/callsight-mcp/pkg/tabular"
)

// Category is the closed set of content shapes.
type Category string

const (
	// Request-role categories.
	CategoryGraphQLQuery Category = "graphql_query"
	CategoryPythonCode   Category = "python_code"

	// Response-role categories.
	CategoryPythonResult  Category = "python_result"
	CategoryGraphQLSchema Category = "graphql_schema"
	CategoryGraphQLSDL    Category = "graphql_sdl"
	CategoryTabularData   Category = "tabular_data"

	// CategoryPlainText is the fallback for both roles.
	CategoryPlainText Category = "plain_text"
)

// Display caps for introspection extraction. True totals are recorded
// whenever a cap trims the output.
const (
	MaxTypesShown  = 20
	MaxFieldsShown = 10
)

// QueryKind discriminates what a query payload looks like.
type QueryKind string

const (
	KindGraphQL QueryKind = "graphql"
	KindSQL     QueryKind = "sql"
	KindGeneric QueryKind = "generic"
)

// Result is the outcome of classifying one payload: exactly one category, and
// the extracted-data field matching it populated.
type Result struct {
	Category Category `json:"category"`

	Query         *QueryPayload        `json:"query,omitempty"`
	Code          *CodePayload         `json:"code,omitempty"`
	Execution     *ExecutionResult     `json:"execution,omitempty"`
	Introspection *SchemaIntrospection `json:"introspection,omitempty"`
	SDL           *sdl.Summary         `json:"sdl,omitempty"`
	Tabular       *tabular.Projection  `json:"tabular,omitempty"`

	// Text is the fallback rendering for CategoryPlainText: the
	// escape-normalized raw payload, pretty-printed when it is valid JSON.
	Text string `json:"text,omitempty"`
}

// QueryPayload is an extracted GraphQL/SQL/generic query request.
type QueryPayload struct {
	QueryText  string         `json:"query_text"`
	Kind       QueryKind      `json:"kind"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// CodePayload is an extracted source-code request.
type CodePayload struct {
	CodeText   string         `json:"code_text"`
	Language   string         `json:"language"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// ExecutionResult is an extracted sandboxed-execution response. Success false
// with an empty Error is legal (the executor reported failure without detail).
type ExecutionResult struct {
	Success    bool              `json:"success"`
	Output     string            `json:"output,omitempty"`
	Error      string            `json:"error,omitempty"`
	Traceback  string            `json:"traceback,omitempty"`
	PlotBase64 string            `json:"plot_base64,omitempty"`
	Variables  map[string]string `json:"variables,omitempty"`
}

// SchemaIntrospection is the structured view of a GraphQL introspection
// document. Types excludes the __-prefixed introspection internals;
// TotalTypeCount is the filtered total before the display cap.
type SchemaIntrospection struct {
	QueryTypeName        string           `json:"query_type_name,omitempty"`
	MutationTypeName     string           `json:"mutation_type_name,omitempty"`
	SubscriptionTypeName string           `json:"subscription_type_name,omitempty"`
	Types                []TypeDescriptor `json:"types,omitempty"`
	TotalTypeCount       int              `json:"total_type_count"`
}

// TypeDescriptor describes one schema type. TotalFieldCount is the full field
// count before the display cap.
type TypeDescriptor struct {
	Name            string            `json:"name"`
	Kind            string            `json:"kind,omitempty"`
	Description     string            `json:"description,omitempty"`
	Fields          []FieldDescriptor `json:"fields,omitempty"`
	TotalFieldCount int               `json:"total_field_count"`
	EnumValues      []string          `json:"enum_values,omitempty"`
}

// FieldDescriptor describes one field of a schema type.
type FieldDescriptor struct {
	Name     string `json:"name"`
	TypeName string `json:"type_name,omitempty"`
}
