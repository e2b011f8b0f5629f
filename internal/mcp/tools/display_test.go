package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/callsight-mcp/pkg/classify"
	"github.com/usestring/callsight-mcp/pkg/sdl"
	"github.com/usestring/callsight-mcp/pkg/tabular"
)

func TestRenderMarkdownQuery(t *testing.T) {
	md := RenderMarkdown(&classify.Result{
		Category: classify.CategoryGraphQLQuery,
		Query: &classify.QueryPayload{
			QueryText:  "query { user { id } }",
			Kind:       classify.KindGraphQL,
			Parameters: map[string]any{"limit": float64(5), "cursor": "abc"},
		},
	})

	assert.Contains(t, md, "**Query** (graphql)")
	assert.Contains(t, md, "```graphql\nquery { user { id } }\n```")
	assert.Contains(t, md, "- `cursor`: \"abc\"")
	assert.Contains(t, md, "- `limit`: 5")
}

func TestRenderMarkdownCode(t *testing.T) {
	md := RenderMarkdown(&classify.Result{
		Category: classify.CategoryPythonCode,
		Code: &classify.CodePayload{
			CodeText: "import json\nprint(json.dumps({}))",
			Language: "python",
		},
	})

	assert.Contains(t, md, "**Code** (python)")
	assert.Contains(t, md, "```python\nimport json")
	assert.NotContains(t, md, "Parameters:")
}

func TestRenderMarkdownExecutionFailure(t *testing.T) {
	md := RenderMarkdown(&classify.Result{
		Category: classify.CategoryPythonResult,
		Execution: &classify.ExecutionResult{
			Success:   false,
			Error:     "NameError: name 'df' is not defined",
			Traceback: "Traceback (most recent call last):\n  File \"<stdin>\", line 1",
		},
	})

	assert.Contains(t, md, "**Execution failed**")
	assert.Contains(t, md, "Error: NameError: name 'df' is not defined")
	assert.Contains(t, md, "Traceback (most recent call last):")
}

func TestRenderMarkdownExecutionSuccess(t *testing.T) {
	md := RenderMarkdown(&classify.Result{
		Category: classify.CategoryPythonResult,
		Execution: &classify.ExecutionResult{
			Success:    true,
			Output:     "done\n",
			PlotBase64: "aGVsbG8=",
			Variables:  map[string]string{"rows": "42", "name": "widgets"},
		},
	})

	assert.Contains(t, md, "**Execution succeeded**")
	assert.Contains(t, md, "Output:\n```\ndone\n```")
	assert.Contains(t, md, "[plot image, 8 bytes base64]")
	// Variables sorted by name
	name := "- `name` = widgets"
	rows := "- `rows` = 42"
	assert.Contains(t, md, name)
	assert.Contains(t, md, rows)
	assert.Less(t, strings.Index(md, name), strings.Index(md, rows))
}

func TestRenderMarkdownIntrospection(t *testing.T) {
	md := RenderMarkdown(&classify.Result{
		Category: classify.CategoryGraphQLSchema,
		Introspection: &classify.SchemaIntrospection{
			QueryTypeName: "Query",
			Types: []classify.TypeDescriptor{
				{
					Name: "User",
					Kind: "OBJECT",
					Fields: []classify.FieldDescriptor{
						{Name: "id", TypeName: "ID!"},
						{Name: "posts", TypeName: "[Post]"},
					},
					TotalFieldCount: 12,
				},
				{
					Name:       "Status",
					Kind:       "ENUM",
					EnumValues: []string{"ACTIVE", "BANNED"},
				},
			},
			TotalTypeCount: 30,
		},
	})

	assert.Contains(t, md, "- query: `Query`")
	assert.Contains(t, md, "`User` (object)")
	assert.Contains(t, md, "  - posts: [Post]")
	assert.Contains(t, md, "… 10 more fields")
	assert.Contains(t, md, "values: ACTIVE, BANNED")
	assert.Contains(t, md, "… 28 more types (30 total)")
}

func TestRenderMarkdownSDL(t *testing.T) {
	md := RenderMarkdown(&classify.Result{
		Category: classify.CategoryGraphQLSDL,
		SDL: &sdl.Summary{
			QueryType:  "Query",
			Types:      []string{"User", "Post"},
			Enums:      []string{"Status"},
			Directives: []string{"deprecated"},
			RawText:    "type Query { me: User }\n",
		},
	})

	assert.Contains(t, md, "**GraphQL SDL**")
	assert.Contains(t, md, "- types (2): User, Post")
	assert.Contains(t, md, "- directives: @deprecated")
	assert.Contains(t, md, "```graphql\ntype Query { me: User }\n```")
}

func TestRenderMarkdownTabular(t *testing.T) {
	md := RenderMarkdown(&classify.Result{
		Category: classify.CategoryTabularData,
		Tabular: &tabular.Projection{
			Aggregates: []tabular.Aggregate{{Field: "Total Count", Count: 99}},
			Tables: []tabular.Table{
				{
					Name:    "Data",
					Columns: []string{"First Name", "Age"},
					Rows: [][]tabular.Cell{
						{{Display: "Ada"}, {Display: "36"}},
						{{Display: "Bob|Smith"}, {Display: "41"}},
					},
					TotalRowCount: 60,
					Truncated:     true,
				},
			},
		},
	})

	assert.Contains(t, md, "**Total Count**: 99")
	assert.Contains(t, md, "| First Name | Age |")
	assert.Contains(t, md, "| Ada | 36 |")
	assert.Contains(t, md, "Bob\\|Smith")
	assert.Contains(t, md, "_showing 2 of 60 rows_")
	// Single synthetic table renders without a heading
	assert.NotContains(t, md, "**Data**")
}

func TestRenderMarkdownPlainText(t *testing.T) {
	md := RenderMarkdown(&classify.Result{
		Category: classify.CategoryPlainText,
		Text:     "not json at all",
	})

	assert.Equal(t, "```\nnot json at all\n```\n", md)
}
