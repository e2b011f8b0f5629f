package tools

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/usestring/callsight-mcp/pkg/classify"
	"github.com/usestring/callsight-mcp/pkg/sdl"
	"github.com/usestring/callsight-mcp/pkg/tabular"
)

// RenderMarkdown renders a classification result as markdown suitable for
// direct display in an agent transcript.
func RenderMarkdown(res *classify.Result) string {
	var b strings.Builder

	switch res.Category {
	case classify.CategoryGraphQLQuery:
		renderQuery(&b, res.Query)
	case classify.CategoryPythonCode:
		renderCode(&b, res.Code)
	case classify.CategoryPythonResult:
		renderExecution(&b, res.Execution)
	case classify.CategoryGraphQLSchema:
		renderIntrospection(&b, res.Introspection)
	case classify.CategoryGraphQLSDL:
		renderSDL(&b, res.SDL)
	case classify.CategoryTabularData:
		renderTabular(&b, res.Tabular)
	default:
		fmt.Fprintf(&b, "```\n%s\n```\n", res.Text)
	}

	return b.String()
}

func renderQuery(b *strings.Builder, q *classify.QueryPayload) {
	lang := "graphql"
	if q.Kind == classify.KindSQL {
		lang = "sql"
	} else if q.Kind == classify.KindGeneric {
		lang = ""
	}
	fmt.Fprintf(b, "**Query** (%s)\n\n```%s\n%s\n```\n", q.Kind, lang, q.QueryText)
	renderParams(b, q.Parameters)
}

func renderCode(b *strings.Builder, c *classify.CodePayload) {
	fmt.Fprintf(b, "**Code** (%s)\n\n```%s\n%s\n```\n", c.Language, c.Language, c.CodeText)
	renderParams(b, c.Parameters)
}

func renderParams(b *strings.Builder, params map[string]any) {
	if len(params) == 0 {
		return
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("\nParameters:\n")
	for _, k := range keys {
		v, _ := json.Marshal(params[k])
		fmt.Fprintf(b, "- `%s`: %s\n", k, v)
	}
}

func renderExecution(b *strings.Builder, e *classify.ExecutionResult) {
	status := "succeeded"
	if !e.Success {
		status = "failed"
	}
	fmt.Fprintf(b, "**Execution %s**\n", status)

	if e.Output != "" {
		fmt.Fprintf(b, "\nOutput:\n```\n%s\n```\n", strings.TrimRight(e.Output, "\n"))
	}
	if e.Error != "" {
		fmt.Fprintf(b, "\nError: %s\n", e.Error)
	}
	if e.Traceback != "" {
		fmt.Fprintf(b, "\n```\n%s\n```\n", strings.TrimRight(e.Traceback, "\n"))
	}
	if e.PlotBase64 != "" {
		fmt.Fprintf(b, "\n[plot image, %d bytes base64]\n", len(e.PlotBase64))
	}
	if len(e.Variables) > 0 {
		keys := make([]string, 0, len(e.Variables))
		for k := range e.Variables {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("\nVariables:\n")
		for _, k := range keys {
			fmt.Fprintf(b, "- `%s` = %s\n", k, e.Variables[k])
		}
	}
}

func renderIntrospection(b *strings.Builder, s *classify.SchemaIntrospection) {
	b.WriteString("**GraphQL schema**\n")
	if s.QueryTypeName != "" {
		fmt.Fprintf(b, "- query: `%s`\n", s.QueryTypeName)
	}
	if s.MutationTypeName != "" {
		fmt.Fprintf(b, "- mutation: `%s`\n", s.MutationTypeName)
	}
	if s.SubscriptionTypeName != "" {
		fmt.Fprintf(b, "- subscription: `%s`\n", s.SubscriptionTypeName)
	}

	for _, t := range s.Types {
		fmt.Fprintf(b, "\n`%s` (%s)", t.Name, strings.ToLower(t.Kind))
		if t.Description != "" {
			fmt.Fprintf(b, ": %s", firstLine(t.Description))
		}
		b.WriteString("\n")
		for _, f := range t.Fields {
			fmt.Fprintf(b, "  - %s: %s\n", f.Name, f.TypeName)
		}
		if t.TotalFieldCount > len(t.Fields) {
			fmt.Fprintf(b, "  - … %d more fields\n", t.TotalFieldCount-len(t.Fields))
		}
		if len(t.EnumValues) > 0 {
			fmt.Fprintf(b, "  - values: %s\n", strings.Join(t.EnumValues, ", "))
		}
	}
	if s.TotalTypeCount > len(s.Types) {
		fmt.Fprintf(b, "\n… %d more types (%d total)\n", s.TotalTypeCount-len(s.Types), s.TotalTypeCount)
	}
}

func renderSDL(b *strings.Builder, s *sdl.Summary) {
	b.WriteString("**GraphQL SDL**\n")
	if s.QueryType != "" {
		fmt.Fprintf(b, "- query: `%s`\n", s.QueryType)
	}
	if s.MutationType != "" {
		fmt.Fprintf(b, "- mutation: `%s`\n", s.MutationType)
	}
	if s.SubscriptionType != "" {
		fmt.Fprintf(b, "- subscription: `%s`\n", s.SubscriptionType)
	}
	if len(s.Types) > 0 {
		fmt.Fprintf(b, "- types (%d): %s\n", len(s.Types), strings.Join(s.Types, ", "))
	}
	if len(s.Enums) > 0 {
		fmt.Fprintf(b, "- enums (%d): %s\n", len(s.Enums), strings.Join(s.Enums, ", "))
	}
	if len(s.Directives) > 0 {
		fmt.Fprintf(b, "- directives: @%s\n", strings.Join(s.Directives, ", @"))
	}
	fmt.Fprintf(b, "\n```graphql\n%s\n```\n", strings.TrimRight(s.RawText, "\n"))
}

func renderTabular(b *strings.Builder, p *tabular.Projection) {
	for _, agg := range p.Aggregates {
		fmt.Fprintf(b, "**%s**: %d\n", agg.Field, agg.Count)
	}

	for _, table := range p.Tables {
		if len(p.Tables) > 1 || table.Name != tabular.Humanize(tabular.SyntheticSource) {
			fmt.Fprintf(b, "\n**%s**\n", table.Name)
		}
		b.WriteString("\n")
		renderMarkdownTable(b, table)
		if table.Truncated {
			fmt.Fprintf(b, "\n_showing %d of %d rows_\n", len(table.Rows), table.TotalRowCount)
		}
	}
}

func renderMarkdownTable(b *strings.Builder, table tabular.Table) {
	fmt.Fprintf(b, "| %s |\n", strings.Join(table.Columns, " | "))

	sep := make([]string, len(table.Columns))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(sep, " | "))

	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.ReplaceAll(cell.Display, "|", "\\|")
		}
		fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
