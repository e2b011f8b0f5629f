package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleBasePrompt serves the tool usage guide.
func HandleBasePrompt(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# Efficient Tool Usage Guide\n\n")

		// --- Tool Decision Table ---
		sb.WriteString("## Tool Decision Table\n\n")
		sb.WriteString("| Goal | Tool | Example |\n")
		sb.WriteString("|------|------|--------|\n")
		sb.WriteString("| Understand one opaque payload pair | `callsight_classify_call` | `input: \"{\\\"query\\\": ...}\"` |\n")
		sb.WriteString("| Load a transcript for analysis | `callsight_ingest_transcript` | `records: [{id, domain, function_name, input, output}]` |\n")
		sb.WriteString("| Find calls by shape or provenance | `callsight_search_calls` | `response_category: \"python_result\"` |\n")
		sb.WriteString("| Extract values from stored payloads | `callsight_query_payload` | `expression: \".data[].name\"` |\n")
		sb.WriteString("| Learn a payload's structure | `callsight_infer_payload_schema` | `record_ids: [...], role: \"response\"` |\n")
		sb.WriteString("| Validate an execution result envelope | `callsight_check_result` | `record_id: \"...\"` |\n")

		sb.WriteString("\n**Key rules**:\n")
		sb.WriteString("- Payloads may be escaped or wrapped in content envelopes; every tool recovers them automatically, so pass the raw string as captured\n")
		sb.WriteString(fmt.Sprintf("- Search results default to %d entries; raise `limit` only when the default is exhausted\n", cfg.DefaultSearchLimit))
		sb.WriteString("- An unfiltered `callsight_search_calls` returns domain and function histograms: use it first to orient\n")

		// --- Classification Categories ---
		sb.WriteString("\n## Classification Categories\n")
		sb.WriteString("- **graphql_query**: request carries a GraphQL document (query kind, operation name, params)\n")
		sb.WriteString("- **python_code**: request carries Python source\n")
		sb.WriteString("- **python_result**: response is an execution envelope (success, output, error, plot, variables)\n")
		sb.WriteString("- **graphql_schema**: response is an introspection result (types and fields, capped for display)\n")
		sb.WriteString("- **graphql_sdl**: response embeds schema definition language text\n")
		sb.WriteString("- **tabular_data**: response is row-shaped data (projected to capped tables)\n")
		sb.WriteString("- **plain_text**: fallback; the recovered text is preserved verbatim\n")

		// --- Recommended Workflows ---
		sb.WriteString("\n## Recommended Workflows\n")

		sb.WriteString("\n### Survey a Transcript\n")
		sb.WriteString("1. **Ingest**: `callsight_ingest_transcript(records: [...])` - returns category histograms\n")
		sb.WriteString("2. **Orient**: `callsight_search_calls()` with no filters - domains, functions, totals\n")
		sb.WriteString("3. **Drill in**: filter by `response_category` or `function_name`, then classify interesting IDs\n")

		sb.WriteString("\n### Extract Data from Responses\n")
		sb.WriteString(fmt.Sprintf("1. **Shape first**: `callsight_infer_payload_schema(record_ids: [...], role: \"response\")` - merged schema with field stats (up to %d samples)\n", cfg.MaxInferSamples))
		sb.WriteString("2. **Then extract**: `callsight_query_payload(record_ids: [...], expression: \".data.items[].name\")`\n")
		sb.WriteString("3. Set `deduplicate: true` to collapse repeated values across records\n")

		sb.WriteString("\n### Debug Failing Executions\n")
		sb.WriteString("```\n")
		sb.WriteString("callsight_search_calls(response_category: \"python_result\")\n")
		sb.WriteString("callsight_check_result(record_id: \"...\")\n")
		sb.WriteString("callsight_classify_call(output: \"...\")\n")
		sb.WriteString("```\n")
		sb.WriteString("`callsight_check_result` reports which envelope fields are missing or mistyped; `callsight_classify_call` renders the error and traceback.\n")

		// --- JQ Quick Reference ---
		sb.WriteString("\n## JQ Quick Reference\n")
		sb.WriteString("- `.data.items[].name` - Extract from nested arrays\n")
		sb.WriteString("- `.[] | select(.success == false)` - Filter array elements\n")
		sb.WriteString("- `. | keys` - List all top-level keys\n")

		// --- Resources ---
		sb.WriteString("\n## Resources\n")
		sb.WriteString("- `callsight://record/{id}` - full record with raw payloads and both classification results. Tools return summaries; fetch this only when the raw text is needed.\n")

		return &sdkmcp.GetPromptResult{
			Description: "Essential guide for efficient tool usage",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
