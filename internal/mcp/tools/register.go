package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: callsight_classify_call
	AddTool(srv, &sdkmcp.Tool{
		Name:        "callsight_classify_call",
		Description: "Classify a tool-call request/response payload pair into content categories (graphql_query, python_code, python_result, graphql_schema, graphql_sdl, tabular_data, plain_text) and extract the structured content. Handles JSON-escaped, envelope-wrapped, and truncated payloads. Returns structured results plus a markdown rendering (tables for tabular data, fenced code for queries/code, schema outlines for GraphQL). Stateless; use ingest_transcript to index many calls for search.",
	}, ToolClassifyCall(d))

	// Tool 2: callsight_ingest_transcript
	AddTool(srv, &sdkmcp.Tool{
		Name:        "callsight_ingest_transcript",
		Description: "Classify and index a batch of transcript records {id, domain, function_name, pending_auth, input, output}. Classification is memoized per distinct payload. Returns how many records were newly ingested plus category histograms per role. Re-ingesting an existing id is a no-op.",
	}, ToolIngestTranscript(d))

	// Tool 3: callsight_search_calls
	AddTool(srv, &sdkmcp.Tool{
		Name:        "callsight_search_calls",
		Description: "Filter ingested calls by domain, function_name, request/response category, or pending_auth. Returns {results: [{id, domain, function_name, request_category, response_category}], total}. Supports limit/offset pagination. An unfiltered search also returns domain and function counts as an overview. Use the returned ids with query_payload, infer_payload_schema, or check_result.",
	}, ToolSearchCalls(d))

	// Tool 4: callsight_query_payload
	AddTool(srv, &sdkmcp.Tool{
		Name:        "callsight_query_payload",
		Description: "Run a JQ expression against the recovered payloads of stored calls. Payloads are resolved through the lenient parser first, so escaped and envelope-wrapped JSON queries as the JSON it carries. Requires record_ids from search_calls or ingest_transcript; set role=request to query inputs instead of outputs. Returns a values array with per-record error hints.",
	}, ToolQueryPayload(d))

	// Tool 5: callsight_infer_payload_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "callsight_infer_payload_schema",
		Description: "Infer a merged JSON Schema (Draft 2020-12) across the recovered payloads of selected calls, with per-field statistics (frequency, required/optional, nullable, detected formats: uuid, iso8601, url, email, enum). Requires record_ids; set role=request to sample inputs, max_samples to bound the sample size (default 100, record_ids beyond it are ignored). Records whose payload never parses are listed in skipped.",
	}, ToolInferPayloadSchema(d))

	// Tool 6: callsight_check_result
	AddTool(srv, &sdkmcp.Tool{
		Name:        "callsight_check_result",
		Description: "Validate an execution-result payload against the executor output contract ({success} required; output/error/traceback/plot/variables optional with types). Accepts a stored record_id or a raw payload. Reports which parse recovery applied and per-path violations. Informational only: a failing payload keeps its classification.",
	}, ToolCheckResult(d))
}
