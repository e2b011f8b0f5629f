package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/callsight-mcp/internal/store"
	"github.com/usestring/callsight-mcp/pkg/classify"
)

// SearchCallsInput is the input for callsight_search_calls.
type SearchCallsInput struct {
	Domain           string `json:"domain,omitempty" jsonschema:"Filter by origin domain (exact match)"`
	FunctionName     string `json:"function_name,omitempty" jsonschema:"Filter by invoked function name"`
	RequestCategory  string `json:"request_category,omitempty" jsonschema:"Filter by request classification: graphql_query, python_code, plain_text"`
	ResponseCategory string `json:"response_category,omitempty" jsonschema:"Filter by response classification: python_result, graphql_schema, graphql_sdl, tabular_data, plain_text"`
	PendingAuthOnly  bool   `json:"pending_auth_only,omitempty" jsonschema:"Only calls blocked on authorization"`
	Limit            int    `json:"limit,omitempty" jsonschema:"Max results (default: 10)"`
	Offset           int    `json:"offset,omitempty" jsonschema:"Skip this many matches before returning results"`
}

// CallSummary is one search hit.
type CallSummary struct {
	ID               string `json:"id"`
	Domain           string `json:"domain,omitempty"`
	FunctionName     string `json:"function_name,omitempty"`
	PendingAuth      bool   `json:"pending_auth,omitempty"`
	RequestCategory  string `json:"request_category"`
	ResponseCategory string `json:"response_category"`
}

// SearchCallsOutput is the output for callsight_search_calls.
type SearchCallsOutput struct {
	Results   []CallSummary  `json:"results,omitzero"`
	Total     int            `json:"total"`
	Domains   map[string]int `json:"domains,omitempty"`
	Functions map[string]int `json:"functions,omitempty"`
}

// ToolSearchCalls filters ingested calls through the bitmap index.
func ToolSearchCalls(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchCallsInput) (*sdkmcp.CallToolResult, SearchCallsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchCallsInput) (*sdkmcp.CallToolResult, SearchCallsOutput, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = d.Config.DefaultSearchLimit
		}
		if limit > d.Config.MaxSearchResults {
			limit = d.Config.MaxSearchResults
		}

		filter := store.Filter{
			Domain:           input.Domain,
			FunctionName:     input.FunctionName,
			RequestCategory:  classify.Category(input.RequestCategory),
			ResponseCategory: classify.Category(input.ResponseCategory),
			PendingAuthOnly:  input.PendingAuthOnly,
		}

		offset := input.Offset
		if offset < 0 {
			offset = 0
		}

		matches, total := d.Store.Search(filter, offset+limit)
		if offset >= len(matches) {
			matches = nil
		} else {
			matches = matches[offset:]
		}

		out := SearchCallsOutput{Total: total}
		for _, m := range matches {
			out.Results = append(out.Results, CallSummary{
				ID:               m.Record.ID,
				Domain:           m.Record.Domain,
				FunctionName:     m.Record.FunctionName,
				PendingAuth:      m.Record.PendingAuth,
				RequestCategory:  string(m.Request.Category),
				ResponseCategory: string(m.Response.Category),
			})
		}

		// An unfiltered search doubles as an overview.
		if filter == (store.Filter{}) {
			out.Domains = d.Store.Domains()
			out.Functions = d.Store.Functions()
		}

		return nil, out, nil
	}
}
