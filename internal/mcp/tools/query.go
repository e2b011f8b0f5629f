package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/callsight-mcp/internal/query"
	"github.com/usestring/callsight-mcp/internal/store"
)

// QueryPayloadInput is the input for callsight_query_payload.
type QueryPayloadInput struct {
	RecordIDs   []string `json:"record_ids" jsonschema:"Record IDs to query (from search_calls or ingest)"`
	Role        string   `json:"role,omitempty" jsonschema:"Which payload to query: request or response (default: response)"`
	Expression  string   `json:"expression" jsonschema:"JQ expression, e.g. '.data[].id'"`
	Deduplicate bool     `json:"deduplicate,omitempty" jsonschema:"Drop duplicate values across records"`
	MaxResults  int      `json:"max_results,omitempty" jsonschema:"Max values to return (default: 20)"`
}

// QueryPayloadOutput is the output for callsight_query_payload.
type QueryPayloadOutput struct {
	Values      []any          `json:"values,omitzero"`
	Errors      []string       `json:"errors,omitzero"`
	RawCount    int            `json:"raw_count"`
	LabelCounts map[string]int `json:"label_counts,omitempty"`
}

// ToolQueryPayload runs a JQ expression over the recovered payloads of
// stored calls.
func ToolQueryPayload(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryPayloadInput) (*sdkmcp.CallToolResult, QueryPayloadOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryPayloadInput) (*sdkmcp.CallToolResult, QueryPayloadOutput, error) {
		if len(input.RecordIDs) == 0 {
			return nil, QueryPayloadOutput{}, ErrInvalidInput("record_ids must not be empty")
		}
		if input.Expression == "" {
			return nil, QueryPayloadOutput{}, ErrInvalidInput("expression is required")
		}
		if len(input.RecordIDs) > d.Config.MaxQueryRecords {
			return nil, QueryPayloadOutput{}, ErrInvalidInput("too many record_ids")
		}

		role := store.RoleResponse
		switch input.Role {
		case "", "response":
		case "request":
			role = store.RoleRequest
		default:
			return nil, QueryPayloadOutput{}, ErrInvalidInput("role must be request or response")
		}

		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = d.Config.DefaultQueryLimit
		}

		payloads := make([]string, 0, len(input.RecordIDs))
		labels := make([]string, 0, len(input.RecordIDs))
		for _, id := range input.RecordIDs {
			cls, err := d.fetchRecord(id)
			if err != nil {
				return nil, QueryPayloadOutput{}, err
			}
			payloads = append(payloads, payloadFor(cls, role))
			labels = append(labels, id)
		}

		res, err := d.Query.Run(payloads, labels, input.Expression, input.Deduplicate, maxResults)
		if err != nil {
			return nil, QueryPayloadOutput{}, ErrInvalidInput(err.Error())
		}

		return nil, queryResultView(res), nil
	}
}

func payloadFor(cls *store.Classified, role store.Role) string {
	if role == store.RoleRequest {
		return cls.Record.Input
	}
	return cls.Record.Output
}

func queryResultView(res *query.Result) QueryPayloadOutput {
	return QueryPayloadOutput{
		Values:      res.Values,
		Errors:      res.Errors,
		RawCount:    res.RawCount,
		LabelCounts: res.LabelCounts,
	}
}
