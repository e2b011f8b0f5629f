package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/callsight-mcp/internal/store"
)

// IngestRecord is one transcript record in an ingest request.
type IngestRecord struct {
	ID           string `json:"id" jsonschema:"Unique record ID"`
	Domain       string `json:"domain,omitempty" jsonschema:"Origin domain of the call"`
	FunctionName string `json:"function_name,omitempty" jsonschema:"Tool/function name that was invoked"`
	PendingAuth  bool   `json:"pending_auth,omitempty" jsonschema:"Whether the call was blocked on authorization"`
	Input        string `json:"input" jsonschema:"Raw request payload string"`
	Output       string `json:"output" jsonschema:"Raw response payload string"`
}

// IngestTranscriptInput is the input for callsight_ingest_transcript.
type IngestTranscriptInput struct {
	Records []IngestRecord `json:"records" jsonschema:"Transcript records to classify and index"`
}

// IngestTranscriptOutput is the output for callsight_ingest_transcript.
type IngestTranscriptOutput struct {
	Ingested           int            `json:"ingested"`
	TotalRecords       int            `json:"total_records"`
	RequestCategories  map[string]int `json:"request_categories,omitempty"`
	ResponseCategories map[string]int `json:"response_categories,omitempty"`
}

// ToolIngestTranscript classifies and indexes a batch of records.
func ToolIngestTranscript(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input IngestTranscriptInput) (*sdkmcp.CallToolResult, IngestTranscriptOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input IngestTranscriptInput) (*sdkmcp.CallToolResult, IngestTranscriptOutput, error) {
		if len(input.Records) == 0 {
			return nil, IngestTranscriptOutput{}, ErrInvalidInput("records must not be empty")
		}

		recs := make([]*store.Record, 0, len(input.Records))
		for i, r := range input.Records {
			if r.ID == "" {
				return nil, IngestTranscriptOutput{}, ErrInvalidInput(fmt.Sprintf("records[%d]: id is required", i))
			}
			recs = append(recs, &store.Record{
				ID:           r.ID,
				Domain:       r.Domain,
				FunctionName: r.FunctionName,
				PendingAuth:  r.PendingAuth,
				Input:        r.Input,
				Output:       r.Output,
			})
		}

		before := d.Store.Len()
		if err := d.Store.AddBatch(ctx, recs); err != nil {
			return nil, IngestTranscriptOutput{}, ErrInternal("batch ingest failed", err)
		}

		out := IngestTranscriptOutput{
			Ingested:           d.Store.Len() - before,
			TotalRecords:       d.Store.Len(),
			RequestCategories:  categoryCounts(d.Store.CategoryHistogram(store.RoleRequest)),
			ResponseCategories: categoryCounts(d.Store.CategoryHistogram(store.RoleResponse)),
		}
		return nil, out, nil
	}
}
