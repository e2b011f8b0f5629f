package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/callsight-mcp/pkg/classify"
)

// CheckResultInput is the input for callsight_check_result.
type CheckResultInput struct {
	RecordID string `json:"record_id,omitempty" jsonschema:"Stored record whose output to check. Mutually exclusive with payload."`
	Payload  string `json:"payload,omitempty" jsonschema:"Raw response payload to check directly"`
}

// CheckResultOutput is the output for callsight_check_result.
type CheckResultOutput struct {
	Category string   `json:"category"` // response classification of the payload
	Valid    bool     `json:"valid"`
	Recovery string   `json:"recovery,omitempty"`
	Errors   []string `json:"errors,omitzero"`
}

// ToolCheckResult validates an execution-result payload against the executor
// contract. Validation is informational and never changes the classification.
func ToolCheckResult(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CheckResultInput) (*sdkmcp.CallToolResult, CheckResultOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CheckResultInput) (*sdkmcp.CallToolResult, CheckResultOutput, error) {
		if (input.RecordID == "") == (input.Payload == "") {
			return nil, CheckResultOutput{}, ErrInvalidInput("provide exactly one of record_id or payload")
		}

		payload := input.Payload
		var category classify.Category
		if input.RecordID != "" {
			cls, err := d.fetchRecord(input.RecordID)
			if err != nil {
				return nil, CheckResultOutput{}, err
			}
			payload = cls.Record.Output
			category = cls.Response.Category
		} else {
			category = classify.ClassifyResponse(payload).Category
		}

		rep := d.Checker.Check(payload)
		return nil, CheckResultOutput{
			Category: string(category),
			Valid:    rep.Valid,
			Recovery: rep.Recovery,
			Errors:   rep.Errors,
		}, nil
	}
}
