package tools

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/callsight-mcp/internal/store"
	"github.com/usestring/callsight-mcp/pkg/jsonschema"
	"github.com/usestring/callsight-mcp/pkg/lenientjson"
)

// InferPayloadSchemaInput is the input for callsight_infer_payload_schema.
type InferPayloadSchemaInput struct {
	RecordIDs  []string `json:"record_ids" jsonschema:"Record IDs whose payloads to sample"`
	Role       string   `json:"role,omitempty" jsonschema:"Which payload to sample: request or response (default: response)"`
	MaxSamples int      `json:"max_samples,omitempty" jsonschema:"Max payloads to sample, in record_ids order (default: 100)"`
}

// InferPayloadSchemaOutput is the output for callsight_infer_payload_schema.
type InferPayloadSchemaOutput struct {
	Schema      any                    `json:"schema,omitempty"`
	SampleCount int                    `json:"sample_count"`
	AllMatch    bool                   `json:"all_match"`
	FieldStats  []jsonschema.FieldStat `json:"field_stats,omitzero"`
	Skipped     []string               `json:"skipped,omitzero"` // record IDs whose payload never parsed
}

// ToolInferPayloadSchema infers a merged JSON Schema across the recovered
// payloads of the selected calls.
func ToolInferPayloadSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferPayloadSchemaInput) (*sdkmcp.CallToolResult, InferPayloadSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferPayloadSchemaInput) (*sdkmcp.CallToolResult, InferPayloadSchemaOutput, error) {
		if len(input.RecordIDs) == 0 {
			return nil, InferPayloadSchemaOutput{}, ErrInvalidInput("record_ids must not be empty")
		}

		maxSamples := input.MaxSamples
		if maxSamples <= 0 {
			maxSamples = d.Config.DefaultInferSamples
		}
		if maxSamples > d.Config.MaxInferSamples {
			maxSamples = d.Config.MaxInferSamples
		}
		ids := input.RecordIDs
		if len(ids) > maxSamples {
			ids = ids[:maxSamples]
		}

		role := store.RoleResponse
		switch input.Role {
		case "", "response":
		case "request":
			role = store.RoleRequest
		default:
			return nil, InferPayloadSchemaOutput{}, ErrInvalidInput("role must be request or response")
		}

		var out InferPayloadSchemaOutput
		var samples [][]byte
		for _, id := range ids {
			cls, err := d.fetchRecord(id)
			if err != nil {
				return nil, InferPayloadSchemaOutput{}, err
			}

			// Re-marshal the recovered value so escaped and enveloped
			// payloads sample as the JSON they carry.
			parsed := lenientjson.Parse(payloadFor(cls, role))
			if parsed.Unparseable {
				out.Skipped = append(out.Skipped, id)
				continue
			}
			data, err := json.Marshal(parsed.Value)
			if err != nil {
				out.Skipped = append(out.Skipped, id)
				continue
			}
			samples = append(samples, data)
		}

		inf := jsonschema.Infer(samples...)
		if inf == nil {
			return nil, out, ErrInvalidInput("no payload parsed as JSON in any recovered form")
		}

		out.Schema = inf.Schema
		out.SampleCount = inf.SampleCount
		out.AllMatch = inf.AllMatch
		out.FieldStats = jsonschema.FieldStats(inf.Schema, samples)
		return nil, out, nil
	}
}
