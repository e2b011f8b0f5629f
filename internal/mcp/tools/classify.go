package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/callsight-mcp/pkg/classify"
)

// ClassifyCallInput is the input for callsight_classify_call.
type ClassifyCallInput struct {
	Input  string `json:"input,omitempty" jsonschema:"Raw request payload string (tool-call arguments). Optional when output is set."`
	Output string `json:"output,omitempty" jsonschema:"Raw response payload string (tool-call result). Optional when input is set."`
}

// ClassifyCallOutput is the output for callsight_classify_call.
type ClassifyCallOutput struct {
	Request  *classify.Result `json:"request,omitempty"`
	Response *classify.Result `json:"response,omitempty"`
}

// ToolClassifyCall classifies a request/response payload pair without
// touching the store.
func ToolClassifyCall(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ClassifyCallInput) (*sdkmcp.CallToolResult, ClassifyCallOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ClassifyCallInput) (*sdkmcp.CallToolResult, ClassifyCallOutput, error) {
		if input.Input == "" && input.Output == "" {
			return nil, ClassifyCallOutput{}, ErrInvalidInput("provide input, output, or both")
		}

		var out ClassifyCallOutput
		var markdown string

		if input.Input != "" {
			out.Request = classify.ClassifyRequest(input.Input)
			markdown += "## Request\n\n" + RenderMarkdown(out.Request)
		}
		if input.Output != "" {
			out.Response = classify.ClassifyResponse(input.Output)
			if markdown != "" {
				markdown += "\n"
			}
			markdown += "## Response\n\n" + RenderMarkdown(out.Response)
		}

		return hybridResult(markdown), out, nil
	}
}
