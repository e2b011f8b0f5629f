// Package tools contains the MCP tool implementations.
package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/callsight-mcp/pkg/classify"
)

// categoryCounts converts a category histogram to a plain string-keyed map
// for JSON output.
func categoryCounts(hist map[classify.Category]int) map[string]int {
	out := make(map[string]int, len(hist))
	for cat, n := range hist {
		out[string(cat)] = n
	}
	return out
}

// hybridResult pairs a markdown rendering with the structured output: the
// markdown goes in the text content, the structured value rides along as the
// typed output.
func hybridResult(markdown string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: markdown},
		},
	}
}
