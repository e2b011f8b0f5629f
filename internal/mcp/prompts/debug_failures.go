package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleDebugFailures implements the failed-execution analysis workflow.
func HandleDebugFailures(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		functionName := ""
		if args != nil {
			if v, ok := args["function_name"]; ok {
				functionName = v
			}
		}

		var sb strings.Builder

		// 1. Role/Persona
		sb.WriteString("# Debug Failing Executions\n\n")
		sb.WriteString("You are an expert at diagnosing failed code executions from tool-call transcripts. ")
		sb.WriteString("Your goal is to pair failing results with the code that produced them and explain the root cause.\n\n")

		// 2. Task Overview
		sb.WriteString("## Task Overview\n\n")
		sb.WriteString("Execution results carry a success flag, captured output, and on failure an error message and traceback. ")
		sb.WriteString("This workflow finds the failures, checks their envelopes are well-formed, and matches each to its request payload.\n\n")

		// 3. Workflow Steps
		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Find executions** - Filter by response category\n")
		sb.WriteString("   - `response_category: \"python_result\"` narrows to execution results\n")
		sb.WriteString("   - Pair with `request_category: \"python_code\"` to get code + result in one record\n\n")
		sb.WriteString("2. **Separate failures** - Query the success flag across the group\n")
		sb.WriteString("   - `.success == false` selects failing envelopes; `deduplicate` collapses repeated errors\n\n")
		sb.WriteString("3. **Validate envelopes** - Check malformed results\n")
		sb.WriteString("   - A result that fails validation may explain downstream parsing trouble, not a code bug\n\n")
		sb.WriteString("4. **Read the failure** - Classify the record to render code, error, and traceback together\n\n")

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		sb.WriteString("# Step 1: Find execution calls\n")
		if functionName != "" {
			sb.WriteString(fmt.Sprintf("callsight_search_calls(function_name: \"%s\", response_category: \"python_result\", limit: %d)\n", functionName, cfg.DefaultSearchLimit))
		} else {
			sb.WriteString("callsight_search_calls(response_category: \"python_result\")\n")
		}
		sb.WriteString("\n")
		sb.WriteString("# Step 2: Pull the error messages from failures\n")
		sb.WriteString("callsight_query_payload(record_ids: [...], role: \"response\", expression: \"select(.success == false) | .error\", deduplicate: true)\n")
		sb.WriteString("\n")
		sb.WriteString("# Step 3: Validate a suspicious envelope\n")
		sb.WriteString("callsight_check_result(record_id: \"<record_id>\")\n")
		sb.WriteString("\n")
		sb.WriteString("# Step 4: Render code and traceback side by side\n")
		sb.WriteString("callsight_classify_call(input: \"<raw input>\", output: \"<raw output>\")\n")
		sb.WriteString("```\n\n")

		// 4. Output Format
		sb.WriteString("## Expected Output Format\n\n")
		sb.WriteString("1. **Failure inventory**: Distinct errors with counts and example record IDs\n")
		sb.WriteString("2. **Root cause per error**: What the code attempted and why it failed\n")
		sb.WriteString("3. **Malformed envelopes**: Records whose results fail validation, with the field errors\n\n")

		// 5. Error Recovery
		sb.WriteString("## If Things Go Wrong\n\n")
		sb.WriteString("- **Query errors on some records?** Those payloads did not recover as JSON; check_result reports the recovery strategy used\n")
		sb.WriteString("- **No python_result records?** The transcript may report results as tabular_data or plain_text; search without a category filter first\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for diagnosing failed executions in a transcript",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
