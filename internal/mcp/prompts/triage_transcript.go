package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleTriageTranscript implements the transcript survey workflow.
func HandleTriageTranscript(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		domain := ""
		functionName := ""
		if args != nil {
			if v, ok := args["domain"]; ok {
				domain = v
			}
			if v, ok := args["function_name"]; ok {
				functionName = v
			}
		}

		var sb strings.Builder

		// 1. Role/Persona
		sb.WriteString("# Triage a Tool-Call Transcript\n\n")
		sb.WriteString("You are an expert at analyzing agent tool-call transcripts. ")
		sb.WriteString("Your goal is to build a clear picture of what the agent did: which functions it called, what shapes the payloads took, and where calls went wrong.\n\n")

		// 2. Task Overview
		sb.WriteString("## Task Overview\n\n")
		sb.WriteString("This workflow surveys an ingested transcript by category and provenance, then drills into the calls that matter. ")
		sb.WriteString("Payloads are opaque strings that may be escaped or wrapped in content envelopes; classification recovers and types them automatically.\n\n")

		// 3. Context Usage Guide
		sb.WriteString("## Context Usage Guide\n\n")
		sb.WriteString("- **Tools** return summaries and rendered views - use these for most analysis\n")
		sb.WriteString("- **Resources** (`callsight://record/{id}`) return full raw payloads - high context cost, only fetch when you need the actual text\n")
		sb.WriteString("- Use selective sampling - classify a few representatives per category, not every record\n\n")

		// 4. Workflow Steps
		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Ingest** - Load the transcript records\n")
		sb.WriteString("   - The response includes request and response category histograms: read them before anything else\n\n")
		sb.WriteString("2. **Orient** - Search with no filters\n")
		sb.WriteString("   - Returns domain and function histograms alongside the first page of results\n")
		sb.WriteString("   - High-count functions are the agent's workhorses (prioritize these)\n\n")
		sb.WriteString("3. **Drill in** - Filter by category or function\n")
		sb.WriteString("   - `response_category: \"python_result\"` finds executions; `pending_auth_only: true` finds blocked calls\n")
		sb.WriteString("   - Classify one or two representative IDs per group\n\n")

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		sb.WriteString("# Step 1: Orient\n")
		sb.WriteString("callsight_search_calls()\n")
		sb.WriteString("\n")
		sb.WriteString("# Step 2: Narrow to the interesting slice\n")

		filterParts := []string{}
		if domain != "" {
			filterParts = append(filterParts, fmt.Sprintf("domain: \"%s\"", domain))
		}
		if functionName != "" {
			filterParts = append(filterParts, fmt.Sprintf("function_name: \"%s\"", functionName))
		}
		if len(filterParts) > 0 {
			sb.WriteString(fmt.Sprintf("callsight_search_calls(%s)\n", strings.Join(filterParts, ", ")))
		} else {
			sb.WriteString("callsight_search_calls(domain: \"<domain>\")\n")
		}
		sb.WriteString("\n")
		sb.WriteString("# Step 3: Inspect representatives\n")
		sb.WriteString("callsight_classify_call(input: \"<raw input>\", output: \"<raw output>\")\n")
		sb.WriteString("\n")
		sb.WriteString("# Step 4: Understand payload structure across a group\n")
		sb.WriteString("callsight_infer_payload_schema(record_ids: [...], role: \"response\")\n")
		sb.WriteString("```\n\n")

		// 5. Output Format
		sb.WriteString("## Expected Output Format\n\n")
		sb.WriteString("Present your triage as:\n\n")
		sb.WriteString("1. **Overview**: Record count, domains, and category mix\n")
		sb.WriteString("2. **Per-function summary**: What each high-count function does, with payload shapes\n")
		sb.WriteString("3. **Anomalies**: Failed executions, unparseable payloads, pending-auth calls\n\n")

		// 6. Constraints
		sb.WriteString("## Constraints\n\n")
		sb.WriteString("- Do NOT fetch `callsight://record/{id}` resources unless the rendered classification is insufficient\n")
		sb.WriteString("- Do NOT classify every record - histograms plus representatives cover most questions\n")
		sb.WriteString("- STOP after the core picture is clear - edge cases can be examined on request\n\n")

		// 7. Error Recovery
		sb.WriteString("## If Things Go Wrong\n\n")
		sb.WriteString("- **Everything classifies as plain_text?** The payloads may be double-escaped beyond recovery; fetch one raw record and inspect it\n")
		sb.WriteString("- **Search returns nothing?** An unfiltered search shows what domains and functions actually exist\n")
		sb.WriteString(fmt.Sprintf("- **Schema inference fails?** It needs parseable JSON samples (up to %d per call); check the skipped list in the response\n\n", cfg.MaxInferSamples))

		// 8. Success Criteria
		sb.WriteString("## Success Criteria\n\n")
		sb.WriteString("Task is complete when:\n")
		sb.WriteString("- Every high-count function has a one-line description and payload shape, OR\n")
		sb.WriteString("- The specific calls the user asked about are explained, OR\n")
		sb.WriteString("- Anomalies are identified with record IDs for follow-up\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for surveying an ingested tool-call transcript",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
