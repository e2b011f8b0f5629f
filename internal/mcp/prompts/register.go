package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Tool usage guide
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "callsight_guide",
		Description: "RECOMMENDED: Tool usage guide with category reference and workflows. Start here - provides decision tables and data shapes without the context cost of fetching resources.",
	}, HandleBasePrompt(cfg))

	// Prompt 2: Survey an ingested transcript
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "triage_transcript",
		Description: "RECOMMENDED: Survey an ingested transcript by category, domain, and function. Start here after ingesting - provides workflow guidance without classifying every record.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "domain",
				Description: "Filter by source domain",
				Required:    false,
			},
			{
				Name:        "function_name",
				Description: "Filter by called function name",
				Required:    false,
			},
		},
	}, HandleTriageTranscript(cfg))

	// Prompt 3: Debug failing executions
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "debug_failures",
		Description: "RECOMMENDED: Find and diagnose failed code executions. Guides through filtering, envelope validation, and pairing errors with the code that caused them.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "function_name",
				Description: "Limit analysis to one function",
				Required:    false,
			},
		},
	}, HandleDebugFailures(cfg))
}
