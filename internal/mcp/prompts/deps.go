// Package prompts contains MCP prompt implementations for callsight.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	DefaultSearchLimit int
	MaxInferSamples    int
}
