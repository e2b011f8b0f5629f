// Package query provides JQ-based querying over tool-call payloads. Payloads
// go through the lenient parser first, so escaped and envelope-wrapped JSON
// is queryable as the JSON it was meant to be.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/callsight-mcp/pkg/lenientjson"
)

// Engine executes JQ expressions against payloads.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Result contains the outcome of a JQ query across payloads.
type Result struct {
	Values      []any          `json:"values"`
	Errors      []string       `json:"errors,omitempty"`      // per-payload errors
	RawCount    int            `json:"raw_count"`             // count before deduplication
	LabelCounts map[string]int `json:"label_counts,omitempty"` // value count per label
}

// Run executes a JQ expression against each payload. Labels identify payloads
// in error messages; a missing label falls back to the payload index.
// Unparseable payloads contribute an error entry, not a failure.
func (e *Engine) Run(payloads, labels []string, expression string, deduplicate bool, maxResults int) (*Result, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	result := &Result{
		Values:      make([]any, 0),
		LabelCounts: make(map[string]int),
	}

	seen := make(map[string]bool)
	seenErrors := make(map[string]bool)

	for i, payload := range payloads {
		if maxResults > 0 && len(result.Values) >= maxResults {
			break
		}

		label := fmt.Sprintf("payload[%d]", i)
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}

		out := lenientjson.Parse(payload)
		if out.Unparseable {
			msg := label + ": payload is not JSON in any recovered form"
			if !seenErrors[msg] {
				result.Errors = append(result.Errors, msg)
				seenErrors[msg] = true
			}
			continue
		}

		iter := code.Run(out.Value)
		for {
			if maxResults > 0 && len(result.Values) >= maxResults {
				break
			}
			v, ok := iter.Next()
			if !ok {
				break
			}

			if err, isErr := v.(error); isErr {
				msg := formatJQError(label, err)
				if !seenErrors[msg] {
					result.Errors = append(result.Errors, msg)
					seenErrors[msg] = true
				}
				continue
			}
			if v == nil {
				continue
			}

			result.RawCount++
			result.LabelCounts[label]++

			if deduplicate {
				key := valueKey(v)
				if seen[key] {
					continue
				}
				seen[key] = true
			}
			result.Values = append(result.Values, v)
		}
	}

	return result, nil
}

// Validate checks a JQ expression without executing it.
func (e *Engine) Validate(expression string) error {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return fmt.Errorf("invalid jq expression: %w", err)
	}
	if _, err := gojq.Compile(query); err != nil {
		return fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return nil
}

// formatJQError decorates runtime JQ errors with hints for common mistakes.
// gojq reports runtime errors as plain errors, so the hints go by message
// text; they only affect display, never control flow.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()
	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this payload)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}
	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}

// valueKey builds a deduplication key for a query result value.
func valueKey(v any) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case float64:
		return fmt.Sprintf("n:%v", val)
	case bool:
		return fmt.Sprintf("b:%v", val)
	case nil:
		return "null"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("?:%v", val)
		}
		return "j:" + string(b)
	}
}
