// Package resultschema validates sandboxed-execution payloads against the
// executor's output contract.
package resultschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/callsight-mcp/pkg/lenientjson"
)

// contractJSON is the schema every execution result is expected to satisfy:
// a success flag, plus optional output, error, traceback, a base64 plot, and
// stringified variables.
const contractJSON = `{
  "type": "object",
  "required": ["success"],
  "properties": {
    "success":   {"type": "boolean"},
    "output":    {"type": "string"},
    "error":     {"type": "string"},
    "traceback": {"type": "string"},
    "plot":      {"type": "string"},
    "variables": {"type": "object", "additionalProperties": {"type": "string"}}
  }
}`

// Report is the outcome of checking one payload.
type Report struct {
	Valid    bool     `json:"valid"`
	Recovery string   `json:"recovery,omitempty"` // how the payload was parsed
	Errors   []string `json:"errors,omitempty"`
}

// Checker validates payloads against the executor contract.
type Checker struct {
	schema *jsonschema.Schema
}

// NewChecker compiles the embedded contract schema.
func NewChecker() (*Checker, error) {
	var doc any
	if err := json.Unmarshal([]byte(contractJSON), &doc); err != nil {
		return nil, fmt.Errorf("parsing contract schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("contract.json", doc); err != nil {
		return nil, fmt.Errorf("adding contract resource: %w", err)
	}
	compiled, err := compiler.Compile("contract.json")
	if err != nil {
		return nil, fmt.Errorf("compiling contract: %w", err)
	}
	return &Checker{schema: compiled}, nil
}

// Check resolves a raw payload through the lenient parser, unwrapping one
// text envelope if present, and validates the result.
func (c *Checker) Check(raw string) *Report {
	out := lenientjson.Parse(raw)
	if out.Unparseable {
		return &Report{Errors: []string{"payload is not JSON in any recovered form"}}
	}

	value := out.Value
	if inner, ok := lenientjson.UnwrapEnvelope(value); ok {
		resolved := lenientjson.Parse(inner)
		if resolved.Unparseable {
			return &Report{
				Recovery: string(out.Recovery),
				Errors:   []string{"envelope text is not JSON in any recovered form"},
			}
		}
		value = resolved.Value
	}

	report := &Report{Recovery: string(out.Recovery)}
	if err := c.schema.Validate(value); err != nil {
		report.Errors = extractErrors(err)
		return report
	}
	report.Valid = true
	return report
}

// printer renders localized validation messages.
var printer = message.NewPrinter(language.English)

// extractErrors flattens a validation error into deduplicated per-path
// messages.
func extractErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}
	}

	byPath := make(map[string][]string)
	collect(validationErr, byPath)

	var result []string
	for path, msgs := range byPath {
		seen := make(map[string]bool)
		for _, msg := range msgs {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				result = append(result, path+": "+msg)
			} else {
				result = append(result, msg)
			}
		}
	}
	return result
}

// collect walks the cause tree keeping only leaf errors; $ref plumbing
// messages are noise and get dropped.
func collect(err *jsonschema.ValidationError, byPath map[string][]string) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		if !strings.HasPrefix(msg, "$ref ") && !strings.HasPrefix(msg, "doesn't validate with") {
			byPath[instancePath] = append(byPath[instancePath], msg)
		}
	}
	for _, cause := range err.Causes {
		collect(cause, byPath)
	}
}
