// Package sdl mines structural facts out of GraphQL Schema Definition Language
// text. It is a pattern miner, not a parser: it pulls names and counts a
// presentation layer needs without validating the document.
package sdl

import (
	"regexp"
	"strings"

	"github.com/usestring/callsight-mcp/pkg/lenientjson"
)

// Summary holds the structural facts mined from an SDL document.
type Summary struct {
	RawText          string   `json:"raw_text"`
	QueryType        string   `json:"query_type,omitempty"`
	MutationType     string   `json:"mutation_type,omitempty"`
	SubscriptionType string   `json:"subscription_type,omitempty"`
	Types            []string `json:"types,omitempty"`
	Enums            []string `json:"enums,omitempty"`
	Directives       []string `json:"directives,omitempty"`
	LineCount        int      `json:"line_count"`
}

var (
	schemaBlockPattern  = regexp.MustCompile(`schema\s*\{([^}]+)\}`)
	queryRootPattern    = regexp.MustCompile(`query\s*:\s*(\w+)`)
	mutationRootPattern = regexp.MustCompile(`mutation\s*:\s*(\w+)`)
	subRootPattern      = regexp.MustCompile(`subscription\s*:\s*(\w+)`)
	typePattern         = regexp.MustCompile(`type\s+(\w+)`)
	enumPattern         = regexp.MustCompile(`enum\s+(\w+)`)
	directivePattern    = regexp.MustCompile(`directive\s+@(\w+)`)
)

// Looks reports whether a candidate text string is plausibly SDL. The probe is
// deliberately loose: both keywords appearing anywhere is enough to hand the
// text to Extract, which degrades gracefully on non-SDL input.
func Looks(text string) bool {
	return strings.Contains(text, "schema") && strings.Contains(text, "type")
}

// Extract mines root operation type names, type names, enum names, and
// directive names from raw SDL text. The line count is taken over the
// escape-normalized text so double-encoded documents count real lines.
func Extract(raw string) *Summary {
	normalized := lenientjson.Normalize(raw)

	s := &Summary{
		RawText:   normalized,
		LineCount: len(strings.Split(normalized, "\n")),
	}

	if block := schemaBlockPattern.FindStringSubmatch(normalized); block != nil {
		body := block[1]
		if m := queryRootPattern.FindStringSubmatch(body); m != nil {
			s.QueryType = m[1]
		}
		if m := mutationRootPattern.FindStringSubmatch(body); m != nil {
			s.MutationType = m[1]
		}
		if m := subRootPattern.FindStringSubmatch(body); m != nil {
			s.SubscriptionType = m[1]
		}
	}

	for _, m := range typePattern.FindAllStringSubmatch(normalized, -1) {
		s.Types = append(s.Types, m[1])
	}
	for _, m := range enumPattern.FindAllStringSubmatch(normalized, -1) {
		s.Enums = append(s.Enums, m[1])
	}
	for _, m := range directivePattern.FindAllStringSubmatch(normalized, -1) {
		s.Directives = append(s.Directives, m[1])
	}

	return s
}
