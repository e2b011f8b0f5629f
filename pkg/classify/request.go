package classify

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/usestring/callsight-mcp/pkg/lenientjson"
)

// sqlKeywordPattern matches a SQL keyword at a word boundary, case-insensitive.
var sqlKeywordPattern = regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|CREATE|DROP|ALTER|WITH)\b`)

// codeSignals are the substrings that make a string field look like source
// code rather than incidental text.
var codeSignals = []string{"import ", "def ", "print(", "plt.", "np.", "pd.", "="}

// ClassifyRequest classifies a request-role payload. Priority order:
// GraphQL query, Python code, plain text. The first matching classifier's
// extraction wins; plain text always succeeds.
func ClassifyRequest(raw string) *Result {
	out := lenientjson.Parse(raw)
	if !out.Unparseable {
		if r, ok := matchQuery(out.Value); ok {
			return r
		}
		if r, ok := matchCode(out.Value); ok {
			return r
		}
	}
	return plainText(raw)
}

// matchQuery accepts any object with a string query field.
func matchQuery(v any) (*Result, bool) {
	query, ok := stringField(v, "query")
	if !ok {
		return nil, false
	}

	return &Result{
		Category: CategoryGraphQLQuery,
		Query: &QueryPayload{
			QueryText:  lenientjson.Normalize(query),
			Kind:       DetectQueryKind(query),
			Parameters: remainingFields(v, "query"),
		},
	}, true
}

// matchCode accepts an object with a string code field that passes the
// source-likelihood heuristic.
func matchCode(v any) (*Result, bool) {
	code, ok := stringField(v, "code")
	if !ok || !looksLikeSource(code) {
		return nil, false
	}

	return &Result{
		Category: CategoryPythonCode,
		Code: &CodePayload{
			CodeText:   lenientjson.Normalize(code),
			Language:   "python",
			Parameters: remainingFields(v, "code"),
		},
	}, true
}

// DetectQueryKind sniffs what a query string is. GraphQL wins over SQL: a
// selection-set query containing the word SELECT in a field name is still
// GraphQL.
func DetectQueryKind(query string) QueryKind {
	trimmed := strings.TrimSpace(query)
	if strings.HasPrefix(trimmed, "query") ||
		strings.HasPrefix(trimmed, "mutation") ||
		strings.HasPrefix(trimmed, "subscription") {
		return KindGraphQL
	}
	if strings.Contains(trimmed, "{") && strings.Contains(trimmed, "}") {
		return KindGraphQL
	}
	if sqlKeywordPattern.MatchString(trimmed) {
		return KindSQL
	}
	return KindGeneric
}

func looksLikeSource(code string) bool {
	for _, sig := range codeSignals {
		if strings.Contains(code, sig) {
			return true
		}
	}
	return strings.HasPrefix(strings.TrimSpace(code), "#")
}

// remainingFields returns the object's fields minus the consumed one,
// verbatim.
func remainingFields(v any, consumed string) map[string]any {
	obj, ok := asObject(v)
	if !ok {
		return nil
	}
	params := make(map[string]any, len(obj))
	for k, val := range obj {
		if k == consumed {
			continue
		}
		params[k] = val
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

// plainText is the universal fallback: escape-normalized raw text, upgraded
// to pretty-printed JSON when the normalized form parses cleanly.
func plainText(raw string) *Result {
	text := lenientjson.Normalize(raw)

	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		if pretty, err := json.MarshalIndent(v, "", "  "); err == nil {
			text = string(pretty)
		}
	}

	return &Result{Category: CategoryPlainText, Text: text}
}
