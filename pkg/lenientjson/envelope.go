package lenientjson

import "strings"

// envelopeMarkers are the signals that a raw string is an array-wrapped
// transport envelope. The escaped variants cover payloads that were
// JSON-encoded a second time in transit.
var envelopeMarkers = []string{
	`"type":"text"`,
	`"type": "text"`,
	`\"type\":\"text\"`,
	`\"type\": \"text\"`,
}

// LooksLikeEnvelope reports whether a raw string appears to be the
// `[{"type":"text","text":...}]` wrapper used by the tool-call transport.
func LooksLikeEnvelope(s string) bool {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "[") {
		return false
	}
	for _, m := range envelopeMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}

// UnwrapEnvelope extracts the inner text payload from a parsed envelope value.
// The value must be a non-empty array whose first element is an object with
// type "text" and a string text field. Unwrapping is idempotent: anything that
// is not an envelope is reported as such and the caller keeps the original.
func UnwrapEnvelope(v any) (string, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return "", false
	}
	first, ok := arr[0].(map[string]any)
	if !ok {
		return "", false
	}
	if t, _ := first["type"].(string); t != "text" {
		return "", false
	}
	text, ok := first["text"].(string)
	return text, ok
}

// extractTextField scans a raw envelope string for the `"text":"` field value
// using escape-aware scanning: a backslash flags the next character as escaped,
// and the first unescaped quote terminates the field. The escape pairs are kept
// verbatim so Normalize can resolve them afterward. An unterminated field
// (truncated payload) returns what was read so far. Occurrences of `"text"`
// not followed by a colon (such as the value of the type field) are skipped.
func extractTextField(s string) (string, bool) {
	from := 0
	for {
		idx := strings.Index(s[from:], `"text"`)
		if idx < 0 {
			return "", false
		}
		i := from + idx + len(`"text"`)
		from = i

		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) || s[i] != ':' {
			continue
		}
		i++
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) || s[i] != '"' {
			continue
		}
		i++

		var b strings.Builder
		escaped := false
		for ; i < len(s); i++ {
			ch := s[i]
			if escaped {
				b.WriteByte('\\')
				b.WriteByte(ch)
				escaped = false
				continue
			}
			if ch == '\\' {
				escaped = true
				continue
			}
			if ch == '"' {
				return b.String(), true
			}
			b.WriteByte(ch)
		}
		return b.String(), true
	}
}
