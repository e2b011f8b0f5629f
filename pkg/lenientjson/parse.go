package lenientjson

import (
	"encoding/json"
	"strings"
)

// Recovery identifies which parse attempt produced a value.
type Recovery string

// Recovery markers, in attempt order. Cheap, correctness-preserving attempts
// run before lossy structural repair so false-positive recoveries stay rare.
const (
	RecoveryDirect     Recovery = "direct"
	RecoveryNormalized Recovery = "normalized"
	RecoveryEnvelope   Recovery = "envelope"
	RecoveryTruncation Recovery = "truncation"
)

// Outcome is the result of a lenient parse. Exactly one of Value or
// Unparseable is meaningful; a truncation-repaired value is still a success
// (callers see no distinction beyond the Recovery marker).
type Outcome struct {
	Value       any
	Unparseable bool
	Recovery    Recovery
}

// Parse attempts to recover a JSON value from a raw payload string.
// Attempts, stopping at the first success:
//
//  1. direct parse
//  2. escape normalization, then parse
//  3. escape-aware extraction of the text field from an array envelope,
//     normalization, then parse
//  4. brace-balancing repair of a truncated object, then parse
//
// If every attempt fails the outcome is Unparseable; Parse never errors.
func Parse(s string) Outcome {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Outcome{Unparseable: true}
	}

	if v, ok := tryUnmarshal(trimmed); ok {
		return Outcome{Value: v, Recovery: RecoveryDirect}
	}

	if v, ok := tryUnmarshal(strings.TrimSpace(Normalize(trimmed))); ok {
		return Outcome{Value: v, Recovery: RecoveryNormalized}
	}

	if LooksLikeEnvelope(trimmed) {
		if inner, ok := extractTextField(trimmed); ok {
			if v, ok := tryUnmarshal(strings.TrimSpace(Normalize(inner))); ok {
				return Outcome{Value: v, Recovery: RecoveryEnvelope}
			}
		}
	}

	if repaired, ok := repairTruncated(trimmed); ok {
		if v, ok := tryUnmarshal(repaired); ok {
			return Outcome{Value: v, Recovery: RecoveryTruncation}
		}
	}

	return Outcome{Unparseable: true}
}

func tryUnmarshal(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// repairTruncated handles objects cut off mid-stream: the string opens with `{`
// but never closes. The repair keeps everything up to the last `"}` sequence
// and closes the outer object there; when no inner object closed cleanly it
// appends the missing brace directly.
func repairTruncated(s string) (string, bool) {
	if !strings.HasPrefix(s, "{") || strings.HasSuffix(s, "}") {
		return "", false
	}
	if i := strings.LastIndex(s, `"}`); i >= 0 {
		return s[:i+2] + "}", true
	}
	return s + "}", true
}
