// Package lenientjson parses JSON payloads that arrive malformed, double-encoded,
// or wrapped in a tool-transport text envelope. It never returns errors: every
// entry point yields either a parsed value or an explicit unparseable outcome.
package lenientjson

import "strings"

// Normalize resolves literal backslash escape sequences left behind by
// double-encoding. The replacement order matters: `\\` is resolved last so it
// cannot re-introduce escaped forms the earlier passes already handled.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\t`, "\t")
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
