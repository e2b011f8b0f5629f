package tabular

import "github.com/buger/jsonparser"

// KeyOrder returns the top-level object key order as written in raw JSON
// text. Parsed values cannot carry this (Go maps are unordered), so callers
// holding the original text pass the result to Project as the order hint.
// Non-object input yields nil, which Project treats as "no hint".
func KeyOrder(raw []byte) []string {
	var keys []string
	err := jsonparser.ObjectEach(raw, func(key []byte, _ []byte, _ jsonparser.ValueType, _ int) error {
		keys = append(keys, string(key))
		return nil
	})
	if err != nil {
		return nil
	}
	return keys
}
