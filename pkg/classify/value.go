package classify

// Optional-field accessors over parsed JSON values. Shape sniffing goes
// through these instead of inline type assertions so missing and wrong-typed
// fields read the same way everywhere.

func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok
}

func asArray(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

func objField(v any, key string) (any, bool) {
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	val, ok := obj[key]
	return val, ok
}

func stringField(v any, key string) (string, bool) {
	val, ok := objField(v, key)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

func boolField(v any, key string) (bool, bool) {
	val, ok := objField(v, key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

func objectField(v any, key string) (map[string]any, bool) {
	val, ok := objField(v, key)
	if !ok {
		return nil, false
	}
	return asObject(val)
}

func arrayField(v any, key string) ([]any, bool) {
	val, ok := objField(v, key)
	if !ok {
		return nil, false
	}
	return asArray(val)
}

func hasField(v any, key string) bool {
	_, ok := objField(v, key)
	return ok
}

// nameOf reads the conventional `{name: "..."}` shape used throughout
// GraphQL introspection documents.
func nameOf(v any) string {
	s, _ := stringField(v, "name")
	return s
}
