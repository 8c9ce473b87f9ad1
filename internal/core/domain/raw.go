package domain

// RawRecord is a dynamic field map decoded from one line of an archive.
// JSON objects decode to map[string]any, numbers to float64, null to nil.
// It exists only between parse and normalise.
type RawRecord map[string]any

// Lookup returns the value for key and whether the key is present.
// A present key may hold nil (JSON null).
func (r RawRecord) Lookup(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

// Has returns true if key is present, including when its value is null.
func (r RawRecord) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// IsNull returns true if key is absent or holds JSON null.
func (r RawRecord) IsNull(key string) bool {
	return r[key] == nil
}

// String returns the value for key if it is a JSON string.
func (r RawRecord) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// Bool returns the value for key if it is a JSON boolean.
func (r RawRecord) Bool(key string) (bool, bool) {
	b, ok := r[key].(bool)
	return b, ok
}

// Nested walks a path of object keys, e.g. Nested("_meta", "removal_type").
// Returns false if any step is absent or not an object.
func (r RawRecord) Nested(path ...string) (any, bool) {
	var cur any = map[string]any(r)
	for _, key := range path {
		m, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RawRecord:
		return m, true
	default:
		return nil, false
	}
}
