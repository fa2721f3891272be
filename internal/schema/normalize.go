package schema

import "strings"

// Normalize converts a raw, possibly partial attribute bag into a complete
// BehaviorRules record. Recognized fields may appear either nested
// (receiving_workflow as an object) or addressed by dotted path; absent
// fields take their declared default. A recognized field with a value
// outside its enum, or of the wrong type, fails the whole call with a
// *ValidationError; no partial record is returned.
func Normalize(attrs map[string]interface{}) (BehaviorRules, error) {
	flat := flatten("", attrs)

	r := Defaults()
	for _, f := range fields {
		v, ok := flat[f.path]
		if !ok {
			continue
		}
		checked, err := checkValue(f, v)
		if err != nil {
			return BehaviorRules{}, err
		}
		f.set(&r, checked)
		delete(flat, f.path)
	}

	// Whatever survives the recognized pass is a foreign key; carry it
	// verbatim so the schema stays additive.
	if len(flat) > 0 {
		r.Extra = flat
	}
	return r, nil
}

// Project flattens a normalized record back into the attribute map shape the
// product store persists: top-level scalars plus a nested receiving_workflow
// object, with preserved unrecognized keys merged in. Recognized fields win
// over an Extra key at the same path, including an Extra key that collides
// with a recognized container (a foreign scalar at receiving_workflow can
// never clobber the validated record under it). Project(Normalize(·)) is
// idempotent.
func Project(r BehaviorRules) map[string]interface{} {
	out := make(map[string]interface{})
	for _, f := range fields {
		setPath(out, f.path, f.get(&r))
	}
	for k, v := range r.Extra {
		mergeExtra(out, k, v)
	}
	return out
}

// Set assigns one recognized field by dotted path, validating the value
// against the field table. Unknown paths and bad values are rejected the
// same way Normalize rejects them.
func Set(r *BehaviorRules, path string, value interface{}) error {
	f, ok := fieldByPath(path)
	if !ok {
		return &ValidationError{Field: path, Value: value}
	}
	checked, err := checkValue(f, value)
	if err != nil {
		return err
	}
	f.set(r, checked)
	return nil
}

func checkValue(f fieldDef, v interface{}) (interface{}, error) {
	switch f.kind {
	case kindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, &ValidationError{Field: f.path, Value: v, Allowed: []string{"true", "false"}}
		}
		return b, nil
	default:
		s, ok := v.(string)
		if ok {
			for _, a := range f.allowed {
				if s == a {
					return s, nil
				}
			}
		}
		return nil, &ValidationError{Field: f.path, Value: v, Allowed: f.allowed}
	}
}

// flatten rewrites nested maps into dotted-path keys. Scalars and non-map
// values pass through as-is.
func flatten(prefix string, in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			for nk, nv := range flatten(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = v
	}
	return out
}

// mergeExtra writes a preserved unrecognized key into the projected map
// without disturbing recognized values: it never replaces an existing entry
// and never descends through a non-map. A colliding foreign key is dropped
// in favor of the recognized record rather than silently clobbering it.
func mergeExtra(out map[string]interface{}, path string, v interface{}) {
	for {
		i := strings.Index(path, ".")
		if i < 0 {
			if _, exists := out[path]; exists {
				return
			}
			out[path] = v
			return
		}
		head, rest := path[:i], path[i+1:]
		existing, exists := out[head]
		if !exists {
			next := make(map[string]interface{})
			out[head] = next
			out, path = next, rest
			continue
		}
		next, ok := existing.(map[string]interface{})
		if !ok {
			return
		}
		out, path = next, rest
	}
}

// setPath writes a dotted-path key into a nested map, creating intermediate
// objects as needed.
func setPath(out map[string]interface{}, path string, v interface{}) {
	for {
		i := strings.Index(path, ".")
		if i < 0 {
			out[path] = v
			return
		}
		head, rest := path[:i], path[i+1:]
		next, ok := out[head].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			out[head] = next
		}
		out, path = next, rest
	}
}
