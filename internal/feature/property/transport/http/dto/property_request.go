package dto

import (
	"encoding/json"
	"strconv"
)

// FieldsFromJSON flattens a JSON listing body into form-style fields so JSON
// and multipart submissions share one normalization path. Nested objects such
// as details are re-encoded as JSON text.
func FieldsFromJSON(body map[string]any) map[string][]string {
	out := make(map[string][]string, len(body))
	for key, v := range body {
		switch t := v.(type) {
		case nil:
			continue
		case []any:
			vals := make([]string, 0, len(t))
			for _, item := range t {
				if s, ok := jsonScalar(item); ok {
					vals = append(vals, s)
				}
			}
			out[key] = vals
		case map[string]any:
			b, err := json.Marshal(t)
			if err != nil {
				continue
			}
			out[key] = []string{string(b)}
		default:
			if s, ok := jsonScalar(t); ok {
				out[key] = []string{s}
			}
		}
	}
	return out
}

func jsonScalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
