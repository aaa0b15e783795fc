package usecase

import (
	"strconv"
)

// Helpers for walking an untyped JSON tree. Webhook payloads from the
// platform are heterogeneous and half-documented, so every lookup degrades
// to "absent" instead of failing: a wrong type along the path is the same
// as a missing key.

func dig(raw map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = raw
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
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

// digString coerces whatever sits at path to a string. Numbers keep their
// shortest decimal form ("7", not "7.000000").
func digString(raw map[string]interface{}, path ...string) (string, bool) {
	v, ok := dig(raw, path...)
	if !ok {
		return "", false
	}
	return coerceString(v)
}

func digNumber(raw map[string]interface{}, path ...string) (float64, bool) {
	v, ok := dig(raw, path...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func digInt64(raw map[string]interface{}, path ...string) (int64, bool) {
	f, ok := digNumber(raw, path...)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func coerceString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return formatScore(s), true
	case bool:
		return strconv.FormatBool(s), true
	case nil:
		return "", false
	default:
		return "", false
	}
}

// formatScore renders a float the way a human wrote it: integral values
// without a decimal tail.
func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
